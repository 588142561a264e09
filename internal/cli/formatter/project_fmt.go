package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/vgn360/internal/domain"
)

// FormatProjectList renders booked units as a table inside a box.
func FormatProjectList(projects []domain.ProjectSummary) string {
	if len(projects) == 0 {
		return RenderBox("Booked Projects", Dim("No projects found"))
	}
	headers := []string{"#", "PROJECT", "SITE", "UNIT", "PROJECT ID", "TRAN ID"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			fmt.Sprint(p.ID),
			Bold(OrNA(p.Name)),
			OrNA(p.Site),
			OrNA(p.UnitNo),
			Dim(p.ProjectID),
			Dim(p.ProjectTranID),
		})
	}
	return RenderBox("Booked Projects", RenderTable(headers, rows))
}

// ProjectHeading identifies the unit a detail card describes.
type ProjectHeading struct {
	Name   string
	Site   string
	UnitNo string
}

// FormatProjectDetail renders the booking card. A nil detail renders the
// empty state.
func FormatProjectDetail(h ProjectHeading, d *domain.ProjectDetailRecord) string {
	title := OrNA(h.Name)
	if d == nil {
		return RenderBoxRaw(title, Dim("No project details available"))
	}

	top := RenderFields([]Field{
		{"Site", h.Site},
		{"Unit No", h.UnitNo},
		{"Status", StatusPill(d.Status)},
		{"Booked Date", d.BookedDate},
		{"Reg. Date", d.RegDate},
	})
	customer := RenderFields([]Field{
		{"Name", d.CustomerName},
		{"Mobile", DisplayPhone(d.MobileNo)},
		{"Address", d.Address},
	})
	payment := RenderFields([]Field{
		{"Total Cost", Money(d.TotalCost)},
		{"Received", Money(d.ReceivedAmount)},
		{"Balance", Money(d.Balance)},
	})

	parts := []string{top, "", Header("Customer"), customer, "", Header("Payment"), payment}
	if bar := PaymentProgress(d.ReceivedAmount, d.TotalCost, 24); bar != "" {
		parts = append(parts, "", bar)
	}
	return RenderBoxRaw(title, strings.Join(parts, "\n"))
}

// FormatReceipts renders all receipts of a booking as a table.
func FormatReceipts(projectName string, receipts []domain.ReceiptRecord) string {
	title := "Receipts"
	if projectName != "" {
		title += " · " + projectName
	}
	if len(receipts) == 0 {
		return RenderBoxRaw(title, Dim("No receipts found"))
	}
	headers := []string{"S.NO", "AMOUNT", "DATE", "STAGE", "MODE", "REF NO"}
	rows := make([][]string, 0, len(receipts))
	for _, r := range receipts {
		rows = append(rows, []string{
			OrNA(r.Sno),
			Bold(Rupees(r.Amount)),
			DisplayDate(r.Date),
			OrNA(r.Stage),
			OrNA(r.PaymentMode),
			OrNA(r.RefNo),
		})
	}
	return RenderBoxRaw(title, RenderTable(headers, rows))
}

// FormatReceiptCard renders one receipt, collapsed to its summary line or
// expanded with every field.
func FormatReceiptCard(r domain.ReceiptRecord, expanded bool) string {
	arrow := "▸"
	if expanded {
		arrow = "▾"
	}
	summary := fmt.Sprintf("%s Receipt #%s  %s", arrow, OrNA(r.Sno), StyleBold.Render(Rupees(r.Amount)))
	if !expanded {
		return summary
	}
	fields := RenderFields([]Field{
		{"Date", DisplayDate(r.Date)},
		{"Stage", r.Stage},
		{"Payment Mode", r.PaymentMode},
		{"Reference No", r.RefNo},
	})
	indented := "    " + strings.ReplaceAll(fields, "\n", "\n    ")
	return summary + "\n" + indented
}

// FormatCustomer renders a GetCustomerName result.
func FormatCustomer(c *domain.Customer, mobile string) string {
	if c == nil {
		return Dim("No customer registered for ") + DisplayPhone(mobile)
	}
	return RenderFields([]Field{
		{"Name", c.Name},
		{"Mobile", DisplayPhone(domain.CoalesceStr(c.Mobile, mobile))},
	})
}
