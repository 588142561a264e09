package gateway

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/alexanderramin/vgn360/internal/domain"
	"github.com/shopspring/decimal"
)

// flexString accepts a JSON string, number or null. The API is not
// consistent about quoting ids.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexAmount accepts a number, a numeric string, "" or null; the last two
// decode as zero.
type flexAmount struct {
	decimal.Decimal
}

func (a *flexAmount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" || string(b) == `""` {
		a.Decimal = decimal.Zero
		return nil
	}
	return a.Decimal.UnmarshalJSON(b)
}

// flexBool accepts true/false, 0/1 and "true"/"false".
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	switch strings.ToLower(strings.Trim(string(bytes.TrimSpace(b)), `"`)) {
	case "true", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

type projectDTO struct {
	ProjectName         flexString `json:"ProjectName"`
	ProjectSite         flexString `json:"Projectsite"`
	UnitNo              flexString `json:"UnitNo"`
	ProjectID           flexString `json:"ProjectId"`
	ProjectPlotIDTranID flexString `json:"ProjectPlotidTranid"`
}

func (d projectDTO) toDomain(position int) domain.ProjectSummary {
	return domain.ProjectSummary{
		ID:            position,
		Name:          string(d.ProjectName),
		Site:          string(d.ProjectSite),
		UnitNo:        string(d.UnitNo),
		ProjectID:     string(d.ProjectID),
		ProjectTranID: string(d.ProjectPlotIDTranID),
	}
}

type customerDTO struct {
	CustomerName flexString `json:"CustomerName"`
	MobileNo     flexString `json:"MobileNo"`
}

type bookedHistoryDTO struct {
	Status       flexString `json:"Status"`
	BookedDate   flexString `json:"BookedDate"`
	RegDate      flexString `json:"RegDate"`
	CustomerName flexString `json:"CustomerName"`
	MobileNo     flexString `json:"MobileNo"`
	Address      flexString `json:"Address"`
	TotalCost    flexAmount `json:"Totalcost"`
	RecAmount    flexAmount `json:"RecAmount"`
	Balance      flexAmount `json:"Balance"`
}

func (d bookedHistoryDTO) toDomain() domain.ProjectDetailRecord {
	return domain.ProjectDetailRecord{
		Status:         string(d.Status),
		BookedDate:     string(d.BookedDate),
		RegDate:        string(d.RegDate),
		CustomerName:   string(d.CustomerName),
		MobileNo:       string(d.MobileNo),
		Address:        string(d.Address),
		TotalCost:      d.TotalCost.Decimal,
		ReceivedAmount: d.RecAmount.Decimal,
		Balance:        d.Balance.Decimal,
	}
}

type receiptDTO struct {
	Sno        flexString `json:"Sno"`
	Amount     flexAmount `json:"Amount"`
	RecDate    flexString `json:"RecDate"`
	Stage      flexString `json:"Stage"`
	ModeOfCash flexString `json:"ModeofCash"`
	RefNo      flexString `json:"RefNo"`
}

func (d receiptDTO) toDomain() domain.ReceiptRecord {
	return domain.ReceiptRecord{
		Sno:         string(d.Sno),
		Amount:      d.Amount.Decimal,
		Date:        string(d.RecDate),
		Stage:       string(d.Stage),
		PaymentMode: string(d.ModeOfCash),
		RefNo:       string(d.RefNo),
	}
}

type leadResponse struct {
	Status flexBool `json:"status"`
	Msg    string   `json:"msg"`
}

type otpGenerateResponse struct {
	Success flexBool `json:"success"`
	Data    struct {
		DeliveryStatus string     `json:"deliveryStatus"`
		OTPCode        flexString `json:"OTPCode"`
	} `json:"data"`
}

// deliveredStatus is the SMS gateway's confirmation of delivery.
const deliveredStatus = "DELIVRD"

type otpVerifyDTO struct {
	OTPStatus string `json:"OTPStatus"`
}

const otpSucceeded = "Succeed"
