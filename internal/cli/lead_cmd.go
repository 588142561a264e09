package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/vgn360/internal/cli/formatter"
	"github.com/alexanderramin/vgn360/internal/domain"
	"github.com/alexanderramin/vgn360/internal/gateway"
	"github.com/alexanderramin/vgn360/internal/screen"
)

// fieldOrder is the on-screen order of the lead form fields.
var fieldOrder = []domain.Field{domain.FieldName, domain.FieldPhone, domain.FieldProject, domain.FieldLocation}

// formatFieldErrors joins validation messages in form order.
func formatFieldErrors(errs domain.FieldErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, f := range fieldOrder {
		if msg, ok := errs[f]; ok {
			msgs = append(msgs, msg)
		}
	}
	return strings.Join(msgs, "; ")
}

// resolveCatalogProject accepts a catalog id or a case-insensitive name.
func resolveCatalogProject(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}
	if id, err := strconv.Atoi(input); err == nil {
		if _, ok := domain.ProjectByID(id); ok {
			return id, nil
		}
		return 0, fmt.Errorf("unknown project id %d", id)
	}
	for _, p := range domain.ProjectCatalog[1:] {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}
	return 0, fmt.Errorf("unknown project %q", input)
}

func catalogNames() string {
	names := make([]string, 0, len(domain.ProjectCatalog)-1)
	for _, p := range domain.ProjectCatalog[1:] {
		names = append(names, fmt.Sprintf("%d=%s", p.ID, p.Name))
	}
	return strings.Join(names, ", ")
}

// lookupReferrer resolves the signed-in customer for a referral. A failed or
// empty lookup still yields the mobile number with an empty name.
func lookupReferrer(ctx context.Context, client gateway.Client, mobile string) (domain.Customer, error) {
	referrer := domain.Customer{Mobile: mobile}
	c, err := client.CustomerName(ctx, mobile)
	if err != nil {
		return referrer, err
	}
	if c != nil {
		referrer.Name = c.Name
		referrer.Mobile = domain.CoalesceStr(c.Mobile, mobile)
	}
	return referrer, nil
}

// leadFlags are the form inputs shared by enquiry and refer.
type leadFlags struct {
	name, phone, email, project, location string
}

func (f *leadFlags) register(cmd *cobra.Command, who string) {
	cmd.Flags().StringVar(&f.name, "name", "", who+" name")
	cmd.Flags().StringVar(&f.phone, "phone", "", who+" phone number (10 digits)")
	cmd.Flags().StringVar(&f.email, "email", "", who+" email (optional)")
	cmd.Flags().StringVar(&f.project, "project", "", "project id or name: "+catalogNames())
	cmd.Flags().StringVar(&f.location, "location", "", "interested location")
}

func (f *leadFlags) form() (domain.LeadForm, error) {
	id, err := resolveCatalogProject(f.project)
	if err != nil {
		return domain.LeadForm{}, err
	}
	return domain.LeadForm{Name: f.name, Phone: f.phone, Email: f.email, ProjectID: id, Location: f.location}, nil
}

// runLead validates, submits and reports one lead.
func runLead(cmd *cobra.Command, app *App, kind domain.LeadKind, f *leadFlags, referrer func(ctx context.Context) domain.Customer) error {
	form, err := f.form()
	if err != nil {
		return err
	}
	m := screen.NewFormMachine(kind)
	m.Form = form
	if ok, err := m.Submit(); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("invalid %s: %s", kind, formatFieldErrors(m.Errors))
	}

	err = withSpinner(cmd, app, "Submitting...", func(ctx context.Context) error {
		var ref domain.Customer
		if referrer != nil {
			ref = referrer(ctx)
		}
		return app.Gateway.SubmitLead(ctx, m.Lead(ref))
	})
	if err != nil {
		app.Logger.Error().Err(err).Str("lead", string(kind)).Msg("lead submission failed")
		_ = m.Fail(gateway.UserMessage(err, m.FailureFallback()))
		return fmt.Errorf("%s: %w", m.Alert, err)
	}
	_ = m.Succeed()
	fmt.Fprintln(out(cmd), formatter.Alert(m.Alert, false))
	return nil
}

func newEnquiryCmd(app *App) *cobra.Command {
	var f leadFlags

	cmd := &cobra.Command{
		Use:   "enquiry",
		Short: "Send a project enquiry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLead(cmd, app, domain.LeadEnquiry, &f, nil)
		},
	}

	f.register(cmd, "your")
	return cmd
}

func newReferCmd(app *App) *cobra.Command {
	var f leadFlags
	var referrerMobile string

	cmd := &cobra.Command{
		Use:   "refer",
		Short: "Refer a friend to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if msg := domain.ValidatePhone(referrerMobile); msg != "" {
				return fmt.Errorf("--referrer-mobile: %s", msg)
			}
			return runLead(cmd, app, domain.LeadReferral, &f, func(ctx context.Context) domain.Customer {
				ref, err := lookupReferrer(ctx, app.Gateway, referrerMobile)
				if err != nil {
					app.Logger.Warn().Err(err).Msg("referrer lookup failed")
				}
				return ref
			})
		},
	}

	f.register(cmd, "friend's")
	cmd.Flags().StringVar(&referrerMobile, "referrer-mobile", "", "your registered mobile number")
	_ = cmd.MarkFlagRequired("referrer-mobile")
	return cmd
}
