package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/vgn360/internal/cli/formatter"
	"github.com/alexanderramin/vgn360/internal/domain"
	"github.com/alexanderramin/vgn360/internal/nav"
)

// withSpinner runs fn, animating a spinner on stderr when attached to a terminal.
func withSpinner(cmd *cobra.Command, app *App, message string, fn func(ctx context.Context) error) error {
	if app.interactive() {
		stop := formatter.StartSpinner(cmd.ErrOrStderr(), message)
		defer stop()
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx)
}

func requireMobile(mobile string) error {
	if msg := domain.ValidatePhone(mobile); msg != "" {
		return fmt.Errorf("--mobile: %s", msg)
	}
	return nil
}

func newProjectsCmd(app *App) *cobra.Command {
	var mobile, filter string

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the booked projects of a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireMobile(mobile); err != nil {
				return err
			}
			var projects []domain.ProjectSummary
			err := withSpinner(cmd, app, "Loading projects...", func(ctx context.Context) (err error) {
				projects, err = app.Gateway.ListProjects(ctx, mobile)
				return err
			})
			if err != nil {
				return fmt.Errorf("listing projects: %w", err)
			}
			fmt.Fprintln(out(cmd), formatter.FormatProjectList(domain.FilterProjects(projects, filter)))
			return nil
		},
	}

	cmd.Flags().StringVar(&mobile, "mobile", "", "customer mobile number (10 digits)")
	cmd.Flags().StringVar(&filter, "filter", "", "only show projects whose name, unit or site contains this text")
	_ = cmd.MarkFlagRequired("mobile")

	return cmd
}

// projectFlags are the identifiers shared by project and receipts.
type projectFlags struct {
	projectID string
	tranID    string
	name      string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.projectID, "project-id", "", "project id")
	cmd.Flags().StringVar(&f.tranID, "tran-id", "", "project plot transaction id")
	cmd.Flags().StringVar(&f.name, "name", "", "project name shown in the heading")
	_ = cmd.MarkFlagRequired("project-id")
	_ = cmd.MarkFlagRequired("tran-id")
}

func newProjectCmd(app *App) *cobra.Command {
	var f projectFlags
	var site, unit string

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Show the booking details of one unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := nav.ProjectDetailsParams{ProjectID: f.projectID, ProjectTranID: f.tranID}
			if err := params.Validate(); err != nil {
				return err
			}
			var detail *domain.ProjectDetailRecord
			err := withSpinner(cmd, app, "Loading project details...", func(ctx context.Context) (err error) {
				detail, err = app.Gateway.ProjectDetail(ctx, f.projectID, f.tranID)
				return err
			})
			if err != nil {
				return fmt.Errorf("loading project details: %w", err)
			}
			heading := formatter.ProjectHeading{Name: f.name, Site: site, UnitNo: unit}
			fmt.Fprintln(out(cmd), formatter.FormatProjectDetail(heading, detail))
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&site, "site", "", "project site shown in the heading")
	cmd.Flags().StringVar(&unit, "unit", "", "unit number shown in the heading")

	return cmd
}

func newReceiptsCmd(app *App) *cobra.Command {
	var f projectFlags

	cmd := &cobra.Command{
		Use:   "receipts",
		Short: "List the payment receipts of one unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := nav.ReceiptDetailsParams{ProjectID: f.projectID, ProjectTranID: f.tranID}
			if err := params.Validate(); err != nil {
				return err
			}
			var receipts []domain.ReceiptRecord
			err := withSpinner(cmd, app, "Loading receipts...", func(ctx context.Context) (err error) {
				receipts, err = app.Gateway.Receipts(ctx, f.projectID, f.tranID)
				return err
			})
			if err != nil {
				return fmt.Errorf("loading receipts: %w", err)
			}
			fmt.Fprintln(out(cmd), formatter.FormatReceipts(f.name, receipts))
			return nil
		},
	}

	f.register(cmd)
	return cmd
}

func newCustomerCmd(app *App) *cobra.Command {
	var mobile string

	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Look up the customer registered for a mobile number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireMobile(mobile); err != nil {
				return err
			}
			var c *domain.Customer
			err := withSpinner(cmd, app, "Looking up customer...", func(ctx context.Context) (err error) {
				c, err = app.Gateway.CustomerName(ctx, mobile)
				return err
			})
			if err != nil {
				return fmt.Errorf("looking up customer: %w", err)
			}
			fmt.Fprintln(out(cmd), formatter.FormatCustomer(c, mobile))
			return nil
		},
	}

	cmd.Flags().StringVar(&mobile, "mobile", "", "customer mobile number (10 digits)")
	_ = cmd.MarkFlagRequired("mobile")

	return cmd
}
