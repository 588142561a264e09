package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/vgn360/internal/cli/formatter"
	"github.com/alexanderramin/vgn360/internal/gateway"
	"github.com/alexanderramin/vgn360/internal/screen"
)

func newOTPCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "otp",
		Short: "Request or check a login code",
	}
	cmd.AddCommand(newOTPSendCmd(app), newOTPVerifyCmd(app))
	return cmd
}

func newOTPSendCmd(app *App) *cobra.Command {
	var mobile string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Ask the server to send a login code by SMS",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireMobile(mobile); err != nil {
				return err
			}
			var d *gateway.OTPDelivery
			err := withSpinner(cmd, app, "Sending code...", func(ctx context.Context) (err error) {
				d, err = app.Gateway.GenerateOTP(ctx, mobile)
				return err
			})
			if err != nil {
				return fmt.Errorf("sending code: %w", err)
			}
			if d.Delivered {
				fmt.Fprintln(out(cmd), formatter.Alert("Code delivered to "+formatter.DisplayPhone(mobile), false))
				return nil
			}
			fmt.Fprintln(out(cmd), formatter.Alert(screen.MsgOTPSent, false))
			return nil
		},
	}

	cmd.Flags().StringVar(&mobile, "mobile", "", "mobile number (10 digits)")
	_ = cmd.MarkFlagRequired("mobile")
	return cmd
}

func newOTPVerifyCmd(app *App) *cobra.Command {
	var mobile, code string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a login code with the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireMobile(mobile); err != nil {
				return err
			}
			m := screen.NewOTPMachine(screen.OTPServer, mobile, "", false)
			m.Code = code
			if !m.Verify() {
				return fmt.Errorf("%s", m.Alert)
			}
			var ok bool
			err := withSpinner(cmd, app, "Verifying...", func(ctx context.Context) (err error) {
				ok, err = app.Gateway.VerifyOTP(ctx, mobile, code)
				return err
			})
			_ = m.Resolve(ok, err)
			if m.State() != screen.Authenticated {
				if err != nil {
					return fmt.Errorf("%s: %w", m.Alert, err)
				}
				return fmt.Errorf("%s", m.Alert)
			}
			fmt.Fprintln(out(cmd), formatter.Alert("Code verified", false))
			return nil
		},
	}

	cmd.Flags().StringVar(&mobile, "mobile", "", "mobile number (10 digits)")
	cmd.Flags().StringVar(&code, "code", "", "4-digit code")
	_ = cmd.MarkFlagRequired("mobile")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}
