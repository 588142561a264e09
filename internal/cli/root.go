package cli

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/vgn360/internal/config"
	"github.com/alexanderramin/vgn360/internal/gateway"
	"github.com/alexanderramin/vgn360/internal/session"
)

// App holds the dependencies shared by the TUI and the commands.
type App struct {
	Config  *config.Config
	Session *session.Store
	Gateway gateway.Client
	Logger  zerolog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool

	// Setup fills Config, Gateway and Logger once flags are parsed. fullscreen
	// is true when the TUI is about to start. Nil leaves the fields as set.
	Setup func(cmd *cobra.Command, fullscreen bool) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// Flags shared by every command.
const (
	flagConfig  = "config"
	flagEnvFile = "env-file"
)

// NewRootCmd creates the top-level "vgn360" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "vgn360",
		Short: "VGN 360 customer client: bookings, receipts, enquiries and referrals",
		Long: `vgn360 opens the interactive customer app when run in a terminal.
The subcommands call the same API for scripting.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Setup == nil {
				return nil
			}
			fullscreen := cmd.Parent() == nil && app.interactive()
			return app.Setup(cmd, fullscreen)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return RunTUI(cmd.Context(), app)
		},
	}

	pf := root.PersistentFlags()
	pf.String(flagConfig, "", "config file (yaml, json or toml)")
	pf.String(flagEnvFile, ".env", "dotenv file to load")
	config.BindFlags(pf)

	root.AddCommand(
		newProjectsCmd(app),
		newProjectCmd(app),
		newReceiptsCmd(app),
		newCustomerCmd(app),
		newEnquiryCmd(app),
		newReferCmd(app),
		newOTPCmd(app),
	)

	return root
}

// ConfigOptions extracts the config-loading options from a parsed command.
func ConfigOptions(cmd *cobra.Command) config.Options {
	file, _ := cmd.Flags().GetString(flagConfig)
	envFile, _ := cmd.Flags().GetString(flagEnvFile)
	return config.Options{File: file, EnvFile: envFile, Flags: cmd.Flags()}
}

// RunTUI runs the full-screen app until the user quits.
func RunTUI(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	state := newSharedState(ctx, app)
	p := tea.NewProgram(newAppModel(state), tea.WithAltScreen(), tea.WithContext(ctx))

	// Merges happen inside Update; Send must not block the event loop.
	unsubscribe := app.Session.Subscribe(func(prev, next session.State) {
		go p.Send(sessionChangedMsg{prev: prev, next: next})
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
