// Package commands implements the CLI commands for gridscript.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/gridscript/internal/app"
	"go.trai.ch/gridscript/internal/build"
	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
)

// CLI represents the command line interface for gridscript.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Configure(opts app.Options) error
	Invoke(ctx context.Context, target app.Target, req ports.CallRequest) (domain.Grid, error)
	SetFreshness(ctx context.Context, target app.Target, set *bool) (bool, error)
	Library(ctx context.Context, target app.Target, name string) (string, error)
	Serve(ctx context.Context, socketPath string) error
	DaemonStatus(ctx context.Context) (*ports.DaemonStatus, error)
	StopDaemon(ctx context.Context) (bool, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "gridscript",
		Short:         "Call Lua script functions with spreadsheet-style arguments",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	// Defined before the version flag: -v belongs to --verbose.
	rootCmd.PersistentFlags().String("config", "", "Path to gridscript.yaml (default: $"+domain.ConfigEnvVar+" or ./"+domain.ConfigFileName+")")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRunE = c.configure

	rootCmd.AddCommand(c.newCallCmd())
	rootCmd.AddCommand(c.newFreshnessCmd())
	rootCmd.AddCommand(c.newLibraryCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newDaemonCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) configure(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	return c.app.Configure(app.Options{
		ConfigPath: configPath,
		Verbose:    verbose,
		JSON:       jsonLogs,
	})
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func targetFlag(cmd *cobra.Command) app.Target {
	if viaDaemon, _ := cmd.Flags().GetBool("daemon"); viaDaemon {
		return app.Daemon
	}
	return app.InProcess
}
