package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/gridscript/internal/core/ports"
	"go.trai.ch/gridscript/internal/ui/style"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the daemon in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			socket, _ := cmd.Flags().GetString("socket")
			return c.app.Serve(cmd.Context(), socket)
		},
	}
	cmd.Flags().String("socket", "", "Socket path overriding the configuration")
	_ = cmd.Flags().MarkHidden("socket")
	return cmd
}

func (c *CLI) newDaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Manage the background daemon",
	}

	cmd.AddCommand(c.newDaemonStatusCmd())
	cmd.AddCommand(c.newDaemonStopCmd())

	return cmd
}

func (c *CLI) newDaemonStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := c.app.DaemonStatus(cmd.Context())
			if err != nil {
				return err
			}
			return writeStatus(cmd.OutOrStdout(), st)
		},
	}
}

func (c *CLI) newDaemonStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stopped, err := c.app.StopDaemon(cmd.Context())
			if err != nil {
				return err
			}
			msg := style.Dot + " daemon is not running"
			if stopped {
				msg = style.Check + " daemon stopped"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
			return err
		},
	}
}

func writeStatus(w io.Writer, st *ports.DaemonStatus) error {
	if !st.Running {
		_, err := fmt.Fprintln(w, style.Dot+" daemon is not running")
		return err
	}

	freshness := "off"
	if st.Cache.Freshness {
		freshness = "on"
	}
	_, _ = fmt.Fprintf(w, "%s daemon running (pid %d)\n", style.Check, st.PID)
	_, _ = fmt.Fprintf(w, "  uptime:         %s\n", st.Uptime.Round(time.Second))
	_, _ = fmt.Fprintf(w, "  last activity:  %s\n", st.LastActivity.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "  idle remaining: %s\n", st.IdleRemaining.Round(time.Second))
	_, _ = fmt.Fprintf(w, "  freshness:      %s\n", freshness)
	_, err := fmt.Fprintf(w, "  modules:        %d\n", len(st.Cache.Modules))
	for _, m := range st.Cache.Modules {
		mark := style.Check
		if !m.Clean {
			mark = style.Warning
		}
		_, err = fmt.Fprintf(w, "    %s %s (reloads: %d, fingerprint: %016x)\n", mark, m.Path, m.Reloads, m.Fingerprint)
	}
	return err
}
