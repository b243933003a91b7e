package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newFreshnessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "freshness [on|off]",
		Short:     "Query or set script freshness checking",
		Long:      "Without an argument, print whether changed scripts are reloaded. With on or off, change it.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var set *bool
			if len(args) == 1 {
				enabled, err := parseToggle(args[0])
				if err != nil {
					return err
				}
				set = &enabled
			}

			enabled, err := c.app.SetFreshness(cmd.Context(), targetFlag(cmd), set)
			if err != nil {
				return err
			}
			state := "off"
			if enabled {
				state = "on"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), state)
			return err
		},
	}
	cmd.Flags().Bool("daemon", false, "Apply to the background daemon")
	return cmd
}

func parseToggle(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	default:
		return false, zerr.With(zerr.Wrap(domain.ErrInvalidArgument, "expected on or off"), "value", s)
	}
}
