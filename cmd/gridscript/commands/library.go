package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/gridscript/internal/app"
)

func (c *CLI) newLibraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "library <" + app.LibraryLua + "|" + app.LibraryGridscript + ">",
		Short:     "Print the location of a loaded component",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{app.LibraryLua, app.LibraryGridscript},
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := c.app.Library(cmd.Context(), targetFlag(cmd), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), loc)
			return err
		},
	}
	cmd.Flags().Bool("daemon", false, "Ask the background daemon")
	return cmd
}
