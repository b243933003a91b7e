package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
	"go.trai.ch/gridscript/internal/ui/output"
	"go.trai.ch/zerr"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

func (c *CLI) newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <file> <function> [arg...]",
		Short: "Call a script function",
		Long: `Call a function defined in a Lua script.

Each argument is a YAML flow value: a scalar (3, "x", true, null, "#N/A"),
a row ([1, 2, 3]) or rows ([[1, 2], [3, 4]]). At most 15 arguments are passed.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := callRequest(cmd, args)
			if err != nil {
				return err
			}

			result, err := c.app.Invoke(cmd.Context(), targetFlag(cmd), req)
			if err != nil {
				return err
			}

			if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
				return writeYAML(cmd.OutOrStdout(), result)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), output.RenderGrid(result, terminalWidth(cmd.OutOrStdout())))
			return err
		},
	}

	cmd.Flags().String("sheet", "", "Sheet of the calling cell")
	cmd.Flags().Int("row", 0, "Row of the calling cell, starting at 1")
	cmd.Flags().Int("col", 0, "Column of the calling cell, starting at 1")
	cmd.Flags().Bool("wizard", false, "Evaluate as the host's function wizard would")
	cmd.Flags().Bool("yaml", false, "Print the result as YAML")
	cmd.Flags().Bool("daemon", false, "Run the call in the background daemon")
	return cmd
}

func callRequest(cmd *cobra.Command, args []string) (ports.CallRequest, error) {
	req := ports.CallRequest{
		File:     args[0],
		Function: args[1],
		Caller:   domain.NoCaller(),
	}

	for _, arg := range args[2:] {
		g, err := parseGrid(arg)
		if err != nil {
			return req, err
		}
		req.Args = append(req.Args, g)
	}

	sheet, _ := cmd.Flags().GetString("sheet")
	row, _ := cmd.Flags().GetInt("row")
	col, _ := cmd.Flags().GetInt("col")
	if sheet != "" || row != 0 || col != 0 {
		if row < 1 || col < 1 {
			return req, zerr.Wrap(domain.ErrInvalidArgument, "--row and --col must both be given and start at 1")
		}
		if sheet == "" {
			sheet = "Sheet1"
		}
		req.Caller = domain.CellCaller(sheet, row-1, col-1)
	}
	req.Caller.Wizard, _ = cmd.Flags().GetBool("wizard")
	return req, nil
}

func writeYAML(w io.Writer, g domain.Grid) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlGrid(g)); err != nil {
		return zerr.Wrap(err, "failed to encode result")
	}
	return enc.Close()
}

// terminalWidth returns the width of w when it is a terminal and 0 otherwise.
func terminalWidth(w io.Writer) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || !output.IsTerminal(w) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int
	if err != nil {
		return 0
	}
	return width
}
