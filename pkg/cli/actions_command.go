package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/actionsmith/inputguard/pkg/actions"
	"github.com/actionsmith/inputguard/pkg/console"
)

// NewActionsCommand creates the actions command
func NewActionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List the action types with a built-in custom validator",
		Long: `List the action types whose validation is owned by a compiled-in custom
validator rather than convention matching. Any other action type falls
back to convention-based validation of its inputs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			builtins := actions.Builtins()
			rows := make([][]string, 0, len(builtins))
			for _, builtin := range builtins {
				rows = append(rows, []string{builtin.Action.String(), builtin.Description})
			}

			table := console.TableConfig{
				Title:   "Built-in custom validators",
				Headers: []string{"Action", "Description"},
				Rows:    rows,
			}
			fmt.Fprint(os.Stdout, console.RenderTable(table))
			return nil
		},
	}
}
