package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// runList enumerates every macro across all roots, writable root first.
func runList(e *env, cmd *cobra.Command) error {
	entries, err := e.st.List()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list macros", err)
	}

	if e.out.Format == "json" {
		return e.out.Success(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No macros found.")
		return nil
	}

	rootLabel := color.New(color.FgCyan).SprintFunc()
	protected := color.New(color.FgYellow).SprintFunc()
	for _, entry := range entries {
		marker := ""
		if entry.Protected {
			marker = " " + protected("(read-only)")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s%s\n", rootLabel(entry.Root+":"), entry.Name, marker)
	}
	return nil
}
