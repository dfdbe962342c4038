package cli

import (
	"github.com/spf13/cobra"

	"github.com/macrec/macrec/internal/runner"
)

// runMacro is the default action: resolve the named macro (anonymous when
// --name is omitted) and invoke its entry point with the positional
// arguments forwarded verbatim.
func runMacro(e *env, opts *Options, cmd *cobra.Command, args []string) error {
	name := macroName(opts)

	r := runner.New(e.st)
	r.SetStdio(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())

	if err := r.Run(actionContext(cmd), name, args); err != nil {
		return WrapExitError(ExitFailure, "run failed", err)
	}
	return nil
}
