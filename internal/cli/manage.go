package cli

import (
	"github.com/spf13/cobra"

	"github.com/macrec/macrec/internal/macro"
)

// runShow streams a macro's raw source to stdout, unmodified.
func runShow(e *env, opts *Options, cmd *cobra.Command) error {
	name := macroName(opts)
	if err := e.st.Show(name, cmd.OutOrStdout()); err != nil {
		if macro.IsNotFound(err) {
			return WrapExitError(ExitFailure, "show failed", err)
		}
		return WrapExitError(ExitCommandError, "show failed", err)
	}
	return nil
}

// runDelete removes a macro from the writable root. Macros that live only
// in a read-only root are protected and the delete fails.
func runDelete(e *env, opts *Options) error {
	name := macroName(opts)
	if err := e.st.Delete(name); err != nil {
		if macro.IsNotFound(err) || macro.IsProtected(err) {
			return WrapExitError(ExitFailure, "delete failed", err)
		}
		return WrapExitError(ExitCommandError, "delete failed", err)
	}
	e.out.Text("deleted macro %s", macro.DisplayName(name))
	if e.out.Format == "json" {
		return e.out.Success(map[string]string{"deleted": macro.DisplayName(name)})
	}
	return nil
}

// runClear removes the entire writable root. Read-only roots are untouched.
func runClear(e *env) error {
	if err := e.st.Clear(); err != nil {
		return WrapExitError(ExitCommandError, "clear failed", err)
	}
	e.out.Text("cleared all local macros")
	if e.out.Format == "json" {
		return e.out.Success(map[string]bool{"cleared": true})
	}
	return nil
}
