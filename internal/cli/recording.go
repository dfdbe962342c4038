package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macrec/macrec/internal/macro"
	"github.com/macrec/macrec/internal/record"
)

// runBegin marks the start of a recording session in the history log.
func runBegin(e *env, cmd *cobra.Command) error {
	return e.withSession(func(s *record.Session) error {
		if err := s.Begin(actionContext(cmd)); err != nil {
			return WrapExitError(ExitCommandError, "begin failed", err)
		}
		e.out.Text("recording started")
		if e.out.Format == "json" {
			return e.out.Success(map[string]bool{"recording": true})
		}
		return nil
	})
}

// runEnd closes the session, compiles the captured block into a macro, and
// displays the generated source.
func runEnd(e *env, opts *Options, cmd *cobra.Command) error {
	name := macroName(opts)
	return e.withSession(func(s *record.Session) error {
		m, err := s.End(actionContext(cmd), name)
		if err != nil {
			if record.IsNoActiveSession(err) {
				return WrapExitError(ExitFailure, "end failed", err)
			}
			return WrapExitError(ExitCommandError, "end failed", err)
		}

		if e.out.Format == "json" {
			return e.out.Success(map[string]interface{}{
				"macro":    macro.DisplayName(name),
				"commands": m.Commands(),
			})
		}
		// Same view as --show, then the success line.
		fmt.Fprint(cmd.OutOrStdout(), string(m.Render()))
		e.out.Text("recorded macro %s (%d commands)", macro.DisplayName(name), len(m.Steps))
		return nil
	})
}

// runRecord appends one raw command line to the history log. This is the
// host tool's hook point, hidden from help output.
func runRecord(e *env, opts *Options, cmd *cobra.Command) error {
	return e.withSession(func(s *record.Session) error {
		if err := s.Record(actionContext(cmd), opts.Record); err != nil {
			return WrapExitError(ExitCommandError, "record failed", err)
		}
		return nil
	})
}
