package runner

import (
	"context"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// shBuiltin adapts execShell into the Lua builtin sh("command line").
// A failing command raises a Lua error, aborting the macro.
func (r *Runner) shBuiltin(ctx context.Context) lua.LGFunction {
	return func(L *lua.LState) int {
		cmdline := L.CheckString(1)
		if err := r.execShell(ctx, cmdline); err != nil {
			L.RaiseError("sh(%q): %v", cmdline, err)
		}
		return 0
	}
}

// execShell parses and runs one command line with an embedded POSIX shell
// interpreter wired to the runner's stdio. The interpreter inherits the
// process environment and working directory.
func (r *Runner) execShell(ctx context.Context, cmdline string) error {
	file, err := syntax.NewParser().Parse(strings.NewReader(cmdline), "")
	if err != nil {
		return fmt.Errorf("parse command: %w", err)
	}

	sh, err := interp.New(
		interp.StdIO(r.stdin, r.stdout, r.stderr),
	)
	if err != nil {
		return fmt.Errorf("init shell: %w", err)
	}

	return sh.Run(ctx, file)
}
