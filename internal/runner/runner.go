// Package runner loads a compiled macro and invokes its entry point in an
// embedded Lua VM.
//
// The VM is created fresh per run and exposes a single builtin, sh, which
// executes its argument as a shell command line. Everything a macro does
// flows through that builtin; there is no other host surface.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/macrec/macrec/internal/macro"
	"github.com/macrec/macrec/internal/script"
)

// Runner resolves macros through a store and executes them.
type Runner struct {
	store  *macro.Store
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New creates a Runner wired to the process stdio.
func New(store *macro.Store) *Runner {
	return &Runner{
		store:  store,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// SetStdio redirects the shell streams macro commands run against.
func (r *Runner) SetStdio(stdin io.Reader, stdout, stderr io.Writer) {
	r.stdin = stdin
	r.stdout = stdout
	r.stderr = stderr
}

// Run resolves name through the store (anonymous-name mapping applies),
// loads the macro source into a fresh Lua state, and calls its entry
// point with the forwarded arguments as a mutable, ordered, 1-based Lua
// table (empty table when none are supplied).
//
// A MACRO_NOT_FOUND resolution failure propagates unchanged. Errors raised
// inside the macro, including failing shell commands, abort the run.
func (r *Runner) Run(ctx context.Context, name string, args []string) error {
	src, err := r.store.ReadSource(name)
	if err != nil {
		return err
	}

	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	L.SetGlobal("sh", L.NewFunction(r.shBuiltin(ctx)))

	if err := L.DoString(string(src)); err != nil {
		return fmt.Errorf("load macro %q: %w", macro.DisplayName(name), err)
	}

	entry := L.GetGlobal(script.EntryPoint)
	if entry.Type() != lua.LTFunction {
		return fmt.Errorf("macro %q has no %s entry point", macro.DisplayName(name), script.EntryPoint)
	}

	argv := L.NewTable()
	for _, a := range args {
		argv.Append(lua.LString(a))
	}

	err = L.CallByParam(lua.P{
		Fn:      entry,
		NRet:    0,
		Protect: true,
	}, argv)
	if err != nil {
		return fmt.Errorf("run macro %q: %w", macro.DisplayName(name), err)
	}
	return nil
}
