// Package script models a compiled macro as typed data and renders it to
// Lua source.
//
// A macro is an ordered sequence of shell command steps. Keeping the steps
// as structured data and rendering in a separate pass keeps the escaping
// rules in one place instead of spread through the capture loop.
package script

import (
	"bytes"
	"fmt"
	"strings"
)

// EntryPoint is the name of the function every rendered macro exposes.
// The runner looks this global up after loading the source.
const EntryPoint = "main"

// Step is a single replayed shell command.
type Step struct {
	// Command is the exact command line as captured, unescaped.
	Command string
}

// Macro is a compiled macro: a name plus an ordered sequence of steps.
type Macro struct {
	Name  string
	Steps []Step
}

// New builds a Macro from raw captured command lines, preserving order.
func New(name string, commands []string) *Macro {
	steps := make([]Step, len(commands))
	for i, c := range commands {
		steps[i] = Step{Command: c}
	}
	return &Macro{Name: name, Steps: steps}
}

// Commands returns the step commands in order.
func (m *Macro) Commands() []string {
	cmds := make([]string, len(m.Steps))
	for i, s := range m.Steps {
		cmds[i] = s.Command
	}
	return cmds
}

// Render serializes the macro to Lua source.
//
// The generated script exposes a single entry point:
//
//	function main(argv)
//	    sh("echo hello")
//	end
//
// Each step becomes one sh(...) call with the captured command embedded as a
// Lua string literal. The sh builtin is provided by the runner at load time.
func (m *Macro) Render() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "-- macro %q\n", m.Name)
	fmt.Fprintf(&buf, "function %s(argv)\n", EntryPoint)
	for _, s := range m.Steps {
		fmt.Fprintf(&buf, "    sh(\"%s\")\n", EscapeLua(s.Command))
	}
	buf.WriteString("end\n")
	return buf.Bytes()
}

// EscapeLua escapes a command line for embedding in a double-quoted Lua
// string literal. Backslashes must be doubled before quotes are escaped,
// otherwise the escape for the quote would itself be doubled.
func EscapeLua(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
