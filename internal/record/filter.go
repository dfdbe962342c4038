package record

import (
	"path/filepath"
	"strings"
)

// toolName is the basename of this tool's own binary. Captured command
// lines invoking it are never replayed.
const toolName = "macrec"

// isSelfInvocation reports whether a captured command line invokes the
// macro tool itself.
//
// Rule set, checked against the line's first field only:
//   - deny: the bare tool name ("macrec")
//   - deny: any path ending in the tool name ("./macrec", "/usr/bin/macrec")
//   - deny: the Windows executable form ("macrec.exe")
//   - allow: everything else, including commands that merely mention the
//     tool in an argument ("man macrec")
//
// Every self-invocation is dropped, not just --begin/--end: replaying a
// recorded run or import from inside a macro could re-enter the recording
// machinery recursively.
func isSelfInvocation(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	head := filepath.Base(fields[0])
	head = strings.TrimSuffix(head, ".exe")
	return head == toolName
}
