package macro

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// AnonymousLiteral is the reserved user-facing name for the anonymous macro.
const AnonymousLiteral = "."

// anonymousName is the identifier the anonymous macro is stored under.
const anonymousName = "anonymous"

// fileExt is the filename extension of compiled macro files.
const fileExt = ".lua"

// StorageName maps a user-supplied macro name to its storage identifier.
// The reserved literal "." maps to "anonymous"; every name is NFC
// normalized so visually identical names hit the same file on disk.
func StorageName(name string) string {
	if name == AnonymousLiteral {
		return anonymousName
	}
	return norm.NFC.String(name)
}

// DisplayName maps a macro name to the form shown to users. The anonymous
// macro displays as ".<anonymous>" to distinguish it from a user macro that
// happens to be named "anonymous" by file content alone.
func DisplayName(name string) string {
	if name == AnonymousLiteral || name == anonymousName {
		return ".<anonymous>"
	}
	return norm.NFC.String(name)
}

// fileName returns the filename a macro is stored under in a root.
func fileName(name string) string {
	return StorageName(name) + fileExt
}

// nameFromFile derives a macro name from a macro filename, or "" if the
// filename is not a macro file.
func nameFromFile(file string) string {
	if !strings.HasSuffix(file, fileExt) {
		return ""
	}
	return strings.TrimSuffix(file, fileExt)
}
