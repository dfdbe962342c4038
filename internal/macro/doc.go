// Package macro resolves and manages macro files across a layered set of
// storage roots.
//
// A store has exactly one writable root (under the project's local
// configuration area) followed by zero or more read-only search roots.
// Resolution scans roots in order and the first root containing the macro
// file wins, so a user-authored macro in the writable root shadows a
// built-in one of the same name.
//
// Protection is a capability of the root, not a property of the macro:
// macros found only in a read-only root cannot be deleted through the
// store and attempting to do so fails with a MACRO_PROTECTED error.
package macro
