package macro

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/afero"
)

// Root is one macro storage location. Protection is a capability flag on
// the root: Delete refuses to touch macros that resolve only to roots with
// Writable false.
type Root struct {
	// Label identifies the root in listings and diagnostics.
	Label string

	// Fs is the filesystem rooted at the macro directory.
	Fs afero.Fs

	// Writable marks the single root macros may be created in or deleted
	// from.
	Writable bool
}

// NewRoot builds a Root over the local filesystem at path. Read-only roots
// are wrapped so that no code path can accidentally write through them.
func NewRoot(label, path string, writable bool) Root {
	fs := afero.NewBasePathFs(afero.NewOsFs(), path)
	if !writable {
		fs = afero.NewReadOnlyFs(fs)
	}
	return Root{Label: label, Fs: fs, Writable: writable}
}

// Location is a resolved macro: the root it was found in plus its filename
// within that root.
type Location struct {
	Root Root
	Name string // storage name
	File string // filename within Root.Fs
}

// Entry is one row of a store listing.
type Entry struct {
	Root      string `json:"root"`
	Name      string `json:"name"`
	Protected bool   `json:"protected"`
}

// Store resolves macro names to files across an ordered list of roots.
// roots[0] is the writable root; it always wins resolution.
type Store struct {
	roots []Root

	// sysFs is the filesystem import sources and export destinations live
	// on. Swapped for a MemMapFs in tests.
	sysFs afero.Fs
}

// New creates a Store from one writable root and an ordered list of
// read-only search roots.
func New(writable Root, readonly ...Root) (*Store, error) {
	if !writable.Writable {
		return nil, fmt.Errorf("first root %q must be writable", writable.Label)
	}
	for _, r := range readonly {
		if r.Writable {
			return nil, fmt.Errorf("search root %q must be read-only", r.Label)
		}
	}
	roots := append([]Root{writable}, readonly...)
	return &Store{roots: roots, sysFs: afero.NewOsFs()}, nil
}

// Resolve maps a macro name to the first root containing its file, scanning
// the writable root first and then the read-only roots in their configured
// order. Fails with a MACRO_NOT_FOUND error if no root has it.
func (s *Store) Resolve(name string) (Location, error) {
	file := fileName(name)
	for _, root := range s.roots {
		ok, err := afero.Exists(root.Fs, file)
		if err != nil {
			return Location{}, fmt.Errorf("probe root %q: %w", root.Label, err)
		}
		if ok {
			return Location{Root: root, Name: StorageName(name), File: file}, nil
		}
	}
	return Location{}, NewNotFoundError(name)
}

// List enumerates every macro in every root, in root order and sorted per
// root. The listing is a one-shot snapshot; it is not restartable across
// store mutation.
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	for _, root := range s.roots {
		names, err := s.listRoot(root)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			entries = append(entries, Entry{
				Root:      root.Label,
				Name:      DisplayName(name),
				Protected: !root.Writable,
			})
		}
	}
	return entries, nil
}

// listRoot globs the macro files of a single root. A missing root directory
// is an empty root, not an error.
func (s *Store) listRoot(root Root) ([]string, error) {
	matches, err := afero.Glob(root.Fs, "*"+fileExt)
	if err != nil {
		return nil, fmt.Errorf("glob root %q: %w", root.Label, err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if n := nameFromFile(m); n != "" {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Show streams the resolved macro's raw file contents to w, unmodified.
func (s *Store) Show(name string, w io.Writer) error {
	loc, err := s.Resolve(name)
	if err != nil {
		return err
	}
	f, err := loc.Root.Fs.Open(loc.File)
	if err != nil {
		return fmt.Errorf("open macro %q: %w", DisplayName(name), err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("read macro %q: %w", DisplayName(name), err)
	}
	return nil
}

// ReadSource returns the resolved macro's raw file contents.
func (s *Store) ReadSource(name string) ([]byte, error) {
	loc, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}
	src, err := afero.ReadFile(loc.Root.Fs, loc.File)
	if err != nil {
		return nil, fmt.Errorf("read macro %q: %w", DisplayName(name), err)
	}
	return src, nil
}

// Write stores macro source under name in the writable root, silently
// overwriting any existing macro of that name. The write is a whole-file
// replace with no partial-write recovery.
func (s *Store) Write(name string, src []byte) error {
	root := s.roots[0]
	if err := root.Fs.MkdirAll("/", 0o755); err != nil {
		return fmt.Errorf("create writable root: %w", err)
	}
	if err := afero.WriteFile(root.Fs, fileName(name), src, 0o644); err != nil {
		return fmt.Errorf("write macro %q: %w", DisplayName(name), err)
	}
	return nil
}

// Delete removes a macro from the writable root. A macro that exists only
// in a read-only root fails with MACRO_PROTECTED; a macro that exists
// nowhere fails with MACRO_NOT_FOUND. Delete is therefore not idempotent:
// a second delete of the same writable macro reports MACRO_NOT_FOUND.
func (s *Store) Delete(name string) error {
	file := fileName(name)

	writable := s.roots[0]
	ok, err := afero.Exists(writable.Fs, file)
	if err != nil {
		return fmt.Errorf("probe root %q: %w", writable.Label, err)
	}
	if ok {
		if err := writable.Fs.Remove(file); err != nil {
			return fmt.Errorf("delete macro %q: %w", DisplayName(name), err)
		}
		return nil
	}

	for _, root := range s.roots[1:] {
		ok, err := afero.Exists(root.Fs, file)
		if err != nil {
			return fmt.Errorf("probe root %q: %w", root.Label, err)
		}
		if ok {
			return NewProtectedError(name)
		}
	}
	return NewNotFoundError(name)
}

// Clear removes the entire writable root and everything in it. Read-only
// roots are untouched. Clearing an absent root is a no-op.
func (s *Store) Clear() error {
	if err := s.roots[0].Fs.RemoveAll("/"); err != nil {
		return fmt.Errorf("clear writable root: %w", err)
	}
	return nil
}
