package macro

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Import copies macro files from the local filesystem into the writable
// root, silently overwriting same-named macros.
//
// A directory source imports every macro file inside it under its derived
// name and name is ignored; a file source imports under name. Directory
// import is best-effort: each file is copied independently, report (if
// non-nil) is called once per imported macro, and an error aborts the rest
// without rolling back earlier copies.
func (s *Store) Import(source, name string, report func(name string)) error {
	info, err := s.sysFs.Stat(source)
	if err != nil {
		return fmt.Errorf("import source %q: %w", source, err)
	}

	if !info.IsDir() {
		if name == "" {
			return fmt.Errorf("import %q: macro name required", source)
		}
		if err := s.importFile(source, name); err != nil {
			return err
		}
		if report != nil {
			report(DisplayName(name))
		}
		return nil
	}

	files, err := afero.ReadDir(s.sysFs, source)
	if err != nil {
		return fmt.Errorf("read import directory %q: %w", source, err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		derived := nameFromFile(f.Name())
		if derived == "" {
			continue
		}
		if err := s.importFile(filepath.Join(source, f.Name()), derived); err != nil {
			return err
		}
		if report != nil {
			report(DisplayName(derived))
		}
	}
	return nil
}

// importFile copies one local file into the writable root under name.
func (s *Store) importFile(path, name string) error {
	src, err := afero.ReadFile(s.sysFs, path)
	if err != nil {
		return fmt.Errorf("read import file %q: %w", path, err)
	}
	return s.Write(name, src)
}

// Export copies macros out of the store onto the local filesystem.
//
// A directory destination receives every macro visible across all roots
// (writable shadowing read-only on name collision) and name is ignored; a
// file destination receives the single resolved macro name. Like Import,
// directory export is best-effort with per-file reporting and no rollback.
func (s *Store) Export(destination, name string, report func(name string)) error {
	info, err := s.sysFs.Stat(destination)
	if err == nil && info.IsDir() {
		return s.exportAll(destination, report)
	}

	if name == "" {
		return fmt.Errorf("export to %q: macro name required", destination)
	}
	loc, err := s.Resolve(name)
	if err != nil {
		return err
	}
	if err := s.exportFile(loc, destination); err != nil {
		return err
	}
	if report != nil {
		report(DisplayName(name))
	}
	return nil
}

// exportAll copies every visible macro into dir, one file per macro.
func (s *Store) exportAll(dir string, report func(name string)) error {
	visible := map[string]Location{}
	for _, root := range s.roots {
		names, err := s.listRoot(root)
		if err != nil {
			return err
		}
		for _, n := range names {
			if _, shadowed := visible[n]; shadowed {
				continue
			}
			visible[n] = Location{Root: root, Name: n, File: n + fileExt}
		}
	}

	names := make([]string, 0, len(visible))
	for n := range visible {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		if err := s.exportFile(visible[n], filepath.Join(dir, n+fileExt)); err != nil {
			return err
		}
		if report != nil {
			report(DisplayName(n))
		}
	}
	return nil
}

// exportFile copies one resolved macro to a local filesystem path.
func (s *Store) exportFile(loc Location, path string) error {
	src, err := afero.ReadFile(loc.Root.Fs, loc.File)
	if err != nil {
		return fmt.Errorf("read macro %q: %w", DisplayName(loc.Name), err)
	}
	if err := afero.WriteFile(s.sysFs, path, src, 0o644); err != nil {
		return fmt.Errorf("export macro %q to %q: %w", DisplayName(loc.Name), path, err)
	}
	return nil
}
