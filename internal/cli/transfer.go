package cli

// runImport copies one macro file, or every macro in a directory, into the
// writable root. Directory mode is best-effort: each imported macro is
// reported as it lands and earlier copies are kept if a later one fails.
func runImport(e *env, opts *Options) error {
	var imported []string
	err := e.st.Import(opts.Import, macroName(opts), func(name string) {
		imported = append(imported, name)
		e.out.Text("imported macro %s", name)
	})
	if err != nil {
		return WrapExitError(ExitFailure, "import failed", err)
	}
	if e.out.Format == "json" {
		return e.out.Success(map[string]interface{}{"imported": imported})
	}
	return nil
}

// runExport copies one resolved macro to a file, or every macro visible
// across all roots into a directory. Same best-effort semantics as import.
func runExport(e *env, opts *Options) error {
	var exported []string
	err := e.st.Export(opts.Export, macroName(opts), func(name string) {
		exported = append(exported, name)
		e.out.Text("exported macro %s", name)
	})
	if err != nil {
		return WrapExitError(ExitFailure, "export failed", err)
	}
	if e.out.Format == "json" {
		return e.out.Success(map[string]interface{}{"exported": exported})
	}
	return nil
}
