// Package cli implements the macrec command surface: a single command with
// mutually exclusive action flags dispatched in a fixed priority order.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Options holds every flag of the macrec command.
type Options struct {
	Verbose bool
	Format  string // "json" | "text"
	Project string

	List      bool
	Show      bool
	Clear     bool
	Delete    bool
	Import    string
	Export    string
	Begin     bool
	End       bool
	Record    string
	MacroName string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the macrec command.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "macrec [flags] [-- macro-args...]",
		Short: "Record and replay command-line macros",
		Long: `macrec records previously issued command lines from the shared history
log and compiles them into named, replayable Lua macros.

Exactly one action runs per invocation. When several action flags are
given, the first in this order wins:
  --list > --show > --clear > --delete > --import > --export >
  --begin > --end > run

With no action flag, macrec runs the macro named by --name (the
anonymous macro "." when --name is omitted), forwarding any positional
arguments to it.

Examples:
  macrec --begin
  macrec --end --name=rebuild
  macrec --name=rebuild
  macrec --list
  macrec --export=./shared`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(opts)
			return dispatch(opts, cmd, args)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Project, "project", "", "project directory (default: walk up from cwd)")

	cmd.Flags().BoolVar(&opts.List, "list", false, "list all macros across all roots")
	cmd.Flags().BoolVar(&opts.Show, "show", false, "print a macro's source")
	cmd.Flags().BoolVar(&opts.Clear, "clear", false, "remove the writable root and every macro in it")
	cmd.Flags().BoolVar(&opts.Delete, "delete", false, "delete a writable-root macro")
	cmd.Flags().StringVar(&opts.Import, "import", "", "import a macro file or every macro in a directory")
	cmd.Flags().StringVar(&opts.Export, "export", "", "export one macro or every visible macro")
	cmd.Flags().BoolVar(&opts.Begin, "begin", false, "start a recording session")
	cmd.Flags().BoolVar(&opts.End, "end", false, "close the session and compile the macro")
	cmd.Flags().StringVar(&opts.Record, "record", "", "append one raw command line to the history log")
	_ = cmd.Flags().MarkHidden("record")
	cmd.Flags().StringVarP(&opts.MacroName, "name", "n", "", "macro name (\".\" is the anonymous macro)")

	return cmd
}

// configureLogging sets up slog on stderr, debug level when --verbose.
func configureLogging(opts *Options) {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
