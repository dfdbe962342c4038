package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/macrec/macrec/internal/config"
	"github.com/macrec/macrec/internal/history"
	"github.com/macrec/macrec/internal/macro"
	"github.com/macrec/macrec/internal/record"
)

// historyNamespace is the log namespace shared with the host tool's
// command-history feature.
const historyNamespace = "local.history"

// dispatch selects exactly one action per invocation, in fixed priority
// order. There is no flag combination logic beyond this precedence.
func dispatch(opts *Options, cmd *cobra.Command, args []string) error {
	env, err := newEnv(opts, cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}

	switch {
	case opts.List:
		return runList(env, cmd)
	case opts.Show:
		return runShow(env, opts, cmd)
	case opts.Clear:
		return runClear(env)
	case opts.Delete:
		return runDelete(env, opts)
	case opts.Import != "":
		return runImport(env, opts)
	case opts.Export != "":
		return runExport(env, opts)
	case opts.Begin:
		return runBegin(env, cmd)
	case opts.End:
		return runEnd(env, opts, cmd)
	case opts.Record != "":
		return runRecord(env, opts, cmd)
	default:
		return runMacro(env, opts, cmd, args)
	}
}

// env is the wiring one invocation works against: resolved configuration,
// the macro store, and an output formatter.
type env struct {
	cfg *config.Config
	st  *macro.Store
	out *OutputFormatter
}

// newEnv resolves the project directory, loads configuration, and builds
// the macro store with the writable root first and the configured search
// roots after it.
func newEnv(opts *Options, cmd *cobra.Command) (*env, error) {
	projectDir := opts.Project
	if projectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		projectDir = config.FindProjectDir(cwd)
	}

	cfg, err := config.Load(projectDir)
	if err != nil {
		return nil, err
	}
	slog.Debug("configuration loaded",
		"project", projectDir,
		"writable_root", cfg.WritableRoot,
		"search_roots", len(cfg.SearchRoots))

	writable := macro.NewRoot("local", cfg.WritableRoot, true)
	readonly := make([]macro.Root, 0, len(cfg.SearchRoots))
	for _, path := range cfg.SearchRoots {
		readonly = append(readonly, macro.NewRoot(path, path, false))
	}
	st, err := macro.New(writable, readonly...)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg: cfg,
		st:  st,
		out: &OutputFormatter{
			Format: opts.Format,
			Writer: cmd.OutOrStdout(),
		},
	}, nil
}

// withSession opens the history log for the duration of one recording
// action. Each invocation is short-lived: open, one logical action, close.
func (e *env) withSession(fn func(s *record.Session) error) error {
	if err := os.MkdirAll(filepath.Dir(e.cfg.LogPath), 0o755); err != nil {
		return WrapExitError(ExitCommandError, "failed to create log directory", err)
	}
	log, err := history.Open(e.cfg.LogPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history log", err)
	}
	defer func() {
		if closeErr := log.Close(); closeErr != nil {
			slog.Error("error closing history log", "error", closeErr)
		}
	}()

	return fn(record.NewSession(log.Enter(historyNamespace), e.st))
}

// macroName applies the anonymous default: actions that accept an omitted
// --name operate on the anonymous macro.
func macroName(opts *Options) string {
	if opts.MacroName == "" {
		return macro.AnonymousLiteral
	}
	return opts.MacroName
}

// actionContext returns the command's context, falling back to Background.
func actionContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
