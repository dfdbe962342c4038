package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, DirName, "history.db"), cfg.LogPath)
	assert.Equal(t, filepath.Join(dir, DirName, "macros"), cfg.WritableRoot)
	assert.Empty(t, cfg.SearchRoots)
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, DirName), 0o755))
	content := `
log_path: custom/history.db
writable_root: /abs/macros
search_roots:
  - builtin/macros
  - /usr/share/macrec/macros
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DirName, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	// Relative paths resolve against the project dir; absolute ones stand.
	assert.Equal(t, filepath.Join(dir, "custom/history.db"), cfg.LogPath)
	assert.Equal(t, "/abs/macros", cfg.WritableRoot)
	require.Len(t, cfg.SearchRoots, 2)
	assert.Equal(t, filepath.Join(dir, "builtin/macros"), cfg.SearchRoots[0])
	assert.Equal(t, "/usr/share/macrec/macros", cfg.SearchRoots[1])
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, DirName), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, DirName, "config.yaml"),
		[]byte("search_roots: [shared]\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, DirName, "history.db"), cfg.LogPath)
	assert.Equal(t, filepath.Join(dir, DirName, "macros"), cfg.WritableRoot)
	assert.Equal(t, []string{filepath.Join(dir, "shared")}, cfg.SearchRoots)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, DirName), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, DirName, "config.yaml"),
		[]byte("log_path: [unclosed\n"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestFindProjectDirWalksUp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, DirName), 0o755))
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got := FindProjectDir(nested)
	assert.Equal(t, root, got)
}

func TestFindProjectDirFallsBackToStart(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	got := FindProjectDir(dir)
	assert.Equal(t, dir, got)
}
