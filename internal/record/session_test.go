package record

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrec/macrec/internal/macro"
)

// memLog is an in-memory Log for session tests.
type memLog struct {
	entries []string
}

func (m *memLog) Load(_ context.Context, _ string) ([]string, error) {
	return append([]string{}, m.entries...), nil
}

func (m *memLog) Save(_ context.Context, _ string, value string) error {
	m.entries = append(m.entries, value)
	return nil
}

func newTestSession(t *testing.T, entries ...string) (*Session, *memLog, afero.Fs) {
	t.Helper()
	wfs := afero.NewMemMapFs()
	store, err := macro.New(macro.Root{Label: "local", Fs: wfs, Writable: true})
	require.NoError(t, err)
	log := &memLog{entries: entries}
	return NewSession(log, store), log, wfs
}

func TestBeginAppendsSentinel(t *testing.T) {
	s, log, _ := newTestSession(t)
	require.NoError(t, s.Begin(context.Background()))
	assert.Equal(t, []string{beginSentinel}, log.entries)
}

func TestBeginDoesNotRejectOpenSession(t *testing.T) {
	s, log, _ := newTestSession(t, beginSentinel, "echo outer")
	require.NoError(t, s.Begin(context.Background()))
	assert.Equal(t, []string{beginSentinel, "echo outer", beginSentinel}, log.entries)
}

func TestEndCompilesCapturedBlock(t *testing.T) {
	s, log, wfs := newTestSession(t, beginSentinel, "echo a", "echo b")

	m, err := s.End(context.Background(), "demo")
	require.NoError(t, err)
	assert.Equal(t, []string{"echo a", "echo b"}, m.Commands())

	// Log gained exactly one end sentinel at the tail.
	assert.Equal(t, []string{beginSentinel, "echo a", "echo b", endSentinel}, log.entries)

	src, err := afero.ReadFile(wfs, "demo.lua")
	require.NoError(t, err)
	assert.Contains(t, string(src), `sh("echo a")`)
	assert.Contains(t, string(src), `sh("echo b")`)
	assert.Contains(t, string(src), "function main(argv)")
}

func TestEndEmptyLogFails(t *testing.T) {
	s, log, _ := newTestSession(t)

	_, err := s.End(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, IsNoActiveSession(err))

	// A failed end must not close anything.
	assert.Empty(t, log.entries)
}

func TestEndAfterClosedSessionFails(t *testing.T) {
	s, log, _ := newTestSession(t, beginSentinel, "echo a", endSentinel)

	_, err := s.End(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, IsNoActiveSession(err))
	assert.Len(t, log.entries, 3, "no extra sentinel appended")
}

func TestEndCapturesFromInnermostBegin(t *testing.T) {
	s, _, _ := newTestSession(t, beginSentinel, "echo outer", beginSentinel, "echo inner")

	m, err := s.End(context.Background(), "nested")
	require.NoError(t, err)
	assert.Equal(t, []string{"echo inner"}, m.Commands())
}

func TestEndFiltersSelfInvocations(t *testing.T) {
	s, _, _ := newTestSession(t,
		beginSentinel,
		"echo a",
		"macrec --begin",
		"./macrec --end --name=demo",
		"/usr/local/bin/macrec --name=other arg1",
		"man macrec",
		"echo b",
	)

	m, err := s.End(context.Background(), "demo")
	require.NoError(t, err)
	assert.Equal(t, []string{"echo a", "man macrec", "echo b"}, m.Commands())
}

func TestEndEmptyBlockCompiles(t *testing.T) {
	s, _, wfs := newTestSession(t, beginSentinel)

	m, err := s.End(context.Background(), "noop")
	require.NoError(t, err)
	assert.Empty(t, m.Commands())

	ok, err := afero.Exists(wfs, "noop.lua")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEndAnonymousName(t *testing.T) {
	s, _, wfs := newTestSession(t, beginSentinel, "echo anon")

	_, err := s.End(context.Background(), ".")
	require.NoError(t, err)

	ok, err := afero.Exists(wfs, "anonymous.lua")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEndEscapesSpecialCharacters(t *testing.T) {
	s, _, wfs := newTestSession(t, beginSentinel, `echo "quoted" C:\tmp`)

	_, err := s.End(context.Background(), "tricky")
	require.NoError(t, err)

	src, err := afero.ReadFile(wfs, "tricky.lua")
	require.NoError(t, err)
	assert.Contains(t, string(src), `sh("echo \"quoted\" C:\\tmp")`)
}

func TestEndOverwritesExistingMacro(t *testing.T) {
	s, _, wfs := newTestSession(t, beginSentinel, "echo new")
	require.NoError(t, afero.WriteFile(wfs, "demo.lua", []byte("old"), 0o644))

	_, err := s.End(context.Background(), "demo")
	require.NoError(t, err)

	src, err := afero.ReadFile(wfs, "demo.lua")
	require.NoError(t, err)
	assert.Contains(t, string(src), "echo new")
	assert.NotContains(t, string(src), "old")
}

func TestRecordAppendsRawLine(t *testing.T) {
	s, log, _ := newTestSession(t)
	require.NoError(t, s.Record(context.Background(), "echo raw"))
	assert.Equal(t, []string{"echo raw"}, log.entries)
}

func TestIsSelfInvocation(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"macrec --begin", true},
		{"macrec --end --name=x", true},
		{"./macrec --name=x", true},
		{"/usr/bin/macrec --list", true},
		{"macrec.exe --begin", true},
		{"macrec", true},
		{"man macrec", false},
		{"echo macrec --begin", false},
		{"macreconfig tool", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isSelfInvocation(tt.line), "line %q", tt.line)
	}
}
