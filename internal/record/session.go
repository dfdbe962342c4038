// Package record implements the macro recording session: marking a start
// point in the command history log, extracting the captured block, and
// compiling it into a stored macro.
//
// There is no persisted session state. Whether a recording is in progress
// is derived purely by scanning the log backward for sentinel markers, so
// a crash mid-recording loses nothing: a later end either completes the
// session from the log alone or correctly reports that none was begun.
package record

import (
	"context"

	"github.com/macrec/macrec/internal/macro"
	"github.com/macrec/macrec/internal/script"
)

// Sentinel log values delimiting one recording session. They live in the
// same append-only log as the command lines they bracket.
const (
	beginSentinel = "__macro_begin__"
	endSentinel   = "__macro_end__"
)

// Key is the history log key the command lines live under, shared with the
// host tool's command-history feature.
const Key = "cmdlines"

// Log is the slice of the history log the session needs: ordered reads and
// appends under a key. *history.Namespace satisfies it.
type Log interface {
	Load(ctx context.Context, key string) ([]string, error)
	Save(ctx context.Context, key, value string) error
}

// Session records command lines between a begin and an end marker and
// compiles the captured block into a macro.
type Session struct {
	log   Log
	store *macro.Store
}

// NewSession creates a recording session over the given log and store.
func NewSession(log Log, store *macro.Store) *Session {
	return &Session{log: log, store: store}
}

// Begin marks the start of a recording by appending the begin sentinel.
//
// Begin performs no scan and does not reject an already-open session: a
// nested begin simply appends another sentinel and a later End captures
// from the innermost one. This mirrors the append-only discipline - the
// log is never inspected on the write path.
func (s *Session) Begin(ctx context.Context) error {
	return s.log.Save(ctx, Key, beginSentinel)
}

// Record appends one raw command line to the log. The host tool calls this
// for every invocation it executes; recording sessions only ever see lines
// that were appended through here.
func (s *Session) Record(ctx context.Context, line string) error {
	return s.log.Save(ctx, Key, line)
}

// End closes the current recording session and compiles the captured block
// into a macro stored under name ("." stores the anonymous macro).
//
// The captured block is found by scanning strictly backward from the log's
// tail: an end sentinel before any begin means the last session was already
// closed, and an exhausted log means none was ever opened - both fail with
// NO_ACTIVE_SESSION. Once a begin is found the entries after it form the
// block in chronological order, minus any self-invocations of this tool.
// The end sentinel is appended only after a begin was found, closing the
// session regardless of what compilation does next.
func (s *Session) End(ctx context.Context, name string) (*script.Macro, error) {
	entries, err := s.log.Load(ctx, Key)
	if err != nil {
		return nil, err
	}

	block, found := extractBlock(entries)
	if !found {
		return nil, NewNoActiveSessionError()
	}

	if err := s.log.Save(ctx, Key, endSentinel); err != nil {
		return nil, err
	}

	m := script.New(macro.StorageName(name), block)
	if err := s.store.Write(name, m.Render()); err != nil {
		return nil, err
	}
	return m, nil
}

// extractBlock scans entries backward for the most recent sentinel. A begin
// sentinel yields the captured block (filtered, chronological); an end
// sentinel or an exhausted log yields found=false.
func extractBlock(entries []string) (block []string, found bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		switch entries[i] {
		case endSentinel:
			return nil, false
		case beginSentinel:
			for _, line := range entries[i+1:] {
				if isSelfInvocation(line) {
					continue
				}
				block = append(block, line)
			}
			return block, true
		}
	}
	return nil, false
}
