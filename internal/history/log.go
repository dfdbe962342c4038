package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Namespace is a Log handle scoped to one namespace.
type Namespace struct {
	log  *Log
	name string
}

// Name returns the namespace this handle is scoped to.
func (n *Namespace) Name() string {
	return n.name
}

// Load returns every value appended under key, in append order.
//
// Ordering is deterministic: ORDER BY seq ASC, id ASC COLLATE BINARY. An
// absent key is not an error - it returns an empty slice, never nil.
func (n *Namespace) Load(ctx context.Context, key string) ([]string, error) {
	rows, err := n.log.db.QueryContext(ctx, `
		SELECT value
		FROM entries
		WHERE namespace = ? AND key = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, n.name, key)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return values, nil
}

// Save appends a value under key. Existing entries are never modified; the
// new entry gets the next seq in its (namespace, key) scope and a fresh
// UUIDv7 id.
func (n *Namespace) Save(ctx context.Context, key, value string) error {
	tx, err := n.log.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save entry: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var next int64
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1
		FROM entries
		WHERE namespace = ? AND key = ?
	`, n.name, key).Scan(&next)
	if err != nil {
		return fmt.Errorf("save entry: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO entries (id, namespace, key, value, seq)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.Must(uuid.NewV7()).String(), n.name, key, value, next)
	if err != nil {
		return fmt.Errorf("save entry: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save entry: commit: %w", err)
	}
	return nil
}
