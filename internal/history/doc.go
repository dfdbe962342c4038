// Package history provides SQLite-backed durable storage for the command
// history log.
//
// The log is an append-only sequence of strings, scoped by namespace and
// key. The macro facility shares the "local.history" namespace with the host
// tool's command-history feature: it only ever appends sentinel strings and
// reads the whole "cmdlines" sequence back.
//
// Invariants:
//   - Append-only: the package contains no UPDATE or DELETE statement.
//   - All ordering uses seq INTEGER (a per-scope logical clock), never
//     timestamps; UUIDv7 entry IDs break ties deterministically.
//   - Reads always order by: seq ASC, id ASC COLLATE BINARY.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package history
