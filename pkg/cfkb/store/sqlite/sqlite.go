// Package sqlite implements store.Store on a SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/cfkb/pkg/cfkb/kb"
	"github.com/cognicore/cfkb/pkg/cfkb/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes the
// snapshot schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	goal TEXT NOT NULL,
	rule_count INTEGER NOT NULL,
	fact_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_rules (
	snapshot_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	rule_id TEXT NOT NULL,
	operator INTEGER NOT NULL,
	consequent TEXT NOT NULL,
	certainty REAL NOT NULL,
	PRIMARY KEY(snapshot_id, seq),
	FOREIGN KEY(snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS snapshot_conditions (
	snapshot_id TEXT NOT NULL,
	rule_seq INTEGER NOT NULL,
	seq INTEGER NOT NULL,
	name TEXT NOT NULL,
	PRIMARY KEY(snapshot_id, rule_seq, seq),
	FOREIGN KEY(snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS snapshot_facts (
	snapshot_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	name TEXT NOT NULL,
	certainty REAL NOT NULL,
	PRIMARY KEY(snapshot_id, seq),
	FOREIGN KEY(snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveSnapshot writes a snapshot and all its rows in one transaction.
func (s *sqliteStore) SaveSnapshot(ctx context.Context, snap store.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, created_at, goal, rule_count, fact_count) VALUES (?, ?, ?, ?, ?)`,
		snap.ID, snap.CreatedAt.UTC().Format(time.RFC3339Nano), snap.Goal,
		len(snap.Rules), len(snap.Facts)); err != nil {
		return fmt.Errorf("insert snapshot %s: %w", snap.ID, err)
	}

	for i, r := range snap.Rules {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_rules (snapshot_id, seq, rule_id, operator, consequent, certainty) VALUES (?, ?, ?, ?, ?, ?)`,
			snap.ID, i, r.ID, int(r.Antecedent.Operator), r.Consequent.Name, r.Certainty); err != nil {
			return fmt.Errorf("insert rule %s: %w", r.ID, err)
		}
		for j, c := range r.Antecedent.Conditions {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO snapshot_conditions (snapshot_id, rule_seq, seq, name) VALUES (?, ?, ?, ?)`,
				snap.ID, i, j, c.Name); err != nil {
				return fmt.Errorf("insert condition %s: %w", c.Name, err)
			}
		}
	}

	for i, f := range snap.Facts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_facts (snapshot_id, seq, name, certainty) VALUES (?, ?, ?, ?)`,
			snap.ID, i, f.Name, f.Certainty); err != nil {
			return fmt.Errorf("insert fact %s: %w", f.Name, err)
		}
	}

	return tx.Commit()
}

// GetSnapshot reads one snapshot back, rules and facts in their saved order.
func (s *sqliteStore) GetSnapshot(ctx context.Context, id string) (store.Snapshot, bool, error) {
	var snap store.Snapshot
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, goal FROM snapshots WHERE id = ?`, id).
		Scan(&snap.ID, &createdAt, &snap.Goal)
	if err == sql.ErrNoRows {
		return store.Snapshot{}, false, nil
	}
	if err != nil {
		return store.Snapshot{}, false, err
	}
	if snap.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return store.Snapshot{}, false, fmt.Errorf("snapshot %s created_at: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, rule_id, operator, consequent, certainty FROM snapshot_rules WHERE snapshot_id = ? ORDER BY seq`, id)
	if err != nil {
		return store.Snapshot{}, false, err
	}
	defer rows.Close()
	for rows.Next() {
		var seq, op int
		var r kb.Rule
		if err := rows.Scan(&seq, &r.ID, &op, &r.Consequent.Name, &r.Certainty); err != nil {
			return store.Snapshot{}, false, err
		}
		r.Antecedent.Operator = kb.Operator(op)
		snap.Rules = append(snap.Rules, r)
	}
	if err := rows.Err(); err != nil {
		return store.Snapshot{}, false, err
	}

	condRows, err := s.db.QueryContext(ctx,
		`SELECT rule_seq, name FROM snapshot_conditions WHERE snapshot_id = ? ORDER BY rule_seq, seq`, id)
	if err != nil {
		return store.Snapshot{}, false, err
	}
	defer condRows.Close()
	for condRows.Next() {
		var ruleSeq int
		var name string
		if err := condRows.Scan(&ruleSeq, &name); err != nil {
			return store.Snapshot{}, false, err
		}
		if ruleSeq < 0 || ruleSeq >= len(snap.Rules) {
			return store.Snapshot{}, false, fmt.Errorf("snapshot %s: condition for unknown rule seq %d", id, ruleSeq)
		}
		rule := &snap.Rules[ruleSeq]
		rule.Antecedent.Conditions = append(rule.Antecedent.Conditions, kb.Fact{Name: name})
	}
	if err := condRows.Err(); err != nil {
		return store.Snapshot{}, false, err
	}

	factRows, err := s.db.QueryContext(ctx,
		`SELECT name, certainty FROM snapshot_facts WHERE snapshot_id = ? ORDER BY seq`, id)
	if err != nil {
		return store.Snapshot{}, false, err
	}
	defer factRows.Close()
	for factRows.Next() {
		var f kb.Fact
		if err := factRows.Scan(&f.Name, &f.Certainty); err != nil {
			return store.Snapshot{}, false, err
		}
		snap.Facts = append(snap.Facts, f)
	}
	if err := factRows.Err(); err != nil {
		return store.Snapshot{}, false, err
	}

	return snap, true, nil
}

// ListSnapshots returns snapshot summaries, newest first.
func (s *sqliteStore) ListSnapshots(ctx context.Context, limit int) ([]store.Meta, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, goal, rule_count, fact_count FROM snapshots ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metas []store.Meta
	for rows.Next() {
		var m store.Meta
		var createdAt string
		if err := rows.Scan(&m.ID, &createdAt, &m.Goal, &m.RuleCount, &m.FactCount); err != nil {
			return nil, err
		}
		if m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("snapshot %s created_at: %w", m.ID, err)
		}
		metas = append(metas, m)
	}
	return metas, rows.Err()
}
