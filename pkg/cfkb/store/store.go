// Package store persists snapshots of a successfully loaded model so tooling
// (or an eventual inference engine) can reload it without reparsing the text
// files. Snapshots are immutable once saved.
package store

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/cfkb/pkg/cfkb/kb"
)

// Store persists and retrieves model snapshots.
type Store interface {
	Close() error

	SaveSnapshot(ctx context.Context, s Snapshot) error
	GetSnapshot(ctx context.Context, id string) (Snapshot, bool, error)
	ListSnapshots(ctx context.Context, limit int) ([]Meta, error)
}

// Snapshot is a loaded model frozen at save time.
type Snapshot struct {
	ID        string
	CreatedAt time.Time
	Rules     []kb.Rule
	Facts     []kb.Fact
	Goal      string
}

// Meta summarizes a stored snapshot for listings.
type Meta struct {
	ID        string
	CreatedAt time.Time
	RuleCount int
	FactCount int
	Goal      string
}

// Builder stamps snapshots with monotonic ULIDs.
type Builder struct {
	entropy *ulid.MonotonicEntropy
}

// NewBuilder creates a snapshot builder.
func NewBuilder() *Builder {
	return &Builder{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// Snapshot freezes a loaded knowledge base and fact base.
func (b *Builder) Snapshot(base *kb.KnowledgeBase, facts *kb.FactBase) Snapshot {
	s := Snapshot{
		ID:        ulid.MustNew(ulid.Now(), b.entropy).String(),
		CreatedAt: time.Now().UTC(),
		Goal:      facts.Goal.Name,
	}
	s.Rules = append(s.Rules, base.Rules...)
	s.Facts = append(s.Facts, facts.Initial...)
	return s
}
