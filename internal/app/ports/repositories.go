package ports

import (
	"context"
	"time"

	"crownhold/internal/domain/combat"
	"crownhold/internal/domain/royal"
)

type SiegeStatus string

const (
	SiegePending    SiegeStatus = "pending"
	SiegeInProgress SiegeStatus = "in_progress"
	SiegeVictory    SiegeStatus = "victory"
	SiegeKingWon    SiegeStatus = "king_won"
	SiegeFailed     SiegeStatus = "failed"
	SiegeRetreated  SiegeStatus = "retreated"
)

func (s SiegeStatus) Terminal() bool {
	switch s {
	case SiegeVictory, SiegeKingWon, SiegeFailed, SiegeRetreated:
		return true
	}
	return false
}

// SiegeRecord is the durable progress record of one siege attempt, updated
// after each phase so any process can observe an attempt it didn't run.
type SiegeRecord struct {
	ID             string
	Team           string
	Leader         string
	TargetGuards   int
	GuardsDefeated int
	Status         SiegeStatus
	StartedAt      time.Time
	UpdatedAt      time.Time
}

// MonarchRepository owns the single ruling slot in the shared store.
// LoadCurrent returns ErrNotFound when no monarch row exists at all; an
// existing row with IsActive=false is a vacant throne.
type MonarchRepository interface {
	LoadCurrent(ctx context.Context) (royal.Monarch, error)
	SaveWithVersion(ctx context.Context, m royal.Monarch, expectedVersion int64) error
}

type HistoryRepository interface {
	Append(ctx context.Context, recs []royal.MonarchRecord) error
	List(ctx context.Context, limit int) ([]royal.MonarchRecord, error)
}

type SiegeRepository interface {
	Create(ctx context.Context, rec SiegeRecord) error
	Update(ctx context.Context, rec SiegeRecord) error
	GetByID(ctx context.Context, id string) (SiegeRecord, error)
	// ClaimSiegeWindow atomically checks the team's cooldown and records a
	// new window in one step, so two teams can never both pass the gate for
	// the same window. Returns ErrConflict while a window is still open.
	ClaimSiegeWindow(ctx context.Context, team string, now time.Time, cooldown time.Duration) error
}

// ActorSnapshotRepository stores persisted combat snapshots for offline
// human actors. Get tolerates nothing: missing or unreadable snapshots are
// ErrNotFound and the caller falls back to estimates.
type ActorSnapshotRepository interface {
	Get(ctx context.Context, name string) (combat.Stats, error)
	Save(ctx context.Context, stats combat.Stats) error
}
