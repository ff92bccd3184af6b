package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"crownhold/internal/app/ports"
	"crownhold/internal/domain/combat"
	"crownhold/internal/domain/royal"
)

func TestMonarchRepoEmptyStore(t *testing.T) {
	repo := NewMonarchRepo(NewStore())

	if _, err := repo.LoadCurrent(context.Background()); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMonarchRepoFirstSaveExpectsVersionZero(t *testing.T) {
	repo := NewMonarchRepo(NewStore())
	ctx := context.Background()
	m := *royal.NewMonarch("Alys", royal.SexFemale, false, time.Now())
	m.Version = 1

	if err := repo.SaveWithVersion(ctx, m, 1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("save into empty slot with nonzero expectation: got %v", err)
	}
	if err := repo.SaveWithVersion(ctx, m, 0); err != nil {
		t.Fatalf("first save: %v", err)
	}
	got, err := repo.LoadCurrent(ctx)
	if err != nil || got.Name != "Alys" {
		t.Fatalf("LoadCurrent = %+v, %v", got, err)
	}
}

func TestMonarchRepoDetectsStaleVersion(t *testing.T) {
	repo := NewMonarchRepo(NewStore())
	ctx := context.Background()
	m := *royal.NewMonarch("Alys", royal.SexFemale, false, time.Now())
	m.Version = 1
	if err := repo.SaveWithVersion(ctx, m, 0); err != nil {
		t.Fatalf("seed: %v", err)
	}

	m.Version = 2
	if err := repo.SaveWithVersion(ctx, m, 1); err != nil {
		t.Fatalf("in-sequence save: %v", err)
	}
	// A writer that loaded version 1 must lose to the version 2 row.
	stale := m
	stale.Version = 2
	if err := repo.SaveWithVersion(ctx, stale, 1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict for stale writer, got %v", err)
	}
}

func TestSiegeRepoCreateAndGet(t *testing.T) {
	repo := NewSiegeRepo(NewStore())
	ctx := context.Background()
	rec := ports.SiegeRecord{ID: "siege-1", Team: "ravens", Leader: "Borin", Status: ports.SiegePending}

	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, rec); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("duplicate id must conflict, got %v", err)
	}
	got, err := repo.GetByID(ctx, "siege-1")
	if err != nil || got.Team != "ravens" {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}
	if _, err := repo.GetByID(ctx, "siege-2"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("missing id: got %v", err)
	}
}

func TestSiegeRepoRejectsUpdateAfterTerminal(t *testing.T) {
	repo := NewSiegeRepo(NewStore())
	ctx := context.Background()
	rec := ports.SiegeRecord{ID: "siege-1", Team: "ravens", Status: ports.SiegePending}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	rec.Status = ports.SiegeInProgress
	if err := repo.Update(ctx, rec); err != nil {
		t.Fatalf("progress update: %v", err)
	}
	rec.Status = ports.SiegeVictory
	if err := repo.Update(ctx, rec); err != nil {
		t.Fatalf("terminal update: %v", err)
	}

	rec.Status = ports.SiegeFailed
	if err := repo.Update(ctx, rec); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("settled record must reject rewrites, got %v", err)
	}
	if err := repo.Update(ctx, ports.SiegeRecord{ID: "ghost"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("unknown record: got %v", err)
	}
}

func TestClaimSiegeWindow(t *testing.T) {
	repo := NewSiegeRepo(NewStore())
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := repo.ClaimSiegeWindow(ctx, "ravens", now, time.Hour); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if err := repo.ClaimSiegeWindow(ctx, "ravens", now.Add(30*time.Minute), time.Hour); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("claim inside open window must conflict, got %v", err)
	}
	// A different team is never blocked by the ravens' window.
	if err := repo.ClaimSiegeWindow(ctx, "wolves", now, time.Hour); err != nil {
		t.Fatalf("other team claim: %v", err)
	}
	if err := repo.ClaimSiegeWindow(ctx, "ravens", now.Add(time.Hour), time.Hour); err != nil {
		t.Fatalf("claim after expiry: %v", err)
	}
}

func TestHistoryRepoCapsLedger(t *testing.T) {
	store := NewStore()
	repo := NewHistoryRepo(store)
	ctx := context.Background()

	recs := make([]royal.MonarchRecord, 0, royal.MonarchHistoryCap+5)
	for i := 0; i < royal.MonarchHistoryCap+5; i++ {
		recs = append(recs, royal.MonarchRecord{Name: fmt.Sprintf("Ruler-%d", i)})
	}
	if err := repo.Append(ctx, recs); err != nil {
		t.Fatalf("append: %v", err)
	}

	if store.HistoryLen() != royal.MonarchHistoryCap {
		t.Fatalf("ledger holds %d records, want %d", store.HistoryLen(), royal.MonarchHistoryCap)
	}
	all, err := repo.List(ctx, royal.MonarchHistoryCap)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all[0].Name != "Ruler-5" {
		t.Fatalf("oldest surviving record = %q, want Ruler-5", all[0].Name)
	}
	if all[len(all)-1].Name != fmt.Sprintf("Ruler-%d", royal.MonarchHistoryCap+4) {
		t.Fatalf("newest record = %q", all[len(all)-1].Name)
	}
}

func TestSnapshotRepoUpsert(t *testing.T) {
	repo := NewSnapshotRepo(NewStore())
	ctx := context.Background()

	if _, err := repo.Get(ctx, "Borin"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("missing snapshot: got %v", err)
	}

	first := combat.EstimateForLevel("Borin", 30)
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := combat.EstimateForLevel("Borin", 35)
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("resave: %v", err)
	}

	got, err := repo.Get(ctx, "Borin")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != second {
		t.Fatalf("snapshot not replaced: %+v", got)
	}
}

// Exercises readers hitting the store while units of work mutate it, the
// shape of live HTTP traffic against the default single-node store. Run
// with -race.
func TestRepoReadsRaceFreeAgainstTxWrites(t *testing.T) {
	store := NewStore()
	tx := NewTxManager(store)
	sieges := NewSiegeRepo(store)
	monarchs := NewMonarchRepo(store)
	history := NewHistoryRepo(store)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			id := fmt.Sprintf("siege-%d", i)
			_ = tx.RunInTx(ctx, func(txCtx context.Context) error {
				if err := sieges.Create(txCtx, ports.SiegeRecord{ID: id, Team: "ravens"}); err != nil {
					return err
				}
				m := *royal.NewMonarch("Alys", royal.SexFemale, false, time.Now())
				m.Version = int64(i) + 1
				if err := monarchs.SaveWithVersion(txCtx, m, int64(i)); err != nil {
					return err
				}
				return history.Append(txCtx, []royal.MonarchRecord{{Name: id}})
			})
		}
	}()

	for i := 0; i < 200; i++ {
		_, _ = sieges.GetByID(ctx, "siege-0")
		_, _ = monarchs.LoadCurrent(ctx)
		_, _ = history.List(ctx, 10)
	}
	<-done

	if _, err := sieges.GetByID(ctx, "siege-199"); err != nil {
		t.Fatalf("final record missing: %v", err)
	}
	m, err := monarchs.LoadCurrent(ctx)
	if err != nil || m.Version != 200 {
		t.Fatalf("LoadCurrent = %+v, %v", m, err)
	}
}

func TestTxManagerSerializesWork(t *testing.T) {
	store := NewStore()
	tx := NewTxManager(store)
	repo := NewMonarchRepo(store)
	ctx := context.Background()

	done := make(chan struct{})
	err := tx.RunInTx(ctx, func(txCtx context.Context) error {
		go func() {
			// This load must wait for the outer unit of work to finish.
			_ = tx.RunInTx(ctx, func(context.Context) error { return nil })
			close(done)
		}()
		m := *royal.NewMonarch("Alys", royal.SexFemale, false, time.Now())
		m.Version = 1
		if err := repo.SaveWithVersion(txCtx, m, 0); err != nil {
			return err
		}
		select {
		case <-done:
			return errors.New("concurrent unit of work ran inside the lock")
		case <-time.After(50 * time.Millisecond):
			return nil
		}
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	<-done

	if _, err := repo.LoadCurrent(ctx); err != nil {
		t.Fatalf("load after tx: %v", err)
	}
}
