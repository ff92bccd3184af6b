package statsource

import (
	"context"
	"errors"
	"testing"

	"crownhold/internal/app/ports"
	"crownhold/internal/domain/combat"
)

type fakeActors map[string]ports.Actor

func (f fakeActors) FindLive(name string) (ports.Actor, bool) {
	a, ok := f[name]
	return a, ok
}

func (f fakeActors) ListLiveNPCs() []ports.Actor { return nil }

type fakeSnapshots struct {
	stats map[string]combat.Stats
	err   error
}

func (f fakeSnapshots) Get(_ context.Context, name string) (combat.Stats, error) {
	if f.err != nil {
		return combat.Stats{}, f.err
	}
	s, ok := f.stats[name]
	if !ok {
		return combat.Stats{}, ports.ErrNotFound
	}
	return s, nil
}

func (f fakeSnapshots) Save(_ context.Context, _ combat.Stats) error { return nil }

func TestLiveResolvesConnectedActor(t *testing.T) {
	stats := combat.EstimateForLevel("Alys", 40)
	src := Live{Actors: fakeActors{"Alys": {Stats: stats, Alive: true}}}

	got, ok := src.Resolve("Alys")
	if !ok || got != stats {
		t.Fatalf("Resolve = %+v, %v", got, ok)
	}
}

func TestLiveDeclinesDeadOrMissing(t *testing.T) {
	src := Live{Actors: fakeActors{
		"Fallen": {Stats: combat.EstimateForLevel("Fallen", 40), Alive: false},
	}}

	if _, ok := src.Resolve("Fallen"); ok {
		t.Fatalf("dead actor must decline")
	}
	if _, ok := src.Resolve("Nobody"); ok {
		t.Fatalf("unknown actor must decline")
	}
	if _, ok := (Live{}).Resolve("Alys"); ok {
		t.Fatalf("nil provider must decline")
	}
}

func TestSnapshotHealsZeroHP(t *testing.T) {
	stored := combat.EstimateForLevel("Borin", 30)
	stored.HP = 0
	src := Snapshot{
		Ctx:  context.Background(),
		Repo: fakeSnapshots{stats: map[string]combat.Stats{"Borin": stored}},
	}

	got, ok := src.Resolve("Borin")
	if !ok {
		t.Fatalf("expected snapshot hit")
	}
	if got.HP != got.MaxHP {
		t.Fatalf("offline snapshot must wake at full health, HP=%d MaxHP=%d", got.HP, got.MaxHP)
	}
}

func TestSnapshotDeclinesOnErrorOrGarbage(t *testing.T) {
	src := Snapshot{Ctx: context.Background(), Repo: fakeSnapshots{err: errors.New("disk gone")}}
	if _, ok := src.Resolve("Borin"); ok {
		t.Fatalf("repo error must decline, not fail")
	}

	src = Snapshot{
		Ctx:  context.Background(),
		Repo: fakeSnapshots{stats: map[string]combat.Stats{"Husk": {Name: "Husk"}}},
	}
	if _, ok := src.Resolve("Husk"); ok {
		t.Fatalf("snapshot with no MaxHP must decline")
	}
	if _, ok := (Snapshot{Ctx: context.Background()}).Resolve("Borin"); ok {
		t.Fatalf("nil repo must decline")
	}
}

func TestReignAlwaysEstimates(t *testing.T) {
	got, ok := Reign{DaysReigned: 30}.Resolve("Old King")
	if !ok {
		t.Fatalf("estimator tier must never decline")
	}
	want := combat.EstimateFromReign("Old King", 30)
	if got != want {
		t.Fatalf("Resolve = %+v, want %+v", got, want)
	}
}
