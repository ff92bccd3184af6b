package throne

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"crownhold/internal/adapter/repo/memory"
	"crownhold/internal/app/ports"
	"crownhold/internal/domain/combat"
	"crownhold/internal/domain/royal"
)

type fakeActors map[string]ports.Actor

func (f fakeActors) FindLive(name string) (ports.Actor, bool) {
	a, ok := f[name]
	return a, ok
}

func (f fakeActors) ListLiveNPCs() []ports.Actor { return nil }

type capturingSink struct {
	news      []string
	dethroned []string
}

func (s *capturingSink) NotifyDethroned(oldName, newName, reason string) {
	s.dethroned = append(s.dethroned, oldName+"->"+newName)
}

func (s *capturingSink) PublishNews(message string) {
	s.news = append(s.news, message)
}

type capturingPublisher struct {
	snapshots []royal.Monarch
}

func (p *capturingPublisher) Publish(snapshot royal.Monarch) {
	p.snapshots = append(p.snapshots, snapshot)
}

func fixedTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func liveActor(name string, level int) ports.Actor {
	return ports.Actor{
		Stats: combat.EstimateForLevel(name, level),
		Sex:   royal.SexFemale,
		Alive: true,
	}
}

func newUseCase(store *memory.Store, actors fakeActors) (UseCase, *capturingSink, *capturingPublisher) {
	sink := &capturingSink{}
	pub := &capturingPublisher{}
	uc := UseCase{
		TxManager: memory.NewTxManager(store),
		Monarchs:  memory.NewMonarchRepo(store),
		History:   memory.NewHistoryRepo(store),
		Snapshots: memory.NewSnapshotRepo(store),
		Actors:    actors,
		Publisher: pub,
		Notifier:  sink,
		Now:       fixedTime,
		Rand:      rand.New(rand.NewSource(1)),
	}
	return uc, sink, pub
}

func seatedMonarch(name string) royal.Monarch {
	m := royal.NewMonarch(name, royal.SexMale, false, fixedTime().Add(-48*time.Hour))
	m.Version = 1
	return *m
}

func TestChallengeRejectsUnknownActor(t *testing.T) {
	store := memory.NewStore()
	uc, _, _ := newUseCase(store, fakeActors{})

	resp, err := uc.Challenge(context.Background(), ChallengeRequest{Challenger: "Ghost"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Outcome != OutcomeRejected || resp.Rejection != ports.RejectUnknownActor {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestChallengeRejectsImprisonedAndLowLevel(t *testing.T) {
	jailed := liveActor("Jailed", 50)
	jailed.Imprisoned = true
	store := memory.NewStore()
	uc, _, _ := newUseCase(store, fakeActors{
		"Jailed": jailed,
		"Green":  liveActor("Green", royal.MinLevelKing-1),
	})

	resp, _ := uc.Challenge(context.Background(), ChallengeRequest{Challenger: "Jailed"})
	if resp.Rejection != ports.RejectImprisoned {
		t.Fatalf("expected imprisoned rejection, got %+v", resp)
	}
	resp, _ = uc.Challenge(context.Background(), ChallengeRequest{Challenger: "Green"})
	if resp.Rejection != ports.RejectLevelTooLow {
		t.Fatalf("expected level rejection, got %+v", resp)
	}
}

func TestChallengeRejectsVacantThroneAndSelf(t *testing.T) {
	store := memory.NewStore()
	uc, _, _ := newUseCase(store, fakeActors{"Alys": liveActor("Alys", 40)})

	resp, _ := uc.Challenge(context.Background(), ChallengeRequest{Challenger: "Alys"})
	if resp.Rejection != ports.RejectThroneVacant {
		t.Fatalf("expected vacant rejection, got %+v", resp)
	}

	store.SeedMonarch(seatedMonarch("Alys"))
	resp, _ = uc.Challenge(context.Background(), ChallengeRequest{Challenger: "Alys"})
	if resp.Rejection != ports.RejectSelfChallenge {
		t.Fatalf("expected self rejection, got %+v", resp)
	}
}

func TestChallengeVictoryCrownsAndInherits(t *testing.T) {
	store := memory.NewStore()
	m := seatedMonarch("Borin")
	m.Treasury = 77_000
	m.Orphans = []string{"Pip"}
	store.SeedMonarch(m)
	// Pin the defender to a pushover via snapshot.
	store.SeedSnapshot(combat.EstimateForLevel("Borin", 1))

	uc, sink, pub := newUseCase(store, fakeActors{"Alys": liveActor("Alys", 100)})

	resp, err := uc.Challenge(context.Background(), ChallengeRequest{Challenger: "Alys"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Outcome != OutcomeCrowned {
		t.Fatalf("expected crowned, got %+v", resp)
	}
	if resp.Monarch.Name != "Alys" || !resp.Monarch.IsActive {
		t.Fatalf("unexpected new monarch %+v", resp.Monarch)
	}
	if resp.Monarch.Treasury != 77_000 {
		t.Fatalf("treasury must carry over, got %d", resp.Monarch.Treasury)
	}
	if len(resp.Monarch.Orphans) != 1 {
		t.Fatalf("orphans must carry over, got %v", resp.Monarch.Orphans)
	}
	if resp.Monarch.Version != 2 {
		t.Fatalf("expected version bump to 2, got %d", resp.Monarch.Version)
	}

	if store.HistoryLen() != 1 {
		t.Fatalf("expected one chronicle entry, got %d", store.HistoryLen())
	}
	records, _ := memory.NewHistoryRepo(store).List(context.Background(), 10)
	if !strings.HasPrefix(records[0].EndReason, "Defeated by") {
		t.Fatalf("unexpected end reason %q", records[0].EndReason)
	}

	if len(sink.dethroned) != 1 || sink.dethroned[0] != "Borin->Alys" {
		t.Fatalf("expected dethrone notification, got %v", sink.dethroned)
	}
	if len(pub.snapshots) != 1 || pub.snapshots[0].Name != "Alys" {
		t.Fatalf("expected published snapshot, got %v", pub.snapshots)
	}
}

func TestChallengeRepelledKeepsAttrition(t *testing.T) {
	store := memory.NewStore()
	m := seatedMonarch("Borin")
	m.Treasury = 1_000_000
	m.AddMonsterGuard("Puny", 1, 10)
	store.SeedMonarch(m)
	store.SeedSnapshot(combat.EstimateForLevel("Borin", 100))

	uc, _, _ := newUseCase(store, fakeActors{"Alys": liveActor("Alys", 25)})

	resp, err := uc.Challenge(context.Background(), ChallengeRequest{Challenger: "Alys"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Outcome != OutcomeRepelled {
		t.Fatalf("expected repelled, got %+v", resp)
	}
	saved, err := memory.NewMonarchRepo(store).LoadCurrent(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !saved.IsActive || saved.Name != "Borin" {
		t.Fatalf("throne must stand, got %+v", saved)
	}
	if len(saved.MonsterGuards) != 0 {
		t.Fatal("fallen moat beast must stay dead")
	}
	if saved.Version != 2 {
		t.Fatalf("attrition save must bump version, got %d", saved.Version)
	}
	if store.HistoryLen() != 0 {
		t.Fatal("a repelled challenge ends no reign")
	}
}

func TestAbdicateVacatesThrone(t *testing.T) {
	store := memory.NewStore()
	store.SeedMonarch(seatedMonarch("Borin"))
	uc, _, _ := newUseCase(store, fakeActors{})

	resp, err := uc.Abdicate(context.Background(), AbdicateRequest{Name: "Borin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Outcome != OutcomeAbdicated {
		t.Fatalf("expected abdicated, got %+v", resp)
	}
	if resp.Monarch.IsActive {
		t.Fatal("throne must be vacant")
	}
	records, _ := memory.NewHistoryRepo(store).List(context.Background(), 10)
	if len(records) != 1 || records[0].EndReason != "Abdicated" {
		t.Fatalf("unexpected chronicle %v", records)
	}
}

func TestAbdicateRejectsNonRuler(t *testing.T) {
	store := memory.NewStore()
	store.SeedMonarch(seatedMonarch("Borin"))
	uc, _, _ := newUseCase(store, fakeActors{})

	resp, _ := uc.Abdicate(context.Background(), AbdicateRequest{Name: "Alys"})
	if resp.Rejection != ports.RejectNotKing {
		t.Fatalf("expected not_king rejection, got %+v", resp)
	}
}

func TestClaimEmptyThrone(t *testing.T) {
	store := memory.NewStore()
	uc, _, _ := newUseCase(store, fakeActors{"Alys": liveActor("Alys", 30)})

	resp, err := uc.Claim(context.Background(), ClaimRequest{Name: "Alys"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Outcome != OutcomeCrowned || resp.Monarch.Name != "Alys" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if store.HistoryLen() != 0 {
		t.Fatal("claiming an empty throne ends no reign")
	}
}

func TestClaimRejectsOccupiedThrone(t *testing.T) {
	store := memory.NewStore()
	store.SeedMonarch(seatedMonarch("Borin"))
	uc, _, _ := newUseCase(store, fakeActors{"Alys": liveActor("Alys", 30)})

	resp, _ := uc.Claim(context.Background(), ClaimRequest{Name: "Alys"})
	if resp.Rejection != ports.RejectThroneOccupied {
		t.Fatalf("expected occupied rejection, got %+v", resp)
	}
}

func TestClaimAfterAbdicationReusesRow(t *testing.T) {
	store := memory.NewStore()
	store.SeedMonarch(seatedMonarch("Borin"))
	uc, _, _ := newUseCase(store, fakeActors{"Alys": liveActor("Alys", 30)})

	if _, err := uc.Abdicate(context.Background(), AbdicateRequest{Name: "Borin"}); err != nil {
		t.Fatalf("abdicate: %v", err)
	}
	resp, err := uc.Claim(context.Background(), ClaimRequest{Name: "Alys"})
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if resp.Outcome != OutcomeCrowned {
		t.Fatalf("expected crowned, got %+v", resp)
	}
	saved, _ := memory.NewMonarchRepo(store).LoadCurrent(context.Background())
	if saved.Name != "Alys" || !saved.IsActive {
		t.Fatalf("unexpected monarch %+v", saved)
	}
}
