package combat

import "testing"

type mapSource map[string]Stats

func (m mapSource) Resolve(name string) (Stats, bool) {
	s, ok := m[name]
	return s, ok
}

func TestChainTriesTiersInOrder(t *testing.T) {
	live := mapSource{"Alys": {Name: "Alys", Level: 42}}
	snapshot := mapSource{
		"Alys":  {Name: "Alys", Level: 10},
		"Borin": {Name: "Borin", Level: 17},
	}
	chain := Chain{live, snapshot, LevelEstimator{Level: 5}}

	s, ok := chain.Resolve("Alys")
	if !ok || s.Level != 42 {
		t.Fatalf("expected live tier to win, got %+v ok=%v", s, ok)
	}
	s, ok = chain.Resolve("Borin")
	if !ok || s.Level != 17 {
		t.Fatalf("expected snapshot tier, got %+v ok=%v", s, ok)
	}
	s, ok = chain.Resolve("Stranger")
	if !ok || s.Level != 5 {
		t.Fatalf("expected estimator tier, got %+v ok=%v", s, ok)
	}
}

func TestEmptyChainDeclines(t *testing.T) {
	if _, ok := Chain(nil).Resolve("anyone"); ok {
		t.Fatal("empty chain must decline")
	}
}

func TestEstimateForLevel(t *testing.T) {
	s := EstimateForLevel("Grim", 10)
	if s.HP != 120 || s.MaxHP != 120 {
		t.Fatalf("expected hp 120, got %d/%d", s.HP, s.MaxHP)
	}
	if s.Strength != 30 || s.Defence != 20 || s.WeapPow != 20 || s.ArmPow != 10 {
		t.Fatalf("unexpected stats %+v", s)
	}

	floor := EstimateForLevel("Grim", 0)
	if floor.Level != 1 {
		t.Fatalf("expected level floored at 1, got %d", floor.Level)
	}
}

func TestEstimateFromReignCapsLevel(t *testing.T) {
	fresh := EstimateFromReign("King", 0)
	if fresh.Level != 20 {
		t.Fatalf("expected base level 20, got %d", fresh.Level)
	}
	veteran := EstimateFromReign("King", 30)
	if veteran.Level != 30 {
		t.Fatalf("expected level 30 after 30 days, got %d", veteran.Level)
	}
	ancient := EstimateFromReign("King", 100000)
	if ancient.Level != 100 {
		t.Fatalf("expected level capped at 100, got %d", ancient.Level)
	}
}
