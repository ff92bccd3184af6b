package combat

import (
	"fmt"
	"math/rand"

	"crownhold/internal/domain/royal"
)

type SiegeOutcome string

const (
	SiegeVictory   SiegeOutcome = "victory"
	SiegeKingWon   SiegeOutcome = "king_won"
	SiegeFailed    SiegeOutcome = "failed"
	SiegeRetreated SiegeOutcome = "retreated"
)

// Per-member contribution coefficients for the pooled party stats.
const (
	MemberPowerPerLevel   = 8
	MemberDefencePerLevel = 5
	MemberHPPerLevel      = 15

	// How much of the surviving pool the leader carries into the 1:1 duel.
	// A tunable ratio, not a load-bearing invariant.
	LeaderDuelPoolFraction = 0.5

	siegeVarianceMin = 0.8
	siegeVarianceMax = 1.2
)

type PartyMember struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Party is the besieging team: a leader with real stats plus members who
// contribute level-scaled weight to the pool.
type Party struct {
	Team    string        `json:"team"`
	Leader  Stats         `json:"leader"`
	Members []PartyMember `json:"members"`
}

// Pool is the aggregate combat weight of the party, shared across the
// monster and guard phases.
type Pool struct {
	Power   int64
	Defence int64
	HP      int64
	MaxHP   int64
}

func (p Party) Pool() Pool {
	pool := Pool{
		Power:   p.Leader.Strength + p.Leader.WeapPow,
		Defence: p.Leader.Defence + p.Leader.ArmPow,
		HP:      p.Leader.HP,
	}
	for _, m := range p.Members {
		pool.Power += int64(m.Level * MemberPowerPerLevel)
		pool.Defence += int64(m.Level * MemberDefencePerLevel)
		pool.HP += int64(m.Level * MemberHPPerLevel)
	}
	pool.MaxHP = pool.HP
	return pool
}

type SiegeResult struct {
	Outcome        SiegeOutcome `json:"outcome"`
	GuardsDefeated int          `json:"guards_defeated"`
	Rounds         int          `json:"rounds"`
	LeaderHP       int64        `json:"leader_hp"`
	Log            []string     `json:"log"`
}

// SiegeEngine is the team-scale variant of the throne challenge. Phase
// mechanics mirror the solo engine but damage runs against the pooled party
// values with a per-round variance multiplier, and shaky guards surrender
// outright instead of fleeing.
type SiegeEngine struct {
	RNG        *rand.Rand
	GuardStats StatsSource
	KingStats  Chain
	// OnProgress reports cumulative defender losses after each phase so a
	// siege's progress is durably observable mid-fight.
	OnProgress func(guardsDefeated int)
}

func (e *SiegeEngine) Resolve(party Party, m *royal.Monarch) SiegeResult {
	res := SiegeResult{Outcome: SiegeFailed}
	pool := party.Pool()

	if !e.poolPhases(&pool, party, m, &res) {
		// The rout costs the leader half their hide.
		res.LeaderHP = party.Leader.HP / 2
		if res.LeaderHP < 1 {
			res.LeaderHP = 1
		}
		return res
	}

	// The party holds back: the leader alone faces the ruler, carrying a
	// fraction of whatever strength the pool has left.
	leader := party.Leader
	leader.HP = int64(float64(pool.HP) * LeaderDuelPoolFraction)
	if leader.HP < 1 {
		leader.HP = 1
	}

	if e.leaderDuel(&leader, m, &res) {
		res.Outcome = SiegeVictory
	} else {
		res.Outcome = SiegeKingWon
	}
	res.LeaderHP = leader.HP
	if res.LeaderHP < 1 {
		res.LeaderHP = 1
	}
	return res
}

func (e *SiegeEngine) poolPhases(pool *Pool, party Party, m *royal.Monarch, res *SiegeResult) bool {
	monsters := append([]royal.MonsterGuard(nil), m.MonsterGuards...)
	for _, beast := range monsters {
		if !e.poolFight(pool, beast.HP, beast.Strength, beast.WeapPow, beast.Defence, res) {
			res.Log = append(res.Log, fmt.Sprintf("the siege of %s broke against %s", party.Team, beast.Name))
			return false
		}
		m.RemoveMonsterGuard(beast.Name)
		res.GuardsDefeated++
	}
	if e.OnProgress != nil {
		e.OnProgress(res.GuardsDefeated)
	}

	guards := append([]royal.RoyalGuard(nil), m.Guards...)
	for _, guard := range guards {
		if guard.Loyalty < royal.SiegeSurrenderLoyaltyThreshold && e.RNG.Float64() < royal.SiegeSurrenderChance {
			m.RemoveGuard(guard.Name)
			res.GuardsDefeated++
			res.Log = append(res.Log, fmt.Sprintf("%s surrendered to the besiegers", guard.Name))
			continue
		}
		stats := e.guardStatsFor(guard, m)
		effStr := stats.Strength * int64(guard.Loyalty) / 100
		if effStr < 1 {
			effStr = 1
		}
		if !e.poolFight(pool, stats.HP, effStr, stats.WeapPow, stats.Defence, res) {
			res.Log = append(res.Log, fmt.Sprintf("the guard line held against %s", party.Team))
			return false
		}
		m.RemoveGuard(guard.Name)
		res.GuardsDefeated++
		res.Log = append(res.Log, fmt.Sprintf("the besiegers overwhelmed %s", guard.Name))
	}
	if e.OnProgress != nil {
		e.OnProgress(res.GuardsDefeated)
	}
	return true
}

// poolFight runs one defender against the pooled party until one side
// drops. Returns false when the pool is exhausted.
func (e *SiegeEngine) poolFight(pool *Pool, hp, str, weapPow, def int64, res *SiegeResult) bool {
	for hp > 0 {
		res.Rounds++
		dmg := int64(float64(pool.Power-def) * e.variance())
		if dmg < 1 {
			dmg = 1
		}
		hp -= dmg
		if hp <= 0 {
			break
		}
		back := int64(float64(str+weapPow-pool.Defence) * e.variance())
		if back < 1 {
			back = 1
		}
		pool.HP -= back
		if pool.HP <= 0 {
			return false
		}
	}
	return true
}

func (e *SiegeEngine) leaderDuel(leader *Stats, m *royal.Monarch, res *SiegeResult) bool {
	king := e.kingStatsFor(m)
	king.HP = int64(float64(king.HP) * royal.KingDefenderHPBonus)
	king.MaxHP = int64(float64(king.MaxHP) * royal.KingDefenderHPBonus)
	king.Defence = int64(float64(king.Defence) * royal.KingDefenderDefBonus)

	for round := 0; round < MaxDuelRounds; round++ {
		res.Rounds++
		king.HP -= DuelStrike(e.RNG, *leader, king)
		if king.HP <= 0 {
			res.Log = append(res.Log, fmt.Sprintf("%s cast down %s at the head of the siege", leader.Name, m.Titled()))
			return true
		}
		leader.HP -= DuelStrike(e.RNG, king, *leader)
		if leader.HP <= 0 {
			res.Log = append(res.Log, fmt.Sprintf("%s cut down the siege leader %s", m.Titled(), leader.Name))
			return false
		}
	}
	res.Log = append(res.Log, fmt.Sprintf("%s outlasted the siege of %s", m.Titled(), leader.Name))
	return false
}

func (e *SiegeEngine) variance() float64 {
	return siegeVarianceMin + e.RNG.Float64()*(siegeVarianceMax-siegeVarianceMin)
}

func (e *SiegeEngine) guardStatsFor(guard royal.RoyalGuard, m *royal.Monarch) Stats {
	if e.GuardStats != nil {
		if s, ok := e.GuardStats.Resolve(guard.Name); ok {
			return s
		}
	}
	return EstimateFromReign(guard.Name, m.TotalReign)
}

func (e *SiegeEngine) kingStatsFor(m *royal.Monarch) Stats {
	if s, ok := e.KingStats.Resolve(m.Name); ok {
		return s
	}
	return EstimateFromReign(m.Name, m.TotalReign)
}
