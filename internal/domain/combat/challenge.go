package combat

import (
	"fmt"
	"math/rand"

	"crownhold/internal/domain/royal"
)

type Outcome string

const (
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
)

type Phase string

const (
	PhaseMonsters Phase = "monsters"
	PhaseGuards   Phase = "guards"
	PhaseDuel     Phase = "final_duel"
)

// MaxDuelRounds bounds the final duel. HP pools in play resolve far sooner;
// the cap only guarantees termination.
const MaxDuelRounds = 200

// ChallengeResult is the terminal state of one throne attempt.
type ChallengeResult struct {
	Outcome          Outcome  `json:"outcome"`
	DefeatedBy       string   `json:"defeated_by,omitempty"`
	MonstersDefeated int      `json:"monsters_defeated"`
	GuardsDefeated   int      `json:"guards_defeated"`
	Rounds           int      `json:"rounds"`
	ChallengerHP     int64    `json:"challenger_hp"`
	Log              []string `json:"log"`
}

// Engine resolves a single challenger's attempt on the throne: moat
// monsters first, then the guard line, then the ruler. Roster removals are
// applied to the monarch as they happen and are permanent even when the
// attempt ultimately fails; beasts and guards that fell stay fallen.
type Engine struct {
	RNG        *rand.Rand
	GuardStats StatsSource // live stats for named guards; nil means estimate only
	KingStats  Chain       // live / snapshot / estimate, tried in order
}

// Resolve runs the challenge to a terminal outcome. The challenger's HP is
// mutated in place and clamped to 1 on a loss: throne combat is non-lethal.
func (e *Engine) Resolve(challenger *Stats, m *royal.Monarch) ChallengeResult {
	res := ChallengeResult{Outcome: OutcomeDefeat}

	if !e.monsterPhase(challenger, m, &res) {
		e.clampLoss(challenger, &res)
		return res
	}
	if !e.guardPhase(challenger, m, &res) {
		e.clampLoss(challenger, &res)
		return res
	}
	if !e.finalDuel(challenger, m, &res) {
		e.clampLoss(challenger, &res)
		return res
	}

	res.Outcome = OutcomeVictory
	res.ChallengerHP = challenger.HP
	return res
}

func (e *Engine) monsterPhase(challenger *Stats, m *royal.Monarch, res *ChallengeResult) bool {
	roster := append([]royal.MonsterGuard(nil), m.MonsterGuards...)
	for _, beast := range roster {
		hp := beast.HP
		for hp > 0 {
			res.Rounds++
			hp -= ChallengerStrike(e.RNG, *challenger, beast.Defence)
			if hp <= 0 {
				break
			}
			challenger.HP -= DefenderStrike(e.RNG, beast.Strength, beast.WeapPow, *challenger)
			if challenger.HP <= 0 {
				res.DefeatedBy = beast.Name
				res.Log = append(res.Log, fmt.Sprintf("%s was brought down by %s", challenger.Name, beast.Name))
				return false
			}
		}
		m.RemoveMonsterGuard(beast.Name)
		res.MonstersDefeated++
		res.Log = append(res.Log, fmt.Sprintf("%s slew the moat beast %s", challenger.Name, beast.Name))
	}
	return true
}

func (e *Engine) guardPhase(challenger *Stats, m *royal.Monarch, res *ChallengeResult) bool {
	roster := append([]royal.RoyalGuard(nil), m.Guards...)
	for _, guard := range roster {
		// A guard cannot fight their own challenge.
		if guard.Name == challenger.Name {
			m.RemoveGuard(guard.Name)
			res.Log = append(res.Log, fmt.Sprintf("%s steps aside from the guard line", guard.Name))
			continue
		}
		if guard.Loyalty < royal.GuardFleeLoyaltyThreshold && e.RNG.Float64() < royal.GuardFleeChance {
			m.RemoveGuard(guard.Name)
			res.Log = append(res.Log, fmt.Sprintf("%s flees rather than die for the crown", guard.Name))
			continue
		}

		stats := e.guardStatsFor(guard, m)
		// Low loyalty drags down effectiveness, not just desertion odds.
		effStr := stats.Strength * int64(guard.Loyalty) / 100
		if effStr < 1 {
			effStr = 1
		}

		hp := stats.HP
		defeated := false
		for hp > 0 {
			res.Rounds++
			hp -= ChallengerStrike(e.RNG, *challenger, stats.Defence)
			if hp <= 0 {
				defeated = true
				break
			}
			challenger.HP -= DefenderStrike(e.RNG, effStr, stats.WeapPow, *challenger)
			if challenger.HP <= 0 {
				res.DefeatedBy = guard.Name
				res.Log = append(res.Log, fmt.Sprintf("%s fell to the royal guard %s", challenger.Name, guard.Name))
				return false
			}
		}
		if defeated {
			m.RemoveGuard(guard.Name)
			res.GuardsDefeated++
			res.Log = append(res.Log, fmt.Sprintf("%s defeated the royal guard %s", challenger.Name, guard.Name))
		}
	}
	return true
}

func (e *Engine) finalDuel(challenger *Stats, m *royal.Monarch, res *ChallengeResult) bool {
	king := e.kingStatsFor(m)

	// The ruler defends better at home but gains no false offensive edge.
	king.HP = int64(float64(king.HP) * royal.KingDefenderHPBonus)
	king.MaxHP = int64(float64(king.MaxHP) * royal.KingDefenderHPBonus)
	king.Defence = int64(float64(king.Defence) * royal.KingDefenderDefBonus)

	for round := 0; round < MaxDuelRounds; round++ {
		res.Rounds++
		king.HP -= DuelStrike(e.RNG, *challenger, king)
		if king.HP <= 0 {
			res.Log = append(res.Log, fmt.Sprintf("%s struck down %s in the throne room", challenger.Name, m.Titled()))
			return true
		}
		challenger.HP -= DuelStrike(e.RNG, king, *challenger)
		if challenger.HP <= 0 {
			res.DefeatedBy = m.Name
			res.Log = append(res.Log, fmt.Sprintf("%s repelled the challenge of %s", m.Titled(), challenger.Name))
			return false
		}
	}
	res.DefeatedBy = m.Name
	res.Log = append(res.Log, fmt.Sprintf("%s outlasted the challenge of %s", m.Titled(), challenger.Name))
	return false
}

func (e *Engine) guardStatsFor(guard royal.RoyalGuard, m *royal.Monarch) Stats {
	if e.GuardStats != nil {
		if s, ok := e.GuardStats.Resolve(guard.Name); ok {
			return s
		}
	}
	return EstimateFromReign(guard.Name, m.TotalReign)
}

func (e *Engine) kingStatsFor(m *royal.Monarch) Stats {
	if s, ok := e.KingStats.Resolve(m.Name); ok {
		return s
	}
	return EstimateFromReign(m.Name, m.TotalReign)
}

func (e *Engine) clampLoss(challenger *Stats, res *ChallengeResult) {
	// Throne combat never kills the challenger outright.
	if challenger.HP < 1 {
		challenger.HP = 1
	}
	res.ChallengerHP = challenger.HP
}
