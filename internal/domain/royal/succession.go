package royal

import "time"

// CharacterClass is the candidate archetype used only for succession
// scoring weight.
type CharacterClass string

const (
	ClassPaladin CharacterClass = "paladin"
	ClassCleric  CharacterClass = "cleric"
	ClassWarrior CharacterClass = "warrior"
)

// Candidate is an NPC eligible to inherit a vacant throne.
type Candidate struct {
	Name       string
	Sex        Sex
	Class      CharacterClass
	Level      int
	Charisma   int64
	Chivalry   int64
	Darkness   int64
	Wealth     int64
	Alive      bool
	Imprisoned bool
}

func (c Candidate) eligible() bool {
	return c.Alive && !c.Imprisoned && c.Level >= MinLevelKing
}

// SuccessionScore is a pure function of the candidate; ties between equal
// scores are broken by input order so a fixed candidate list always crowns
// the same ruler.
func SuccessionScore(c Candidate) int64 {
	score := int64(c.Level) * 10
	switch c.Class {
	case ClassPaladin:
		score += ClassBonusPaladin
	case ClassCleric:
		score += ClassBonusCleric
	case ClassWarrior:
		score += ClassBonusWarrior
	}
	score += c.Charisma / 2
	alignment := c.Chivalry - c.Darkness
	if alignment < 0 {
		alignment = 0
	} else if alignment > 100 {
		alignment = 100
	}
	score += alignment
	score += c.Wealth / 10000
	return score
}

// PickSuccessor decides who takes a vacant throne. A designated heir who is
// still eligible wins outright; otherwise the best-scoring eligible
// candidate is chosen. A false return means the throne stays vacant, which
// is an expected steady state.
func PickSuccessor(designatedHeir string, candidates []Candidate) (Candidate, bool) {
	if designatedHeir != "" {
		for _, c := range candidates {
			if c.Name == designatedHeir && c.eligible() {
				return c, true
			}
		}
	}

	var best Candidate
	bestScore := int64(-1)
	for _, c := range candidates {
		if !c.eligible() {
			continue
		}
		if score := SuccessionScore(c); score > bestScore {
			best = c
			bestScore = score
		}
	}
	if bestScore < 0 {
		return Candidate{}, false
	}
	return best, true
}

// CrownSuccessor turns a chosen candidate into the sitting monarch. The
// treasury seeds from half the candidate's personal wealth, floored at the
// default seed.
func CrownSuccessor(c Candidate, now time.Time) *Monarch {
	m := NewMonarch(c.Name, c.Sex, true, now)
	if seed := c.Wealth / 2; seed > DefaultTreasurySeed {
		m.Treasury = seed
	}
	return m
}
