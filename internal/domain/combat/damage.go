package combat

import "math/rand"

// randRange returns a uniform value in [lo, hi]. hi is clamped to lo.
func randRange(rng *rand.Rand, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Int63n(hi-lo+1)
}

// strikeDamage is the shared damage exchange formula. The base hit is
// attack power through the target's mitigation, floored at 1 so a strike
// always costs something, plus a weapon-scaled random roll.
func strikeDamage(rng *rand.Rand, strength, weapPow, mitigation int64) int64 {
	base := strength + weapPow - mitigation
	if base < 1 {
		base = 1
	}
	rollMax := weapPow / 3
	if rollMax < 2 {
		rollMax = 2
	}
	return base + randRange(rng, 1, rollMax)
}

// ChallengerStrike resolves one hit by the challenger against a roster
// defender. Roster defenders mitigate with defence only.
func ChallengerStrike(rng *rand.Rand, attacker Stats, targetDef int64) int64 {
	return strikeDamage(rng, attacker.Strength, attacker.WeapPow, targetDef)
}

// DefenderStrike resolves one hit against the challenger, who mitigates
// with defence plus armor power.
func DefenderStrike(rng *rand.Rand, strength, weapPow int64, challenger Stats) int64 {
	return strikeDamage(rng, strength, weapPow, challenger.Defence+challenger.ArmPow)
}

// DuelStrike is the final-duel exchange: armor power folds into mitigation
// on both sides.
func DuelStrike(rng *rand.Rand, attacker, target Stats) int64 {
	return strikeDamage(rng, attacker.Strength, attacker.WeapPow, target.Defence+target.ArmPow)
}
