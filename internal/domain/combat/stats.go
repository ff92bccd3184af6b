package combat

// Stats are the opaque numeric attributes combat runs on. Levels and pools
// come from whatever system owns the actor; this package only does math on
// them.
type Stats struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	HP       int64  `json:"hp"`
	MaxHP    int64  `json:"max_hp"`
	Strength int64  `json:"strength"`
	Defence  int64  `json:"defence"`
	WeapPow  int64  `json:"weap_pow"`
	ArmPow   int64  `json:"arm_pow"`
}

// StatsSource is one tier of the effective-stats lookup. A false return
// means this tier has no data for the actor and the next tier is tried.
type StatsSource interface {
	Resolve(name string) (Stats, bool)
}

// Chain tries each tier in order. Callers put the formulaic estimator last
// so resolution always yields usable stats.
type Chain []StatsSource

func (c Chain) Resolve(name string) (Stats, bool) {
	for _, src := range c {
		if s, ok := src.Resolve(name); ok {
			return s, true
		}
	}
	return Stats{}, false
}

// EstimateForLevel is the formulaic fallback tier: plausible combat stats
// keyed to an estimated level, used when neither a live actor nor a
// persisted snapshot exists.
func EstimateForLevel(name string, level int) Stats {
	if level < 1 {
		level = 1
	}
	hp := int64(20 + level*10)
	return Stats{
		Name:     name,
		Level:    level,
		HP:       hp,
		MaxHP:    hp,
		Strength: int64(level * 3),
		Defence:  int64(level * 2),
		WeapPow:  int64(level * 2),
		ArmPow:   int64(level),
	}
}

// EstimateFromReign guesses a ruler's (or their guard's) level from how
// long the reign has lasted. Long-sitting monarchs field tougher defenders.
func EstimateFromReign(name string, daysReigned int) Stats {
	level := 20 + daysReigned/3
	if level > 100 {
		level = 100
	}
	return EstimateForLevel(name, level)
}

// LevelEstimator is the terminal tier of a Chain; it never declines.
type LevelEstimator struct {
	Level int
}

func (e LevelEstimator) Resolve(name string) (Stats, bool) {
	return EstimateForLevel(name, e.Level), true
}
