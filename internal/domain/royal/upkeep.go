package royal

import (
	"fmt"
	"math/rand"
)

// UpkeepReport summarizes one day of royal bookkeeping.
type UpkeepReport struct {
	SalariesPaid   int64
	FeedingPaid    int64
	TaxCollected   int64
	StipendAccrued int64
	GuardsDeserted []string
	MonstersFled   []string
}

// RunDailyUpkeep pays guard salaries and monster feeding through the
// treasury funnel, accrues tax revenue and the ruler's personal stipend,
// and advances the reign counter. Unpaid guards lose loyalty and may
// desert; unfed monsters escape the moat.
func (m *Monarch) RunDailyUpkeep(taxBase int64, rulerLevel int, rng *rand.Rand) UpkeepReport {
	var report UpkeepReport
	if !m.IsActive {
		return report
	}

	revenue := taxBase * int64(m.TaxRate) / 100
	if m.CollectTax(revenue) {
		report.TaxCollected = revenue
	}

	// The stipend is the ruler's personal income, not kingdom funds; it
	// never moves through the treasury.
	report.StipendAccrued = int64(KingDailyStipend + KingStipendPerLevel*rulerLevel)

	for i := len(m.Guards) - 1; i >= 0; i-- {
		g := &m.Guards[i]
		if !g.IsActive {
			continue
		}
		if m.adjustTreasury(-g.DailySalary) {
			report.SalariesPaid += g.DailySalary
			continue
		}
		g.Loyalty -= 20
		if g.Loyalty < 0 || rng.Float64() < 0.25 {
			report.GuardsDeserted = append(report.GuardsDeserted, g.Name)
			m.Guards = append(m.Guards[:i], m.Guards[i+1:]...)
		}
	}

	for i := len(m.MonsterGuards) - 1; i >= 0; i-- {
		mg := m.MonsterGuards[i]
		if m.adjustTreasury(-mg.DailyFeedingCost) {
			report.FeedingPaid += mg.DailyFeedingCost
			continue
		}
		// An unfed beast does not wait around.
		report.MonstersFled = append(report.MonstersFled, mg.Name)
		m.MonsterGuards = append(m.MonsterGuards[:i], m.MonsterGuards[i+1:]...)
	}

	m.TotalReign++
	return report
}

func (r UpkeepReport) Summary() string {
	return fmt.Sprintf("taxes %d, stipend %d, salaries %d, feeding %d, deserted %d, escaped %d",
		r.TaxCollected, r.StipendAccrued, r.SalariesPaid, r.FeedingPaid, len(r.GuardsDeserted), len(r.MonstersFled))
}
