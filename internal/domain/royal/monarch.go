package royal

import "time"

// NewMonarch crowns a ruler into an otherwise empty slot. The caller decides
// treasury seeding and inheritance; see Inherit.
func NewMonarch(name string, sex Sex, isNPC bool, now time.Time) *Monarch {
	return &Monarch{
		Name:           name,
		Sex:            sex,
		IsNPC:          isNPC,
		IsActive:       true,
		CoronationDate: now,
		TotalReign:     0,
		Treasury:       DefaultTreasurySeed,
		TaxRate:        DefaultTaxRate,
		TaxAlignment:   TaxAll,
		UpdatedAt:      now,
	}
}

// Inherit carries the treasury and orphan roster of the prior reign into a
// freshly crowned usurper. Guards, spouse, court and plots never carry over;
// the spouse in particular is cleared so no dangling marriage survives the
// old ruler's fall.
func (m *Monarch) Inherit(prior *Monarch) {
	if prior == nil {
		return
	}
	m.Treasury = prior.Treasury
	m.Orphans = append([]string(nil), prior.Orphans...)
	m.Spouse = nil
	m.TotalReign = 0
}

// adjustTreasury is the single funnel for every treasury mutation. It rejects
// any change that would drive the balance negative.
func (m *Monarch) adjustTreasury(delta int64) bool {
	next := m.Treasury + delta
	if next < 0 {
		return false
	}
	m.Treasury = next
	return true
}

func (m *Monarch) Deposit(amount int64) bool {
	if amount <= 0 {
		return false
	}
	return m.adjustTreasury(amount)
}

func (m *Monarch) Withdraw(amount int64) bool {
	if amount <= 0 {
		return false
	}
	return m.adjustTreasury(-amount)
}

// CollectTax accrues a day's tax revenue into the treasury.
func (m *Monarch) CollectTax(revenue int64) bool {
	if revenue < 0 {
		return false
	}
	if !m.adjustTreasury(revenue) {
		return false
	}
	m.DailyTaxRevenue = revenue
	return true
}

func (m *Monarch) SetTaxRate(rate int) bool {
	if rate < 0 || rate > 100 {
		return false
	}
	m.TaxRate = rate
	return true
}

func (m *Monarch) AddGuard(name string, salary int64) bool {
	if name == "" || len(m.Guards) >= MaxRoyalGuards {
		return false
	}
	if salary <= 0 {
		salary = BaseGuardSalary
	}
	m.Guards = append(m.Guards, RoyalGuard{
		Name:        name,
		DailySalary: salary,
		Loyalty:     HiredGuardLoyalty,
		IsActive:    true,
	})
	return true
}

// NextMonsterGuardCost scales with moat occupancy: every beast already in
// the moat makes the next one cost a fixed increment more.
func (m *Monarch) NextMonsterGuardCost() int64 {
	return MonsterGuardBaseCost + int64(len(m.MonsterGuards))*MonsterGuardCostIncrement
}

func (m *Monarch) AddMonsterGuard(name string, level int, feedingCost int64) bool {
	if name == "" || level < 1 || len(m.MonsterGuards) >= MaxMonsterGuards {
		return false
	}
	cost := m.NextMonsterGuardCost()
	if !m.adjustTreasury(-cost) {
		return false
	}
	hp := int64(20 + level*10)
	m.MonsterGuards = append(m.MonsterGuards, MonsterGuard{
		Name:             name,
		Level:            level,
		HP:               hp,
		MaxHP:            hp,
		Strength:         int64(level * 3),
		Defence:          int64(level * 2),
		WeapPow:          int64(level * 2),
		ArmPow:           int64(level),
		PurchaseCost:     cost,
		DailyFeedingCost: feedingCost,
	})
	return true
}

func (m *Monarch) RemoveGuard(name string) bool {
	for i, g := range m.Guards {
		if g.Name == name {
			m.Guards = append(m.Guards[:i], m.Guards[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Monarch) RemoveMonsterGuard(name string) bool {
	for i, g := range m.MonsterGuards {
		if g.Name == name {
			m.MonsterGuards = append(m.MonsterGuards[:i], m.MonsterGuards[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Monarch) AddHeir(heir RoyalHeir) bool {
	if heir.Name == "" {
		return false
	}
	for _, h := range m.Heirs {
		if h.Name == heir.Name {
			return false
		}
	}
	m.Heirs = append(m.Heirs, heir)
	return true
}

func (m *Monarch) DesignateHeir(name string) bool {
	for i := range m.Heirs {
		if m.Heirs[i].Name == name {
			for j := range m.Heirs {
				m.Heirs[j].IsDesignated = false
			}
			m.Heirs[i].IsDesignated = true
			m.DesignatedHeir = name
			return true
		}
	}
	return false
}

// Imprison records an actor in the royal prison. Actual confinement is
// enforced elsewhere; the crown only keeps the roll.
func (m *Monarch) Imprison(name string) bool {
	if name == "" || m.IsPrisoner(name) {
		return false
	}
	m.Prisoners = append(m.Prisoners, name)
	return true
}

func (m *Monarch) Release(name string) bool {
	for i, p := range m.Prisoners {
		if p == name {
			m.Prisoners = append(m.Prisoners[:i], m.Prisoners[i+1:]...)
			return true
		}
	}
	return false
}

// Execute removes a prisoner permanently. The prison roll is the only state
// this touches.
func (m *Monarch) Execute(name string) bool {
	return m.Release(name)
}

func (m *Monarch) IsPrisoner(name string) bool {
	for _, p := range m.Prisoners {
		if p == name {
			return true
		}
	}
	return false
}

// CalculateDailyExpenses totals active guard salaries and monster feeding
// costs owed per day.
func (m *Monarch) CalculateDailyExpenses() int64 {
	var total int64
	for _, g := range m.Guards {
		if g.IsActive {
			total += g.DailySalary
		}
	}
	for _, mg := range m.MonsterGuards {
		total += mg.DailyFeedingCost
	}
	return total
}

func (m *Monarch) CalculateDailyIncome() int64 {
	return m.DailyTaxRevenue
}

func (m *Monarch) Touch(now time.Time) {
	m.UpdatedAt = now
	m.Version++
}
