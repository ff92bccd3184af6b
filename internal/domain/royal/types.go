package royal

import "time"

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// TaxAlignment filters which citizens the crown taxes.
type TaxAlignment string

const (
	TaxAll  TaxAlignment = "all"
	TaxGood TaxAlignment = "good"
	TaxEvil TaxAlignment = "evil"
)

// Taxes reports whether a citizen with the given alignment scores falls
// under this policy. Chivalry at or above darkness reads as good.
func (a TaxAlignment) Taxes(chivalry, darkness int64) bool {
	switch a {
	case TaxGood:
		return chivalry >= darkness
	case TaxEvil:
		return darkness > chivalry
	default:
		return true
	}
}

type CourtFaction string

const (
	FactionNone      CourtFaction = "none"
	FactionNobility  CourtFaction = "nobility"
	FactionClergy    CourtFaction = "clergy"
	FactionMilitary  CourtFaction = "military"
	FactionMerchants CourtFaction = "merchants"
)

type PlotType string

const (
	PlotAssassination PlotType = "assassination"
	PlotCoup          PlotType = "coup"
	PlotScandal       PlotType = "scandal"
	PlotSabotage      PlotType = "sabotage"
)

// RoyalGuard is a hired NPC defender. Loyalty ranges 0-100 and degrades
// both combat effectiveness and desertion odds.
type RoyalGuard struct {
	Name        string    `json:"name"`
	Sex         Sex       `json:"sex"`
	DailySalary int64     `json:"daily_salary"`
	Loyalty     int       `json:"loyalty"`
	IsActive    bool      `json:"is_active"`
	RecruitedAt time.Time `json:"recruited_at"`
}

// MonsterGuard lives in the castle moat and is fought before human guards.
type MonsterGuard struct {
	Name             string `json:"name"`
	Level            int    `json:"level"`
	HP               int64  `json:"hp"`
	MaxHP            int64  `json:"max_hp"`
	Strength         int64  `json:"strength"`
	Defence          int64  `json:"defence"`
	WeapPow          int64  `json:"weap_pow"`
	ArmPow           int64  `json:"arm_pow"`
	PurchaseCost     int64  `json:"purchase_cost"`
	DailyFeedingCost int64  `json:"daily_feeding_cost"`
}

type RoyalHeir struct {
	Name          string `json:"name"`
	Age           int    `json:"age"`
	ClaimStrength int    `json:"claim_strength"`
	Sex           Sex    `json:"sex"`
	IsDesignated  bool   `json:"is_designated"`
}

type RoyalSpouse struct {
	Name            string       `json:"name"`
	Sex             Sex          `json:"sex"`
	OriginalFaction CourtFaction `json:"original_faction"`
	Dowry           int64        `json:"dowry"`
	Happiness       int          `json:"happiness"`
}

type CourtMember struct {
	Name          string       `json:"name"`
	Role          string       `json:"role"`
	Faction       CourtFaction `json:"faction"`
	LoyaltyToKing int          `json:"loyalty_to_king"`
	Influence     int          `json:"influence"`
	IsPlotting    bool         `json:"is_plotting"`
}

type CourtPlot struct {
	Type         PlotType  `json:"type"`
	Conspirators []string  `json:"conspirators"`
	Target       string    `json:"target"`
	Progress     int       `json:"progress"`
	IsDiscovered bool      `json:"is_discovered"`
	StartedAt    time.Time `json:"started_at"`
}

// Monarch is the single ruling slot for the kingdom. A zero IsActive value
// means the throne is vacant.
type Monarch struct {
	Name           string    `json:"name"`
	Title          string    `json:"title"`
	Sex            Sex       `json:"sex"`
	IsNPC          bool      `json:"is_npc"`
	IsActive       bool      `json:"is_active"`
	CoronationDate time.Time `json:"coronation_date"`
	TotalReign     int       `json:"total_reign"`

	Treasury        int64        `json:"treasury"`
	TaxRate         int          `json:"tax_rate"`
	TaxAlignment    TaxAlignment `json:"tax_alignment"`
	KingTaxPercent  int          `json:"king_tax_percent"`
	CityTaxPercent  int          `json:"city_tax_percent"`
	DailyTaxRevenue int64        `json:"daily_tax_revenue"`

	Guards        []RoyalGuard   `json:"guards"`
	MonsterGuards []MonsterGuard `json:"monster_guards"`

	Heirs          []RoyalHeir  `json:"heirs"`
	DesignatedHeir string       `json:"designated_heir,omitempty"`
	Spouse         *RoyalSpouse `json:"spouse,omitempty"`
	Orphans        []string     `json:"orphans"`

	CourtMembers []CourtMember `json:"court_members"`
	ActivePlots  []CourtPlot   `json:"active_plots"`
	Prisoners    []string      `json:"prisoners"`

	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Monarch) Titled() string {
	if m.Title != "" {
		return m.Title + " " + m.Name
	}
	if m.Sex == SexFemale {
		return "Queen " + m.Name
	}
	return "King " + m.Name
}

// TotalGuardCount is the number of combat phases between a challenger and
// the final duel: monsters are fought first, then human guards.
func (m *Monarch) TotalGuardCount() int {
	return len(m.Guards) + len(m.MonsterGuards)
}
