// Package model holds the hand-written row types for the shared store.
package model

import "time"

// Monarch is the single ruling-slot row. Roster and court collections are
// stored as JSON documents so a publish always lands as one self-consistent
// snapshot.
type Monarch struct {
	ID              int32     `gorm:"column:id;primaryKey"`
	Name            string    `gorm:"column:name"`
	Title           string    `gorm:"column:title"`
	Sex             string    `gorm:"column:sex"`
	IsNPC           bool      `gorm:"column:is_npc"`
	IsActive        bool      `gorm:"column:is_active"`
	CoronationDate  time.Time `gorm:"column:coronation_date"`
	TotalReign      int32     `gorm:"column:total_reign"`
	Treasury        int64     `gorm:"column:treasury"`
	TaxRate         int32     `gorm:"column:tax_rate"`
	TaxAlignment    string    `gorm:"column:tax_alignment"`
	KingTaxPercent  int32     `gorm:"column:king_tax_percent"`
	CityTaxPercent  int32     `gorm:"column:city_tax_percent"`
	DailyTaxRevenue int64     `gorm:"column:daily_tax_revenue"`
	Guards          []byte    `gorm:"column:guards"`
	MonsterGuards   []byte    `gorm:"column:monster_guards"`
	Heirs           []byte    `gorm:"column:heirs"`
	DesignatedHeir  string    `gorm:"column:designated_heir"`
	Spouse          []byte    `gorm:"column:spouse"`
	Orphans         []byte    `gorm:"column:orphans"`
	CourtMembers    []byte    `gorm:"column:court_members"`
	ActivePlots     []byte    `gorm:"column:active_plots"`
	Prisoners       []byte    `gorm:"column:prisoners"`
	Version         int64     `gorm:"column:version"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (Monarch) TableName() string { return "monarch" }

type MonarchRecord struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name           string    `gorm:"column:name"`
	Title          string    `gorm:"column:title"`
	DaysReigned    int32     `gorm:"column:days_reigned"`
	CoronationDate time.Time `gorm:"column:coronation_date"`
	EndReason      string    `gorm:"column:end_reason"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (MonarchRecord) TableName() string { return "monarch_history" }

type SiegeRecord struct {
	ID             string    `gorm:"column:id;primaryKey"`
	Team           string    `gorm:"column:team"`
	Leader         string    `gorm:"column:leader"`
	TargetGuards   int32     `gorm:"column:target_guards"`
	GuardsDefeated int32     `gorm:"column:guards_defeated"`
	Status         string    `gorm:"column:status"`
	StartedAt      time.Time `gorm:"column:started_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (SiegeRecord) TableName() string { return "siege_records" }

// SiegeWindow is the per-team cooldown gate row.
type SiegeWindow struct {
	Team      string    `gorm:"column:team;primaryKey"`
	OpenUntil time.Time `gorm:"column:open_until"`
	ClaimedAt time.Time `gorm:"column:claimed_at"`
}

func (SiegeWindow) TableName() string { return "siege_windows" }

// ActorSnapshot is a persisted offline combat snapshot.
type ActorSnapshot struct {
	Name      string    `gorm:"column:name;primaryKey"`
	Level     int32     `gorm:"column:level"`
	HP        int64     `gorm:"column:hp"`
	MaxHP     int64     `gorm:"column:max_hp"`
	Strength  int64     `gorm:"column:strength"`
	Defence   int64     `gorm:"column:defence"`
	WeapPow   int64     `gorm:"column:weap_pow"`
	ArmPow    int64     `gorm:"column:arm_pow"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ActorSnapshot) TableName() string { return "actor_snapshots" }
