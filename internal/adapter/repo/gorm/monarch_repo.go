package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"crownhold/internal/adapter/repo/gorm/model"
	"crownhold/internal/app/ports"
	"crownhold/internal/domain/royal"

	"gorm.io/gorm"
)

// monarchRowID pins the single ruling slot to one row.
const monarchRowID = 1

type MonarchRepo struct {
	db *gorm.DB
}

func NewMonarchRepo(db *gorm.DB) MonarchRepo {
	return MonarchRepo{db: db}
}

func (r MonarchRepo) LoadCurrent(ctx context.Context) (royal.Monarch, error) {
	var row model.Monarch
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", monarchRowID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return royal.Monarch{}, ports.ErrNotFound
		}
		return royal.Monarch{}, err
	}
	return fromRow(row)
}

func (r MonarchRepo) SaveWithVersion(ctx context.Context, m royal.Monarch, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	row, err := toRow(m)
	if err != nil {
		return err
	}

	if expectedVersion == 0 {
		return db.Create(&row).Error
	}

	res := db.Model(&model.Monarch{}).
		Where("id = ? AND version = ?", monarchRowID, expectedVersion).
		Updates(rowUpdates(row))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func toRow(m royal.Monarch) (model.Monarch, error) {
	guards, err := json.Marshal(m.Guards)
	if err != nil {
		return model.Monarch{}, err
	}
	monsters, _ := json.Marshal(m.MonsterGuards)
	heirs, _ := json.Marshal(m.Heirs)
	orphans, _ := json.Marshal(m.Orphans)
	court, _ := json.Marshal(m.CourtMembers)
	plots, _ := json.Marshal(m.ActivePlots)
	prisoners, _ := json.Marshal(m.Prisoners)
	var spouse []byte
	if m.Spouse != nil {
		spouse, _ = json.Marshal(m.Spouse)
	}

	updatedAt := m.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	return model.Monarch{
		ID:              monarchRowID,
		Name:            m.Name,
		Title:           m.Title,
		Sex:             string(m.Sex),
		IsNPC:           m.IsNPC,
		IsActive:        m.IsActive,
		CoronationDate:  m.CoronationDate,
		TotalReign:      int32(m.TotalReign),
		Treasury:        m.Treasury,
		TaxRate:         int32(m.TaxRate),
		TaxAlignment:    string(m.TaxAlignment),
		KingTaxPercent:  int32(m.KingTaxPercent),
		CityTaxPercent:  int32(m.CityTaxPercent),
		DailyTaxRevenue: m.DailyTaxRevenue,
		Guards:          guards,
		MonsterGuards:   monsters,
		Heirs:           heirs,
		DesignatedHeir:  m.DesignatedHeir,
		Spouse:          spouse,
		Orphans:         orphans,
		CourtMembers:    court,
		ActivePlots:     plots,
		Prisoners:       prisoners,
		Version:         m.Version,
		UpdatedAt:       updatedAt,
	}, nil
}

func rowUpdates(row model.Monarch) map[string]any {
	return map[string]any{
		"name":              row.Name,
		"title":             row.Title,
		"sex":               row.Sex,
		"is_npc":            row.IsNPC,
		"is_active":         row.IsActive,
		"coronation_date":   row.CoronationDate,
		"total_reign":       row.TotalReign,
		"treasury":          row.Treasury,
		"tax_rate":          row.TaxRate,
		"tax_alignment":     row.TaxAlignment,
		"king_tax_percent":  row.KingTaxPercent,
		"city_tax_percent":  row.CityTaxPercent,
		"daily_tax_revenue": row.DailyTaxRevenue,
		"guards":            row.Guards,
		"monster_guards":    row.MonsterGuards,
		"heirs":             row.Heirs,
		"designated_heir":   row.DesignatedHeir,
		"spouse":            row.Spouse,
		"orphans":           row.Orphans,
		"court_members":     row.CourtMembers,
		"active_plots":      row.ActivePlots,
		"prisoners":         row.Prisoners,
		"version":           row.Version,
		"updated_at":        row.UpdatedAt,
	}
}

func fromRow(row model.Monarch) (royal.Monarch, error) {
	m := royal.Monarch{
		Name:            row.Name,
		Title:           row.Title,
		Sex:             royal.Sex(row.Sex),
		IsNPC:           row.IsNPC,
		IsActive:        row.IsActive,
		CoronationDate:  row.CoronationDate,
		TotalReign:      int(row.TotalReign),
		Treasury:        row.Treasury,
		TaxRate:         int(row.TaxRate),
		TaxAlignment:    royal.TaxAlignment(row.TaxAlignment),
		KingTaxPercent:  int(row.KingTaxPercent),
		CityTaxPercent:  int(row.CityTaxPercent),
		DailyTaxRevenue: row.DailyTaxRevenue,
		DesignatedHeir:  row.DesignatedHeir,
		Version:         row.Version,
		UpdatedAt:       row.UpdatedAt,
	}
	// Collection columns tolerate missing or unreadable JSON: a partial
	// read is still a usable monarch.
	_ = json.Unmarshal(row.Guards, &m.Guards)
	_ = json.Unmarshal(row.MonsterGuards, &m.MonsterGuards)
	_ = json.Unmarshal(row.Heirs, &m.Heirs)
	_ = json.Unmarshal(row.Orphans, &m.Orphans)
	_ = json.Unmarshal(row.CourtMembers, &m.CourtMembers)
	_ = json.Unmarshal(row.ActivePlots, &m.ActivePlots)
	_ = json.Unmarshal(row.Prisoners, &m.Prisoners)
	if len(row.Spouse) > 0 {
		var spouse royal.RoyalSpouse
		if err := json.Unmarshal(row.Spouse, &spouse); err == nil {
			m.Spouse = &spouse
		}
	}
	return m, nil
}
