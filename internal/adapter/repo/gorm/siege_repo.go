package gormrepo

import (
	"context"
	"errors"
	"time"

	"crownhold/internal/adapter/repo/gorm/model"
	"crownhold/internal/app/ports"

	"gorm.io/gorm"
)

type SiegeRepo struct {
	db *gorm.DB
}

func NewSiegeRepo(db *gorm.DB) SiegeRepo {
	return SiegeRepo{db: db}
}

func (r SiegeRepo) Create(ctx context.Context, rec ports.SiegeRecord) error {
	row := toSiegeRow(rec)
	return getDBFromCtx(ctx, r.db).Create(&row).Error
}

func (r SiegeRepo) Update(ctx context.Context, rec ports.SiegeRecord) error {
	row := toSiegeRow(rec)
	res := getDBFromCtx(ctx, r.db).Model(&model.SiegeRecord{}).
		Where("id = ? AND status NOT IN ?", rec.ID, []string{
			string(ports.SiegeVictory), string(ports.SiegeKingWon),
			string(ports.SiegeFailed), string(ports.SiegeRetreated),
		}).
		Updates(map[string]any{
			"guards_defeated": row.GuardsDefeated,
			"status":          row.Status,
			"updated_at":      row.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r SiegeRepo) GetByID(ctx context.Context, id string) (ports.SiegeRecord, error) {
	var row model.SiegeRecord
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SiegeRecord{}, ports.ErrNotFound
		}
		return ports.SiegeRecord{}, err
	}
	return ports.SiegeRecord{
		ID:             row.ID,
		Team:           row.Team,
		Leader:         row.Leader,
		TargetGuards:   int(row.TargetGuards),
		GuardsDefeated: int(row.GuardsDefeated),
		Status:         ports.SiegeStatus(row.Status),
		StartedAt:      row.StartedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

// ClaimSiegeWindow relies on a conditional upsert so the check and the
// claim land in one statement: a team inside an open window changes no row
// and gets ErrConflict.
func (r SiegeRepo) ClaimSiegeWindow(ctx context.Context, team string, now time.Time, cooldown time.Duration) error {
	db := getDBFromCtx(ctx, r.db)
	until := now.Add(cooldown)
	res := db.Exec(`
INSERT INTO siege_windows (team, open_until, claimed_at)
VALUES (?, ?, ?)
ON CONFLICT (team) DO UPDATE
SET open_until = EXCLUDED.open_until, claimed_at = EXCLUDED.claimed_at
WHERE siege_windows.open_until <= ?`,
		team, until, now, now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func toSiegeRow(rec ports.SiegeRecord) model.SiegeRecord {
	return model.SiegeRecord{
		ID:             rec.ID,
		Team:           rec.Team,
		Leader:         rec.Leader,
		TargetGuards:   int32(rec.TargetGuards),
		GuardsDefeated: int32(rec.GuardsDefeated),
		Status:         string(rec.Status),
		StartedAt:      rec.StartedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}
