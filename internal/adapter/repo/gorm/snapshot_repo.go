package gormrepo

import (
	"context"
	"errors"
	"time"

	"crownhold/internal/adapter/repo/gorm/model"
	"crownhold/internal/app/ports"
	"crownhold/internal/domain/combat"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnapshotRepo struct {
	db *gorm.DB
}

func NewSnapshotRepo(db *gorm.DB) SnapshotRepo {
	return SnapshotRepo{db: db}
}

func (r SnapshotRepo) Get(ctx context.Context, name string) (combat.Stats, error) {
	var row model.ActorSnapshot
	if err := getDBFromCtx(ctx, r.db).Where("name = ?", name).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return combat.Stats{}, ports.ErrNotFound
		}
		return combat.Stats{}, err
	}
	return combat.Stats{
		Name:     row.Name,
		Level:    int(row.Level),
		HP:       row.HP,
		MaxHP:    row.MaxHP,
		Strength: row.Strength,
		Defence:  row.Defence,
		WeapPow:  row.WeapPow,
		ArmPow:   row.ArmPow,
	}, nil
}

func (r SnapshotRepo) Save(ctx context.Context, stats combat.Stats) error {
	row := model.ActorSnapshot{
		Name:      stats.Name,
		Level:     int32(stats.Level),
		HP:        stats.HP,
		MaxHP:     stats.MaxHP,
		Strength:  stats.Strength,
		Defence:   stats.Defence,
		WeapPow:   stats.WeapPow,
		ArmPow:    stats.ArmPow,
		UpdatedAt: time.Now(),
	}
	return getDBFromCtx(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			UpdateAll: true,
		}).
		Create(&row).Error
}
