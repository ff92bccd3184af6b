package gormrepo

import (
	"context"
	"time"

	"crownhold/internal/adapter/repo/gorm/model"
	"crownhold/internal/domain/royal"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepo struct {
	db *gorm.DB
}

func NewHistoryRepo(db *gorm.DB) HistoryRepo {
	return HistoryRepo{db: db}
}

func (r HistoryRepo) Append(ctx context.Context, recs []royal.MonarchRecord) error {
	if len(recs) == 0 {
		return nil
	}
	db := getDBFromCtx(ctx, r.db)
	rows := make([]model.MonarchRecord, 0, len(recs))
	now := time.Now()
	for _, rec := range recs {
		rows = append(rows, model.MonarchRecord{
			Name:           rec.Name,
			Title:          rec.Title,
			DaysReigned:    int32(rec.DaysReigned),
			CoronationDate: rec.CoronationDate,
			EndReason:      rec.EndReason,
			CreatedAt:      now,
		})
	}
	if err := db.Create(&rows).Error; err != nil {
		return err
	}
	return r.evictBeyondCap(db)
}

// evictBeyondCap drops the oldest entries past the chronicle cap.
func (r HistoryRepo) evictBeyondCap(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.MonarchRecord{}).Count(&count).Error; err != nil {
		return err
	}
	excess := count - int64(royal.MonarchHistoryCap)
	if excess <= 0 {
		return nil
	}
	return db.Exec(
		`DELETE FROM monarch_history WHERE id IN (SELECT id FROM monarch_history ORDER BY id ASC LIMIT ?)`,
		excess,
	).Error
}

func (r HistoryRepo) List(ctx context.Context, limit int) ([]royal.MonarchRecord, error) {
	rows := []model.MonarchRecord{}
	query := getDBFromCtx(ctx, r.db).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "id"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	// Stored newest-first; the chronicle reads oldest-first.
	out := make([]royal.MonarchRecord, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		out = append(out, royal.MonarchRecord{
			Name:           row.Name,
			Title:          row.Title,
			DaysReigned:    int(row.DaysReigned),
			CoronationDate: row.CoronationDate,
			EndReason:      row.EndReason,
		})
	}
	return out, nil
}
