package sqlite

import (
	"context"
	"database/sql"

	"github.com/vitalog/vitalog/internal/api/domain"
	"github.com/vitalog/vitalog/internal/api/store"
)

type metricsRepo struct {
	db *sql.DB
}

func (r *metricsRepo) CreateDailyMetric(ctx context.Context, m domain.DailyMetric) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_metrics (id, user_id, date, weight, body_fat_pct, skeletal_muscle_mass, resting_hr)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.Date,
		mapOptionalFloat(m.Weight), m.BodyFatPct,
		mapOptionalFloat(m.SkeletalMuscleMass), mapOptionalInt(m.RestingHR))
	return mapUnique(err)
}

func (r *metricsRepo) ListDailyMetrics(ctx context.Context, userID string, f store.ListFilter) ([]domain.DailyMetric, error) {
	q := `SELECT id, user_id, date, weight, body_fat_pct, skeletal_muscle_mass, resting_hr, created_at, updated_at
	      FROM daily_metrics WHERE user_id = ?`
	args := []any{userID}
	clauses, rangeArgs := dateRange(f)
	for _, c := range clauses {
		q += ` AND ` + c
	}
	args = append(args, rangeArgs...)
	q += ` ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DailyMetric
	for rows.Next() {
		var m domain.DailyMetric
		var weight, smm sql.NullFloat64
		var hr sql.NullInt64
		if err := rows.Scan(&m.ID, &m.UserID, &m.Date, &weight, &m.BodyFatPct, &smm, &hr, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		m.Weight = mapNullFloat(weight)
		m.SkeletalMuscleMass = mapNullFloat(smm)
		m.RestingHR = mapNullInt(hr)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *metricsRepo) DeleteDailyMetric(ctx context.Context, userID, id string) error {
	return rowsAffected(r.db.ExecContext(ctx,
		`DELETE FROM daily_metrics WHERE id = ? AND user_id = ?`, id, userID))
}
