package sqlite

import (
	"context"
	"database/sql"

	"github.com/vitalog/vitalog/internal/api/domain"
	"github.com/vitalog/vitalog/internal/api/store"
)

type sleepRepo struct {
	db *sql.DB
}

func (r *sleepRepo) CreateSleepSession(ctx context.Context, s domain.SleepSession) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sleep_sessions (id, user_id, start_time, end_time, efficiency, notes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.StartTime, s.EndTime, mapOptionalFloat(s.Efficiency), s.Notes)
	return mapUnique(err)
}

func (r *sleepRepo) ListSleepSessions(ctx context.Context, userID string, f store.ListFilter) ([]domain.SleepSession, error) {
	q := `SELECT id, user_id, start_time, end_time, efficiency, notes, created_at
	      FROM sleep_sessions WHERE user_id = ?`
	args := []any{userID}
	from, to, hasFrom, hasTo := timeRange(f)
	if hasFrom {
		q += ` AND start_time >= ?`
		args = append(args, from)
	}
	if hasTo {
		q += ` AND start_time < ?`
		args = append(args, to)
	}
	q += ` ORDER BY start_time DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SleepSession
	for rows.Next() {
		var s domain.SleepSession
		var eff sql.NullFloat64
		if err := rows.Scan(&s.ID, &s.UserID, &s.StartTime, &s.EndTime, &eff, &s.Notes, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Efficiency = mapNullFloat(eff)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sleepRepo) DeleteSleepSession(ctx context.Context, userID, id string) error {
	return rowsAffected(r.db.ExecContext(ctx,
		`DELETE FROM sleep_sessions WHERE id = ? AND user_id = ?`, id, userID))
}
