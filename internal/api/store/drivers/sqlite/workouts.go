package sqlite

import (
	"context"
	"database/sql"

	"github.com/vitalog/vitalog/internal/api/domain"
	"github.com/vitalog/vitalog/internal/api/store"
)

type workoutsRepo struct {
	db *sql.DB
}

func (r *workoutsRepo) CreateWorkout(ctx context.Context, w domain.Workout) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO workouts (id, user_id, start_time, end_time, type, intensity, calories, avg_hr, max_hr, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.UserID, w.StartTime, w.EndTime, w.Type, w.Intensity,
		mapOptionalFloat(w.Calories), mapOptionalInt(w.AvgHR), mapOptionalInt(w.MaxHR), w.Notes)
	return mapUnique(err)
}

func (r *workoutsRepo) ListWorkouts(ctx context.Context, userID string, f store.ListFilter) ([]domain.Workout, error) {
	q := `SELECT id, user_id, start_time, end_time, type, intensity, calories, avg_hr, max_hr, notes, created_at
	      FROM workouts WHERE user_id = ?`
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

	var out []domain.Workout
	for rows.Next() {
		var w domain.Workout
		var calories sql.NullFloat64
		var avgHR, maxHR sql.NullInt64
		if err := rows.Scan(&w.ID, &w.UserID, &w.StartTime, &w.EndTime, &w.Type, &w.Intensity,
			&calories, &avgHR, &maxHR, &w.Notes, &w.CreatedAt); err != nil {
			return nil, err
		}
		w.Calories = mapNullFloat(calories)
		w.AvgHR = mapNullInt(avgHR)
		w.MaxHR = mapNullInt(maxHR)
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *workoutsRepo) DeleteWorkout(ctx context.Context, userID, id string) error {
	return rowsAffected(r.db.ExecContext(ctx,
		`DELETE FROM workouts WHERE id = ? AND user_id = ?`, id, userID))
}
