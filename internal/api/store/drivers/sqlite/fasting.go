package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/vitalog/vitalog/internal/api/domain"
	"github.com/vitalog/vitalog/internal/api/store"
)

type fastingRepo struct {
	db *sql.DB
}

func (r *fastingRepo) CreateFastingWindow(ctx context.Context, fw domain.FastingWindow) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO fasting_windows (id, user_id, start_time, end_time, notes)
		 VALUES (?, ?, ?, ?, ?)`,
		fw.ID, fw.UserID, fw.StartTime, mapOptionalTime(fw.EndTime), fw.Notes)
	return mapUnique(err)
}

func (r *fastingRepo) GetFastingWindow(ctx context.Context, userID, id string) (domain.FastingWindow, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, start_time, end_time, notes, created_at
		 FROM fasting_windows WHERE id = ? AND user_id = ?`, id, userID)

	var fw domain.FastingWindow
	var end sql.NullTime
	if err := row.Scan(&fw.ID, &fw.UserID, &fw.StartTime, &end, &fw.Notes, &fw.CreatedAt); err != nil {
		return domain.FastingWindow{}, mapNotFound(err)
	}
	fw.EndTime = mapNullTime(end)
	return fw, nil
}

func (r *fastingRepo) ListFastingWindows(ctx context.Context, userID string, f store.ListFilter) ([]domain.FastingWindow, error) {
	q := `SELECT id, user_id, start_time, end_time, notes, created_at
	      FROM fasting_windows WHERE user_id = ?`
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

	var out []domain.FastingWindow
	for rows.Next() {
		var fw domain.FastingWindow
		var end sql.NullTime
		if err := rows.Scan(&fw.ID, &fw.UserID, &fw.StartTime, &end, &fw.Notes, &fw.CreatedAt); err != nil {
			return nil, err
		}
		fw.EndTime = mapNullTime(end)
		out = append(out, fw)
	}
	return out, rows.Err()
}

// CloseFastingWindow only matches open windows, so closing an already
// closed window reports ErrNotFound.
func (r *fastingRepo) CloseFastingWindow(ctx context.Context, userID, id string, end time.Time) error {
	return rowsAffected(r.db.ExecContext(ctx,
		`UPDATE fasting_windows SET end_time = ? WHERE id = ? AND user_id = ? AND end_time IS NULL`,
		end, id, userID))
}

func (r *fastingRepo) DeleteFastingWindow(ctx context.Context, userID, id string) error {
	return rowsAffected(r.db.ExecContext(ctx,
		`DELETE FROM fasting_windows WHERE id = ? AND user_id = ?`, id, userID))
}
