package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/vitalog/vitalog/internal/api/domain"
	"github.com/vitalog/vitalog/internal/api/store"
)

type moodsRepo struct {
	db *sql.DB
}

func (r *moodsRepo) CreateMoodEntry(ctx context.Context, m domain.MoodEntry) error {
	symptoms := m.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	encoded, err := json.Marshal(symptoms)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO mood_entries (id, user_id, date, mood, cycle_day, symptoms, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.Date, mapOptionalInt(m.Mood), mapOptionalInt(m.CycleDay),
		string(encoded), m.Notes)
	return mapUnique(err)
}

func (r *moodsRepo) ListMoodEntries(ctx context.Context, userID string, f store.ListFilter) ([]domain.MoodEntry, error) {
	q := `SELECT id, user_id, date, mood, cycle_day, symptoms, notes, created_at
	      FROM mood_entries WHERE user_id = ?`
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

	var out []domain.MoodEntry
	for rows.Next() {
		var m domain.MoodEntry
		var mood, cycleDay sql.NullInt64
		var symptoms string
		if err := rows.Scan(&m.ID, &m.UserID, &m.Date, &mood, &cycleDay, &symptoms, &m.Notes, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Mood = mapNullInt(mood)
		m.CycleDay = mapNullInt(cycleDay)
		if err := json.Unmarshal([]byte(symptoms), &m.Symptoms); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *moodsRepo) DeleteMoodEntry(ctx context.Context, userID, id string) error {
	return rowsAffected(r.db.ExecContext(ctx,
		`DELETE FROM mood_entries WHERE id = ? AND user_id = ?`, id, userID))
}
