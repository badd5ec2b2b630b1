package sqlite

import (
	"context"
	"database/sql"

	"github.com/vitalog/vitalog/internal/api/domain"
)

type goalsRepo struct {
	db *sql.DB
}

func (r *goalsRepo) CreateGoal(ctx context.Context, g domain.Goal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (id, user_id, type, target, current, unit, deadline, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Type, g.Target, mapOptionalFloat(g.Current), g.Unit,
		mapOptionalTime(g.Deadline), g.CreatedAt, g.UpdatedAt)
	return mapUnique(err)
}

func (r *goalsRepo) GetGoal(ctx context.Context, userID, id string) (domain.Goal, error) {
	var g domain.Goal
	var current sql.NullFloat64
	var deadline sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, type, target, current, unit, deadline, created_at, updated_at
		 FROM goals WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&g.ID, &g.UserID, &g.Type, &g.Target, &current, &g.Unit, &deadline, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return domain.Goal{}, mapNotFound(err)
	}
	g.Current = mapNullFloat(current)
	g.Deadline = mapNullTime(deadline)
	return g, nil
}

func (r *goalsRepo) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, type, target, current, unit, deadline, created_at, updated_at
		 FROM goals WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Goal
	for rows.Next() {
		var g domain.Goal
		var current sql.NullFloat64
		var deadline sql.NullTime
		if err := rows.Scan(&g.ID, &g.UserID, &g.Type, &g.Target, &current, &g.Unit, &deadline, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		g.Current = mapNullFloat(current)
		g.Deadline = mapNullTime(deadline)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *goalsRepo) UpdateGoal(ctx context.Context, userID string, g domain.Goal) error {
	return rowsAffected(r.db.ExecContext(ctx,
		`UPDATE goals
		 SET type = ?, target = ?, current = ?, unit = ?, deadline = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		g.Type, g.Target, mapOptionalFloat(g.Current), g.Unit, mapOptionalTime(g.Deadline),
		g.ID, userID))
}

func (r *goalsRepo) DeleteGoal(ctx context.Context, userID, id string) error {
	return rowsAffected(r.db.ExecContext(ctx,
		`DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID))
}
