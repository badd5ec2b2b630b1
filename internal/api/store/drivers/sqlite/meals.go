package sqlite

import (
	"context"
	"database/sql"

	"github.com/vitalog/vitalog/internal/api/domain"
	"github.com/vitalog/vitalog/internal/api/store"
)

type mealsRepo struct {
	db *sql.DB
}

func (r *mealsRepo) CreateMeal(ctx context.Context, m domain.Meal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO meals (id, user_id, meal_time, food_name, calories, protein, carbs, fat, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.MealTime, m.FoodName, m.Calories,
		mapOptionalFloat(m.Protein), mapOptionalFloat(m.Carbs), mapOptionalFloat(m.Fat), m.Notes)
	return mapUnique(err)
}

func (r *mealsRepo) ListMeals(ctx context.Context, userID string, f store.ListFilter) ([]domain.Meal, error) {
	q := `SELECT id, user_id, meal_time, food_name, calories, protein, carbs, fat, notes, created_at
	      FROM meals WHERE user_id = ?`
	args := []any{userID}
	from, to, hasFrom, hasTo := timeRange(f)
	if hasFrom {
		q += ` AND meal_time >= ?`
		args = append(args, from)
	}
	if hasTo {
		q += ` AND meal_time < ?`
		args = append(args, to)
	}
	q += ` ORDER BY meal_time DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Meal
	for rows.Next() {
		var m domain.Meal
		var protein, carbs, fat sql.NullFloat64
		if err := rows.Scan(&m.ID, &m.UserID, &m.MealTime, &m.FoodName, &m.Calories,
			&protein, &carbs, &fat, &m.Notes, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Protein = mapNullFloat(protein)
		m.Carbs = mapNullFloat(carbs)
		m.Fat = mapNullFloat(fat)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *mealsRepo) DeleteMeal(ctx context.Context, userID, id string) error {
	return rowsAffected(r.db.ExecContext(ctx,
		`DELETE FROM meals WHERE id = ? AND user_id = ?`, id, userID))
}
