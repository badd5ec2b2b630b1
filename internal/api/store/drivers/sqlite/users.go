package sqlite

import (
	"context"
	"database/sql"

	"github.com/vitalog/vitalog/internal/api/domain"
)

type usersRepo struct {
	db *sql.DB
}

const userColumns = `id, email, name, password_hash, dob, gender, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var dob sql.NullTime
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &dob, &u.Gender, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.DOB = mapNullTime(dob)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, password_hash, dob, gender, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.PasswordHash, mapOptionalTime(u.DOB), u.Gender,
		u.CreatedAt, u.UpdatedAt)
	return mapUnique(err)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	return rowsAffected(r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID))
}
