// Package sqlite is the database/sql driver for the persistence store,
// backed by the CGo-free modernc sqlite implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vitalog/vitalog/internal/api/store"

	sqlite3 "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Users() store.Users            { return &usersRepo{db: s.db} }
func (s *Store) Metrics() store.Metrics        { return &metricsRepo{db: s.db} }
func (s *Store) Workouts() store.Workouts      { return &workoutsRepo{db: s.db} }
func (s *Store) Meals() store.Meals            { return &mealsRepo{db: s.db} }
func (s *Store) Sleep() store.SleepSessions    { return &sleepRepo{db: s.db} }
func (s *Store) Fasting() store.FastingWindows { return &fastingRepo{db: s.db} }
func (s *Store) Moods() store.Moods            { return &moodsRepo{db: s.db} }
func (s *Store) Goals() store.Goals            { return &goalsRepo{db: s.db} }

// mapNotFound converts sql.ErrNoRows into the store sentinel.
func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapUnique converts a unique-constraint violation into the store sentinel.
// This is the arbiter for racing inserts: the index rejects the loser.
func mapUnique(err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite3.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlitelib.SQLITE_CONSTRAINT_UNIQUE, sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return store.ErrAlreadyExists
		}
	}
	return err
}

// rowsAffected turns an exec with no matched rows into ErrNotFound, used by
// the user-scoped DELETE/UPDATE statements.
func rowsAffected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNullFloat(nf sql.NullFloat64) *float64 {
	if nf.Valid {
		v := nf.Float64
		return &v
	}
	return nil
}

func mapOptionalFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func mapNullInt(ni sql.NullInt64) *int {
	if ni.Valid {
		v := int(ni.Int64)
		return &v
	}
	return nil
}

func mapOptionalInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func mapNullTime(nt sql.NullTime) *time.Time {
	if nt.Valid {
		v := nt.Time
		return &v
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
