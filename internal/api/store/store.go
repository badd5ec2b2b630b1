package store

import (
	"context"
	"errors"
	"time"

	"github.com/vitalog/vitalog/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// ListFilter narrows list queries to a date range. Zero values mean
// unbounded. From/To are inclusive and compared against the record's
// natural date (metric date, workout start, meal time, ...).
type ListFilter struct {
	From string // YYYY-MM-DD, inclusive
	To   string // YYYY-MM-DD, inclusive
}

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable. Uniqueness constraints (user email, one metric per user+date)
// are enforced by the driver atomically, not by check-then-insert in
// callers.
type Store interface {
	Users() Users
	Metrics() Metrics
	Workouts() Workouts
	Meals() Meals
	Sleep() SleepSessions
	Fasting() FastingWindows
	Moods() Moods
	Goals() Goals

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up by normalized (lowercase) email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists if the email is taken, even when two
	// registrations race; the unique index is the arbiter.
	CreateUser(ctx context.Context, u domain.User) error

	// DeleteUser removes a user; health records cascade per schema.
	DeleteUser(ctx context.Context, userID string) error
}

type Metrics interface {
	CreateDailyMetric(ctx context.Context, m domain.DailyMetric) error
	ListDailyMetrics(ctx context.Context, userID string, f ListFilter) ([]domain.DailyMetric, error)
	DeleteDailyMetric(ctx context.Context, userID, id string) error
}

type Workouts interface {
	CreateWorkout(ctx context.Context, w domain.Workout) error
	ListWorkouts(ctx context.Context, userID string, f ListFilter) ([]domain.Workout, error)
	DeleteWorkout(ctx context.Context, userID, id string) error
}

type Meals interface {
	CreateMeal(ctx context.Context, m domain.Meal) error
	ListMeals(ctx context.Context, userID string, f ListFilter) ([]domain.Meal, error)
	DeleteMeal(ctx context.Context, userID, id string) error
}

type SleepSessions interface {
	CreateSleepSession(ctx context.Context, s domain.SleepSession) error
	ListSleepSessions(ctx context.Context, userID string, f ListFilter) ([]domain.SleepSession, error)
	DeleteSleepSession(ctx context.Context, userID, id string) error
}

type FastingWindows interface {
	CreateFastingWindow(ctx context.Context, fw domain.FastingWindow) error
	GetFastingWindow(ctx context.Context, userID, id string) (domain.FastingWindow, error)
	ListFastingWindows(ctx context.Context, userID string, f ListFilter) ([]domain.FastingWindow, error)

	// CloseFastingWindow sets the end time on an open window. Returns
	// ErrNotFound when the window does not exist or is already closed.
	CloseFastingWindow(ctx context.Context, userID, id string, end time.Time) error

	DeleteFastingWindow(ctx context.Context, userID, id string) error
}

type Moods interface {
	CreateMoodEntry(ctx context.Context, m domain.MoodEntry) error
	ListMoodEntries(ctx context.Context, userID string, f ListFilter) ([]domain.MoodEntry, error)
	DeleteMoodEntry(ctx context.Context, userID, id string) error
}

type Goals interface {
	CreateGoal(ctx context.Context, g domain.Goal) error
	GetGoal(ctx context.Context, userID, id string) (domain.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, userID string, g domain.Goal) error
	DeleteGoal(ctx context.Context, userID, id string) error
}
