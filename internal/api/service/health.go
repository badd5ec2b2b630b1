package service

import (
	"context"
	"time"

	"github.com/vitalog/vitalog/internal/api/domain"
	"github.com/vitalog/vitalog/internal/api/store"
	"github.com/vitalog/vitalog/pkg/idx"
)

// HealthService covers the per-user health records: metrics, workouts,
// meals, sleep, fasting, moods, and goals. Every method is scoped to the
// authenticated user id; a record belonging to another user behaves as if
// it does not exist.
type HealthService struct {
	Store store.Store
}

func (s *HealthService) CreateDailyMetric(ctx context.Context, m domain.DailyMetric) (domain.DailyMetric, error) {
	m.ID = idx.New().String()
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = m.CreatedAt
	if err := s.Store.Metrics().CreateDailyMetric(ctx, m); err != nil {
		return domain.DailyMetric{}, err
	}
	return m, nil
}

func (s *HealthService) ListDailyMetrics(ctx context.Context, userID string, f store.ListFilter) ([]domain.DailyMetric, error) {
	return s.Store.Metrics().ListDailyMetrics(ctx, userID, f)
}

func (s *HealthService) DeleteDailyMetric(ctx context.Context, userID, id string) error {
	return s.Store.Metrics().DeleteDailyMetric(ctx, userID, id)
}

func (s *HealthService) CreateWorkout(ctx context.Context, w domain.Workout) (domain.Workout, error) {
	w.ID = idx.New().String()
	w.CreatedAt = time.Now().UTC()
	if err := s.Store.Workouts().CreateWorkout(ctx, w); err != nil {
		return domain.Workout{}, err
	}
	return w, nil
}

func (s *HealthService) ListWorkouts(ctx context.Context, userID string, f store.ListFilter) ([]domain.Workout, error) {
	return s.Store.Workouts().ListWorkouts(ctx, userID, f)
}

func (s *HealthService) DeleteWorkout(ctx context.Context, userID, id string) error {
	return s.Store.Workouts().DeleteWorkout(ctx, userID, id)
}

func (s *HealthService) CreateMeal(ctx context.Context, m domain.Meal) (domain.Meal, error) {
	m.ID = idx.New().String()
	m.CreatedAt = time.Now().UTC()
	if err := s.Store.Meals().CreateMeal(ctx, m); err != nil {
		return domain.Meal{}, err
	}
	return m, nil
}

func (s *HealthService) ListMeals(ctx context.Context, userID string, f store.ListFilter) ([]domain.Meal, error) {
	return s.Store.Meals().ListMeals(ctx, userID, f)
}

func (s *HealthService) DeleteMeal(ctx context.Context, userID, id string) error {
	return s.Store.Meals().DeleteMeal(ctx, userID, id)
}

func (s *HealthService) CreateSleepSession(ctx context.Context, sl domain.SleepSession) (domain.SleepSession, error) {
	sl.ID = idx.New().String()
	sl.CreatedAt = time.Now().UTC()
	if err := s.Store.Sleep().CreateSleepSession(ctx, sl); err != nil {
		return domain.SleepSession{}, err
	}
	return sl, nil
}

func (s *HealthService) ListSleepSessions(ctx context.Context, userID string, f store.ListFilter) ([]domain.SleepSession, error) {
	return s.Store.Sleep().ListSleepSessions(ctx, userID, f)
}

func (s *HealthService) DeleteSleepSession(ctx context.Context, userID, id string) error {
	return s.Store.Sleep().DeleteSleepSession(ctx, userID, id)
}

// StartFastingWindow records a fast. EndTime may be set up front when
// logging a fast that already finished; left nil, the window stays open
// until closed.
func (s *HealthService) StartFastingWindow(ctx context.Context, fw domain.FastingWindow) (domain.FastingWindow, error) {
	fw.ID = idx.New().String()
	fw.CreatedAt = time.Now().UTC()
	if err := s.Store.Fasting().CreateFastingWindow(ctx, fw); err != nil {
		return domain.FastingWindow{}, err
	}
	return fw, nil
}

func (s *HealthService) GetFastingWindow(ctx context.Context, userID, id string) (domain.FastingWindow, error) {
	return s.Store.Fasting().GetFastingWindow(ctx, userID, id)
}

func (s *HealthService) ListFastingWindows(ctx context.Context, userID string, f store.ListFilter) ([]domain.FastingWindow, error) {
	return s.Store.Fasting().ListFastingWindows(ctx, userID, f)
}

// EndFastingWindow closes an open fasting window at the given time and
// returns the updated record. A window that is already closed reports
// store.ErrNotFound.
func (s *HealthService) EndFastingWindow(ctx context.Context, userID, id string, end time.Time) (domain.FastingWindow, error) {
	if err := s.Store.Fasting().CloseFastingWindow(ctx, userID, id, end); err != nil {
		return domain.FastingWindow{}, err
	}
	return s.Store.Fasting().GetFastingWindow(ctx, userID, id)
}

func (s *HealthService) DeleteFastingWindow(ctx context.Context, userID, id string) error {
	return s.Store.Fasting().DeleteFastingWindow(ctx, userID, id)
}

func (s *HealthService) CreateMoodEntry(ctx context.Context, m domain.MoodEntry) (domain.MoodEntry, error) {
	m.ID = idx.New().String()
	m.CreatedAt = time.Now().UTC()
	if err := s.Store.Moods().CreateMoodEntry(ctx, m); err != nil {
		return domain.MoodEntry{}, err
	}
	return m, nil
}

func (s *HealthService) ListMoodEntries(ctx context.Context, userID string, f store.ListFilter) ([]domain.MoodEntry, error) {
	return s.Store.Moods().ListMoodEntries(ctx, userID, f)
}

func (s *HealthService) DeleteMoodEntry(ctx context.Context, userID, id string) error {
	return s.Store.Moods().DeleteMoodEntry(ctx, userID, id)
}

func (s *HealthService) CreateGoal(ctx context.Context, g domain.Goal) (domain.Goal, error) {
	g.ID = idx.New().String()
	g.CreatedAt = time.Now().UTC()
	g.UpdatedAt = g.CreatedAt
	if err := s.Store.Goals().CreateGoal(ctx, g); err != nil {
		return domain.Goal{}, err
	}
	return g, nil
}

func (s *HealthService) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	return s.Store.Goals().ListGoals(ctx, userID)
}

func (s *HealthService) UpdateGoal(ctx context.Context, userID string, g domain.Goal) (domain.Goal, error) {
	if err := s.Store.Goals().UpdateGoal(ctx, userID, g); err != nil {
		return domain.Goal{}, err
	}
	// Return the stored row so timestamps reflect what actually persisted.
	return s.Store.Goals().GetGoal(ctx, userID, g.ID)
}

func (s *HealthService) DeleteGoal(ctx context.Context, userID, id string) error {
	return s.Store.Goals().DeleteGoal(ctx, userID, id)
}
