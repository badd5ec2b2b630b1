package domain

import "time"

// DailyMetric is one day's body measurements. At most one row exists per
// user per date.
type DailyMetric struct {
	ID                 string
	UserID             string
	Date               string // YYYY-MM-DD
	Weight             *float64
	BodyFatPct         float64
	SkeletalMuscleMass *float64
	RestingHR          *int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Workout types accepted by the API.
var WorkoutTypes = []string{"strength", "cardio", "hiit", "yoga", "sports", "other"}

type Workout struct {
	ID        string
	UserID    string
	StartTime time.Time
	EndTime   time.Time
	Type      string
	Intensity int // 1-10
	Calories  *float64
	AvgHR     *int
	MaxHR     *int
	Notes     string
	CreatedAt time.Time
}

type Meal struct {
	ID        string
	UserID    string
	MealTime  time.Time
	FoodName  string
	Calories  float64
	Protein   *float64
	Carbs     *float64
	Fat       *float64
	Notes     string
	CreatedAt time.Time
}

type SleepSession struct {
	ID         string
	UserID     string
	StartTime  time.Time
	EndTime    time.Time
	Efficiency *float64 // percent, 0-100
	Notes      string
	CreatedAt  time.Time
}

// FastingWindow is a fasting period. EndTime is nil while the window is
// still open.
type FastingWindow struct {
	ID        string
	UserID    string
	StartTime time.Time
	EndTime   *time.Time
	Notes     string
	CreatedAt time.Time
}

// MoodEntry is one day's mood/cycle log. At most one row per user per date.
type MoodEntry struct {
	ID        string
	UserID    string
	Date      string // YYYY-MM-DD
	Mood      *int   // 1-10
	CycleDay  *int
	Symptoms  []string
	Notes     string
	CreatedAt time.Time
}

// Goal types accepted by the API.
var GoalTypes = []string{"weight_loss", "weight_gain", "workout_frequency", "nutrition", "sleep", "other"}

type Goal struct {
	ID        string
	UserID    string
	Type      string
	Target    float64
	Current   *float64
	Unit      string
	Deadline  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
