package http

import (
	"time"

	"github.com/vitalog/vitalog/internal/api/domain"
)

// View structs shape the JSON the API returns. The password hash never
// appears in any of them.

type userView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type profileView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	DOB       *string   `json:"dob"`
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserView(u domain.User) userView {
	return userView{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

func toProfileView(u domain.User) profileView {
	v := profileView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Gender:    u.Gender,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.DOB != nil {
		d := u.DOB.Format("2006-01-02")
		v.DOB = &d
	}
	return v
}

// authView is the payload of register, login, and refresh responses. The
// refresh token travels only in the cookie.
type authView struct {
	User        userView `json:"user"`
	AccessToken string   `json:"accessToken"`
	ExpiresIn   int      `json:"expiresIn"` // seconds
}

type metricView struct {
	ID                 string    `json:"id"`
	Date               string    `json:"date"`
	Weight             *float64  `json:"weight"`
	BodyFatPct         float64   `json:"bodyFatPct"`
	SkeletalMuscleMass *float64  `json:"skeletalMuscleMass"`
	RestingHR          *int      `json:"restingHr"`
	CreatedAt          time.Time `json:"createdAt"`
}

func toMetricView(m domain.DailyMetric) metricView {
	return metricView{
		ID:                 m.ID,
		Date:               m.Date,
		Weight:             m.Weight,
		BodyFatPct:         m.BodyFatPct,
		SkeletalMuscleMass: m.SkeletalMuscleMass,
		RestingHR:          m.RestingHR,
		CreatedAt:          m.CreatedAt,
	}
}

type workoutView struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Type      string    `json:"type"`
	Intensity int       `json:"intensity"`
	Calories  *float64  `json:"calories"`
	AvgHR     *int      `json:"avgHr"`
	MaxHR     *int      `json:"maxHr"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

func toWorkoutView(w domain.Workout) workoutView {
	return workoutView{
		ID:        w.ID,
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		Type:      w.Type,
		Intensity: w.Intensity,
		Calories:  w.Calories,
		AvgHR:     w.AvgHR,
		MaxHR:     w.MaxHR,
		Notes:     w.Notes,
		CreatedAt: w.CreatedAt,
	}
}

type mealView struct {
	ID        string    `json:"id"`
	MealTime  time.Time `json:"mealTime"`
	FoodName  string    `json:"foodName"`
	Calories  float64   `json:"calories"`
	Protein   *float64  `json:"protein"`
	Carbs     *float64  `json:"carbs"`
	Fat       *float64  `json:"fat"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

func toMealView(m domain.Meal) mealView {
	return mealView{
		ID:        m.ID,
		MealTime:  m.MealTime,
		FoodName:  m.FoodName,
		Calories:  m.Calories,
		Protein:   m.Protein,
		Carbs:     m.Carbs,
		Fat:       m.Fat,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

type sleepView struct {
	ID         string    `json:"id"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Efficiency *float64  `json:"efficiency"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toSleepView(s domain.SleepSession) sleepView {
	return sleepView{
		ID:         s.ID,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Efficiency: s.Efficiency,
		Notes:      s.Notes,
		CreatedAt:  s.CreatedAt,
	}
}

type fastingView struct {
	ID        string     `json:"id"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toFastingView(fw domain.FastingWindow) fastingView {
	return fastingView{
		ID:        fw.ID,
		StartTime: fw.StartTime,
		EndTime:   fw.EndTime,
		Notes:     fw.Notes,
		CreatedAt: fw.CreatedAt,
	}
}

type moodView struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Mood      *int      `json:"mood"`
	CycleDay  *int      `json:"cycleDay"`
	Symptoms  []string  `json:"symptoms"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

func toMoodView(m domain.MoodEntry) moodView {
	symptoms := m.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	return moodView{
		ID:        m.ID,
		Date:      m.Date,
		Mood:      m.Mood,
		CycleDay:  m.CycleDay,
		Symptoms:  symptoms,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

type goalView struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Target    float64    `json:"target"`
	Current   *float64   `json:"current"`
	Unit      string     `json:"unit"`
	Deadline  *time.Time `json:"deadline"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func toGoalView(g domain.Goal) goalView {
	return goalView{
		ID:        g.ID,
		Type:      g.Type,
		Target:    g.Target,
		Current:   g.Current,
		Unit:      g.Unit,
		Deadline:  g.Deadline,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
