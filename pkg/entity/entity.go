package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	GoogleID      *string   `json:"-"`
	PasswordHash  *string   `json:"-"`
	IsActive      bool      `json:"is_active"`
	IsPremium     bool      `json:"is_premium"`
	PetLevel      int       `json:"pet_level"`
	PetExperience int       `json:"pet_experience"`
	PetHappiness  int       `json:"pet_happiness"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Habit struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Frequency        string    `json:"frequency"`
	TargetCount      int       `json:"target_count"`
	Color            string    `json:"color"`
	Icon             string    `json:"icon"`
	IsActive         bool      `json:"is_active"`
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	DifficultyRating int       `json:"difficulty_rating"`
	ImportanceRating int       `json:"importance_rating"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// HabitEvent is an immutable completion record. DayOfWeek uses the
// Monday=0..Sunday=6 convention everywhere in the service.
type HabitEvent struct {
	ID          int64     `json:"id"`
	HabitID     uuid.UUID `json:"habit_id"`
	CompletedAt time.Time `json:"completed_at"`
	Notes       string    `json:"notes,omitempty"`
	Mood        *int      `json:"mood,omitempty"`
	EnergyLevel *int      `json:"energy_level,omitempty"`
	TimeOfDay   string    `json:"time_of_day"`
	DayOfWeek   int       `json:"day_of_week"`
}

type Prediction struct {
	ID             int64     `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	HabitID        uuid.UUID `json:"habit_id"`
	RiskScore      float64   `json:"risk_score"`
	PredictionType string    `json:"prediction_type"`
	FeaturesUsed   string    `json:"features_used,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type DashboardStats struct {
	TotalHabits      int     `json:"total_habits"`
	ActiveHabits     int     `json:"active_habits"`
	TotalCompletions int     `json:"total_completions"`
	AverageStreak    float64 `json:"average_streak"`
	CompletionRate   float64 `json:"completion_rate"`
}

type Dashboard struct {
	User         *User          `json:"user"`
	Habits       []*Habit       `json:"habits"`
	Stats        DashboardStats `json:"stats"`
	RecentEvents []HabitEvent   `json:"recent_events"`
}
