package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/neurohabit/backend/internal/oauth"
	"github.com/neurohabit/backend/internal/predictor"
	"github.com/neurohabit/backend/pkg/entity"
)

type RegisterRequest struct {
	Email    string `validate:"required,email,max=255"`
	FullName string `validate:"max=200"`
	Password string `validate:"required,min=8,max=72"`
}

type UpdateUserRequest struct {
	FullName  *string `validate:"omitempty,max=200"`
	IsPremium *bool
}

type CreateHabitRequest struct {
	Title            string `validate:"required,min=1,max=200"`
	Description      string
	Category         string
	Frequency        string `validate:"omitempty,oneof=daily weekly custom"`
	TargetCount      int    `validate:"omitempty,min=1"`
	Color            string
	Icon             string
	DifficultyRating int `validate:"omitempty,min=1,max=5"`
	ImportanceRating int `validate:"omitempty,min=1,max=5"`
}

type UpdateHabitRequest struct {
	Title            *string `validate:"omitempty,min=1,max=200"`
	Description      *string
	Category         *string
	Frequency        *string `validate:"omitempty,oneof=daily weekly custom"`
	TargetCount      *int    `validate:"omitempty,min=1"`
	Color            *string
	Icon             *string
	IsActive         *bool
	DifficultyRating *int `validate:"omitempty,min=1,max=5"`
	ImportanceRating *int `validate:"omitempty,min=1,max=5"`
}

type LogCompletionRequest struct {
	Notes       string `validate:"max=2000"`
	Mood        *int   `validate:"omitempty,min=1,max=5"`
	EnergyLevel *int   `validate:"omitempty,min=1,max=5"`
	TimeOfDay   string `validate:"omitempty,oneof=morning afternoon evening night"`
}

// PredictionContext is the optional caller-provided slice of the feature
// vector; everything else comes from stored state.
type PredictionContext struct {
	TimeOfDay string `validate:"omitempty,oneof=morning afternoon evening night"`
	DayOfWeek *int   `validate:"omitempty,min=0,max=6"`
}

type PredictionResult struct {
	RiskScore          float64                         `json:"risk_score"`
	SuccessProbability float64                         `json:"success_probability"`
	TopFeatures        []predictor.FeatureContribution `json:"feature_importance"`
	Recommendation     string                          `json:"recommendation"`
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

type UserServiceI interface {
	// Validates credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, gives back user's data with ID
	Login(ctx context.Context, email, password string) (*entity.User, error)
	// Finds or creates the user matching an external Google identity
	LoginWithGoogle(ctx context.Context, info *oauth.UserInfo) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// Partial profile update
	UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*entity.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type HabitsServiceI interface {
	CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error)
	GetUserHabits(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Habit, error)
	GetHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error)
	UpdateHabit(ctx context.Context, habitID, userID uuid.UUID, req *UpdateHabitRequest) (*entity.Habit, error)
	DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error
}

type CompletionsServiceI interface {
	// Logs one completion and returns the created event together with the
	// habit carrying recomputed streak fields
	LogCompletion(ctx context.Context, habitID, userID uuid.UUID, req *LogCompletionRequest) (*entity.HabitEvent, *entity.Habit, error)
	GetHabitEvents(ctx context.Context, habitID, userID uuid.UUID, pagination PaginationOpts) ([]entity.HabitEvent, error)
}

type DashboardServiceI interface {
	GetDashboard(ctx context.Context, uid uuid.UUID) (*entity.Dashboard, error)
}

type PredictionServiceI interface {
	Predict(ctx context.Context, userID, habitID uuid.UUID, predictionCtx *PredictionContext) (*PredictionResult, error)
	ListPredictions(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]entity.Prediction, error)
}

// PredictorI is the inference boundary; the real implementation wraps a
// loaded LightGBM ensemble.
type PredictorI interface {
	Predict(features predictor.Features) (float64, []predictor.FeatureContribution, error)
}
