package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/neurohabit/backend/internal/error_values"
	"github.com/neurohabit/backend/internal/predictor"
	"github.com/neurohabit/backend/internal/repository"
	"github.com/neurohabit/backend/internal/streak"
	"github.com/neurohabit/backend/pkg/entity"
)

const predictionTypeHabitSuccess = "habit_success"

type PredictionService struct {
	habitsRepo      repository.HabitsRepositoryI
	eventsRepo      repository.EventsRepositoryI
	usersRepo       repository.UsersRepositoryI
	predictionsRepo repository.PredictionsRepositoryI
	adapter         PredictorI
}

// NewPredictionService accepts a nil adapter: the model artifact is a
// deployment precondition, and without it every Predict call reports
// ErrModelUnavailable instead of the service refusing to start.
func NewPredictionService(
	habitsRepo repository.HabitsRepositoryI,
	eventsRepo repository.EventsRepositoryI,
	usersRepo repository.UsersRepositoryI,
	predictionsRepo repository.PredictionsRepositoryI,
	adapter PredictorI,
) *PredictionService {
	if habitsRepo == nil || eventsRepo == nil || usersRepo == nil || predictionsRepo == nil {
		log.Fatal("on prediction service provided nil repos")
	}
	return &PredictionService{
		habitsRepo:      habitsRepo,
		eventsRepo:      eventsRepo,
		usersRepo:       usersRepo,
		predictionsRepo: predictionsRepo,
		adapter:         adapter,
	}
}

func (serv *PredictionService) Predict(ctx context.Context, userID, habitID uuid.UUID, predictionCtx *PredictionContext) (*PredictionResult, error) {
	if serv.adapter == nil {
		return nil, predictor.ErrModelUnavailable
	}
	if predictionCtx != nil {
		if err := validate.Struct(*predictionCtx); err != nil {
			return nil, errors.Join(errorvalues.ErrValidation, err)
		}
	}
	habit, err := serv.habitsRepo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	user, err := serv.usersRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}

	now := time.Now().UTC()
	features, err := serv.assembleFeatures(ctx, habit, user, predictionCtx, now)
	if err != nil {
		return nil, err
	}

	riskScore, topFeatures, err := serv.adapter.Predict(features)
	if err != nil {
		return nil, errors.New("inference error: " + err.Error())
	}
	recommendation := predictor.Recommendation(riskScore, topFeatures)

	snapshot, err := sonic.MarshalString(features)
	if err != nil {
		return nil, errors.New("marshalling feature snapshot error: " + err.Error())
	}
	_, err = serv.predictionsRepo.Create(ctx, &entity.Prediction{
		UserID:         userID,
		HabitID:        habitID,
		RiskScore:      riskScore,
		PredictionType: predictionTypeHabitSuccess,
		FeaturesUsed:   snapshot,
	})
	if err != nil {
		return nil, errors.New("storing prediction error: " + err.Error())
	}

	return &PredictionResult{
		RiskScore:          riskScore,
		SuccessProbability: 1.0 - riskScore,
		TopFeatures:        topFeatures,
		Recommendation:     recommendation,
	}, nil
}

func (serv *PredictionService) ListPredictions(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]entity.Prediction, error) {
	predictions, err := serv.predictionsRepo.GetByUserID(ctx, uid, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return predictions, nil
}

func (serv *PredictionService) assembleFeatures(
	ctx context.Context,
	habit *entity.Habit,
	user *entity.User,
	predictionCtx *PredictionContext,
	now time.Time,
) (predictor.Features, error) {
	features := predictor.NewFeatures(now)
	features.DifficultyRating = habit.DifficultyRating
	features.ImportanceRating = habit.ImportanceRating
	features.CurrentStreak = habit.CurrentStreak
	features.LongestStreak = habit.LongestStreak
	features.HabitAgeDays = int(now.Sub(habit.CreatedAt).Hours()/24) + 1
	features.PetLevel = user.PetLevel
	features.PetHappiness = user.PetHappiness

	days7, err := serv.eventsRepo.CompletionDays(ctx, habit.ID, now.Add(-streak.Window))
	if err != nil {
		return features, errors.New("repository error: " + err.Error())
	}
	features.CompletionRate7d = float64(days7) / 7
	days30, err := serv.eventsRepo.CompletionDays(ctx, habit.ID, now.Add(-30*24*time.Hour))
	if err != nil {
		return features, errors.New("repository error: " + err.Error())
	}
	features.CompletionRate30d = float64(days30) / 30

	mood, energy, err := serv.eventsRepo.MoodEnergyAverages(ctx, habit.ID)
	if err != nil {
		return features, errors.New("repository error: " + err.Error())
	}
	if mood != nil {
		features.AvgMood = *mood
	}
	if energy != nil {
		features.AvgEnergy = *energy
	}

	if predictionCtx != nil {
		if predictionCtx.TimeOfDay != "" {
			features.TimeOfDay = predictionCtx.TimeOfDay
		}
		if predictionCtx.DayOfWeek != nil {
			features.DayOfWeek = *predictionCtx.DayOfWeek
		}
	}
	return features, nil
}
