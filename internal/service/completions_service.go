package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/neurohabit/backend/internal/error_values"
	"github.com/neurohabit/backend/internal/repository"
	"github.com/neurohabit/backend/pkg/entity"
)

type CompletionsService struct {
	habitsRepo repository.HabitsRepositoryI
	eventsRepo repository.EventsRepositoryI
}

func NewCompletionsService(habitsRepo repository.HabitsRepositoryI, eventsRepo repository.EventsRepositoryI) *CompletionsService {
	if habitsRepo == nil || eventsRepo == nil {
		log.Fatal("on completions service provided nil repos")
	}
	return &CompletionsService{
		habitsRepo: habitsRepo,
		eventsRepo: eventsRepo,
	}
}

func (serv *CompletionsService) LogCompletion(ctx context.Context, habitID, userID uuid.UUID, req *LogCompletionRequest) (*entity.HabitEvent, *entity.Habit, error) {
	err := validate.Struct(*req)
	if err != nil {
		return nil, nil, errors.Join(errorvalues.ErrValidation, err)
	}
	habit, err := serv.habitsRepo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, nil, err
		}
		return nil, nil, errors.New("repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return nil, nil, errorvalues.ErrWrongOwner
	}
	now := time.Now().UTC()
	tod := req.TimeOfDay
	if tod == "" {
		tod = timeOfDay(now)
	}
	event := &entity.HabitEvent{
		HabitID:     habitID,
		CompletedAt: now,
		Notes:       req.Notes,
		Mood:        req.Mood,
		EnergyLevel: req.EnergyLevel,
		TimeOfDay:   tod,
		DayOfWeek:   mondayWeekday(now),
	}
	updated, err := serv.eventsRepo.LogCompletion(ctx, event)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, nil, err
		}
		return nil, nil, errors.New("repository error: " + err.Error())
	}
	return event, updated, nil
}

func (serv *CompletionsService) GetHabitEvents(ctx context.Context, habitID, userID uuid.UUID, pagination PaginationOpts) ([]entity.HabitEvent, error) {
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
	events, err := serv.eventsRepo.GetByHabitID(ctx, habitID, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return events, nil
}

func timeOfDay(t time.Time) string {
	switch hour := t.UTC().Hour(); {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}

// mondayWeekday matches the stored day_of_week convention (Monday=0).
func mondayWeekday(t time.Time) int {
	return (int(t.UTC().Weekday()) + 6) % 7
}
