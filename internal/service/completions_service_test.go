package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/neurohabit/backend/internal/error_values"
	"github.com/neurohabit/backend/internal/repository"
	"github.com/neurohabit/backend/internal/service"
	"github.com/neurohabit/backend/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventsRepoMock struct {
	state  mockState
	logged *entity.HabitEvent
}

func (ermock *eventsRepoMock) LogCompletion(ctx context.Context, event *entity.HabitEvent) (*entity.Habit, error) {
	switch ermock.state {
	case stateHabitNotFoundError:
		return nil, errorvalues.ErrHabitNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		ermock.logged = event
		event.ID = 1
		habit := storedHabit()
		habit.CurrentStreak = 2
		habit.LongestStreak = 5
		return habit, nil
	}
}

func (ermock *eventsRepoMock) GetByHabitID(ctx context.Context, habitID uuid.UUID, limit, offset int) ([]entity.HabitEvent, error) {
	switch ermock.state {
	case stateDBError:
		return nil, errors.New("db error")
	default:
		return []entity.HabitEvent{{ID: 1, HabitID: habitID, TimeOfDay: "morning"}}, nil
	}
}

func (ermock *eventsRepoMock) CompletionDays(ctx context.Context, habitID uuid.UUID, since time.Time) (int, error) {
	switch ermock.state {
	case stateDBError:
		return 0, errors.New("db error")
	default:
		return 4, nil
	}
}

func (ermock *eventsRepoMock) MoodEnergyAverages(ctx context.Context, habitID uuid.UUID) (*float64, *float64, error) {
	switch ermock.state {
	case stateDBError:
		return nil, nil, errors.New("db error")
	default:
		mood, energy := 4.5, 3.5
		return &mood, &energy, nil
	}
}

func TestLogCompletion(t *testing.T) {
	habitsMock := &habitsRepoMock{state: stateSuccess}
	eventsMock := &eventsRepoMock{state: stateSuccess}
	cs := service.NewCompletionsService(habitsMock, eventsMock)
	ctx := context.Background()
	mood := 4
	t.Run("success", func(t *testing.T) {
		event, habit, err := cs.LogCompletion(ctx, habitID, userID, &service.LogCompletionRequest{
			Notes:     "felt great",
			Mood:      &mood,
			TimeOfDay: "morning",
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, event.ID)
		assert.Equal(t, "morning", event.TimeOfDay)
		assert.Equal(t, "felt great", event.Notes)
		assert.GreaterOrEqual(t, event.DayOfWeek, 0)
		assert.LessOrEqual(t, event.DayOfWeek, 6)
		assert.Equal(t, 2, habit.CurrentStreak)
		assert.Equal(t, 5, habit.LongestStreak)
	})
	t.Run("time of day inferred", func(t *testing.T) {
		event, _, err := cs.LogCompletion(ctx, habitID, userID, &service.LogCompletionRequest{})
		require.NoError(t, err)
		assert.Contains(t, []string{"morning", "afternoon", "evening", "night"}, event.TimeOfDay)
	})
	t.Run("mood out of range", func(t *testing.T) {
		bad := 9
		_, _, err := cs.LogCompletion(ctx, habitID, userID, &service.LogCompletionRequest{Mood: &bad})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("foreign habit", func(t *testing.T) {
		habitsMock.state = stateWrongOwner
		_, _, err := cs.LogCompletion(ctx, habitID, userID, &service.LogCompletionRequest{})
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
		habitsMock.state = stateSuccess
	})
	t.Run("unexist habit", func(t *testing.T) {
		habitsMock.state = stateHabitNotFoundError
		_, _, err := cs.LogCompletion(ctx, habitID, userID, &service.LogCompletionRequest{})
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
		habitsMock.state = stateSuccess
	})
	t.Run("db error", func(t *testing.T) {
		eventsMock.state = stateDBError
		_, _, err := cs.LogCompletion(ctx, habitID, userID, &service.LogCompletionRequest{})
		assert.Error(t, err)
	})
}

func TestGetHabitEvents(t *testing.T) {
	habitsMock := &habitsRepoMock{state: stateSuccess}
	eventsMock := &eventsRepoMock{state: stateSuccess}
	cs := service.NewCompletionsService(habitsMock, eventsMock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		events, err := cs.GetHabitEvents(ctx, habitID, userID, service.PaginationOpts{Limit: 10})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, habitID, events[0].HabitID)
	})
	t.Run("foreign habit", func(t *testing.T) {
		habitsMock.state = stateWrongOwner
		_, err := cs.GetHabitEvents(ctx, habitID, userID, service.PaginationOpts{Limit: 10})
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
		habitsMock.state = stateSuccess
	})
	t.Run("unexist habit", func(t *testing.T) {
		habitsMock.state = stateHabitNotFoundError
		_, err := cs.GetHabitEvents(ctx, habitID, userID, service.PaginationOpts{Limit: 10})
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
}

// TestCompletionFlowIntegrational drives a real database through the whole
// streak and gamification path: a backdated completion plus one today must
// yield a two day streak, and every completion grants pet XP.
func TestCompletionFlowIntegrational(t *testing.T) {
	dbCfg := setupTestDB(t)
	usersRepo := repository.NewUsersRepo(dbCfg)
	habitsRepo := repository.NewHabitsRepo(dbCfg)
	eventsRepo := repository.NewEventsRepo(dbCfg)
	us := service.NewUserService(usersRepo)
	hs := service.NewHabitsService(habitsRepo)
	cs := service.NewCompletionsService(habitsRepo, eventsRepo)
	ctx := context.Background()

	user, err := us.Register(ctx, &service.RegisterRequest{
		Email:    "runner@neurohabit.com",
		FullName: "Runner",
		Password: userPassword,
	})
	require.NoError(t, err)
	habit, err := hs.CreateHabit(ctx, user.ID, &service.CreateHabitRequest{Title: habitTitle})
	require.NoError(t, err)

	t.Run("backdated completion starts streak", func(t *testing.T) {
		yesterday := time.Now().UTC().Add(-24 * time.Hour)
		updated, err := eventsRepo.LogCompletion(ctx, &entity.HabitEvent{
			HabitID:     habit.ID,
			CompletedAt: yesterday,
			TimeOfDay:   "evening",
			DayOfWeek:   (int(yesterday.Weekday()) + 6) % 7,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, updated.CurrentStreak)
		assert.Equal(t, 1, updated.LongestStreak)
	})
	t.Run("today's completion extends streak", func(t *testing.T) {
		mood, energy := 5, 4
		event, updated, err := cs.LogCompletion(ctx, habit.ID, user.ID, &service.LogCompletionRequest{
			Notes:       "solid run",
			Mood:        &mood,
			EnergyLevel: &energy,
		})
		require.NoError(t, err)
		assert.NotZero(t, event.ID)
		assert.Equal(t, 2, updated.CurrentStreak)
		assert.Equal(t, 2, updated.LongestStreak)
	})
	t.Run("same day completion does not extend streak", func(t *testing.T) {
		_, updated, err := cs.LogCompletion(ctx, habit.ID, user.ID, &service.LogCompletionRequest{})
		require.NoError(t, err)
		assert.Equal(t, 2, updated.CurrentStreak)
	})
	t.Run("pet earned xp for every completion", func(t *testing.T) {
		owner, err := usersRepo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, owner.PetLevel)
		assert.Equal(t, 30, owner.PetExperience)
		assert.Equal(t, 56, owner.PetHappiness)
	})
	t.Run("events listed newest first", func(t *testing.T) {
		events, err := cs.GetHabitEvents(ctx, habit.ID, user.ID, service.PaginationOpts{Limit: 10})
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.True(t, events[0].CompletedAt.After(events[2].CompletedAt))
	})
	t.Run("completion on foreign habit rejected", func(t *testing.T) {
		_, _, err := cs.LogCompletion(ctx, habit.ID, uuid.New(), &service.LogCompletionRequest{})
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
}
