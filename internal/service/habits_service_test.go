package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	errorvalues "github.com/neurohabit/backend/internal/error_values"
	"github.com/neurohabit/backend/internal/service"
	"github.com/neurohabit/backend/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	habitID    = uuid.New()
	habitTitle = "Morning run"
)

func storedHabit() *entity.Habit {
	return &entity.Habit{
		ID:               habitID,
		UserID:           userID,
		Title:            habitTitle,
		Frequency:        "daily",
		TargetCount:      1,
		Color:            "#3B82F6",
		Icon:             "⭐",
		DifficultyRating: 3,
		ImportanceRating: 3,
		IsActive:         true,
	}
}

type habitsRepoMock struct {
	state   mockState
	created *entity.Habit
	updated *entity.Habit
}

func (hrmock *habitsRepoMock) Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error) {
	switch hrmock.state {
	case stateUserHasHabitError:
		return uuid.UUID{}, errorvalues.ErrUserHasHabit
	case stateUserNotFoundError:
		return uuid.UUID{}, errorvalues.ErrOwnerNotFound
	case stateDBError:
		return uuid.UUID{}, errors.New("db error")
	default:
		hrmock.created = habit
		return habitID, nil
	}
}

func (hrmock *habitsRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error) {
	switch hrmock.state {
	case stateHabitNotFoundError:
		return nil, errorvalues.ErrHabitNotFound
	case stateDBError:
		return nil, errors.New("db error")
	case stateWrongOwner:
		habit := storedHabit()
		habit.UserID = uuid.New()
		return habit, nil
	default:
		if hrmock.created != nil {
			created := *hrmock.created
			created.ID = habitID
			return &created, nil
		}
		return storedHabit(), nil
	}
}

func (hrmock *habitsRepoMock) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Habit, error) {
	switch hrmock.state {
	case stateDBError:
		return nil, errors.New("db error")
	default:
		return []*entity.Habit{storedHabit()}, nil
	}
}

func (hrmock *habitsRepoMock) Update(ctx context.Context, habit *entity.Habit) error {
	switch hrmock.state {
	case stateHabitNotFoundError:
		return errorvalues.ErrHabitNotFound
	case stateDBError:
		return errors.New("db error")
	default:
		hrmock.updated = habit
		return nil
	}
}

func (hrmock *habitsRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	switch hrmock.state {
	case stateHabitNotFoundError:
		return errorvalues.ErrHabitNotFound
	case stateDBError:
		return errors.New("db error")
	default:
		return nil
	}
}

func TestCreateHabit(t *testing.T) {
	mock := &habitsRepoMock{state: stateSuccess}
	hs := service.NewHabitsService(mock)
	ctx := context.Background()
	t.Run("success with defaults", func(t *testing.T) {
		habit, err := hs.CreateHabit(ctx, userID, &service.CreateHabitRequest{
			Title: habitTitle,
		})
		require.NoError(t, err)
		assert.Equal(t, habitTitle, habit.Title)
		assert.Equal(t, "daily", habit.Frequency)
		assert.Equal(t, 1, habit.TargetCount)
		assert.Equal(t, "#3B82F6", habit.Color)
		assert.Equal(t, "⭐", habit.Icon)
		assert.Equal(t, 3, habit.DifficultyRating)
		assert.Equal(t, 3, habit.ImportanceRating)
	})
	t.Run("explicit fields survive", func(t *testing.T) {
		habit, err := hs.CreateHabit(ctx, userID, &service.CreateHabitRequest{
			Title:            "Read",
			Frequency:        "weekly",
			TargetCount:      3,
			Color:            "#000000",
			DifficultyRating: 5,
		})
		require.NoError(t, err)
		assert.Equal(t, "weekly", habit.Frequency)
		assert.Equal(t, 3, habit.TargetCount)
		assert.Equal(t, "#000000", habit.Color)
		assert.Equal(t, 5, habit.DifficultyRating)
	})
	t.Run("empty title", func(t *testing.T) {
		_, err := hs.CreateHabit(ctx, userID, &service.CreateHabitRequest{})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("bad frequency", func(t *testing.T) {
		_, err := hs.CreateHabit(ctx, userID, &service.CreateHabitRequest{
			Title:     habitTitle,
			Frequency: "hourly",
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("duplicated title", func(t *testing.T) {
		mock.state = stateUserHasHabitError
		_, err := hs.CreateHabit(ctx, userID, &service.CreateHabitRequest{Title: habitTitle})
		assert.ErrorIs(t, err, errorvalues.ErrUserHasHabit)
	})
	t.Run("unexist owner", func(t *testing.T) {
		mock.state = stateUserNotFoundError
		_, err := hs.CreateHabit(ctx, userID, &service.CreateHabitRequest{Title: habitTitle})
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.state = stateDBError
		_, err := hs.CreateHabit(ctx, userID, &service.CreateHabitRequest{Title: habitTitle})
		assert.Error(t, err)
	})
}

func TestGetUserHabits(t *testing.T) {
	mock := &habitsRepoMock{state: stateSuccess}
	hs := service.NewHabitsService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		habits, err := hs.GetUserHabits(ctx, userID, service.PaginationOpts{Limit: 10, Offset: 0})
		require.NoError(t, err)
		require.Len(t, habits, 1)
		assert.Equal(t, habitID, habits[0].ID)
	})
	t.Run("db error", func(t *testing.T) {
		mock.state = stateDBError
		_, err := hs.GetUserHabits(ctx, userID, service.PaginationOpts{Limit: 10})
		assert.Error(t, err)
	})
}

func TestGetHabit(t *testing.T) {
	mock := &habitsRepoMock{state: stateSuccess}
	hs := service.NewHabitsService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		habit, err := hs.GetHabit(ctx, habitID, userID)
		require.NoError(t, err)
		assert.Equal(t, habitID, habit.ID)
	})
	t.Run("foreign habit", func(t *testing.T) {
		mock.state = stateWrongOwner
		_, err := hs.GetHabit(ctx, habitID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
	t.Run("unexist habit", func(t *testing.T) {
		mock.state = stateHabitNotFoundError
		_, err := hs.GetHabit(ctx, habitID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
}

func TestUpdateHabit(t *testing.T) {
	mock := &habitsRepoMock{state: stateSuccess}
	hs := service.NewHabitsService(mock)
	ctx := context.Background()
	newTitle := "Evening run"
	archived := false
	t.Run("success", func(t *testing.T) {
		habit, err := hs.UpdateHabit(ctx, habitID, userID, &service.UpdateHabitRequest{
			Title:    &newTitle,
			IsActive: &archived,
		})
		require.NoError(t, err)
		assert.Equal(t, newTitle, habit.Title)
		assert.False(t, habit.IsActive)
		// untouched fields keep stored values
		assert.Equal(t, "daily", habit.Frequency)
		require.NotNil(t, mock.updated)
		assert.Equal(t, newTitle, mock.updated.Title)
	})
	t.Run("bad target count", func(t *testing.T) {
		bad := -1
		_, err := hs.UpdateHabit(ctx, habitID, userID, &service.UpdateHabitRequest{TargetCount: &bad})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("foreign habit", func(t *testing.T) {
		mock.state = stateWrongOwner
		_, err := hs.UpdateHabit(ctx, habitID, userID, &service.UpdateHabitRequest{Title: &newTitle})
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
	t.Run("unexist habit", func(t *testing.T) {
		mock.state = stateHabitNotFoundError
		_, err := hs.UpdateHabit(ctx, habitID, userID, &service.UpdateHabitRequest{Title: &newTitle})
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
}

func TestDeleteHabit(t *testing.T) {
	mock := &habitsRepoMock{state: stateSuccess}
	hs := service.NewHabitsService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		assert.NoError(t, hs.DeleteHabit(ctx, habitID, userID))
	})
	t.Run("foreign habit", func(t *testing.T) {
		mock.state = stateWrongOwner
		err := hs.DeleteHabit(ctx, habitID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
	t.Run("unexist habit", func(t *testing.T) {
		mock.state = stateHabitNotFoundError
		err := hs.DeleteHabit(ctx, habitID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
}
