package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/neurohabit/backend/internal/error_values"
	"github.com/neurohabit/backend/internal/repository"
	"github.com/neurohabit/backend/pkg/entity"
)

const (
	defaultFrequency   = "daily"
	defaultTargetCount = 1
	defaultColor       = "#3B82F6"
	defaultIcon        = "⭐"
	defaultRating      = 3
)

type HabitsService struct {
	repo repository.HabitsRepositoryI
}

func NewHabitsService(habitsRepo repository.HabitsRepositoryI) *HabitsService {
	if habitsRepo == nil {
		log.Fatal("provided nil habitsRepo")
	}
	return &HabitsService{
		repo: habitsRepo,
	}
}

func (hs *HabitsService) CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error) {
	err := validate.Struct(*req)
	if err != nil {
		return nil, errors.Join(errorvalues.ErrValidation, err)
	}
	h := entity.Habit{
		UserID:           uid,
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		Frequency:        req.Frequency,
		TargetCount:      req.TargetCount,
		Color:            req.Color,
		Icon:             req.Icon,
		DifficultyRating: req.DifficultyRating,
		ImportanceRating: req.ImportanceRating,
	}
	applyHabitDefaults(&h)
	id, err := hs.repo.Create(ctx, &h)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrOwnerNotFound):
			return nil, errorvalues.ErrUserNotFound
		case errors.Is(err, errorvalues.ErrUserHasHabit):
			return nil, errorvalues.ErrUserHasHabit
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	habit, err := hs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func (hs *HabitsService) GetUserHabits(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Habit, error) {
	habits, err := hs.repo.GetByUserID(ctx, uid, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habits, nil
}

func (hs *HabitsService) GetHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error) {
	habit, err := hs.repo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	return habit, nil
}

func (hs *HabitsService) UpdateHabit(ctx context.Context, habitID, userID uuid.UUID, req *UpdateHabitRequest) (*entity.Habit, error) {
	err := validate.Struct(*req)
	if err != nil {
		return nil, errors.Join(errorvalues.ErrValidation, err)
	}
	habit, err := hs.GetHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}
	applyHabitUpdate(habit, req)
	err = hs.repo.Update(ctx, habit)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func (hs *HabitsService) DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error {
	habit, err := hs.repo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habits repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return errorvalues.ErrWrongOwner
	}
	err = hs.repo.Delete(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habits repository error: " + err.Error())
	}
	return nil
}

func applyHabitDefaults(h *entity.Habit) {
	if h.Frequency == "" {
		h.Frequency = defaultFrequency
	}
	if h.TargetCount == 0 {
		h.TargetCount = defaultTargetCount
	}
	if h.Color == "" {
		h.Color = defaultColor
	}
	if h.Icon == "" {
		h.Icon = defaultIcon
	}
	if h.DifficultyRating == 0 {
		h.DifficultyRating = defaultRating
	}
	if h.ImportanceRating == 0 {
		h.ImportanceRating = defaultRating
	}
}

func applyHabitUpdate(h *entity.Habit, req *UpdateHabitRequest) {
	if req.Title != nil {
		h.Title = *req.Title
	}
	if req.Description != nil {
		h.Description = *req.Description
	}
	if req.Category != nil {
		h.Category = *req.Category
	}
	if req.Frequency != nil {
		h.Frequency = *req.Frequency
	}
	if req.TargetCount != nil {
		h.TargetCount = *req.TargetCount
	}
	if req.Color != nil {
		h.Color = *req.Color
	}
	if req.Icon != nil {
		h.Icon = *req.Icon
	}
	if req.IsActive != nil {
		h.IsActive = *req.IsActive
	}
	if req.DifficultyRating != nil {
		h.DifficultyRating = *req.DifficultyRating
	}
	if req.ImportanceRating != nil {
		h.ImportanceRating = *req.ImportanceRating
	}
}
