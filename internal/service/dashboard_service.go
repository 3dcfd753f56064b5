package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/neurohabit/backend/internal/error_values"
	"github.com/neurohabit/backend/internal/repository"
	"github.com/neurohabit/backend/internal/streak"
	"github.com/neurohabit/backend/pkg/entity"
)

const (
	dashboardHabitsLimit = 100
	recentEventsHabits   = 3
	recentEventsPerHabit = 3
	recentEventsCap      = 10
)

type DashboardService struct {
	usersRepo  repository.UsersRepositoryI
	habitsRepo repository.HabitsRepositoryI
	eventsRepo repository.EventsRepositoryI
	statsRepo  repository.StatsRepositoryI
}

func NewDashboardService(
	usersRepo repository.UsersRepositoryI,
	habitsRepo repository.HabitsRepositoryI,
	eventsRepo repository.EventsRepositoryI,
	statsRepo repository.StatsRepositoryI,
) *DashboardService {
	if usersRepo == nil || habitsRepo == nil || eventsRepo == nil || statsRepo == nil {
		log.Fatal("on dashboard service provided nil repos")
	}
	return &DashboardService{
		usersRepo:  usersRepo,
		habitsRepo: habitsRepo,
		eventsRepo: eventsRepo,
		statsRepo:  statsRepo,
	}
}

func (serv *DashboardService) GetDashboard(ctx context.Context, uid uuid.UUID) (*entity.Dashboard, error) {
	user, err := serv.usersRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	habits, err := serv.habitsRepo.GetByUserID(ctx, uid, dashboardHabitsLimit, 0)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	since := time.Now().UTC().Add(-streak.Window)
	stats, err := serv.statsRepo.GetUserStats(ctx, uid, since)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	recent, err := serv.recentEvents(ctx, habits)
	if err != nil {
		return nil, err
	}
	return &entity.Dashboard{
		User:         user,
		Habits:       habits,
		Stats:        *stats,
		RecentEvents: recent,
	}, nil
}

// recentEvents samples the freshest completions from the user's first few
// habits, merged newest first.
func (serv *DashboardService) recentEvents(ctx context.Context, habits []*entity.Habit) ([]entity.HabitEvent, error) {
	recent := make([]entity.HabitEvent, 0, recentEventsCap)
	for i, habit := range habits {
		if i == recentEventsHabits {
			break
		}
		events, err := serv.eventsRepo.GetByHabitID(ctx, habit.ID, recentEventsPerHabit, 0)
		if err != nil {
			return nil, errors.New("repository error: " + err.Error())
		}
		recent = append(recent, events...)
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CompletedAt.After(recent[j].CompletedAt)
	})
	if len(recent) > recentEventsCap {
		recent = recent[:recentEventsCap]
	}
	return recent, nil
}
