package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/neurohabit/backend/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database. Returns user's uuid
	Create(ctx context.Context, user *entity.User) (uuid.UUID, error)
	// Looks up user by email. Can be used for login
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Looks up user by external OAuth identity
	FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Updates user's profile fields
	Update(ctx context.Context, user *entity.User) error
	// Deletes user. Habits and events cascade in the schema
	Delete(ctx context.Context, uid uuid.UUID) error
}

type HabitsRepositoryI interface {
	// Creates new habit in database, returns its generated id
	Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error)
	// Searches habit with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error)
	// Lists habits owned by user with uid. Requires pagination params provided
	GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Habit, error)
	// Updates habit's mutable attributes by ID (streak fields belong to LogCompletion)
	Update(ctx context.Context, habit *entity.Habit) error
	// Deletes habit with id
	Delete(ctx context.Context, id uuid.UUID) error
}

type EventsRepositoryI interface {
	// Logs one completion in a single transaction: inserts the event,
	// recomputes the habit's streak from the trailing window and grants
	// pet XP to the owner. Returns the habit with refreshed streak fields
	LogCompletion(ctx context.Context, event *entity.HabitEvent) (*entity.Habit, error)
	// Provides completion history of habitID, newest first
	GetByHabitID(ctx context.Context, habitID uuid.UUID, limit, offset int) ([]entity.HabitEvent, error)
	// Counts distinct completion days for habitID since the given moment
	CompletionDays(ctx context.Context, habitID uuid.UUID, since time.Time) (int, error)
	// Returns average mood and energy over the habit's whole history;
	// nil when no event carries the corresponding rating
	MoodEnergyAverages(ctx context.Context, habitID uuid.UUID) (*float64, *float64, error)
}

type StatsRepositoryI interface {
	// Aggregates the dashboard rollup for one user; since bounds the
	// completion-rate window
	GetUserStats(ctx context.Context, uid uuid.UUID, since time.Time) (*entity.DashboardStats, error)
}

type PredictionsRepositoryI interface {
	// Stores one model prediction, returns its generated id
	Create(ctx context.Context, prediction *entity.Prediction) (int64, error)
	// Lists stored predictions of a user, newest first
	GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]entity.Prediction, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
