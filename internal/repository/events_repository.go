package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/neurohabit/backend/internal/error_values"
	"github.com/neurohabit/backend/internal/streak"
	"github.com/neurohabit/backend/pkg/cleanup"
	"github.com/neurohabit/backend/pkg/entity"
)

const eventColumns = `id, habit_id, completed_at, notes, mood, energy_level, time_of_day, day_of_week`

type EventsRepository struct {
	conn PgConnection
}

func NewEventsRepo(cfg DBConfig) *EventsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for eventsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for eventsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &EventsRepository{
		conn: pool,
	}
}

func NewEventsRepoWithConn(conn PgConnection) *EventsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for eventsRepo: " + err.Error())
	}
	return &EventsRepository{
		conn: conn,
	}
}

// LogCompletion performs the whole completion side effect in one
// transaction: insert the event, rescan the trailing window, store the
// recomputed streak and grant pet XP to the owner. Concurrent completions
// for the same habit are not guarded beyond the database's own isolation;
// last commit wins on the streak fields.
func (er *EventsRepository) LogCompletion(ctx context.Context, event *entity.HabitEvent) (*entity.Habit, error) {
	tx, err := er.conn.Begin(ctx)
	if err != nil {
		return nil, errors.New("starting completion tx error: " + err.Error())
	}
	defer func() { _ = tx.Rollback(ctx) }()

	habit := entity.Habit{ID: event.HabitID}
	row := tx.QueryRow(ctx, `SELECT user_id, current_streak, longest_streak FROM habits WHERE id = $1;`, event.HabitID)
	if err = row.Scan(&habit.UserID, &habit.CurrentStreak, &habit.LongestStreak); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("loading habit for completion error: " + err.Error())
	}

	row = tx.QueryRow(ctx, `INSERT INTO habit_events (habit_id, completed_at, notes, mood, energy_level, time_of_day, day_of_week)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id;`,
		event.HabitID,
		event.CompletedAt,
		event.Notes,
		event.Mood,
		event.EnergyLevel,
		event.TimeOfDay,
		event.DayOfWeek,
	)
	if err = row.Scan(&event.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("inserting completion event error: " + err.Error())
	}

	since := event.CompletedAt.Add(-streak.Window)
	rows, err := tx.Query(ctx, `SELECT `+eventColumns+` FROM habit_events
		WHERE habit_id = $1 AND completed_at >= $2 ORDER BY completed_at DESC;`,
		event.HabitID,
		since,
	)
	if err != nil {
		return nil, errors.New("getting recent events error: " + err.Error())
	}
	recent, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}

	streak.Apply(&habit, recent)
	_, err = tx.Exec(ctx, `UPDATE habits SET current_streak = $1, longest_streak = $2, updated_at = NOW() WHERE id = $3;`,
		habit.CurrentStreak,
		habit.LongestStreak,
		habit.ID,
	)
	if err != nil {
		return nil, errors.New("storing recomputed streak error: " + err.Error())
	}

	owner := entity.User{ID: habit.UserID}
	row = tx.QueryRow(ctx, `SELECT pet_level, pet_experience, pet_happiness FROM users WHERE id = $1;`, habit.UserID)
	if err = row.Scan(&owner.PetLevel, &owner.PetExperience, &owner.PetHappiness); err != nil {
		return nil, errors.New("loading owner pet stats error: " + err.Error())
	}
	streak.GrantCompletionXP(&owner)
	_, err = tx.Exec(ctx, `UPDATE users SET pet_level = $1, pet_experience = $2, pet_happiness = $3, updated_at = NOW() WHERE id = $4;`,
		owner.PetLevel,
		owner.PetExperience,
		owner.PetHappiness,
		owner.ID,
	)
	if err != nil {
		return nil, errors.New("storing pet stats error: " + err.Error())
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, errors.New("committing completion tx error: " + err.Error())
	}
	return &habit, nil
}

func (er *EventsRepository) GetByHabitID(ctx context.Context, habitID uuid.UUID, limit, offset int) ([]entity.HabitEvent, error) {
	rows, err := er.conn.Query(ctx, `SELECT `+eventColumns+` FROM habit_events
		WHERE habit_id = $1 ORDER BY completed_at DESC LIMIT $2 OFFSET $3;`,
		habitID,
		limit,
		offset,
	)
	if err != nil {
		return nil, errors.New("getting events by habit error: " + err.Error())
	}
	return scanEvents(rows)
}

func (er *EventsRepository) CompletionDays(ctx context.Context, habitID uuid.UUID, since time.Time) (int, error) {
	row := er.conn.QueryRow(ctx, `SELECT COUNT(DISTINCT (completed_at AT TIME ZONE 'UTC')::date) FROM habit_events
		WHERE habit_id = $1 AND completed_at >= $2;`,
		habitID,
		since,
	)
	var days int
	if err := row.Scan(&days); err != nil {
		return 0, errors.New("counting completion days error: " + err.Error())
	}
	return days, nil
}

func (er *EventsRepository) MoodEnergyAverages(ctx context.Context, habitID uuid.UUID) (*float64, *float64, error) {
	row := er.conn.QueryRow(ctx, `SELECT AVG(mood)::float8, AVG(energy_level)::float8 FROM habit_events
		WHERE habit_id = $1;`,
		habitID,
	)
	var mood, energy *float64
	if err := row.Scan(&mood, &energy); err != nil {
		return nil, nil, errors.New("averaging mood and energy error: " + err.Error())
	}
	return mood, energy, nil
}

func scanEvents(rows pgx.Rows) ([]entity.HabitEvent, error) {
	defer rows.Close()
	events := make([]entity.HabitEvent, 0)
	for rows.Next() {
		var ev entity.HabitEvent
		err := rows.Scan(
			&ev.ID,
			&ev.HabitID,
			&ev.CompletedAt,
			&ev.Notes,
			&ev.Mood,
			&ev.EnergyLevel,
			&ev.TimeOfDay,
			&ev.DayOfWeek,
		)
		if err != nil {
			return nil, errors.New("event row parsing error: " + err.Error())
		}
		events = append(events, ev)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected event rows error: " + rows.Err().Error())
	}
	return events, nil
}
