package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neurohabit/backend/internal/streak"
	"github.com/neurohabit/backend/pkg/cleanup"
	"github.com/neurohabit/backend/pkg/entity"
)

// StatsRepository aggregates the dashboard rollup. It spans habits and
// habit_events, so it lives apart from the per-table repositories.
type StatsRepository struct {
	conn PgConnection
}

func NewStatsRepo(cfg DBConfig) *StatsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for statsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for statsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &StatsRepository{
		conn: pool,
	}
}

func NewStatsRepoWithConn(conn PgConnection) *StatsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for statsRepo: " + err.Error())
	}
	return &StatsRepository{
		conn: conn,
	}
}

func (sr *StatsRepository) GetUserStats(ctx context.Context, uid uuid.UUID, since time.Time) (*entity.DashboardStats, error) {
	var stats entity.DashboardStats

	row := sr.conn.QueryRow(ctx, `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active), COALESCE(AVG(current_streak), 0)::float8
		FROM habits WHERE user_id = $1;`, uid)
	if err := row.Scan(&stats.TotalHabits, &stats.ActiveHabits, &stats.AverageStreak); err != nil {
		return nil, errors.New("counting habits error: " + err.Error())
	}

	row = sr.conn.QueryRow(ctx, `SELECT COUNT(*) FROM habit_events ev
		JOIN habits h ON h.id = ev.habit_id WHERE h.user_id = $1;`, uid)
	if err := row.Scan(&stats.TotalCompletions); err != nil {
		return nil, errors.New("counting completions error: " + err.Error())
	}

	var recent int
	row = sr.conn.QueryRow(ctx, `SELECT COUNT(*) FROM habit_events ev
		JOIN habits h ON h.id = ev.habit_id WHERE h.user_id = $1 AND ev.completed_at >= $2;`, uid, since)
	if err := row.Scan(&recent); err != nil {
		return nil, errors.New("counting recent completions error: " + err.Error())
	}

	stats.CompletionRate = streak.CompletionRate(recent, stats.ActiveHabits)
	return &stats, nil
}
