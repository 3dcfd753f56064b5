package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/neurohabit/backend/internal/error_values"
	"github.com/neurohabit/backend/pkg/cleanup"
	"github.com/neurohabit/backend/pkg/entity"
)

type PredictionsRepository struct {
	conn PgConnection
}

func NewPredictionsRepo(cfg DBConfig) *PredictionsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for predictionsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for predictionsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &PredictionsRepository{
		conn: pool,
	}
}

func NewPredictionsRepoWithConn(conn PgConnection) *PredictionsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for predictionsRepo: " + err.Error())
	}
	return &PredictionsRepository{
		conn: conn,
	}
}

func (pr *PredictionsRepository) Create(ctx context.Context, prediction *entity.Prediction) (int64, error) {
	var id int64
	row := pr.conn.QueryRow(ctx, `INSERT INTO predictions (user_id, habit_id, risk_score, prediction_type, features_used)
		VALUES ($1, $2, $3, $4, $5) RETURNING id;`,
		prediction.UserID,
		prediction.HabitID,
		prediction.RiskScore,
		prediction.PredictionType,
		prediction.FeaturesUsed,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, errorvalues.ErrHabitNotFound
		}
		return 0, errors.New("storing prediction error: " + err.Error())
	}
	return id, nil
}

func (pr *PredictionsRepository) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]entity.Prediction, error) {
	rows, err := pr.conn.Query(ctx, `SELECT id, user_id, habit_id, risk_score, prediction_type, features_used, created_at
		FROM predictions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`,
		uid,
		limit,
		offset,
	)
	if err != nil {
		return nil, errors.New("getting predictions by uid error: " + err.Error())
	}
	defer rows.Close()
	predictions := make([]entity.Prediction, 0)
	for rows.Next() {
		var p entity.Prediction
		err = rows.Scan(&p.ID, &p.UserID, &p.HabitID, &p.RiskScore, &p.PredictionType, &p.FeaturesUsed, &p.CreatedAt)
		if err != nil {
			return nil, errors.New("prediction row parsing error: " + err.Error())
		}
		predictions = append(predictions, p)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected prediction rows error: " + rows.Err().Error())
	}
	return predictions, nil
}
