package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/neurohabit/backend/internal/error_values"
	"github.com/neurohabit/backend/internal/repository"
	"github.com/neurohabit/backend/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreatePrediction(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewPredictionsRepoWithConn(conn)
	prediction := entity.Prediction{
		UserID:         uuid.New(),
		HabitID:        uuid.New(),
		RiskScore:      0.25,
		PredictionType: "habit_success",
		FeaturesUsed:   `{"difficulty_rating":3}`,
	}
	query := regexp.QuoteMeta(`INSERT INTO predictions (user_id, habit_id, risk_score, prediction_type, features_used)`)
	createArgs := []any{
		prediction.UserID, prediction.HabitID, prediction.RiskScore,
		prediction.PredictionType, prediction.FeaturesUsed,
	}
	t.Run("successfully created", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(createArgs...).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
		id, err := repo.Create(ctx, &prediction)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})
	t.Run("fk violation error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(createArgs...).
			WillReturnError(&pgconn.PgError{Code: "23503"})
		_, err := repo.Create(ctx, &prediction)
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(createArgs...).
			WillReturnError(errors.New("db error"))
		_, err := repo.Create(ctx, &prediction)
		assert.Error(t, err)
	})
}

func TestGetPredictionsByUserID(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewPredictionsRepoWithConn(conn)
	uid := uuid.New()
	now := time.Now()
	query := regexp.QuoteMeta(`FROM predictions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`)
	columns := []string{"id", "user_id", "habit_id", "risk_score", "prediction_type", "features_used", "created_at"}
	t.Run("found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid, 10, 0).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(int64(2), uid, uuid.New(), 0.7, "habit_success", "{}", now).
				AddRow(int64(1), uid, uuid.New(), 0.2, "habit_success", "{}", now.Add(-time.Hour)))
		predictions, err := repo.GetByUserID(ctx, uid, 10, 0)
		assert.NoError(t, err)
		assert.Len(t, predictions, 2)
		assert.Equal(t, int64(2), predictions[0].ID)
	})
	t.Run("empty", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid, 10, 0).
			WillReturnRows(pgxmock.NewRows(columns))
		predictions, err := repo.GetByUserID(ctx, uid, 10, 0)
		assert.NoError(t, err)
		assert.Empty(t, predictions)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid, 10, 0).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetByUserID(ctx, uid, 10, 0)
		assert.Error(t, err)
	})
}
