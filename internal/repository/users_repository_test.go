package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/neurohabit/backend/internal/error_values"
	"github.com/neurohabit/backend/internal/repository"
	"github.com/neurohabit/backend/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

var userColumns = []string{
	"id", "email", "full_name", "google_id", "password_hash", "is_active", "is_premium",
	"pet_level", "pet_experience", "pet_happiness", "created_at", "updated_at",
}

func testDBUser() entity.User {
	hash := "test_password_hash"
	return entity.User{
		ID:           uuid.New(),
		Email:        "tester@neurohabit.com",
		FullName:     "Test User",
		PasswordHash: &hash,
		IsActive:     true,
		PetLevel:     1,
		PetHappiness: 50,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func userRows(user entity.User) *pgxmock.Rows {
	return pgxmock.NewRows(userColumns).AddRow(
		user.ID, user.Email, user.FullName, user.GoogleID, user.PasswordHash,
		user.IsActive, user.IsPremium, user.PetLevel, user.PetExperience,
		user.PetHappiness, user.CreatedAt, user.UpdatedAt,
	)
}

func TestCreateUser(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	user := testDBUser()
	query := regexp.QuoteMeta(`INSERT INTO users (email, full_name, google_id, password_hash)`)
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	t.Run("successfully created", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.Email, user.FullName, user.GoogleID, user.PasswordHash).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(user.ID))
		id, err := repo.Create(ctx, &user)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, id)
	})
	t.Run("unique violation error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.Email, user.FullName, user.GoogleID, user.PasswordHash).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		_, err := repo.Create(ctx, &user)
		assert.ErrorIs(t, err, errorvalues.ErrUserExists)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.Email, user.FullName, user.GoogleID, user.PasswordHash).
			WillReturnError(errors.New("db error"))
		_, err := repo.Create(ctx, &user)
		assert.Error(t, err)
	})
}

func TestFindUserByEmail(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	user := testDBUser()
	query := regexp.QuoteMeta(`FROM users WHERE email = $1;`)
	t.Run("found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.Email).
			WillReturnRows(userRows(user))
		result, err := repo.FindByEmail(ctx, user.Email)
		assert.NoError(t, err)
		assert.Equal(t, user, *result)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.Email).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByEmail(ctx, user.Email)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.Email).
			WillReturnError(errors.New("db error"))
		_, err := repo.FindByEmail(ctx, user.Email)
		assert.Error(t, err)
	})
}

func TestFindUserByGoogleID(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	user := testDBUser()
	googleID := "google_id_123"
	user.GoogleID = &googleID
	query := regexp.QuoteMeta(`FROM users WHERE google_id = $1;`)
	t.Run("found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(googleID).
			WillReturnRows(userRows(user))
		result, err := repo.FindByGoogleID(ctx, googleID)
		assert.NoError(t, err)
		assert.Equal(t, user, *result)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(googleID).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByGoogleID(ctx, googleID)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestFindUserByID(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	user := testDBUser()
	query := regexp.QuoteMeta(`FROM users WHERE id = $1;`)
	t.Run("found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.ID).
			WillReturnRows(userRows(user))
		result, err := repo.FindByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, user, *result)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.ID).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByID(ctx, user.ID)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.ID).
			WillReturnError(errors.New("db error"))
		_, err := repo.FindByID(ctx, user.ID)
		assert.Error(t, err)
	})
}

func TestUpdateUser(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	user := testDBUser()
	query := regexp.QuoteMeta(`UPDATE users SET full_name = $1, is_premium = $2, updated_at = NOW() WHERE id = $3;`)
	t.Run("updated", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.FullName, user.IsPremium, user.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		assert.NoError(t, repo.Update(ctx, &user))
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.FullName, user.IsPremium, user.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		assert.ErrorIs(t, repo.Update(ctx, &user), errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.FullName, user.IsPremium, user.ID).
			WillReturnError(errors.New("db error"))
		assert.Error(t, repo.Update(ctx, &user))
	})
}

func TestDeleteUser(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	uid := uuid.New()
	query := regexp.QuoteMeta(`DELETE FROM users WHERE id = $1;`)
	t.Run("deleted", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(uid).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		assert.NoError(t, repo.Delete(ctx, uid))
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(uid).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		assert.ErrorIs(t, repo.Delete(ctx, uid), errorvalues.ErrUserNotFound)
	})
}
