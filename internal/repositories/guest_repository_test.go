package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGuestRepoTest(t *testing.T) (sqlmock.Sqlmock, GuestRepository, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	repo := NewGuestRepo(db)

	cleanup := func() {
		db.Close()
	}

	return mock, repo, cleanup
}

func TestGuestRepository_FindByToken(t *testing.T) {
	mock, repo, cleanup := setupGuestRepoTest(t)
	defer cleanup()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		guestID := uuid.New()
		token := uuid.NewString()
		expiresAt := time.Now().Add(24 * time.Hour)

		rows := sqlmock.NewRows([]string{"id", "session_token", "expires_at", "created_at"}).
			AddRow(guestID, token, expiresAt, time.Now())

		mock.ExpectQuery(`SELECT id, session_token, expires_at, created_at`).
			WithArgs(token).
			WillReturnRows(rows)

		// Act
		guest, err := repo.FindByToken(context.Background(), token)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, guest)
		assert.Equal(t, guestID, guest.ID)
		assert.Equal(t, token, guest.SessionToken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExpiredOrMissing", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT id, session_token, expires_at, created_at`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnError(sql.ErrNoRows)

		// Act
		guest, err := repo.FindByToken(context.Background(), uuid.NewString())

		// Assert
		require.NoError(t, err)
		assert.Nil(t, guest)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGuestRepository_Create(t *testing.T) {
	mock, repo, cleanup := setupGuestRepoTest(t)
	defer cleanup()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		token := uuid.NewString()
		expiresAt := time.Now().Add(7 * 24 * time.Hour)

		rows := sqlmock.NewRows([]string{"id", "session_token", "expires_at", "created_at"}).
			AddRow(uuid.New(), token, expiresAt, time.Now())

		mock.ExpectQuery(`INSERT INTO guests \(session_token, expires_at\)`).
			WithArgs(token, expiresAt).
			WillReturnRows(rows)

		// Act
		guest, err := repo.Create(context.Background(), token, expiresAt)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, token, guest.SessionToken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGuestRepository_DeleteByToken(t *testing.T) {
	mock, repo, cleanup := setupGuestRepoTest(t)
	defer cleanup()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		token := uuid.NewString()

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM guests WHERE session_token = $1`)).
			WithArgs(token).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.DeleteByToken(context.Background(), token)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
