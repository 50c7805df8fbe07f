package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReviewRepoTest(t *testing.T) (sqlmock.Sqlmock, ReviewRepository, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	repo := NewReviewRepo(db)

	cleanup := func() {
		db.Close()
	}

	return mock, repo, cleanup
}

func TestReviewRepository_ListByProduct(t *testing.T) {
	mock, repo, cleanup := setupReviewRepoTest(t)
	defer cleanup()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		productID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "author", "rating", "title", "comment", "created_at"}).
			AddRow(uuid.New(), "Priya", 5, "Great fit", "Fits true to size.", time.Now()).
			AddRow(uuid.New(), "Anonymous", 3, "", "Zipper feels flimsy.", time.Now())

		mock.ExpectQuery(`SELECT r\.id, COALESCE\(u\.name, 'Anonymous'\), r\.rating`).
			WithArgs(productID, 10).
			WillReturnRows(rows)

		// Act
		reviews, err := repo.ListByProduct(context.Background(), productID, 10)

		// Assert
		require.NoError(t, err)
		require.Len(t, reviews, 2)
		assert.Equal(t, "Priya", reviews[0].Author)
		assert.Equal(t, "Great fit", reviews[0].Title)
		assert.Equal(t, "Anonymous", reviews[1].Author)
		assert.Empty(t, reviews[1].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoReviews", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT r\.id, COALESCE\(u\.name, 'Anonymous'\), r\.rating`).
			WithArgs(sqlmock.AnyArg(), 10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "author", "rating", "title", "comment", "created_at"}))

		// Act
		reviews, err := repo.ListByProduct(context.Background(), uuid.New(), 10)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, reviews)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
