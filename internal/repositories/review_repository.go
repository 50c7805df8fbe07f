package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/karanbedi/storefront-platform/internal/models"
	"github.com/karanbedi/storefront-platform/internal/utils"
)

type ReviewRepository interface {
	ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]models.ReviewEntry, error)
}

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepo(db *sql.DB) ReviewRepository {
	return &reviewRepository{DB: db}
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]models.ReviewEntry, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// Author falls back to a placeholder when the user record is gone.
	query := `
		SELECT r.id, COALESCE(u.name, 'Anonymous'), r.rating, COALESCE(r.title, ''), r.comment, r.created_at
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2`

	rows, err := r.DB.QueryContext(dbCtx, query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying reviews: %w", err)
	}

	defer rows.Close()

	var reviews []models.ReviewEntry

	for rows.Next() {
		var entry models.ReviewEntry

		if err := rows.Scan(&entry.ID, &entry.Author, &entry.Rating, &entry.Title, &entry.Content, &entry.CreatedAt); err != nil {
			return nil, err
		}

		reviews = append(reviews, entry)
	}

	return reviews, rows.Err()
}
