package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/karanbedi/storefront-platform/internal/models"
	"github.com/karanbedi/storefront-platform/internal/utils"
)

type GuestRepository interface {
	FindByToken(ctx context.Context, token string) (*models.Guest, error)
	Create(ctx context.Context, token string, expiresAt time.Time) (*models.Guest, error)
	DeleteByToken(ctx context.Context, token string) error
}

type guestRepository struct {
	DB *sql.DB
}

func NewGuestRepo(db *sql.DB) GuestRepository {
	return &guestRepository{DB: db}
}

// FindByToken returns (nil, nil) for unknown or expired tokens.
func (r *guestRepository) FindByToken(ctx context.Context, token string) (*models.Guest, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, session_token, expires_at, created_at
		FROM guests
		WHERE session_token = $1 AND expires_at > NOW()`

	guest := &models.Guest{}

	err := r.DB.QueryRowContext(dbCtx, query, token).Scan(&guest.ID, &guest.SessionToken, &guest.ExpiresAt, &guest.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("querying guest session: %w", err)
	}

	return guest, nil
}

func (r *guestRepository) Create(ctx context.Context, token string, expiresAt time.Time) (*models.Guest, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO guests (session_token, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (session_token) DO UPDATE SET expires_at = EXCLUDED.expires_at
		RETURNING id, session_token, expires_at, created_at`

	guest := &models.Guest{}

	err := r.DB.QueryRowContext(dbCtx, query, token, expiresAt).Scan(&guest.ID, &guest.SessionToken, &guest.ExpiresAt, &guest.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating guest session: %w", err)
	}

	return guest, nil
}

func (r *guestRepository) DeleteByToken(ctx context.Context, token string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM guests WHERE session_token = $1`, token); err != nil {
		return fmt.Errorf("deleting guest session: %w", err)
	}

	return nil
}
