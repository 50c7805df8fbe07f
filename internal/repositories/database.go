package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/karanbedi/storefront-platform/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

// Repositories owns the shared database handle. It is constructed once at
// process start and closed at shutdown; everything downstream receives it
// explicitly instead of reaching for package-level state.
type Repositories struct {
	DB      *sql.DB
	Product ProductRepository
	Cart    CartRepository
	Guest   GuestRepository
	Review  ReviewRepository
}

func New(cfg *config.Config) (*Repositories, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(context.Background(), db); err != nil {
		return nil, fmt.Errorf("failed to run schema migration: %w", err)
	}

	return &Repositories{
		DB:      db,
		Product: NewProductRepo(db),
		Cart:    NewCartRepo(db),
		Guest:   NewGuestRepo(db),
		Review:  NewReviewRepo(db),
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
