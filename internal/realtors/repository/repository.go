package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"leadmarket_backend/platform/apperr"
)

const realtorNotFoundMessage = "Realtor not found"

const realtorColumns = `id, name, email, phone, is_verified, cities, states, languages, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new realtors repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a new realtor profile.
func (r *Repo) Create(ctx context.Context, realtor Realtor) (Realtor, error) {
	query := `
		INSERT INTO realtors (id, name, email, phone, is_verified, cities, states, languages)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + realtorColumns

	created, err := scanRealtor(r.pool.QueryRow(ctx, query,
		realtor.ID, realtor.Name, realtor.Email, realtor.Phone, realtor.IsVerified,
		realtor.Cities, realtor.States, realtor.Languages,
	))
	if err != nil {
		return Realtor{}, fmt.Errorf("create realtor: %w", err)
	}

	return created, nil
}

// GetByID retrieves a realtor by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Realtor, error) {
	query := `SELECT ` + realtorColumns + ` FROM realtors WHERE id = $1`

	realtor, err := scanRealtor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Realtor{}, apperr.NotFound(realtorNotFoundMessage)
		}
		return Realtor{}, fmt.Errorf("get realtor by id: %w", err)
	}

	return realtor, nil
}

// List retrieves realtors, optionally restricted to verified profiles.
func (r *Repo) List(ctx context.Context, filter ListFilter) ([]Realtor, error) {
	query := `SELECT ` + realtorColumns + ` FROM realtors`
	var args []interface{}
	if filter.VerifiedOnly {
		query += " WHERE is_verified = TRUE"
	}
	query += " ORDER BY created_at ASC"

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list realtors: %w", err)
	}
	defer rows.Close()

	var realtors []Realtor
	for rows.Next() {
		realtor, err := scanRealtor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan realtor: %w", err)
		}
		realtors = append(realtors, realtor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate realtors: %w", err)
	}

	return realtors, nil
}

// Update rewrites a realtor's mutable profile fields.
func (r *Repo) Update(ctx context.Context, realtor Realtor) (Realtor, error) {
	query := `
		UPDATE realtors
		SET name = $2, email = $3, phone = $4, cities = $5, states = $6, languages = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + realtorColumns

	updated, err := scanRealtor(r.pool.QueryRow(ctx, query,
		realtor.ID, realtor.Name, realtor.Email, realtor.Phone,
		realtor.Cities, realtor.States, realtor.Languages,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Realtor{}, apperr.NotFound(realtorNotFoundMessage)
		}
		return Realtor{}, fmt.Errorf("update realtor: %w", err)
	}

	return updated, nil
}

// SetVerified flips the verification flag.
func (r *Repo) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (Realtor, error) {
	query := `
		UPDATE realtors
		SET is_verified = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + realtorColumns

	updated, err := scanRealtor(r.pool.QueryRow(ctx, query, id, verified))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Realtor{}, apperr.NotFound(realtorNotFoundMessage)
		}
		return Realtor{}, fmt.Errorf("set realtor verified: %w", err)
	}

	return updated, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRealtor(row rowScanner) (Realtor, error) {
	var realtor Realtor
	err := row.Scan(
		&realtor.ID, &realtor.Name, &realtor.Email, &realtor.Phone, &realtor.IsVerified,
		&realtor.Cities, &realtor.States, &realtor.Languages,
		&realtor.CreatedAt, &realtor.UpdatedAt,
	)
	return realtor, err
}
