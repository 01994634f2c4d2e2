package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"leadmarket_backend/platform/apperr"
)

const leadNotFoundMessage = "Lead not found"

const leadColumns = `id, name, email, phone, city, zip_code, latitude, longitude,
	language_preference, price_cents, status, agent_id, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a new lead and returns the stored row.
func (r *Repo) Create(ctx context.Context, lead Lead) (Lead, error) {
	query := `
		INSERT INTO leads (id, name, email, phone, city, zip_code, latitude, longitude,
			language_preference, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + leadColumns

	row := r.pool.QueryRow(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.City, lead.ZipCode,
		lead.Latitude, lead.Longitude, lead.LanguagePreference, lead.PriceCents, lead.Status,
	)
	created, err := scanLead(row)
	if err != nil {
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}

	return created, nil
}

// GetByID retrieves a lead by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead by id: %w", err)
	}

	return lead, nil
}

// List retrieves leads matching the filter, newest first.
func (r *Repo) List(ctx context.Context, filter ListFilter) ([]Lead, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.City != "" {
		args = append(args, "%"+strings.ToLower(filter.City)+"%")
		conditions = append(conditions, fmt.Sprintf("LOWER(city) LIKE $%d", len(args)))
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

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
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	return collectLeads(rows)
}

// Unlock flips a lead's status to unlocked and returns the updated row.
func (r *Repo) Unlock(ctx context.Context, id uuid.UUID) (Lead, error) {
	query := `
		UPDATE leads
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id, StatusUnlocked))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("unlock lead: %w", err)
	}

	return lead, nil
}

// Delete removes a lead.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

// ListUnassigned retrieves leads without an agent, oldest first, for batch
// distribution runs.
func (r *Repo) ListUnassigned(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT ` + leadColumns + `
		FROM leads
		WHERE agent_id IS NULL
		ORDER BY created_at ASC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list unassigned leads: %w", err)
	}
	defer rows.Close()

	return collectLeads(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.City, &lead.ZipCode,
		&lead.Latitude, &lead.Longitude, &lead.LanguagePreference, &lead.PriceCents,
		&lead.Status, &lead.AgentID, &lead.CreatedAt, &lead.UpdatedAt,
	)
	return lead, err
}

func collectLeads(rows pgx.Rows) ([]Lead, error) {
	var leads []Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}
