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

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new distribution repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// FindLeadByID loads the scoring projection of a lead.
func (r *Repo) FindLeadByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	query := `
		SELECT id, city, zip_code, latitude, longitude, language_preference, agent_id, price_cents, status
		FROM leads
		WHERE id = $1`

	var lead Lead
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&lead.ID, &lead.City, &lead.ZipCode, &lead.Latitude, &lead.Longitude,
		&lead.LanguagePreference, &lead.AgentID, &lead.PriceCents, &lead.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("find lead by id: %w", err)
	}

	return lead, nil
}

// FindVerifiedRealtors loads every verified realtor plus the number of leads
// currently assigned to them. Multi-value profile columns are stored as CSV
// text and normalized here, at the data boundary.
func (r *Repo) FindVerifiedRealtors(ctx context.Context) ([]Realtor, error) {
	query := `
		SELECT r.id, r.name, r.email, r.is_verified, r.cities, r.states, r.languages,
		       COUNT(l.id) AS assigned_leads
		FROM realtors r
		LEFT JOIN leads l ON l.agent_id = r.id
		WHERE r.is_verified = TRUE
		GROUP BY r.id, r.name, r.email, r.is_verified, r.cities, r.states, r.languages, r.created_at
		ORDER BY r.created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find verified realtors: %w", err)
	}
	defer rows.Close()

	var realtors []Realtor
	for rows.Next() {
		var rt Realtor
		var cities, states, languages string
		if err := rows.Scan(
			&rt.ID, &rt.Name, &rt.Email, &rt.IsVerified,
			&cities, &states, &languages, &rt.AssignedLeads,
		); err != nil {
			return nil, fmt.Errorf("scan realtor: %w", err)
		}
		rt.Cities = SplitList(cities, strings.ToLower)
		rt.States = SplitList(states, strings.ToUpper)
		rt.Languages = SplitList(languages, strings.ToLower)
		realtors = append(realtors, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate realtors: %w", err)
	}

	return realtors, nil
}

// UpdateLeadAgent persists an assignment onto the lead row.
func (r *Repo) UpdateLeadAgent(ctx context.Context, leadID, realtorID uuid.UUID) error {
	query := `
		UPDATE leads
		SET agent_id = $2, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, leadID, realtorID)
	if err != nil {
		return fmt.Errorf("update lead agent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}

	return nil
}

// SplitList parses a CSV profile column into trimmed, non-empty entries,
// applying fold (ToLower for cities/languages, ToUpper for state codes).
func SplitList(raw string, fold func(string) string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, fold(trimmed))
		}
	}
	return out
}
