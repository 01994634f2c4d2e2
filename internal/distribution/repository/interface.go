// Package repository provides data access for the distribution engine.
package repository

import (
	"context"

	"github.com/google/uuid"
)

// Lead is the projection of a buyer lead the scoring engine needs.
// Coordinates and language preference are optional columns; nil means
// the lead never supplied them.
type Lead struct {
	ID                 uuid.UUID
	City               string
	ZipCode            string
	Latitude           *float64
	Longitude          *float64
	LanguagePreference *string
	AgentID            *uuid.UUID
	PriceCents         int64
	Status             string
}

// Realtor is the projection of a realtor profile used for scoring.
// Cities and Languages are normalized to lowercase, States to uppercase,
// before they leave the repository so the scorer never re-parses raw CSV.
type Realtor struct {
	ID            uuid.UUID
	Name          string
	Email         string
	IsVerified    bool
	Cities        []string
	States        []string
	Languages     []string
	AssignedLeads int
}

// Repository is the data access boundary of the distribution service.
type Repository interface {
	// FindLeadByID loads the scoring projection of a single lead.
	FindLeadByID(ctx context.Context, id uuid.UUID) (Lead, error)

	// FindVerifiedRealtors loads the candidate pool: every verified
	// realtor together with their current assigned-lead count.
	FindVerifiedRealtors(ctx context.Context) ([]Realtor, error)

	// UpdateLeadAgent persists an assignment onto the lead row.
	UpdateLeadAgent(ctx context.Context, leadID, realtorID uuid.UUID) error
}
