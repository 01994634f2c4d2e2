// Package repository provides data access for realtor profiles.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Realtor is a service-provider profile eligible to receive leads.
// Cities, States and Languages are stored as CSV text columns; this module
// normalizes them on write so downstream readers can parse them cheaply.
type Realtor struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Phone      string
	IsVerified bool
	Cities     string
	States     string
	Languages  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ListFilter narrows a realtor listing.
type ListFilter struct {
	VerifiedOnly bool
	Limit        int
	Offset       int
}

// Repository is the data access boundary for the realtors module.
type Repository interface {
	Create(ctx context.Context, realtor Realtor) (Realtor, error)
	GetByID(ctx context.Context, id uuid.UUID) (Realtor, error)
	List(ctx context.Context, filter ListFilter) ([]Realtor, error)
	Update(ctx context.Context, realtor Realtor) (Realtor, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) (Realtor, error)
}
