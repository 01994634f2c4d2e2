// Package repository provides data access for buyer leads.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lead status values.
const (
	StatusLocked   = "locked"
	StatusUnlocked = "unlocked"
)

// Lead is a buyer inquiry available for realtors to unlock.
type Lead struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	Phone              string
	City               string
	ZipCode            string
	Latitude           *float64
	Longitude          *float64
	LanguagePreference *string
	PriceCents         int64
	Status             string
	AgentID            *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ListFilter narrows a lead listing.
type ListFilter struct {
	Status string
	City   string
	Limit  int
	Offset int
}

// Repository is the data access boundary for the leads module.
type Repository interface {
	Create(ctx context.Context, lead Lead) (Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, filter ListFilter) ([]Lead, error)
	Unlock(ctx context.Context, id uuid.UUID) (Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListUnassigned(ctx context.Context, limit int) ([]Lead, error)
}
