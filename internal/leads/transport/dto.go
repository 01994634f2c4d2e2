// Package transport defines request/response DTOs for the leads API.
package transport

import (
	"time"

	"github.com/google/uuid"

	"leadmarket_backend/internal/leads/repository"
)

// CreateLeadRequest contains data for lead intake.
type CreateLeadRequest struct {
	Name               string   `json:"name" validate:"required,min=1,max=200"`
	Email              string   `json:"email" validate:"required,email"`
	Phone              string   `json:"phone" validate:"required,min=7,max=32"`
	City               string   `json:"city" validate:"required,min=1,max=120"`
	ZipCode            string   `json:"zipCode" validate:"required,len=5,numeric"`
	Latitude           *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude          *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	LanguagePreference *string  `json:"languagePreference,omitempty" validate:"omitempty,max=120"`
	PriceCents         int64    `json:"priceCents" validate:"min=0"`
	Source             string   `json:"source,omitempty" validate:"omitempty,max=60"`
}

// ListLeadsRequest narrows a lead listing.
type ListLeadsRequest struct {
	Status string `form:"status" validate:"omitempty,oneof=locked unlocked"`
	City   string `form:"city" validate:"omitempty,max=120"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=200"`
	Offset int    `form:"offset" validate:"omitempty,min=0"`
}

// LeadResponse represents a lead in API responses.
type LeadResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	City               string     `json:"city"`
	ZipCode            string     `json:"zipCode"`
	Latitude           *float64   `json:"latitude,omitempty"`
	Longitude          *float64   `json:"longitude,omitempty"`
	LanguagePreference *string    `json:"languagePreference,omitempty"`
	PriceCents         int64      `json:"priceCents"`
	Status             string     `json:"status"`
	AgentID            *uuid.UUID `json:"agentId,omitempty"`
	CreatedAt          string     `json:"createdAt"`
	UpdatedAt          string     `json:"updatedAt"`
}

// LeadListResponse wraps a list of leads.
type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
	Total int            `json:"total"`
}

// FromLead maps a repository lead onto the response shape.
func FromLead(lead repository.Lead) LeadResponse {
	return LeadResponse{
		ID:                 lead.ID,
		Name:               lead.Name,
		Email:              lead.Email,
		Phone:              lead.Phone,
		City:               lead.City,
		ZipCode:            lead.ZipCode,
		Latitude:           lead.Latitude,
		Longitude:          lead.Longitude,
		LanguagePreference: lead.LanguagePreference,
		PriceCents:         lead.PriceCents,
		Status:             lead.Status,
		AgentID:            lead.AgentID,
		CreatedAt:          lead.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:          lead.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// FromLeads maps a lead slice onto the list response.
func FromLeads(leads []repository.Lead) LeadListResponse {
	items := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, FromLead(lead))
	}
	return LeadListResponse{Items: items, Total: len(items)}
}
