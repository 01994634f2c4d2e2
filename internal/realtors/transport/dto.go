// Package transport defines request/response DTOs for the realtors API.
package transport

import (
	"time"

	"github.com/google/uuid"

	"leadmarket_backend/internal/realtors/repository"
)

// CreateRealtorRequest contains data for a new realtor profile. The
// multi-value fields arrive as comma-delimited strings matching the
// upstream data model.
type CreateRealtorRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,min=7,max=32"`
	Cities    string `json:"cities" validate:"omitempty,max=1000"`
	States    string `json:"states" validate:"omitempty,max=200"`
	Languages string `json:"languages" validate:"omitempty,max=500"`
}

// UpdateRealtorRequest contains partial profile updates.
type UpdateRealtorRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,min=7,max=32"`
	Cities    *string `json:"cities,omitempty" validate:"omitempty,max=1000"`
	States    *string `json:"states,omitempty" validate:"omitempty,max=200"`
	Languages *string `json:"languages,omitempty" validate:"omitempty,max=500"`
}

// VerifyRealtorRequest toggles the verification flag.
type VerifyRealtorRequest struct {
	Verified bool `json:"verified"`
}

// ListRealtorsRequest narrows a realtor listing.
type ListRealtorsRequest struct {
	Verified bool `form:"verified"`
	Limit    int  `form:"limit" validate:"omitempty,min=1,max=200"`
	Offset   int  `form:"offset" validate:"omitempty,min=0"`
}

// RealtorResponse represents a realtor in API responses.
type RealtorResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	IsVerified bool      `json:"isVerified"`
	Cities     string    `json:"cities"`
	States     string    `json:"states"`
	Languages  string    `json:"languages"`
	CreatedAt  string    `json:"createdAt"`
	UpdatedAt  string    `json:"updatedAt"`
}

// RealtorListResponse wraps a list of realtors.
type RealtorListResponse struct {
	Items []RealtorResponse `json:"items"`
	Total int               `json:"total"`
}

// FromRealtor maps a repository realtor onto the response shape.
func FromRealtor(realtor repository.Realtor) RealtorResponse {
	return RealtorResponse{
		ID:         realtor.ID,
		Name:       realtor.Name,
		Email:      realtor.Email,
		Phone:      realtor.Phone,
		IsVerified: realtor.IsVerified,
		Cities:     realtor.Cities,
		States:     realtor.States,
		Languages:  realtor.Languages,
		CreatedAt:  realtor.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  realtor.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// FromRealtors maps a realtor slice onto the list response.
func FromRealtors(realtors []repository.Realtor) RealtorListResponse {
	items := make([]RealtorResponse, 0, len(realtors))
	for _, realtor := range realtors {
		items = append(items, FromRealtor(realtor))
	}
	return RealtorListResponse{Items: items, Total: len(items)}
}
