// Package service implements realtor profile management.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"leadmarket_backend/internal/events"
	"leadmarket_backend/internal/realtors/repository"
	"leadmarket_backend/internal/realtors/transport"
	"leadmarket_backend/platform/apperr"
	"leadmarket_backend/platform/logger"
	"leadmarket_backend/platform/phone"
)

// Service implements realtor profile logic.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates the realtors service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Create stores a new realtor profile. Profiles start unverified; only the
// admin verification flow can make them eligible for distribution.
func (s *Service) Create(ctx context.Context, req transport.CreateRealtorRequest) (repository.Realtor, error) {
	realtor := repository.Realtor{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     phone.NormalizeE164(req.Phone),
		Cities:    NormalizeList(req.Cities, strings.ToLower),
		States:    NormalizeList(req.States, strings.ToUpper),
		Languages: NormalizeList(req.Languages, strings.ToLower),
	}

	created, err := s.repo.Create(ctx, realtor)
	if err != nil {
		s.log.DatabaseError("create realtor", err)
		return repository.Realtor{}, apperr.Wrap(apperr.KindInternal, "Failed to create realtor", err)
	}

	return created, nil
}

// Get retrieves a single realtor profile.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Realtor, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves realtor profiles.
func (s *Service) List(ctx context.Context, filter repository.ListFilter) ([]repository.Realtor, error) {
	realtors, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.DatabaseError("list realtors", err)
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to list realtors", err)
	}
	return realtors, nil
}

// Update rewrites the mutable profile fields of an existing realtor.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateRealtorRequest) (repository.Realtor, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Realtor{}, err
	}

	if req.Name != nil {
		current.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		current.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		current.Phone = phone.NormalizeE164(*req.Phone)
	}
	if req.Cities != nil {
		current.Cities = NormalizeList(*req.Cities, strings.ToLower)
	}
	if req.States != nil {
		current.States = NormalizeList(*req.States, strings.ToUpper)
	}
	if req.Languages != nil {
		current.Languages = NormalizeList(*req.Languages, strings.ToLower)
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return repository.Realtor{}, err
		}
		s.log.DatabaseError("update realtor", err)
		return repository.Realtor{}, apperr.Wrap(apperr.KindInternal, "Failed to update realtor", err)
	}

	return updated, nil
}

// SetVerified flips the verification flag and announces newly verified
// realtors on the event bus.
func (s *Service) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (repository.Realtor, error) {
	updated, err := s.repo.SetVerified(ctx, id, verified)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return repository.Realtor{}, err
		}
		s.log.DatabaseError("set realtor verified", err)
		return repository.Realtor{}, apperr.Wrap(apperr.KindInternal, "Failed to update realtor", err)
	}

	if verified {
		s.bus.Publish(ctx, events.RealtorVerified{
			BaseEvent: events.NewBaseEvent(),
			RealtorID: updated.ID,
		})
	}

	return updated, nil
}

// GetRealtorContact returns the display name and email for a realtor.
// Satisfies the notification module's reader interface.
func (s *Service) GetRealtorContact(ctx context.Context, id uuid.UUID) (name, email string, err error) {
	realtor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", "", err
	}
	return realtor.Name, realtor.Email, nil
}

// NormalizeList canonicalizes a CSV profile column: entries trimmed, folded
// and deduplicated, joined back with a plain comma.
func NormalizeList(raw string, fold func(string) string) string {
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := fold(strings.TrimSpace(p))
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return strings.Join(out, ",")
}
