// Package service implements lead intake and lifecycle operations.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"leadmarket_backend/internal/events"
	"leadmarket_backend/internal/geo"
	"leadmarket_backend/internal/leads/repository"
	"leadmarket_backend/internal/leads/transport"
	"leadmarket_backend/platform/apperr"
	"leadmarket_backend/platform/logger"
	"leadmarket_backend/platform/phone"
)

// Service implements lead intake and lifecycle logic.
type Service struct {
	repo     repository.Repository
	resolver geo.CoordinateResolver
	bus      events.Bus
	log      *logger.Logger
}

// New creates the leads service. The resolver backfills coordinates from the
// ZIP code when intake does not supply them.
func New(repo repository.Repository, resolver geo.CoordinateResolver, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, resolver: resolver, bus: bus, log: log}
}

// Create stores a new lead. The phone number is normalized to E.164 and
// missing coordinates are resolved from the ZIP table when possible.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (repository.Lead, error) {
	lead := repository.Lead{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:      phone.NormalizeE164(req.Phone),
		City:       strings.TrimSpace(req.City),
		ZipCode:    strings.TrimSpace(req.ZipCode),
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		PriceCents: req.PriceCents,
		Status:     repository.StatusLocked,
	}
	if req.LanguagePreference != nil {
		if pref := strings.TrimSpace(*req.LanguagePreference); pref != "" {
			lead.LanguagePreference = &pref
		}
	}

	if lead.Latitude == nil || lead.Longitude == nil {
		if coords, ok := s.resolver.Resolve(lead.ZipCode); ok {
			lead.Latitude = &coords.Lat
			lead.Longitude = &coords.Lng
		}
	}

	created, err := s.repo.Create(ctx, lead)
	if err != nil {
		s.log.DatabaseError("create lead", err)
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "Failed to create lead", err)
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    created.ID,
		City:      created.City,
		Source:    req.Source,
	})

	return created, nil
}

// Get retrieves a single lead.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves leads matching the filter.
func (s *Service) List(ctx context.Context, filter repository.ListFilter) ([]repository.Lead, error) {
	leads, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.DatabaseError("list leads", err)
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to list leads", err)
	}
	return leads, nil
}

// Unlock marks a lead as unlocked for the requesting realtor and publishes
// the unlock event with the price paid.
func (s *Service) Unlock(ctx context.Context, id, realtorID uuid.UUID) (repository.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Lead{}, err
	}
	if lead.Status == repository.StatusUnlocked {
		return repository.Lead{}, apperr.Conflict("Lead is already unlocked")
	}

	unlocked, err := s.repo.Unlock(ctx, id)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return repository.Lead{}, err
		}
		s.log.DatabaseError("unlock lead", err)
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "Failed to unlock lead", err)
	}

	s.bus.Publish(ctx, events.LeadUnlocked{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     unlocked.ID,
		RealtorID:  realtorID,
		PriceCents: unlocked.PriceCents,
	})

	return unlocked, nil
}

// Delete removes a lead.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ListUnassigned returns leads awaiting distribution, oldest first.
func (s *Service) ListUnassigned(ctx context.Context, limit int) ([]repository.Lead, error) {
	return s.repo.ListUnassigned(ctx, limit)
}
