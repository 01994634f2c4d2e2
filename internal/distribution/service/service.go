// Package service orchestrates lead distribution: it scores a verified
// realtor pool against a lead, filters and ranks the results, and optionally
// persists an assignment.
package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"leadmarket_backend/internal/distribution/repository"
	"leadmarket_backend/internal/distribution/scoring"
	"leadmarket_backend/internal/events"
	"leadmarket_backend/platform/apperr"
	"leadmarket_backend/platform/logger"
)

const (
	defaultMaxRealtors       = 5
	recommendationMaxMatches = 10

	msgNoVerifiedRealtors = "No verified realtors available"
	msgNoMatches          = "No matching realtors found"
	msgDistributeFailed   = "Failed to distribute lead"
	msgAutoAssignFailed   = "Failed to auto-assign lead"
)

// Options tunes a single distribution call.
//
// MaxDistanceMiles is accepted for API compatibility but is not enforced as
// a hard cutoff: distance tiers are baked into the location sub-score and
// the inclusion filter only looks at scores. Do not turn it into a filter
// without a product decision.
type Options struct {
	MaxRealtors      int
	MaxDistanceMiles float64
}

// Assignment is the outcome of an auto-assign call.
type Assignment struct {
	LeadID     uuid.UUID `json:"leadId"`
	RealtorID  uuid.UUID `json:"realtorId"`
	AssignedTo string    `json:"assignedTo"`
	Score      int       `json:"score"`
}

// BatchResult is the per-lead outcome of a batch distribution run.
type BatchResult struct {
	LeadID     string `json:"leadId"`
	Assigned   bool   `json:"assigned"`
	AssignedTo string `json:"assignedTo,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Service implements the distribution engine.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger

	defaultMax int
}

// New creates the distribution service. maxMatches caps the default match
// list size; zero or negative falls back to 5.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger, maxMatches int) *Service {
	if maxMatches <= 0 {
		maxMatches = defaultMaxRealtors
	}
	return &Service{repo: repo, bus: bus, log: log, defaultMax: maxMatches}
}

// Distribute scores every verified realtor against the lead and returns the
// qualifying matches, best first, truncated to opts.MaxRealtors.
//
// A realtor qualifies with any location affinity at all, or with a total
// above 50: zero-location realtors can still win on language, verification
// and availability combined. This broad-net rule is intentional.
func (s *Service) Distribute(ctx context.Context, leadID uuid.UUID, opts Options) ([]scoring.DistributionScore, error) {
	maxRealtors := opts.MaxRealtors
	if maxRealtors <= 0 {
		maxRealtors = s.defaultMax
	}

	lead, err := s.repo.FindLeadByID(ctx, leadID)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return nil, err
		}
		s.log.DatabaseError("find lead for distribution", err)
		return nil, apperr.Wrap(apperr.KindInternal, msgDistributeFailed, err)
	}

	pool, err := s.repo.FindVerifiedRealtors(ctx)
	if err != nil {
		s.log.DatabaseError("find verified realtors", err)
		return nil, apperr.Wrap(apperr.KindInternal, msgDistributeFailed, err)
	}
	if len(pool) == 0 {
		return nil, apperr.NotFound(msgNoVerifiedRealtors)
	}

	matches := make([]scoring.DistributionScore, 0, len(pool))
	for _, realtor := range pool {
		score := scoring.Score(lead, realtor)
		if score.LocationScore > 0 || score.TotalScore > 50 {
			matches = append(matches, score)
		}
	}
	if len(matches) == 0 {
		return nil, apperr.NotFound(msgNoMatches)
	}

	// Stable keeps pool iteration order for equal totals.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].TotalScore > matches[j].TotalScore
	})
	if len(matches) > maxRealtors {
		matches = matches[:maxRealtors]
	}

	s.log.DistributionEvent(leadID.String(), len(pool), len(matches))

	return matches, nil
}

// Recommendations is the read-only variant of Distribute with a wider match
// list. It never mutates anything.
func (s *Service) Recommendations(ctx context.Context, leadID uuid.UUID) ([]scoring.DistributionScore, error) {
	return s.Distribute(ctx, leadID, Options{MaxRealtors: recommendationMaxMatches})
}

// AutoAssign distributes with a single-match cap and persists the winner
// onto the lead's agent reference.
func (s *Service) AutoAssign(ctx context.Context, leadID uuid.UUID) (Assignment, error) {
	matches, err := s.Distribute(ctx, leadID, Options{MaxRealtors: 1})
	if err != nil {
		return Assignment{}, err
	}

	top := matches[0]
	if err := s.repo.UpdateLeadAgent(ctx, leadID, top.RealtorID); err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return Assignment{}, err
		}
		s.log.DatabaseError("update lead agent", err)
		return Assignment{}, apperr.Wrap(apperr.KindInternal, msgAutoAssignFailed, err)
	}

	s.log.AssignmentEvent(leadID.String(), top.RealtorID.String(), top.TotalScore)

	if s.bus != nil {
		s.bus.Publish(ctx, events.LeadAssigned{
			BaseEvent:   events.NewBaseEvent(),
			LeadID:      leadID,
			RealtorID:   top.RealtorID,
			RealtorName: top.RealtorName,
			Score:       top.TotalScore,
			Reason:      top.Reason,
		})
	}

	return Assignment{
		LeadID:     leadID,
		RealtorID:  top.RealtorID,
		AssignedTo: top.RealtorName,
		Score:      top.TotalScore,
	}, nil
}

// BatchDistribute auto-assigns each lead strictly in input order. One lead's
// failure never aborts the batch; every input id gets a result entry at the
// matching index.
func (s *Service) BatchDistribute(ctx context.Context, leadIDs []uuid.UUID) []BatchResult {
	results := make([]BatchResult, 0, len(leadIDs))

	for _, id := range leadIDs {
		assignment, err := s.AutoAssign(ctx, id)
		if err != nil {
			results = append(results, BatchResult{
				LeadID: id.String(),
				Error:  apperr.UserMessage(err),
			})
			continue
		}
		results = append(results, BatchResult{
			LeadID:     id.String(),
			Assigned:   true,
			AssignedTo: assignment.AssignedTo,
		})
	}

	return results
}
