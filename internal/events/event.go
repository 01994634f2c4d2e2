// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leadmarket_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// LeadCreated is published when a new buyer lead enters the marketplace.
type LeadCreated struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	City   string    `json:"city"`
	Source string    `json:"source,omitempty"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadUnlocked is published when a realtor pays to unlock a lead's contact details.
type LeadUnlocked struct {
	BaseEvent
	LeadID     uuid.UUID `json:"leadId"`
	RealtorID  uuid.UUID `json:"realtorId"`
	PriceCents int64     `json:"priceCents"`
}

func (e LeadUnlocked) EventName() string { return "leads.lead.unlocked" }

// LeadAssigned is published when the distribution engine assigns a lead to a realtor.
type LeadAssigned struct {
	BaseEvent
	LeadID      uuid.UUID `json:"leadId"`
	RealtorID   uuid.UUID `json:"realtorId"`
	RealtorName string    `json:"realtorName"`
	Score       int       `json:"score"`
	Reason      string    `json:"reason,omitempty"`
}

func (e LeadAssigned) EventName() string { return "distribution.lead.assigned" }

// RealtorVerified is published when an admin verifies a realtor profile,
// making it eligible for the distribution pool.
type RealtorVerified struct {
	BaseEvent
	RealtorID uuid.UUID `json:"realtorId"`
}

func (e RealtorVerified) EventName() string { return "realtors.realtor.verified" }
