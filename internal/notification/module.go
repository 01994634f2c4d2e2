// Package notification delivers emails in reaction to domain events. It
// subscribes to assignment events and informs the receiving realtor; when no
// SMTP host is configured the module degrades to a no-op.
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"leadmarket_backend/internal/events"
	"leadmarket_backend/platform/logger"
)

// RealtorReader resolves a realtor's contact details for outbound email.
// Implemented by the realtors service.
type RealtorReader interface {
	GetRealtorContact(ctx context.Context, id uuid.UUID) (name, email string, err error)
}

// Module reacts to domain events with outbound notifications.
type Module struct {
	sender  Sender
	readers RealtorReader
	log     *logger.Logger
	enabled bool
}

// New creates the notification module. A nil sender or disabled flag turns
// every delivery into a logged no-op.
func New(sender Sender, enabled bool, log *logger.Logger) *Module {
	return &Module{sender: sender, enabled: enabled && sender != nil, log: log}
}

// SetRealtorReader wires the contact lookup used for assignment emails.
func (m *Module) SetRealtorReader(reader RealtorReader) {
	m.readers = reader
}

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.LeadAssigned{}.EventName(), m)
}

// Handle routes events to the appropriate notification.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadAssigned:
		return m.notifyAssignment(ctx, e)
	default:
		return nil
	}
}

func (m *Module) notifyAssignment(ctx context.Context, e events.LeadAssigned) error {
	if !m.enabled {
		m.log.Debug("email disabled, skipping assignment notification", "leadId", e.LeadID)
		return nil
	}
	if m.readers == nil {
		m.log.Warn("no realtor reader wired, skipping assignment notification", "leadId", e.LeadID)
		return nil
	}

	name, email, err := m.readers.GetRealtorContact(ctx, e.RealtorID)
	if err != nil {
		return fmt.Errorf("resolve realtor contact: %w", err)
	}

	subject := "You have been assigned a new lead"
	body := fmt.Sprintf(
		"Hi %s,\n\nA new buyer lead has been assigned to you (match score %d).\n%s\n\nLog in to view the lead details.\n",
		name, e.Score, e.Reason,
	)

	if err := m.sender.Send(ctx, email, subject, body); err != nil {
		return fmt.Errorf("send assignment email: %w", err)
	}

	m.log.Info("assignment notification sent", "leadId", e.LeadID, "realtorId", e.RealtorID)
	return nil
}
