package events

import (
	"time"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketUpdated       EventType = "ticket_updated"
	EventTicketDeleted       EventType = "ticket_deleted"
	EventTicketProductLinked EventType = "ticket_product_linked"
	EventTicketUserLinked    EventType = "ticket_user_linked"
	EventCatalogChanged      EventType = "catalog_changed"
)

// ViewEventTypes lists the events after which denormalized ticket views may
// have changed.
var ViewEventTypes = []EventType{
	EventTicketCreated,
	EventTicketUpdated,
	EventTicketDeleted,
	EventTicketProductLinked,
	EventTicketUserLinked,
	EventCatalogChanged,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title     string `json:"title"`
	CreatedBy string `json:"created_by"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	Status   domain.TicketStatus `json:"status"`
	Answered bool                `json:"answered"`
}

// TicketProductLinkedPayload payload.
type TicketProductLinkedPayload struct {
	ProductID int64 `json:"product_id"`
}

// TicketUserLinkedPayload payload.
type TicketUserLinkedPayload struct {
	AppUserID string `json:"app_user_id"`
}

// CatalogChangedPayload payload.
type CatalogChangedPayload struct {
	Entity string `json:"entity"`
	ID     int64  `json:"id"`
}
