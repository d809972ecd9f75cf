package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. The numeric values are
// persisted and exposed over the API, so they must never be renumbered.
type TicketStatus int16

const (
	TicketStatusNew        TicketStatus = 1
	TicketStatusInProgress TicketStatus = 2
	TicketStatusAnswered   TicketStatus = 3
	TicketStatusClosed     TicketStatus = 4
)

var ticketStatusNames = map[TicketStatus]string{
	TicketStatusNew:        "new",
	TicketStatusInProgress: "in_progress",
	TicketStatusAnswered:   "answered",
	TicketStatusClosed:     "closed",
}

// Valid reports whether s belongs to the closed set of status codes.
func (s TicketStatus) Valid() bool {
	_, ok := ticketStatusNames[s]
	return ok
}

func (s TicketStatus) String() string {
	if name, ok := ticketStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID          int64
	Title       string
	Description *string
	// NewProduct names a product that is not in the catalog yet.
	NewProduct *string
	Status     TicketStatus
	Answer     *string
	CreatedBy  string
	Created    time.Time
	Updated    *time.Time
}

// TicketStatuses lists every valid status code in ascending order.
func TicketStatuses() []TicketStatus {
	return []TicketStatus{
		TicketStatusNew,
		TicketStatusInProgress,
		TicketStatusAnswered,
		TicketStatusClosed,
	}
}
