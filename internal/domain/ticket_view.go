package domain

import "time"

// TicketView is a read-only ticket joined with its first product link and
// that product's first firm link. Names are nil when the chain is incomplete.
type TicketView struct {
	ID          int64
	Title       string
	Description *string
	NewProduct  *string
	Status      TicketStatus
	Answer      *string
	CreatedBy   string
	Created     time.Time
	Updated     *time.Time
	ProductName *string
	FirmName    *string
}
