package domain

// Product is a catalogued product tickets can refer to.
type Product struct {
	ID   int64
	Name string
}

// Firm owns products.
type Firm struct {
	ID   int64
	Name string
}

// FirmProduct asserts that a product belongs to a firm.
type FirmProduct struct {
	ID        int64
	FirmID    int64
	ProductID int64
}

// ProductTicket asserts that a ticket concerns a product.
type ProductTicket struct {
	ID        int64
	TicketID  int64
	ProductID int64
}

// AppUserTicket associates an externally managed user with a ticket.
type AppUserTicket struct {
	ID        int64
	AppUserID string
	TicketID  int64
}
