package repository

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// ErrNotFound is returned when an identity lookup matches no row.
var ErrNotFound = errors.New("record not found")

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	GetByTitle(ctx context.Context, title string) (*domain.Ticket, error)
	// UpdateAnswerAndStatus overwrites answer, status and updated only and
	// returns the resulting row.
	UpdateAnswerAndStatus(ctx context.Context, id int64, answer *string, status domain.TicketStatus, updated time.Time) (*domain.Ticket, error)
	// Replace persists every mutable column of ticket and returns the stored
	// row; created is never rewritten.
	Replace(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	// Delete removes the ticket and returns the removed row.
	Delete(ctx context.Context, id int64) (*domain.Ticket, error)
}

// ProductTicketRepository stores ticket↔product links.
type ProductTicketRepository interface {
	Create(ctx context.Context, link *domain.ProductTicket) error
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.ProductTicket, error)
}

// AppUserTicketRepository stores ticket↔user links.
type AppUserTicketRepository interface {
	Create(ctx context.Context, link *domain.AppUserTicket) error
	// ListTicketIDs returns the distinct ticket ids linked to the user, ascending.
	ListTicketIDs(ctx context.Context, appUserID string) ([]int64, error)
	// Exists reports whether the user is linked to the ticket.
	Exists(ctx context.Context, appUserID string, ticketID int64) (bool, error)
}

// CatalogRepository stores products, firms and their links.
type CatalogRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateFirm(ctx context.Context, firm *domain.Firm) error
	CreateFirmProduct(ctx context.Context, link *domain.FirmProduct) error
}

// ViewFilter restricts a view query. A nil TicketIDs means every ticket.
type ViewFilter struct {
	TicketIDs []int64
}

// TicketViewRepository builds denormalized ticket views. Each ticket yields
// exactly one view: the product is taken from the lowest-id product link whose
// product exists, and the firm from that product's lowest-id firm link whose
// firm exists. Views are ordered by ticket id.
type TicketViewRepository interface {
	ListViews(ctx context.Context, filter ViewFilter) ([]domain.TicketView, error)
}

// Store bundles the repositories of one backend.
type Store struct {
	Tickets        TicketRepository
	ProductTickets ProductTicketRepository
	UserTickets    AppUserTicketRepository
	Catalog        CatalogRepository
	Views          TicketViewRepository
}
