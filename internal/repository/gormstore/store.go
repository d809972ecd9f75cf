// Package gormstore implements the entity store on GORM for the sqlite and
// mysql drivers.
package gormstore

import (
	"gorm.io/gorm"

	"github.com/spec-kit/ticket-tracker/internal/repository"
)

// NewStore wires every GORM repository over one handle.
func NewStore(db *gorm.DB) repository.Store {
	return repository.Store{
		Tickets:        NewTicketRepository(db),
		ProductTickets: NewProductTicketRepository(db),
		UserTickets:    NewAppUserTicketRepository(db),
		Catalog:        NewCatalogRepository(db),
		Views:          NewTicketViewRepository(db),
	}
}
