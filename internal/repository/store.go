package repository

import "github.com/jackc/pgx/v5/pgxpool"

// NewPostgresStore wires every Postgres repository over one pool.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return Store{
		Tickets:        NewTicketRepository(pool),
		ProductTickets: NewProductTicketRepository(pool),
		UserTickets:    NewAppUserTicketRepository(pool),
		Catalog:        NewCatalogRepository(pool),
		Views:          NewTicketViewRepository(pool),
	}
}
