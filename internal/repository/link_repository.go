package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

type productTicketRepository struct {
	pool *pgxpool.Pool
}

// NewProductTicketRepository builds the Postgres ticket↔product link repository.
func NewProductTicketRepository(pool *pgxpool.Pool) ProductTicketRepository {
	return &productTicketRepository{pool: pool}
}

func (r *productTicketRepository) Create(ctx context.Context, link *domain.ProductTicket) error {
	const query = `
        INSERT INTO product_tickets (ticket_id, product_id)
        VALUES ($1,$2)
        RETURNING id`
	return r.pool.QueryRow(ctx, query, link.TicketID, link.ProductID).Scan(&link.ID)
}

func (r *productTicketRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.ProductTicket, error) {
	const query = `
        SELECT id, ticket_id, product_id
        FROM product_tickets WHERE ticket_id=$1 ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.ProductTicket{}
	for rows.Next() {
		var link domain.ProductTicket
		if err := rows.Scan(&link.ID, &link.TicketID, &link.ProductID); err != nil {
			return nil, err
		}
		result = append(result, link)
	}
	return result, rows.Err()
}

type appUserTicketRepository struct {
	pool *pgxpool.Pool
}

// NewAppUserTicketRepository builds the Postgres ticket↔user link repository.
func NewAppUserTicketRepository(pool *pgxpool.Pool) AppUserTicketRepository {
	return &appUserTicketRepository{pool: pool}
}

func (r *appUserTicketRepository) Create(ctx context.Context, link *domain.AppUserTicket) error {
	const query = `
        INSERT INTO app_user_tickets (app_user_id, ticket_id)
        VALUES ($1,$2)
        RETURNING id`
	return r.pool.QueryRow(ctx, query, link.AppUserID, link.TicketID).Scan(&link.ID)
}

func (r *appUserTicketRepository) ListTicketIDs(ctx context.Context, appUserID string) ([]int64, error) {
	const query = `
        SELECT DISTINCT ticket_id
        FROM app_user_tickets WHERE app_user_id=$1 ORDER BY ticket_id ASC`
	rows, err := r.pool.Query(ctx, query, appUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *appUserTicketRepository) Exists(ctx context.Context, appUserID string, ticketID int64) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM app_user_tickets WHERE app_user_id=$1 AND ticket_id=$2
        )`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, appUserID, ticketID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
