package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

const ticketColumns = `id, title, description, new_product, status, answer, created_by, created, updated`

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the Postgres ticket repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, new_product, status, answer, created_by, created, updated)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.NewProduct,
		int16(ticket.Status),
		ticket.Answer,
		ticket.CreatedBy,
		ticket.Created,
		ticket.Updated,
	).Scan(&ticket.ID)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	return scanTicket(r.pool.QueryRow(ctx, query, id))
}

func (r *ticketRepository) GetByTitle(ctx context.Context, title string) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE title=$1 ORDER BY id LIMIT 1`
	return scanTicket(r.pool.QueryRow(ctx, query, title))
}

func (r *ticketRepository) UpdateAnswerAndStatus(ctx context.Context, id int64, answer *string, status domain.TicketStatus, updated time.Time) (*domain.Ticket, error) {
	const query = `
        UPDATE tickets SET answer=$1, status=$2, updated=$3
        WHERE id=$4
        RETURNING ` + ticketColumns
	return scanTicket(r.pool.QueryRow(ctx, query, answer, int16(status), updated, id))
}

func (r *ticketRepository) Replace(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	const query = `
        UPDATE tickets SET title=$1, description=$2, new_product=$3, status=$4, answer=$5,
            created_by=$6, updated=$7
        WHERE id=$8
        RETURNING ` + ticketColumns
	return scanTicket(r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.NewProduct,
		int16(ticket.Status),
		ticket.Answer,
		ticket.CreatedBy,
		ticket.Updated,
		ticket.ID,
	))
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `DELETE FROM tickets WHERE id=$1 RETURNING ` + ticketColumns
	return scanTicket(r.pool.QueryRow(ctx, query, id))
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		ticket domain.Ticket
		status int16
	)
	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.NewProduct,
		&status,
		&ticket.Answer,
		&ticket.CreatedBy,
		&ticket.Created,
		&ticket.Updated,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	ticket.Status = domain.TicketStatus(status)
	return &ticket, nil
}
