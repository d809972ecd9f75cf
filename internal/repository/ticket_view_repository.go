package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// The product lateral picks the lowest-id link whose product exists; the firm
// lateral only looks at firm links of that product.
const ticketViewBase = `
        SELECT t.id, t.title, t.description, t.new_product, t.status, t.answer,
               t.created_by, t.created, t.updated, pl.name, fl.name
        FROM tickets t
        LEFT JOIN LATERAL (
            SELECT p.id, p.name
            FROM product_tickets pt
            JOIN products p ON p.id = pt.product_id
            WHERE pt.ticket_id = t.id
            ORDER BY pt.id ASC
            LIMIT 1
        ) pl ON TRUE
        LEFT JOIN LATERAL (
            SELECT f.name
            FROM firm_products fp
            JOIN firms f ON f.id = fp.firm_id
            WHERE fp.product_id = pl.id
            ORDER BY fp.id ASC
            LIMIT 1
        ) fl ON TRUE`

type ticketViewRepository struct {
	pool *pgxpool.Pool
}

// NewTicketViewRepository builds the Postgres view repository.
func NewTicketViewRepository(pool *pgxpool.Pool) TicketViewRepository {
	return &ticketViewRepository{pool: pool}
}

func (r *ticketViewRepository) ListViews(ctx context.Context, filter ViewFilter) ([]domain.TicketView, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.TicketIDs != nil {
		if len(filter.TicketIDs) == 0 {
			return []domain.TicketView{}, nil
		}
		args = append(args, filter.TicketIDs)
		clauses = append(clauses, fmt.Sprintf("t.id = ANY($%d)", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY t.id ASC`, ticketViewBase, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTicketViews(rows)
}

func scanTicketViews(rows pgx.Rows) ([]domain.TicketView, error) {
	result := []domain.TicketView{}
	for rows.Next() {
		var (
			view   domain.TicketView
			status int16
		)
		if err := rows.Scan(
			&view.ID,
			&view.Title,
			&view.Description,
			&view.NewProduct,
			&status,
			&view.Answer,
			&view.CreatedBy,
			&view.Created,
			&view.Updated,
			&view.ProductName,
			&view.FirmName,
		); err != nil {
			return nil, err
		}
		view.Status = domain.TicketStatus(status)
		result = append(result, view)
	}
	return result, rows.Err()
}
