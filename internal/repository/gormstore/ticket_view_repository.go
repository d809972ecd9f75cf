package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/repository"
)

// Correlated scalar subqueries keep the query portable across SQLite and
// MySQL, which lack LATERAL. The firm subquery resolves through the same
// first product link as product_name.
const ticketViewQuery = `
SELECT t.id, t.title, t.description, t.new_product, t.status, t.answer,
       t.created_by, t.created, t.updated,
       (SELECT p.name
          FROM product_tickets pt
          JOIN products p ON p.id = pt.product_id
         WHERE pt.ticket_id = t.id
         ORDER BY pt.id ASC
         LIMIT 1) AS product_name,
       (SELECT f.name
          FROM firm_products fp
          JOIN firms f ON f.id = fp.firm_id
         WHERE fp.product_id = (
                SELECT p.id
                  FROM product_tickets pt
                  JOIN products p ON p.id = pt.product_id
                 WHERE pt.ticket_id = t.id
                 ORDER BY pt.id ASC
                 LIMIT 1)
         ORDER BY fp.id ASC
         LIMIT 1) AS firm_name
FROM tickets t`

type ticketViewRow struct {
	ID          int64
	Title       string
	Description *string
	NewProduct  *string
	Status      int16
	Answer      *string
	CreatedBy   string
	Created     time.Time
	Updated     *time.Time
	ProductName *string
	FirmName    *string
}

type ticketViewRepository struct {
	db *gorm.DB
}

// NewTicketViewRepository returns a GORM-backed view repository.
func NewTicketViewRepository(db *gorm.DB) repository.TicketViewRepository {
	return &ticketViewRepository{db: db}
}

func (r *ticketViewRepository) ListViews(ctx context.Context, filter repository.ViewFilter) ([]domain.TicketView, error) {
	query := ticketViewQuery
	args := []any{}
	if filter.TicketIDs != nil {
		if len(filter.TicketIDs) == 0 {
			return []domain.TicketView{}, nil
		}
		query += ` WHERE t.id IN ?`
		args = append(args, filter.TicketIDs)
	}
	query += ` ORDER BY t.id ASC`

	var rows []ticketViewRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]domain.TicketView, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.TicketView{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
			NewProduct:  row.NewProduct,
			Status:      domain.TicketStatus(row.Status),
			Answer:      row.Answer,
			CreatedBy:   row.CreatedBy,
			Created:     row.Created,
			Updated:     row.Updated,
			ProductName: row.ProductName,
			FirmName:    row.FirmName,
		})
	}
	return result, nil
}
