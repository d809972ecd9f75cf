package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/repository"
)

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository returns a GORM-backed ticket repository.
func NewTicketRepository(db *gorm.DB) repository.TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	model := toTicketModel(ticket)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	ticket.ID = model.ID
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	return findTicket(r.db.WithContext(ctx), id)
}

func (r *ticketRepository) GetByTitle(ctx context.Context, title string) (*domain.Ticket, error) {
	var model ticketModel
	err := r.db.WithContext(ctx).Where("title = ?", title).Order("id ASC").First(&model).Error
	if err != nil {
		return nil, translate(err)
	}
	return model.toDomain(), nil
}

func (r *ticketRepository) UpdateAnswerAndStatus(ctx context.Context, id int64, answer *string, status domain.TicketStatus, updated time.Time) (*domain.Ticket, error) {
	var result *domain.Ticket
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findTicket(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&ticketModel{}).Where("id = ?", id).Updates(map[string]any{
			"answer":  answer,
			"status":  int16(status),
			"updated": updated,
		}).Error; err != nil {
			return err
		}
		ticket, err := findTicket(tx, id)
		if err != nil {
			return err
		}
		result = ticket
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ticketRepository) Replace(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	var result *domain.Ticket
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findTicket(tx, ticket.ID); err != nil {
			return err
		}
		if err := tx.Model(&ticketModel{}).Where("id = ?", ticket.ID).Updates(map[string]any{
			"title":       ticket.Title,
			"description": ticket.Description,
			"new_product": ticket.NewProduct,
			"status":      int16(ticket.Status),
			"answer":      ticket.Answer,
			"created_by":  ticket.CreatedBy,
			"updated":     ticket.Updated,
		}).Error; err != nil {
			return err
		}
		stored, err := findTicket(tx, ticket.ID)
		if err != nil {
			return err
		}
		result = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) (*domain.Ticket, error) {
	var removed *domain.Ticket
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticket, err := findTicket(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&ticketModel{}, id).Error; err != nil {
			return err
		}
		removed = ticket
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func findTicket(db *gorm.DB, id int64) (*domain.Ticket, error) {
	var model ticketModel
	if err := db.First(&model, id).Error; err != nil {
		return nil, translate(err)
	}
	return model.toDomain(), nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}
