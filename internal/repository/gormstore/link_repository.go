package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/repository"
)

type productTicketRepository struct {
	db *gorm.DB
}

// NewProductTicketRepository returns a GORM-backed ticket↔product link repository.
func NewProductTicketRepository(db *gorm.DB) repository.ProductTicketRepository {
	return &productTicketRepository{db: db}
}

func (r *productTicketRepository) Create(ctx context.Context, link *domain.ProductTicket) error {
	model := productTicketModel{TicketID: link.TicketID, ProductID: link.ProductID}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	link.ID = model.ID
	return nil
}

func (r *productTicketRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.ProductTicket, error) {
	var models []productTicketModel
	if err := r.db.WithContext(ctx).Where("ticket_id = ?", ticketID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]domain.ProductTicket, 0, len(models))
	for _, m := range models {
		result = append(result, domain.ProductTicket{ID: m.ID, TicketID: m.TicketID, ProductID: m.ProductID})
	}
	return result, nil
}

type appUserTicketRepository struct {
	db *gorm.DB
}

// NewAppUserTicketRepository returns a GORM-backed ticket↔user link repository.
func NewAppUserTicketRepository(db *gorm.DB) repository.AppUserTicketRepository {
	return &appUserTicketRepository{db: db}
}

func (r *appUserTicketRepository) Create(ctx context.Context, link *domain.AppUserTicket) error {
	model := appUserTicketModel{AppUserID: link.AppUserID, TicketID: link.TicketID}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	link.ID = model.ID
	return nil
}

func (r *appUserTicketRepository) ListTicketIDs(ctx context.Context, appUserID string) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).
		Model(&appUserTicketModel{}).
		Distinct("ticket_id").
		Where("app_user_id = ?", appUserID).
		Order("ticket_id ASC").
		Pluck("ticket_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *appUserTicketRepository) Exists(ctx context.Context, appUserID string, ticketID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&appUserTicketModel{}).
		Where("app_user_id = ? AND ticket_id = ?", appUserID, ticketID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
