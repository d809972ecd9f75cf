package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/repository"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository returns a GORM-backed product/firm repository.
func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	model := productModel{Name: product.Name}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	product.ID = model.ID
	return nil
}

func (r *catalogRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var model productModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translate(err)
	}
	return &domain.Product{ID: model.ID, Name: model.Name}, nil
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var models []productModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Product, 0, len(models))
	for _, m := range models {
		result = append(result, domain.Product{ID: m.ID, Name: m.Name})
	}
	return result, nil
}

func (r *catalogRepository) CreateFirm(ctx context.Context, firm *domain.Firm) error {
	model := firmModel{Name: firm.Name}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	firm.ID = model.ID
	return nil
}

func (r *catalogRepository) CreateFirmProduct(ctx context.Context, link *domain.FirmProduct) error {
	model := firmProductModel{FirmID: link.FirmID, ProductID: link.ProductID}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	link.ID = model.ID
	return nil
}
