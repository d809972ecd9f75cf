package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	"github.com/spec-kit/ticket-tracker/pkg/util/errorutil"
)

// CatalogService maintains the products and firms tickets are linked to.
type CatalogService struct {
	catalog repository.CatalogRepository
	logger  *zap.Logger
	events  publisher
}

// CatalogDependencies bundles collaborators for the catalog service.
type CatalogDependencies struct {
	CatalogRepo repository.CatalogRepository
	Dispatcher  events.Dispatcher
	Clock       Clock
	Logger      *zap.Logger
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	logger := orNop(deps.Logger)
	return &CatalogService{
		catalog: deps.CatalogRepo,
		logger:  logger,
		events:  publisher{dispatcher: deps.Dispatcher, clock: orSystemClock(deps.Clock), logger: logger},
	}
}

// CreateProduct adds a product to the catalog.
func (s *CatalogService) CreateProduct(ctx context.Context, name string) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errorutil.NewValidationError("product name is required", nil)
	}
	product := &domain.Product{Name: name}
	if err := s.catalog.CreateProduct(ctx, product); err != nil {
		return nil, storeError(err, "product", nil)
	}
	return product, nil
}

// CreateFirm adds a firm to the catalog.
func (s *CatalogService) CreateFirm(ctx context.Context, name string) (*domain.Firm, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errorutil.NewValidationError("firm name is required", nil)
	}
	firm := &domain.Firm{Name: name}
	if err := s.catalog.CreateFirm(ctx, firm); err != nil {
		return nil, storeError(err, "firm", nil)
	}
	return firm, nil
}

// LinkFirmProduct records that the firm makes the product. Views of tickets
// already linked to the product may change, so a catalog event is published.
func (s *CatalogService) LinkFirmProduct(ctx context.Context, firmID, productID int64) (*domain.FirmProduct, error) {
	link := &domain.FirmProduct{FirmID: firmID, ProductID: productID}
	if err := s.catalog.CreateFirmProduct(ctx, link); err != nil {
		return nil, storeError(err, "firm product", nil)
	}
	s.logger.Info("firm product linked",
		zap.Int64("firm_id", firmID),
		zap.Int64("product_id", productID),
	)
	s.events.publish(ctx, events.Event{
		Type:    events.EventCatalogChanged,
		Payload: events.CatalogChangedPayload{Entity: "firm_product", ID: link.ID},
	})
	return link, nil
}

// GetProduct fetches a product by identity.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, storeError(err, "product", map[string]any{"id": id})
	}
	return product, nil
}

// ListProducts lists the catalog ordered by id.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, storeError(err, "product", nil)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}
