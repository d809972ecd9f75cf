package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/api/dto"
	"github.com/spec-kit/ticket-tracker/internal/service"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util/errorutil"
)

// CatalogHandler manages product and firm endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// CreateProduct POST /products.
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req dto.CreateNamedRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	product, err := h.catalog.CreateProduct(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ProductResponse{ID: product.ID, Name: product.Name}})
}

// ListProducts GET /products.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.catalog.ListProducts(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, dto.ProductResponse{ID: p.ID, Name: p.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateFirm POST /firms.
func (h *CatalogHandler) CreateFirm(c *fiber.Ctx) error {
	var req dto.CreateNamedRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	firm, err := h.catalog.CreateFirm(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FirmResponse{ID: firm.ID, Name: firm.Name}})
}

// LinkFirmProduct POST /firms/:id/products.
func (h *CatalogHandler) LinkFirmProduct(c *fiber.Ctx) error {
	firmID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.LinkFirmProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ProductID <= 0 {
		return apperrors.NewValidationError("product_id required", nil)
	}
	link, err := h.catalog.LinkFirmProduct(c.UserContext(), firmID, req.ProductID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FirmProductResponse{
		ID:        link.ID,
		FirmID:    link.FirmID,
		ProductID: link.ProductID,
	}})
}
