package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/api/dto"
	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/service"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util/errorutil"
)

// TicketsHandler manages ticket lifecycle and view endpoints.
type TicketsHandler struct {
	tickets      *service.TicketService
	associations *service.AssociationService
	queries      *service.QueryService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, associations *service.AssociationService, queries *service.QueryService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, associations: associations, queries: queries}
}

// CreateTicket POST /tickets. The caller becomes the author and is linked to
// the new ticket.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" {
		return apperrors.NewValidationError("title required", nil)
	}

	ticket, err := h.tickets.Create(c.UserContext(), &domain.Ticket{
		Title:       req.Title,
		Description: req.Description,
		NewProduct:  req.NewProduct,
		CreatedBy:   principal.UserID,
	})
	if err != nil {
		return err
	}
	if _, err := h.associations.LinkUserToTicket(c.UserContext(), principal.UserID, ticket.ID); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	views, err := h.queries.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": viewResponses(views)})
}

// ListMyTickets GET /tickets/mine.
func (h *TicketsHandler) ListMyTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	views, err := h.queries.ListForUser(c.UserContext(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": viewResponses(views)})
}

// ListUserTickets GET /users/:userId/tickets.
func (h *TicketsHandler) ListUserTickets(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return apperrors.NewValidationError("user id required", nil)
	}
	views, err := h.queries.ListForUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": viewResponses(views)})
}

// GetTicket GET /tickets/:id. End users see the tickets they are linked to,
// the same set GET /tickets/mine lists.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	ticket, err := h.tickets.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !principal.IsStaff() {
		linked, err := h.associations.IsLinked(c.UserContext(), principal.UserID, id)
		if err != nil {
			return err
		}
		if !linked {
			return apperrors.NewForbidden("ticket is not linked to the caller")
		}
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// AnswerTicket PUT /tickets/:id/answer.
func (h *TicketsHandler) AnswerTicket(c *fiber.Ctx) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	var req dto.AnswerTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.UpdateAnswerAndStatus(c.UserContext(), id, service.TicketAnswerInput{
		Answer: req.Answer,
		Status: req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateStatus PUT /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	ticket.Status = req.Status
	ticket, err = h.tickets.ReplaceStatus(c.UserContext(), ticket)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// DeleteTicket DELETE /tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	removed, err := h.tickets.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(removed)})
}

// LinkProduct POST /tickets/:id/products.
func (h *TicketsHandler) LinkProduct(c *fiber.Ctx) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	var req dto.LinkProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ProductID <= 0 {
		return apperrors.NewValidationError("product_id required", nil)
	}
	link, err := h.associations.LinkProductToTicket(c.UserContext(), id, req.ProductID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": productLinkResponse(link)})
}

// ListProductLinks GET /tickets/:id/products.
func (h *TicketsHandler) ListProductLinks(c *fiber.Ctx) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	links, err := h.associations.ProductLinks(c.UserContext(), id)
	if err != nil {
		return err
	}
	items := make([]dto.ProductLinkResponse, 0, len(links))
	for i := range links {
		items = append(items, productLinkResponse(&links[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// LinkUser POST /tickets/:id/users.
func (h *TicketsHandler) LinkUser(c *fiber.Ctx) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	var req dto.LinkUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	link, err := h.associations.LinkUserToTicket(c.UserContext(), req.UserID, id)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.UserLinkResponse{
		ID:       link.ID,
		UserID:   link.AppUserID,
		TicketID: link.TicketID,
	}})
}

func ticketID(c *fiber.Ctx) (int64, error) {
	return parseID(c, "id")
}

func parseID(c *fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{param: c.Params(param)})
	}
	return id, nil
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		NewProduct:  ticket.NewProduct,
		Status:      ticket.Status,
		StatusName:  ticket.Status.String(),
		Answer:      ticket.Answer,
		CreatedBy:   ticket.CreatedBy,
		Created:     ticket.Created,
		Updated:     ticket.Updated,
	}
}

func viewResponses(views []domain.TicketView) []dto.TicketViewResponse {
	items := make([]dto.TicketViewResponse, 0, len(views))
	for _, v := range views {
		items = append(items, dto.TicketViewResponse{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			NewProduct:  v.NewProduct,
			Status:      v.Status,
			StatusName:  v.Status.String(),
			Answer:      v.Answer,
			CreatedBy:   v.CreatedBy,
			Created:     v.Created,
			Updated:     v.Updated,
			ProductName: v.ProductName,
			FirmName:    v.FirmName,
		})
	}
	return items
}

func productLinkResponse(link *domain.ProductTicket) dto.ProductLinkResponse {
	return dto.ProductLinkResponse{ID: link.ID, TicketID: link.TicketID, ProductID: link.ProductID}
}
