package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	"github.com/spec-kit/ticket-tracker/pkg/util/errorutil"
)

// AssociationService links tickets to products and users. It performs no
// existence checks and no de-duplication; foreign keys in the store reject
// dangling references.
type AssociationService struct {
	productLinks repository.ProductTicketRepository
	userLinks    repository.AppUserTicketRepository
	logger       *zap.Logger
	events       publisher
}

// AssociationDependencies bundles collaborators for the association service.
type AssociationDependencies struct {
	ProductTicketRepo repository.ProductTicketRepository
	UserTicketRepo    repository.AppUserTicketRepository
	Dispatcher        events.Dispatcher
	Clock             Clock
	Logger            *zap.Logger
}

// NewAssociationService constructs the service.
func NewAssociationService(deps AssociationDependencies) *AssociationService {
	logger := orNop(deps.Logger)
	return &AssociationService{
		productLinks: deps.ProductTicketRepo,
		userLinks:    deps.UserTicketRepo,
		logger:       logger,
		events:       publisher{dispatcher: deps.Dispatcher, clock: orSystemClock(deps.Clock), logger: logger},
	}
}

// LinkProductToTicket records that the ticket concerns the product.
func (s *AssociationService) LinkProductToTicket(ctx context.Context, ticketID, productID int64) (*domain.ProductTicket, error) {
	link := &domain.ProductTicket{TicketID: ticketID, ProductID: productID}
	if err := s.productLinks.Create(ctx, link); err != nil {
		return nil, storeError(err, "product link", nil)
	}
	s.logger.Debug("product linked",
		zap.Int64("ticket_id", ticketID),
		zap.Int64("product_id", productID),
		zap.Int64("link_id", link.ID),
	)
	s.events.publish(ctx, events.Event{
		Type:     events.EventTicketProductLinked,
		TicketID: ticketID,
		Payload:  events.TicketProductLinkedPayload{ProductID: productID},
	})
	return link, nil
}

// LinkUserToTicket records that the user may see the ticket.
func (s *AssociationService) LinkUserToTicket(ctx context.Context, appUserID string, ticketID int64) (*domain.AppUserTicket, error) {
	if appUserID == "" {
		return nil, errorutil.NewValidationError("user id is required", nil)
	}
	link := &domain.AppUserTicket{AppUserID: appUserID, TicketID: ticketID}
	if err := s.userLinks.Create(ctx, link); err != nil {
		return nil, storeError(err, "user link", nil)
	}
	s.logger.Debug("user linked",
		zap.Int64("ticket_id", ticketID),
		zap.String("app_user_id", appUserID),
		zap.Int64("link_id", link.ID),
	)
	s.events.publish(ctx, events.Event{
		Type:     events.EventTicketUserLinked,
		TicketID: ticketID,
		Payload:  events.TicketUserLinkedPayload{AppUserID: appUserID},
	})
	return link, nil
}

// ProductLinks lists the ticket's product links in link order, duplicates
// included.
func (s *AssociationService) ProductLinks(ctx context.Context, ticketID int64) ([]domain.ProductTicket, error) {
	links, err := s.productLinks.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, storeError(err, "product link", nil)
	}
	if links == nil {
		links = []domain.ProductTicket{}
	}
	return links, nil
}

// IsLinked reports whether the user is linked to the ticket as its author or
// a watcher.
func (s *AssociationService) IsLinked(ctx context.Context, appUserID string, ticketID int64) (bool, error) {
	linked, err := s.userLinks.Exists(ctx, appUserID, ticketID)
	if err != nil {
		return false, storeError(err, "user link", nil)
	}
	return linked, nil
}
