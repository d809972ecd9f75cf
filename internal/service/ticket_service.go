package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	"github.com/spec-kit/ticket-tracker/pkg/util/errorutil"
)

// TicketService owns the ticket lifecycle.
type TicketService struct {
	tickets repository.TicketRepository
	clock   Clock
	logger  *zap.Logger
	events  publisher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	Clock      Clock
	Logger     *zap.Logger
}

// TicketAnswerInput carries the fields a staff answer may change.
type TicketAnswerInput struct {
	Answer *string
	Status domain.TicketStatus
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	clock := orSystemClock(deps.Clock)
	logger := orNop(deps.Logger)
	return &TicketService{
		tickets: deps.TicketRepo,
		clock:   clock,
		logger:  logger,
		events:  publisher{dispatcher: deps.Dispatcher, clock: clock, logger: logger},
	}
}

// Create persists a new ticket. The status is always forced to new and
// Updated stays empty until the first mutation.
func (s *TicketService) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	if ticket == nil {
		return nil, errorutil.NewValidationError("ticket is required", nil)
	}
	record := *ticket
	record.ID = 0
	record.Status = domain.TicketStatusNew
	record.Updated = nil
	if record.Created.IsZero() {
		record.Created = s.clock.Now()
	}

	if err := s.tickets.Create(ctx, &record); err != nil {
		return nil, storeError(err, "ticket", nil)
	}
	s.logger.Info("ticket created", zap.Int64("ticket_id", record.ID), zap.String("created_by", record.CreatedBy))
	s.events.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: record.ID,
		Payload: events.TicketCreatedPayload{
			Title:     record.Title,
			CreatedBy: record.CreatedBy,
		},
	})
	return &record, nil
}

// Delete removes a ticket and returns what was removed.
func (s *TicketService) Delete(ctx context.Context, id int64) (*domain.Ticket, error) {
	removed, err := s.tickets.Delete(ctx, id)
	if err != nil {
		return nil, storeError(err, "ticket", map[string]any{"id": id})
	}
	s.logger.Info("ticket deleted", zap.Int64("ticket_id", id))
	s.events.publish(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: id,
	})
	return removed, nil
}

// GetByID fetches a ticket by identity.
func (s *TicketService) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "ticket", map[string]any{"id": id})
	}
	return ticket, nil
}

// GetByTitle returns the oldest ticket carrying exactly this title.
func (s *TicketService) GetByTitle(ctx context.Context, title string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByTitle(ctx, title)
	if err != nil {
		return nil, storeError(err, "ticket", map[string]any{"title": title})
	}
	return ticket, nil
}

// UpdateAnswerAndStatus overwrites only the answer and status and refreshes
// Updated. Title, description and creation data are left as stored.
func (s *TicketService) UpdateAnswerAndStatus(ctx context.Context, id int64, input TicketAnswerInput) (*domain.Ticket, error) {
	if !input.Status.Valid() {
		return nil, invalidStatus(input.Status)
	}
	ticket, err := s.tickets.UpdateAnswerAndStatus(ctx, id, input.Answer, input.Status, s.clock.Now())
	if err != nil {
		return nil, storeError(err, "ticket", map[string]any{"id": id})
	}
	s.events.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: id,
		Payload: events.TicketUpdatedPayload{
			Status:   ticket.Status,
			Answered: ticket.Answer != nil,
		},
	})
	return ticket, nil
}

// ReplaceStatus persists a caller-modified ticket as a whole after refreshing
// Updated and returns the stored row. Created is never rewritten. Concurrent
// replacements of the same ticket are last-write-wins.
func (s *TicketService) ReplaceStatus(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	if ticket == nil {
		return nil, errorutil.NewValidationError("ticket is required", nil)
	}
	if !ticket.Status.Valid() {
		return nil, invalidStatus(ticket.Status)
	}
	record := *ticket
	now := s.clock.Now()
	record.Updated = &now

	stored, err := s.tickets.Replace(ctx, &record)
	if err != nil {
		return nil, storeError(err, "ticket", map[string]any{"id": record.ID})
	}
	s.events.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: stored.ID,
		Payload: events.TicketUpdatedPayload{
			Status:   stored.Status,
			Answered: stored.Answer != nil,
		},
	})
	return stored, nil
}

func invalidStatus(status domain.TicketStatus) error {
	return errorutil.NewValidationError("invalid ticket status", map[string]any{
		"status":  int16(status),
		"allowed": domain.TicketStatuses(),
	})
}
