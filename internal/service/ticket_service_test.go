package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/service"
	"github.com/spec-kit/ticket-tracker/pkg/util/errorutil"
)

func TestTicketService_CreateForcesNewStatus(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	for _, status := range []domain.TicketStatus{0, domain.TicketStatusAnswered, domain.TicketStatusClosed, 42} {
		created, err := s.tickets.Create(ctx, &domain.Ticket{
			Title:     "Status forced",
			Status:    status,
			CreatedBy: "u-1",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusNew, created.Status)
		assert.Nil(t, created.Updated)
		assert.True(t, s.clock.Now().Equal(created.Created))
	}
}

func TestTicketService_CreateRoundTrip(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	created := time.Date(2024, 2, 14, 8, 30, 0, 0, time.UTC)

	input := &domain.Ticket{
		ID:          99,
		Title:       "Invoice export",
		Description: strPtr("CSV is empty"),
		NewProduct:  strPtr("Ledger X"),
		Status:      domain.TicketStatusClosed,
		Answer:      strPtr("preset"),
		CreatedBy:   "u-7",
		Created:     created,
	}
	saved, err := s.tickets.Create(ctx, input)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, domain.TicketStatusClosed, input.Status, "caller record is not mutated")

	found, err := s.tickets.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Invoice export", found.Title)
	assert.Equal(t, "CSV is empty", *found.Description)
	assert.Equal(t, "Ledger X", *found.NewProduct)
	assert.Equal(t, "preset", *found.Answer)
	assert.Equal(t, "u-7", found.CreatedBy)
	assert.Equal(t, domain.TicketStatusNew, found.Status)
	assert.True(t, created.Equal(found.Created))
	assert.Nil(t, found.Updated)

	assert.Equal(t, []events.EventType{events.EventTicketCreated}, s.dispatcher.types())
}

func TestTicketService_GetMissing(t *testing.T) {
	s := newServices(t)

	_, err := s.tickets.GetByID(context.Background(), 404)
	assert.True(t, errorutil.IsNotFound(err))

	_, err = s.tickets.GetByTitle(context.Background(), "nothing")
	assert.True(t, errorutil.IsNotFound(err))
}

func TestTicketService_GetByTitleReturnsOldest(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	first, err := s.tickets.Create(ctx, &domain.Ticket{Title: "Duplicate", CreatedBy: "u-1"})
	require.NoError(t, err)
	_, err = s.tickets.Create(ctx, &domain.Ticket{Title: "Duplicate", CreatedBy: "u-2"})
	require.NoError(t, err)

	found, err := s.tickets.GetByTitle(ctx, "Duplicate")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
}

func TestTicketService_DeleteMissingLeavesStoreUnchanged(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	kept, err := s.tickets.Create(ctx, &domain.Ticket{Title: "Keep me", CreatedBy: "u-1"})
	require.NoError(t, err)

	_, err = s.tickets.Delete(ctx, kept.ID+100)
	require.Error(t, err)
	assert.True(t, errorutil.IsNotFound(err))

	views, err := s.queries.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, kept.ID, views[0].ID)
	assert.NotContains(t, s.dispatcher.types(), events.EventTicketDeleted)
}

func TestTicketService_DeleteReturnsSnapshot(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	created, err := s.tickets.Create(ctx, &domain.Ticket{Title: "Remove me", CreatedBy: "u-1"})
	require.NoError(t, err)

	removed, err := s.tickets.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)
	assert.Equal(t, "Remove me", removed.Title)

	_, err = s.tickets.GetByID(ctx, created.ID)
	assert.True(t, errorutil.IsNotFound(err))
	assert.Contains(t, s.dispatcher.types(), events.EventTicketDeleted)
}

func TestTicketService_UpdateAnswerAndStatusTouchesOnlyThoseFields(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	created, err := s.tickets.Create(ctx, &domain.Ticket{
		Title:       "Printer jam",
		Description: strPtr("Tray 2"),
		CreatedBy:   "u-1",
	})
	require.NoError(t, err)

	s.clock.Advance(90 * time.Minute)
	updated, err := s.tickets.UpdateAnswerAndStatus(ctx, created.ID, service.TicketAnswerInput{
		Answer: strPtr("Replace the roller"),
		Status: domain.TicketStatusAnswered,
	})
	require.NoError(t, err)

	assert.Equal(t, "Replace the roller", *updated.Answer)
	assert.Equal(t, domain.TicketStatusAnswered, updated.Status)
	require.NotNil(t, updated.Updated)
	assert.True(t, s.clock.Now().Equal(*updated.Updated))
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, *created.Description, *updated.Description)
	assert.Equal(t, created.CreatedBy, updated.CreatedBy)
	assert.True(t, created.Created.Equal(updated.Created))
}

func TestTicketService_UpdateAnswerAndStatusErrors(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	_, err := s.tickets.UpdateAnswerAndStatus(ctx, 12345, service.TicketAnswerInput{Status: domain.TicketStatusAnswered})
	assert.True(t, errorutil.IsNotFound(err))

	created, err := s.tickets.Create(ctx, &domain.Ticket{Title: "Bad status", CreatedBy: "u-1"})
	require.NoError(t, err)
	_, err = s.tickets.UpdateAnswerAndStatus(ctx, created.ID, service.TicketAnswerInput{Status: 9})
	assert.True(t, errorutil.HasCode(err, errorutil.CodeValidation))

	found, err := s.tickets.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusNew, found.Status)
	assert.Nil(t, found.Updated)
}

func TestTicketService_ReplaceStatus(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	created, err := s.tickets.Create(ctx, &domain.Ticket{Title: "Slow sync", CreatedBy: "u-1"})
	require.NoError(t, err)

	fetched, err := s.tickets.GetByID(ctx, created.ID)
	require.NoError(t, err)
	fetched.Status = domain.TicketStatusInProgress
	fetched.Created = fetched.Created.Add(72 * time.Hour)

	s.clock.Advance(time.Hour)
	replaced, err := s.tickets.ReplaceStatus(ctx, fetched)
	require.NoError(t, err)
	require.NotNil(t, replaced.Updated)
	assert.True(t, s.clock.Now().Equal(*replaced.Updated))
	assert.True(t, created.Created.Equal(replaced.Created), "returned ticket matches the stored created")
	assert.Equal(t, domain.TicketStatusInProgress, replaced.Status)

	found, err := s.tickets.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, found.Status)
	assert.True(t, created.Created.Equal(found.Created))
	require.NotNil(t, found.Updated)
	assert.True(t, s.clock.Now().Equal(*found.Updated))

	fetched.ID = created.ID + 500
	_, err = s.tickets.ReplaceStatus(ctx, fetched)
	assert.True(t, errorutil.IsNotFound(err))

	fetched.ID = created.ID
	fetched.Status = 0
	_, err = s.tickets.ReplaceStatus(ctx, fetched)
	assert.True(t, errorutil.HasCode(err, errorutil.CodeValidation))
}

func TestTicketService_NilInput(t *testing.T) {
	s := newServices(t)

	_, err := s.tickets.Create(context.Background(), nil)
	assert.True(t, errorutil.HasCode(err, errorutil.CodeValidation))
	_, err = s.tickets.ReplaceStatus(context.Background(), nil)
	assert.True(t, errorutil.HasCode(err, errorutil.CodeValidation))
}
