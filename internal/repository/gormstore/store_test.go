package gormstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	"github.com/spec-kit/ticket-tracker/internal/testutil"
)

var created = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestTicketRepository_RoundTrip(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	ticket := domain.Ticket{
		Title:       "Login fails",
		Description: strPtr("SSO redirect loops"),
		NewProduct:  strPtr("Gadget Pro"),
		Status:      domain.TicketStatusNew,
		CreatedBy:   "user-1",
		Created:     created,
	}
	require.NoError(t, store.Tickets.Create(ctx, &ticket))
	require.NotZero(t, ticket.ID)

	found, err := store.Tickets.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "Login fails", found.Title)
	assert.Equal(t, "SSO redirect loops", *found.Description)
	assert.Equal(t, "Gadget Pro", *found.NewProduct)
	assert.Equal(t, domain.TicketStatusNew, found.Status)
	assert.Equal(t, "user-1", found.CreatedBy)
	assert.True(t, created.Equal(found.Created))
	assert.Nil(t, found.Updated)
	assert.Nil(t, found.Answer)

	byTitle, err := store.Tickets.GetByTitle(ctx, "Login fails")
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, byTitle.ID)

	_, err = store.Tickets.GetByID(ctx, ticket.ID+100)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.Tickets.GetByTitle(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTicketRepository_UpdateAnswerAndStatus(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()
	ticket := testutil.SeedTicket(t, store, "Printer jam", "user-1", created)

	updatedAt := created.Add(time.Hour)
	updated, err := store.Tickets.UpdateAnswerAndStatus(ctx, ticket.ID, strPtr("Replace tray"), domain.TicketStatusAnswered, updatedAt)
	require.NoError(t, err)
	assert.Equal(t, "Replace tray", *updated.Answer)
	assert.Equal(t, domain.TicketStatusAnswered, updated.Status)
	require.NotNil(t, updated.Updated)
	assert.True(t, updatedAt.Equal(*updated.Updated))
	assert.Equal(t, "Printer jam", updated.Title)
	assert.True(t, created.Equal(updated.Created))

	_, err = store.Tickets.UpdateAnswerAndStatus(ctx, ticket.ID+1, nil, domain.TicketStatusClosed, updatedAt)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTicketRepository_ReplaceKeepsCreated(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()
	ticket := testutil.SeedTicket(t, store, "Slow dashboard", "user-2", created)

	updatedAt := created.Add(2 * time.Hour)
	ticket.Status = domain.TicketStatusInProgress
	ticket.Created = created.Add(24 * time.Hour)
	ticket.Updated = &updatedAt
	replaced, err := store.Tickets.Replace(ctx, &ticket)
	require.NoError(t, err)
	assert.True(t, created.Equal(replaced.Created), "returned row carries the stored created")
	assert.Equal(t, domain.TicketStatusInProgress, replaced.Status)

	found, err := store.Tickets.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, found.Status)
	assert.True(t, created.Equal(found.Created))
	require.NotNil(t, found.Updated)
	assert.True(t, updatedAt.Equal(*found.Updated))

	ghost := domain.Ticket{ID: ticket.ID + 50, Title: "ghost", CreatedBy: "x", Status: domain.TicketStatusNew}
	_, err = store.Tickets.Replace(ctx, &ghost)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTicketRepository_DeleteCascadesLinks(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()
	chain := testutil.SeedChain(t, store, "Widget", "Acme")
	ticket := testutil.SeedTicket(t, store, "Broken widget", "user-1", created)

	require.NoError(t, store.ProductTickets.Create(ctx, &domain.ProductTicket{TicketID: ticket.ID, ProductID: chain.Product.ID}))
	require.NoError(t, store.UserTickets.Create(ctx, &domain.AppUserTicket{AppUserID: "user-1", TicketID: ticket.ID}))

	removed, err := store.Tickets.Delete(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "Broken widget", removed.Title)

	links, err := store.ProductTickets.ListByTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Empty(t, links)

	ids, err := store.UserTickets.ListTicketIDs(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = store.Tickets.Delete(ctx, ticket.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLinkRepositories(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()
	product := testutil.SeedProduct(t, store, "Widget")
	first := testutil.SeedTicket(t, store, "First", "user-1", created)
	second := testutil.SeedTicket(t, store, "Second", "user-1", created)

	t.Run("duplicate links are kept", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			link := domain.ProductTicket{TicketID: first.ID, ProductID: product.ID}
			require.NoError(t, store.ProductTickets.Create(ctx, &link))
			assert.NotZero(t, link.ID)
		}
		links, err := store.ProductTickets.ListByTicket(ctx, first.ID)
		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Less(t, links[0].ID, links[1].ID)
	})

	t.Run("user ticket ids are distinct and ordered", func(t *testing.T) {
		for _, id := range []int64{second.ID, first.ID, second.ID} {
			require.NoError(t, store.UserTickets.Create(ctx, &domain.AppUserTicket{AppUserID: "user-7", TicketID: id}))
		}
		ids, err := store.UserTickets.ListTicketIDs(ctx, "user-7")
		require.NoError(t, err)
		assert.Equal(t, []int64{first.ID, second.ID}, ids)

		none, err := store.UserTickets.ListTicketIDs(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, none)

		linked, err := store.UserTickets.Exists(ctx, "user-7", second.ID)
		require.NoError(t, err)
		assert.True(t, linked)
		linked, err = store.UserTickets.Exists(ctx, "nobody", second.ID)
		require.NoError(t, err)
		assert.False(t, linked)
	})

	t.Run("dangling references violate foreign keys", func(t *testing.T) {
		err := store.ProductTickets.Create(ctx, &domain.ProductTicket{TicketID: 9999, ProductID: product.ID})
		assert.Error(t, err)
		err = store.UserTickets.Create(ctx, &domain.AppUserTicket{AppUserID: "user-1", TicketID: 9999})
		assert.Error(t, err)
	})
}

func TestTicketViewRepository_FirstMatch(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	full := testutil.SeedChain(t, store, "Widget", "Acme")
	orphan := testutil.SeedProduct(t, store, "Gizmo")
	other := testutil.SeedChain(t, store, "Sprocket", "Globex")

	unlinked := testutil.SeedTicket(t, store, "Unlinked", "user-1", created)
	productOnly := testutil.SeedTicket(t, store, "Product only", "user-1", created)
	chained := testutil.SeedTicket(t, store, "Chained", "user-2", created)
	multi := testutil.SeedTicket(t, store, "Multi", "user-2", created)

	link := func(ticketID, productID int64) {
		require.NoError(t, store.ProductTickets.Create(ctx, &domain.ProductTicket{TicketID: ticketID, ProductID: productID}))
	}
	link(productOnly.ID, orphan.ID)
	link(chained.ID, full.Product.ID)
	// The first link has no firm; the firm must not leak in from the second.
	link(multi.ID, orphan.ID)
	link(multi.ID, other.Product.ID)
	link(multi.ID, full.Product.ID)

	views, err := store.Views.ListViews(ctx, repository.ViewFilter{})
	require.NoError(t, err)
	require.Len(t, views, 4)

	byID := map[int64]domain.TicketView{}
	for _, v := range views {
		byID[v.ID] = v
	}
	assert.Equal(t, []int64{unlinked.ID, productOnly.ID, chained.ID, multi.ID},
		[]int64{views[0].ID, views[1].ID, views[2].ID, views[3].ID})

	assert.Nil(t, byID[unlinked.ID].ProductName)
	assert.Nil(t, byID[unlinked.ID].FirmName)

	require.NotNil(t, byID[productOnly.ID].ProductName)
	assert.Equal(t, "Gizmo", *byID[productOnly.ID].ProductName)
	assert.Nil(t, byID[productOnly.ID].FirmName)

	require.NotNil(t, byID[chained.ID].ProductName)
	require.NotNil(t, byID[chained.ID].FirmName)
	assert.Equal(t, "Widget", *byID[chained.ID].ProductName)
	assert.Equal(t, "Acme", *byID[chained.ID].FirmName)

	require.NotNil(t, byID[multi.ID].ProductName)
	assert.Equal(t, "Gizmo", *byID[multi.ID].ProductName)
	assert.Nil(t, byID[multi.ID].FirmName)

	t.Run("restricted to ids", func(t *testing.T) {
		subset, err := store.Views.ListViews(ctx, repository.ViewFilter{TicketIDs: []int64{multi.ID, chained.ID}})
		require.NoError(t, err)
		require.Len(t, subset, 2)
		assert.Equal(t, chained.ID, subset[0].ID)
		assert.Equal(t, multi.ID, subset[1].ID)
	})

	t.Run("empty id set", func(t *testing.T) {
		subset, err := store.Views.ListViews(ctx, repository.ViewFilter{TicketIDs: []int64{}})
		require.NoError(t, err)
		assert.NotNil(t, subset)
		assert.Empty(t, subset)
	})
}

func TestCatalogRepository(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	chain := testutil.SeedChain(t, store, "Widget", "Acme")
	testutil.SeedProduct(t, store, "Gizmo")

	product, err := store.Catalog.GetProduct(ctx, chain.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", product.Name)

	_, err = store.Catalog.GetProduct(ctx, 4242)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	products, err := store.Catalog.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Gizmo", products[1].Name)

	err = store.Catalog.CreateFirmProduct(ctx, &domain.FirmProduct{FirmID: 4242, ProductID: chain.Product.ID})
	assert.Error(t, err)
}
