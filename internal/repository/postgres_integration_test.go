package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/config"
	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/persistence"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	"github.com/spec-kit/ticket-tracker/internal/testutil"
	"github.com/spec-kit/ticket-tracker/migrations"
)

func startPostgres(t *testing.T) *persistence.Postgres {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration test skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "tickets",
				"POSTGRES_PASSWORD": "tickets",
				"POSTGRES_DB":       "tickets",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://tickets:tickets@%s:%s/tickets?sslmode=disable", host, port.Port())
	pg, err := persistence.NewPostgres(ctx, config.PostgresConfig{DSN: dsn, MaxConns: 4}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pg.Close)

	require.NoError(t, persistence.RunMigrations(ctx, pg.PoolHandle(), migrations.Files, zap.NewNop()))
	return pg
}

func TestPostgresStore(t *testing.T) {
	pg := startPostgres(t)
	store := repository.NewPostgresStore(pg.PoolHandle())
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	reset := func(t *testing.T) {
		_, err := pg.Pool.Exec(ctx, `TRUNCATE app_user_tickets, product_tickets, firm_products, firms, products, tickets RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	}

	t.Run("ticket lifecycle", func(t *testing.T) {
		reset(t)
		ticket := testutil.SeedTicket(t, store, "Login fails", "user-1", created)
		require.NotZero(t, ticket.ID)

		found, err := store.Tickets.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, "Login fails", found.Title)
		assert.Nil(t, found.Updated)
		assert.True(t, created.Equal(found.Created))

		answer := "Fixed in v2"
		updatedAt := created.Add(time.Hour)
		updated, err := store.Tickets.UpdateAnswerAndStatus(ctx, ticket.ID, &answer, domain.TicketStatusAnswered, updatedAt)
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusAnswered, updated.Status)
		assert.Equal(t, answer, *updated.Answer)
		assert.Equal(t, "Login fails", updated.Title)

		updated.Status = domain.TicketStatusClosed
		updated.Created = created.Add(48 * time.Hour)
		replaced, err := store.Tickets.Replace(ctx, updated)
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusClosed, replaced.Status)
		assert.True(t, created.Equal(replaced.Created))

		removed, err := store.Tickets.Delete(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusClosed, removed.Status)

		_, err = store.Tickets.Delete(ctx, ticket.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = store.Tickets.Replace(ctx, updated)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("views resolve the first product link", func(t *testing.T) {
		reset(t)
		full := testutil.SeedChain(t, store, "Widget", "Acme")
		orphan := testutil.SeedProduct(t, store, "Gizmo")
		unlinked := testutil.SeedTicket(t, store, "Unlinked", "user-1", created)
		chained := testutil.SeedTicket(t, store, "Chained", "user-1", created)
		multi := testutil.SeedTicket(t, store, "Multi", "user-2", created)

		for _, l := range []domain.ProductTicket{
			{TicketID: chained.ID, ProductID: full.Product.ID},
			{TicketID: multi.ID, ProductID: orphan.ID},
			{TicketID: multi.ID, ProductID: full.Product.ID},
		} {
			link := l
			require.NoError(t, store.ProductTickets.Create(ctx, &link))
		}
		require.NoError(t, store.UserTickets.Create(ctx, &domain.AppUserTicket{AppUserID: "user-2", TicketID: multi.ID}))
		require.NoError(t, store.UserTickets.Create(ctx, &domain.AppUserTicket{AppUserID: "user-2", TicketID: multi.ID}))

		views, err := store.Views.ListViews(ctx, repository.ViewFilter{})
		require.NoError(t, err)
		require.Len(t, views, 3)
		assert.Equal(t, unlinked.ID, views[0].ID)
		assert.Nil(t, views[0].ProductName)
		assert.Equal(t, "Widget", *views[1].ProductName)
		assert.Equal(t, "Acme", *views[1].FirmName)
		assert.Equal(t, "Gizmo", *views[2].ProductName)
		assert.Nil(t, views[2].FirmName)

		ids, err := store.UserTickets.ListTicketIDs(ctx, "user-2")
		require.NoError(t, err)
		assert.Equal(t, []int64{multi.ID}, ids)

		linked, err := store.UserTickets.Exists(ctx, "user-2", multi.ID)
		require.NoError(t, err)
		assert.True(t, linked)
		linked, err = store.UserTickets.Exists(ctx, "user-2", unlinked.ID)
		require.NoError(t, err)
		assert.False(t, linked)

		scoped, err := store.Views.ListViews(ctx, repository.ViewFilter{TicketIDs: ids})
		require.NoError(t, err)
		require.Len(t, scoped, 1)
		assert.Equal(t, multi.ID, scoped[0].ID)
	})

	t.Run("foreign keys reject dangling links", func(t *testing.T) {
		reset(t)
		product := testutil.SeedProduct(t, store, "Widget")
		err := store.ProductTickets.Create(ctx, &domain.ProductTicket{TicketID: 12345, ProductID: product.ID})
		assert.Error(t, err)
	})
}
