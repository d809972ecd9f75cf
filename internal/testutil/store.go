// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/spec-kit/ticket-tracker/internal/config"
	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/persistence"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	"github.com/spec-kit/ticket-tracker/internal/repository/gormstore"
)

// OpenSQLite opens a migrated in-memory SQLite database closed at test end.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := persistence.OpenGorm(config.StoreConfig{
		Driver:     config.StoreDriverSQLite,
		SQLitePath: ":memory:",
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, gormstore.AutoMigrate(db))
	t.Cleanup(func() { persistence.CloseGorm(db) })
	return db
}

// NewSQLiteStore returns a store backed by a fresh in-memory SQLite database.
func NewSQLiteStore(t testing.TB) repository.Store {
	t.Helper()
	return gormstore.NewStore(OpenSQLite(t))
}

// FixedClock always reports the same instant until advanced.
type FixedClock struct {
	T time.Time
}

// NewFixedClock starts a clock at a fixed UTC instant.
func NewFixedClock() *FixedClock {
	return &FixedClock{T: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *FixedClock) Now() time.Time {
	return c.T
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}

// Chain is a product linked to a firm, as seeded by SeedChain.
type Chain struct {
	Product domain.Product
	Firm    domain.Firm
}

// SeedProduct inserts a product without a firm.
func SeedProduct(t testing.TB, store repository.Store, name string) domain.Product {
	t.Helper()
	product := domain.Product{Name: name}
	require.NoError(t, store.Catalog.CreateProduct(context.Background(), &product))
	return product
}

// SeedChain inserts a product, a firm and the link between them.
func SeedChain(t testing.TB, store repository.Store, productName, firmName string) Chain {
	t.Helper()
	ctx := context.Background()
	product := SeedProduct(t, store, productName)
	firm := domain.Firm{Name: firmName}
	require.NoError(t, store.Catalog.CreateFirm(ctx, &firm))
	require.NoError(t, store.Catalog.CreateFirmProduct(ctx, &domain.FirmProduct{FirmID: firm.ID, ProductID: product.ID}))
	return Chain{Product: product, Firm: firm}
}

// SeedTicket inserts a new ticket directly through the repository.
func SeedTicket(t testing.TB, store repository.Store, title, createdBy string, created time.Time) domain.Ticket {
	t.Helper()
	ticket := domain.Ticket{
		Title:     title,
		Status:    domain.TicketStatusNew,
		CreatedBy: createdBy,
		Created:   created,
	}
	require.NoError(t, store.Tickets.Create(context.Background(), &ticket))
	return ticket
}
