package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/cache"
	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/repository"
)

// ViewCache stores denormalized view lists by key. Keys embed the generation
// returned by Generation; invalidation moves to a new generation.
type ViewCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, key string) ([]domain.TicketView, bool, error)
	Set(ctx context.Context, key string, views []domain.TicketView) error
}

// QueryService serves read-only ticket views.
type QueryService struct {
	views     repository.TicketViewRepository
	userLinks repository.AppUserTicketRepository
	cache     ViewCache
	logger    *zap.Logger
}

// QueryDependencies bundles collaborators for the query service. Cache is
// optional.
type QueryDependencies struct {
	ViewRepo       repository.TicketViewRepository
	UserTicketRepo repository.AppUserTicketRepository
	Cache          ViewCache
	Logger         *zap.Logger
}

// NewQueryService constructs the service.
func NewQueryService(deps QueryDependencies) *QueryService {
	return &QueryService{
		views:     deps.ViewRepo,
		userLinks: deps.UserTicketRepo,
		cache:     deps.Cache,
		logger:    orNop(deps.Logger),
	}
}

// ListAll returns one view per ticket ordered by ticket id.
func (s *QueryService) ListAll(ctx context.Context) ([]domain.TicketView, error) {
	return s.cached(ctx, cache.AllKey, func() ([]domain.TicketView, error) {
		return s.views.ListViews(ctx, repository.ViewFilter{})
	})
}

// ListForUser returns the views of the tickets linked to the user. A user
// without links gets an empty list.
func (s *QueryService) ListForUser(ctx context.Context, appUserID string) ([]domain.TicketView, error) {
	userKey := func(gen int64) string { return cache.UserKey(gen, appUserID) }
	return s.cached(ctx, userKey, func() ([]domain.TicketView, error) {
		ids, err := s.userLinks.ListTicketIDs(ctx, appUserID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []domain.TicketView{}, nil
		}
		return s.views.ListViews(ctx, repository.ViewFilter{TicketIDs: ids})
	})
}

// cached reads through the view cache. The generation is read before the
// store load, so views loaded across an invalidation are written under a
// retired key and never served.
func (s *QueryService) cached(ctx context.Context, keyFor func(gen int64) string, load func() ([]domain.TicketView, error)) ([]domain.TicketView, error) {
	key := ""
	if s.cache != nil {
		gen, err := s.cache.Generation(ctx)
		if err != nil {
			s.logger.Warn("view cache generation read failed", zap.Error(err))
		} else {
			key = keyFor(gen)
			views, ok, err := s.cache.Get(ctx, key)
			if err != nil {
				s.logger.Warn("view cache read failed", zap.String("key", key), zap.Error(err))
			} else if ok {
				return views, nil
			}
		}
	}

	views, err := load()
	if err != nil {
		return nil, storeError(err, "ticket view", nil)
	}
	if views == nil {
		views = []domain.TicketView{}
	}

	if key != "" {
		if err := s.cache.Set(ctx, key, views); err != nil {
			s.logger.Warn("view cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return views, nil
}
