package catalog

import (
	"context"

	"github.com/mossxapp/mossx-backend/pkg/dataset"
	pkgerrors "github.com/mossxapp/mossx-backend/pkg/errors"
	"github.com/mossxapp/mossx-backend/pkg/metrics"
)

// browseProvider hands out the per-user browse state.
type browseProvider interface {
	Browse(userID string) *Browse
}

// Service exposes catalog browsing to the API layer.
type Service interface {
	Window(ctx context.Context, userID string) Snapshot
	SetFilters(ctx context.Context, userID string, update Update) Snapshot
	LoadMore(ctx context.Context, userID string) (Snapshot, bool)
	Categories(ctx context.Context) []string
	Trending(ctx context.Context) []*dataset.Product
	Product(ctx context.Context, id string) (*dataset.Product, error)
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Dataset       *dataset.Dataset
	Sessions      browseProvider
	Metrics       *metrics.StorefrontMetrics
	TrendingLimit int
}

type service struct {
	ds            *dataset.Dataset
	sessions      browseProvider
	metrics       *metrics.StorefrontMetrics
	trendingLimit int
	categories    []string
}

// NewService builds a catalog service over the loaded dataset.
func NewService(params ServiceParams) (Service, error) {
	if params.Dataset == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dataset is required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session provider is required")
	}
	limit := params.TrendingLimit
	if limit <= 0 {
		limit = 10
	}
	return &service{
		ds:            params.Dataset,
		sessions:      params.Sessions,
		metrics:       params.Metrics,
		trendingLimit: limit,
		// the dataset is immutable, so the category list never changes
		categories: Categories(params.Dataset.Products),
	}, nil
}

func (s *service) Window(_ context.Context, userID string) Snapshot {
	return s.sessions.Browse(userID).Snapshot()
}

func (s *service) SetFilters(_ context.Context, userID string, update Update) Snapshot {
	return s.sessions.Browse(userID).SetFilters(update)
}

func (s *service) LoadMore(ctx context.Context, userID string) (Snapshot, bool) {
	snap, extended := s.sessions.Browse(userID).LoadMore(ctx)
	if extended {
		s.metrics.IncPageServed()
	}
	return snap, extended
}

func (s *service) Categories(_ context.Context) []string {
	return s.categories
}

func (s *service) Trending(_ context.Context) []*dataset.Product {
	return Trending(s.ds.Products, s.trendingLimit)
}

func (s *service) Product(_ context.Context, id string) (*dataset.Product, error) {
	p := s.ds.ProductByID(id)
	if p == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return p, nil
}
