package cart

import (
	"context"

	"github.com/mossxapp/mossx-backend/pkg/dataset"
	pkgerrors "github.com/mossxapp/mossx-backend/pkg/errors"
	"github.com/mossxapp/mossx-backend/pkg/metrics"
)

// cartProvider hands out the per-user cart store.
type cartProvider interface {
	Cart(userID string) *Store
}

// Service exposes cart operations to the API layer.
type Service interface {
	Get(ctx context.Context, userID string) State
	AddProduct(ctx context.Context, userID, productID string, quantity int) (State, error)
	AddBundle(ctx context.Context, userID, bundleID string) (State, error)
	Remove(ctx context.Context, userID, lineID string) State
	UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) State
	Clear(ctx context.Context, userID string) State
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Dataset  *dataset.Dataset
	Sessions cartProvider
	Metrics  *metrics.StorefrontMetrics
}

type service struct {
	ds       *dataset.Dataset
	sessions cartProvider
	metrics  *metrics.StorefrontMetrics
}

// NewService builds a cart service over the loaded dataset.
func NewService(params ServiceParams) (Service, error) {
	if params.Dataset == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dataset is required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session provider is required")
	}
	return &service{
		ds:       params.Dataset,
		sessions: params.Sessions,
		metrics:  params.Metrics,
	}, nil
}

func (s *service) Get(_ context.Context, userID string) State {
	return s.sessions.Cart(userID).State()
}

func (s *service) AddProduct(_ context.Context, userID, productID string, quantity int) (State, error) {
	p := s.ds.ProductByID(productID)
	if p == nil {
		return State{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	s.metrics.IncCartMutation("add")
	return s.sessions.Cart(userID).Add(p, quantity), nil
}

func (s *service) AddBundle(_ context.Context, userID, bundleID string) (State, error) {
	b := s.ds.BundleByID(bundleID)
	if b == nil {
		return State{}, pkgerrors.New(pkgerrors.CodeNotFound, "bundle not found")
	}
	s.metrics.IncCartMutation("add_bundle")
	return s.sessions.Cart(userID).AddBundle(b), nil
}

func (s *service) Remove(_ context.Context, userID, lineID string) State {
	s.metrics.IncCartMutation("remove")
	return s.sessions.Cart(userID).Remove(lineID)
}

func (s *service) UpdateQuantity(_ context.Context, userID, lineID string, quantity int) State {
	s.metrics.IncCartMutation("update_quantity")
	return s.sessions.Cart(userID).UpdateQuantity(lineID, quantity)
}

func (s *service) Clear(_ context.Context, userID string) State {
	s.metrics.IncCartMutation("clear")
	return s.sessions.Cart(userID).Clear()
}
