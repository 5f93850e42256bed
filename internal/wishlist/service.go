package wishlist

import (
	"context"

	"github.com/mossxapp/mossx-backend/pkg/dataset"
	pkgerrors "github.com/mossxapp/mossx-backend/pkg/errors"
)

// wishlistProvider hands out the per-user wishlist store.
type wishlistProvider interface {
	Wishlist(userID string) *Store
}

// Service exposes wishlist operations to the API layer.
type Service interface {
	IDs(ctx context.Context, userID string) []string
	Products(ctx context.Context, userID string) []*dataset.Product
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string)
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Dataset  *dataset.Dataset
	Sessions wishlistProvider
}

type service struct {
	ds       *dataset.Dataset
	sessions wishlistProvider
}

// NewService builds a wishlist service over the loaded dataset.
func NewService(params ServiceParams) (Service, error) {
	if params.Dataset == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dataset is required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session provider is required")
	}
	return &service{ds: params.Dataset, sessions: params.Sessions}, nil
}

func (s *service) IDs(_ context.Context, userID string) []string {
	return s.sessions.Wishlist(userID).IDs()
}

// Products resolves liked ids to catalog entries, dropping ids that no
// longer exist.
func (s *service) Products(_ context.Context, userID string) []*dataset.Product {
	return s.ds.ResolveProducts(s.sessions.Wishlist(userID).IDs())
}

// Add likes a product. Liking twice is a no-op, liking an unknown product is
// an error.
func (s *service) Add(_ context.Context, userID, productID string) error {
	if s.ds.ProductByID(productID) == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	s.sessions.Wishlist(userID).Add(productID)
	return nil
}

func (s *service) Remove(_ context.Context, userID, productID string) {
	s.sessions.Wishlist(userID).Remove(productID)
}
