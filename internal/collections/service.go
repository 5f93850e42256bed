package collections

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mossxapp/mossx-backend/pkg/dataset"
	pkgerrors "github.com/mossxapp/mossx-backend/pkg/errors"
)

// Kind discriminates the two curated collection flavours.
type Kind string

const (
	KindSeasonal Kind = "seasonal"
	KindBundle   Kind = "bundle"
)

// ParseKind validates a collection type query value. Empty defaults to
// bundle, matching the storefront's collection screen.
func ParseKind(raw string) (Kind, error) {
	switch raw {
	case "", string(KindBundle):
		return KindBundle, nil
	case string(KindSeasonal):
		return KindSeasonal, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "collection type must be seasonal or bundle")
	}
}

// BundlePricing carries the before/after prices shown on bundle pages.
type BundlePricing struct {
	Original   decimal.Decimal `json:"original"`
	Discounted decimal.Decimal `json:"discounted"`
}

// Detail is a resolved collection or bundle with its concrete products.
type Detail struct {
	ID          string             `json:"id"`
	Kind        Kind               `json:"kind"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Image       string             `json:"image"`
	Season      string             `json:"season,omitempty"`
	Pricing     *BundlePricing     `json:"pricing,omitempty"`
	Products    []*dataset.Product `json:"products"`
}

// Overview lists both curated groups for the landing screen.
type Overview struct {
	Seasonal []dataset.Collection `json:"seasonal_collections"`
	Bundles  []dataset.Bundle     `json:"product_bundles"`
}

// Service resolves curated collections against the catalog.
type Service interface {
	Overview(ctx context.Context) Overview
	Detail(ctx context.Context, id string, kind Kind) (*Detail, error)
}

type service struct {
	ds *dataset.Dataset
}

// NewService builds a collections service over the loaded dataset.
func NewService(ds *dataset.Dataset) (Service, error) {
	if ds == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dataset is required")
	}
	return &service{ds: ds}, nil
}

func (s *service) Overview(_ context.Context) Overview {
	return Overview{
		Seasonal: s.ds.Seasonal,
		Bundles:  s.ds.Bundles,
	}
}

// Detail resolves member ids to products, silently dropping ids missing from
// the catalog. Unknown collection ids are a not-found error, never a panic.
func (s *service) Detail(_ context.Context, id string, kind Kind) (*Detail, error) {
	switch kind {
	case KindSeasonal:
		c := s.ds.SeasonalByID(id)
		if c == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		return &Detail{
			ID:          c.ID,
			Kind:        KindSeasonal,
			Title:       c.Title,
			Description: c.Description,
			Image:       c.Image,
			Season:      c.Season,
			Products:    s.ds.ResolveProducts(c.ProductIDs),
		}, nil
	case KindBundle:
		b := s.ds.BundleByID(id)
		if b == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bundle not found")
		}
		return &Detail{
			ID:          b.ID,
			Kind:        KindBundle,
			Title:       b.Title,
			Description: b.Description,
			Image:       b.Image,
			Pricing: &BundlePricing{
				Original:   b.OriginalPrice,
				Discounted: b.DiscountedPrice,
			},
			Products: s.ds.ResolveProducts(b.ProductIDs),
		}, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown collection type")
	}
}
