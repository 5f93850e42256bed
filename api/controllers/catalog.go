package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mossxapp/mossx-backend/api/middleware"
	"github.com/mossxapp/mossx-backend/api/responses"
	"github.com/mossxapp/mossx-backend/api/validators"
	"github.com/mossxapp/mossx-backend/internal/catalog"
	"github.com/mossxapp/mossx-backend/pkg/dataset"
	pkgerrors "github.com/mossxapp/mossx-backend/pkg/errors"
	"github.com/mossxapp/mossx-backend/pkg/logger"
)

type catalogWindowResponse struct {
	Products []*dataset.Product `json:"products"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	HasMore  bool               `json:"has_more"`
	Filtered int                `json:"filtered"`
	Filters  catalog.Criteria   `json:"filters"`
}

func newCatalogWindowResponse(snap catalog.Snapshot) catalogWindowResponse {
	return catalogWindowResponse{
		Products: snap.Displayed,
		Page:     snap.Page,
		PageSize: snap.PageSize,
		HasMore:  snap.HasMore,
		Filtered: snap.Filtered,
		Filters:  snap.Criteria,
	}
}

// CatalogWindow returns the caller's current browse window.
func CatalogWindow(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		responses.WriteSuccess(w, newCatalogWindowResponse(svc.Window(ctx, userID)))
	}
}

// CatalogSetFilters merges a partial filter change and returns the reset
// first-page window.
func CatalogSetFilters(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload catalog.Update
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		responses.WriteSuccess(w, newCatalogWindowResponse(svc.SetFilters(ctx, userID, payload)))
	}
}

// CatalogLoadMore extends the window by one page when more rows remain.
func CatalogLoadMore(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		snap, extended := svc.LoadMore(ctx, userID)

		resp := struct {
			catalogWindowResponse
			Extended bool `json:"extended"`
		}{newCatalogWindowResponse(snap), extended}
		responses.WriteSuccess(w, resp)
	}
}

// CatalogCategories lists the distinct tags across the catalog.
func CatalogCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string][]string{"categories": svc.Categories(ctx)})
	}
}

// CatalogTrending lists the best selling products.
func CatalogTrending(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": svc.Trending(ctx)})
	}
}

// CatalogProduct returns one product by id.
func CatalogProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "productId"))
		if id == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		product, err := svc.Product(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
