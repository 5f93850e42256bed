package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mossxapp/mossx-backend/api/responses"
	"github.com/mossxapp/mossx-backend/internal/collections"
	pkgerrors "github.com/mossxapp/mossx-backend/pkg/errors"
	"github.com/mossxapp/mossx-backend/pkg/logger"
)

// CollectionsOverview lists seasonal collections and bundles.
func CollectionsOverview(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collections service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Overview(ctx))
	}
}

// CollectionsDetail resolves one collection or bundle with its products.
// The type query parameter defaults to bundle.
func CollectionsDetail(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collections service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "collectionId"))
		if id == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "collection id is required"))
			return
		}

		kind, err := collections.ParseKind(r.URL.Query().Get("type"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		detail, err := svc.Detail(ctx, id, kind)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}
