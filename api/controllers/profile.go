package controllers

import (
	"net/http"

	"github.com/mossxapp/mossx-backend/api/middleware"
	"github.com/mossxapp/mossx-backend/api/responses"
	"github.com/mossxapp/mossx-backend/api/validators"
	"github.com/mossxapp/mossx-backend/internal/profile"
	pkgerrors "github.com/mossxapp/mossx-backend/pkg/errors"
	"github.com/mossxapp/mossx-backend/pkg/logger"
)

// ProfileGet returns the caller's merged profile.
func ProfileGet(svc profile.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		view, err := svc.Get(middleware.ProfileFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// ProfileUpdate applies a partial edit on top of the provider claims.
func ProfileUpdate(svc profile.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		var payload profile.Update
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.Update(middleware.ProfileFromContext(ctx), payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
