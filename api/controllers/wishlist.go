package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mossxapp/mossx-backend/api/middleware"
	"github.com/mossxapp/mossx-backend/api/responses"
	"github.com/mossxapp/mossx-backend/api/validators"
	"github.com/mossxapp/mossx-backend/internal/wishlist"
	pkgerrors "github.com/mossxapp/mossx-backend/pkg/errors"
	"github.com/mossxapp/mossx-backend/pkg/logger"
)

type addWishlistItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// WishlistGet returns the liked products, resolved against the catalog.
func WishlistGet(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		responses.WriteSuccess(w, map[string]any{
			"ids":      svc.IDs(ctx, userID),
			"products": svc.Products(ctx, userID),
		})
	}
}

// WishlistAdd likes a product. Re-liking is a no-op.
func WishlistAdd(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		var payload addWishlistItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if err := svc.Add(ctx, userID, payload.ProductID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"ids": svc.IDs(ctx, userID)})
	}
}

// WishlistRemove unlikes a product. Removing an absent id is a no-op.
func WishlistRemove(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		svc.Remove(ctx, userID, productID)
		responses.WriteSuccess(w, map[string]any{"ids": svc.IDs(ctx, userID)})
	}
}
