package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mossxapp/mossx-backend/api/controllers"
	"github.com/mossxapp/mossx-backend/api/middleware"
	"github.com/mossxapp/mossx-backend/internal/cart"
	"github.com/mossxapp/mossx-backend/internal/catalog"
	"github.com/mossxapp/mossx-backend/internal/collections"
	"github.com/mossxapp/mossx-backend/internal/gate"
	"github.com/mossxapp/mossx-backend/internal/profile"
	"github.com/mossxapp/mossx-backend/internal/state"
	"github.com/mossxapp/mossx-backend/internal/wishlist"
	"github.com/mossxapp/mossx-backend/pkg/config"
	"github.com/mossxapp/mossx-backend/pkg/identity"
	"github.com/mossxapp/mossx-backend/pkg/logger"
	"github.com/mossxapp/mossx-backend/pkg/metrics"
	pkgredis "github.com/mossxapp/mossx-backend/pkg/redis"
)

// Params carries everything the route tree needs.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	Verifier    identity.Verifier
	Sessions    *state.Registry
	Catalog     catalog.Service
	Cart        cart.Service
	Wishlist    wishlist.Service
	Collections collections.Service
	Profile     profile.Service
	Policy      gate.Policy
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
	Redis       *pkgredis.Client
}

func NewRouter(p Params) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.Metrics(p.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		deps := map[string]pkgredis.Pinger{}
		if p.Redis != nil {
			deps["redis"] = p.Redis
		}
		r.Get("/ready", controllers.HealthReady(p.Config, deps))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			r.Get("/", controllers.SessionGet(p.Sessions, p.Verifier, p.Logger))
			r.Post("/navigate", controllers.SessionNavigate(p.Sessions, p.Verifier, p.Policy, p.Logger))
			r.Delete("/", controllers.SessionEnd(p.Sessions, p.Verifier, p.Logger))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(p.Verifier, p.Logger))

			var idempotencyStore pkgredis.IdempotencyStore
			if p.Redis != nil {
				idempotencyStore = p.Redis
			}
			r.Use(middleware.Idempotency(idempotencyStore, p.Config.Eventing.IdempotencyTTL, p.Logger))

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/", controllers.CatalogWindow(p.Catalog, p.Logger))
				r.Post("/filters", controllers.CatalogSetFilters(p.Catalog, p.Logger))
				r.Post("/load-more", controllers.CatalogLoadMore(p.Catalog, p.Logger))
				r.Get("/categories", controllers.CatalogCategories(p.Catalog, p.Logger))
				r.Get("/trending", controllers.CatalogTrending(p.Catalog, p.Logger))
				r.Get("/products/{productId}", controllers.CatalogProduct(p.Catalog, p.Logger))
			})

			r.Route("/collections", func(r chi.Router) {
				r.Get("/", controllers.CollectionsOverview(p.Collections, p.Logger))
				r.Get("/{collectionId}", controllers.CollectionsDetail(p.Collections, p.Logger))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(p.Cart, p.Logger))
				r.Delete("/", controllers.CartClear(p.Cart, p.Logger))
				r.Post("/items", controllers.CartAddItem(p.Cart, p.Logger))
				r.Post("/bundles", controllers.CartAddBundle(p.Cart, p.Logger))
				r.Patch("/items/{itemId}", controllers.CartUpdateItem(p.Cart, p.Logger))
				r.Delete("/items/{itemId}", controllers.CartRemoveItem(p.Cart, p.Logger))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistGet(p.Wishlist, p.Logger))
				r.Post("/", controllers.WishlistAdd(p.Wishlist, p.Logger))
				r.Delete("/{productId}", controllers.WishlistRemove(p.Wishlist, p.Logger))
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", controllers.ProfileGet(p.Profile, p.Logger))
				r.Put("/", controllers.ProfileUpdate(p.Profile, p.Logger))
			})
		})
	})

	return r
}
