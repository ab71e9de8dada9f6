package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gtlearning/storefront-backend/api/controllers"
	"github.com/gtlearning/storefront-backend/api/middleware"
	"github.com/gtlearning/storefront-backend/internal/cart"
	"github.com/gtlearning/storefront-backend/internal/catalog"
	"github.com/gtlearning/storefront-backend/internal/orders"
	"github.com/gtlearning/storefront-backend/internal/quotes"
	"github.com/gtlearning/storefront-backend/pkg/config"
	"github.com/gtlearning/storefront-backend/pkg/logger"
	"github.com/gtlearning/storefront-backend/pkg/metrics"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Metrics     *metrics.HTTPMetrics
	Idempotency middleware.IdempotencyStore
	Pingers     map[string]controllers.Pinger

	Catalog catalog.Service
	Cart    cart.Service
	Orders  orders.Service
	Quotes  quotes.Service
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.CORS(deps.Config.App.ExtraCORSOrigins...),
		middleware.Logging(deps.Logger),
		middleware.Metrics(deps.Metrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.Pingers))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Catalog, deps.Logger))
			r.Post("/", controllers.CreateProduct(deps.Catalog, deps.Logger))
			r.Get("/{productID}", controllers.GetProduct(deps.Catalog, deps.Logger))
			r.Put("/{productID}", controllers.UpdateProduct(deps.Catalog, deps.Logger))
			r.Delete("/{productID}", controllers.DeleteProduct(deps.Catalog, deps.Logger))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartToken(deps.Logger))
			r.Get("/", controllers.GetCart(deps.Cart, deps.Logger))
			r.Delete("/", controllers.ClearCart(deps.Cart, deps.Logger))
			r.Post("/items", controllers.AddCartItem(deps.Cart, deps.Logger))
			r.Put("/items/{productID}", controllers.SetCartItemQuantity(deps.Cart, deps.Logger))
			r.Delete("/items/{productID}", controllers.RemoveCartItem(deps.Cart, deps.Logger))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.CartToken(deps.Logger))
			r.With(middleware.Idempotency(deps.Idempotency, deps.Logger)).
				Post("/", controllers.CreateOrder(deps.Orders, deps.Logger))
			r.Get("/", controllers.ListOrders(deps.Orders, deps.Logger))
			r.Get("/{orderID}", controllers.GetOrder(deps.Orders, deps.Logger))
			r.Put("/{orderID}/status", controllers.UpdateOrderStatus(deps.Orders, deps.Logger))
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Use(middleware.CartToken(deps.Logger))
			r.With(middleware.Idempotency(deps.Idempotency, deps.Logger)).
				Post("/", controllers.CreateQuote(deps.Quotes, deps.Logger))
			r.Get("/", controllers.ListQuotes(deps.Quotes, deps.Logger))
			r.Get("/lookup", controllers.GetQuoteByReference(deps.Quotes, deps.Logger))
			r.Get("/{quoteID}", controllers.GetQuote(deps.Quotes, deps.Logger))
			r.Put("/{quoteID}/status", controllers.UpdateQuoteStatus(deps.Quotes, deps.Logger))
		})
	})

	return r
}
