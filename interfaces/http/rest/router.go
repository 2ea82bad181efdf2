package rest

import (
	"net/http"

	"catalog-backend/interfaces/http/rest/handlers"
	"catalog-backend/interfaces/http/rest/middleware"
	"catalog-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	categoryHandler *handlers.CategoryHandler
	tagHandler      *handlers.TagHandler
	itemHandler     *handlers.ItemHandler
	imageHandler    *handlers.ImageHandler
	validator       *auth.JWTValidator
	limiter         auth.RateLimiter
	trustGateway    bool
	enableCORS      bool
	logger          *zap.Logger
}

// NewRouter creates a new router instance. A nil validator disables
// server-mode token validation (the gateway authorizer handles it instead).
// trustGateway must be set only when the process runs behind the Lambda
// entrypoint, which sanitizes the identity headers.
func NewRouter(
	categoryHandler *handlers.CategoryHandler,
	tagHandler *handlers.TagHandler,
	itemHandler *handlers.ItemHandler,
	imageHandler *handlers.ImageHandler,
	validator *auth.JWTValidator,
	limiter auth.RateLimiter,
	trustGateway bool,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		categoryHandler: categoryHandler,
		tagHandler:      tagHandler,
		itemHandler:     itemHandler,
		imageHandler:    imageHandler,
		validator:       validator,
		limiter:         limiter,
		trustGateway:    trustGateway,
		enableCORS:      enableCORS,
		logger:          logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)

	router.Route("/api", func(r chi.Router) {
		// Resolves identity when credentials are present; reads stay open to
		// anonymous callers and the services gate mutations.
		r.Use(middleware.Authenticate(rt.validator, rt.limiter, rt.trustGateway, rt.logger))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", rt.categoryHandler.List)
			r.Post("/", rt.categoryHandler.Create)
			r.Get("/{categoryID}", rt.categoryHandler.Get)
			r.Put("/{categoryID}", rt.categoryHandler.Update)
			r.Delete("/{categoryID}", rt.categoryHandler.Delete)
			r.Post("/{categoryID}/items/bulk-delete", rt.categoryHandler.BulkDeleteItems)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", rt.tagHandler.List)
			r.Post("/", rt.tagHandler.Create)
			r.Get("/{tagID}", rt.tagHandler.Get)
			r.Put("/{tagID}", rt.tagHandler.Update)
			r.Delete("/{tagID}", rt.tagHandler.Delete)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", rt.itemHandler.Read)
			r.Post("/", rt.itemHandler.Create)
			r.Get("/{itemID}", rt.itemHandler.Get)
			r.Delete("/{itemID}", rt.itemHandler.Delete)
		})

		r.Route("/images", func(r chi.Router) {
			r.Post("/upload-url", rt.imageHandler.UploadURL)
			r.Post("/download-url", rt.imageHandler.DownloadURL)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
