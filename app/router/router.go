package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"capsule-os/app/controller"
)

type Controllers struct {
	Capsule  *controller.CapsuleController
	Analysis *controller.AnalysisController
	Closet   *controller.ClosetController
	Product  *controller.ProductController
	Lookbook *controller.LookbookController
}

// Options configures the cross-cutting middleware
type Options struct {
	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// healthHandler handles GET / and GET /api/health
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","service":"capsule-os"}`))
}

// SetupRoutes builds the HTTP handler for every API route
func SetupRoutes(controllers *Controllers, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         86400,
	}))

	// Health and metrics
	r.Get("/", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler)

		r.Group(func(r chi.Router) {
			if opts.RateLimitRequests > 0 {
				r.Use(httprate.Limit(opts.RateLimitRequests, opts.RateLimitWindow, httprate.WithKeyFuncs(httprate.KeyByIP)))
			}

			// Capsule generation
			r.Post("/generate-capsule", controllers.Capsule.GenerateCapsule)
			r.Post("/capsule/lookbook", controllers.Lookbook.ExportLookbook)

			// Item analysis
			r.Post("/analyze-item", controllers.Analysis.AnalyzeItem)

			// Catalog browse
			r.Get("/products", controllers.Product.ListProducts)

			// Closet
			r.Post("/closet/upload", controllers.Closet.UploadCloset)
			r.Get("/closet", controllers.Closet.GetCloset)
		})
	})

	return r
}
