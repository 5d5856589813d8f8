// Package kernel assembles the HTTP handler: global middleware, the
// operational endpoints and the API routes.
package kernel

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bizapi/app/routes"
	"github.com/shashiranjanraj/bizapi/config"
	"github.com/shashiranjanraj/bizapi/pkg/cache"
	"github.com/shashiranjanraj/bizapi/pkg/metrics"
	"github.com/shashiranjanraj/bizapi/pkg/middleware"
	"github.com/shashiranjanraj/bizapi/pkg/reqid"
	"github.com/shashiranjanraj/bizapi/pkg/response"
	"github.com/shashiranjanraj/bizapi/pkg/router"
)

type HTTPKernel struct {
	router *router.Router
	db     *gorm.DB
}

// NewHTTPKernel wires every route against db and the read cache. A nil db
// is accepted for route listing.
func NewHTTPKernel(db *gorm.DB, store cache.Store) *HTTPKernel {
	if store == nil {
		store = cache.Nop{}
	}

	k := &HTTPKernel{router: router.New(), db: db}
	r := k.router

	// Global middleware, outermost first. Metrics wraps everything so its
	// latency includes recovery; the request ID exists before anything logs.
	// StripSlashes makes "/api/roles/" route like "/api/roles". The limiter
	// is off unless RATE_LIMIT > 0 and keys on RemoteAddr, which RealIP only
	// rewrites when TRUST_PROXY is set.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(chimw.StripSlashes)
	if config.TrustProxy() {
		r.Use(chimw.RealIP)
	}

	cors := middleware.DefaultCORSOptions()
	cors.AllowedOrigins = config.CORSOrigins()
	r.Use(middleware.CORS(cors))
	r.Use(middleware.RateLimit(config.RateLimit(), time.Minute))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Message(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Message(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Handle("/metrics", "metrics", metrics.Handler())
	r.Get("/health", "health", k.health)

	routes.RegisterAPI(r, routes.Deps{DB: db, Cache: store, CacheTTL: config.CacheTTL()})
	return k
}

func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Routes lists every registered route.
func (k *HTTPKernel) Routes() []router.RouteInfo {
	return k.router.Routes()
}

// health reports ok while the database answers a ping.
func (k *HTTPKernel) health(w http.ResponseWriter, r *http.Request) {
	if k.db != nil {
		sqlDB, err := k.db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			response.Fail(w, http.StatusServiceUnavailable, "unavailable", err)
			return
		}
	}
	response.Message(w, http.StatusOK, "ok")
}
