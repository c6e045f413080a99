// Package kernel assembles the shop's HTTP handler: global middleware,
// routes, metrics and the not-found fallback.
package kernel

import (
	"net/http"
	"time"

	"github.com/xcursi322/prakt/app/routes"
	"github.com/xcursi322/prakt/config"
	"github.com/xcursi322/prakt/pkg/metrics"
	"github.com/xcursi322/prakt/pkg/middleware"
	"github.com/xcursi322/prakt/pkg/reqid"
	"github.com/xcursi322/prakt/pkg/response"
	"github.com/xcursi322/prakt/pkg/router"
	"github.com/xcursi322/prakt/pkg/session"
)

type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the router with the global middleware stack
// (outermost first):
//
//  1. metrics     total latency including everything below
//  2. reqid       request id before anything logs
//  3. Logger      request-scoped slog logger
//  4. Recovery    panics become 500s, logged with the request id
//  5. CORS
//  6. RateLimit   per-IP budget per minute
//  7. session     cookie session backed by pkg/cache
func NewHTTPKernel() (*HTTPKernel, error) {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(config.RateLimit(), time.Minute))
	r.Use(session.Middleware(session.DefaultOptions()))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})

	r.Handle("/metrics", "metrics", metrics.Handler())
	routes.RegisterWeb(r)
	if err := routes.RegisterAPI(r); err != nil {
		return nil, err
	}

	return &HTTPKernel{router: r}, nil
}

func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Routes returns the route table for `shop route:list`.
func (k *HTTPKernel) Routes() []router.Route {
	return k.router.Routes()
}
