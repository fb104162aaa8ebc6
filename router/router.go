package router

import (
	"net/http"

	"bankist/handler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Handlers groups everything the router mounts. With a nil Auth only the
// public routes are served.
type Handlers struct {
	Session     *handler.SessionHandler
	Account     *handler.AccountHandler
	Transaction *handler.TransactionHandler
	Stream      *handler.StreamHandler
	Auth        func(http.Handler) http.Handler
}

// NewRouter builds the HTTP API. reg receives the request metrics and is
// served on /metrics; nil means the default Prometheus registry.
func NewRouter(h Handlers, reg *prometheus.Registry) http.Handler {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if reg != nil {
		registerer, gatherer = reg, reg
	}
	metrics := newHTTPMetrics(registerer)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	if h.Auth == nil {
		return mux
	}

	mux.Handle("POST /login", metrics.instrument("/login", handler.ErrorHandlingMiddleware(h.Session.Login)))

	api := func(pattern, route string, fn http.Handler) {
		mux.Handle(pattern, metrics.instrument(route, h.Auth(fn)))
	}
	api("POST /api/logout", "/api/logout", handler.ErrorHandlingMiddleware(h.Session.Logout))
	api("GET /api/session", "/api/session", handler.ErrorHandlingMiddleware(h.Session.Session))
	api("GET /api/account", "/api/account", handler.ErrorHandlingMiddleware(h.Account.GetAccount))
	api("GET /api/activity", "/api/activity", handler.ErrorHandlingMiddleware(h.Account.ListActivity))
	api("POST /api/transfers", "/api/transfers", handler.ErrorHandlingMiddleware(h.Transaction.CreateTransfer))
	api("POST /api/loans", "/api/loans", handler.ErrorHandlingMiddleware(h.Transaction.RequestLoan))
	api("POST /api/account/close", "/api/account/close", handler.ErrorHandlingMiddleware(h.Transaction.CloseAccount))

	// the recorder would hide http.Hijacker from the websocket upgrade
	mux.Handle("GET /api/stream", h.Auth(http.HandlerFunc(h.Stream.Stream)))

	return mux
}
