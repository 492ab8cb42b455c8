// Package server exposes the repository over HTTP: schema retrieval with
// content negotiation, validation, queries, and listings.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360studio/semshape/export"
	"github.com/c360studio/semshape/federate"
	"github.com/c360studio/semshape/query"
	"github.com/c360studio/semshape/shape"
	"github.com/c360studio/semshape/store"
	"github.com/c360studio/semshape/validate"
)

// maxRequestBodySize limits POST body sizes to prevent DoS.
const maxRequestBodySize = 4 << 20 // 4 MB

// Options wires the server's collaborators.
type Options struct {
	Store      *store.Store
	Compiler   *shape.Compiler
	Engine     *validate.Engine
	Queries    query.Engine
	Federation *federate.Resolver

	// IgnoreNamespaces is skipped during validation target inference.
	IgnoreNamespaces []string

	Logger *slog.Logger
}

// Server handles the HTTP surface. All state lives in its collaborators;
// handlers read one snapshot per request.
type Server struct {
	store      *store.Store
	compiler   *shape.Compiler
	engine     *validate.Engine
	queries    query.Engine
	federation *federate.Resolver
	renderer   *export.HTMLRenderer
	ignore     []string
	logger     *slog.Logger
}

// New creates a Server.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	queries := opts.Queries
	if queries == nil {
		queries = query.NewPatternEngine()
	}
	return &Server{
		store:      opts.Store,
		compiler:   opts.Compiler,
		engine:     opts.Engine,
		queries:    queries,
		federation: opts.Federation,
		renderer:   export.NewHTMLRenderer(),
		ignore:     opts.IgnoreNamespaces,
		logger:     logger,
	}
}

// Handler returns the routed HTTP handler. The catch-all schema route comes
// last; the mux prefers the more specific patterns.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /schemas", s.handleSchemas)
	mux.HandleFunc("GET /badschemas", s.handleBadSchemas)
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("POST /validate/{path...}", s.handleValidate)
	mux.HandleFunc("GET /{path...}", s.handleSchema)

	return s.withRequestLog(mux)
}

// withRequestLog tags every request with an ID and logs it at debug level.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)

		s.logger.Debug("Request handled",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}
