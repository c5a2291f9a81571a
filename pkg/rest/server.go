package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/edgeflare/tastebud/pkg/catalog"
	"github.com/edgeflare/tastebud/pkg/httputil"
	"github.com/edgeflare/tastebud/pkg/httputil/middleware"
	"github.com/edgeflare/tastebud/pkg/metrics"
	"go.uber.org/zap"
)

const internalErrorMessage = "internal server error"

// Options configures a Server. The zero value serves at the root path with
// CORS open to every origin, no access log and failure text exposed in 500s
// only when ExposeErrors is set.
type Options struct {
	BaseURL      string
	ExposeErrors bool
	CORSOrigins  []string
	// AccessLog enables one log entry per request through Logger.
	AccessLog     bool
	Logger        *zap.Logger
	ServerOptions []func(*http.Server)
}

type Server struct {
	catalog      *catalog.Catalog
	router       *httputil.Router
	logger       *zap.Logger
	exposeErrors bool
}

// handlerFunc is a route handler that leaves failures to the Server.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func NewServer(cat *catalog.Catalog, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := httputil.NewRouter(
		httputil.WithLogger(logger),
		httputil.WithServerOptions(opts.ServerOptions...),
	)
	router.Use(middleware.RequestID)
	if opts.AccessLog {
		router.Use(middleware.LoggerWithOptions(&middleware.LoggerOptions{Logger: logger.Named("http")}))
	}
	router.Use(
		middleware.RecoverWithOptions(&middleware.RecoverOptions{Message: panicMessage(opts.ExposeErrors), Logger: logger}),
		middleware.CORSWithOptions(middleware.CORSForOrigins(opts.CORSOrigins)),
	)

	s := &Server{
		catalog:      cat,
		router:       router,
		logger:       logger,
		exposeErrors: opts.ExposeErrors,
	}
	s.registerRoutes(strings.TrimSuffix(opts.BaseURL, "/"))
	return s
}

func (s *Server) registerRoutes(baseURL string) {
	base := s.router.Group(baseURL)

	restaurants := base.Group("/restaurants")
	s.route(restaurants, "GET", "", "No restaurants found", s.listRestaurants)
	s.route(restaurants, "GET", "/details/{id}", "No restaurant of this id found", s.getRestaurant)
	s.route(restaurants, "GET", "/cuisine/{cuisine}", "No restaurants of this cuisine found", s.restaurantsByCuisine)
	s.route(restaurants, "GET", "/filter", "No restaurants found for your selection", s.filterRestaurants)
	s.route(restaurants, "GET", "/sort-by-rating", "No restaurants found", s.restaurantsByRating)

	dishes := base.Group("/dishes")
	s.route(dishes, "GET", "", "No dishes found", s.listDishes)
	s.route(dishes, "GET", "/details/{id}", "No dish found for the given id", s.getDish)
	s.route(dishes, "GET", "/filter", "No dishes found of your selection", s.filterDishes)
	s.route(dishes, "GET", "/sort-by-price", "No dishes found", s.dishesByPrice)

	base.HandleFunc("GET /healthz", s.healthz)
}

func (s *Server) route(g *httputil.Router, method, pattern, notFound string, fn handlerFunc) {
	g.Handle(method+" "+pattern, s.handle(g.Prefix()+pattern, notFound, fn))
}

// handle writes fn's result: nothing more on success, 404 for
// catalog.ErrNotFound, 400 for *ParamError and 500 otherwise.
func (s *Server) handle(route, notFound string, fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := middleware.NewResponseRecorder(w)
		defer func() {
			metrics.HTTPResponses.WithLabelValues(route, strconv.Itoa(rec.StatusCode)).Inc()
		}()

		err := fn(rec, r)
		if err == nil {
			return
		}

		var paramErr *ParamError
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			httputil.Message(rec, http.StatusNotFound, notFound)
		case errors.As(err, &paramErr):
			httputil.Error(rec, http.StatusBadRequest, paramErr.Error())
		default:
			s.logger.Error("request failed",
				zap.String("req_id", httputil.RequestID(r)),
				zap.String("route", route),
				zap.Error(err),
			)
			msg := internalErrorMessage
			if s.exposeErrors {
				msg = err.Error()
			}
			httputil.Error(rec, http.StatusInternalServerError, msg)
		}
	}
}

// panicMessage renders a recovered panic under the same exposeErrors rule as
// handler errors.
func panicMessage(expose bool) func(v any) string {
	return func(v any) string {
		if expose {
			return fmt.Sprint(v)
		}
		return internalErrorMessage
	}
}

// Handler returns the routes wrapped in the request id, access log, recover
// and CORS middleware.
func (s *Server) Handler() http.Handler {
	return s.router.Handler()
}

func (s *Server) ListenAndServe(addr string) error {
	return s.router.ListenAndServe(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.router.Shutdown(ctx)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Ping(r.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		msg := "store unavailable"
		if s.exposeErrors {
			msg = err.Error()
		}
		httputil.Error(w, http.StatusServiceUnavailable, msg)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
