package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	core_port "github.com/alex-potenzzia/inmovilla-api-client/internal/core/port"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const corsMaxAge = 3600

var (
	corsAllowedMethods = []string{http.MethodPost, http.MethodGet, http.MethodOptions}
	corsAllowedHeaders = []string{"Content-Type", "Access-Control-Allow-Headers", "Authorization", "X-Requested-With"}
)

// ServerConfig - параметры HTTP-слоя.
type ServerConfig struct {
	Port           string
	BasePath       string
	AllowedOrigins []string
}

// Server - REST API сервер.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewRouter собирает chi-роутер со всеми middleware и маршрутами.
func NewRouter(cfg ServerConfig, handlers *PropertyHandler, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", contentTypeJSON))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: corsAllowedMethods,
		AllowedHeaders: corsAllowedHeaders,
		ExposedHeaders: []string{traceIDHeader},
		// на сколько секунд браузер может кэшировать результат preflight-запроса
		MaxAge: corsMaxAge,
	}))
	r.Use(DefaultCORSHeaders(cfg.AllowedOrigins))
	r.Use(PreflightMiddleware)
	r.Use(AllowMethods(http.MethodGet, http.MethodPost, http.MethodOptions))
	r.Use(StripBasePath(cfg.BasePath), middleware.StripSlashes)

	routeNotFound := func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusNotFound, "route not found")
	}
	r.NotFound(routeNotFound)
	// POST /property/{reference} - такого маршрута нет, а не "не тот метод".
	r.MethodNotAllowed(routeNotFound)

	r.Get("/property/{reference}", handlers.GetPropertyByReference)
	r.Get("/search", handlers.SearchFromQuery)
	r.Post("/search", handlers.SearchFromBody)

	return r
}

// NewServer создает новый экземпляр сервера.
func NewServer(cfg ServerConfig, handlers *PropertyHandler, baseLogger core_port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, handlers, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger.WithFields(core_port.Fields{"component": "rest_server"}),
	}
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
