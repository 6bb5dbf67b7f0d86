// Package server provides the JSON API HTTP server
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/config"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/http/handlers"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/http/middleware"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/inbound"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
	"github.com/chamchi6619/pantry-app-v1-sub004/pkg/healthcheck"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	router *chi.Mux
	server *http.Server
	health *healthcheck.HealthCheck

	matchService    inbound.MatchService
	pantryService   inbound.PantryService
	catalogService  inbound.CatalogService
	oovService      inbound.OOVService
	shoppingService inbound.ShoppingService
	ruleRepo        outbound.SubstitutionRepository
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	health *healthcheck.HealthCheck,
	matchService inbound.MatchService,
	pantryService inbound.PantryService,
	catalogService inbound.CatalogService,
	oovService inbound.OOVService,
	shoppingService inbound.ShoppingService,
	ruleRepo outbound.SubstitutionRepository,
) *Server {
	s := &Server{
		config:          cfg,
		logger:          logger,
		health:          health,
		matchService:    matchService,
		pantryService:   pantryService,
		catalogService:  catalogService,
		oovService:      oovService,
		shoppingService: shoppingService,
		ruleRepo:        ruleRepo,
	}

	s.router = s.setupRouter()
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// setupRouter configures the router and all API routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.JSONOnly())

	r.Get("/health", s.health.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIRoutes(r)
	})

	return r
}

// setupAPIRoutes configures the v1 API endpoints
func (s *Server) setupAPIRoutes(r chi.Router) {
	matchH := handlers.NewMatchHandlers(s.matchService, s.logger)
	pantryH := handlers.NewPantryHandlers(s.pantryService, s.logger)
	catalogH := handlers.NewCatalogHandlers(s.catalogService, s.logger)
	oovH := handlers.NewOOVHandlers(s.oovService, s.logger)
	shoppingH := handlers.NewShoppingHandlers(s.shoppingService, s.logger)
	ruleH := handlers.NewRuleHandlers(s.ruleRepo, s.logger)

	r.Post("/match", matchH.ComputeMatches)

	r.Route("/households/{householdID}", func(r chi.Router) {
		r.Post("/pantry", pantryH.AddEntry)
		r.Get("/pantry", pantryH.ListEntries)
		r.Post("/recipes", catalogH.IngestRecipe)
		r.Post("/shopping-list", shoppingH.BuildList)
	})

	r.Route("/pantry/{entryID}", func(r chi.Router) {
		r.Patch("/quantity", pantryH.SetQuantity)
		r.Delete("/", pantryH.ArchiveEntry)
	})

	r.Post("/templates/{templateID}/save", catalogH.SaveFromTemplate)
	r.Patch("/recipes/{recipeID}/ingredients/{ingredientID}/critical", catalogH.OverrideCritical)
	r.Patch("/recipes/{recipeID}/ingredients/{ingredientID}/staple", catalogH.OverrideStaple)

	r.Get("/oov/review", oovH.ReviewList)
	r.Post("/vocabulary/promote", oovH.Promote)

	r.Route("/substitutions", func(r chi.Router) {
		r.Post("/", ruleH.CreateRule)
		r.Delete("/{ruleID}", ruleH.DeleteRule)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
