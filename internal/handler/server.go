// Package handler implements the HTTP handlers for the TravelBuddy API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, plan.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/travelbuddy/internal/domain"
)

// PlanServicer defines the planning operations the plan handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the planner, the LLM or the database.
type PlanServicer interface {
	Create(ctx context.Context, sessionID uuid.UUID, req domain.TripRequest) (domain.Plan, error)
	Latest(ctx context.Context, sessionID uuid.UUID) (domain.Plan, error)
}

// RewardsServicer defines the points operations.
type RewardsServicer interface {
	Balance(ctx context.Context, sessionID uuid.UUID) (int64, error)
	Earn(ctx context.Context, sessionID uuid.UUID, kind domain.EarnKind) (int64, error)
	Redeem(ctx context.Context, sessionID uuid.UUID, cost int64) (domain.Reward, int64, error)
	Catalog() []domain.Reward
}

// TipServicer defines the local tips operations.
type TipServicer interface {
	Create(ctx context.Context, tip domain.Tip) (domain.Tip, int64, error)
	ListRecent(ctx context.Context, destination string) ([]domain.Tip, error)
}

// AttractionFinder looks up points of interest near a city.
// *geodata.Client satisfies it.
type AttractionFinder interface {
	AttractionsForCity(ctx context.Context, city string, radius, limit int) ([]string, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	plans   PlanServicer
	rewards RewardsServicer
	tips    TipServicer
	places  AttractionFinder
	openAPI []byte
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(plans PlanServicer, rewards RewardsServicer, tips TipServicer, places AttractionFinder, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{plans: plans, rewards: rewards, tips: tips, places: places, log: log}
}

// WithOpenAPI sets the API description served at GET /openapi.yaml.
func (s *Server) WithOpenAPI(doc []byte) *Server {
	s.openAPI = doc
	return s
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil, nil)
}

// Routes returns a router with every endpoint registered.
// Session-scoped endpoints expect middleware.Session to run first.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Post("/plans", s.CreatePlan)
	r.Get("/plans/latest", s.GetLatestPlan)

	r.Get("/points", s.GetPoints)
	r.Post("/points/earn", s.EarnPoints)
	r.Post("/points/redeem", s.RedeemPoints)

	r.Post("/tips", s.CreateTip)
	r.Get("/tips", s.ListTips)

	r.Get("/destinations/{city}/attractions", s.ListAttractions)

	return r
}
