package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travelbuddy/internal/domain"
	"github.com/pkordes/travelbuddy/internal/extract"
	"github.com/pkordes/travelbuddy/internal/middleware"
)

const (
	// defaultOrigin is used when a plan request names no origin city.
	defaultOrigin = "Toronto"

	// flightMarker starts each flight option in generated flights text.
	flightMarker = "Airline:"
)

// tripBody is the wire form of domain.TripRequest. Dates travel as
// YYYY-MM-DD; the budget accepts a JSON number or string.
type tripBody struct {
	Origin      string             `json:"origin"`
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Travelers   int                `json:"travelers"`
	Budget      decimal.Decimal    `json:"budget"`
	Mood        domain.Mood        `json:"mood"`
	Pace        domain.Pace        `json:"pace"`
	Eco         bool               `json:"eco"`
	Interests   []string           `json:"interests,omitempty"`
}

type planResponse struct {
	ID            uuid.UUID            `json:"id"`
	SessionID     uuid.UUID            `json:"session_id"`
	CreatedAt     time.Time            `json:"created_at"`
	Request       tripBody             `json:"request"`
	Flights       string               `json:"flights"`
	FlightOptions []string             `json:"flight_options"`
	Hotels        string               `json:"hotels"`
	HotelOptions  []domain.HotelOption `json:"hotel_options"`
	MinNightly    *decimal.Decimal     `json:"min_nightly,omitempty"`
	Itinerary     string               `json:"itinerary"`
	Guardrails    domain.Guardrails    `json:"guardrails"`
	FailedStages  []domain.Stage       `json:"failed_stages"`
}

// CreatePlan handles POST /plans.
// Stage failures still produce a 201; they are listed in failed_stages.
func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var body tripBody
	if !decodeBody(w, r, &body) {
		return
	}

	plan, err := s.plans.Create(r.Context(), middleware.SessionID(r.Context()), bodyToRequest(body))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, planToResponse(plan))
}

// GetLatestPlan handles GET /plans/latest.
func (s *Server) GetLatestPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.plans.Latest(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "no plan for this session")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, planToResponse(plan))
}

// --- mapping helpers --------------------------------------------------------

// bodyToRequest converts the wire body into a domain.TripRequest, filling
// the boundary defaults for origin, mood and pace.
func bodyToRequest(b tripBody) domain.TripRequest {
	req := domain.TripRequest{
		Origin:      strings.TrimSpace(b.Origin),
		Destination: strings.TrimSpace(b.Destination),
		StartDate:   b.StartDate.Time,
		EndDate:     b.EndDate.Time,
		Travelers:   b.Travelers,
		Budget:      b.Budget,
		Mood:        b.Mood,
		Pace:        b.Pace,
		Eco:         b.Eco,
		Interests:   b.Interests,
	}
	if req.Origin == "" {
		req.Origin = defaultOrigin
	}
	if req.Mood == "" {
		req.Mood = domain.MoodBalanced
	}
	if req.Pace == "" {
		req.Pace = domain.PaceBalanced
	}
	return req
}

func requestToBody(req domain.TripRequest) tripBody {
	return tripBody{
		Origin:      req.Origin,
		Destination: req.Destination,
		StartDate:   openapi_types.Date{Time: req.StartDate},
		EndDate:     openapi_types.Date{Time: req.EndDate},
		Travelers:   req.Travelers,
		Budget:      req.Budget,
		Mood:        req.Mood,
		Pace:        req.Pace,
		Eco:         req.Eco,
		Interests:   req.Interests,
	}
}

// planToResponse converts a stored plan into its response, splitting the
// flights text into options and parsing the hotel listings.
func planToResponse(p domain.Plan) planResponse {
	res := p.Result
	resp := planResponse{
		ID:            p.ID,
		SessionID:     p.SessionID,
		CreatedAt:     p.CreatedAt,
		Request:       requestToBody(res.Request),
		Flights:       res.Flights,
		FlightOptions: []string{},
		Hotels:        res.Hotels,
		HotelOptions:  extract.ParseHotels(res.Hotels),
		Itinerary:     res.Itinerary,
		Guardrails:    res.Guardrails,
		FailedStages:  []domain.Stage{},
	}
	for _, block := range extract.SplitOptions(res.Flights, flightMarker) {
		resp.FlightOptions = append(resp.FlightOptions, string(block))
	}
	if n, ok := extract.MinNightly(res.Hotels); ok {
		resp.MinNightly = &n
	}
	if len(res.FailedStages) > 0 {
		resp.FailedStages = res.FailedStages
	}
	return resp
}
