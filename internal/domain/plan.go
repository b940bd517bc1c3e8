package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stage names one of the three generation calls in a planning run.
type Stage string

const (
	StageFlights   Stage = "flights"
	StageHotels    Stage = "hotels"
	StageItinerary Stage = "itinerary"
)

// Guardrails are the price constraints derived mid-pipeline from the flights
// and hotels text of the same run. Nil fields mean "not found".
type Guardrails struct {
	MinFlightPrice *decimal.Decimal `json:"min_flight_price,omitempty"`
	NightlyCap     *decimal.Decimal `json:"nightly_cap,omitempty"`
	ChosenHotel    *HotelOption     `json:"chosen_hotel,omitempty"`
}

// PlanResult is everything one planning run produced.
// A stage listed in FailedStages has an empty text.
type PlanResult struct {
	Request      TripRequest `json:"request"`
	Flights      string      `json:"flights"`
	Hotels       string      `json:"hotels"`
	Itinerary    string      `json:"itinerary"`
	Guardrails   Guardrails  `json:"guardrails"`
	FailedStages []Stage     `json:"failed_stages,omitempty"`
}

// Plan is a PlanResult stored as the latest plan of a session.
// Each new planning run for the session replaces the previous Plan.
type Plan struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Result    PlanResult
	CreatedAt time.Time
}
