package handler

import (
	"net/http"

	"github.com/pkordes/travelbuddy/internal/domain"
	"github.com/pkordes/travelbuddy/internal/middleware"
)

type pointsResponse struct {
	Balance int64           `json:"balance"`
	Catalog []domain.Reward `json:"catalog"`
}

type earnRequest struct {
	Kind domain.EarnKind `json:"kind"`
}

type balanceResponse struct {
	Balance int64 `json:"balance"`
}

type redeemRequest struct {
	Cost int64 `json:"cost"`
}

type redeemResponse struct {
	Reward  domain.Reward `json:"reward"`
	Balance int64         `json:"balance"`
}

// GetPoints handles GET /points.
func (s *Server) GetPoints(w http.ResponseWriter, r *http.Request) {
	bal, err := s.rewards.Balance(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pointsResponse{Balance: bal, Catalog: s.rewards.Catalog()})
}

// EarnPoints handles POST /points/earn.
// Only bookings are earned here; review points come with POST /tips.
// The eco bonus follows the session's latest plan.
func (s *Server) EarnPoints(w http.ResponseWriter, r *http.Request) {
	var body earnRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Kind != domain.EarnFlightBooking && body.Kind != domain.EarnHotelBooking {
		badRequest(w, "kind must be flight_booking or hotel_booking")
		return
	}

	bal, err := s.rewards.Earn(r.Context(), middleware.SessionID(r.Context()), body.Kind)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Balance: bal})
}

// RedeemPoints handles POST /points/redeem.
// Returns 409 when the balance does not cover the reward.
func (s *Server) RedeemPoints(w http.ResponseWriter, r *http.Request) {
	var body redeemRequest
	if !decodeBody(w, r, &body) {
		return
	}

	reward, bal, err := s.rewards.Redeem(r.Context(), middleware.SessionID(r.Context()), body.Cost)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, redeemResponse{Reward: reward, Balance: bal})
}
