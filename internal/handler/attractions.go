package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travelbuddy/internal/domain"
)

const (
	defaultRadius = 1000
	maxRadius     = 50000
	defaultLimit  = 20
	maxLimit      = 100
)

type attractionsResponse struct {
	City        string   `json:"city"`
	Attractions []string `json:"attractions"`
}

// ListAttractions handles GET /destinations/{city}/attractions.
// Supports ?radius= (metres, default 1000) and ?limit= (default 20, max 100).
func (s *Server) ListAttractions(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(chi.URLParam(r, "city"))
	if city == "" {
		badRequest(w, "city is required")
		return
	}
	radius, ok := intParam(r, "radius", defaultRadius, maxRadius)
	if !ok {
		badRequest(w, "radius must be between 1 and 50000")
		return
	}
	limit, ok := intParam(r, "limit", defaultLimit, maxLimit)
	if !ok {
		badRequest(w, "limit must be between 1 and 100")
		return
	}

	names, err := s.places.AttractionsForCity(r.Context(), city, radius, limit)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "city not found")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, attractionsResponse{City: city, Attractions: names})
}

// intParam reads an optional positive integer query parameter no larger
// than upper. A missing parameter yields fallback.
func intParam(r *http.Request, name string, fallback, upper int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > upper {
		return 0, false
	}
	return n, true
}
