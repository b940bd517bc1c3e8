package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travelbuddy/internal/domain"
	"github.com/pkordes/travelbuddy/internal/middleware"
)

type tipRequest struct {
	Destination string `json:"destination"`
	Place       string `json:"place"`
	Tip         string `json:"tip"`
	Rating      int    `json:"rating"`
	IsLocal     bool   `json:"is_local"`
	Author      string `json:"author"`
}

type tipResponse struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	Place       string    `json:"place"`
	Tip         string    `json:"tip"`
	Rating      int       `json:"rating"`
	IsLocal     bool      `json:"is_local"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
}

type createTipResponse struct {
	Tip     tipResponse `json:"tip"`
	Balance int64       `json:"balance"`
}

type tipListResponse struct {
	Data []tipResponse `json:"data"`
}

// CreateTip handles POST /tips.
// The response carries the points balance after the review award.
func (s *Server) CreateTip(w http.ResponseWriter, r *http.Request) {
	var body tipRequest
	if !decodeBody(w, r, &body) {
		return
	}

	tip := domain.Tip{
		SessionID:   middleware.SessionID(r.Context()),
		Destination: body.Destination,
		Place:       body.Place,
		Text:        body.Tip,
		Rating:      body.Rating,
		IsLocal:     body.IsLocal,
		Author:      body.Author,
	}
	created, bal, err := s.tips.Create(r.Context(), tip)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createTipResponse{Tip: tipToResponse(created), Balance: bal})
}

// ListTips handles GET /tips?destination=.
func (s *Server) ListTips(w http.ResponseWriter, r *http.Request) {
	tips, err := s.tips.ListRecent(r.Context(), r.URL.Query().Get("destination"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	data := make([]tipResponse, len(tips))
	for i, t := range tips {
		data[i] = tipToResponse(t)
	}
	writeJSON(w, http.StatusOK, tipListResponse{Data: data})
}

func tipToResponse(t domain.Tip) tipResponse {
	return tipResponse{
		ID:          t.ID,
		Destination: t.Destination,
		Place:       t.Place,
		Tip:         t.Text,
		Rating:      t.Rating,
		IsLocal:     t.IsLocal,
		Author:      t.Author,
		CreatedAt:   t.CreatedAt,
	}
}
