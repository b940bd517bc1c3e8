package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbuddy/internal/domain"
	"github.com/pkordes/travelbuddy/internal/handler"
)

type mockAttractionFinder struct {
	attractionsForCity func(ctx context.Context, city string, radius, limit int) ([]string, error)
}

func (m *mockAttractionFinder) AttractionsForCity(ctx context.Context, city string, radius, limit int) ([]string, error) {
	return m.attractionsForCity(ctx, city, radius, limit)
}

var _ handler.AttractionFinder = (*mockAttractionFinder)(nil)

func newPlacesHandler(f handler.AttractionFinder) http.Handler {
	return newHTTPHandler(handler.NewServer(nil, nil, nil, f, nil))
}

func TestListAttractions_Defaults(t *testing.T) {
	h := newPlacesHandler(&mockAttractionFinder{attractionsForCity: func(_ context.Context, city string, radius, limit int) ([]string, error) {
		assert.Equal(t, "Rome", city)
		assert.Equal(t, 1000, radius)
		assert.Equal(t, 20, limit)
		return []string{"Colosseum", "Pantheon"}, nil
	}})

	req := httptest.NewRequest(http.MethodGet, "/destinations/Rome/attractions", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"city":"Rome","attractions":["Colosseum","Pantheon"]}`, rec.Body.String())
}

func TestListAttractions_QueryParams(t *testing.T) {
	h := newPlacesHandler(&mockAttractionFinder{attractionsForCity: func(_ context.Context, city string, radius, limit int) ([]string, error) {
		assert.Equal(t, "New York", city)
		assert.Equal(t, 2500, radius)
		assert.Equal(t, 5, limit)
		return nil, nil
	}})

	req := httptest.NewRequest(http.MethodGet, "/destinations/New%20York/attractions?radius=2500&limit=5", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"city":"New York","attractions":[]}`, rec.Body.String())
}

func TestListAttractions_BadParams_Return422(t *testing.T) {
	h := newPlacesHandler(&mockAttractionFinder{})

	for _, q := range []string{"radius=0", "radius=abc", "limit=101", "limit=-1"} {
		req := httptest.NewRequest(http.MethodGet, "/destinations/Rome/attractions?"+q, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, q)
	}
}

func TestListAttractions_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"missing key", fmt.Errorf("geodata.Client.Geocode: %w", domain.ErrMissingCredential), http.StatusServiceUnavailable, "upstream_unavailable"},
		{"upstream failure", fmt.Errorf("geodata.Client.Geocode: %w", domain.ErrRequestFailed), http.StatusBadGateway, "upstream_unavailable"},
		{"unknown city", fmt.Errorf("geodata.Client.Geocode: %w", domain.ErrNotFound), http.StatusNotFound, "not_found"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newPlacesHandler(&mockAttractionFinder{attractionsForCity: func(context.Context, string, int, int) ([]string, error) {
				return nil, tc.err
			}})

			req := httptest.NewRequest(http.MethodGet, "/destinations/Atlantis/attractions", nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tc.status, rec.Code)
			code, _ := decodeError(t, rec)
			assert.Equal(t, tc.code, code)
		})
	}
}
