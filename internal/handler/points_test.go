package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbuddy/internal/domain"
	"github.com/pkordes/travelbuddy/internal/handler"
	"github.com/pkordes/travelbuddy/internal/middleware"
	"github.com/pkordes/travelbuddy/internal/repo"
	"github.com/pkordes/travelbuddy/internal/service"
)

type mockRewardsServicer struct {
	balance func(ctx context.Context, sessionID uuid.UUID) (int64, error)
	earn    func(ctx context.Context, sessionID uuid.UUID, kind domain.EarnKind) (int64, error)
	redeem  func(ctx context.Context, sessionID uuid.UUID, cost int64) (domain.Reward, int64, error)
}

func (m *mockRewardsServicer) Balance(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	return m.balance(ctx, sessionID)
}
func (m *mockRewardsServicer) Earn(ctx context.Context, sessionID uuid.UUID, kind domain.EarnKind) (int64, error) {
	return m.earn(ctx, sessionID, kind)
}
func (m *mockRewardsServicer) Redeem(ctx context.Context, sessionID uuid.UUID, cost int64) (domain.Reward, int64, error) {
	return m.redeem(ctx, sessionID, cost)
}
func (m *mockRewardsServicer) Catalog() []domain.Reward {
	return []domain.Reward{{Cost: 500, Discount: 25}, {Cost: 900, Discount: 50}}
}

var _ handler.RewardsServicer = (*mockRewardsServicer)(nil)

func newRewardsHandler(svc handler.RewardsServicer) http.Handler {
	return newHTTPHandler(handler.NewServer(nil, svc, nil, nil, nil))
}

func TestGetPoints_BalanceAndCatalog(t *testing.T) {
	h := newRewardsHandler(&mockRewardsServicer{
		balance: func(context.Context, uuid.UUID) (int64, error) { return 640, nil },
	})

	req := httptest.NewRequest(http.MethodGet, "/points", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Balance int64           `json:"balance"`
		Catalog []domain.Reward `json:"catalog"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(640), body.Balance)
	assert.Len(t, body.Catalog, 2)
}

func TestEarnPoints_Booking(t *testing.T) {
	session := uuid.New()
	var gotKind domain.EarnKind
	h := newRewardsHandler(&mockRewardsServicer{
		earn: func(_ context.Context, id uuid.UUID, kind domain.EarnKind) (int64, error) {
			assert.Equal(t, session, id)
			gotKind = kind
			return 300, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/points/earn", jsonBody(t, map[string]any{"kind": "flight_booking"}))
	req.Header.Set(middleware.SessionHeader, session.String())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.EarnFlightBooking, gotKind)
	assert.JSONEq(t, `{"balance":300}`, rec.Body.String())
}

// TestEarnPoints_IgnoresClientEcoFlag runs the real rewards service: a
// session without an eco plan earns the base award whatever the body says.
func TestEarnPoints_IgnoresClientEcoFlag(t *testing.T) {
	h := newRewardsHandler(service.NewRewardsService(repo.NewMemoryPointsStore(), nil))

	req := httptest.NewRequest(http.MethodPost, "/points/earn", jsonBody(t, map[string]any{"kind": "flight_booking", "eco": true}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"balance":200}`, rec.Body.String())
}

func TestEarnPoints_RejectsReviewKinds(t *testing.T) {
	h := newRewardsHandler(&mockRewardsServicer{})

	for _, kind := range []string{"review", "local_review", "referral", ""} {
		req := httptest.NewRequest(http.MethodPost, "/points/earn", jsonBody(t, map[string]any{"kind": kind}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "kind %q", kind)
	}
}

func TestRedeemPoints_OK(t *testing.T) {
	h := newRewardsHandler(&mockRewardsServicer{
		redeem: func(_ context.Context, _ uuid.UUID, cost int64) (domain.Reward, int64, error) {
			return domain.Reward{Cost: cost, Discount: 25}, 100, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/points/redeem", jsonBody(t, map[string]any{"cost": 500}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reward":{"cost":500,"discount":25},"balance":100}`, rec.Body.String())
}

func TestRedeemPoints_Insufficient_Returns409(t *testing.T) {
	h := newRewardsHandler(&mockRewardsServicer{
		redeem: func(context.Context, uuid.UUID, int64) (domain.Reward, int64, error) {
			return domain.Reward{}, 0, fmt.Errorf("service.RewardsService.Redeem: %w", domain.ErrInsufficientPoints)
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/points/redeem", jsonBody(t, map[string]any{"cost": 1600}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	code, _ := decodeError(t, rec)
	assert.Equal(t, "insufficient_points", code)
}

func TestRedeemPoints_UnknownCost_Returns422(t *testing.T) {
	h := newRewardsHandler(&mockRewardsServicer{
		redeem: func(context.Context, uuid.UUID, int64) (domain.Reward, int64, error) {
			return domain.Reward{}, 0, fmt.Errorf("service.RewardsService.Redeem: %w: no reward costs 42 points", domain.ErrValidation)
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/points/redeem", jsonBody(t, map[string]any{"cost": 42}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	_, msg := decodeError(t, rec)
	assert.Equal(t, "no reward costs 42 points", msg)
}
