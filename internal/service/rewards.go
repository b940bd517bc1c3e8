package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/travelbuddy/internal/domain"
	"github.com/pkordes/travelbuddy/internal/repo"
)

// earnRules is the base number of points awarded per action.
var earnRules = map[domain.EarnKind]int64{
	domain.EarnFlightBooking: 200,
	domain.EarnHotelBooking:  150,
	domain.EarnReview:        25,
	domain.EarnLocalReview:   50,
}

// ecoMultiplier boosts every award for travellers in eco mode. Fractions of
// a point are dropped.
const (
	ecoNumerator   = 3
	ecoDenominator = 2
)

// catalog lists the rewards that can be redeemed, cheapest first.
var catalog = []domain.Reward{
	{Cost: 500, Discount: 25},
	{Cost: 900, Discount: 50},
	{Cost: 1600, Discount: 100},
}

// RewardsService applies the points rules on top of a PointsStore.
// Eco mode is taken from the session's latest plan, never from the caller.
type RewardsService struct {
	points repo.PointsStore
	plans  repo.PlanRepo
}

// NewRewardsService constructs a RewardsService. With a nil plans repo no
// session is ever in eco mode.
func NewRewardsService(points repo.PointsStore, plans repo.PlanRepo) *RewardsService {
	return &RewardsService{points: points, plans: plans}
}

// PointsFor returns the award for qty actions of kind, with the eco bonus
// applied when eco is set. Unknown kinds earn nothing.
func PointsFor(kind domain.EarnKind, qty int, eco bool) int64 {
	base := earnRules[kind] * int64(qty)
	if eco {
		return base * ecoNumerator / ecoDenominator
	}
	return base
}

// Balance returns the session's points.
func (s *RewardsService) Balance(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	bal, err := s.points.Balance(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("service.RewardsService.Balance: %w", err)
	}
	return bal, nil
}

// Earn credits the session for one action of kind and returns the new
// balance. The eco bonus applies when the session's latest plan was an eco
// trip. Returns domain.ErrValidation for an unknown kind.
func (s *RewardsService) Earn(ctx context.Context, sessionID uuid.UUID, kind domain.EarnKind) (int64, error) {
	if _, ok := earnRules[kind]; !ok {
		return 0, fmt.Errorf("service.RewardsService.Earn: %w: unknown kind %q", domain.ErrValidation, kind)
	}
	eco, err := s.ecoMode(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("service.RewardsService.Earn: %w", err)
	}
	bal, err := s.points.Add(ctx, sessionID, PointsFor(kind, 1, eco))
	if err != nil {
		return 0, fmt.Errorf("service.RewardsService.Earn: %w", err)
	}
	return bal, nil
}

// ecoMode reports whether the session last planned an eco trip. A session
// without a plan is not in eco mode.
func (s *RewardsService) ecoMode(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	if s.plans == nil {
		return false, nil
	}
	plan, err := s.plans.GetBySession(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return plan.Result.Request.Eco, nil
}

// Redeem spends points on the catalogue reward costing cost.
// Returns domain.ErrValidation if no reward has that cost and
// domain.ErrInsufficientPoints if the balance is too low.
func (s *RewardsService) Redeem(ctx context.Context, sessionID uuid.UUID, cost int64) (domain.Reward, int64, error) {
	reward, ok := rewardByCost(cost)
	if !ok {
		return domain.Reward{}, 0, fmt.Errorf("service.RewardsService.Redeem: %w: no reward costs %d points", domain.ErrValidation, cost)
	}
	bal, err := s.points.Spend(ctx, sessionID, reward.Cost)
	if err != nil {
		return domain.Reward{}, 0, fmt.Errorf("service.RewardsService.Redeem: %w", err)
	}
	return reward, bal, nil
}

// Catalog returns the redeemable rewards, cheapest first.
func (s *RewardsService) Catalog() []domain.Reward {
	return slices.Clone(catalog)
}

func rewardByCost(cost int64) (domain.Reward, bool) {
	for _, r := range catalog {
		if r.Cost == cost {
			return r, true
		}
	}
	return domain.Reward{}, false
}
