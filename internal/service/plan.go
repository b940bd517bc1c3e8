// Package service contains the business logic for the TravelBuddy API.
// Services validate inputs, enforce business rules, and orchestrate the
// planner and the repos. No SQL or HTTP lives here.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travelbuddy/internal/domain"
	"github.com/pkordes/travelbuddy/internal/repo"
)

// Planner runs one planning pipeline. *planner.Planner satisfies it.
type Planner interface {
	Plan(ctx context.Context, req domain.TripRequest) domain.PlanResult
}

// PlanService plans trips and keeps each session's latest result.
type PlanService struct {
	planner Planner
	plans   repo.PlanRepo
}

// NewPlanService constructs a PlanService.
func NewPlanService(p Planner, plans repo.PlanRepo) *PlanService {
	return &PlanService{planner: p, plans: plans}
}

// Create validates req, runs the pipeline, and stores the result as the
// session's latest plan, replacing any earlier one.
// Returns domain.ErrValidation if req violates business rules.
//
// A stage that failed to generate does not fail Create; it is reported in
// the result's FailedStages.
func (s *PlanService) Create(ctx context.Context, sessionID uuid.UUID, req domain.TripRequest) (domain.Plan, error) {
	if err := req.Validate(); err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Create: %w", err)
	}

	result := s.planner.Plan(ctx, req)

	saved, err := s.plans.Save(ctx, domain.Plan{SessionID: sessionID, Result: result})
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Create: %w", err)
	}
	return saved, nil
}

// Latest returns the session's most recent plan.
// Returns domain.ErrNotFound if the session has not planned a trip yet.
func (s *PlanService) Latest(ctx context.Context, sessionID uuid.UUID) (domain.Plan, error) {
	p, err := s.plans.GetBySession(ctx, sessionID)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Latest: %w", err)
	}
	return p, nil
}
