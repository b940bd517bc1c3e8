// Package repo contains all storage access for the TravelBuddy API.
// Each resource has its own file with an interface and its implementations.
// No business logic lives here, only queries and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/travelbuddy/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PlanRepo stores the latest plan of each session.
type PlanRepo interface {
	// Save stores plan as the session's latest plan, replacing any earlier one.
	// The returned Plan has a fresh ID and CreatedAt.
	Save(ctx context.Context, plan domain.Plan) (domain.Plan, error)

	// GetBySession returns the session's latest plan.
	// Returns domain.ErrNotFound if the session has never planned a trip.
	GetBySession(ctx context.Context, sessionID uuid.UUID) (domain.Plan, error)
}

// pgPlanRepo is the Postgres implementation of PlanRepo.
type pgPlanRepo struct {
	db db
}

// NewPlanRepo constructs a PlanRepo backed by the provided db connection.
func NewPlanRepo(db db) PlanRepo {
	return &pgPlanRepo{db: db}
}

const planColumns = `id, session_id, request, flights, hotels, itinerary, guardrails, failed_stages, created_at`

// Save upserts on session_id so each session keeps exactly one plan.
func (r *pgPlanRepo) Save(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	const q = `
		INSERT INTO plans (session_id, request, flights, hotels, itinerary, guardrails, failed_stages)
		VALUES (@session_id, @request, @flights, @hotels, @itinerary, @guardrails, @failed_stages)
		ON CONFLICT (session_id) DO UPDATE
		SET id            = gen_random_uuid(),
		    request       = EXCLUDED.request,
		    flights       = EXCLUDED.flights,
		    hotels        = EXCLUDED.hotels,
		    itinerary     = EXCLUDED.itinerary,
		    guardrails    = EXCLUDED.guardrails,
		    failed_stages = EXCLUDED.failed_stages,
		    created_at    = now()
		RETURNING ` + planColumns

	res := plan.Result
	request, err := json.Marshal(res.Request)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Save: encode request: %w", err)
	}
	guardrails, err := json.Marshal(res.Guardrails)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Save: encode guardrails: %w", err)
	}
	failed := make([]string, len(res.FailedStages))
	for i, s := range res.FailedStages {
		failed[i] = string(s)
	}

	args := pgx.NamedArgs{
		"session_id":    plan.SessionID,
		"request":       request,
		"flights":       res.Flights,
		"hotels":        res.Hotels,
		"itinerary":     res.Itinerary,
		"guardrails":    guardrails,
		"failed_stages": failed,
	}

	saved, err := scanPlan(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Save: %w", err)
	}
	return saved, nil
}

// GetBySession retrieves the plan stored for sessionID.
func (r *pgPlanRepo) GetBySession(ctx context.Context, sessionID uuid.UUID) (domain.Plan, error) {
	q := `SELECT ` + planColumns + ` FROM plans WHERE session_id = @session_id`

	p, err := scanPlan(r.db.QueryRow(ctx, q, pgx.NamedArgs{"session_id": sessionID}))
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.GetBySession: %w", err)
	}
	return p, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanPlan maps a single row into a domain.Plan, decoding the JSONB columns.
func scanPlan(s scanner) (domain.Plan, error) {
	var (
		p          domain.Plan
		request    []byte
		guardrails []byte
		failed     []string
	)

	err := s.Scan(&p.ID, &p.SessionID, &request, &p.Result.Flights, &p.Result.Hotels,
		&p.Result.Itinerary, &guardrails, &failed, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Plan{}, domain.ErrNotFound
		}
		return domain.Plan{}, err
	}

	if err := json.Unmarshal(request, &p.Result.Request); err != nil {
		return domain.Plan{}, fmt.Errorf("decode request: %w", err)
	}
	if err := json.Unmarshal(guardrails, &p.Result.Guardrails); err != nil {
		return domain.Plan{}, fmt.Errorf("decode guardrails: %w", err)
	}
	for _, s := range failed {
		p.Result.FailedStages = append(p.Result.FailedStages, domain.Stage(s))
	}
	return p, nil
}
