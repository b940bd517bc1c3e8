package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/travelbuddy/internal/domain"
)

// TipRepo defines the persistence operations for local tips.
type TipRepo interface {
	// Create inserts a tip and returns it with its generated ID and CreatedAt.
	Create(ctx context.Context, tip domain.Tip) (domain.Tip, error)

	// ListByDestination returns up to limit tips for destination, newest
	// first. Destination matching ignores case.
	ListByDestination(ctx context.Context, destination string, limit int) ([]domain.Tip, error)
}

// pgTipRepo is the Postgres implementation of TipRepo.
type pgTipRepo struct {
	db db
}

// NewTipRepo constructs a TipRepo backed by the provided db connection.
func NewTipRepo(db db) TipRepo {
	return &pgTipRepo{db: db}
}

const tipColumns = `id, session_id, destination, place, text, rating, is_local, author, created_at`

// Create inserts a new tip row.
func (r *pgTipRepo) Create(ctx context.Context, tip domain.Tip) (domain.Tip, error) {
	const q = `
		INSERT INTO tips (session_id, destination, place, text, rating, is_local, author)
		VALUES (@session_id, @destination, @place, @text, @rating, @is_local, @author)
		RETURNING ` + tipColumns

	args := pgx.NamedArgs{
		"session_id":  tip.SessionID,
		"destination": tip.Destination,
		"place":       tip.Place,
		"text":        tip.Text,
		"rating":      tip.Rating,
		"is_local":    tip.IsLocal,
		"author":      tip.Author,
	}

	created, err := scanTip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Tip{}, fmt.Errorf("repo.TipRepo.Create: %w", err)
	}
	return created, nil
}

// ListByDestination returns the newest tips for a destination.
func (r *pgTipRepo) ListByDestination(ctx context.Context, destination string, limit int) ([]domain.Tip, error) {
	const q = `
		SELECT ` + tipColumns + `
		FROM tips
		WHERE lower(destination) = lower(@destination)
		ORDER BY created_at DESC, id
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"destination": destination, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.TipRepo.ListByDestination: %w", err)
	}
	defer rows.Close()

	var tips []domain.Tip
	for rows.Next() {
		t, err := scanTip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TipRepo.ListByDestination: scan: %w", err)
		}
		tips = append(tips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TipRepo.ListByDestination: rows: %w", err)
	}
	return tips, nil
}

func scanTip(s scanner) (domain.Tip, error) {
	var (
		t      domain.Tip
		rating int16
	)
	err := s.Scan(&t.ID, &t.SessionID, &t.Destination, &t.Place, &t.Text, &rating, &t.IsLocal, &t.Author, &t.CreatedAt)
	if err != nil {
		return domain.Tip{}, err
	}
	t.Rating = int(rating)
	return t, nil
}
