package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkordes/travelbuddy/internal/domain"
	"github.com/pkordes/travelbuddy/internal/repo"
)

// recentTips is how many tips ListRecent returns per destination.
const recentTips = 5

// TipService stores local tips and rewards the people who write them.
type TipService struct {
	tips    repo.TipRepo
	rewards *RewardsService
}

// NewTipService constructs a TipService.
func NewTipService(tips repo.TipRepo, rewards *RewardsService) *TipService {
	return &TipService{tips: tips, rewards: rewards}
}

// Create validates and stores a tip, then awards review points (local
// review points when tip.IsLocal, with the session's eco bonus). It returns the stored tip and the new
// points balance.
func (s *TipService) Create(ctx context.Context, tip domain.Tip) (domain.Tip, int64, error) {
	tip.Destination = strings.TrimSpace(tip.Destination)
	tip.Place = strings.TrimSpace(tip.Place)
	tip.Text = strings.TrimSpace(tip.Text)
	tip.Author = strings.TrimSpace(tip.Author)
	if tip.Author == "" {
		tip.Author = "Anonymous"
	}
	if err := validateTip(tip); err != nil {
		return domain.Tip{}, 0, fmt.Errorf("service.TipService.Create: %w", err)
	}

	created, err := s.tips.Create(ctx, tip)
	if err != nil {
		return domain.Tip{}, 0, fmt.Errorf("service.TipService.Create: %w", err)
	}

	kind := domain.EarnReview
	if tip.IsLocal {
		kind = domain.EarnLocalReview
	}
	bal, err := s.rewards.Earn(ctx, tip.SessionID, kind)
	if err != nil {
		return domain.Tip{}, 0, fmt.Errorf("service.TipService.Create: %w", err)
	}
	return created, bal, nil
}

// ListRecent returns the newest tips for destination.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TipService) ListRecent(ctx context.Context, destination string) ([]domain.Tip, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, fmt.Errorf("service.TipService.ListRecent: %w: destination is required", domain.ErrValidation)
	}
	tips, err := s.tips.ListByDestination(ctx, destination, recentTips)
	if err != nil {
		return nil, fmt.Errorf("service.TipService.ListRecent: %w", err)
	}
	if tips == nil {
		return []domain.Tip{}, nil
	}
	return tips, nil
}

// validateTip enforces the rules for a new tip.
//   - Destination, Place and Text must be non-empty.
//   - Text is at most domain.MaxTipLength characters.
//   - Rating is between 1 and 5.
func validateTip(t domain.Tip) error {
	switch {
	case t.Destination == "":
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	case t.Place == "":
		return fmt.Errorf("%w: place is required", domain.ErrValidation)
	case t.Text == "":
		return fmt.Errorf("%w: tip is required", domain.ErrValidation)
	case utf8.RuneCountInString(t.Text) > domain.MaxTipLength:
		return fmt.Errorf("%w: tip must be at most %d characters", domain.ErrValidation, domain.MaxTipLength)
	case t.Rating < 1 || t.Rating > 5:
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	return nil
}
