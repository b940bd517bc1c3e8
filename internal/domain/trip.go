// Package domain contains the core data types for the TravelBuddy API.
// It is imported by every other internal package (extract, budget, planner,
// repo, service, handler) and depends only on uuid and decimal.
package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Mood is the overall feel the traveller wants from the trip.
type Mood string

const (
	MoodBalanced  Mood = "balanced"
	MoodRelax     Mood = "relax"
	MoodAdventure Mood = "adventure"
	MoodCulture   Mood = "culture"
	MoodRomantic  Mood = "romantic"
	MoodSurprise  Mood = "surprise"
)

var moods = []Mood{MoodBalanced, MoodRelax, MoodAdventure, MoodCulture, MoodRomantic, MoodSurprise}

// Valid reports whether m is one of the known moods.
func (m Mood) Valid() bool { return slices.Contains(moods, m) }

// Pace is how densely the itinerary should be scheduled.
type Pace string

const (
	PaceRelaxed  Pace = "relaxed"
	PaceBalanced Pace = "balanced"
	PacePacked   Pace = "packed"
)

var paces = []Pace{PaceRelaxed, PaceBalanced, PacePacked}

// Valid reports whether p is one of the known paces.
func (p Pace) Valid() bool { return slices.Contains(paces, p) }

// TripRequest carries the preferences for one planning action.
// It is built once per request and treated as immutable afterwards.
//
// Budget is a unit-less amount; the currency label is a display concern.
type TripRequest struct {
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	Travelers   int             `json:"travelers"`
	Budget      decimal.Decimal `json:"budget"`
	Mood        Mood            `json:"mood"`
	Pace        Pace            `json:"pace"`
	Eco         bool            `json:"eco"`
	Interests   []string        `json:"interests,omitempty"`
}

// Validate enforces the rules every TripRequest must satisfy before it is
// planned. Failures wrap ErrValidation.
func (r TripRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Destination) == "":
		return fmt.Errorf("%w: destination is required", ErrValidation)
	case strings.TrimSpace(r.Origin) == "":
		return fmt.Errorf("%w: origin is required", ErrValidation)
	case r.StartDate.IsZero() || r.EndDate.IsZero():
		return fmt.Errorf("%w: start_date and end_date are required", ErrValidation)
	case r.EndDate.Before(r.StartDate):
		return fmt.Errorf("%w: end_date must not be before start_date", ErrValidation)
	case r.Travelers < 1:
		return fmt.Errorf("%w: travelers must be at least 1", ErrValidation)
	case r.Budget.IsNegative():
		return fmt.Errorf("%w: budget must not be negative", ErrValidation)
	case !r.Mood.Valid():
		return fmt.Errorf("%w: unknown mood %q", ErrValidation, r.Mood)
	case !r.Pace.Valid():
		return fmt.Errorf("%w: unknown pace %q", ErrValidation, r.Pace)
	}
	return nil
}
