// Package budget splits a trip budget between flights and lodging and picks
// the hotel that best fits what is left.
package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/travelbuddy/internal/domain"
)

// Allocation is the outcome of Allocate. NightlyCap is nil when flights
// already consume the whole budget; Hotel is nil when no option fits.
type Allocation struct {
	NightlyCap *decimal.Decimal
	Hotel      *domain.HotelOption
}

// Nights returns the number of whole days between start and end.
// The result may be zero or negative; Allocate guards against both.
func Nights(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}

// Allocate reserves minFlight per traveler for flights and spreads the rest of
// total over nights. minFlight may be nil, in which case flights cost nothing.
// A non-positive nights is treated as 1.
//
// The chosen hotel is the one with the highest nightly price that does not
// exceed the cap; equal prices resolve to the earliest option.
func Allocate(total decimal.Decimal, travelers, nights int, minFlight *decimal.Decimal, hotels []domain.HotelOption) Allocation {
	flightCost := decimal.Zero
	if minFlight != nil {
		flightCost = minFlight.Mul(decimal.NewFromInt(int64(travelers)))
	}

	remaining := total.Sub(flightCost)
	if !remaining.IsPositive() {
		return Allocation{}
	}

	if nights <= 0 {
		nights = 1
	}
	limit := remaining.Div(decimal.NewFromInt(int64(nights)))

	var best *domain.HotelOption
	for i := range hotels {
		h := hotels[i]
		if h.NightlyPrice.GreaterThan(limit) {
			continue
		}
		if best == nil || h.NightlyPrice.GreaterThan(best.NightlyPrice) {
			best = &h
		}
	}
	return Allocation{NightlyCap: &limit, Hotel: best}
}
