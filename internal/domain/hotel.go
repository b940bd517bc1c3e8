package domain

import "github.com/shopspring/decimal"

// HotelOption is one lodging recommendation parsed out of generated text.
// It lives only for the duration of one planning run.
type HotelOption struct {
	Name         string          `json:"name"`
	Area         string          `json:"area"`
	NightlyPrice decimal.Decimal `json:"nightly_price"`
}

// OptionBlock is the raw text of one generated option (a flight itinerary or
// a hotel listing). It carries no parsed meaning.
type OptionBlock string
