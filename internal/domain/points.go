package domain

// EarnKind identifies an action that earns points.
type EarnKind string

const (
	EarnFlightBooking EarnKind = "flight_booking"
	EarnHotelBooking  EarnKind = "hotel_booking"
	EarnReview        EarnKind = "review"
	EarnLocalReview   EarnKind = "local_review"
)

// Reward is a redeemable discount in the rewards catalogue.
// Discount is a whole-unit amount in the display currency.
type Reward struct {
	Cost     int64 `json:"cost"`
	Discount int64 `json:"discount"`
}
