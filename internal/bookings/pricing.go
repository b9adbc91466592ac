package bookings

import (
	"math"

	"eventplanner/internal/catalog"
)

// CalculateCost prices a booking. Per-hour services default to one hour
// when either time is missing; unknown price types charge the flat base
// price. A time range that does not move forward is rejected whatever the
// price type.
func CalculateCost(priceType catalog.PriceType, basePrice float64, quantity int, start, end *TimeOfDay) (float64, error) {
	if start != nil && end != nil && !start.Before(*end) {
		return 0, ErrInvalidTimeRange
	}

	var cost float64
	switch priceType {
	case catalog.PriceTypePerPerson, catalog.PriceTypePerMeal:
		cost = basePrice * float64(quantity)
	case catalog.PriceTypePerHour:
		hours := 1.0
		if start != nil && end != nil {
			hours = float64(end.Minutes()-start.Minutes()) / 60
		}
		cost = basePrice * hours
	default:
		cost = basePrice
	}

	return roundCents(cost), nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
