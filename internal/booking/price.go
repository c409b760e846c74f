package booking

import (
	"math"
	"time"
)

// ComputePrice returns the total price for renting at the given daily rate
// between pickup and return. Partial days round up and at least one day is
// always charged, so a same-day rental costs one day.
func ComputePrice(pricePerDay float64, pickup, ret time.Time) float64 {
	days := int(math.Ceil(ret.Sub(pickup).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return pricePerDay * float64(days)
}
