// AngelaMos | 2026
// sort.go

package browse

import (
	"cmp"
	"slices"

	"github.com/carterperez-dev/dealership/internal/vehicle"
)

const (
	SortNewest      = "newest"
	SortOldest      = "oldest"
	SortPriceLow    = "price-low"
	SortPriceHigh   = "price-high"
	SortMileageLow  = "mileage-low"
	SortMileageHigh = "mileage-high"
	SortYearNew     = "year-new"
	SortYearOld     = "year-old"
)

var SortKeys = []string{
	SortNewest,
	SortOldest,
	SortPriceLow,
	SortPriceHigh,
	SortMileageLow,
	SortMileageHigh,
	SortYearNew,
	SortYearOld,
}

// NormalizeSort maps unknown keys to SortNewest.
func NormalizeSort(key string) string {
	if slices.Contains(SortKeys, key) {
		return key
	}
	return SortNewest
}

// Sort returns a sorted copy of cars. Input is assumed newest first, so
// "newest" keeps it and "oldest" reverses it. Ties keep input order.
func Sort(cars []vehicle.Car, key string) []vehicle.Car {
	out := slices.Clone(cars)
	if out == nil {
		out = []vehicle.Car{}
	}

	switch NormalizeSort(key) {
	case SortOldest:
		slices.Reverse(out)
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b vehicle.Car) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b vehicle.Car) int { return cmp.Compare(b.Price, a.Price) })
	case SortMileageLow:
		slices.SortStableFunc(out, func(a, b vehicle.Car) int { return cmp.Compare(a.Mileage, b.Mileage) })
	case SortMileageHigh:
		slices.SortStableFunc(out, func(a, b vehicle.Car) int { return cmp.Compare(b.Mileage, a.Mileage) })
	case SortYearNew:
		slices.SortStableFunc(out, func(a, b vehicle.Car) int { return cmp.Compare(b.Year, a.Year) })
	case SortYearOld:
		slices.SortStableFunc(out, func(a, b vehicle.Car) int { return cmp.Compare(a.Year, b.Year) })
	}

	return out
}
