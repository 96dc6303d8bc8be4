// AngelaMos | 2026
// facets.go

package browse

import (
	"slices"

	"github.com/carterperez-dev/dealership/internal/vehicle"
)

// Facets are the distinct values offered in the browse filter menus.
type Facets struct {
	Brands        []string `json:"brands"`
	Years         []int    `json:"years"`
	Transmissions []string `json:"transmissions"`
	FuelTypes     []string `json:"fuel_types"`
	Conditions    []string `json:"conditions"`
	DriveTypes    []string `json:"drive_types"`
	Statuses      []string `json:"statuses"`
}

// ExtractFacets collects sorted distinct values. Years run newest first;
// empty drive types and statuses are skipped.
func ExtractFacets(cars []vehicle.Car) Facets {
	years := distinct(cars, func(c vehicle.Car) (int, bool) { return c.Year, true })
	slices.Reverse(years)

	return Facets{
		Brands:        distinct(cars, func(c vehicle.Car) (string, bool) { return c.Brand, true }),
		Years:         years,
		Transmissions: distinct(cars, func(c vehicle.Car) (string, bool) { return c.Transmission, true }),
		FuelTypes:     distinct(cars, func(c vehicle.Car) (string, bool) { return c.FuelType, true }),
		Conditions:    distinct(cars, func(c vehicle.Car) (string, bool) { return c.Condition, true }),
		DriveTypes:    distinct(cars, func(c vehicle.Car) (string, bool) { return c.DriveType, c.DriveType != "" }),
		Statuses:      distinct(cars, func(c vehicle.Car) (string, bool) { return c.Status, c.Status != "" }),
	}
}

func distinct[T string | int](cars []vehicle.Car, pick func(vehicle.Car) (T, bool)) []T {
	seen := make(map[T]struct{}, len(cars))
	out := []T{}
	for _, c := range cars {
		v, ok := pick(c)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
