// AngelaMos | 2026
// filter.go

package browse

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/carterperez-dev/dealership/internal/vehicle"
)

var ErrInvalidFilter = errors.New("invalid filter")

const all = "all"

// Filters is the browse query. Empty strings and "all" are inactive. Year
// is zero when inactive.
type Filters struct {
	Search       string
	Brand        string
	Year         int
	Transmission string
	FuelType     string
	Condition    string
	DriveType    string
	Status       string
	MinPrice     *float64
	MaxPrice     *float64
}

// ParseFilters reads the browse query string. Unparsable numbers are an
// error rather than silently ignored.
func ParseFilters(q url.Values) (Filters, error) {
	f := Filters{
		Search:       strings.TrimSpace(q.Get("search")),
		Brand:        choice(q.Get("brand")),
		Transmission: choice(q.Get("transmission")),
		FuelType:     choice(q.Get("fuel_type")),
		Condition:    choice(q.Get("condition")),
		DriveType:    choice(q.Get("drive_type")),
		Status:       choice(q.Get("status")),
	}

	if raw := choice(q.Get("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return Filters{}, fmt.Errorf("year %q: %w", raw, ErrInvalidFilter)
		}
		f.Year = year
	}

	var err error
	if f.MinPrice, err = parsePrice(q.Get("min_price")); err != nil {
		return Filters{}, fmt.Errorf("min_price: %w", err)
	}
	if f.MaxPrice, err = parsePrice(q.Get("max_price")); err != nil {
		return Filters{}, fmt.Errorf("max_price: %w", err)
	}

	return f, nil
}

func choice(v string) string {
	v = strings.TrimSpace(v)
	if v == all {
		return ""
	}
	return v
}

func parsePrice(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", raw, ErrInvalidFilter)
	}
	return &v, nil
}

// Match reports whether car passes every active predicate.
func (f Filters) Match(car *vehicle.Car) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(car.Brand), needle) &&
			!strings.Contains(strings.ToLower(car.Model), needle) &&
			!strings.Contains(strings.ToLower(car.StockNumber), needle) {
			return false
		}
	}

	switch {
	case f.Brand != "" && car.Brand != f.Brand:
		return false
	case f.MinPrice != nil && car.Price < *f.MinPrice:
		return false
	case f.MaxPrice != nil && car.Price > *f.MaxPrice:
		return false
	case f.Year != 0 && car.Year != f.Year:
		return false
	case f.Transmission != "" && car.Transmission != f.Transmission:
		return false
	case f.FuelType != "" && car.FuelType != f.FuelType:
		return false
	case f.Condition != "" && car.Condition != f.Condition:
		return false
	case f.DriveType != "" && car.DriveType != f.DriveType:
		return false
	case f.Status != "" && car.Status != f.Status:
		return false
	}

	return true
}

// Apply returns the matching cars in input order. cars is not modified.
func Apply(cars []vehicle.Car, f Filters) []vehicle.Car {
	out := make([]vehicle.Car, 0, len(cars))
	for i := range cars {
		if f.Match(&cars[i]) {
			out = append(out, cars[i])
		}
	}
	return out
}

// ActiveCount counts the filters a shopper has set. Search is not counted
// and a price range counts once.
func (f Filters) ActiveCount() int {
	n := 0
	for _, set := range []bool{
		f.Brand != "",
		f.MinPrice != nil || f.MaxPrice != nil,
		f.Year != 0,
		f.Transmission != "",
		f.FuelType != "",
		f.Condition != "",
		f.DriveType != "",
		f.Status != "",
	} {
		if set {
			n++
		}
	}
	return n
}
