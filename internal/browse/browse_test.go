// AngelaMos | 2026
// browse_test.go

package browse

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dealership/internal/vehicle"
)

func ptr(v float64) *float64 { return &v }

// inventory is ordered newest first, the way the store returns it.
func inventory() []vehicle.Car {
	return []vehicle.Car{
		{ID: "1", StockNumber: "STK-001", Brand: "Toyota", Model: "Corolla", Year: 2022, Mileage: 12000, Price: 21000, Transmission: "automatic", FuelType: "petrol", Condition: "used", DriveType: "fwd", Status: "available"},
		{ID: "2", StockNumber: "STK-002", Brand: "Honda", Model: "Civic", Year: 2020, Mileage: 30000, Price: 18000, Transmission: "manual", FuelType: "petrol", Condition: "used", Status: "sold"},
		{ID: "3", StockNumber: "STK-003", Brand: "Toyota", Model: "Camry", Year: 2024, Mileage: 50, Price: 32000, Transmission: "automatic", FuelType: "hybrid", Condition: "new", DriveType: "fwd", Status: "available"},
		{ID: "4", StockNumber: "STK-004", Brand: "BMW", Model: "X5", Year: 2021, Mileage: 41000, Price: 45000, Transmission: "automatic", FuelType: "diesel", Condition: "used", DriveType: "awd", Status: "reserved"},
		{ID: "5", StockNumber: "STK-005", Brand: "Honda", Model: "Jazz", Year: 2020, Mileage: 30000, Price: 18000, Transmission: "automatic", FuelType: "petrol", Condition: "used", Status: "pending"},
	}
}

func ids(cars []vehicle.Car) []string {
	out := make([]string, len(cars))
	for i, c := range cars {
		out[i] = c.ID
	}
	return out
}

func TestParseFilters(t *testing.T) {
	q := url.Values{
		"search":       {"  civic "},
		"brand":        {"Honda"},
		"year":         {"2020"},
		"transmission": {"all"},
		"min_price":    {"1000"},
		"max_price":    {""},
	}

	f, err := ParseFilters(q)
	require.NoError(t, err)

	assert.Equal(t, "civic", f.Search)
	assert.Equal(t, "Honda", f.Brand)
	assert.Equal(t, 2020, f.Year)
	assert.Empty(t, f.Transmission)
	require.NotNil(t, f.MinPrice)
	assert.InDelta(t, 1000, *f.MinPrice, 0)
	assert.Nil(t, f.MaxPrice)
}

func TestParseFiltersRejectsBadNumbers(t *testing.T) {
	for _, q := range []url.Values{
		{"year": {"twenty"}},
		{"min_price": {"cheap"}},
		{"max_price": {"1e"}},
	} {
		_, err := ParseFilters(q)
		assert.ErrorIs(t, err, ErrInvalidFilter, "query %v", q)
	}
}

func TestApplyIsSubsetAndAND(t *testing.T) {
	cars := inventory()

	tests := []struct {
		name string
		f    Filters
		want []string
	}{
		{"no filters", Filters{}, []string{"1", "2", "3", "4", "5"}},
		{"search brand case-insensitive", Filters{Search: "toyota"}, []string{"1", "3"}},
		{"search stock number", Filters{Search: "stk-004"}, []string{"4"}},
		{"search model", Filters{Search: "jAZ"}, []string{"5"}},
		{"brand and transmission", Filters{Brand: "Honda", Transmission: "automatic"}, []string{"5"}},
		{"price inclusive bounds", Filters{MinPrice: ptr(18000), MaxPrice: ptr(21000)}, []string{"1", "2", "5"}},
		{"year", Filters{Year: 2020}, []string{"2", "5"}},
		{"drive type", Filters{DriveType: "fwd"}, []string{"1", "3"}},
		{"status", Filters{Status: "reserved"}, []string{"4"}},
		{"no match", Filters{Brand: "Toyota", FuelType: "diesel"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(cars, tt.f)
			assert.Equal(t, tt.want, ids(got))

			for _, c := range got {
				assert.True(t, tt.f.Match(&c))
			}
		})
	}

	assert.Equal(t, inventory(), cars, "input must not be mutated")
}

func TestSort(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{SortNewest, []string{"1", "2", "3", "4", "5"}},
		{"", []string{"1", "2", "3", "4", "5"}},
		{"bogus", []string{"1", "2", "3", "4", "5"}},
		{SortOldest, []string{"5", "4", "3", "2", "1"}},
		{SortPriceLow, []string{"2", "5", "1", "3", "4"}},
		{SortPriceHigh, []string{"4", "3", "1", "2", "5"}},
		{SortMileageLow, []string{"3", "1", "2", "5", "4"}},
		{SortMileageHigh, []string{"4", "2", "5", "1", "3"}},
		{SortYearNew, []string{"3", "1", "4", "2", "5"}},
		{SortYearOld, []string{"2", "5", "4", "1", "3"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("key=%q", tt.key), func(t *testing.T) {
			cars := inventory()
			got := Sort(cars, tt.key)

			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, inventory(), cars)
			assert.Len(t, got, len(cars))
		})
	}
}

func TestSortEmpty(t *testing.T) {
	got := Sort(nil, SortPriceLow)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRunPagination(t *testing.T) {
	cars := make([]vehicle.Car, 0, 25)
	for i := range 25 {
		cars = append(cars, vehicle.Car{ID: fmt.Sprint(i), Brand: "Ford", Price: float64(i)})
	}

	first := Run(cars, Filters{}, SortNewest, 1, 12)
	assert.Len(t, first.Cars, 12)
	assert.Equal(t, 25, first.Total)
	assert.Equal(t, 3, first.TotalPages)

	last := Run(cars, Filters{}, SortNewest, 3, 12)
	assert.Equal(t, []string{"24"}, ids(last.Cars))

	clamped := Run(cars, Filters{}, SortNewest, 0, 12)
	assert.Equal(t, 1, clamped.Page)
	assert.Equal(t, ids(first.Cars), ids(clamped.Cars))

	beyond := Run(cars, Filters{}, SortNewest, 9, 12)
	assert.Empty(t, beyond.Cars)
	assert.Equal(t, 25, beyond.Total)

	empty := Run(nil, Filters{}, SortNewest, 1, 12)
	assert.Empty(t, empty.Cars)
	assert.Zero(t, empty.TotalPages)
}

func TestExtractFacets(t *testing.T) {
	f := ExtractFacets(inventory())

	assert.Equal(t, []string{"BMW", "Honda", "Toyota"}, f.Brands)
	assert.Equal(t, []int{2024, 2022, 2021, 2020}, f.Years)
	assert.Equal(t, []string{"automatic", "manual"}, f.Transmissions)
	assert.Equal(t, []string{"diesel", "hybrid", "petrol"}, f.FuelTypes)
	assert.Equal(t, []string{"new", "used"}, f.Conditions)
	assert.Equal(t, []string{"awd", "fwd"}, f.DriveTypes)
	assert.Equal(t, []string{"available", "pending", "reserved", "sold"}, f.Statuses)
}

func TestActiveCount(t *testing.T) {
	assert.Zero(t, Filters{Search: "anything"}.ActiveCount())
	assert.Equal(t, 1, Filters{MinPrice: ptr(1), MaxPrice: ptr(2)}.ActiveCount())
	assert.Equal(t, 3, Filters{Brand: "BMW", Year: 2021, MaxPrice: ptr(50000)}.ActiveCount())
}
