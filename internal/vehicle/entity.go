// AngelaMos | 2026
// entity.go

package vehicle

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

const (
	StatusAvailable = "available"
	StatusSold      = "sold"
	StatusPending   = "pending"
	StatusReserved  = "reserved"
)

var Statuses = []string{
	StatusAvailable,
	StatusSold,
	StatusPending,
	StatusReserved,
}

func IsValidStatus(s string) bool {
	return slices.Contains(Statuses, s)
}

// StringList is a JSONB array of strings.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return b, nil
}

func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

// Car is a vehicle listing row. It is also the wire shape returned by the
// API.
type Car struct {
	ID              string     `db:"id"               json:"id"`
	StockNumber     string     `db:"stock_number"     json:"stock_number"`
	Brand           string     `db:"brand"            json:"brand"`
	Model           string     `db:"model"            json:"model"`
	Year            int        `db:"year"             json:"year"`
	Month           int        `db:"month"            json:"month"`
	Mileage         int        `db:"mileage"          json:"mileage"`
	FuelType        string     `db:"fuel_type"        json:"fuel_type"`
	Transmission    string     `db:"transmission"     json:"transmission"`
	Price           float64    `db:"price"            json:"price"`
	EngineSize      string     `db:"engine_size"      json:"engine_size"`
	Horsepower      int        `db:"horsepower"       json:"horsepower"`
	DriveType       string     `db:"drive_type"       json:"drive_type"`
	ExteriorColor   string     `db:"exterior_color"   json:"exterior_color"`
	InteriorColor   string     `db:"interior_color"   json:"interior_color"`
	NumberOfDoors   int        `db:"number_of_doors"  json:"number_of_doors"`
	SeatingCapacity int        `db:"seating_capacity" json:"seating_capacity"`
	VIN             string     `db:"vin"              json:"vin"`
	Condition       string     `db:"condition"        json:"condition"`
	Description     string     `db:"description"      json:"description"`
	Features        StringList `db:"features"         json:"features"`
	ImageURLs       StringList `db:"image_urls"       json:"image_urls"`
	Status          string     `db:"status"           json:"status"`
	CreatedBy       *string    `db:"created_by"       json:"created_by"`
	CreatedAt       time.Time  `db:"created_at"       json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"       json:"updated_at"`
}
