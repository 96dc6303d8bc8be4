// AngelaMos | 2026
// dto.go

package vehicle

import (
	"encoding/json"

	"github.com/carterperez-dev/dealership/internal/core"
)

// CreateCarRequest lists the required fields first, in the order their
// absence is reported. Zero numbers count as missing.
type CreateCarRequest struct {
	StockNumber  string  `json:"stock_number" validate:"required,max=64"`
	Brand        string  `json:"brand"        validate:"required,max=100"`
	Model        string  `json:"model"        validate:"required,max=100"`
	Year         int     `json:"year"         validate:"required,gte=1886,lte=2100"`
	Month        int     `json:"month"        validate:"required,gte=1,lte=12"`
	Mileage      int     `json:"mileage"      validate:"required,gte=0"`
	FuelType     string  `json:"fuel_type"    validate:"required,max=50"`
	Transmission string  `json:"transmission" validate:"required,max=50"`
	Price        float64 `json:"price"        validate:"required,gt=0"`
	Condition    string  `json:"condition"    validate:"required,max=50"`

	EngineSize      string   `json:"engine_size"      validate:"max=50"`
	Horsepower      int      `json:"horsepower"       validate:"gte=0"`
	DriveType       string   `json:"drive_type"       validate:"max=50"`
	ExteriorColor   string   `json:"exterior_color"   validate:"max=50"`
	InteriorColor   string   `json:"interior_color"   validate:"max=50"`
	NumberOfDoors   int      `json:"number_of_doors"  validate:"gte=0,lte=10"`
	SeatingCapacity int      `json:"seating_capacity" validate:"gte=0,lte=100"`
	VIN             string   `json:"vin"              validate:"max=32"`
	Description     string   `json:"description"      validate:"max=10000"`
	Features        []string `json:"features"`
	ImageURLs       []string `json:"image_urls"`
	Status          string   `json:"status"`
}

func (r *CreateCarRequest) ToCar(createdBy string) *Car {
	status := r.Status
	if status == "" {
		status = StatusAvailable
	}

	return &Car{
		StockNumber:     r.StockNumber,
		Brand:           r.Brand,
		Model:           r.Model,
		Year:            r.Year,
		Month:           r.Month,
		Mileage:         r.Mileage,
		FuelType:        r.FuelType,
		Transmission:    r.Transmission,
		Price:           r.Price,
		EngineSize:      r.EngineSize,
		Horsepower:      r.Horsepower,
		DriveType:       r.DriveType,
		ExteriorColor:   r.ExteriorColor,
		InteriorColor:   r.InteriorColor,
		NumberOfDoors:   r.NumberOfDoors,
		SeatingCapacity: r.SeatingCapacity,
		VIN:             r.VIN,
		Condition:       r.Condition,
		Description:     r.Description,
		Features:        StringList(r.Features),
		ImageURLs:       StringList(r.ImageURLs),
		Status:          status,
		CreatedBy:       &createdBy,
	}
}

// UpdateCarRequest is a partial update. Nil fields are left untouched.
// Server-owned columns are accepted and discarded.
type UpdateCarRequest struct {
	ID        json.RawMessage `json:"id"         validate:"-"`
	CreatedAt json.RawMessage `json:"created_at" validate:"-"`
	CreatedBy json.RawMessage `json:"created_by" validate:"-"`
	UpdatedAt json.RawMessage `json:"updated_at" validate:"-"`

	StockNumber     *string   `json:"stock_number"     validate:"omitempty,max=64"`
	Brand           *string   `json:"brand"            validate:"omitempty,max=100"`
	Model           *string   `json:"model"            validate:"omitempty,max=100"`
	Year            *int      `json:"year"             validate:"omitempty,gte=1886,lte=2100"`
	Month           *int      `json:"month"            validate:"omitempty,gte=1,lte=12"`
	Mileage         *int      `json:"mileage"          validate:"omitempty,gte=0"`
	FuelType        *string   `json:"fuel_type"        validate:"omitempty,max=50"`
	Transmission    *string   `json:"transmission"     validate:"omitempty,max=50"`
	Price           *float64  `json:"price"            validate:"omitempty,gt=0"`
	EngineSize      *string   `json:"engine_size"      validate:"omitempty,max=50"`
	Horsepower      *int      `json:"horsepower"       validate:"omitempty,gte=0"`
	DriveType       *string   `json:"drive_type"       validate:"omitempty,max=50"`
	ExteriorColor   *string   `json:"exterior_color"   validate:"omitempty,max=50"`
	InteriorColor   *string   `json:"interior_color"   validate:"omitempty,max=50"`
	NumberOfDoors   *int      `json:"number_of_doors"  validate:"omitempty,gte=0,lte=10"`
	SeatingCapacity *int      `json:"seating_capacity" validate:"omitempty,gte=0,lte=100"`
	VIN             *string   `json:"vin"              validate:"omitempty,max=32"`
	Condition       *string   `json:"condition"        validate:"omitempty,max=50"`
	Description     *string   `json:"description"      validate:"omitempty,max=10000"`
	Features        *[]string `json:"features"`
	ImageURLs       *[]string `json:"image_urls"`
	Status          *string   `json:"status"`
}

// Column is one assignment in a partial update.
type Column struct {
	Name  string
	Value any
}

// Changes returns the columns to set, in a fixed order.
func (r *UpdateCarRequest) Changes() []Column {
	var cols []Column
	add := func(name string, set bool, v any) {
		if set {
			cols = append(cols, Column{Name: name, Value: v})
		}
	}

	add("stock_number", r.StockNumber != nil, deref(r.StockNumber))
	add("brand", r.Brand != nil, deref(r.Brand))
	add("model", r.Model != nil, deref(r.Model))
	add("year", r.Year != nil, deref(r.Year))
	add("month", r.Month != nil, deref(r.Month))
	add("mileage", r.Mileage != nil, deref(r.Mileage))
	add("fuel_type", r.FuelType != nil, deref(r.FuelType))
	add("transmission", r.Transmission != nil, deref(r.Transmission))
	add("price", r.Price != nil, deref(r.Price))
	add("engine_size", r.EngineSize != nil, deref(r.EngineSize))
	add("horsepower", r.Horsepower != nil, deref(r.Horsepower))
	add("drive_type", r.DriveType != nil, deref(r.DriveType))
	add("exterior_color", r.ExteriorColor != nil, deref(r.ExteriorColor))
	add("interior_color", r.InteriorColor != nil, deref(r.InteriorColor))
	add("number_of_doors", r.NumberOfDoors != nil, deref(r.NumberOfDoors))
	add("seating_capacity", r.SeatingCapacity != nil, deref(r.SeatingCapacity))
	add("vin", r.VIN != nil, deref(r.VIN))
	add("condition", r.Condition != nil, deref(r.Condition))
	add("description", r.Description != nil, deref(r.Description))
	add("features", r.Features != nil, StringList(deref(r.Features)))
	add("image_urls", r.ImageURLs != nil, StringList(deref(r.ImageURLs)))
	add("status", r.Status != nil, deref(r.Status))

	return cols
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

type CarResponse struct {
	Message string `json:"message,omitempty"`
	Car     *Car   `json:"car"`
}

type CarListResponse struct {
	Cars []Car `json:"cars"`
}

type CarPageResponse struct {
	Cars       []Car `json:"cars"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int   `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ListCarsParams drives the dashboard table. Empty Search and Status, or
// Status "all", disable those filters.
type ListCarsParams struct {
	Page     int
	PageSize int
	Search   string
	Status   string
}

func (p *ListCarsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = core.DashboardPageSize
	}
	if p.PageSize > core.MaxPageSize {
		p.PageSize = core.MaxPageSize
	}
	if p.Status == "all" {
		p.Status = ""
	}
}

func (p *ListCarsParams) Offset() int {
	return core.Offset(p.Page, p.PageSize)
}
