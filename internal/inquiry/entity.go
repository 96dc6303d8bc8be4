// AngelaMos | 2026
// entity.go

package inquiry

import (
	"slices"
	"time"
)

const (
	StatusPending   = "pending"
	StatusContacted = "contacted"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var Statuses = []string{
	StatusPending,
	StatusContacted,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

func IsValidStatus(s string) bool {
	return slices.Contains(Statuses, s)
}

type Inquiry struct {
	ID            string    `db:"id"             json:"id"`
	CarID         string    `db:"car_id"         json:"car_id"`
	UserID        string    `db:"user_id"        json:"user_id"`
	Name          string    `db:"name"           json:"name"`
	Email         string    `db:"email"          json:"email"`
	City          string    `db:"city"           json:"city"`
	ContactNumber string    `db:"contact_number" json:"contact_number"`
	Message       string    `db:"inquiry"        json:"inquiry"`
	Status        string    `db:"status"         json:"status"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"     json:"updated_at"`
}

// CarSummary is the slice of a vehicle listing shown next to an inquiry.
// Price is only loaded for single-inquiry reads.
type CarSummary struct {
	ID          string   `db:"id"           json:"id"`
	Brand       string   `db:"brand"        json:"brand"`
	Model       string   `db:"model"        json:"model"`
	Year        int      `db:"year"         json:"year"`
	StockNumber string   `db:"stock_number" json:"stock_number"`
	Price       *float64 `db:"price"        json:"price,omitempty"`
}

type InquiryWithCar struct {
	Inquiry
	Car CarSummary `db:"car" json:"cars"`
}
