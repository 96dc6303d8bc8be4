// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/carterperez-dev/dealership/internal/core"
)

type ProfileResponse struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	MiddleName    *string   `json:"middle_name,omitempty"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contact_number"`
	AccessLevel   int       `json:"access_level"`
	Role          string    `json:"role"`
	IsAdmin       bool      `json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ListProfilesParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
	Role     string `json:"role"`
}

func (p *ListProfilesParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > core.MaxPageSize {
		p.PageSize = core.MaxPageSize
	}
}

func (p *ListProfilesParams) Offset() int {
	return core.Offset(p.Page, p.PageSize)
}

func ToProfileResponse(p *Profile) ProfileResponse {
	return ProfileResponse{
		ID:            p.UserID,
		FirstName:     p.FirstName,
		MiddleName:    p.MiddleName,
		LastName:      p.LastName,
		Email:         p.Email,
		ContactNumber: p.ContactNumber,
		AccessLevel:   p.AccessLevel,
		Role:          p.Role(),
		IsAdmin:       p.IsAdmin(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ToProfileResponseList(profiles []Profile) []ProfileResponse {
	responses := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, ToProfileResponse(&profiles[i]))
	}
	return responses
}
