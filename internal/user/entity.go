// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// Access levels stored on profiles. Lower is more privileged.
const (
	AccessLevelAdmin   = 0
	AccessLevelRegular = 1
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Profile struct {
	UserID        string    `db:"user_id"`
	FirstName     string    `db:"first_name"`
	MiddleName    *string   `db:"middle_name"`
	LastName      string    `db:"last_name"`
	Email         string    `db:"email"`
	ContactNumber string    `db:"contact_number"`
	AccessLevel   int       `db:"access_level"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (p *Profile) IsAdmin() bool {
	return p.AccessLevel == AccessLevelAdmin
}

func (p *Profile) Role() string {
	if p.IsAdmin() {
		return RoleAdmin
	}
	return RoleUser
}
