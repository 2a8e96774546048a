package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role tags a profile as a question asker or an answerer.
type Role string

const (
	RoleSenior Role = "SENIOR"
	RoleYouth  Role = "YOUTH"
)

// Surface identifies which login tab the client authenticated through.
// The surface decides the role of a lazily created profile.
type Surface string

const (
	SurfaceSenior Surface = "senior"
	SurfaceYouth  Surface = "youth"
)

func (s Surface) Valid() bool {
	return s == SurfaceSenior || s == SurfaceYouth
}

func (s Surface) Role() Role {
	if s == SurfaceSenior {
		return RoleSenior
	}
	return RoleYouth
}

type Profile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Email     string    `json:"email" db:"email"`
	Username  string    `json:"username" db:"username"`
	Role      Role      `json:"role" db:"role"`
	Points    int       `json:"points" db:"points"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UsernameFromEmail derives the default username from the email's local part.
func UsernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
