package users

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

var ErrInvalidRole = errors.New("invalid role")

type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FirstName string    `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName  string    `json:"last_name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone     *string   `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Password  string    `json:"-" gorm:"not null"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null;default:'customer';index"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole accepts any letter case
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// IsSelfAssignable reports whether the role may be chosen at registration
func (r Role) IsSelfAssignable() bool {
	return r == RoleCustomer || r == RoleVendor || r == RoleManager
}
