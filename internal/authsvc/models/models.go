package models

import (
	"strings"
	"time"

	"github.com/TBanda27/Ecommerce-bookstore/pkg/tokens"
)

// User is the persisted account row. PasswordHash is empty for accounts
// created through OAuth2; such accounts must never pass password login.
// Roles are stored comma-joined in ROLE_ form.
type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	Roles        string `gorm:"not null" json:"-"`
	Enabled      bool   `gorm:"not null;default:false" json:"enabled"`

	VerificationToken *string    `gorm:"uniqueIndex" json:"-"`
	TokenExpiration   *time.Time `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (u *User) RoleList() []string {
	if u.Roles == "" {
		return nil
	}
	return strings.Split(u.Roles, ",")
}

func (u *User) SetRoles(roles []string) {
	u.Roles = strings.Join(tokens.NormalizeRoles(roles), ",")
}

func (u *User) HasRole(role string) bool {
	want := tokens.NormalizeRole(role)
	for _, r := range u.RoleList() {
		if r == want {
			return true
		}
	}
	return false
}
