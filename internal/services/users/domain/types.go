// Package domain defines the types and interfaces for the users service
package domain

import (
	"time"

	pstrings "backoffice/internal/platform/strings"
)

// User is a managed console account
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username" validate:"required,min=3,max=32"`
	Nickname  string    `json:"nickname" validate:"omitempty,max=64"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"omitempty,min=6,max=20"`
	Role      string    `json:"role" validate:"required,oneof=admin editor viewer"`
	Status    string    `json:"status" validate:"required,oneof=active disabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntityID satisfies storekit.Entity
func (u User) EntityID() string { return u.ID }

// MatchKeyword reports a case-insensitive substring match over the user's
// text fields (username, nickname, email)
func MatchKeyword(u User, keyword string) bool {
	return pstrings.ContainsFold(u.Username, keyword) ||
		pstrings.ContainsFold(u.Nickname, keyword) ||
		pstrings.ContainsFold(u.Email, keyword)
}

// MatchFilters reports exact matches on the categorical fields.
// Unknown filter names never match so a stale descriptor fails closed
func MatchFilters(u User, filters map[string]string) bool {
	for name, want := range filters {
		if want == "" {
			continue
		}
		switch name {
		case "role":
			if u.Role != want {
				return false
			}
		case "status":
			if u.Status != want {
				return false
			}
		default:
			return false
		}
	}
	return true
}
