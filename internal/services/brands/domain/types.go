// Package domain defines the types and interfaces for the brands service
package domain

import (
	"time"

	pstrings "backoffice/internal/platform/strings"
)

// Brand is a managed product brand
type Brand struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required,min=2,max=64"`
	Slug        string    `json:"slug" validate:"omitempty,max=64"`
	Description string    `json:"description" validate:"omitempty,max=512"`
	Category    string    `json:"category" validate:"required,max=32"`
	Status      string    `json:"status" validate:"required,oneof=active archived"`
	LogoURL     string    `json:"logo_url" validate:"omitempty,url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EntityID satisfies storekit.Entity
func (b Brand) EntityID() string { return b.ID }

// MatchKeyword reports a case-insensitive substring match over the brand's
// text fields (name, slug, description)
func MatchKeyword(b Brand, keyword string) bool {
	return pstrings.ContainsFold(b.Name, keyword) ||
		pstrings.ContainsFold(b.Slug, keyword) ||
		pstrings.ContainsFold(b.Description, keyword)
}

// MatchFilters reports exact matches on the categorical fields.
// Unknown filter names never match so a stale descriptor fails closed
func MatchFilters(b Brand, filters map[string]string) bool {
	for name, want := range filters {
		if want == "" {
			continue
		}
		switch name {
		case "category":
			if b.Category != want {
				return false
			}
		case "status":
			if b.Status != want {
				return false
			}
		default:
			return false
		}
	}
	return true
}
