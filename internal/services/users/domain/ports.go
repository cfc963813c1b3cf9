package domain

import (
	"context"

	"backoffice/internal/storekit"
)

// StorePort is the surface the users module exposes to consumers.
// Reads return derived copies; the collection itself is never handed out
type StorePort interface {
	FetchList(ctx context.Context) error
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, id string, u User) error
	Delete(ctx context.Context, id string) error
	BatchImport(ctx context.Context, rows []User) (storekit.ImportReport, error)

	SetSearchKeyword(ctx context.Context, keyword string) error
	SetFilters(ctx context.Context, filters map[string]string) error
	FilteredList() []User
	Items() []User
	Loading() bool
}
