package domain

import (
	"context"

	"backoffice/internal/storekit"
)

// StorePort is the surface the brands module exposes to consumers
type StorePort interface {
	FetchList(ctx context.Context) error
	GetByID(ctx context.Context, id string) (Brand, error)
	Create(ctx context.Context, b Brand) error
	Update(ctx context.Context, id string, b Brand) error
	Delete(ctx context.Context, id string) error
	BatchImport(ctx context.Context, rows []Brand) (storekit.ImportReport, error)

	SetSearchKeyword(ctx context.Context, keyword string) error
	SetFilters(ctx context.Context, filters map[string]string) error
	FilteredList() []Brand
	Items() []Brand
	Loading() bool
}
