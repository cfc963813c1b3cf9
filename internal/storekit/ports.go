package storekit

import "context"

// Entity is the minimal contract a managed resource satisfies
type Entity interface {
	EntityID() string
}

// Client is the remote API surface a store consumes. Every call carries a
// caller-supplied request id so the tracker can abort it later; an aborted
// call must resolve as the canceled sentinel, never a plain failure
type Client[T Entity] interface {
	List(ctx context.Context, q Query, requestID string) ([]T, error)
	GetByID(ctx context.Context, id, requestID string) (T, error)
	Create(ctx context.Context, item T, requestID string) (T, error)
	Update(ctx context.Context, id string, item T, requestID string) (T, error)
	Delete(ctx context.Context, id, requestID string) error
	BatchImport(ctx context.Context, items []T, requestID string) (ImportReport, error)
}

// Notifier is the fire-and-forget UI notification sink
type Notifier interface {
	Success(text string)
	Error(text string)
}

// ImportError describes one rejected row of a batch import
type ImportError struct {
	Index   int    `json:"index"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ImportReport summarizes a batch import outcome
type ImportReport struct {
	Total   int           `json:"total"`
	Success int           `json:"success"`
	Failed  int           `json:"failed"`
	Errors  []ImportError `json:"errors,omitempty"`
}

// nopNotifier is used when no sink is wired (tests, CLI dry runs)
type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
