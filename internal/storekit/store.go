package storekit

import (
	"context"
	"slices"
	"sync"
	"time"

	"backoffice/internal/platform/cache"
	perr "backoffice/internal/platform/errors"
	"backoffice/internal/platform/loading"
	"backoffice/internal/platform/logger"
	"backoffice/internal/platform/track"

	"github.com/google/uuid"
)

// Operation types for tracking and cancellation. By-id operations get their
// own type per identifier so edits to different records do not cancel each
// other, while a re-issued edit of the same record supersedes the first
const (
	OpFetchList   = "fetchList"
	OpCreate      = "create"
	OpBatchImport = "batchImport"
)

func opGet(id string) string    { return "get:" + id }
func opUpdate(id string) string { return "update:" + id }
func opDelete(id string) string { return "delete:" + id }

const defaultCacheTTL = 30 * time.Second

// Options configures a Store
type Options[T Entity] struct {
	// Name is the resource name used for cache namespacing, logging,
	// and notifications (e.g. "users")
	Name string

	Client Client[T]

	// Aborter cancels in-flight requests by id; normally the REST client
	Aborter track.Aborter

	// Notify receives success/error text; nil means no notifications
	Notify Notifier

	// Validate runs before any network call on mutating operations.
	// Returning a KindValidation error stops the operation locally
	Validate func(T) error

	// MatchKeyword reports whether item matches a case-insensitive keyword
	// over the resource's designated text fields
	MatchKeyword func(item T, keyword string) bool

	// MatchFilters reports whether item matches the categorical filters
	// exactly
	MatchFilters func(item T, filters map[string]string) bool

	CacheTTL      time.Duration
	CacheCapacity int

	// LoadingDelay is the debounce window before loading publishes true
	LoadingDelay time.Duration

	// OnLoading is the explicit loading-state subscription; nil is fine,
	// Loading() can still be polled
	OnLoading func(bool)

	Log *logger.Logger
}

// Store owns one resource collection and orchestrates every operation on it.
// The collection is mutated exclusively here; readers get copies.
// Cache, tracker, and loading publisher are private to the instance
type Store[T Entity] struct {
	opts    Options[T]
	log     logger.Logger
	cache   *cache.Cache[[]T]
	tracker *track.Tracker
	loading *loading.Publisher
	newID   func() string // request id mint, seam for tests

	mu    sync.Mutex
	items []T
	query Query
}

// New constructs a Store from opts. Client and Name are required
func New[T Entity](opts Options[T]) *Store[T] {
	if opts.Name == "" {
		panic("storekit: Name is required")
	}
	if opts.Client == nil {
		panic("storekit: Client is required")
	}
	if opts.Notify == nil {
		opts.Notify = nopNotifier{}
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	log := opts.Log
	if log == nil {
		log = logger.Named(opts.Name + "-store")
	}
	return &Store[T]{
		opts:    opts,
		log:     *log,
		cache:   cache.New[[]T](opts.CacheCapacity),
		tracker: track.New(opts.Aborter),
		loading: loading.New(opts.LoadingDelay, opts.OnLoading),
		newID:   uuid.NewString,
	}
}

// Items returns a copy of the current collection
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Query returns the query descriptor currently in effect
func (s *Store[T]) Query() Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query.Clone()
}

// Loading reports the published loading state
func (s *Store[T]) Loading() bool { return s.loading.Loading() }

// Close cancels every in-flight request and stops pending loading timers.
// The collection stays readable after Close
func (s *Store[T]) Close() {
	s.tracker.CancelAll()
	s.loading.Cleanup()
	s.cache.InvalidateAll()
}

// FetchList loads the collection for the current query. A fresh cache entry
// short-circuits without network activity; otherwise any in-flight list
// fetch is superseded first. On failure or cancellation the previous
// collection is retained
func (s *Store[T]) FetchList(ctx context.Context) error {
	s.mu.Lock()
	q := s.query.Clone()
	s.mu.Unlock()

	key := cache.Key(s.opts.Name+".list", q.Descriptor())
	if cached, ok := s.cache.Get(key); ok {
		// a hit still supersedes any in-flight list fetch; otherwise a
		// stalled fetch for an older query would resume as current and
		// overwrite this result
		s.tracker.CancelIfActive(OpFetchList)
		s.mu.Lock()
		s.items = slices.Clone(cached)
		s.mu.Unlock()
		s.loading.Set(false)
		return nil
	}

	ctx, reqID := s.begin(ctx, OpFetchList)
	items, err := s.opts.Client.List(ctx, q, reqID)
	if !s.stillCurrent(OpFetchList, reqID) {
		return perr.ErrCanceled
	}
	s.finish(OpFetchList)

	if err != nil {
		return s.fail("fetchList", err)
	}
	s.mu.Lock()
	s.items = slices.Clone(items)
	s.mu.Unlock()
	s.cache.Set(key, slices.Clone(items), s.opts.CacheTTL)
	return nil
}

// GetByID fetches a single resource. The collection is not touched
func (s *Store[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	op := opGet(id)
	ctx, reqID := s.begin(ctx, op)
	item, err := s.opts.Client.GetByID(ctx, id, reqID)
	if !s.stillCurrent(op, reqID) {
		return zero, perr.ErrCanceled
	}
	s.finish(op)
	if err != nil {
		return zero, s.fail("get", err)
	}
	return item, nil
}

// Create validates item locally, then persists it and appends the created
// entity (with backend-assigned id and timestamps) to the collection
func (s *Store[T]) Create(ctx context.Context, item T) error {
	if err := s.preflight(item); err != nil {
		return err
	}
	op := OpCreate
	ctx, reqID := s.begin(ctx, op)
	created, err := s.opts.Client.Create(ctx, item, reqID)
	if !s.stillCurrent(op, reqID) {
		return perr.ErrCanceled
	}
	s.finish(op)
	if err != nil {
		return s.fail("create", err)
	}
	s.mu.Lock()
	s.items = append(s.items, created)
	s.mu.Unlock()
	s.cache.InvalidateAll()
	s.opts.Notify.Success("Created successfully.")
	return nil
}

// Update validates item locally, persists it, and replaces the matching
// element in the collection. Re-issuing an update for the same id cancels
// the earlier in-flight one; only the later result is applied
func (s *Store[T]) Update(ctx context.Context, id string, item T) error {
	if err := s.preflight(item); err != nil {
		return err
	}
	op := opUpdate(id)
	ctx, reqID := s.begin(ctx, op)
	updated, err := s.opts.Client.Update(ctx, id, item, reqID)
	if !s.stillCurrent(op, reqID) {
		return perr.ErrCanceled
	}
	s.finish(op)
	if err != nil {
		return s.fail("update", err)
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].EntityID() == id {
			s.items[i] = updated
			break
		}
	}
	s.mu.Unlock()
	s.cache.InvalidateAll()
	s.opts.Notify.Success("Saved successfully.")
	return nil
}

// Delete removes the resource remotely, then from the collection.
// A 404 surfaces as not-found with the collection unchanged
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	op := opDelete(id)
	ctx, reqID := s.begin(ctx, op)
	err := s.opts.Client.Delete(ctx, id, reqID)
	if !s.stillCurrent(op, reqID) {
		return perr.ErrCanceled
	}
	s.finish(op)
	if err != nil {
		return s.fail("delete", err)
	}
	s.mu.Lock()
	s.items = slices.DeleteFunc(s.items, func(it T) bool { return it.EntityID() == id })
	s.mu.Unlock()
	s.cache.InvalidateAll()
	s.opts.Notify.Success("Deleted successfully.")
	return nil
}

// BatchImport validates rows locally, imports the valid ones, and merges
// the local rejections into the server report. On success the cache is
// dropped and the list re-fetched so the collection reflects the import.
// Failed rows keep their positions in the report via Index
func (s *Store[T]) BatchImport(ctx context.Context, rows []T) (ImportReport, error) {
	report := ImportReport{Total: len(rows)}
	valid := make([]T, 0, len(rows))
	validIdx := make([]int, 0, len(rows))
	for i, row := range rows {
		if s.opts.Validate != nil {
			if err := s.opts.Validate(row); err != nil {
				report.Failed++
				report.Errors = append(report.Errors, importErrors(i, err)...)
				continue
			}
		}
		valid = append(valid, row)
		validIdx = append(validIdx, i)
	}

	if len(valid) == 0 {
		s.opts.Notify.Error("No importable rows: every row failed validation.")
		return report, perr.New(perr.KindValidation, "no importable rows")
	}

	op := OpBatchImport
	ctx, reqID := s.begin(ctx, op)
	remote, err := s.opts.Client.BatchImport(ctx, valid, reqID)
	if !s.stillCurrent(op, reqID) {
		return ImportReport{}, perr.ErrCanceled
	}
	s.finish(op)
	if err != nil {
		return ImportReport{}, s.fail("batchImport", err)
	}

	report.Success = remote.Success
	report.Failed += remote.Failed
	for _, re := range remote.Errors {
		// remap server indexes (into the valid subset) back to input rows
		if re.Index >= 0 && re.Index < len(validIdx) {
			re.Index = validIdx[re.Index]
		}
		report.Errors = append(report.Errors, re)
	}

	s.cache.InvalidateAll()
	if err := s.FetchList(ctx); err != nil && !perr.IsCanceled(err) {
		return report, err
	}
	s.opts.Notify.Success(importSummary(report))
	return report, nil
}

// SetSearchKeyword updates the query descriptor and immediately re-fetches,
// superseding any in-flight list fetch
func (s *Store[T]) SetSearchKeyword(ctx context.Context, keyword string) error {
	s.mu.Lock()
	s.query.Keyword = keyword
	s.mu.Unlock()
	return s.FetchList(ctx)
}

// SetFilters replaces the named filter fields and immediately re-fetches,
// superseding any in-flight list fetch
func (s *Store[T]) SetFilters(ctx context.Context, filters map[string]string) error {
	s.mu.Lock()
	if filters == nil {
		s.query.Filters = nil
	} else {
		s.query.Filters = make(map[string]string, len(filters))
		for k, v := range filters {
			s.query.Filters[k] = v
		}
	}
	s.mu.Unlock()
	return s.FetchList(ctx)
}

// FilteredList is a pure derived view over the current collection, keyword,
// and filters. It never triggers network activity
func (s *Store[T]) FilteredList() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if s.query.Keyword != "" && s.opts.MatchKeyword != nil &&
			!s.opts.MatchKeyword(item, s.query.Keyword) {
			continue
		}
		if len(s.query.Filters) > 0 && s.opts.MatchFilters != nil &&
			!s.opts.MatchFilters(item, s.query.Filters) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// begin supersedes any in-flight call of the same type, registers a fresh
// request id, and arms the loading debounce. The returned context carries
// the request id and resource name for downstream log enrichment
func (s *Store[T]) begin(ctx context.Context, opType string) (context.Context, string) {
	reqID := s.newID()
	s.tracker.CancelIfActive(opType)
	s.tracker.Track(opType, reqID)
	s.loading.Set(true)
	return logger.WithOperation(ctx, reqID, s.opts.Name), reqID
}

// finish clears tracking and loading on a terminal (non-superseded) outcome
func (s *Store[T]) finish(opType string) {
	s.tracker.Untrack(opType)
	s.loading.Set(false)
}

// stillCurrent reports whether reqID is still the registered request for
// opType. A false result means the call was superseded while suspended:
// its response must not be observed
func (s *Store[T]) stillCurrent(opType, reqID string) bool {
	cur, ok := s.tracker.Current(opType)
	return ok && cur == reqID
}

// preflight runs local validation; failures surface immediately with no
// network call and the in-progress state untouched
func (s *Store[T]) preflight(item T) error {
	if s.opts.Validate == nil {
		return nil
	}
	err := s.opts.Validate(item)
	if err == nil {
		return nil
	}
	s.opts.Notify.Error(perr.UserMessage(err))
	return err
}

// fail resolves a terminal failure: canceled outcomes stay silent, anything
// else is notified with its kind-specific text. The collection has not been
// touched by this point
func (s *Store[T]) fail(op string, err error) error {
	if perr.IsCanceled(err) {
		return perr.ErrCanceled
	}
	if perr.KindOf(err) == perr.KindUnknown {
		s.log.Error().Err(err).Str("op", op).Msg("unclassified failure")
	}
	s.opts.Notify.Error(perr.UserMessage(err))
	return perr.WithOp(err, s.opts.Name+"."+op)
}

// importErrors flattens a validation error into per-row report entries
func importErrors(index int, err error) []ImportError {
	details := perr.DetailsOf(err)
	if len(details) == 0 {
		return []ImportError{{Index: index, Message: err.Error()}}
	}
	out := make([]ImportError, 0, len(details))
	for _, d := range details {
		out = append(out, ImportError{Index: index, Field: d.Field, Message: d.Message})
	}
	return out
}

func importSummary(r ImportReport) string {
	if r.Failed == 0 {
		return "Import finished: all rows imported."
	}
	return "Import finished with rejected rows; review the report."
}
