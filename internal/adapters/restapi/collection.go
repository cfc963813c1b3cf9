package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	perr "backoffice/internal/platform/errors"
	"backoffice/internal/storekit"
)

// Collection is the typed client for one resource collection under a base
// path like /api/v1/users. It satisfies storekit.Client[T]
type Collection[T storekit.Entity] struct {
	client *Client
	base   string
}

// NewCollection returns a Collection rooted at base (no trailing slash)
func NewCollection[T storekit.Entity](c *Client, base string) *Collection[T] {
	return &Collection[T]{client: c, base: base}
}

// List fetches the collection for q
func (r *Collection[T]) List(ctx context.Context, q storekit.Query, requestID string) ([]T, error) {
	path := r.base + encodeQuery(q)
	status, body, err := r.client.do(ctx, http.MethodGet, path, requestID, nil, true)
	if err != nil {
		return nil, err
	}
	if !ok(status) {
		return nil, perr.FromStatus(status, false, body)
	}
	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, perr.Wrap(err, perr.KindUnknown, "malformed list response")
	}
	return out, nil
}

// GetByID fetches a single resource
func (r *Collection[T]) GetByID(ctx context.Context, id, requestID string) (T, error) {
	var zero T
	status, body, err := r.client.do(ctx, http.MethodGet, r.base+"/"+url.PathEscape(id), requestID, nil, true)
	if err != nil {
		return zero, err
	}
	if !ok(status) {
		return zero, perr.FromStatus(status, true, body)
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, perr.Wrap(err, perr.KindUnknown, "malformed resource response")
	}
	return out, nil
}

// Create persists item and returns the created entity with its
// backend-assigned identifier and timestamps
func (r *Collection[T]) Create(ctx context.Context, item T, requestID string) (T, error) {
	var zero T
	status, body, err := r.client.do(ctx, http.MethodPost, r.base, requestID, item, false)
	if err != nil {
		return zero, err
	}
	if !ok(status) {
		return zero, perr.FromStatus(status, false, body)
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, perr.Wrap(err, perr.KindUnknown, "malformed create response")
	}
	return out, nil
}

// Update replaces the resource under id and returns the stored entity
func (r *Collection[T]) Update(ctx context.Context, id string, item T, requestID string) (T, error) {
	var zero T
	status, body, err := r.client.do(ctx, http.MethodPut, r.base+"/"+url.PathEscape(id), requestID, item, false)
	if err != nil {
		return zero, err
	}
	if !ok(status) {
		return zero, perr.FromStatus(status, true, body)
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, perr.Wrap(err, perr.KindUnknown, "malformed update response")
	}
	return out, nil
}

// Delete removes the resource under id
func (r *Collection[T]) Delete(ctx context.Context, id, requestID string) error {
	status, body, err := r.client.do(ctx, http.MethodDelete, r.base+"/"+url.PathEscape(id), requestID, nil, false)
	if err != nil {
		return err
	}
	if !ok(status) {
		return perr.FromStatus(status, true, body)
	}
	return nil
}

// BatchImport submits items and returns the per-row outcome report
func (r *Collection[T]) BatchImport(ctx context.Context, items []T, requestID string) (storekit.ImportReport, error) {
	status, body, err := r.client.do(ctx, http.MethodPost, r.base+"/import", requestID, items, false)
	if err != nil {
		return storekit.ImportReport{}, err
	}
	if !ok(status) {
		return storekit.ImportReport{}, perr.FromStatus(status, false, body)
	}
	var out storekit.ImportReport
	if err := json.Unmarshal(body, &out); err != nil {
		return storekit.ImportReport{}, perr.Wrap(err, perr.KindUnknown, "malformed import report")
	}
	return out, nil
}

// encodeQuery serializes the query descriptor as a canonical query string
func encodeQuery(q storekit.Query) string {
	d := q.Descriptor()
	if len(d) == 0 {
		return ""
	}
	vals := url.Values{}
	for k, v := range d {
		vals.Set(k, v)
	}
	return "?" + vals.Encode()
}
