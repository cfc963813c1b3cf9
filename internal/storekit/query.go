// Package storekit provides the generic resource-store pattern every
// managed collection is built on: request tracking with cancellation, TTL
// caching of list queries, debounced loading state, and typed error
// surfacing with prior-state preservation on failure
package storekit

import "maps"

// Query is the descriptor of a list fetch: a free-text keyword plus named
// filter fields. A value snapshot is taken when a fetch is issued and the
// snapshot doubles as the cache key
type Query struct {
	Keyword string
	Filters map[string]string
}

// Clone returns an independent copy of q
func (q Query) Clone() Query {
	return Query{Keyword: q.Keyword, Filters: maps.Clone(q.Filters)}
}

// Descriptor flattens q into the map form used for cache keys and HTTP
// query strings. Empty fields are omitted so equal-by-value descriptors
// serialize identically
func (q Query) Descriptor() map[string]string {
	d := make(map[string]string, len(q.Filters)+1)
	if q.Keyword != "" {
		d["keyword"] = q.Keyword
	}
	for k, v := range q.Filters {
		if v != "" {
			d[k] = v
		}
	}
	return d
}
