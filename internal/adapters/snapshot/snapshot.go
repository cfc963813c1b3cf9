// Package snapshot persists a resource collection as a single JSON object
// keyed by the resource type name, e.g. {"users": [...]}. Writes are
// atomic (temp file + rename) and a load reproduces the saved collection
// exactly: order preserved, no field loss
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"

	perr "backoffice/internal/platform/errors"
)

// Save writes items under name to path atomically
func Save[T any](path, name string, items []T) error {
	payload, err := json.MarshalIndent(map[string][]T{name: items}, "", "  ")
	if err != nil {
		return perr.Wrap(err, perr.KindUnknown, "encode snapshot")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return perr.Wrap(err, perr.KindStorage, "create snapshot dir")
		}
	}
	tmp := path + ".part"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return perr.Wrap(err, perr.KindStorage, "write snapshot")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return perr.Wrap(err, perr.KindStorage, "commit snapshot")
	}
	return nil
}

// Load reads the collection stored under name from path.
// A missing name key classifies as not-found; malformed JSON as unknown
func Load[T any](path, name string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perr.Wrap(err, perr.KindNotFound, "snapshot file missing")
		}
		return nil, perr.Wrap(err, perr.KindStorage, "read snapshot")
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, perr.Wrap(err, perr.KindUnknown, "malformed snapshot")
	}
	blob, ok := doc[name]
	if !ok {
		return nil, perr.Newf(perr.KindNotFound, "snapshot has no %q collection", name)
	}
	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, perr.Wrap(err, perr.KindUnknown, "malformed snapshot collection")
	}
	return items, nil
}
