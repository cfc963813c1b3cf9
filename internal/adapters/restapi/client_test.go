package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	perr "backoffice/internal/platform/errors"
	"backoffice/internal/storekit"
)

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (w widget) EntityID() string { return w.ID }

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := New(Options{BaseURL: srv.URL, Timeout: 2 * time.Second})
	c.sleep = func(time.Duration) {}
	return c, srv
}

func TestListSendsQueryAndHeaders(t *testing.T) {
	var gotPath, gotReqID, gotUA string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		gotReqID = r.Header.Get("X-Request-ID")
		gotUA = r.Header.Get("User-Agent")
		_ = json.NewEncoder(w).Encode([]widget{{ID: "w1", Name: "Anvil"}})
	})

	col := NewCollection[widget](c, "/api/v1/widgets")
	q := storekit.Query{Keyword: "anvil", Filters: map[string]string{"status": "active"}}
	items, err := col.List(context.Background(), q, "req-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].ID != "w1" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if gotPath != "/api/v1/widgets?keyword=anvil&status=active" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotReqID != "req-1" {
		t.Fatalf("request id header = %q", gotReqID)
	}
	if gotUA != defaultUA {
		t.Fatalf("user agent = %q", gotUA)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"user gone"}`))
	})
	col := NewCollection[widget](c, "/api/v1/widgets")
	_, err := col.GetByID(context.Background(), "missing", "req-2")
	if !perr.IsKind(err, perr.KindNotFound) {
		t.Fatalf("kind = %v, want not-found", perr.KindOf(err))
	}
}

func TestCreate422CarriesFieldDetails(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid","errors":[{"field":"name","message":"taken"}]}`))
	})
	col := NewCollection[widget](c, "/api/v1/widgets")
	_, err := col.Create(context.Background(), widget{Name: "dup"}, "req-3")
	if !perr.IsKind(err, perr.KindValidation) {
		t.Fatalf("kind = %v, want validation", perr.KindOf(err))
	}
	details := perr.DetailsOf(err)
	if len(details) != 1 || details[0].Field != "name" || details[0].Message != "taken" {
		t.Fatalf("details = %+v", details)
	}
}

func TestCancelMidFlightResolvesAsSentinel(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	})
	defer close(release)

	col := NewCollection[widget](c, "/api/v1/widgets")
	done := make(chan error, 1)
	go func() {
		_, err := col.List(context.Background(), storekit.Query{}, "req-4")
		done <- err
	}()

	<-started
	c.Cancel("req-4")

	select {
	case err := <-done:
		if !perr.IsCanceled(err) {
			t.Fatalf("err = %v, want canceled sentinel", err)
		}
		if perr.KindOf(err) != perr.KindUnknown {
			t.Fatalf("canceled must not be a typed error")
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("canceled call never resolved")
	}
}

func TestTimeoutClassifiesAsNetwork(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	defer close(release)

	c := New(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	col := NewCollection[widget](c, "/api/v1/widgets")
	_, err := col.GetByID(context.Background(), "w1", "req-5")
	if !perr.IsKind(err, perr.KindNetwork) {
		t.Fatalf("kind = %v, want network", perr.KindOf(err))
	}
}

func TestTransientStatusRetriesOnReads(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode([]widget{})
	})
	col := NewCollection[widget](c, "/api/v1/widgets")
	if _, err := col.List(context.Background(), storekit.Query{}, "req-6"); err != nil {
		t.Fatalf("List after retry: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
}

func TestMutationsDoNotRetry(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	col := NewCollection[widget](c, "/api/v1/widgets")
	_, err := col.Create(context.Background(), widget{Name: "x"}, "req-7")
	if !perr.IsKind(err, perr.KindStorage) {
		t.Fatalf("kind = %v, want storage", perr.KindOf(err))
	}
	if calls.Load() != 1 {
		t.Fatalf("mutation retried: %d calls", calls.Load())
	}
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	col := NewCollection[widget](c, "/api/v1/widgets")
	err := col.Delete(context.Background(), "missing-id", "req-8")
	if !perr.IsKind(err, perr.KindNotFound) {
		t.Fatalf("kind = %v, want not-found", perr.KindOf(err))
	}
}

func TestBatchImportReport(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/widgets/import" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(storekit.ImportReport{Total: 3, Success: 2, Failed: 1,
			Errors: []storekit.ImportError{{Index: 2, Field: "name", Message: "required"}}})
	})
	col := NewCollection[widget](c, "/api/v1/widgets")
	rep, err := col.BatchImport(context.Background(), []widget{{}, {}, {}}, "req-9")
	if err != nil {
		t.Fatalf("BatchImport: %v", err)
	}
	if rep.Total != 3 || rep.Success != 2 || rep.Failed != 1 || len(rep.Errors) != 1 {
		t.Fatalf("report = %+v", rep)
	}
}

func TestMalformedBodyIsUnknown(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"`))
	})
	col := NewCollection[widget](c, "/api/v1/widgets")
	_, err := col.List(context.Background(), storekit.Query{}, "req-10")
	if !perr.IsKind(err, perr.KindUnknown) {
		t.Fatalf("kind = %v, want unknown", perr.KindOf(err))
	}
}
