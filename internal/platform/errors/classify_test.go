package errors

import (
	"context"
	stderrs "errors"
	"testing"
)

func TestFromTransportPriority(t *testing.T) {
	// cancellation wins over everything and stays a sentinel
	if err := FromTransport(context.Canceled); !IsCanceled(err) {
		t.Fatalf("context.Canceled not mapped to sentinel")
	}
	if err := FromTransport(ErrCanceled); !IsCanceled(err) {
		t.Fatalf("sentinel not passed through")
	}
	if _, ok := As(FromTransport(ErrCanceled)); ok {
		t.Fatalf("cancellation became a typed error")
	}

	// timeouts and unreachable backends are the same network condition
	if k := KindOf(FromTransport(context.DeadlineExceeded)); k != KindNetwork {
		t.Fatalf("deadline kind = %v, want network", k)
	}
	if k := KindOf(FromTransport(stderrs.New("connection refused"))); k != KindNetwork {
		t.Fatalf("transport kind = %v, want network", k)
	}
	if FromTransport(nil) != nil {
		t.Fatalf("nil in, non-nil out")
	}
}

func TestFromStatus(t *testing.T) {
	cases := []struct {
		name   string
		status int
		byID   bool
		body   string
		want   Kind
	}{
		{"404 by id", 404, true, `{"message":"user not found"}`, KindNotFound},
		{"404 route", 404, false, "", KindStorage},
		{"422", 422, false, `{"message":"invalid","errors":[{"field":"email","message":"malformed"}]}`, KindValidation},
		{"500", 500, true, "", KindStorage},
		{"503", 503, false, `{"message":"maintenance"}`, KindStorage},
		{"garbage body", 500, false, "<html>oops</html>", KindStorage},
		{"2xx misuse", 204, false, "", KindUnknown},
	}
	for _, c := range cases {
		err := FromStatus(c.status, c.byID, []byte(c.body))
		if KindOf(err) != c.want {
			t.Fatalf("%s: kind = %v, want %v", c.name, KindOf(err), c.want)
		}
	}
}

func TestFromStatus422CarriesServerFieldMessages(t *testing.T) {
	body := `{"message":"invalid","errors":[{"field":"email","message":"malformed"},{"field":"role","message":"unknown role"}]}`
	err := FromStatus(422, false, []byte(body))
	d := DetailsOf(err)
	if len(d) != 2 || d[0].Field != "email" || d[1].Message != "unknown role" {
		t.Fatalf("details = %+v", d)
	}
}

func TestFromStatus404UsesServerMessage(t *testing.T) {
	err := FromStatus(404, true, []byte(`{"message":"brand gone"}`))
	e, _ := As(err)
	if e.Message() != "brand gone" {
		t.Fatalf("message = %q", e.Message())
	}
}

func TestUserMessageFixedPerKind(t *testing.T) {
	if UserMessage(nil) != "" {
		t.Fatalf("nil error produced text")
	}
	if UserMessage(ErrCanceled) != "" {
		t.Fatalf("canceled produced text; cancellation is never surfaced")
	}
	kinds := []Kind{KindValidation, KindNetwork, KindNotFound, KindStorage, KindUnknown}
	seen := map[string]Kind{}
	for _, k := range kinds {
		msg := UserMessage(New(k, "internal detail"))
		if msg == "" {
			t.Fatalf("kind %v has no user text", k)
		}
		if prev, dup := seen[msg]; dup {
			t.Fatalf("kinds %v and %v share text %q", prev, k, msg)
		}
		seen[msg] = k
	}
	// the internal message never leaks into user text
	if msg := UserMessage(New(KindStorage, "pq: duplicate key")); msg == "pq: duplicate key" {
		t.Fatalf("internal detail leaked to user")
	}
	// foreign errors fall back to the unknown text
	if UserMessage(stderrs.New("boom")) != UserMessage(New(KindUnknown, "x")) {
		t.Fatalf("foreign error not treated as unknown")
	}
}
