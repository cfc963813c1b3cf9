package errors

import (
	"context"
	stderrs "errors"
	"testing"
)

func TestKindNames(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{KindValidation, "validation"},
		{KindNetwork, "network"},
		{KindNotFound, "not-found"},
		{KindStorage, "storage"},
		{KindUnknown, "unknown"},
		{Kind(99), "unknown"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Fatalf("Kind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := New(KindValidation, "bad input")
	if KindOf(e1) != KindValidation {
		t.Fatalf("KindOf(New) = %v", KindOf(e1))
	}
	e2 := Newf(KindStorage, "server error %d", 500)
	if got := e2.Error(); got != "server error 500" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("root")
	e3 := Wrap(src, KindNetwork, "unreachable")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	if want := "unreachable: root"; e3.Error() != want {
		t.Fatalf("Wrap().Error = %q, want %q", e3.Error(), want)
	}

	if got, ok := As(e3); !ok || got.Kind() != KindNetwork {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}
	if KindOf(src) != KindUnknown {
		t.Fatalf("foreign error kind = %v, want unknown", KindOf(src))
	}
}

func TestCopyOnWriteMutators(t *testing.T) {
	e := New(KindValidation, "invalid")
	withOp := WithOp(e, "users.create")
	withDetails := WithDetails(e, []FieldError{{Field: "email", Message: "required"}})

	if oe, _ := As(withOp); oe.Op() != "users.create" {
		t.Fatalf("WithOp failed")
	}
	if de, _ := As(withDetails); len(de.Details()) != 1 || de.Details()[0].Field != "email" {
		t.Fatalf("WithDetails failed")
	}
	// original untouched
	if oe, _ := As(e); oe.Op() != "" || len(oe.Details()) != 0 {
		t.Fatalf("copy-on-write mutated original")
	}

	// foreign errors pass through unchanged
	src := stderrs.New("root")
	if WithOp(src, "x") != src {
		t.Fatalf("WithOp wrapped a foreign error")
	}
}

func TestIsCanceled(t *testing.T) {
	if !IsCanceled(ErrCanceled) {
		t.Fatalf("sentinel not recognized")
	}
	if !IsCanceled(context.Canceled) {
		t.Fatalf("bare context cancellation not recognized")
	}
	if IsCanceled(stderrs.New("boom")) {
		t.Fatalf("false positive")
	}
}

func TestIsKindAndDetailsOf(t *testing.T) {
	e := WithDetails(New(KindValidation, "invalid"), []FieldError{{Field: "name", Message: "too short"}})
	if !IsKind(e, KindValidation) {
		t.Fatalf("IsKind miss")
	}
	if IsKind(e, KindStorage) {
		t.Fatalf("IsKind false positive")
	}
	if d := DetailsOf(e); len(d) != 1 || d[0].Message != "too short" {
		t.Fatalf("DetailsOf = %v", d)
	}
	if d := DetailsOf(stderrs.New("x")); d != nil {
		t.Fatalf("DetailsOf(foreign) = %v, want nil", d)
	}
}
