package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOfWrapped(t *testing.T) {
	base := New(HeaderMismatch, "헤더 불일치")
	wrapped := fmt.Errorf("ingest: %w", base)

	if got := KindOf(wrapped); got != HeaderMismatch {
		t.Fatalf("KindOf=%s, want %s", got, HeaderMismatch)
	}
	if !IsKind(wrapped, HeaderMismatch) {
		t.Fatalf("IsKind should see through fmt wrapping")
	}
	if !errors.Is(wrapped, New(HeaderMismatch, "")) {
		t.Fatalf("errors.Is should match by kind")
	}
	if errors.Is(wrapped, New(Timeout, "")) {
		t.Fatalf("errors.Is should not match a different kind")
	}
}

func TestKindOfPlainError(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != Internal {
		t.Fatalf("KindOf=%s, want Internal", got)
	}
	if got := KindOf(nil); got != "" {
		t.Fatalf("KindOf(nil)=%q", got)
	}
	if MessageOf(errors.New("boom")) == "" {
		t.Fatalf("fallback message should not be empty")
	}
}

func TestDetailAndCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(NetworkFailure, "네트워크 오류", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("cause should be reachable via errors.Is")
	}

	d := WithDetail(HeaderMismatch, "헤더 불일치", []string{"a"})
	got, ok := DetailOf(d).([]string)
	if !ok || len(got) != 1 || got[0] != "a" {
		t.Fatalf("DetailOf=%v", DetailOf(d))
	}
}
