package services_test

import (
	"errors"
	"strings"
	"testing"

	"gamefinder/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrStatus, "igdb", "games", "returned 401", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrStatus) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"igdb", "games", "returned 401"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransport(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestKind(t *testing.T) {
	cases := map[string]error{
		"ok":            nil,
		"status":        services.Wrap(services.ErrStatus, "a", "b", "c", nil),
		"decode":        services.Wrap(services.ErrDecode, "a", "b", "c", nil),
		"not_found":     services.Wrap(services.ErrNotFound, "a", "b", "c", nil),
		"configuration": services.Wrap(services.ErrConfiguration, "a", "b", "c", nil),
		"transport":     errors.New("dial tcp: refused"),
	}
	for want, err := range cases {
		if got := services.Kind(err); got != want {
			t.Fatalf("Kind(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestOutcome(t *testing.T) {
	ok := services.Ok(12.5)
	if ok.IsDegraded() || ok.Value != 12.5 {
		t.Fatalf("unexpected ok outcome: %+v", ok)
	}
	degraded := services.Degraded(0.0, services.ErrNotFound)
	if !degraded.IsDegraded() || degraded.Value != 0 {
		t.Fatalf("unexpected degraded outcome: %+v", degraded)
	}
	if !errors.Is(degraded.Cause, services.ErrNotFound) {
		t.Fatalf("expected cause to be preserved, got %v", degraded.Cause)
	}
}
