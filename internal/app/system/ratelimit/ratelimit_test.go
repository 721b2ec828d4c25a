package ratelimit

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestLimiter_BlocksOverLimit(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("key") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("key") {
		t.Error("attempt over the limit should be blocked")
	}
	if !l.Allow("other") {
		t.Error("a different key should not be affected")
	}
}

func TestLimiter_WindowExpires(t *testing.T) {
	l := New(1, 20*time.Millisecond)

	if !l.Allow("key") {
		t.Fatal("first attempt should be allowed")
	}
	if l.Allow("key") {
		t.Fatal("second attempt inside the window should be blocked")
	}

	time.Sleep(30 * time.Millisecond)

	if !l.Allow("key") {
		t.Error("attempt after the window expired should be allowed")
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := New(1, time.Minute)

	l.Allow("key")
	if l.Allow("key") {
		t.Fatal("second attempt should be blocked")
	}

	l.Reset("key")

	if !l.Allow("key") {
		t.Error("attempt after Reset should be allowed")
	}
}

func TestLoginLimiter_EmailLimit(t *testing.T) {
	ll := NewLoginLimiter()
	r := httptest.NewRequest("POST", "/api/auth/login", nil)

	for i := 0; i < 5; i++ {
		allowed, _ := ll.Check(r, "victim@example.com")
		if !allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	allowed, reason := ll.Check(r, "victim@example.com")
	if allowed {
		t.Fatal("sixth attempt for the same email should be blocked")
	}
	if !strings.Contains(reason, "account") {
		t.Errorf("reason should name the account limit, got %q", reason)
	}

	// Other accounts from the same IP stay under the IP limit.
	if allowed, _ := ll.Check(r, "bystander@example.com"); !allowed {
		t.Error("a different email should still be allowed")
	}

	ll.ResetEmail("victim@example.com")
	if allowed, _ := ll.Check(r, "victim@example.com"); !allowed {
		t.Error("attempt after ResetEmail should be allowed")
	}
}

func TestLoginLimiter_IPLimit(t *testing.T) {
	ll := NewLoginLimiter()
	r := httptest.NewRequest("POST", "/api/auth/login", nil)

	// Distinct emails so only the per-IP window accumulates.
	for i := 0; i < 10; i++ {
		allowed, _ := ll.Check(r, fmt.Sprintf("user%d@example.com", i))
		if !allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	allowed, reason := ll.Check(r, "user10@example.com")
	if allowed {
		t.Fatal("eleventh attempt from the same IP should be blocked")
	}
	if strings.Contains(reason, "account") {
		t.Errorf("reason should be the IP limit, got %q", reason)
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := ClientIP(r); got != "203.0.113.7" {
		t.Errorf("X-Forwarded-For: got %q", got)
	}

	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Real-IP", "203.0.113.8")
	if got := ClientIP(r); got != "203.0.113.8" {
		t.Errorf("X-Real-IP: got %q", got)
	}

	r = httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.9:4321"
	if got := ClientIP(r); got != "203.0.113.9" {
		t.Errorf("RemoteAddr: got %q", got)
	}
}
