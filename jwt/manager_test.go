package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		AccessTTL:     15 * time.Minute,
		RenewalTTL:    7 * 24 * time.Hour,
		AccessSecret:  []byte("unit-test-access-secret"),
		RenewalSecret: []byte("unit-test-renewal-secret"),
		Issuer:        "goTask-test",
	}
}

func newTestManager(t *testing.T, mutate func(*Config)) *Manager {
	t.Helper()

	cfg := testConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestNewManagerRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero access TTL", func(c *Config) { c.AccessTTL = 0 }},
		{"zero renewal TTL", func(c *Config) { c.RenewalTTL = 0 }},
		{"negative leeway", func(c *Config) { c.Leeway = -time.Second }},
		{"huge leeway", func(c *Config) { c.Leeway = 3 * time.Minute }},
		{"empty access secret", func(c *Config) { c.AccessSecret = nil }},
		{"empty renewal secret", func(c *Config) { c.RenewalSecret = nil }},
		{"shared secret", func(c *Config) { c.RenewalSecret = c.AccessSecret }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			if _, err := NewManager(cfg); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	m := newTestManager(t, nil)

	for _, class := range []Class{ClassAccess, ClassRenewal} {
		token, err := m.Sign("user-1", "alice", class)
		if err != nil {
			t.Fatalf("Sign(%s): %v", class, err)
		}

		claims, err := m.Verify(token, class)
		if err != nil {
			t.Fatalf("Verify(%s): %v", class, err)
		}
		if claims.Subject != "user-1" {
			t.Fatalf("subject = %q, want user-1", claims.Subject)
		}
		if claims.UserName != "alice" {
			t.Fatalf("userName = %q, want alice", claims.UserName)
		}
		if claims.Class != string(class) {
			t.Fatalf("class = %q, want %q", claims.Class, class)
		}
	}
}

func TestVerifyRejectsWrongClass(t *testing.T) {
	m := newTestManager(t, nil)

	renewal, err := m.Sign("user-1", "alice", ClassRenewal)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	// A renewal token presented where an access token is expected fails on
	// the signature check first: the two classes use independent secrets.
	if _, err := m.Verify(renewal, ClassAccess); err == nil {
		t.Fatal("renewal token accepted as access token")
	}
}

func TestVerifyRejectsForgedSignature(t *testing.T) {
	m := newTestManager(t, nil)
	other := newTestManager(t, func(c *Config) {
		c.AccessSecret = []byte("some-other-secret")
	})

	token, err := other.Sign("user-1", "alice", ClassAccess)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := m.Verify(token, ClassAccess); !errors.Is(err, ErrSignature) {
		t.Fatalf("err = %v, want ErrSignature", err)
	}
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	m := newTestManager(t, nil)

	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := m.Verify(token, ClassAccess); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Verify(%q) = %v, want ErrMalformed", token, err)
		}
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	m := newTestManager(t, nil)

	token, err := m.Sign("user-1", "alice", ClassAccess)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d parts", len(parts))
	}
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	tampered := strings.Join(parts, ".")

	if _, err := m.Verify(tampered, ClassAccess); err == nil {
		t.Fatal("tampered token accepted")
	}
}

func TestTokenInvalidAtExactExpiryInstant(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt

	m := newTestManager(t, func(c *Config) {
		c.TimeFunc = func() time.Time { return now }
	})

	token, err := m.Sign("user-1", "alice", ClassAccess)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	// One nanosecond before expiry the token is still valid.
	now = issuedAt.Add(testConfig().AccessTTL - time.Nanosecond)
	if _, err := m.Verify(token, ClassAccess); err != nil {
		t.Fatalf("token rejected before expiry: %v", err)
	}

	// At the exact expiry instant it is already invalid.
	now = issuedAt.Add(testConfig().AccessTTL)
	if _, err := m.Verify(token, ClassAccess); !errors.Is(err, ErrExpired) {
		t.Fatalf("err = %v, want ErrExpired at expiry instant", err)
	}
}

func TestVerifyAppliesLeeway(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt

	m := newTestManager(t, func(c *Config) {
		c.Leeway = 30 * time.Second
		c.TimeFunc = func() time.Time { return now }
	})

	token, err := m.Sign("user-1", "alice", ClassAccess)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	now = issuedAt.Add(testConfig().AccessTTL + 10*time.Second)
	if _, err := m.Verify(token, ClassAccess); err != nil {
		t.Fatalf("token rejected within leeway window: %v", err)
	}

	now = issuedAt.Add(testConfig().AccessTTL + time.Minute)
	if _, err := m.Verify(token, ClassAccess); !errors.Is(err, ErrExpired) {
		t.Fatalf("err = %v, want ErrExpired past leeway", err)
	}
}

func TestSignRejectsEmptySubject(t *testing.T) {
	m := newTestManager(t, nil)

	if _, err := m.Sign("", "alice", ClassAccess); err == nil {
		t.Fatal("expected error for empty subject id")
	}
}

func TestSignRejectsUnknownClass(t *testing.T) {
	m := newTestManager(t, nil)

	if _, err := m.Sign("user-1", "alice", Class("session")); err == nil {
		t.Fatal("expected error for unknown class")
	}
	if _, err := m.Verify("whatever", Class("session")); err == nil {
		t.Fatal("expected error for unknown class")
	}
}
