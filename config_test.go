package goTask

import (
	"testing"
	"time"
)

func validTestConfig() Config {
	cfg := DefaultConfig()
	cfg.JWT.AccessSecret = []byte("config-test-access-secret")
	cfg.JWT.RenewalSecret = []byte("config-test-renewal-secret")
	return cfg
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := validTestConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero access TTL", func(c *Config) { c.JWT.AccessTTL = 0 }},
		{"negative access TTL", func(c *Config) { c.JWT.AccessTTL = -time.Minute }},
		{"zero renewal TTL", func(c *Config) { c.JWT.RenewalTTL = 0 }},
		{"renewal shorter than access", func(c *Config) {
			c.JWT.AccessTTL = time.Hour
			c.JWT.RenewalTTL = time.Minute
		}},
		{"missing access secret", func(c *Config) { c.JWT.AccessSecret = nil }},
		{"missing renewal secret", func(c *Config) { c.JWT.RenewalSecret = nil }},
		{"shared secret", func(c *Config) { c.JWT.RenewalSecret = c.JWT.AccessSecret }},
		{"negative leeway", func(c *Config) { c.JWT.Leeway = -time.Second }},
		{"excessive leeway", func(c *Config) { c.JWT.Leeway = 5 * time.Minute }},
		{"cost below bcrypt minimum", func(c *Config) { c.Password.Cost = 2 }},
		{"cost above bcrypt maximum", func(c *Config) { c.Password.Cost = 40 }},
		{"empty redis prefix", func(c *Config) { c.Whitelist.RedisPrefix = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validTestConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("Validate accepted %s", tc.name)
			}
		})
	}
}

func TestCloneConfigIsolatesSecrets(t *testing.T) {
	cfg := validTestConfig()
	clone := cloneConfig(cfg)

	cfg.JWT.AccessSecret[0] ^= 0xff
	if clone.JWT.AccessSecret[0] == cfg.JWT.AccessSecret[0] {
		t.Fatal("clone shares the access secret backing array")
	}

	cfg.JWT.RenewalSecret[0] ^= 0xff
	if clone.JWT.RenewalSecret[0] == cfg.JWT.RenewalSecret[0] {
		t.Fatal("clone shares the renewal secret backing array")
	}
}

func TestDefaultConfigShape(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.JWT.AccessTTL <= 0 || cfg.JWT.RenewalTTL <= 0 {
		t.Fatal("default TTLs must be positive")
	}
	if cfg.JWT.RenewalTTL < cfg.JWT.AccessTTL {
		t.Fatal("default renewal TTL shorter than access TTL")
	}
	if cfg.Password.Cost != 10 {
		t.Fatalf("default cost = %d, want 10", cfg.Password.Cost)
	}
	if cfg.Whitelist.RedisPrefix == "" {
		t.Fatal("default redis prefix empty")
	}
}
