package goTask

import (
	"bytes"
	"errors"
	"time"
)

// Config defines a public type used by goTask APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	JWT       JWTConfig
	Password  PasswordConfig
	Whitelist WhitelistConfig
	Metrics   MetricsConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig defines a public type used by goTask APIs.
//
// AccessSecret and RenewalSecret are two completely independent HMAC keys —
// one per token class — so an access-class key can never validate a
// renewal-class token and vice versa. TTLs are policy values, not hard
// contracts: access tokens live on the order of minutes, renewal tokens on
// the order of a week.
type JWTConfig struct {
	AccessTTL     time.Duration
	RenewalTTL    time.Duration
	AccessSecret  []byte
	RenewalSecret []byte
	Issuer        string
	Leeway        time.Duration
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig defines a public type used by goTask APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	Cost int
}

/*
====================================
WHITELIST CONFIG
====================================
*/

// WhitelistConfig defines a public type used by goTask APIs.
//
// WhitelistConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type WhitelistConfig struct {
	RedisPrefix string
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by goTask APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the baseline configuration: 15-minute access tokens,
// 7-day renewal tokens, bcrypt cost 10, metrics disabled. Secrets are left
// empty and must be provided by the caller.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL:  15 * time.Minute,
			RenewalTTL: 7 * 24 * time.Hour,
		},
		Password: PasswordConfig{
			Cost: 10,
		},
		Whitelist: WhitelistConfig{
			RedisPrefix: "gt",
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

func defaultConfig() Config {
	return DefaultConfig()
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.AccessSecret = cloneBytes(cfg.JWT.AccessSecret)
	out.JWT.RenewalSecret = cloneBytes(cfg.JWT.RenewalSecret)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	if c.JWT.AccessTTL <= 0 {
		return errors.New("JWT AccessTTL must be positive")
	}
	if c.JWT.RenewalTTL <= 0 {
		return errors.New("JWT RenewalTTL must be positive")
	}
	if c.JWT.RenewalTTL < c.JWT.AccessTTL {
		return errors.New("JWT RenewalTTL must not be shorter than AccessTTL")
	}
	if len(c.JWT.AccessSecret) == 0 {
		return errors.New("JWT AccessSecret must be provided")
	}
	if len(c.JWT.RenewalSecret) == 0 {
		return errors.New("JWT RenewalSecret must be provided")
	}
	if bytes.Equal(c.JWT.AccessSecret, c.JWT.RenewalSecret) {
		return errors.New("JWT AccessSecret and RenewalSecret must be distinct")
	}
	if c.JWT.Leeway < 0 || c.JWT.Leeway > 2*time.Minute {
		return errors.New("invalid leeway configuration")
	}
	if c.Password.Cost < 4 || c.Password.Cost > 31 {
		return errors.New("password cost must be between 4 and 31")
	}
	if c.Whitelist.RedisPrefix == "" {
		return errors.New("whitelist RedisPrefix must be provided")
	}
	return nil
}
