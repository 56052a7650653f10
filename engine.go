package goTask

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MrEthical07/goTask/jwt"
	"github.com/MrEthical07/goTask/password"
)

// Engine defines a public type used by goTask APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config       Config
	users        UserStore
	tasks        TaskStore
	whitelist    RenewalWhitelist
	metrics      *Metrics
	passwordHash *password.Bcrypt
	jwtManager   *jwt.Manager
}

// MetricsSnapshot returns a point-in-time deep copy of all engine metrics.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// Register creates a new account and opens its first session. A duplicate
// user name fails with [ErrAccountExists]; empty fields fail with
// [ErrInvalidArgument]. On success the returned renewal token is already
// whitelisted.
//
// Side effects: one new user record, one new whitelist entry.
func (e *Engine) Register(ctx context.Context, userName, pass string) (*TokenPair, error) {
	if e == nil || e.passwordHash == nil || e.users == nil || e.whitelist == nil {
		return nil, ErrEngineNotReady
	}
	if userName == "" || pass == "" {
		return nil, ErrInvalidArgument
	}

	hash, err := e.passwordHash.Hash(pass)
	if err != nil {
		return nil, err
	}
	pass = ""

	user, err := e.users.CreateUser(ctx, CreateUserInput{
		UserName:     userName,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, ErrAccountExists) {
			e.metricInc(MetricRegisterDuplicate)
			return nil, ErrAccountExists
		}
		return nil, err
	}

	pair, err := e.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	e.metricInc(MetricRegisterSuccess)
	return pair, nil
}

// Login verifies credentials and opens a fresh session. An unknown user
// name and a wrong password are indistinguishable to the caller — both fail
// with [ErrInvalidCredentials] so user names cannot be enumerated.
//
// Prior renewal tokens for the same identity stay whitelisted: concurrent
// sessions from multiple devices are permitted by design.
func (e *Engine) Login(ctx context.Context, userName, pass string) (*TokenPair, error) {
	if e == nil || e.passwordHash == nil || e.users == nil || e.whitelist == nil {
		return nil, ErrEngineNotReady
	}
	if userName == "" || pass == "" {
		e.metricInc(MetricLoginFailure)
		return nil, ErrInvalidCredentials
	}

	user, err := e.users.GetUserByName(ctx, userName)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			e.metricInc(MetricLoginFailure)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := e.passwordHash.Verify(pass, user.PasswordHash)
	if err != nil || !ok {
		e.metricInc(MetricLoginFailure)
		return nil, ErrInvalidCredentials
	}
	pass = ""

	pair, err := e.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	e.metricInc(MetricLoginSuccess)
	return pair, nil
}

// Renew mints a new access token from a whitelisted renewal token. The
// renewal token itself is neither rotated nor re-whitelisted: it remains
// usable until its own expiry or an explicit logout, which bounds the
// maximum session lifetime regardless of how often Renew is called.
//
// A missing, malformed, expired, forged, or revoked bearer fails with
// [ErrRenewalInvalid]; the causes are not distinguished to the caller.
func (e *Engine) Renew(ctx context.Context, renewalToken string) (string, error) {
	if e == nil || e.jwtManager == nil || e.whitelist == nil {
		return "", ErrEngineNotReady
	}
	renewalToken = strings.TrimSpace(renewalToken)
	if renewalToken == "" {
		e.metricInc(MetricRenewFailure)
		return "", ErrRenewalInvalid
	}

	claims, err := e.jwtManager.Verify(renewalToken, jwt.ClassRenewal)
	if err != nil {
		e.metricInc(MetricRenewFailure)
		return "", ErrRenewalInvalid
	}

	// Signature validity alone is not sufficient: revocation is enforced here.
	whitelisted, err := e.whitelist.Contains(ctx, renewalToken)
	if err != nil {
		return "", err
	}
	if !whitelisted {
		e.metricInc(MetricRenewFailure)
		return "", ErrRenewalInvalid
	}

	access, err := e.jwtManager.Sign(claims.Subject, claims.UserName, jwt.ClassAccess)
	if err != nil {
		return "", err
	}

	e.metricInc(MetricRenewSuccess)
	return access, nil
}

// Logout removes the given renewal token from the whitelist. It is
// idempotent — removing an absent entry is not an error — and it is the
// enforcement point for revocation: after Logout, Renew rejects the token
// even though its signature and expiry remain technically valid.
func (e *Engine) Logout(ctx context.Context, renewalToken string) error {
	if e == nil || e.whitelist == nil {
		return ErrEngineNotReady
	}
	renewalToken = strings.TrimSpace(renewalToken)
	if renewalToken == "" {
		return ErrRenewalInvalid
	}

	if err := e.whitelist.Remove(ctx, renewalToken); err != nil {
		return err
	}

	e.metricInc(MetricLogout)
	return nil
}

// Authenticate verifies an access-class token and returns the request
// identity. All verification failures — malformed input, bad signature,
// expiry, wrong class — collapse to [ErrUnauthorized] so verification
// internals never leak to clients.
func (e *Engine) Authenticate(ctx context.Context, accessToken string) (*Identity, error) {
	if e == nil || e.jwtManager == nil {
		return nil, ErrEngineNotReady
	}
	if e.metrics != nil && e.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() { e.metrics.Observe(MetricAuthenticateLatency, time.Since(start)) }()
	}

	claims, err := e.jwtManager.Verify(accessToken, jwt.ClassAccess)
	if err != nil {
		return nil, ErrUnauthorized
	}

	return &Identity{
		SubjectID: claims.Subject,
		UserName:  claims.UserName,
	}, nil
}

func (e *Engine) issueTokenPair(ctx context.Context, user UserRecord) (*TokenPair, error) {
	access, err := e.jwtManager.Sign(user.UserID, user.UserName, jwt.ClassAccess)
	if err != nil {
		return nil, err
	}

	renewal, err := e.jwtManager.Sign(user.UserID, user.UserName, jwt.ClassRenewal)
	if err != nil {
		return nil, err
	}

	if err := e.whitelist.Add(ctx, renewal, user.UserID, e.config.JWT.RenewalTTL); err != nil {
		return nil, err
	}
	e.metricInc(MetricRenewalWhitelisted)

	return &TokenPair{
		AccessToken:  access,
		RenewalToken: renewal,
	}, nil
}
