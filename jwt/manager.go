package jwt

import (
	"bytes"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Class defines a public type used by goTask APIs.
//
// Class instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Class string

const (
	// ClassAccess is an exported constant or variable used by the task engine.
	ClassAccess Class = "access"
	// ClassRenewal is an exported constant or variable used by the task engine.
	ClassRenewal Class = "renewal"
)

var (
	// ErrMalformed is returned when the token string cannot be parsed or decoded.
	ErrMalformed = errors.New("malformed token")
	// ErrSignature is returned when the signature does not match the secret
	// for the expected class.
	ErrSignature = errors.New("invalid token signature")
	// ErrExpired is returned when the current time is at or past the encoded expiry.
	ErrExpired = errors.New("token expired")
	// ErrWrongClass is returned when the embedded class claim does not match
	// the expected class.
	ErrWrongClass = errors.New("unexpected token class")
)

// Config defines a public type used by goTask APIs.
//
// AccessSecret and RenewalSecret must be non-empty and distinct: two
// different expiries under one key would let either class forge the other.
// TimeFunc overrides the clock for issuance and validation; it exists for
// expiry-boundary tests and defaults to time.Now.
type Config struct {
	AccessTTL     time.Duration
	RenewalTTL    time.Duration
	AccessSecret  []byte
	RenewalSecret []byte
	Issuer        string
	Leeway        time.Duration
	TimeFunc      func() time.Time
}

// Manager defines a public type used by goTask APIs.
//
// Manager instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Manager struct {
	config Config
}

// Claims carries the verified token payload: the subject identity id
// (RegisteredClaims.Subject), the user name, and the token class.
type Claims struct {
	UserName string `json:"userName"`
	Class    string `json:"cls"`
	jwt.RegisteredClaims
}

// NewManager validates cfg and returns an immutable Manager.
//
// NewManager may return an error when input validation, dependency calls, or security checks fail.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.AccessTTL <= 0 || cfg.RenewalTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	if len(cfg.AccessSecret) == 0 {
		return nil, errors.New("access secret required")
	}
	if len(cfg.RenewalSecret) == 0 {
		return nil, errors.New("renewal secret required")
	}
	if bytes.Equal(cfg.AccessSecret, cfg.RenewalSecret) {
		return nil, errors.New("access and renewal secrets must be distinct")
	}
	if cfg.TimeFunc == nil {
		cfg.TimeFunc = time.Now
	}

	return &Manager{config: cfg}, nil
}

// Sign produces a signed, time-bounded token of the given class bound to
// subjectID and userName. The class selects both the secret and the TTL and
// is embedded so it is recoverable at verification time.
func (m *Manager) Sign(subjectID, userName string, class Class) (string, error) {
	secret, ttl, err := m.classParams(class)
	if err != nil {
		return "", err
	}
	if subjectID == "" {
		return "", errors.New("subject id required")
	}

	now := m.config.TimeFunc()
	claims := Claims{
		UserName: userName,
		Class:    string(class),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.config.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Verify parses tokenStr against the secret for the expected class and
// returns its claims. Failure kinds are distinguishable — [ErrMalformed],
// [ErrSignature], [ErrExpired], [ErrWrongClass] — so callers can test them,
// but boundaries are expected to collapse all of them into one generic
// unauthenticated response.
func (m *Manager) Verify(tokenStr string, class Class) (*Claims, error) {
	secret, _, err := m.classParams(class)
	if err != nil {
		return nil, err
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}
	if m.config.TimeFunc != nil {
		options = append(options, jwt.WithTimeFunc(m.config.TimeFunc))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		default:
			return nil, ErrMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrMalformed
	}
	if claims.Class != string(class) {
		return nil, ErrWrongClass
	}
	if claims.Subject == "" {
		return nil, ErrMalformed
	}

	return claims, nil
}

func (m *Manager) classParams(class Class) ([]byte, time.Duration, error) {
	switch class {
	case ClassAccess:
		return m.config.AccessSecret, m.config.AccessTTL, nil
	case ClassRenewal:
		return m.config.RenewalSecret, m.config.RenewalTTL, nil
	default:
		return nil, 0, errors.New("unsupported token class")
	}
}
