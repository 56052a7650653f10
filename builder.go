package goTask

import (
	"errors"

	"github.com/MrEthical07/goTask/jwt"
	"github.com/MrEthical07/goTask/password"
	"github.com/MrEthical07/goTask/whitelist"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by goTask APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	users UserStore
	tasks TaskStore

	built bool
}

// New returns a Builder seeded with [DefaultConfig]. Construction performs
// no I/O until [Builder.Build].
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithUserStore describes the withuserstore operation and its observable behavior.
//
// WithUserStore may return an error when input validation, dependency calls, or security checks fail.
// WithUserStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithUserStore(users UserStore) *Builder {
	b.users = users
	return b
}

// WithTaskStore describes the withtaskstore operation and its observable behavior.
//
// WithTaskStore may return an error when input validation, dependency calls, or security checks fail.
// WithTaskStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithTaskStore(tasks TaskStore) *Builder {
	b.tasks = tasks
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build assembles an immutable [Engine]. A Builder is single-use: a second
// Build call fails rather than silently re-constructing shared state.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.users == nil {
		return nil, errors.New("user store required")
	}

	if b.tasks == nil {
		return nil, errors.New("task store required")
	}

	engine := &Engine{
		config: cloneConfig(cfg),
		users:  b.users,
		tasks:  b.tasks,
	}

	engine.whitelist = whitelist.NewStore(b.redis, cfg.Whitelist.RedisPrefix)
	engine.metrics = NewMetrics(cfg.Metrics)

	ph, err := password.NewBcrypt(password.Config{
		Cost: cfg.Password.Cost,
	})
	if err != nil {
		return nil, err
	}
	engine.passwordHash = ph

	jm, err := jwt.NewManager(jwt.Config{
		AccessTTL:     cfg.JWT.AccessTTL,
		RenewalTTL:    cfg.JWT.RenewalTTL,
		AccessSecret:  cloneBytes(cfg.JWT.AccessSecret),
		RenewalSecret: cloneBytes(cfg.JWT.RenewalSecret),
		Issuer:        cfg.JWT.Issuer,
		Leeway:        cfg.JWT.Leeway,
	})
	if err != nil {
		return nil, err
	}
	engine.jwtManager = jm

	b.built = true

	return engine, nil
}
