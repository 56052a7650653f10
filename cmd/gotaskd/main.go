// Command gotaskd runs the goTask HTTP service against a Redis instance.
//
// Configuration comes from the environment (a local .env file is honored):
//
//	JWT_ACCESS_TOKEN    access-token signing secret (required)
//	JWT_REFRESH_TOKEN   renewal-token signing secret (required, distinct)
//	REDIS_ADDR          Redis address (default localhost:6379)
//	GOTASK_ADDR         listen address (default :8080)
//	GOTASK_ACCESS_TTL   access token lifetime (default 15m)
//	GOTASK_RENEWAL_TTL  renewal token lifetime (default 168h)
//	GOTASK_KEY_PREFIX   Redis key namespace (default gt)
//	GOTASK_METRICS      enable engine metrics (default true)
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	goTask "github.com/MrEthical07/goTask"
	"github.com/MrEthical07/goTask/api"
	"github.com/MrEthical07/goTask/store"
)

type envConfig struct {
	AccessSecret  string        `env:"JWT_ACCESS_TOKEN,required"`
	RenewalSecret string        `env:"JWT_REFRESH_TOKEN,required"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	ListenAddr    string        `env:"GOTASK_ADDR" envDefault:":8080"`
	AccessTTL     time.Duration `env:"GOTASK_ACCESS_TTL" envDefault:"15m"`
	RenewalTTL    time.Duration `env:"GOTASK_RENEWAL_TTL" envDefault:"168h"`
	KeyPrefix     string        `env:"GOTASK_KEY_PREFIX" envDefault:"gt"`
	Metrics       bool          `env:"GOTASK_METRICS" envDefault:"true"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return err
	}

	client := redis.NewClient(&redis.Options{Addr: ec.RedisAddr})
	defer client.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return err
	}

	cfg := goTask.DefaultConfig()
	cfg.JWT.AccessSecret = []byte(ec.AccessSecret)
	cfg.JWT.RenewalSecret = []byte(ec.RenewalSecret)
	cfg.JWT.AccessTTL = ec.AccessTTL
	cfg.JWT.RenewalTTL = ec.RenewalTTL
	cfg.Whitelist.RedisPrefix = ec.KeyPrefix
	cfg.Metrics.Enabled = ec.Metrics

	st := store.New(client, ec.KeyPrefix)

	engine, err := goTask.New().
		WithConfig(cfg).
		WithRedis(client).
		WithUserStore(st).
		WithTaskStore(st).
		Build()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ec.ListenAddr,
		Handler:           api.NewHandler(engine),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("goTask: listening on %s (redis %s)", ec.ListenAddr, ec.RedisAddr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		log.Printf("goTask: received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
