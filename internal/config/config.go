// Package config reads server settings from flags, falling back to
// CHESS_* environment variables and then to built-in defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr           string
	AllowOrigins   []string
	LogLevel       log.Level
	SessionIdleTTL time.Duration
	ReapInterval   time.Duration
}

// Load parses args (usually os.Args[1:]) with lookupEnv supplying defaults.
func Load(args []string, lookupEnv func(string) (string, bool)) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	addr := fs.String("addr", envOr(lookupEnv, "CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("allow-origins", envOr(lookupEnv, "CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma separated CORS origins")
	level := fs.String("log-level", envOr(lookupEnv, "CHESS_LOG_LEVEL", "info"), "trace, debug, info, warn or error")
	idle := fs.String("session-idle-ttl", envOr(lookupEnv, "CHESS_SESSION_IDLE_TTL", "30m"), "drop unwatched games idle this long, 0 keeps them")
	reap := fs.String("reap-interval", envOr(lookupEnv, "CHESS_REAP_INTERVAL", "1m"), "how often idle games are checked")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := Config{
		Addr:         *addr,
		AllowOrigins: splitList(*origins),
	}

	var err error
	if cfg.LogLevel, err = parseLevel(*level); err != nil {
		return Config{}, err
	}
	if cfg.SessionIdleTTL, err = parseDuration("session-idle-ttl", *idle); err != nil {
		return Config{}, err
	}
	if cfg.ReapInterval, err = parseDuration("reap-interval", *reap); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// FromEnvironment loads the process configuration.
func FromEnvironment() (Config, error) {
	return Load(os.Args[1:], os.LookupEnv)
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is empty", ErrInvalidConfig)
	}
	if len(c.AllowOrigins) == 0 {
		return fmt.Errorf("%w: no allowed origins", ErrInvalidConfig)
	}
	if c.SessionIdleTTL < 0 {
		return fmt.Errorf("%w: session-idle-ttl is negative", ErrInvalidConfig)
	}
	if c.SessionIdleTTL > 0 && c.ReapInterval <= 0 {
		return fmt.Errorf("%w: reap-interval must be positive", ErrInvalidConfig)
	}
	return nil
}

func envOr(lookupEnv func(string) (string, bool), key, fallback string) string {
	if v, ok := lookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDuration(name, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
	}
	return d, nil
}

func parseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, s)
}
