package config

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/go-cmp/cmp"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
		want Config
	}{
		{
			name: "defaults",
			want: Config{
				Addr:           ":3000",
				AllowOrigins:   []string{"http://localhost:5173"},
				LogLevel:       log.LevelInfo,
				SessionIdleTTL: 30 * time.Minute,
				ReapInterval:   time.Minute,
			},
		},
		{
			name: "environment",
			env: map[string]string{
				"CHESS_ADDR":             ":8080",
				"CHESS_ALLOW_ORIGINS":    "https://a.example, https://b.example",
				"CHESS_LOG_LEVEL":        "DEBUG",
				"CHESS_SESSION_IDLE_TTL": "0",
			},
			want: Config{
				Addr:           ":8080",
				AllowOrigins:   []string{"https://a.example", "https://b.example"},
				LogLevel:       log.LevelDebug,
				SessionIdleTTL: 0,
				ReapInterval:   time.Minute,
			},
		},
		{
			name: "flags override environment",
			args: []string{"-addr", ":9000", "-reap-interval", "10s"},
			env:  map[string]string{"CHESS_ADDR": ":8080"},
			want: Config{
				Addr:           ":9000",
				AllowOrigins:   []string{"http://localhost:5173"},
				LogLevel:       log.LevelInfo,
				SessionIdleTTL: 30 * time.Minute,
				ReapInterval:   10 * time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.args, env(tt.env))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad level", args: []string{"-log-level", "loud"}},
		{name: "bad duration", args: []string{"-session-idle-ttl", "soon"}},
		{name: "negative ttl", args: []string{"-session-idle-ttl", "-1m"}},
		{name: "zero interval", args: []string{"-reap-interval", "0"}},
		{name: "empty addr", args: []string{"-addr", ""}},
		{name: "no origins", args: []string{"-allow-origins", " , "}},
		{name: "unknown flag", args: []string{"-port", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args, env(nil))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Load error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
