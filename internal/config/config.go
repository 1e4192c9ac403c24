// Package config loads server settings from flags, falling back to
// CHESS_* environment variables and then to defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	Addr                string
	AllowOrigins        []string
	Clock               time.Duration
	LogLevel            log.Level
	MatchmakingInterval time.Duration
}

func Default() Config {
	return Config{
		Addr:                ":3000",
		AllowOrigins:        []string{"http://localhost:5173"},
		Clock:               10 * time.Minute,
		LogLevel:            log.LevelInfo,
		MatchmakingInterval: time.Second,
	}
}

// Load parses args (without the program name).
func Load(args []string) (Config, error) {
	def := Default()
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	addr := fs.String("addr", env("CHESS_ADDR", def.Addr), "listen address")
	origins := fs.String("origins", env("CHESS_ALLOW_ORIGINS", strings.Join(def.AllowOrigins, ",")), "comma separated CORS/websocket origins")
	clock := fs.String("clock", env("CHESS_CLOCK", def.Clock.String()), "time per side")
	level := fs.String("log-level", env("CHESS_LOG_LEVEL", "info"), "debug, info, warn or error")
	interval := fs.String("matchmaking-interval", env("CHESS_MATCHMAKING_INTERVAL", def.MatchmakingInterval.String()), "how often the matchmaking queue is paired")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{Addr: *addr}
	for _, origin := range strings.Split(*origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}
	if len(cfg.AllowOrigins) == 0 {
		return Config{}, fmt.Errorf("at least one allowed origin is required")
	}

	var err error
	if cfg.Clock, err = positiveDuration("clock", *clock); err != nil {
		return Config{}, err
	}
	if cfg.MatchmakingInterval, err = positiveDuration("matchmaking-interval", *interval); err != nil {
		return Config{}, err
	}
	if cfg.LogLevel, err = parseLevel(*level); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func positiveDuration(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, d)
	}
	return d, nil
}

func parseLevel(value string) (log.Level, error) {
	switch strings.ToLower(value) {
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", value)
}
