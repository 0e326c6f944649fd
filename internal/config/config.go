package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/nikolayk812/orders/internal/logging"
)

type Config struct {
	Port            string
	DatabaseURI     string
	DBMaxConns      int32
	LogLevel        slog.Level
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// CascadeItemChanges makes item writes refresh the parent order.
	CascadeItemChanges bool
}

// Load reads the configuration through getenv, usually os.Getenv.
func Load(getenv func(string) string) (Config, error) {
	var c Config

	env := func(key, fallback string) string {
		if value := strings.TrimSpace(getenv(key)); value != "" {
			return value
		}
		return fallback
	}

	c.Port = env("PORT", "8080")

	c.DatabaseURI = env("DATABASE_URI", "")
	if c.DatabaseURI == "" {
		return c, errors.New("DATABASE_URI is required")
	}

	maxConns, err := strconv.ParseInt(env("DB_MAX_CONNS", "20"), 10, 32)
	if err != nil || maxConns <= 0 {
		return c, fmt.Errorf("DB_MAX_CONNS must be a positive integer")
	}
	c.DBMaxConns = int32(maxConns)

	c.LogLevel, err = logging.ParseLevel(env("LOG_LEVEL", "info"))
	if err != nil {
		return c, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	c.RequestTimeout, err = millis(env("REQUEST_TIMEOUT_MS", "2500"))
	if err != nil {
		return c, fmt.Errorf("REQUEST_TIMEOUT_MS: %w", err)
	}

	c.ShutdownTimeout, err = millis(env("SHUTDOWN_TIMEOUT_MS", "10000"))
	if err != nil {
		return c, fmt.Errorf("SHUTDOWN_TIMEOUT_MS: %w", err)
	}

	c.CascadeItemChanges, err = strconv.ParseBool(env("ORDERS_CASCADE_ITEM_CHANGES", "true"))
	if err != nil {
		return c, fmt.Errorf("ORDERS_CASCADE_ITEM_CHANGES: %w", err)
	}

	return c, nil
}

func millis(s string) (time.Duration, error) {
	ms, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("strconv.Atoi[%s]: %w", s, err)
	}
	if ms <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
