package config

import (
	"os"
	"strconv"
	"time"
)

type Settings struct {
	LogInterval     int64
	MetricsInterval time.Duration
	MetricsLogPath  string
}

func NewSettings() *Settings {
	return &Settings{
		LogInterval:     envInt64("RECOVERY_LOG_INTERVAL", 10000),
		MetricsInterval: envDuration("RECOVERY_METRICS_INTERVAL", time.Second),
		MetricsLogPath:  envString("RECOVERY_METRICS_LOG", "recovery_metrics.log"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
