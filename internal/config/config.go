package config

import (
	"os"
	"strconv"
	"time"
)

// Config collects the runtime settings of the API. Everything comes from the
// environment; Load never fails, unset values get development defaults.
type Config struct {
	Addr            string
	DatabaseURL     string
	JWTSecret       string
	JWTTTL          time.Duration
	ScoringTimeout  time.Duration
	SystemAccuracy  float64
	AvgResponseTime string
}

func Load() Config {
	return Config{
		Addr:            getString("API_ADDR", ":8080"),
		DatabaseURL:     getString("DATABASE_URL", "conectasonda.db"),
		JWTSecret:       getString("JWT_SECRET", ""),
		JWTTTL:          getDuration("JWT_TTL", 24*time.Hour),
		ScoringTimeout:  getDuration("SCORING_TIMEOUT", 5*time.Second),
		SystemAccuracy:  getFloat("SYSTEM_ACCURACY", 0.945),
		AvgResponseTime: getString("AVG_RESPONSE_TIME", "n/a"),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
