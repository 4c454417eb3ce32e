package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `validate:"required"`
	MapsAPIKey  string `validate:"required"`
	MapsBaseURL string `validate:"required,url"`

	// Optional backing services. Empty means the corresponding adapter is
	// not wired and the engine runs without it.
	RedisAddr   string
	DatabaseURL string
	NATSURL     string

	RouteCacheTTL time.Duration `validate:"min=0"`
	PlanSubject   string        `validate:"required"`
	PlanTimeout   time.Duration `validate:"gt=0"`

	// Empty paths fall back to the embedded campus and timetable data.
	CampusPath   string
	SchedulePath string

	MetricsAddr string

	// Initial device fix, used until the client ships a real position.
	DeviceLat float64 `validate:"latitude"`
	DeviceLon float64 `validate:"longitude"`
}

// Load reads configuration from the environment, after loading .env when one
// exists, and validates the result.
func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getenvDefault("PORT", "8080"),
		MapsAPIKey:  os.Getenv("MAPS_API_KEY"),
		MapsBaseURL: getenvDefault("MAPS_BASE_URL", "https://maps.googleapis.com"),

		RedisAddr:   os.Getenv("REDIS_ADDR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		NATSURL:     os.Getenv("NATS_URL"),

		PlanSubject: getenvDefault("PLAN_SUBJECT", "plans.generate"),

		CampusPath:   os.Getenv("CAMPUS_PATH"),
		SchedulePath: os.Getenv("SCHEDULE_PATH"),

		MetricsAddr: getenvDefault("METRICS_ADDR", ":9090"),
	}

	var err error
	if cfg.RouteCacheTTL, err = durationEnv("ROUTE_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.PlanTimeout, err = durationEnv("PLAN_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.DeviceLat, err = floatEnv("DEVICE_LAT", 45.497211); err != nil {
		return nil, err
	}
	if cfg.DeviceLon, err = floatEnv("DEVICE_LON", -73.578929); err != nil {
		return nil, err
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}
