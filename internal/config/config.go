package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/terraincognita07/flowcast/internal/services"
	"gopkg.in/yaml.v3"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]bool{
	"change_me_in_production":                    true,
	"replace_with_at_least_32_random_characters": true,
}

type Config struct {
	Port         string
	DBPath       string
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	LogMode      string
	Prediction   services.PredictionConfig
}

// Load reads .env when present, then the process environment. Missing and invalid
// keys are reported together.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Port:       getEnv("PORT", "8080"),
		DBPath:     getEnv("DB_PATH", filepath.Join("data", "flowcast.db")),
		LogMode:    getEnv("LOG_MODE", "development"),
		Location:   time.UTC,
		Prediction: services.DefaultPredictionConfig(),
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 3)

	secretKey, err := resolveSecretKey()
	switch {
	case errors.Is(err, errSecretKeyMissing):
		missing = append(missing, "SECRET_KEY")
	case err != nil:
		invalid = append(invalid, "SECRET_KEY")
	default:
		cfg.SecretKey = secretKey
	}

	if name := strings.TrimSpace(os.Getenv("TZ")); name != "" {
		location, err := time.LoadLocation(name)
		if err != nil {
			invalid = append(invalid, "TZ")
		} else {
			cfg.Location = location
		}
	}

	if raw := strings.TrimSpace(os.Getenv("COOKIE_SECURE")); raw != "" {
		secure, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, "COOKIE_SECURE")
		} else {
			cfg.CookieSecure = secure
		}
	}

	if path := strings.TrimSpace(os.Getenv("PREDICTION_CONFIG")); path != "" {
		prediction, err := LoadPredictionConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg.Prediction = prediction
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}

// LoadPredictionConfig overlays a YAML file onto the default engine tunables.
func LoadPredictionConfig(path string) (services.PredictionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return services.PredictionConfig{}, fmt.Errorf("read prediction config: %w", err)
	}

	prediction := services.DefaultPredictionConfig()
	if err := yaml.Unmarshal(data, &prediction); err != nil {
		return services.PredictionConfig{}, fmt.Errorf("parse prediction config: %w", err)
	}
	if err := prediction.Validate(); err != nil {
		return services.PredictionConfig{}, err
	}
	return prediction, nil
}

var errSecretKeyMissing = errors.New("SECRET_KEY is required")

func resolveSecretKey() (string, error) {
	secretKey := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	switch {
	case secretKey == "":
		return "", errSecretKeyMissing
	case insecureSecretKeys[strings.ToLower(secretKey)]:
		return "", errors.New("SECRET_KEY uses an insecure placeholder")
	case len(secretKey) < minSecretKeyLength:
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secretKey, nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
