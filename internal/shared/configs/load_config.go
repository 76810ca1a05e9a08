package configs

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"weblog-analytics/internal/shared/validators"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "WEBLOG"

	defaultDayBucketCount = 28
	defaultMaxUploadBytes = 8 * 1024 * 1024
	defaultSourceFormat   = "weblog"
)

// LoadConfig reads configuration from file, applies environment overrides and validates it.
// A .env file in the working directory is loaded first when present.
// Environment variables use the WEBLOG_ prefix, e.g. WEBLOG_ANALYSIS_DAY_BUCKET_COUNT=31.
var LoadConfig = func(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("analysis.day_bucket_count", defaultDayBucketCount)
	v.SetDefault("analysis.max_upload_bytes", defaultMaxUploadBytes)
	v.SetDefault("analysis.default_format", defaultSourceFormat)

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

// formatValidationError formats a single validation error as "<key path> (<rule>)",
// e.g. "analysis.day_bucket_count (max=31)".
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	// Namespace is "Config.<section>.<key>" with mapstructure names; drop the root.
	if _, path, ok := strings.Cut(e.Namespace(), "."); ok {
		field = path
	}

	switch tag := e.Tag(); tag {
	case "required":
		return fmt.Sprintf("%s (required)", field)
	case "min", "max", "oneof":
		return fmt.Sprintf("%s (%s=%s)", field, tag, e.Param())
	default:
		return fmt.Sprintf("%s (%s)", field, tag)
	}
}
