package config

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"randmodel/domain/sample"
	"randmodel/internal/errors"
)

// DefaultGeneratorRate is the standalone generator's rate constant. It
// is kept as a string so the full decimal expansion survives until the
// generator parses it.
const DefaultGeneratorRate = "0.01455866498983198572668484397"

// DefaultSeed seeds the process-wide uniform stream.
const DefaultSeed int64 = 53

// Config represents the complete application configuration
type Config struct {
	Analysis  AnalysisConfig
	Generator GeneratorConfig
	Database  DatabaseConfig
	Server    ServerConfig
}

// AnalysisConfig holds analysis pipeline settings
type AnalysisConfig struct {
	InputFile string
	OutDir    string
	Seed      int64
	MaxLag    int
	Schedule  sample.Schedule
}

// GeneratorConfig holds standalone generator settings
type GeneratorConfig struct {
	Shape int64
	Rate  string
	Batch int
}

// DatabaseConfig holds run archive settings; an empty URL disables
// archiving entirely.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds report server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Analysis: AnalysisConfig{
			InputFile: getEnvOrDefault("INPUT_FILE", "data/sequence.csv"),
			OutDir:    getEnvOrDefault("OUT_DIR", "out"),
			Seed:      getEnvInt64OrDefault("SEED", DefaultSeed),
			MaxLag:    getEnvIntOrDefault("MAX_LAG", 10),
			Schedule:  sample.DefaultSchedule,
		},
		Generator: GeneratorConfig{
			Shape: getEnvInt64OrDefault("GENERATOR_SHAPE", 3),
			Rate:  getEnvOrDefault("GENERATOR_RATE", DefaultGeneratorRate),
			Batch: getEnvIntOrDefault("GENERATOR_BATCH", 1),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Analysis.InputFile == "" {
		return errors.ConfigInvalid("input file is required")
	}
	if config.Analysis.OutDir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	if config.Analysis.MaxLag < 1 {
		return errors.ConfigInvalid("max lag must be at least 1")
	}
	if err := config.Analysis.Schedule.Validate(); err != nil {
		return errors.ConfigInvalid(err.Error())
	}
	if config.Generator.Shape < 1 {
		return errors.ConfigInvalid("generator shape must be at least 1")
	}
	if config.Generator.Batch < 1 {
		return errors.ConfigInvalid("generator batch must be at least 1")
	}
	rate, err := decimal.NewFromString(config.Generator.Rate)
	if err != nil {
		return errors.ConfigInvalid("generator rate is not a valid decimal: " + config.Generator.Rate)
	}
	if rate.Sign() <= 0 {
		return errors.ConfigInvalid("generator rate must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
