package config

import (
	"os"
	"strconv"

	"sgsalary/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Pipeline PipelineConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds the dataset source settings
type DataConfig struct {
	DatasetFile string
}

// PipelineConfig holds cleaning and aggregation thresholds
type PipelineConfig struct {
	// SalaryBandMin/Max bound plausible monthly salaries; records with
	// both bounds present outside the band are dropped during cleaning.
	SalaryBandMin float64
	SalaryBandMax float64

	// MinSampleSize is the threshold below which grouped aggregates are
	// flagged low-confidence. Configurable, not a hard-coded assumption.
	MinSampleSize int

	// DemandMinCount is the minimum posting count for a category to show
	// in the demand-vs-compensation table.
	DemandMinCount int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Data: DataConfig{
			DatasetFile: getEnvOrDefault("DATASET_FILE", "data/SGJobData.csv"),
		},
		Pipeline: PipelineConfig{
			SalaryBandMin:  getEnvFloatOrDefault("SALARY_BAND_MIN", 1000),
			SalaryBandMax:  getEnvFloatOrDefault("SALARY_BAND_MAX", 50000),
			MinSampleSize:  getEnvIntOrDefault("MIN_SAMPLE_SIZE", 5),
			DemandMinCount: getEnvIntOrDefault("DEMAND_MIN_COUNT", 10),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Data.DatasetFile == "" {
		return errors.ConfigInvalid("DATASET_FILE is required")
	}
	if config.Pipeline.SalaryBandMin < 0 {
		return errors.ConfigInvalid("SALARY_BAND_MIN must be non-negative")
	}
	if config.Pipeline.SalaryBandMax <= config.Pipeline.SalaryBandMin {
		return errors.ConfigInvalid("SALARY_BAND_MAX must exceed SALARY_BAND_MIN")
	}
	if config.Pipeline.MinSampleSize < 1 {
		return errors.ConfigInvalid("MIN_SAMPLE_SIZE must be at least 1")
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
