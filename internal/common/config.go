package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Pipeline PipelineConfig
	Storage  StorageConfig
	JobStore JobStoreConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// LLMConfig holds Azure OpenAI configuration
type LLMConfig struct {
	Endpoint            string
	Deployment          string
	APIVersion          string
	APIKey              string
	Timeout             time.Duration
	MaxCompletionTokens int
}

// PipelineConfig holds processing configuration
type PipelineConfig struct {
	WorkDir           string
	ProjectionWorkers int
	KeepOnFailure     bool
	JobTimeout        time.Duration
	QueueWorkers      int
	QueueSize         int
}

// StorageConfig holds result-storage configuration
type StorageConfig struct {
	// Backend is "fs" or "azblob".
	Backend          string
	ResultsDir       string
	ConnectionString string
	Container        string
}

// JobStoreConfig holds job-status store configuration
type JobStoreConfig struct {
	Path string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8000"),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		LLM: LLMConfig{
			Endpoint:            getEnv("AZURE_OPENAI_ENDPOINT", ""),
			Deployment:          getEnv("AZURE_OPENAI_DEPLOYMENT", "gpt-5-mini"),
			APIVersion:          getEnv("AZURE_OPENAI_API_VERSION", "2024-12-01-preview"),
			APIKey:              getEnv("AZURE_OPENAI_API_KEY", ""),
			Timeout:             getEnvAsDuration("AZURE_OPENAI_TIMEOUT", 5*time.Minute),
			MaxCompletionTokens: getEnvAsInt("AZURE_OPENAI_MAX_COMPLETION_TOKENS", 16384),
		},
		Pipeline: PipelineConfig{
			WorkDir:           getEnv("PIPELINE_WORK_DIR", "./output"),
			ProjectionWorkers: getEnvAsInt("PIPELINE_PROJECTION_WORKERS", 4),
			KeepOnFailure:     getEnvAsBool("PIPELINE_KEEP_ON_FAILURE", false),
			JobTimeout:        getEnvAsDuration("PIPELINE_JOB_TIMEOUT", 30*time.Minute),
			QueueWorkers:      getEnvAsInt("PIPELINE_QUEUE_WORKERS", 2),
			QueueSize:         getEnvAsInt("PIPELINE_QUEUE_SIZE", 64),
		},
		Storage: StorageConfig{
			Backend:          getEnv("STORAGE_BACKEND", "fs"),
			ResultsDir:       getEnv("STORAGE_RESULTS_DIR", "./results"),
			ConnectionString: getEnv("AZURE_STORAGE_CONNECTION_STRING", ""),
			Container:        getEnv("AZURE_STORAGE_CONTAINER", "rfp-results"),
		},
		JobStore: JobStoreConfig{
			Path: getEnv("JOBSTORE_PATH", "./jobs.db"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.Endpoint == "" {
		return NewAppError("CONFIG_ERROR", "AZURE_OPENAI_ENDPOINT is required", ErrInvalidInput)
	}
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "AZURE_OPENAI_API_KEY is required", ErrInvalidInput)
	}
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Storage.Backend == "azblob" && c.Storage.ConnectionString == "" {
		return NewAppError("CONFIG_ERROR", "AZURE_STORAGE_CONNECTION_STRING is required for azblob backend", ErrInvalidInput)
	}
	return nil
}
