// ABOUTME: Centralized configuration for poetsim
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/harper/poetsim/internal/charm"
	"github.com/harper/poetsim/internal/embeddings"
	"github.com/harper/poetsim/internal/llm"
	"github.com/harper/poetsim/internal/models"
	"github.com/harper/poetsim/internal/session"
	"github.com/harper/poetsim/internal/storage"
	"github.com/harper/poetsim/internal/storage/sqlite"
	openai "github.com/sashabaranov/go-openai"
)

// Config holds all configuration for poetsim
type Config struct {
	// Cache settings
	DataDir string
	Cache   string

	// Vectorisation settings
	Method      string
	Embedder    string
	VectorsPath string

	// word2vec settings
	Dimension int
	MinCount  int
	Window    int
	Iter      int
	Workers   int
	Model     string

	// OpenAI settings
	OpenAIKey      string
	OpenAIBaseURL  string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Charm settings
	CharmHost   string
	CharmDBName string
	AutoSync    bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DataDir:        getEnv("POETSIM_DATA_DIR", sqlite.DefaultDataDir()),
		Cache:          getEnv("POETSIM_CACHE", storage.BackendSQLite),
		Method:         getEnv("POETSIM_METHOD", models.MethodWord2Vec),
		Embedder:       getEnv("POETSIM_EMBEDDER", session.EmbedderWord2Vec),
		VectorsPath:    os.Getenv("POETSIM_VECTORS"),
		Dimension:      getEnvInt("POETSIM_DIMENSION", 400),
		MinCount:       getEnvInt("POETSIM_MIN_COUNT", 5),
		Window:         getEnvInt("POETSIM_WINDOW", 5),
		Iter:           getEnvInt("POETSIM_ITER", 5),
		Workers:        getEnvInt("POETSIM_WORKERS", runtime.NumCPU()),
		Model:          getEnv("POETSIM_MODEL", embeddings.ModelSkipGram),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),
		EmbeddingModel: getEnv("POETSIM_EMBEDDING_MODEL", string(llm.DefaultEmbeddingModel)),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		CharmHost:      getEnv("CHARM_HOST", "charm.2389.dev"),
		CharmDBName:    getEnv("CHARM_DB", "poetsim"),
		AutoSync:       getEnvBool("CHARM_AUTO_SYNC", true),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.Cache {
	case storage.BackendSQLite, storage.BackendCharm, storage.BackendNone:
	default:
		return fmt.Errorf("POETSIM_CACHE must be sqlite, charm or none, got %q", c.Cache)
	}
	if !models.IsValidMethod(c.Method) {
		return fmt.Errorf("POETSIM_METHOD must be word2vec or tfidf, got %q", c.Method)
	}

	switch c.Embedder {
	case session.EmbedderWord2Vec:
	case session.EmbedderPretrained:
		if c.VectorsPath == "" {
			return fmt.Errorf("POETSIM_VECTORS is required for the pretrained embedder")
		}
	case session.EmbedderOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai embedder")
		}
	default:
		return fmt.Errorf("POETSIM_EMBEDDER must be word2vec, pretrained or openai, got %q", c.Embedder)
	}

	if c.Dimension < 1 {
		return fmt.Errorf("POETSIM_DIMENSION must be positive, got %d", c.Dimension)
	}
	if c.MinCount < 1 {
		return fmt.Errorf("POETSIM_MIN_COUNT must be at least 1, got %d", c.MinCount)
	}
	if c.Window < 1 {
		return fmt.Errorf("POETSIM_WINDOW must be at least 1, got %d", c.Window)
	}
	if c.Iter < 1 {
		return fmt.Errorf("POETSIM_ITER must be at least 1, got %d", c.Iter)
	}
	if c.Workers < 1 {
		return fmt.Errorf("POETSIM_WORKERS must be at least 1, got %d", c.Workers)
	}
	if c.Model != embeddings.ModelSkipGram && c.Model != embeddings.ModelCBOW {
		return fmt.Errorf("POETSIM_MODEL must be skipgram or cbow, got %q", c.Model)
	}
	if c.RetryDelay <= 0 {
		return fmt.Errorf("OPENAI_RETRY_DELAY must be positive, got %s", c.RetryDelay)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// TrainOptions returns the word2vec training settings
func (c *Config) TrainOptions() embeddings.TrainOptions {
	return embeddings.TrainOptions{
		Dim:      c.Dimension,
		MinCount: c.MinCount,
		Window:   c.Window,
		Iter:     c.Iter,
		Workers:  c.Workers,
		Model:    c.Model,
	}
}

// CacheOptions returns the result cache settings
func (c *Config) CacheOptions() storage.Options {
	return storage.Options{
		Backend: c.Cache,
		DataDir: c.DataDir,
		Charm: &charm.Config{
			Host:     c.CharmHost,
			DBName:   c.CharmDBName,
			AutoSync: c.AutoSync,
		},
	}
}

// LLMConfig returns the OpenAI client settings
func (c *Config) LLMConfig() *llm.ClientConfig {
	return &llm.ClientConfig{
		APIKey:         c.OpenAIKey,
		BaseURL:        c.OpenAIBaseURL,
		EmbeddingModel: openai.EmbeddingModel(c.EmbeddingModel),
		MaxRetries:     c.MaxRetries,
		RetryDelay:     c.RetryDelay,
		RequestTimeout: c.Timeout,
	}
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

// SessionOptions returns the settings that shape the author vectors
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		Method:         c.Method,
		Embedder:       c.Embedder,
		Train:          c.TrainOptions(),
		VectorsPath:    c.VectorsPath,
		EmbeddingModel: c.EmbeddingModel,
		BaseURL:        c.OpenAIBaseURL,
	}
}
