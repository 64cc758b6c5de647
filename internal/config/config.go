package config

import (
	"fmt"

	"github.com/akyuz-dev/product-search-api/pkg/config"
)

// Engine selection values for the ENGINE environment variable.
const (
	EngineElasticsearch = "elasticsearch"
	EngineMemory        = "memory"
)

// Config holds all service configuration, populated from the environment.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"product-search"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	Engine             string `env:"ENGINE" envDefault:"elasticsearch"`
	ElasticsearchURL   string `env:"ELASTICSEARCH_URL" envDefault:"http://localhost:9200"`
	ElasticsearchIndex string `env:"ELASTICSEARCH_INDEX" envDefault:"products"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Kafka is optional; the consumer only starts when brokers are set.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaGroupID string   `env:"KAFKA_GROUP_ID" envDefault:"product-search"`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"catalog.products"`

	// Embedding enrichment is optional; disabled unless an API key is set.
	OpenAIAPIKey   string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL  string `env:"OPENAI_BASE_URL"`
	EmbeddingModel string `env:"EMBEDDING_MODEL"`

	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint string  `env:"TRACING_ENDPOINT" envDefault:"localhost:4318"`
	TracingSample   float64 `env:"TRACING_SAMPLE_RATIO" envDefault:"1.0"`

	PprofEnabled bool     `env:"PPROF_ENABLED" envDefault:"false"`
	PprofCIDRs   []string `env:"PPROF_ALLOWED_CIDRS" envSeparator:"," envDefault:"127.0.0.0/8"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Engine != EngineElasticsearch && c.Engine != EngineMemory {
		return fmt.Errorf("config: unknown engine %q", c.Engine)
	}
	if c.Engine == EngineElasticsearch && c.ElasticsearchURL == "" {
		return fmt.Errorf("config: ELASTICSEARCH_URL is required for the elasticsearch engine")
	}
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid HTTP_PORT %d", c.HTTPPort)
	}
	return nil
}

// KafkaEnabled reports whether the event consumer should run.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// EmbeddingEnabled reports whether vector enrichment should run.
func (c *Config) EmbeddingEnabled() bool {
	return c.OpenAIAPIKey != ""
}
