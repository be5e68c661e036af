package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	commonmw "polyrun/internal/common/http/middleware"
	"polyrun/internal/common/mq"
	"polyrun/internal/executor/backend"
	"polyrun/internal/executor/backend/golang"
	"polyrun/internal/executor/backend/python"
	"polyrun/internal/executor/sandbox"
	"polyrun/internal/executor/sandbox/isolation"
	"polyrun/internal/executor/service"
	"polyrun/pkg/utils/logger"

	"github.com/segmentio/kafka-go"
	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPAddr         = "0.0.0.0:8090"
	defaultGRPCAddr         = "0.0.0.0:9090"
	defaultReadTimeout      = 5 * time.Second
	defaultWriteTimeout     = 5 * time.Minute
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 30 * time.Second
	defaultMetricsPath      = "/metrics"
	defaultMetricsNamespace = "polyrun"

	isolationDirect    = "direct"
	isolationDocker    = "docker"
	isolationNamespace = "namespace"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
}

// GRPCConfig holds gRPC server settings.
type GRPCConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
}

// IsolationConfig selects how a language's programs are run.
type IsolationConfig struct {
	// Mode is "direct", "docker" or "namespace".
	Mode      string                    `yaml:"mode"`
	Docker    isolation.DockerConfig    `yaml:"docker"`
	Namespace isolation.NamespaceConfig `yaml:"namespace"`
}

// LanguageConfig enables one backend and overrides its toolchain.
type LanguageConfig struct {
	ID        string            `yaml:"id"`
	Toolchain backend.Toolchain `yaml:"toolchain"`
	// Isolation falls back to the top-level isolation section when unset.
	Isolation *IsolationConfig  `yaml:"isolation"`
}

// KafkaConfig holds the asynchronous execution settings. The queue is
// disabled when no brokers are configured.
type KafkaConfig struct {
	Brokers         []string      `yaml:"brokers"`
	ClientID        string        `yaml:"clientID"`
	MinBytes        int           `yaml:"minBytes"`
	MaxBytes        int           `yaml:"maxBytes"`
	MaxWait         time.Duration `yaml:"maxWait"`
	BatchSize       int           `yaml:"batchSize"`
	BatchTimeout    time.Duration `yaml:"batchTimeout"`
	DialTimeout     time.Duration `yaml:"dialTimeout"`
	RequiredAcks    int           `yaml:"requiredAcks"`
	RequestTopic    string        `yaml:"requestTopic"`
	ReplyTopic      string        `yaml:"replyTopic"`
	ConsumerGroup   string        `yaml:"consumerGroup"`
	Concurrency     int           `yaml:"concurrency"`
	MaxRetries      int           `yaml:"maxRetries"`
	RetryDelay      time.Duration `yaml:"retryDelay"`
	DeadLetterTopic string        `yaml:"deadLetterTopic"`
}

// AppConfig holds executor-service config.
type AppConfig struct {
	Server    ServerConfig             `yaml:"server"`
	GRPC      GRPCConfig               `yaml:"grpc"`
	Logger    logger.Config            `yaml:"logger"`
	Metrics   MetricsConfig            `yaml:"metrics"`
	Worker    service.Options          `yaml:"worker"`
	Harness   sandbox.Config           `yaml:"harness"`
	Isolation IsolationConfig          `yaml:"isolation"`
	RateLimit commonmw.RateLimitConfig `yaml:"rateLimit"`
	Kafka     KafkaConfig              `yaml:"kafka"`
	Languages []LanguageConfig         `yaml:"languages"`
}

// backendFactories maps language ids to their constructors.
var backendFactories = map[string]func(backend.Toolchain, backend.Deps) (*backend.Runtime, error){
	python.Language: python.New,
	golang.Language: golang.New,
}

func loadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file failed: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse config file failed: %w", err)
	}
	return nil
}

func loadAppConfig(path string) (*AppConfig, error) {
	var cfg AppConfig
	if err := loadYAML(path, &cfg); err != nil {
		return nil, err
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) error {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultHTTPAddr
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = defaultIdleTimeout
	}
	if cfg.GRPC.Addr == "" {
		cfg.GRPC.Addr = defaultGRPCAddr
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = defaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = defaultMetricsNamespace
	}
	if cfg.Worker.MaxConcurrent <= 0 {
		cfg.Worker.MaxConcurrent = runtime.NumCPU()
	}
	if cfg.Isolation.Mode == "" {
		cfg.Isolation.Mode = isolationDirect
	}
	if err := validateIsolation(cfg.Isolation); err != nil {
		return err
	}

	if len(cfg.Languages) == 0 {
		cfg.Languages = []LanguageConfig{{ID: python.Language}, {ID: golang.Language}}
	}
	seen := make(map[string]bool, len(cfg.Languages))
	for i := range cfg.Languages {
		lang := &cfg.Languages[i]
		lang.ID = strings.ToLower(strings.TrimSpace(lang.ID))
		if _, ok := backendFactories[lang.ID]; !ok {
			return fmt.Errorf("languages[%d]: unsupported language %q", i, lang.ID)
		}
		if seen[lang.ID] {
			return fmt.Errorf("languages[%d]: language %q configured twice", i, lang.ID)
		}
		seen[lang.ID] = true
		if lang.Isolation != nil {
			if lang.Isolation.Mode == "" {
				lang.Isolation.Mode = cfg.Isolation.Mode
			}
			if err := validateIsolation(*lang.Isolation); err != nil {
				return fmt.Errorf("languages[%d]: %w", i, err)
			}
		}
	}

	if len(cfg.Kafka.Brokers) > 0 {
		if cfg.Kafka.RequestTopic == "" {
			cfg.Kafka.RequestTopic = "polyrun.execute.requests"
		}
		if cfg.Kafka.ReplyTopic == "" {
			cfg.Kafka.ReplyTopic = "polyrun.execute.replies"
		}
		if cfg.Kafka.ConsumerGroup == "" {
			cfg.Kafka.ConsumerGroup = "polyrun-executor"
		}
	}
	return nil
}

func validateIsolation(cfg IsolationConfig) error {
	switch cfg.Mode {
	case isolationDirect:
		return nil
	case isolationDocker:
		if cfg.Docker.Image == "" {
			return fmt.Errorf("docker isolation requires an image")
		}
		return nil
	case isolationNamespace:
		if err := cfg.Namespace.Validate(); err != nil {
			return fmt.Errorf("namespace isolation: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown isolation mode %q", cfg.Mode)
	}
}

// isolationFor returns the effective isolation of lang.
func (c *AppConfig) isolationFor(lang LanguageConfig) IsolationConfig {
	if lang.Isolation != nil {
		return *lang.Isolation
	}
	return c.Isolation
}

func (k KafkaConfig) enabled() bool {
	return len(k.Brokers) > 0
}

func (k KafkaConfig) toMQConfig() mq.KafkaConfig {
	return mq.KafkaConfig{
		Brokers:      k.Brokers,
		ClientID:     k.ClientID,
		MinBytes:     k.MinBytes,
		MaxBytes:     k.MaxBytes,
		MaxWait:      k.MaxWait,
		BatchSize:    k.BatchSize,
		BatchTimeout: k.BatchTimeout,
		DialTimeout:  k.DialTimeout,
		RequiredAcks: kafka.RequiredAcks(k.RequiredAcks),
	}
}

func (k KafkaConfig) toSubscribeOptions(limiter mq.FetchLimiter) *mq.SubscribeOptions {
	return &mq.SubscribeOptions{
		ConsumerGroup:   k.ConsumerGroup,
		Concurrency:     k.Concurrency,
		MaxRetries:      k.MaxRetries,
		RetryDelay:      k.RetryDelay,
		DeadLetterTopic: k.DeadLetterTopic,
		Limiter:         limiter,
	}
}
