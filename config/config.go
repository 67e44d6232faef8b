package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"

	"github.com/bookhive/library-service/internal/server"
	"github.com/bookhive/library-service/pkg/kafka"
	"github.com/bookhive/library-service/pkg/logger"
	"github.com/bookhive/library-service/pkg/postgres"
)

type StoreBackend string

const (
	StoreMemory   StoreBackend = "memory"
	StorePostgres StoreBackend = "postgres"
)

type Store struct {
	Backend StoreBackend `yaml:"backend" envconfig:"STORE_BACKEND" default:"postgres"`
}

type Payment struct {
	// SuccessRate is the probability the simulated gateway accepts a
	// charge.
	SuccessRate float64 `yaml:"successRate" envconfig:"PAYMENT_SUCCESS_RATE" default:"0.9"`
}

type Credentials struct {
	// Scheme selects credential storage: plain keeps source parity,
	// argon2 hashes at rest.
	Scheme string `yaml:"scheme" envconfig:"CREDENTIAL_SCHEME" default:"plain"`
}

type Config struct {
	Server       server.Config   `yaml:"server"`
	Database     postgres.Config `yaml:"database"`
	Kafka        kafka.Config    `yaml:"kafka"`
	KafkaEnabled bool            `yaml:"kafkaEnabled" envconfig:"KAFKA_ENABLED" default:"false"`
	Store        Store           `yaml:"store"`
	Payment      Payment         `yaml:"payment"`
	Credentials  Credentials     `yaml:"credentials"`
	Log          logger.Log      `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return &cfg
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithWriteTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Server.WriteTimeout = timeout
	}
}
