package config

import (
	"encoding/json"
	"time"

	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"scaleops"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string   `envconfig:"SCALEOPS_ADDRESS" default:":3443"`
	MetricsAddress  string   `envconfig:"SCALEOPS_METRICS_ADDRESS" default:":8080"`
	BaseUrl         string   `envconfig:"SCALEOPS_BASE_URL" default:"https://localhost:3443"`
	LogLevel        string   `envconfig:"SCALEOPS_LOG_LEVEL" default:"info"`
	CorsOrigins     []string `envconfig:"SCALEOPS_CORS_ORIGINS" default:"https://app.made-to-scale.com"`
	MigrationFolder string   `envconfig:"SCALEOPS_MIGRATIONS_FOLDER" default:""`

	Pipeline pipelineConfig
	Progress progressConfig
	Kafka    kafkaConfig
}

// pipelineConfig points at the external generation pipeline. Every analysis
// (avatars, ads, competitor ads) is performed out of process by webhooks that
// write their results back into the store.
type pipelineConfig struct {
	WebhookBaseUrl string        `envconfig:"SCALEOPS_WEBHOOK_BASE_URL" default:"https://sswebhook.made-to-scale.com/webhook"`
	RequestTimeout time.Duration `envconfig:"SCALEOPS_WEBHOOK_TIMEOUT" default:"30s"`
}

type progressConfig struct {
	PollInterval time.Duration `envconfig:"SCALEOPS_PROGRESS_POLL_INTERVAL" default:"5s"`
	MaxBackoff   time.Duration `envconfig:"SCALEOPS_PROGRESS_MAX_BACKOFF" default:"1m"`
	ManifestFile string        `envconfig:"SCALEOPS_PROGRESS_MANIFESTS" default:""`
}

type kafkaConfig struct {
	Brokers  []string `envconfig:"SCALEOPS_KAFKA_BROKERS" default:""`
	Topic    string   `envconfig:"SCALEOPS_KAFKA_TOPIC" default:""`
	ClientID string   `envconfig:"SCALEOPS_KAFKA_CLIENT_ID" default:""`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns the configuration built only from defaults. Used by tests.
func NewDefault() *Config {
	cfg := new(Config)
	if err := envconfig.Process("scaleops_test_unset", cfg); err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) String() string {
	redacted := *c
	if redacted.Database != nil {
		db := *redacted.Database
		db.Password = "[REDACTED]"
		redacted.Database = &db
	}
	val, _ := json.Marshal(redacted)
	return string(val)
}
