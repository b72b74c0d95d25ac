package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

var ErrNotConfigured = errors.New("subscription backend is not configured")

type Server struct {
	Host        string `envconfig:"SERVER_HOST" default:"localhost"`
	HTTPPort    string `envconfig:"SERVER_HTTP_PORT" default:"8080"`
	ReadTimeout int    `envconfig:"SERVER_TIMEOUT" default:"10"`

	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty means the socket peer is the client.
	TrustedProxies []string `envconfig:"SERVER_TRUSTED_PROXIES"`
}

type Mailchimp struct {
	APIKey       string `envconfig:"MAILCHIMP_API_KEY"`
	AudienceID   string `envconfig:"MAILCHIMP_AUDIENCE_ID"`
	ServerPrefix string `envconfig:"MAILCHIMP_SERVER_PREFIX"`

	// BaseURL replaces https://{prefix}.api.mailchimp.com/3.0, used for stubs.
	BaseURL string `envconfig:"MAILCHIMP_BASE_URL"`
	Timeout int    `envconfig:"MAILCHIMP_TIMEOUT" default:"10"`
	Strict  bool   `envconfig:"MAILCHIMP_STRICT" default:"false"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type Redis struct {
	Enabled bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host    string `envconfig:"REDIS_HOST" default:"localhost"`
	Port    string `envconfig:"REDIS_PORT" default:"6379"`
	DB      int    `envconfig:"REDIS_DB" default:"0"`
	TTL     int    `envconfig:"REDIS_TTL_HOURS" default:"24"`
}

type RateLimit struct {
	RPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"1"`
	Burst int     `envconfig:"RATE_LIMIT_BURST" default:"5"`
}

type Landing struct {
	ProductName    string    `envconfig:"LANDING_PRODUCT_NAME" default:"ClueMart"`
	LaunchAt       time.Time `envconfig:"LANDING_LAUNCH_AT" default:"2025-12-25T00:01:00+13:00"`
	TeaserInterval int       `envconfig:"LANDING_TEASER_INTERVAL" default:"5"`
}

type HealthProbe struct {
	Schedule string `envconfig:"HEALTH_PROBE_SCHEDULE" default:"0 */5 * * * *"`
}

type Config struct {
	Server      Server
	Mailchimp   Mailchimp
	Breaker     Breaker
	Redis       Redis
	RateLimit   RateLimit
	Landing     Landing
	HealthProbe HealthProbe

	LogsPath         string `envconfig:"LOGS_PATH" default:"logs/cluemart.log"`
	ProviderLogsPath string `envconfig:"PROVIDER_LOGS_PATH" default:"logs/mailchimp.log"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.Mailchimp.Strict {
		if err := cfg.Mailchimp.Validate(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.HTTPPort
}

// Validate reports ErrNotConfigured when any credential is missing.
func (m Mailchimp) Validate() error {
	var missing []string
	if m.APIKey == "" {
		missing = append(missing, "MAILCHIMP_API_KEY")
	}
	if m.AudienceID == "" {
		missing = append(missing, "MAILCHIMP_AUDIENCE_ID")
	}
	if m.ServerPrefix == "" {
		missing = append(missing, "MAILCHIMP_SERVER_PREFIX")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrNotConfigured, strings.Join(missing, ", "))
	}
	return nil
}

// Endpoint is the API root for the configured data center.
func (m Mailchimp) Endpoint() string {
	if m.BaseURL != "" {
		return strings.TrimRight(m.BaseURL, "/")
	}
	return fmt.Sprintf("https://%s.api.mailchimp.com/3.0", m.ServerPrefix)
}

// String keeps the API key out of logs.
func (m Mailchimp) String() string {
	key := ""
	if m.APIKey != "" {
		key = "***"
	}
	return fmt.Sprintf("{APIKey:%s AudienceID:%s ServerPrefix:%s BaseURL:%s}",
		key, m.AudienceID, m.ServerPrefix, m.BaseURL)
}

func (r Redis) Address() string {
	return r.Host + ":" + r.Port
}
