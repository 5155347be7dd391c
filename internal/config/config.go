package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendSQLite = "sqlite"
	SessionBackendRedis  = "redis"

	NotifierLog     = "log"
	NotifierEmailJS = "emailjs"
	NotifierGmail   = "gmail"
)

type Config struct {
	// HTTP Server
	Port           string `env:"PORT" envDefault:"8081"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	// Session identity storage
	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"memory"`
	SQLiteDBPath   string        `env:"SQLITE_DB_PATH" envDefault:"./data/budgetplanner.db"`
	RedisURL       string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Authentication backend
	AuthAPIURL  string        `env:"AUTH_API_URL" envDefault:"http://localhost:5000"`
	AuthTimeout time.Duration `env:"AUTH_TIMEOUT" envDefault:"10s"`

	// AMQP; alerts are delivered in-process when AMQPURL is empty
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"budgetplanner"`
	AMQPQueue    string `env:"AMQP_QUEUE" envDefault:"budget_alerts"`

	// Alerting
	Notifier       string  `env:"NOTIFIER" envDefault:"log"`
	AlertThreshold float64 `env:"ALERT_THRESHOLD" envDefault:"0.10"`
	AlertQueueSize int     `env:"ALERT_QUEUE_SIZE" envDefault:"64"`

	EmailJSServiceID  string `env:"EMAILJS_SERVICE_ID"`
	EmailJSTemplateID string `env:"EMAILJS_TEMPLATE_ID"`
	EmailJSPublicKey  string `env:"EMAILJS_PUBLIC_KEY"`
	EmailJSPrivateKey string `env:"EMAILJS_PRIVATE_KEY"`
	EmailJSAPIURL     string `env:"EMAILJS_API_URL" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`

	GmailCredentialsFile string `env:"GMAIL_CREDENTIALS_FILE"`
	GmailTokenFile       string `env:"GMAIL_TOKEN_FILE"`
	GmailSender          string `env:"GMAIL_SENDER"`
}

// Load reads the configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.MaxUploadBytes < 1024 {
		errors = append(errors, fmt.Sprintf("invalid max upload size %d: must be at least 1024 bytes", c.MaxUploadBytes))
	}

	validBackends := []string{SessionBackendMemory, SessionBackendSQLite, SessionBackendRedis}
	if !oneOf(c.SessionBackend, validBackends) {
		errors = append(errors, fmt.Sprintf("invalid session backend '%s': must be one of %v", c.SessionBackend, validBackends))
	}

	switch c.SessionBackend {
	case SessionBackendSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	case SessionBackendRedis:
		if u, err := url.Parse(c.RedisURL); err != nil || c.RedisURL == "" {
			errors = append(errors, fmt.Sprintf("invalid Redis URL '%s'", c.RedisURL))
		} else if u.Scheme != "redis" && u.Scheme != "rediss" {
			errors = append(errors, fmt.Sprintf("invalid Redis URL scheme '%s': must be 'redis' or 'rediss'", u.Scheme))
		}
	}

	if c.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
	}

	if u, err := url.Parse(c.AuthAPIURL); err != nil || c.AuthAPIURL == "" {
		errors = append(errors, fmt.Sprintf("invalid auth API URL '%s'", c.AuthAPIURL))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid auth API URL scheme '%s': must be 'http' or 'https'", u.Scheme))
	}
	if c.AuthTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid auth timeout %v: must be positive", c.AuthTimeout))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.AlertThreshold <= 0 || c.AlertThreshold > 1 {
		errors = append(errors, fmt.Sprintf("invalid alert threshold %v: must be greater than 0 and at most 1", c.AlertThreshold))
	}
	if c.AlertQueueSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid alert queue size %d: must be at least 1", c.AlertQueueSize))
	}

	validNotifiers := []string{NotifierLog, NotifierEmailJS, NotifierGmail}
	switch c.Notifier {
	case NotifierLog:
	case NotifierEmailJS:
		if c.EmailJSServiceID == "" {
			errors = append(errors, "EMAILJS_SERVICE_ID is required when using the emailjs notifier")
		}
		if c.EmailJSTemplateID == "" {
			errors = append(errors, "EMAILJS_TEMPLATE_ID is required when using the emailjs notifier")
		}
		if c.EmailJSPublicKey == "" {
			errors = append(errors, "EMAILJS_PUBLIC_KEY is required when using the emailjs notifier")
		}
	case NotifierGmail:
		if c.GmailCredentialsFile == "" {
			errors = append(errors, "GMAIL_CREDENTIALS_FILE is required when using the gmail notifier")
		} else if _, err := os.Stat(c.GmailCredentialsFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("Gmail credentials file does not exist: %s", c.GmailCredentialsFile))
		}
		if c.GmailTokenFile == "" {
			errors = append(errors, "GMAIL_TOKEN_FILE is required when using the gmail notifier")
		} else if _, err := os.Stat(c.GmailTokenFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("Gmail token file does not exist: %s", c.GmailTokenFile))
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid notifier '%s': must be one of %v", c.Notifier, validNotifiers))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// UsesAMQP reports whether alerts travel through the message queue.
func (c *Config) UsesAMQP() bool {
	return c.AMQPURL != ""
}

func oneOf(v string, options []string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}
