package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Worker      WorkerConfig
	Logging     LoggingConfig
	EventBus    EventBusConfig
	Provider    ProviderConfig
	Fallback    FallbackConfig
	StatusCheck StatusCheckConfig
	Redis       RedisConfig
	Audit       AuditConfig
	Poller      PollerConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ShutdownTimeout time.Duration
	CallbackBaseURL string
}

type WorkerConfig struct {
	PoolSize   int
	MaxRetries int
}

type LoggingConfig struct {
	Level string
}

type EventBusConfig struct {
	ChannelBufferSize int
}

type ProviderConfig struct {
	Name      string
	Timeout   time.Duration
	PixExpiry time.Duration
	PodPay    PodPayConfig
	KeyClub   KeyClubConfig
	LiraPay   LiraPayConfig
}

type PodPayConfig struct {
	BaseURL     string
	PublicKey   string
	SecretKey   string
	WithdrawKey string
}

type KeyClubConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	TokenTTL     time.Duration
}

type LiraPayConfig struct {
	BaseURL   string
	APISecret string
}

type MissingPixPolicy string

const (
	MissingPixFallback    MissingPixPolicy = "fallback"
	MissingPixError       MissingPixPolicy = "error"
	MissingPixPassthrough MissingPixPolicy = "passthrough"
)

type FallbackConfig struct {
	Enabled      bool
	MissingPix   MissingPixPolicy
	MerchantName string
	MerchantCity string
}

type StatusCheckConfig struct {
	CacheTTL   time.Duration
	RateWindow time.Duration
	RateLimit  int
	Store      string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuditConfig struct {
	Sink     string
	MySQLDSN string
}

type PollerConfig struct {
	Interval   time.Duration
	Timeout    time.Duration
	BaseURL    string
	StatusPath string
}

const (
	ProviderPodPay  = "podpay"
	ProviderKeyClub = "keyclub"
	ProviderLiraPay = "lirapay"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment and defaults")
	}

	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
			CallbackBaseURL: strings.TrimRight(getEnv("APP_CALLBACK_BASE_URL", ""), "/"),
		},
		Worker: WorkerConfig{
			PoolSize:   getIntEnv("WORKER_POOL_SIZE", 4),
			MaxRetries: getIntEnv("MAX_RETRIES", 5),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		EventBus: EventBusConfig{
			ChannelBufferSize: getIntEnv("EVENT_CHANNEL_BUFFER_SIZE", 1000),
		},
		Provider: ProviderConfig{
			Name:      strings.ToLower(getEnv("PAYMENT_PROVIDER", ProviderPodPay)),
			Timeout:   getDurationEnv("PROVIDER_TIMEOUT", 10*time.Second),
			PixExpiry: getDurationEnv("PIX_EXPIRY", 30*time.Minute),
			PodPay: PodPayConfig{
				BaseURL:     getEnv("PODPAY_BASE_URL", "https://api.podpay.co/v1"),
				PublicKey:   getSecretEnv("PODPAY_PUBLIC_KEY"),
				SecretKey:   getSecretEnv("PODPAY_SECRET_KEY"),
				WithdrawKey: getSecretEnv("PODPAY_WITHDRAW_KEY"),
			},
			KeyClub: KeyClubConfig{
				BaseURL:      getEnv("KEYCLUB_BASE_URL", "https://api.the-key.club/api"),
				ClientID:     getSecretEnv("KEYCLUB_CLIENT_ID"),
				ClientSecret: getSecretEnv("KEYCLUB_CLIENT_SECRET"),
				TokenTTL:     getDurationEnv("KEYCLUB_TOKEN_TTL", 5*time.Minute),
			},
			LiraPay: LiraPayConfig{
				BaseURL:   getEnv("LIRAPAY_BASE_URL", "https://api.lirapaybr.com/v1"),
				APISecret: getSecretEnv("LIRAPAY_API_SECRET"),
			},
		},
		Fallback: FallbackConfig{
			Enabled:      getBoolEnv("FALLBACK_ENABLED", true),
			MissingPix:   MissingPixPolicy(strings.ToLower(getEnv("FALLBACK_MISSING_PIX", string(MissingPixFallback)))),
			MerchantName: getEnv("FALLBACK_MERCHANT_NAME", "PIX RELAY PLACEHOLDER"),
			MerchantCity: getEnv("FALLBACK_MERCHANT_CITY", "SAO PAULO"),
		},
		StatusCheck: StatusCheckConfig{
			CacheTTL:   getDurationEnv("STATUS_CACHE_TTL", 30*time.Second),
			RateWindow: getDurationEnv("STATUS_RATE_WINDOW", 60*time.Second),
			RateLimit:  getIntEnv("STATUS_RATE_LIMIT", 2),
			Store:      strings.ToLower(getEnv("STATUS_STORE", "memory")),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Audit: AuditConfig{
			Sink:     strings.ToLower(getEnv("AUDIT_SINK", "log")),
			MySQLDSN: os.Getenv("AUDIT_MYSQL_DSN"),
		},
		Poller: PollerConfig{
			Interval:   getDurationEnv("POLL_INTERVAL", 5*time.Second),
			Timeout:    getDurationEnv("POLL_TIMEOUT", 10*time.Minute),
			BaseURL:    strings.TrimRight(getEnv("POLL_BASE_URL", "http://localhost:8080"), "/"),
			StatusPath: getEnv("POLL_STATUS_PATH", "/api/transactions/{id}"),
		},
	}
}

// Validate rejects settings the service cannot run with. Missing provider
// credentials are not an error here: the adapter reports them per call.
func (c *Config) Validate() error {
	switch c.Provider.Name {
	case ProviderPodPay, ProviderKeyClub, ProviderLiraPay:
	default:
		return fmt.Errorf("unknown PAYMENT_PROVIDER %q", c.Provider.Name)
	}

	switch c.Fallback.MissingPix {
	case MissingPixFallback, MissingPixError, MissingPixPassthrough:
	default:
		return fmt.Errorf("unknown FALLBACK_MISSING_PIX %q", c.Fallback.MissingPix)
	}

	switch c.StatusCheck.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown STATUS_STORE %q", c.StatusCheck.Store)
	}

	switch c.Audit.Sink {
	case "log":
	case "mysql":
		if c.Audit.MySQLDSN == "" {
			return fmt.Errorf("AUDIT_MYSQL_DSN is required when AUDIT_SINK=mysql")
		}
	default:
		return fmt.Errorf("unknown AUDIT_SINK %q", c.Audit.Sink)
	}

	if c.StatusCheck.RateLimit < 1 {
		return fmt.Errorf("STATUS_RATE_LIMIT must be at least 1")
	}

	return nil
}

// ProviderConfigured reports whether the selected provider has credentials.
func (c *Config) ProviderConfigured() bool {
	switch c.Provider.Name {
	case ProviderPodPay:
		return c.Provider.PodPay.PublicKey != "" && c.Provider.PodPay.SecretKey != ""
	case ProviderKeyClub:
		return c.Provider.KeyClub.ClientID != "" && c.Provider.KeyClub.ClientSecret != ""
	case ProviderLiraPay:
		return c.Provider.LiraPay.APISecret != ""
	}
	return false
}

// WebhookURL builds the postback URL for a provider, empty when no
// callback base is configured.
func (c *Config) WebhookURL(provider string) string {
	if c.Server.CallbackBaseURL == "" {
		return ""
	}
	return c.Server.CallbackBaseURL + "/api/webhook/" + provider
}

var placeholderSecrets = map[string]bool{
	"changeme":        true,
	"change-me":       true,
	"your_public_key": true,
	"your_secret_key": true,
	"your_api_secret": true,
	"xxx":             true,
	"todo":            true,
}

// IsPlaceholder reports credential values that are template leftovers.
func IsPlaceholder(v string) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	if placeholderSecrets[v] {
		return true
	}
	return strings.HasPrefix(v, "<") && strings.HasSuffix(v, ">")
}

func getSecretEnv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if IsPlaceholder(v) {
		return ""
	}
	return v
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid duration for %s: %s, using default: %s", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}
