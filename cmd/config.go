package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"storefront/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "STOREFRONT"

type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Payment  PaymentConfig
	Carrier  CarrierConfig
	Tracking TrackingConfig
	Log      LogConfig
}

type HTTPConfig struct {
	Port           string
	WebhookTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// DSN returns the connection string for the postgres driver.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig enables the cross-process order lock. Without it orders are
// locked in process only.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type PaymentConfig struct {
	ServerKey string
}

type CarrierConfig struct {
	BaseURL       string
	APIKey        string
	WebhookSecret string
	Timeout       time.Duration
}

type TrackingConfig struct {
	Schedule  string
	BatchSize int
	Timeout   time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// LoadConfig reads the configuration from STOREFRONT_ prefixed environment
// variables (e.g. STOREFRONT_DATABASE_HOST). Variables found in envFile are
// loaded first without overriding ones already set; a missing envFile is fine.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		HTTP: HTTPConfig{
			Port:           v.GetString("http.port"),
			WebhookTimeout: v.GetDuration("http.webhook_timeout"),
		},
		Database: DatabaseConfig{
			Host:         v.GetString("database.host"),
			Port:         v.GetInt("database.port"),
			User:         v.GetString("database.user"),
			Password:     v.GetString("database.password"),
			Name:         v.GetString("database.name"),
			SSLMode:      v.GetString("database.sslmode"),
			MaxOpenConns: v.GetInt("database.max_open_conns"),
			MaxIdleConns: v.GetInt("database.max_idle_conns"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
			Issuer: v.GetString("jwt.issuer"),
		},
		Payment: PaymentConfig{
			ServerKey: v.GetString("payment.server_key"),
		},
		Carrier: CarrierConfig{
			BaseURL:       v.GetString("carrier.base_url"),
			APIKey:        v.GetString("carrier.api_key"),
			WebhookSecret: v.GetString("carrier.webhook_secret"),
			Timeout:       v.GetDuration("carrier.timeout"),
		},
		Tracking: TrackingConfig{
			Schedule:  v.GetString("tracking.schedule"),
			BatchSize: v.GetInt("tracking.batch_size"),
			Timeout:   v.GetDuration("tracking.timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.webhook_timeout", 10*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "storefront")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.issuer", "storefront")

	v.SetDefault("carrier.base_url", "https://api.biteship.com")
	v.SetDefault("carrier.timeout", 15*time.Second)

	v.SetDefault("tracking.schedule", "0 */5 * * * *")
	v.SetDefault("tracking.batch_size", 50)
	v.SetDefault("tracking.timeout", 2*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate reports the first setting the service cannot start without.
func (c Config) Validate() error {
	switch {
	case c.HTTP.Port == "":
		return errs.NewValueIsRequiredError("http.port")
	case c.Database.Host == "":
		return errs.NewValueIsRequiredError("database.host")
	case c.JWT.Secret == "":
		return errs.NewValueIsRequiredError("jwt.secret")
	case c.Carrier.APIKey == "":
		return errs.NewValueIsRequiredError("carrier.api_key")
	case c.Redis.Enabled && c.Redis.Addr == "":
		return errs.NewValueIsRequiredError("redis.addr")
	case c.Tracking.BatchSize <= 0:
		return errs.NewValueIsOutOfRangeError("tracking.batch_size", c.Tracking.BatchSize, 1, nil)
	}
	return nil
}
