package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	GRPC     GRPCConfig     `mapstructure:"grpc"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	NATS     NATSConfig     `mapstructure:"nats"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Geocoder GeocoderConfig `mapstructure:"geocoder"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Bulk     BulkConfig     `mapstructure:"bulk"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type HTTPConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

type GRPCConfig struct {
	Port string `mapstructure:"port"`
}

// MongoConfig holds the MongoDB connection settings.
type MongoConfig struct {
	URI                string        `mapstructure:"uri"`
	Database           string        `mapstructure:"database"`
	ListingsCollection string        `mapstructure:"listings_collection"`
	ConnectTimeout     time.Duration `mapstructure:"connect_timeout"`
	MaxPoolSize        uint64        `mapstructure:"max_pool_size"`
}

type RedisConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	// PublicURL overrides the endpoint when building public object URLs.
	PublicURL string `mapstructure:"public_url"`
}

type GeocoderConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Region    string        `mapstructure:"region"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	// NotifyTo receives callback and visit request notifications.
	NotifyTo []string `mapstructure:"notify_to"`
}

type AuthConfig struct {
	JWTSecret  string `mapstructure:"jwt_secret"`
	ModelPath  string `mapstructure:"model_path"`
	PolicyPath string `mapstructure:"policy_path"`
}

type BulkConfig struct {
	PreviewSize int `mapstructure:"preview_size"`
	// MaxConcurrency bounds concurrent creates during commit; 0 means unbounded.
	MaxConcurrency int `mapstructure:"max_concurrency"`
}

type MetricsConfig struct {
	Port string `mapstructure:"port"`
}

type TracingConfig struct {
	ServiceName  string `mapstructure:"service_name"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

const defaultJWTSecret = "change-me"

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_timeout", "15s")
	v.SetDefault("http.write_timeout", "60s")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("http.max_upload_bytes", 50<<20)

	v.SetDefault("grpc.port", "50052")

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "shelterly")
	v.SetDefault("mongo.listings_collection", "pgs")
	v.SetDefault("mongo.connect_timeout", "10s")
	v.SetDefault("mongo.max_pool_size", 100)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", "1h")

	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.connect_timeout", "5s")

	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.access_key", "minioadmin")
	v.SetDefault("minio.secret_key", "minioadmin")
	v.SetDefault("minio.bucket", "shelterly-media")
	v.SetDefault("minio.use_ssl", false)

	v.SetDefault("geocoder.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoder.user_agent", "shelterly-listing-service")
	v.SetDefault("geocoder.timeout", "10s")
	v.SetDefault("geocoder.region", "in")

	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)

	v.SetDefault("auth.jwt_secret", defaultJWTSecret)
	v.SetDefault("auth.model_path", "configs/rbac_model.conf")
	v.SetDefault("auth.policy_path", "configs/policy.csv")

	v.SetDefault("bulk.preview_size", 5)
	v.SetDefault("bulk.max_concurrency", 0)

	v.SetDefault("metrics.port", "9093")
	v.SetDefault("tracing.service_name", "shelterly-listing-service")
}

// LoadConfig reads defaults, an optional config file at path (file or
// directory holding config.yaml) and SHELTERLY_* environment overrides,
// e.g. SHELTERLY_MONGO_URI.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			v.SetConfigFile(path)
		} else {
			v.AddConfigPath(path)
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SHELTERLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret must not be empty")
	}
	if c.Bulk.PreviewSize <= 0 {
		return fmt.Errorf("config: bulk.preview_size must be positive, got %d", c.Bulk.PreviewSize)
	}
	if c.Bulk.MaxConcurrency < 0 {
		return fmt.Errorf("config: bulk.max_concurrency must not be negative, got %d", c.Bulk.MaxConcurrency)
	}
	return nil
}

// InsecureJWTSecret reports whether the built-in development secret is in use.
func (c *Config) InsecureJWTSecret() bool {
	return c.Auth.JWTSecret == defaultJWTSecret
}
