package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	ClientURL string `env:"CLIENT_URL, default=http://localhost:3000"`
	Salt      int    `env:"SALT,       default=10"`
	SeedData  bool   `env:"SEED_DATA,  default=false"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
	S3    S3Config
	Mail  MailConfig
}

// JWTConfig holds both token kinds. Expirations are in seconds.
type JWTConfig struct {
	AccessSecret      string `env:"JWT_ACCESS_TOKEN_SECRET,            required"`
	AccessExpiration  int    `env:"JWT_ACCESS_TOKEN_EXPIRATION_TIME,   default=900"`
	RefreshSecret     string `env:"JWT_REFRESH_TOKEN_SECRET,           required"`
	RefreshExpiration int    `env:"JWT_REFRESH_TOKEN_EXPIRATION_TIME,  default=604800"`
}

func (j JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessExpiration) * time.Second
}

func (j JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(j.RefreshExpiration) * time.Second
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=publishing"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type S3Config struct {
	Endpoint     string `env:"S3_ENDPOINT"`
	Region       string `env:"S3_REGION,         default=us-east-1"`
	AccessKey    string `env:"ACCESS_KEY"`
	SecretKey    string `env:"SECRET_KEY"`
	Bucket       string `env:"BUCKET_NAME,       default=images"`
	PublicURL    string `env:"BUCKET_URL"`
	UsePathStyle bool   `env:"S3_USE_PATH_STYLE, default=true"`
}

type MailConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT,          default=587"`
	From     string `env:"ROOT_EMAIL"`
	Password string `env:"ROOT_EMAIL_PASSWORD"`
	Workers  int    `env:"MAIL_WORKERS,       default=2"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l, which lets tests supply a map.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Development reports whether the service runs with developer defaults.
func (c *Config) Development() bool {
	return c.Env == "development"
}

func (c *Config) validate() error {
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return errors.New("access and refresh token secrets must differ")
	}
	if c.JWT.AccessExpiration <= 0 || c.JWT.RefreshExpiration <= 0 {
		return errors.New("token expiration times must be positive")
	}
	if c.ImageBaseURL() == "" {
		return errors.New("BUCKET_URL is required for a virtual-hosted S3_ENDPOINT")
	}
	return nil
}

// ImageBaseURL is the base URL uploaded images are served from. Without
// BUCKET_URL it is derived from the endpoint and bucket.
func (c *Config) ImageBaseURL() string {
	switch {
	case c.S3.PublicURL != "":
		return strings.TrimRight(c.S3.PublicURL, "/")
	case c.S3.Endpoint == "":
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.S3.Bucket, c.S3.Region)
	case c.S3.UsePathStyle:
		return strings.TrimRight(c.S3.Endpoint, "/") + "/" + c.S3.Bucket
	}
	return ""
}
