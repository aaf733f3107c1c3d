package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseEnv() map[string]string {
	return map[string]string{
		"JWT_ACCESS_TOKEN_SECRET":  "access-secret",
		"JWT_REFRESH_TOKEN_SECRET": "refresh-secret",
	}
}

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	return LoadWith(context.Background(), envconfig.MapLookuper(env))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t, baseEnv())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.Development())
	assert.Equal(t, 10, cfg.Salt)
	assert.False(t, cfg.SeedData)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL())
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.True(t, cfg.S3.UsePathStyle)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, 2, cfg.Mail.Workers)
}

func TestLoad_Overrides(t *testing.T) {
	env := baseEnv()
	env["PORT"] = "9000"
	env["ENV"] = "production"
	env["SALT"] = "12"
	env["SEED_DATA"] = "true"
	env["JWT_ACCESS_TOKEN_EXPIRATION_TIME"] = "60"
	env["MAIL_WORKERS"] = "4"

	cfg, err := load(t, env)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.False(t, cfg.Development())
	assert.Equal(t, 12, cfg.Salt)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, time.Minute, cfg.JWT.AccessTTL())
	assert.Equal(t, 4, cfg.Mail.Workers)
}

func TestLoad_MissingSecret(t *testing.T) {
	env := baseEnv()
	delete(env, "JWT_REFRESH_TOKEN_SECRET")

	_, err := load(t, env)
	assert.Error(t, err)
}

func TestLoad_EqualSecrets(t *testing.T) {
	env := baseEnv()
	env["JWT_REFRESH_TOKEN_SECRET"] = env["JWT_ACCESS_TOKEN_SECRET"]

	_, err := load(t, env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}

func TestLoad_NonPositiveExpiration(t *testing.T) {
	env := baseEnv()
	env["JWT_ACCESS_TOKEN_EXPIRATION_TIME"] = "0"

	_, err := load(t, env)
	assert.Error(t, err)
}

func TestImageBaseURL(t *testing.T) {
	tests := []struct {
		name string
		s3   S3Config
		want string
	}{
		{"explicit", S3Config{PublicURL: "https://cdn.example.com/", Bucket: "images"}, "https://cdn.example.com"},
		{"aws", S3Config{Bucket: "images", Region: "eu-west-1"}, "https://images.s3.eu-west-1.amazonaws.com"},
		{"path style", S3Config{Endpoint: "http://minio:9000", Bucket: "images", UsePathStyle: true}, "http://minio:9000/images"},
		{"virtual hosted endpoint", S3Config{Endpoint: "https://storage.example.com", Bucket: "images"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{S3: tt.s3}
			assert.Equal(t, tt.want, cfg.ImageBaseURL())
		})
	}
}

func TestLoad_VirtualHostedEndpointNeedsBucketURL(t *testing.T) {
	env := baseEnv()
	env["S3_ENDPOINT"] = "https://storage.example.com"
	env["S3_USE_PATH_STYLE"] = "false"

	_, err := load(t, env)
	require.Error(t, err)

	env["BUCKET_URL"] = "https://images.storage.example.com"
	cfg, err := load(t, env)
	require.NoError(t, err)
	assert.Equal(t, "https://images.storage.example.com", cfg.ImageBaseURL())
}
