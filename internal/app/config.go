package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/merchly/console-backend/internal/logger"
	"github.com/merchly/console-backend/internal/utils"
)

type Config struct {
	ServiceName     string
	Environment     string
	Version         string
	AllowOrigins    []string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// fileConfig is the optional CONFIG_FILE overlay. Environment variables win
// over file values; the file only fills what the environment left unset.
type fileConfig struct {
	ServiceName  string   `yaml:"service_name"`
	Environment  string   `yaml:"environment"`
	AllowOrigins []string `yaml:"allow_origins"`
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		ServiceName:     utils.GetEnv("SERVICE_NAME", "merchly-console", log),
		Environment:     utils.GetEnv("ENVIRONMENT", "development", log),
		Version:         utils.GetEnv("SERVICE_VERSION", "dev", log),
		JWTSecretKey:    utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL:  time.Duration(utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)) * time.Second,
		RefreshTokenTTL: time.Duration(utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)) * time.Second,
	}
	if raw := strings.TrimSpace(os.Getenv("ALLOW_ORIGINS")); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
			}
		}
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := applyConfigFile(&cfg, path); err != nil {
			log.Warn("config file overlay skipped", "path", path, "error", err)
		}
	}
	return cfg
}

func applyConfigFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if os.Getenv("SERVICE_NAME") == "" && fc.ServiceName != "" {
		cfg.ServiceName = fc.ServiceName
	}
	if os.Getenv("ENVIRONMENT") == "" && fc.Environment != "" {
		cfg.Environment = fc.Environment
	}
	if len(cfg.AllowOrigins) == 0 && len(fc.AllowOrigins) > 0 {
		cfg.AllowOrigins = fc.AllowOrigins
	}
	return nil
}
