package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type MobizonConfig struct {
	APIKey   string `yaml:"api_key"`
	SenderID string `yaml:"sender_id"`
	DryRun   bool   `yaml:"dry_run"`
}

// AuthConfig — все "ручки" учётного ядра. Интервалы в секундах, чтобы
// YAML оставался плоским; наружу отдаём time.Duration через методы ниже.
type AuthConfig struct {
	BcryptCost            int    `yaml:"bcrypt_cost"`
	OtpLength             int    `yaml:"otp_length"`
	OtpTTLSeconds         int    `yaml:"otp_ttl_seconds"`
	ResendCooldownSeconds int    `yaml:"resend_cooldown_seconds"`
	ResetTokenTTLSeconds  int    `yaml:"reset_token_ttl_seconds"`
	JWTSecret             string `yaml:"jwt_secret"`
	JWTTTLSeconds         int    `yaml:"jwt_ttl_seconds"`
}

func (a AuthConfig) OtpTTL() time.Duration {
	return time.Duration(a.OtpTTLSeconds) * time.Second
}

func (a AuthConfig) ResendCooldown() time.Duration {
	return time.Duration(a.ResendCooldownSeconds) * time.Second
}
func (a AuthConfig) ResetTokenTTL() time.Duration {
	return time.Duration(a.ResetTokenTTLSeconds) * time.Second
}

func (a AuthConfig) JWTTTL() time.Duration {
	return time.Duration(a.JWTTTLSeconds) * time.Second
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Mobizon MobizonConfig `yaml:"mobizon"`
	Auth    AuthConfig    `yaml:"auth"`
}

func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = 10
	}
	if cfg.Auth.OtpLength == 0 {
		cfg.Auth.OtpLength = 6
	}
	if cfg.Auth.OtpTTLSeconds == 0 {
		cfg.Auth.OtpTTLSeconds = 300 // 5 минут
	}
	if cfg.Auth.ResendCooldownSeconds == 0 {
		cfg.Auth.ResendCooldownSeconds = 60
	}
	if cfg.Auth.ResetTokenTTLSeconds == 0 {
		cfg.Auth.ResetTokenTTLSeconds = 900 // 15 минут
	}
	if cfg.Auth.JWTTTLSeconds == 0 {
		cfg.Auth.JWTTTLSeconds = 900
	}
}

// Секреты из окружения перекрывают YAML, чтобы ключи не жили в файле.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NUSAAUTH_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("NUSAAUTH_SMTP_PASSWORD"); v != "" {
		cfg.Email.SMTPPassword = v
	}
	if v := os.Getenv("NUSAAUTH_MOBIZON_API_KEY"); v != "" {
		cfg.Mobizon.APIKey = v
	}
	if v := os.Getenv("NUSAAUTH_DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
}
