package config

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
)

type Config struct {
	DatabaseDSN          string `env:"DATABASE_DSN,required=true"`
	RedisURL             string `env:"REDIS_URL,required=true"`
	MailSenderAddress    string `env:"MAIL_SENDER_ADDRESS,required=true"`
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN,required=true"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN,required=true"`
	JWTSigningSecret     string `env:"JWT_SIGNING_SECRET,required=true"`
	SendTimeoutSeconds   int    `env:"SEND_TIMEOUT_SECONDS,default=10"`
	CacheTTLSeconds      int    `env:"CACHE_TTL_SECONDS,default=60"`
	APIPort              int    `env:"API_PORT,default=8080"`
	LogLevel             string `env:"LOG_LEVEL,default=info"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// SendTimeout bounds a single channel send attempt.
func (c *Config) SendTimeout() time.Duration {
	return time.Duration(c.SendTimeoutSeconds) * time.Second
}

// CacheTTL is the lifetime of cached notification reads.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
