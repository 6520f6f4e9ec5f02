package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultJWTTTL       = "24h"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultListenAddr   = ":8080"
	defaultUploadsDir   = "./uploads"
	defaultStaticBase   = "/static/uploads"
	defaultSignedURLTTL = "15m"
	defaultLogLevel     = "info"
	defaultLogFormat    = "json"
	defaultSMTPPort     = "587"
)

type Config struct {
	ListenAddr  string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	// Elevated service credential for the internal tenant routes.
	InternalToken string
	// Optional; when set, a scheduler Authorization header must carry
	// exactly this bearer token.
	MailerToken string

	UploadsDir   string
	StaticBase   string
	MediaSecret  string // empty disables signing, falls back to public URLs
	SignedURLTTL time.Duration
	ProxyAllowed []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", defaultListenAddr),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:     strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
		InternalToken: strings.TrimSpace(os.Getenv("INTERNAL_SERVICE_TOKEN")),
		MailerToken:   strings.TrimSpace(os.Getenv("MAILER_TOKEN")),
		UploadsDir:    getEnv("UPLOADS_DIR", defaultUploadsDir),
		StaticBase:    getEnv("STATIC_URL_BASE", defaultStaticBase),
		MediaSecret:   strings.TrimSpace(os.Getenv("MEDIA_SIGNING_SECRET")),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SMTPHost:      strings.TrimSpace(os.Getenv("SMTP_HOST")),
		SMTPPort:      getEnv("SMTP_PORT", defaultSMTPPort),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		SMTPFrom:      strings.TrimSpace(os.Getenv("SMTP_FROM")),
		LogLevel:      getEnv("LOG_LEVEL", defaultLogLevel),
		LogFormat:     getEnv("LOG_FORMAT", defaultLogFormat),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.SignedURLTTL, err = parseDurationEnv("SIGNED_URL_TTL", defaultSignedURLTTL)
	if err != nil {
		return nil, err
	}

	if raw := strings.TrimSpace(os.Getenv("REDIS_DB")); raw != "" {
		cfg.RedisDB, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", raw, err)
		}
	}

	for _, h := range strings.Split(os.Getenv("IMAGE_PROXY_ALLOWED_HOSTS"), ",") {
		h = strings.TrimSpace(strings.ToLower(h))
		if h != "" {
			cfg.ProxyAllowed = append(cfg.ProxyAllowed, h)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
