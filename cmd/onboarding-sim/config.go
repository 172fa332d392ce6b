package main

import "time"

// Config holds server configuration loaded from environment variables
type Config struct {
	Port int `envconfig:"PORT" default:"8090"`

	// StoreBackend selects where device configurations live: "file" for the
	// flat JSON snapshot, "redis" for a Redis-backed store.
	StoreBackend string `envconfig:"STORE_BACKEND" default:"file"`
	StorePath    string `envconfig:"STORE_PATH" default:"keys/config.json"`
	RedisURL     string `envconfig:"REDIS_URL"`

	// FrontendBaseURL is the redirect base used when the caller's origin
	// cannot be determined from the request.
	FrontendBaseURL string `envconfig:"FRONTEND_BASE_URL" default:"http://localhost:8090"`

	AuthorizationTTL time.Duration `envconfig:"AUTHORIZATION_TTL" default:"5m"`
	UserTokenTTL     time.Duration `envconfig:"USER_TOKEN_TTL" default:"15m"`
	AssertionTTL     time.Duration `envconfig:"ASSERTION_TTL" default:"5m"`
	B2BTokenTTL      time.Duration `envconfig:"B2B_TOKEN_TTL" default:"60m"`
	FinalTokenTTL    time.Duration `envconfig:"FINAL_TOKEN_TTL" default:"60m"`

	ReadHeaderTimeout time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"5s"`
	ReadTimeout       time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout      time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout       time.Duration `envconfig:"IDLE_TIMEOUT" default:"120s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}
