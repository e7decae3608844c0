// Package config defines the environment-driven application configuration.
package config

import (
	"time"
)

// Store configures the persistent key-value store.
type Store struct {
	// Path to the JSON store file. Empty means an in-memory store.
	Path        string `envconfig:"PATH" default:""`
	DatabaseKey string `envconfig:"DATABASE_KEY" default:"demipay_database"`
	SessionKey  string `envconfig:"SESSION_KEY" default:"demipay_session"`
}

// Jwt configures the optional JWT session-token source.
type Jwt struct {
	Secret string        `envconfig:"SECRET"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// Auth configures session issuance and credential verification.
type Auth struct {
	// TokenSource selects how bearer tokens are minted: opaque or jwt.
	TokenSource string `envconfig:"TOKEN_SOURCE" default:"opaque"`
	// Verifier selects how stored passwords are compared: plaintext or bcrypt.
	Verifier   string        `envconfig:"VERIFIER" default:"plaintext"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	Jwt        *Jwt          `envconfig:"JWT"`
}

// Fee configures the outgoing-transfer surcharge.
type Fee struct {
	Rate float64 `envconfig:"RATE" default:"0.005"`
}

// Latency reproduces the browser build's simulated network delays. Purely
// cosmetic; it never changes ordering or outcome.
type Latency struct {
	Enabled bool          `envconfig:"ENABLED" default:"false"`
	Auth    time.Duration `envconfig:"AUTH" default:"500ms"`
	Wallet  time.Duration `envconfig:"WALLET" default:"300ms"`
	Payment time.Duration `envconfig:"PAYMENT" default:"1s"`
	Query   time.Duration `envconfig:"QUERY" default:"400ms"`
}

// Log configures the root logger.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[demipay]"`
}

// App is the root configuration tree.
type App struct {
	Env     string   `envconfig:"APP_ENV" default:"development"`
	Log     *Log     `envconfig:"LOG"`
	Store   *Store   `envconfig:"STORE"`
	Auth    *Auth    `envconfig:"AUTH"`
	Fee     *Fee     `envconfig:"FEE"`
	Latency *Latency `envconfig:"LATENCY"`
}
