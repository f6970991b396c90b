package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig
	Pass    PassConfig
	Signing SigningConfig
	Log     LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port            string `envconfig:"SERVER_PORT" default:"3000"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"30"` // seconds
	BodyLimitMB     int    `envconfig:"BODY_LIMIT_MB" default:"10"`    // strip images arrive base64-encoded in the body
}

// PassConfig holds pass template and artifact store configuration.
type PassConfig struct {
	TemplateDir string `envconfig:"PASS_TEMPLATE_DIR" default:"assets/pass-template"`
	StoreDir    string `envconfig:"PASS_STORE_DIR" default:"passes"`
	// PublicBaseURL overrides the request's own scheme/host in the
	// redemption URL. Leave empty to use the inbound request's host.
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:""`
	// ScratchDir roots the per-request derived-image directories.
	// Empty uses the system temp directory.
	ScratchDir string `envconfig:"PASS_SCRATCH_DIR" default:""`
}

// SigningConfig holds the signing identity paths. The identity is
// loaded once at startup, never re-read per request.
// WARNING: SIGN_KEY_PASSWORD has no safe default; set it via environment
// when the key PEM is encrypted.
type SigningConfig struct {
	CertPath         string `envconfig:"SIGN_CERT_PATH" default:"certs/signerCert.pem"`
	KeyPath          string `envconfig:"SIGN_KEY_PATH" default:"certs/signerKey.pem"`
	KeyPassword      string `envconfig:"SIGN_KEY_PASSWORD" default:""`
	IntermediatePath string `envconfig:"SIGN_INTERMEDIATE_PATH" default:""`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Load parses environment variables into the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
