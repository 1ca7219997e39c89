// Package config loads the runtime settings of the Latte'd data layer.
package config

import "time"

// Config holds runtime settings.
//
// Sources are layered defaults → JSON file → command-line flags, with later
// sources taking precedence.
type Config struct {
	// DatabasePath is the SQLite file holding both local stores.
	DatabasePath string

	// Document service (remote document database) coordinates. The URL is
	// the RPC endpoint, e.g. ws://host:8000/rpc.
	DocServiceURL  string
	DocServiceNS   string
	DocServiceDB   string
	DocServiceUser string
	DocServicePass string

	// Blob storage (S3-compatible) coordinates.
	S3Region       string
	S3Bucket       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	// FeedCacheTTL bounds reuse of one public-feed fetch.
	FeedCacheTTL time.Duration

	// ThumbnailTimeout bounds one thumbnail generation attempt.
	ThumbnailTimeout time.Duration

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// LoadDefaults populates c with sensible defaults for local development.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "latted.db"
	c.DocServiceURL = "ws://127.0.0.1:8000/rpc"
	c.DocServiceNS = "latted"
	c.DocServiceDB = "latted"
	c.DocServiceUser = "root"
	c.DocServicePass = "root"
	c.S3Region = "us-east-1"
	c.S3Bucket = "latted-media"
	c.FeedCacheTTL = 30 * time.Second
	c.ThumbnailTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
