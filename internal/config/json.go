package config

import (
	"encoding/json"
	"os"

	"github.com/latted-app/latted/internal/flagx"
	"github.com/latted-app/latted/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations may
// be given as strings like "30s" or as integer nanoseconds.
type JsonConfig struct {
	DatabasePath     string         `json:"database_path"`
	DocServiceURL    string         `json:"doc_service_url"`
	DocServiceNS     string         `json:"doc_service_ns"`
	DocServiceDB     string         `json:"doc_service_db"`
	DocServiceUser   string         `json:"doc_service_user"`
	DocServicePass   string         `json:"doc_service_pass"`
	S3Region         string         `json:"s3_region"`
	S3Bucket         string         `json:"s3_bucket"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	S3AccessKey      string         `json:"s3_access_key"`
	S3SecretKey      string         `json:"s3_secret_key"`
	FeedCacheTTL     timex.Duration `json:"feed_cache_ttl"`
	ThumbnailTimeout timex.Duration `json:"thumbnail_timeout"`
	LogLevel         string         `json:"log_level"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// Absent file path means no JSON layer. Read or unmarshal errors panic;
// a broken config file should stop startup, not be silently skipped.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.DocServiceURL != "" {
		cfg.DocServiceURL = jc.DocServiceURL
	}
	if jc.DocServiceNS != "" {
		cfg.DocServiceNS = jc.DocServiceNS
	}
	if jc.DocServiceDB != "" {
		cfg.DocServiceDB = jc.DocServiceDB
	}
	if jc.DocServiceUser != "" {
		cfg.DocServiceUser = jc.DocServiceUser
	}
	if jc.DocServicePass != "" {
		cfg.DocServicePass = jc.DocServicePass
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
	if jc.FeedCacheTTL.Duration != 0 {
		cfg.FeedCacheTTL = jc.FeedCacheTTL.Duration
	}
	if jc.ThumbnailTimeout.Duration != 0 {
		cfg.ThumbnailTimeout = jc.ThumbnailTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
