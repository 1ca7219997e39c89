package config

import (
	"flag"
	"os"
	"time"

	"github.com/latted-app/latted/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   path to the local database file
//	-s string   document service URL
//	-t int      feed cache TTL in seconds
//
// The function filters os.Args to the flags it knows about, using
// flagx.FilterArgs, to avoid interfering with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	fs.StringVar(&cfg.DocServiceURL, "s", cfg.DocServiceURL, "document service URL")
	feedTTL := fs.Int("t", int(cfg.FeedCacheTTL.Seconds()), "feed cache TTL (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.FeedCacheTTL = time.Duration(*feedTTL) * time.Second
}
