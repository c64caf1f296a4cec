package config

import (
	"flag"
	"os"
	"time"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   backend base URL (default from env/defaults)
//	-d string   path to the local database file
//	-t int      request timeout in seconds
//	-debug      enable debug logging
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("bankledger", flag.ExitOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	timeoutSec := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")

	_ = fs.Parse(os.Args[1:])

	cfg.RequestTimeout = time.Duration(*timeoutSec) * time.Second
}
