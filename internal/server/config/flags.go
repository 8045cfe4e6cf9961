package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/flagx"
)

var knownFlags = []string{"-a", "-m", "-d", "-s", "-l", "-b", "-t", "-g", "-p", "-k"}

// parseFlags overlays selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-m string   metrics bind address (empty disables)
//	-d string   PostgreSQL DSN or "memory"
//	-s string   access token HMAC secret
//	-l string   log level
//	-b string   storage backend, b2 or s3
//	-t duration per-call storage timeout (e.g., "20s")
//	-g duration download grant TTL (e.g., "1h")
//	-p string   credential refresh policy, wait or stale
//	-k string   credential scope, local or shared
//
// Arguments are filtered through flagx.FilterArgs first so that flags owned
// by other components (such as -c) do not fail parsing.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddrGRPC, "a", cfg.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "address and port to serve metrics")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "access token secret key")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.StorageBackend, "b", cfg.StorageBackend, "storage backend (b2|s3)")
	timeout := fs.String("t", cfg.StorageCallTimeout.String(), "storage call timeout")
	grantTTL := fs.String("g", cfg.DownloadGrantTTL.String(), "download grant TTL")
	fs.StringVar(&cfg.CredentialPolicy, "p", cfg.CredentialPolicy, "credential refresh policy (wait|stale)")
	fs.StringVar(&cfg.CredentialScope, "k", cfg.CredentialScope, "credential scope (local|shared)")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	d, err := time.ParseDuration(*timeout)
	if err != nil {
		return fmt.Errorf("-t: %w", err)
	}
	cfg.StorageCallTimeout = d

	d, err = time.ParseDuration(*grantTTL)
	if err != nil {
		return fmt.Errorf("-g: %w", err)
	}
	cfg.DownloadGrantTTL = d

	return nil
}
