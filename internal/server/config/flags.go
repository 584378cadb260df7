package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/swappool/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-l string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN, empty disables the mirror
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-x int      content TTL, minutes
//	-i int      sweep interval, seconds
//	-m int      max view history per viewer (negative = unbounded)
//	-k int      max caption length
//	-f bool     allow filter fallback (use -f or -f=true)
//	-v string   log level
//
// Duration flags are integers and converted to time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-l", "-d", "-s", "-t", "-u", "-p", "-b", "-g", "-e", "-x", "-i", "-m", "-k", "-f", "-v",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.EndpointAddrHTTP, "l", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	contentTTL := fs.Int("x", int(config.ContentTTL.Minutes()), "content TTL (in minutes)")
	sweepInterval := fs.Int("i", int(config.SweepInterval.Seconds()), "sweep interval (in seconds)")

	fs.IntVar(&config.MaxViewHistory, "m", config.MaxViewHistory, "max view history per viewer")
	fs.IntVar(&config.MaxCaptionLength, "k", config.MaxCaptionLength, "max caption length")
	fs.BoolVar(&config.AllowFilterFallback, "f", config.AllowFilterFallback, "allow filter fallback")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.ContentTTL = time.Duration(*contentTTL) * time.Minute
	config.SweepInterval = time.Duration(*sweepInterval) * time.Second
}
