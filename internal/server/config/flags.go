package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/studenthub/internal/flagx"
)

// parseFlags applies command-line overrides:
//
//	-a  gRPC bind address
//	-d  PostgreSQL DSN
//	-s  JWT secret
//	-t  access token validity, minutes
//	-r  refresh token validity, minutes
//	-u  S3 user
//	-p  S3 password
//	-b  S3 bucket
//	-g  S3 region
//	-e  S3 endpoint
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-r", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddrGRPC, "a", cfg.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "JWT secret key")

	accessMinutes := fs.Int("t", int(cfg.AccessTokenValidityDuration.Minutes()), "access token validity (minutes)")
	refreshMinutes := fs.Int("r", int(cfg.RefreshTokenValidityDuration.Minutes()), "refresh token validity (minutes)")

	fs.StringVar(&cfg.S3RootUser, "u", cfg.S3RootUser, "S3 user")
	fs.StringVar(&cfg.S3RootPassword, "p", cfg.S3RootPassword, "S3 password")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 snapshot bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AccessTokenValidityDuration = time.Duration(*accessMinutes) * time.Minute
	cfg.RefreshTokenValidityDuration = time.Duration(*refreshMinutes) * time.Minute
}
