package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/studenthub/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Durations are
// given in whole seconds.
//
// Only the flags handled here are picked out of os.Args (flagx.FilterArgs),
// so -c/-config and unknown flags do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-d", "-w", "-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "local database DSN")
	fs.IntVar(&cfg.Workers, "w", cfg.Workers, "number of I/O workers")
	syncInterval := fs.Int("s", int(cfg.SyncInterval.Seconds()), "automatic sync interval (in seconds, 0 disables)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "remote request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.SyncInterval = time.Duration(*syncInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
