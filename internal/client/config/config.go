package config

import (
	"time"

	"github.com/dmitrijs2005/studenthub/internal/client/workerpool"
)

// Config holds runtime settings for the StudentHub client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DatabaseDSN: SQLite file (or ":memory:") holding the local store.
//   - Workers: size of the pool running local and remote I/O.
//   - SyncInterval: period of automatic sync cycles while online; 0 disables.
//   - RequestTimeout: upper bound of every remote call.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DatabaseDSN         string
	Workers             int
	SyncInterval        time.Duration
	RequestTimeout      time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabaseDSN = "studenthub.db"
	c.Workers = workerpool.DefaultWorkers
	c.SyncInterval = 5 * time.Minute
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
