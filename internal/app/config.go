package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Default configuration constants
const (
	DefaultSerialPort       = "/dev/ttyACM0"
	DefaultBaudRate         = 9600
	DefaultSerialTimeoutMS  = 500
	DefaultRefreshIntervalS = 300
)

// Config holds application configuration
type Config struct {
	SerialPort       string
	BaudRate         int
	SerialTimeoutMS  int
	RefreshIntervalS int
	Verbose          bool
	ShowVersion      bool
}

// SerialTimeout returns the per-write serial timeout
func (c Config) SerialTimeout() time.Duration {
	return time.Duration(c.SerialTimeoutMS) * time.Millisecond
}

// RefreshInterval returns the tick interval
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalS) * time.Second
}

// ApplyEnv overlays METARMAP_* environment variables (optionally loaded
// from a .env file) onto fields still holding their defaults, so flags
// always win over the environment.
func (c *Config) ApplyEnv() {
	// A missing .env file is not an error; plain environment still applies
	_ = godotenv.Load()

	if v := os.Getenv("METARMAP_SERIAL_PORT"); v != "" && c.SerialPort == DefaultSerialPort {
		c.SerialPort = v
	}
	if v, ok := envInt("METARMAP_BAUD_RATE"); ok && c.BaudRate == DefaultBaudRate {
		c.BaudRate = v
	}
	if v, ok := envInt("METARMAP_SERIAL_TIMEOUT_MS"); ok && c.SerialTimeoutMS == DefaultSerialTimeoutMS {
		c.SerialTimeoutMS = v
	}
	if v, ok := envInt("METARMAP_REFRESH_INTERVAL_S"); ok && c.RefreshIntervalS == DefaultRefreshIntervalS {
		c.RefreshIntervalS = v
	}
}

func envInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
