package config

import (
	"flag"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

// Defaults match the public Liberland mainnet endpoint the monitor was
// written for.
const (
	DefaultMonitorURL        = "wss://mainnet.liberland.org"
	DefaultIntervalSec       = 60
	DefaultConnectTimeoutSec = 5
	DefaultRequestTimeoutSec = 5
	DefaultServerAddr        = "0.0.0.0"
	DefaultServerPort        = 3000
	DefaultLogDir            = "logs"
)

// Config fixes the monitor target and timings at startup. It is built once
// in main and passed by value; nothing mutates it afterwards.
type Config struct {
	MonitorURL     string        // WebSocket URL of the node to monitor
	Interval       time.Duration // time between probe cycles
	ConnectTimeout time.Duration // bound on WebSocket connection establishment
	RequestTimeout time.Duration // bound on the RPC request after connecting
	Addr           string        // metrics HTTP bind address, host:port
	LogDir         string        // logs directory
	Verbose        bool          // debug-level logging when set
}

// Parse builds a Config from command-line arguments (without the program
// name) and validates it.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("wsprobe", flag.ContinueOnError)

	monitorURL := fs.String("monitor-url", DefaultMonitorURL,
		"WebSocket URL of the node to monitor (ws:// or wss://)")
	interval := fs.Uint("monitor-interval", DefaultIntervalSec,
		"interval between connection checks in seconds")
	connTimeout := fs.Uint("monitor-connection-timeout", DefaultConnectTimeoutSec,
		"timeout for establishing the WebSocket connection in seconds")
	reqTimeout := fs.Uint("monitor-request-timeout", DefaultRequestTimeoutSec,
		"timeout for RPC requests in seconds")
	serverAddr := fs.String("server-addr", DefaultServerAddr,
		"HTTP server bind address")
	serverPort := fs.Uint("server-port", DefaultServerPort,
		"HTTP server port")
	logDir := fs.String("log-dir", DefaultLogDir,
		"directory for log files")
	verbose := fs.Bool("verbose", false,
		"enable debug logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		MonitorURL:     *monitorURL,
		Interval:       time.Duration(*interval) * time.Second,
		ConnectTimeout: time.Duration(*connTimeout) * time.Second,
		RequestTimeout: time.Duration(*reqTimeout) * time.Second,
		Addr:           net.JoinHostPort(*serverAddr, strconv.Itoa(int(*serverPort))),
		LogDir:         *logDir,
		Verbose:        *verbose,
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.MonitorURL == "" {
		return fmt.Errorf("monitor-url must not be empty")
	}
	u, err := url.Parse(c.MonitorURL)
	if err != nil {
		return fmt.Errorf("monitor-url: %w", err)
	}
	if (u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
		return fmt.Errorf("monitor-url %q is not a ws:// or wss:// URL", c.MonitorURL)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("monitor-interval must be positive")
	}
	if c.ConnectTimeout <= 0 || c.RequestTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}
