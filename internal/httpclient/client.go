// Package httpclient builds the *http.Client instances used by the SDK,
// with transport tuning suited to a small number of API hosts.
package httpclient

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Config holds the transport knobs the SDK cares about.
type Config struct {
	// Timeout is the overall per-request time limit
	Timeout time.Duration

	// DialTimeout bounds connection establishment
	DialTimeout time.Duration

	// TLSHandshakeTimeout bounds the TLS handshake
	TLSHandshakeTimeout time.Duration

	// MaxIdleConnsPerHost keeps keep-alive connections to the API host
	MaxIdleConnsPerHost int

	// IdleConnTimeout closes idle keep-alive connections after this long
	IdleConnTimeout time.Duration
}

// DefaultConfig returns transport defaults for the OpenFiles API. The
// overall timeout can be overridden with OPENFILES_HTTP_TIMEOUT (integer
// seconds or a Go duration string).
func DefaultConfig() Config {
	return Config{
		Timeout:             envDuration("OPENFILES_HTTP_TIMEOUT", 30*time.Second),
		DialTimeout:         10 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
}

// New creates an *http.Client with the default transport and the given
// overall timeout. A zero timeout falls back to the configured default.
func New(timeout time.Duration) *http.Client {
	cfg := DefaultConfig()
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates an *http.Client from an explicit Config.
func NewWithConfig(cfg Config) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
}

// envDuration reads a duration from the environment, accepting plain
// integer seconds or Go duration strings.
func envDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	return defaultVal
}
