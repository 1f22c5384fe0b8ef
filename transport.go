// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"net"
	"net/http"
	"time"
)

// transportConfig holds the configuration for creating HTTP transports
type transportConfig struct {
	MaxIdleConns    int
	IdleConnTimeout time.Duration
	DialTimeout     time.Duration
	KeepAlive       time.Duration
}

func defaultTransportConfig(cfg *Config) *transportConfig {
	return &transportConfig{
		MaxIdleConns:    10,
		IdleConnTimeout: 30 * time.Minute,
		DialTimeout:     cfg.ConnectTimeout,
		KeepAlive:       30 * time.Second,
	}
}

// newHTTPTransport returns the round tripper of the gateway client. A configured Transporter wins.
func newHTTPTransport(cfg *Config) http.RoundTripper {
	if cfg.Transporter != nil {
		return cfg.Transporter
	}
	tc := defaultTransportConfig(cfg)
	dialer := &net.Dialer{
		Timeout:   tc.DialTimeout,
		KeepAlive: tc.KeepAlive,
	}
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		MaxIdleConns:        tc.MaxIdleConns,
		IdleConnTimeout:     tc.IdleConnTimeout,
		TLSHandshakeTimeout: tc.DialTimeout,
	}
}
