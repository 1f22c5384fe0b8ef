// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	dsnScheme = "hive"

	defaultPort           = 10000
	defaultProtocol       = "http"
	defaultPath           = "/cliservice"
	defaultConnectTimeout = 60 * time.Second
	defaultBatchSize      = 100
)

// Config is the set of configuration parameters of a connection. It is parsed from a DSN string or loaded
// from connections.toml.
type Config struct {
	Host           string        // hostname of the gateway
	Port           int           // port (optional)
	Protocol       string        // http or https (optional)
	Path           string        // base path of the gateway endpoints (optional)
	ConnectTimeout time.Duration // Dial timeout
	RequestTimeout time.Duration // Timeout of a single RPC, 0 means none

	BatchSize        int               // default batch size of FetchInDefaultBatch
	Priority         JobPriority       // mapred.job.priority applied on Open
	Queue            string            // mapred.job.queue.name applied on Open
	SessionVariables map[string]string // extra SET statements applied on Open
	LogLevel         string            // level of the global logger, set on Open

	// Client replaces the bundled HTTP gateway client.
	Client Client
	// Transporter is the round tripper used by the bundled HTTP gateway client.
	Transporter http.RoundTripper
}

// ParseDSN parses the DSN string to a Config.
//
//	hive://host[:port][/path][?param1=value1&...&paramN=valueN]
//
// Recognized parameters are batchSize, priority, queue, logLevel, connectTimeout, requestTimeout and
// protocol. Every other parameter becomes a session variable.
func ParseDSN(dsn string) (*Config, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, newDSNError(err)
	}
	if u.Scheme != dsnScheme || u.Hostname() == "" {
		return nil, newDSNError(dsn)
	}
	cfg := &Config{Host: u.Hostname()}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port < 1 || port > 65535 {
			return nil, &HiveError{
				Number:      ErrCodeFailedToParsePort,
				SQLState:    SQLStateInvalidParameterValue,
				Message:     errMsgFailedToParsePort,
				MessageArgs: []interface{}{p},
			}
		}
		cfg.Port = port
	}
	if u.Path != "" && u.Path != "/" {
		cfg.Path = u.Path
	}
	if err = parseDSNParams(cfg, u.Query()); err != nil {
		return nil, err
	}
	fillMissingConfigParameters(cfg)
	return cfg, nil
}

func parseDSNParams(cfg *Config, params url.Values) (err error) {
	for name, values := range params {
		value := values[0]
		switch name {
		case "batchSize":
			if cfg.BatchSize, err = strconv.Atoi(value); err != nil || cfg.BatchSize < 1 {
				return newDSNError(name + "=" + value)
			}
		case "priority":
			cfg.Priority = JobPriority(value)
		case "queue":
			cfg.Queue = value
		case "logLevel":
			cfg.LogLevel = value
		case "protocol":
			if value != "http" && value != "https" {
				return newDSNError(name + "=" + value)
			}
			cfg.Protocol = value
		case "connectTimeout":
			if cfg.ConnectTimeout, err = parseTimeout(value); err != nil {
				return newDSNError(name + "=" + value)
			}
		case "requestTimeout":
			if cfg.RequestTimeout, err = parseTimeout(value); err != nil {
				return newDSNError(name + "=" + value)
			}
		default:
			if cfg.SessionVariables == nil {
				cfg.SessionVariables = make(map[string]string)
			}
			cfg.SessionVariables[name] = value
		}
	}
	return nil
}

// parseTimeout accepts a Go duration or a number of seconds.
func parseTimeout(value string) (time.Duration, error) {
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(value)
}

func newDSNError(arg interface{}) *HiveError {
	return &HiveError{
		Number:      ErrCodeFailedToParseDSN,
		SQLState:    SQLStateInvalidParameterValue,
		Message:     errMsgFailedToParseDSN,
		MessageArgs: []interface{}{arg},
	}
}

func fillMissingConfigParameters(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Protocol == "" {
		cfg.Protocol = defaultProtocol
	}
	if cfg.Path == "" {
		cfg.Path = defaultPath
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = defaultBatchSize
	}
}

// DSN constructs a DSN for the Hive gateway. Defaults are filled in first, and parameters equal to their
// default are left out.
func DSN(cfg *Config) (string, error) {
	if cfg.Host == "" {
		return "", newDSNError("host is required")
	}
	c := *cfg
	fillMissingConfigParameters(&c)

	params := url.Values{}
	for name, value := range c.SessionVariables {
		params.Set(name, value)
	}
	if c.BatchSize != defaultBatchSize {
		params.Set("batchSize", strconv.Itoa(c.BatchSize))
	}
	if c.Priority != "" {
		params.Set("priority", string(c.Priority))
	}
	if c.Queue != "" {
		params.Set("queue", c.Queue)
	}
	if c.LogLevel != "" {
		params.Set("logLevel", c.LogLevel)
	}
	if c.Protocol != defaultProtocol {
		params.Set("protocol", c.Protocol)
	}
	if c.ConnectTimeout != defaultConnectTimeout {
		params.Set("connectTimeout", c.ConnectTimeout.String())
	}
	if c.RequestTimeout != 0 {
		params.Set("requestTimeout", c.RequestTimeout.String())
	}

	u := url.URL{
		Scheme:   dsnScheme,
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     c.Path,
		RawQuery: params.Encode(),
	}
	return u.String(), nil
}

// baseURL is the root of the gateway endpoints.
func (c *Config) baseURL() string {
	return c.Protocol + "://" + net.JoinHostPort(c.Host, strconv.Itoa(c.Port)) + strings.TrimSuffix(c.Path, "/")
}
