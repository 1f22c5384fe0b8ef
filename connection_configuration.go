// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"errors"
	"fmt"
	"os"
	path "path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	toml "github.com/BurntSushi/toml"
)

const (
	hiveHome               = "HIVE_HOME"
	hiveConnectionName     = "HIVE_DEFAULT_CONNECTION_NAME"
	defaultConnectionName  = "default"
	connectionsFileName    = "connections.toml"
	sessionVariablesTable  = "session"
	defaultHiveHomeDirName = ".hive"
)

// LoadConnectionConfig returns the connection config loaded from the toml file.
// By default, HIVE_HOME (the directory of connections.toml) is ~/.hive
// and HIVE_DEFAULT_CONNECTION_NAME (the table to read) is 'default'.
func LoadConnectionConfig() (*Config, error) {
	name := getConnectionName(os.Getenv(hiveConnectionName))
	hiveConfigDir, err := getTomlFilePath(os.Getenv(hiveHome))
	if err != nil {
		return nil, err
	}
	tomlFilePath := path.Join(hiveConfigDir, connectionsFileName)
	if err = validateFilePermission(tomlFilePath); err != nil {
		return nil, err
	}
	tomlInfo := make(map[string]interface{})
	if _, err = toml.DecodeFile(tomlFilePath, &tomlInfo); err != nil {
		return nil, err
	}
	connection, exist := tomlInfo[name]
	if !exist {
		return nil, &HiveError{
			Number:      ErrCodeFailedToFindDSNInToml,
			SQLState:    SQLStateInvalidParameterValue,
			Message:     errMsgFailedToFindDSNInTomlFile,
			MessageArgs: []interface{}{name},
		}
	}
	connectionConfig, ok := connection.(map[string]interface{})
	if !ok {
		return nil, newTomlParsingError(name, connection)
	}
	cfg := &Config{}
	if err = parseToml(cfg, connectionConfig); err != nil {
		return nil, err
	}
	fillMissingConfigParameters(cfg)
	return cfg, nil
}

func newTomlParsingError(key string, value interface{}) *HiveError {
	return &HiveError{
		Number:      ErrCodeTomlFileParsingFailed,
		SQLState:    SQLStateInvalidParameterValue,
		Message:     errMsgFailedToParseTomlFile,
		MessageArgs: []interface{}{key, value},
	}
}

func parseToml(cfg *Config, connection map[string]interface{}) error {
	var parsingErr error
	for key, value := range connection {
		switch strings.ToLower(key) {
		case "host":
			cfg.Host, parsingErr = parseString(value)
		case "port":
			cfg.Port, parsingErr = parseInt(value)
		case "protocol":
			cfg.Protocol, parsingErr = parseString(value)
		case "path":
			cfg.Path, parsingErr = parseString(value)
		case "batch_size":
			cfg.BatchSize, parsingErr = parseInt(value)
		case "priority":
			var v string
			v, parsingErr = parseString(value)
			cfg.Priority = JobPriority(v)
		case "queue":
			cfg.Queue, parsingErr = parseString(value)
		case "log_level":
			cfg.LogLevel, parsingErr = parseString(value)
		case "connect_timeout":
			cfg.ConnectTimeout, parsingErr = parseDuration(value)
		case "request_timeout":
			cfg.RequestTimeout, parsingErr = parseDuration(value)
		case sessionVariablesTable:
			parsingErr = parseSessionVariables(cfg, value)
		default:
			var v string
			if v, parsingErr = parseString(value); parsingErr == nil {
				setSessionVariable(cfg, key, v)
			}
		}
		if parsingErr != nil {
			return newTomlParsingError(key, value)
		}
	}
	return nil
}

func parseSessionVariables(cfg *Config, value interface{}) error {
	table, ok := value.(map[string]interface{})
	if !ok {
		return errors.New("session must be a table")
	}
	for name, v := range table {
		switch vv := v.(type) {
		case string:
			setSessionVariable(cfg, name, vv)
		case int64, float64, bool:
			setSessionVariable(cfg, name, fmt.Sprint(vv))
		default:
			return fmt.Errorf("unsupported value of session variable %v", name)
		}
	}
	return nil
}

func setSessionVariable(cfg *Config, name, value string) {
	if cfg.SessionVariables == nil {
		cfg.SessionVariables = make(map[string]string)
	}
	cfg.SessionVariables[name] = value
}

func parseInt(i interface{}) (int, error) {
	switch v := i.(type) {
	case int64:
		return int(v), nil
	case int:
		return v, nil
	case string:
		return strconv.Atoi(v)
	}
	return 0, errors.New("failed to parse the value to integer")
}

// parseDuration reads a number of seconds or a Go duration string.
func parseDuration(i interface{}) (time.Duration, error) {
	if v, ok := i.(string); ok {
		return parseTimeout(v)
	}
	num, err := parseInt(i)
	if err != nil {
		return 0, err
	}
	return time.Duration(num) * time.Second, nil
}

func parseString(i interface{}) (string, error) {
	v, ok := i.(string)
	if !ok {
		return "", errors.New("failed to convert the value to string")
	}
	return v, nil
}

func getTomlFilePath(filePath string) (string, error) {
	if len(filePath) != 0 {
		if path.IsAbs(filePath) {
			return path.Clean(filePath), nil
		}
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		filePath = path.Join(homeDir, defaultHiveHomeDirName)
	}
	return path.Abs(filePath)
}

func getConnectionName(name string) string {
	if len(name) != 0 {
		return name
	}
	return defaultConnectionName
}

func validateFilePermission(filePath string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return err
	}
	if permission := fileInfo.Mode().Perm(); permission&0077 != 0 {
		return &HiveError{
			Number:      ErrCodeInvalidFilePermission,
			SQLState:    SQLStateInvalidParameterValue,
			Message:     errMsgInvalidPermissionToTomlFile,
			MessageArgs: []interface{}{filePath, permission},
		}
	}
	return nil
}
