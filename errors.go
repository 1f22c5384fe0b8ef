// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"errors"
	"fmt"
)

// HiveError is an error type including various Hive specific information.
type HiveError struct {
	Number         int
	SQLState       string
	QueryID        string
	Message        string
	MessageArgs    []interface{}
	IncludeQueryID bool
	// Err is the underlying cause, if any.
	Err error
}

func (he *HiveError) Error() string {
	message := he.Message
	if len(he.MessageArgs) > 0 {
		message = fmt.Sprintf(he.Message, he.MessageArgs...)
	}
	if he.IncludeQueryID {
		return fmt.Sprintf("%06d (%s): %s: %s", he.Number, he.SQLState, he.QueryID, message)
	}
	return fmt.Sprintf("%06d (%s): %s", he.Number, he.SQLState, message)
}

// Unwrap returns the underlying cause.
func (he *HiveError) Unwrap() error {
	return he.Err
}

const (
	// transport and service

	// ErrCodeTransportFailure is an error code for the case where the connection to the service cannot be
	// opened, used or closed.
	ErrCodeTransportFailure = 270001
	// ErrCodeServiceFailure is an error code for the case where the service failed to run a statement.
	ErrCodeServiceFailure = 270002
	// ErrCodeConnectionClosed is an error code for the case where an operation is issued on a closed connection.
	ErrCodeConnectionClosed = 270003
	// ErrCodeInvalidBatchSize is an error code for the case where a batch size below one is requested.
	ErrCodeInvalidBatchSize = 270004
	// ErrCodeUnsupportedOperation is an error code for the case where the client doesn't implement an
	// administrative operation.
	ErrCodeUnsupportedOperation = 270005

	// configuration

	// ErrCodeFailedToParseDSN is an error code for the case where a DSN is malformed.
	ErrCodeFailedToParseDSN = 270006
	// ErrCodeFailedToParsePort is an error code for the case where a DSN includes an invalid port number.
	ErrCodeFailedToParsePort = 270007
	// ErrCodeFailedToFindDSNInToml is an error code for the case where the connection name is missing in
	// connections.toml.
	ErrCodeFailedToFindDSNInToml = 270008
	// ErrCodeTomlFileParsingFailed is an error code for the case where connections.toml cannot be parsed.
	ErrCodeTomlFileParsingFailed = 270009
	// ErrCodeInvalidFilePermission is an error code for the case where connections.toml is readable by
	// other users.
	ErrCodeInvalidFilePermission = 270013

	// export

	// ErrCodeInvalidSinkURL is an error code for the case where an export destination URL is not supported.
	ErrCodeInvalidSinkURL = 270010
	// ErrCodeSinkWriteFailed is an error code for the case where writing an export failed.
	ErrCodeSinkWriteFailed = 270011
	// ErrCodeArrowConversion is an error code for the case where a result set cannot be converted to Arrow.
	ErrCodeArrowConversion = 270012
)

const (
	// SQLStateConnectionFailure is a SQLState code for the case where the connection failed.
	SQLStateConnectionFailure = "08006"
	// SQLStateConnectionNotExist is a SQLState code for the case where the connection doesn't exist.
	SQLStateConnectionNotExist = "08003"
	// SQLStateFeatureNotSupported is a SQLState code for the case where the feature is not supported.
	SQLStateFeatureNotSupported = "0A000"
	// SQLStateInvalidParameterValue is a SQLState code for the case where a parameter value is invalid.
	SQLStateInvalidParameterValue = "22023"
	// SQLStateSyntaxOrAccessRule is a SQLState code used when the service rejected a statement.
	SQLStateSyntaxOrAccessRule = "42000"
)

const (
	errMsgTransportFailure            = "transport failure: %v"
	errMsgServiceFailure              = "failed to run statement: %v"
	errMsgConnectionClosed            = "connection is closed"
	errMsgInvalidBatchSize            = "batch size must be at least 1: %v"
	errMsgUnsupportedOperation        = "client doesn't support %v"
	errMsgFailedToParseDSN            = "failed to parse DSN: %v"
	errMsgFailedToParsePort           = "failed to parse a port number. port: %v"
	errMsgFailedToFindDSNInTomlFile   = "failed to find DSN %v in toml file"
	errMsgFailedToParseTomlFile       = "failed to parse toml file. key: %v, value: %v"
	errMsgInvalidPermissionToTomlFile = "file permissions different than read/write for user. file: %v, permission: %v"
	errMsgInvalidSinkURL              = "unsupported export destination: %v"
	errMsgSinkWriteFailed             = "failed to write export to %v: %v"
	errMsgArrowConversion             = "failed to convert column %v to arrow: %v"
)

var (
	// preformatted errors

	// ErrConnectionClosed is returned if an operation is issued on a closed connection.
	ErrConnectionClosed = &HiveError{
		Number:   ErrCodeConnectionClosed,
		SQLState: SQLStateConnectionNotExist,
		Message:  errMsgConnectionClosed,
	}
)

// newTransportError wraps a connection level failure. Clients return it from Open, Close and every RPC that
// failed before the service could answer.
func newTransportError(err error) *HiveError {
	return &HiveError{
		Number:      ErrCodeTransportFailure,
		SQLState:    SQLStateConnectionFailure,
		Message:     errMsgTransportFailure,
		MessageArgs: []interface{}{err},
		Err:         err,
	}
}

// newServiceError wraps a failure reported by the service itself.
func newServiceError(sqlState, message string) *HiveError {
	if sqlState == "" {
		sqlState = SQLStateSyntaxOrAccessRule
	}
	return &HiveError{
		Number:      ErrCodeServiceFailure,
		SQLState:    sqlState,
		Message:     errMsgServiceFailure,
		MessageArgs: []interface{}{message},
	}
}

func newUnsupportedOperationError(op string) *HiveError {
	return &HiveError{
		Number:      ErrCodeUnsupportedOperation,
		SQLState:    SQLStateFeatureNotSupported,
		Message:     errMsgUnsupportedOperation,
		MessageArgs: []interface{}{op},
	}
}

func hasErrorCode(err error, code int) bool {
	var he *HiveError
	if !errors.As(err, &he) {
		return false
	}
	return he.Number == code
}

// IsTransportError reports whether err is a connection level failure.
func IsTransportError(err error) bool {
	return hasErrorCode(err, ErrCodeTransportFailure)
}

// IsServiceError reports whether err is a failure reported by the service, e.g. a malformed query.
func IsServiceError(err error) bool {
	return hasErrorCode(err, ErrCodeServiceFailure)
}
