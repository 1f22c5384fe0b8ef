// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
)

// StorageClient writes exported objects under a destination.
type StorageClient interface {
	// Put stores body under key, relative to the destination of the client.
	Put(ctx context.Context, key, contentType string, body []byte) error
	Close() error
}

// StorageConfig carries the credentials of the cloud destinations. Empty fields fall back to the SDK
// defaults.
type StorageConfig struct {
	AwsKeyID     string
	AwsSecretKey string
	AwsToken     string
	AwsRegion    string
	AwsEndpoint  string

	GcsCredentialsFile string
	GcsEndpoint        string

	AzureAccount  string
	AzureKey      string
	AzureSasToken string
	AzureEndpoint string
}

// ExportFormat selects the rendering of an exported result set.
type ExportFormat string

// Supported export formats.
const (
	ExportCSV ExportFormat = "csv"
	ExportTSV ExportFormat = "tsv"
)

// ExportOptions controls Export.
type ExportOptions struct {
	Format ExportFormat // defaults to csv
	// Compress gzips the rendered rows and appends .gz to the name.
	Compress bool
	// Name of the object. Defaults to result-{uuid}.{format}.
	Name string
}

const gzipExtension = ".gz"

// NewStorageClient returns the StorageClient for a destination URL:
// file:// or a bare path, s3://bucket/prefix, gs://bucket/prefix or azure://container/prefix.
func NewStorageClient(ctx context.Context, rawURL string, cfg StorageConfig) (StorageClient, error) {
	u, err := url.Parse(rawURL)
	if err != nil || rawURL == "" {
		return nil, newInvalidSinkError(rawURL)
	}
	prefix := strings.Trim(u.Path, "/")
	switch u.Scheme {
	case "", "file":
		dir := u.Path
		if u.Scheme == "" {
			dir = rawURL
		}
		if dir == "" {
			return nil, newInvalidSinkError(rawURL)
		}
		return &localStorageClient{dir: dir}, nil
	case "s3":
		if u.Host == "" {
			return nil, newInvalidSinkError(rawURL)
		}
		return newS3StorageClient(u.Host, prefix, cfg), nil
	case "gs":
		if u.Host == "" {
			return nil, newInvalidSinkError(rawURL)
		}
		return newGcsStorageClient(ctx, u.Host, prefix, cfg)
	case "azure":
		if u.Host == "" {
			return nil, newInvalidSinkError(rawURL)
		}
		return newAzureStorageClient(u.Host, prefix, cfg)
	}
	return nil, newInvalidSinkError(rawURL)
}

func newInvalidSinkError(rawURL string) *HiveError {
	return &HiveError{
		Number:      ErrCodeInvalidSinkURL,
		SQLState:    SQLStateInvalidParameterValue,
		Message:     errMsgInvalidSinkURL,
		MessageArgs: []interface{}{rawURL},
	}
}

func newSinkWriteError(location string, err error) *HiveError {
	return &HiveError{
		Number:      ErrCodeSinkWriteFailed,
		SQLState:    SQLStateConnectionFailure,
		Message:     errMsgSinkWriteFailed,
		MessageArgs: []interface{}{location, err},
		Err:         err,
	}
}

// Export renders a result set and stores it with sink. It returns the key of the stored object.
func Export(ctx context.Context, rs *ResultSet, sink StorageClient, opts ExportOptions) (string, error) {
	format := opts.Format
	if format == "" {
		format = ExportCSV
	}
	var sep string
	switch format {
	case ExportCSV:
		sep = csvSeparator
	case ExportTSV:
		sep = tsvSeparator
	default:
		return "", newUnsupportedOperationError("export format " + string(format))
	}
	name := opts.Name
	if name == "" {
		name = "result-" + uuid.NewString() + "." + string(format)
	}

	body := []byte(rs.Render(sep))
	if opts.Compress {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(body); err != nil {
			return "", newSinkWriteError(name, err)
		}
		if err := zw.Close(); err != nil {
			return "", newSinkWriteError(name, err)
		}
		body = buf.Bytes()
		name += gzipExtension
	}
	contentType := mimetype.Detect(body).String()

	logger.WithContext(ctx).Infof("exporting %v rows to %v. type: %v, size: %v", rs.Len(), name, contentType, len(body))
	if err := sink.Put(ctx, name, contentType, body); err != nil {
		return "", err
	}
	return name, nil
}

// localStorageClient writes objects as files under a directory.
type localStorageClient struct {
	dir string
}

func (c *localStorageClient) Put(_ context.Context, key, _ string, body []byte) error {
	fullPath := filepath.Join(c.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return newSinkWriteError(fullPath, err)
	}
	if err := os.WriteFile(fullPath, body, 0644); err != nil {
		return newSinkWriteError(fullPath, err)
	}
	return nil
}

func (c *localStorageClient) Close() error {
	return nil
}

// objectKey joins the prefix of a cloud destination and a key.
func objectKey(prefix, key string) string {
	return strings.TrimPrefix(path.Join(prefix, key), "/")
}
