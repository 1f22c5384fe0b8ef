// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// gcsObjectAPI opens a writer for one object. The object is committed when the writer is closed.
type gcsObjectAPI interface {
	NewWriter(ctx context.Context, bucket, object, contentType string) io.WriteCloser
}

type gcsClient struct {
	client *storage.Client
}

func (g *gcsClient) NewWriter(ctx context.Context, bucket, object, contentType string) io.WriteCloser {
	w := g.client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	return w
}

type gcsStorageClient struct {
	bucket string
	prefix string
	api    gcsObjectAPI
	closer io.Closer
}

func newGcsStorageClient(ctx context.Context, bucket, prefix string, cfg StorageConfig) (*gcsStorageClient, error) {
	var opts []option.ClientOption
	if cfg.GcsCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GcsCredentialsFile))
	}
	if cfg.GcsEndpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.GcsEndpoint), option.WithoutAuthentication())
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, newSinkWriteError("gs://"+bucket, err)
	}
	return &gcsStorageClient{
		bucket: bucket,
		prefix: prefix,
		api:    &gcsClient{client: client},
		closer: client,
	}, nil
}

func (c *gcsStorageClient) Put(ctx context.Context, key, contentType string, body []byte) error {
	objectName := objectKey(c.prefix, key)
	location := "gs://" + c.bucket + "/" + objectName
	w := c.api.NewWriter(ctx, c.bucket, objectName, contentType)
	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return c.wrapError(ctx, location, err)
	}
	if err := w.Close(); err != nil {
		return c.wrapError(ctx, location, err)
	}
	return nil
}

func (c *gcsStorageClient) wrapError(ctx context.Context, location string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		logger.WithContext(ctx).Errorf("failed to upload %v. HTTP: %v, message: %v", location, gerr.Code, gerr.Message)
		return newSinkWriteError(location, fmt.Errorf("HTTP %v: %w", gerr.Code, err))
	}
	return newSinkWriteError(location, err)
}

func (c *gcsStorageClient) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
