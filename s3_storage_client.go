// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

type s3UploadAPI interface {
	Upload(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type s3StorageClient struct {
	bucket   string
	prefix   string
	uploader s3UploadAPI
}

func newS3StorageClient(bucket, prefix string, cfg StorageConfig) *s3StorageClient {
	opts := s3.Options{Region: cfg.AwsRegion}
	if cfg.AwsKeyID != "" {
		opts.Credentials = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfg.AwsKeyID,
			cfg.AwsSecretKey,
			cfg.AwsToken))
	}
	if cfg.AwsEndpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.AwsEndpoint)
		opts.UsePathStyle = true
	}
	return &s3StorageClient{
		bucket:   bucket,
		prefix:   prefix,
		uploader: manager.NewUploader(s3.New(opts)),
	}
}

func (c *s3StorageClient) Put(ctx context.Context, key, contentType string, body []byte) error {
	objectName := objectKey(c.prefix, key)
	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(objectName),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err == nil {
		return nil
	}
	location := "s3://" + c.bucket + "/" + objectName
	var ae smithy.APIError
	if errors.As(err, &ae) {
		logger.WithContext(ctx).Errorf("failed to upload %v. code: %v, message: %v", location, ae.ErrorCode(), ae.ErrorMessage())
		return newSinkWriteError(location, fmt.Errorf("%v: %w", ae.ErrorCode(), err))
	}
	return newSinkWriteError(location, err)
}

func (c *s3StorageClient) Close() error {
	return nil
}
