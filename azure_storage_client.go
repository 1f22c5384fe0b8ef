// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

type azureBlobAPI interface {
	UploadBuffer(ctx context.Context, containerName string, blobName string, buffer []byte, o *azblob.UploadBufferOptions) (azblob.UploadBufferResponse, error)
}

type azureStorageClient struct {
	container string
	prefix    string
	api       azureBlobAPI
}

func newAzureStorageClient(container, prefix string, cfg StorageConfig) (*azureStorageClient, error) {
	serviceURL := cfg.AzureEndpoint
	if serviceURL == "" {
		if cfg.AzureAccount == "" {
			return nil, newInvalidSinkError("azure://" + container + " without an account")
		}
		serviceURL = fmt.Sprintf("https://%s.blob.core.windows.net/", cfg.AzureAccount)
	}

	var client *azblob.Client
	var err error
	if cfg.AzureKey != "" {
		var cred *azblob.SharedKeyCredential
		if cred, err = azblob.NewSharedKeyCredential(cfg.AzureAccount, cfg.AzureKey); err == nil {
			client, err = azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
		}
	} else {
		if sas := strings.TrimPrefix(cfg.AzureSasToken, "?"); sas != "" {
			serviceURL += "?" + sas
		}
		client, err = azblob.NewClientWithNoCredential(serviceURL, nil)
	}
	if err != nil {
		return nil, newSinkWriteError("azure://"+container, err)
	}
	return &azureStorageClient{container: container, prefix: prefix, api: client}, nil
}

func (c *azureStorageClient) Put(ctx context.Context, key, contentType string, body []byte) error {
	blobName := objectKey(c.prefix, key)
	_, err := c.api.UploadBuffer(ctx, c.container, blobName, body, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err == nil {
		return nil
	}
	location := "azure://" + c.container + "/" + blobName
	var re *azcore.ResponseError
	if errors.As(err, &re) {
		logger.WithContext(ctx).Errorf("failed to upload %v. code: %v, HTTP: %v", location, re.ErrorCode, re.StatusCode)
		return newSinkWriteError(location, fmt.Errorf("%v (HTTP %v): %w", re.ErrorCode, re.StatusCode, err))
	}
	return newSinkWriteError(location, err)
}

func (c *azureStorageClient) Close() error {
	return nil
}
