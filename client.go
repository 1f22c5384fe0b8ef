// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"context"
)

// Client is the RPC surface of the query service used by a Conn. Implementations block until the service
// answers and return *HiveError values built by the transport or service error constructors.
type Client interface {
	// Execute runs a statement. Rows it produces are read with the fetch calls.
	Execute(ctx context.Context, query string) error
	// FetchOne returns the next raw row, or io.EOF when the result is exhausted.
	FetchOne(ctx context.Context) (string, error)
	// FetchN returns up to n raw rows. An empty slice means the result is exhausted.
	FetchN(ctx context.Context, n int) ([]string, error)
	// FetchAll returns every remaining raw row.
	FetchAll(ctx context.Context) ([]string, error)
	// GetSchema returns the declared schema of the last executed statement.
	GetSchema(ctx context.Context) (*Schema, error)
}

// Transport is implemented by clients that hold a connection which must be opened and closed.
type Transport interface {
	Open(ctx context.Context) error
	Close() error
}

// QueryPlanner is implemented by clients that can describe the plan of the last executed statement.
type QueryPlanner interface {
	GetQueryPlan(ctx context.Context) (string, error)
}

// ClusterStatusReporter is implemented by clients that can report the state of the compute cluster.
type ClusterStatusReporter interface {
	GetClusterStatus(ctx context.Context) (*ClusterStatus, error)
}

// ClusterStatus describes the compute cluster behind the service.
type ClusterStatus struct {
	TaskTrackers   int    `json:"taskTrackers"`
	MapTasks       int    `json:"mapTasks"`
	ReduceTasks    int    `json:"reduceTasks"`
	MaxMapTasks    int    `json:"maxMapTasks"`
	MaxReduceTasks int    `json:"maxReduceTasks"`
	State          string `json:"state"`
}
