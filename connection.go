// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/google/uuid"
)

// JobPriority is the scheduling priority of the jobs a session submits.
type JobPriority string

// Job priorities understood by the scheduler.
const (
	PriorityVeryHigh JobPriority = "VERY_HIGH"
	PriorityHigh     JobPriority = "HIGH"
	PriorityNormal   JobPriority = "NORMAL"
	PriorityLow      JobPriority = "LOW"
	PriorityVeryLow  JobPriority = "VERY_LOW"
)

const (
	jobPriorityVariable = "mapred.job.priority"
	jobQueueVariable    = "mapred.job.queue.name"
)

type connState int

const (
	stateIdle connState = iota
	stateExecuted
)

func (s connState) String() string {
	if s == stateExecuted {
		return "executed"
	}
	return "idle"
}

// Conn is a query session bound to one Client. A Conn is not safe for concurrent use: the client holds a
// single cursor over the last executed statement.
type Conn struct {
	cfg       *Config
	client    Client
	sessionID string
	state     connState
	closed    bool
}

// Open creates a session. It opens the client transport, then applies the configured priority, queue and
// session variables. If any of that fails the transport is closed again.
func Open(ctx context.Context, cfg *Config) (*Conn, error) {
	c := *cfg
	fillMissingConfigParameters(&c)
	if c.LogLevel != "" {
		if err := logger.SetLogLevel(c.LogLevel); err != nil {
			return nil, newDSNError("logLevel=" + c.LogLevel)
		}
	}
	client := c.Client
	if client == nil {
		if c.Host == "" {
			return nil, newDSNError("host is required")
		}
		client = newRestfulClient(&c)
	}
	conn := &Conn{
		cfg:       &c,
		client:    client,
		sessionID: uuid.NewString(),
	}
	ctx = conn.logContext(ctx)
	logger.WithContext(ctx).Infof("opening connection. client: %T", client)

	if t, ok := client.(Transport); ok {
		if err := t.Open(ctx); err != nil {
			logger.WithContext(ctx).Errorf("failed to open connection: %v", err)
			return nil, err
		}
	}
	if err := conn.applySessionSettings(ctx); err != nil {
		if cerr := conn.Close(); cerr != nil {
			logger.WithContext(ctx).Warnf("failed to close connection: %v", cerr)
		}
		return nil, err
	}
	return conn, nil
}

// Connect opens a session, runs fn with it and closes it, whether fn returns an error or panics.
// The first error wins.
func Connect(ctx context.Context, cfg *Config, fn func(*Conn) error) (err error) {
	conn, err := Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(conn)
}

func (c *Conn) applySessionSettings(ctx context.Context) error {
	if c.cfg.Priority != "" {
		if err := c.SetPriority(ctx, c.cfg.Priority); err != nil {
			return err
		}
	}
	if c.cfg.Queue != "" {
		if err := c.SetQueue(ctx, c.cfg.Queue); err != nil {
			return err
		}
	}
	// sorted so the statements run in a stable order
	names := make([]string, 0, len(c.cfg.SessionVariables))
	for name := range c.cfg.SessionVariables {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := c.Set(ctx, name, c.cfg.SessionVariables[name]); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the client transport. Later calls are no-ops.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	logger.WithContext(c.logContext(context.Background())).Info("closing connection")
	if t, ok := c.client.(Transport); ok {
		return t.Close()
	}
	return nil
}

// Client returns the underlying RPC client.
func (c *Conn) Client() Client {
	return c.client
}

// SessionID identifies the session in logs.
func (c *Conn) SessionID() string {
	return c.sessionID
}

func (c *Conn) logContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, HiveSessionIDKey, c.sessionID)
}

// Execute runs a statement. Its rows, if any, are left on the client cursor.
func (c *Conn) Execute(ctx context.Context, query string) error {
	if c.closed {
		return ErrConnectionClosed
	}
	ctx = context.WithValue(c.logContext(ctx), HiveQueryIDKey, uuid.NewString())
	logger.WithContext(ctx).Infof("executing query. state: %v, query: %v", c.state, query)
	if err := c.client.Execute(ctx, query); err != nil {
		logger.WithContext(ctx).Errorf("query failed: %v", err)
		return err
	}
	c.state = stateExecuted
	return nil
}

// Fetch runs a query and materializes every row with the declared schema.
func (c *Conn) Fetch(ctx context.Context, query string) (*ResultSet, error) {
	if err := c.Execute(ctx, query); err != nil {
		return nil, err
	}
	rows, err := c.client.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	schema, err := c.client.GetSchema(ctx)
	if err != nil {
		return nil, err
	}
	logger.WithContext(c.logContext(ctx)).Debugf("fetched %v rows", len(rows))
	return NewResultSet(rows, schema), nil
}

// FetchInBatch runs a query and yields its rows in batches of at most batchSize. Nothing runs until the
// sequence is ranged over. Batches are materialized without the declared schema, so every column is a
// synthetic string column. Breaking out of the loop stops further pulls. An error is yielded once and ends
// the sequence.
func (c *Conn) FetchInBatch(ctx context.Context, query string, batchSize int) iter.Seq2[*ResultSet, error] {
	return func(yield func(*ResultSet, error) bool) {
		if batchSize < 1 {
			yield(nil, &HiveError{
				Number:      ErrCodeInvalidBatchSize,
				SQLState:    SQLStateInvalidParameterValue,
				Message:     errMsgInvalidBatchSize,
				MessageArgs: []interface{}{batchSize},
			})
			return
		}
		if err := c.Execute(ctx, query); err != nil {
			yield(nil, err)
			return
		}
		for {
			rows, err := c.client.FetchN(ctx, batchSize)
			if err != nil {
				yield(nil, err)
				return
			}
			if len(rows) == 0 {
				return
			}
			logger.WithContext(c.logContext(ctx)).Debugf("pulled batch of %v rows", len(rows))
			if !yield(NewResultSet(rows, nil), nil) {
				return
			}
		}
	}
}

// FetchInDefaultBatch is FetchInBatch with the configured batch size.
func (c *Conn) FetchInDefaultBatch(ctx context.Context, query string) iter.Seq2[*ResultSet, error] {
	return c.FetchInBatch(ctx, query, c.cfg.BatchSize)
}

// First runs a query and materializes its first row without the declared schema. The result set is empty
// if the query produced no rows.
func (c *Conn) First(ctx context.Context, query string) (*ResultSet, error) {
	if err := c.Execute(ctx, query); err != nil {
		return nil, err
	}
	row, err := c.client.FetchOne(ctx)
	if errors.Is(err, io.EOF) {
		return NewResultSet(nil, nil), nil
	}
	if err != nil {
		return nil, err
	}
	return NewResultSet([]string{row}, nil), nil
}

// Set runs SET name=value.
func (c *Conn) Set(ctx context.Context, name, value string) error {
	return c.Execute(ctx, fmt.Sprintf("SET %s=%s", name, value))
}

// SetPriority sets the priority of the jobs submitted by later statements.
func (c *Conn) SetPriority(ctx context.Context, priority JobPriority) error {
	return c.Set(ctx, jobPriorityVariable, string(priority))
}

// SetQueue sets the scheduler queue of the jobs submitted by later statements.
func (c *Conn) SetQueue(ctx context.Context, queue string) error {
	return c.Set(ctx, jobQueueVariable, queue)
}

// QueryPlan returns the plan of the last executed statement, if the client can describe it.
func (c *Conn) QueryPlan(ctx context.Context) (string, error) {
	if c.closed {
		return "", ErrConnectionClosed
	}
	planner, ok := c.client.(QueryPlanner)
	if !ok {
		return "", newUnsupportedOperationError("query plan")
	}
	return planner.GetQueryPlan(ctx)
}

// ClusterStatus returns the state of the compute cluster, if the client can report it.
func (c *Conn) ClusterStatus(ctx context.Context) (*ClusterStatus, error) {
	if c.closed {
		return nil, ErrConnectionClosed
	}
	reporter, ok := c.client.(ClusterStatusReporter)
	if !ok {
		return nil, newUnsupportedOperationError("cluster status")
	}
	return reporter.GetClusterStatus(ctx)
}

// CreateTable runs the create statement of the table.
func (c *Conn) CreateTable(ctx context.Context, schema TableSchema) error {
	return c.Execute(ctx, schema.CreateTableStatement())
}

// AddColumns runs the add columns statement of the table.
func (c *Conn) AddColumns(ctx context.Context, schema TableSchema) error {
	return c.Execute(ctx, schema.AddColumnsStatement())
}

// ReplaceColumns runs the replace columns statement of the table.
func (c *Conn) ReplaceColumns(ctx context.Context, schema TableSchema) error {
	return c.Execute(ctx, schema.ReplaceColumnsStatement())
}

// DropTable drops a table by name.
func (c *Conn) DropTable(ctx context.Context, name string) error {
	return c.Execute(ctx, fmt.Sprintf("DROP TABLE `%s`", name))
}
