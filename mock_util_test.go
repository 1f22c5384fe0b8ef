// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"context"
	"fmt"
	"io"
	"strings"
)

/** This file contains helper functions for tests only. **/

// mockClient is a scripted Client. It serves rows from a single cursor that every Execute rewinds and
// records each call it receives.
type mockClient struct {
	rows   []string
	schema *Schema
	cursor int

	executeErrs map[string]error
	fetchErr    error
	// fetchNErrAfter fails FetchN once this many batches were served. Zero disables it.
	fetchNErrAfter int
	fetchNServed   int
	schemaErr      error

	calls []string
}

func newMockClient(rows []string, schema *Schema) *mockClient {
	return &mockClient{rows: rows, schema: schema}
}

func (m *mockClient) Execute(_ context.Context, query string) error {
	m.calls = append(m.calls, "execute:"+query)
	if err, ok := m.executeErrs[query]; ok {
		return err
	}
	m.cursor = 0
	m.fetchNServed = 0
	return nil
}

func (m *mockClient) FetchOne(_ context.Context) (string, error) {
	m.calls = append(m.calls, "fetchOne")
	if m.fetchErr != nil {
		return "", m.fetchErr
	}
	if m.cursor >= len(m.rows) {
		return "", io.EOF
	}
	m.cursor++
	return m.rows[m.cursor-1], nil
}

func (m *mockClient) FetchN(_ context.Context, n int) ([]string, error) {
	m.calls = append(m.calls, fmt.Sprintf("fetchN:%d", n))
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if m.fetchNErrAfter > 0 && m.fetchNServed == m.fetchNErrAfter {
		return nil, newTransportError(io.ErrUnexpectedEOF)
	}
	end := min(m.cursor+n, len(m.rows))
	batch := append([]string{}, m.rows[m.cursor:end]...)
	m.cursor = end
	m.fetchNServed++
	return batch, nil
}

func (m *mockClient) FetchAll(_ context.Context) ([]string, error) {
	m.calls = append(m.calls, "fetchAll")
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	rest := append([]string{}, m.rows[m.cursor:]...)
	m.cursor = len(m.rows)
	return rest, nil
}

func (m *mockClient) GetSchema(_ context.Context) (*Schema, error) {
	m.calls = append(m.calls, "getSchema")
	if m.schemaErr != nil {
		return nil, m.schemaErr
	}
	return m.schema, nil
}

// executed returns the statements run so far.
func (m *mockClient) executed() []string {
	var stmts []string
	for _, c := range m.calls {
		if stmt, ok := strings.CutPrefix(c, "execute:"); ok {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// mockTransportClient also implements Transport, QueryPlanner and ClusterStatusReporter.
type mockTransportClient struct {
	*mockClient
	openErr  error
	closeErr error
	opened   int
	closed   int

	plan   string
	status *ClusterStatus
}

func (m *mockTransportClient) Open(_ context.Context) error {
	m.opened++
	return m.openErr
}

func (m *mockTransportClient) Close() error {
	m.closed++
	return m.closeErr
}

func (m *mockTransportClient) GetQueryPlan(_ context.Context) (string, error) {
	return m.plan, nil
}

func (m *mockTransportClient) GetClusterStatus(_ context.Context) (*ClusterStatus, error) {
	return m.status, nil
}

type mockTableSchema struct {
	name string
}

func (s mockTableSchema) Name() string { return s.name }

func (s mockTableSchema) CreateTableStatement() string {
	return "CREATE TABLE `" + s.name + "` (`id` INT)"
}

func (s mockTableSchema) AddColumnsStatement() string {
	return "ALTER TABLE `" + s.name + "` ADD COLUMNS (`name` STRING)"
}

func (s mockTableSchema) ReplaceColumnsStatement() string {
	return "ALTER TABLE `" + s.name + "` REPLACE COLUMNS (`id` BIGINT)"
}
