// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
)

func openTestConn(t *testing.T, client Client) *Conn {
	conn, err := Open(context.Background(), &Config{Client: client})
	assertNilF(t, err)
	return conn
}

func TestFetch(t *testing.T) {
	client := newMockClient([]string{"1\tAlice\tp=1", "2\tBob\tp=2"}, newTestSchema("id", "int", "name", "string"))
	conn := openTestConn(t, client)

	rs, err := conn.Fetch(context.Background(), "SELECT * FROM users")
	assertNilF(t, err)
	assertDeepEqualE(t, client.calls, []string{"execute:SELECT * FROM users", "fetchAll", "getSchema"})
	assertDeepEqualE(t, rs.ColumnNames(), []string{"id", "name", "_p1"})
	assertEqualE(t, rs.Len(), 2)
	assertEqualE(t, rs.At(1).Value("id"), any(int64(2)))
	assertEqualE(t, rs.ToCSV(), "1,Alice,p=1\n2,Bob,p=2")
}

func TestFetchErrors(t *testing.T) {
	serviceErr := newServiceError("42S02", "Table not found 'missing'")
	client := newMockClient(nil, nil)
	client.executeErrs = map[string]error{"SELECT * FROM missing": serviceErr}
	conn := openTestConn(t, client)

	_, err := conn.Fetch(context.Background(), "SELECT * FROM missing")
	assertErrIsE(t, err, serviceErr)
	assertTrueE(t, IsServiceError(err))

	client.schemaErr = newTransportError(io.ErrUnexpectedEOF)
	_, err = conn.Fetch(context.Background(), "SELECT 1")
	assertTrueE(t, IsTransportError(err))
}

func makeRows(n int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = fmt.Sprintf("%d\tv%d", i, i)
	}
	return rows
}

func TestFetchInBatch(t *testing.T) {
	client := newMockClient(makeRows(5), newTestSchema("id", "int", "value", "string"))
	conn := openTestConn(t, client)

	var sizes []int
	for rs, err := range conn.FetchInBatch(context.Background(), "SELECT * FROM t", 2) {
		assertNilF(t, err)
		sizes = append(sizes, rs.Len())
		// batches ignore the declared schema
		assertDeepEqualE(t, rs.ColumnNames(), []string{"_p1", "_p2"})
		assertEqualE(t, rs.ColumnTypeMap()["_p1"], StringType)
	}
	assertDeepEqualE(t, sizes, []int{2, 2, 1})
	assertDeepEqualE(t, client.calls, []string{
		"execute:SELECT * FROM t", "fetchN:2", "fetchN:2", "fetchN:2", "fetchN:2",
	})
}

func TestFetchInBatchCount(t *testing.T) {
	for k := 0; k <= 4; k++ {
		for b := 1; b <= 3; b++ {
			t.Run(fmt.Sprintf("k=%d,b=%d", k, b), func(t *testing.T) {
				rows := makeRows(k * b)
				conn := openTestConn(t, newMockClient(rows, nil))

				batches := 0
				var seen []string
				for rs, err := range conn.FetchInBatch(context.Background(), "SELECT", b) {
					assertNilF(t, err)
					assertEqualE(t, rs.Len(), b)
					batches++
					for _, rec := range rs.Records() {
						seen = append(seen, fmt.Sprintf("%v\t%v", rec.Value("_p1"), rec.Value("_p2")))
					}
				}
				assertEqualE(t, batches, k)
				assertEqualE(t, len(seen), len(rows))
				for i := range seen {
					assertEqualE(t, seen[i], rows[i])
				}
			})
		}
	}
}

func TestFetchInBatchEarlyStop(t *testing.T) {
	client := newMockClient(makeRows(10), nil)
	conn := openTestConn(t, client)

	for rs, err := range conn.FetchInBatch(context.Background(), "SELECT", 3) {
		assertNilF(t, err)
		assertEqualE(t, rs.Len(), 3)
		break
	}
	assertDeepEqualE(t, client.calls, []string{"execute:SELECT", "fetchN:3"})
}

func TestFetchInBatchIsLazy(t *testing.T) {
	client := newMockClient(makeRows(3), nil)
	conn := openTestConn(t, client)

	seq := conn.FetchInBatch(context.Background(), "SELECT", 1)
	assertEmptyE(t, client.calls)
	for range seq {
	}
	assertEqualE(t, len(client.calls), 5)
}

func TestFetchInBatchInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		client := newMockClient(makeRows(3), nil)
		conn := openTestConn(t, client)

		errs := 0
		for rs, err := range conn.FetchInBatch(context.Background(), "SELECT", size) {
			assertNilE(t, rs)
			assertTrueE(t, hasErrorCode(err, ErrCodeInvalidBatchSize))
			errs++
		}
		assertEqualE(t, errs, 1)
		assertEmptyE(t, client.calls)
	}
}

func TestFetchInBatchErrors(t *testing.T) {
	t.Run("execute", func(t *testing.T) {
		client := newMockClient(makeRows(3), nil)
		client.executeErrs = map[string]error{"SELECT": newServiceError("", "ParseException")}
		conn := openTestConn(t, client)

		var errs []error
		for rs, err := range conn.FetchInBatch(context.Background(), "SELECT", 2) {
			assertNilE(t, rs)
			errs = append(errs, err)
		}
		assertEqualF(t, len(errs), 1)
		assertTrueE(t, IsServiceError(errs[0]))
	})

	t.Run("pull", func(t *testing.T) {
		client := newMockClient(makeRows(6), nil)
		client.fetchNErrAfter = 1
		conn := openTestConn(t, client)

		batches, errs := 0, 0
		for rs, err := range conn.FetchInBatch(context.Background(), "SELECT", 2) {
			if err != nil {
				assertTrueE(t, IsTransportError(err))
				errs++
				continue
			}
			assertEqualE(t, rs.Len(), 2)
			batches++
		}
		assertEqualE(t, batches, 1)
		assertEqualE(t, errs, 1)
	})
}

func TestFetchInDefaultBatch(t *testing.T) {
	client := newMockClient(makeRows(7), nil)
	conn, err := Open(context.Background(), &Config{Client: client, BatchSize: 3})
	assertNilF(t, err)

	var sizes []int
	for rs, err := range conn.FetchInDefaultBatch(context.Background(), "SELECT") {
		assertNilF(t, err)
		sizes = append(sizes, rs.Len())
	}
	assertDeepEqualE(t, sizes, []int{3, 3, 1})

	conn = openTestConn(t, newMockClient(makeRows(250), nil))
	sizes = nil
	for rs, err := range conn.FetchInDefaultBatch(context.Background(), "SELECT") {
		assertNilF(t, err)
		sizes = append(sizes, rs.Len())
	}
	assertDeepEqualE(t, sizes, []int{100, 100, 50})
}

func TestFirst(t *testing.T) {
	client := newMockClient([]string{"1\tAlice", "2\tBob"}, newTestSchema("id", "int", "name", "string"))
	conn := openTestConn(t, client)

	rs, err := conn.First(context.Background(), "SELECT * FROM users")
	assertNilF(t, err)
	assertEqualE(t, rs.Len(), 1)
	assertDeepEqualE(t, rs.At(0).Map(), map[string]any{"_p1": "1", "_p2": "Alice"})
	assertDeepEqualE(t, client.calls, []string{"execute:SELECT * FROM users", "fetchOne"})
}

func TestFirstWithoutRows(t *testing.T) {
	conn := openTestConn(t, newMockClient(nil, nil))

	rs, err := conn.First(context.Background(), "SELECT * FROM empty")
	assertNilF(t, err)
	assertEqualE(t, rs.Len(), 0)
	assertEmptyE(t, rs.ColumnNames())
	assertEqualE(t, rs.ToCSV(), "")
}

func TestFirstError(t *testing.T) {
	client := newMockClient([]string{"1"}, nil)
	client.fetchErr = newTransportError(io.ErrClosedPipe)
	conn := openTestConn(t, client)

	_, err := conn.First(context.Background(), "SELECT 1")
	assertErrIsE(t, err, io.ErrClosedPipe)
}

func TestSessionSettings(t *testing.T) {
	client := newMockClient(nil, nil)
	conn := openTestConn(t, client)
	ctx := context.Background()

	assertNilF(t, conn.Set(ctx, "hive.exec.parallel", "true"))
	assertNilF(t, conn.SetPriority(ctx, PriorityVeryHigh))
	assertNilF(t, conn.SetQueue(ctx, "etl"))
	assertDeepEqualE(t, client.executed(), []string{
		"SET hive.exec.parallel=true",
		"SET mapred.job.priority=VERY_HIGH",
		"SET mapred.job.queue.name=etl",
	})
}

func TestOpenAppliesSettings(t *testing.T) {
	client := &mockTransportClient{mockClient: newMockClient(nil, nil)}
	conn, err := Open(context.Background(), &Config{
		Client:   client,
		Priority: PriorityLow,
		Queue:    "adhoc",
		SessionVariables: map[string]string{
			"mapred.reduce.tasks": "4",
			"hive.exec.parallel":  "true",
		},
	})
	assertNilF(t, err)
	assertEqualE(t, client.opened, 1)
	assertDeepEqualE(t, client.executed(), []string{
		"SET mapred.job.priority=LOW",
		"SET mapred.job.queue.name=adhoc",
		"SET hive.exec.parallel=true",
		"SET mapred.reduce.tasks=4",
	})
	assertNilF(t, conn.Close())
	assertEqualE(t, client.closed, 1)
}

func TestOpenClosesTransportWhenSettingsFail(t *testing.T) {
	client := &mockTransportClient{mockClient: newMockClient(nil, nil)}
	client.executeErrs = map[string]error{"SET mapred.job.queue.name=nope": newServiceError("", "unknown queue")}

	conn, err := Open(context.Background(), &Config{Client: client, Queue: "nope"})
	assertNilE(t, conn)
	assertTrueE(t, IsServiceError(err))
	assertEqualE(t, client.opened, 1)
	assertEqualE(t, client.closed, 1)
}

func TestOpenTransportFailure(t *testing.T) {
	openErr := newTransportError(errors.New("connection refused"))
	client := &mockTransportClient{mockClient: newMockClient(nil, nil), openErr: openErr}

	conn, err := Open(context.Background(), &Config{Client: client, Queue: "etl"})
	assertNilE(t, conn)
	assertErrIsE(t, err, openErr)
	assertEmptyE(t, client.calls)
	assertEqualE(t, client.closed, 0)
}

func TestOpenRequiresHost(t *testing.T) {
	_, err := Open(context.Background(), &Config{})
	assertTrueE(t, hasErrorCode(err, ErrCodeFailedToParseDSN))
}

func TestOpenDoesNotModifyConfig(t *testing.T) {
	cfg := &Config{Client: newMockClient(nil, nil)}
	_, err := Open(context.Background(), cfg)
	assertNilF(t, err)
	assertEqualE(t, cfg.BatchSize, 0)
	assertEqualE(t, cfg.Port, 0)
}

func TestCloseIsIdempotent(t *testing.T) {
	client := &mockTransportClient{mockClient: newMockClient(nil, nil), closeErr: errors.New("already gone")}
	conn := openTestConn(t, client)

	assertNotNilE(t, conn.Close())
	assertNilE(t, conn.Close())
	assertEqualE(t, client.closed, 1)
}

func TestClosedConnection(t *testing.T) {
	client := &mockTransportClient{mockClient: newMockClient(makeRows(2), nil)}
	conn := openTestConn(t, client)
	assertNilF(t, conn.Close())
	ctx := context.Background()

	assertErrIsE(t, conn.Execute(ctx, "SELECT 1"), ErrConnectionClosed)
	_, err := conn.Fetch(ctx, "SELECT 1")
	assertErrIsE(t, err, ErrConnectionClosed)
	_, err = conn.First(ctx, "SELECT 1")
	assertErrIsE(t, err, ErrConnectionClosed)
	for _, err := range conn.FetchInBatch(ctx, "SELECT 1", 1) {
		assertErrIsE(t, err, ErrConnectionClosed)
	}
	_, err = conn.QueryPlan(ctx)
	assertErrIsE(t, err, ErrConnectionClosed)
	_, err = conn.ClusterStatus(ctx)
	assertErrIsE(t, err, ErrConnectionClosed)
	assertEmptyE(t, client.calls)
}

func TestConnect(t *testing.T) {
	client := &mockTransportClient{mockClient: newMockClient([]string{"1"}, nil)}
	var rows int
	err := Connect(context.Background(), &Config{Client: client}, func(conn *Conn) error {
		rs, err := conn.Fetch(context.Background(), "SELECT 1")
		if err != nil {
			return err
		}
		rows = rs.Len()
		return nil
	})
	assertNilF(t, err)
	assertEqualE(t, rows, 1)
	assertEqualE(t, client.opened, 1)
	assertEqualE(t, client.closed, 1)
}

func TestConnectClosesOnError(t *testing.T) {
	client := &mockTransportClient{mockClient: newMockClient(nil, nil), closeErr: errors.New("close failed")}
	fnErr := errors.New("fn failed")

	err := Connect(context.Background(), &Config{Client: client}, func(*Conn) error {
		return fnErr
	})
	assertErrIsE(t, err, fnErr)
	assertEqualE(t, client.closed, 1)
}

func TestConnectReturnsCloseError(t *testing.T) {
	closeErr := errors.New("close failed")
	client := &mockTransportClient{mockClient: newMockClient(nil, nil), closeErr: closeErr}

	err := Connect(context.Background(), &Config{Client: client}, func(*Conn) error {
		return nil
	})
	assertErrIsE(t, err, closeErr)
}

func TestConnectClosesOnPanic(t *testing.T) {
	client := &mockTransportClient{mockClient: newMockClient(nil, nil)}

	defer func() {
		r := recover()
		assertEqualE(t, r, any("boom"))
		assertEqualE(t, client.closed, 1)
	}()
	_ = Connect(context.Background(), &Config{Client: client}, func(*Conn) error {
		panic("boom")
	})
	t.Fatal("the panic should have propagated")
}

func TestAdministrativePassthrough(t *testing.T) {
	status := &ClusterStatus{TaskTrackers: 3, MapTasks: 1, MaxMapTasks: 12, State: "RUNNING"}
	client := &mockTransportClient{mockClient: newMockClient(nil, nil), plan: "STAGE PLANS: ...", status: status}
	conn := openTestConn(t, client)
	ctx := context.Background()

	plan, err := conn.QueryPlan(ctx)
	assertNilF(t, err)
	assertEqualE(t, plan, "STAGE PLANS: ...")
	got, err := conn.ClusterStatus(ctx)
	assertNilF(t, err)
	assertEqualE(t, got, status)

	plain := openTestConn(t, newMockClient(nil, nil))
	_, err = plain.QueryPlan(ctx)
	assertTrueE(t, hasErrorCode(err, ErrCodeUnsupportedOperation))
	_, err = plain.ClusterStatus(ctx)
	assertTrueE(t, hasErrorCode(err, ErrCodeUnsupportedOperation))
}

func TestTableStatements(t *testing.T) {
	client := newMockClient(nil, nil)
	conn := openTestConn(t, client)
	ctx := context.Background()
	table := mockTableSchema{name: "events"}

	assertNilF(t, conn.CreateTable(ctx, table))
	assertNilF(t, conn.AddColumns(ctx, table))
	assertNilF(t, conn.ReplaceColumns(ctx, table))
	assertNilF(t, conn.DropTable(ctx, table.Name()))
	assertDeepEqualE(t, client.executed(), []string{
		"CREATE TABLE `events` (`id` INT)",
		"ALTER TABLE `events` ADD COLUMNS (`name` STRING)",
		"ALTER TABLE `events` REPLACE COLUMNS (`id` BIGINT)",
		"DROP TABLE `events`",
	})
}
