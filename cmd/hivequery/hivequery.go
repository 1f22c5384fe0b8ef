// Example: Run a query against a Hive gateway and print the result.
// hivequery -dsn hive://localhost:10000 -format tsv "SELECT * FROM logs"
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	hive "github.com/snowflakedb/gohive"
)

func main() {
	dsn := flag.String("dsn", "", "DSN of the gateway. Reads connections.toml when empty.")
	format := flag.String("format", "csv", "output format, csv or tsv")
	batch := flag.Int("batch", 0, "fetch and print the result in batches of this size")
	first := flag.Bool("first", false, "print the first row only")
	export := flag.String("export", "", "store the result under this URL instead of printing it")
	compress := flag.Bool("gzip", false, "gzip the exported result")
	flag.Parse()

	query := strings.Join(flag.Args(), " ")
	if query == "" {
		log.Fatalf("usage: hivequery [flags] QUERY")
	}
	if *format != string(hive.ExportCSV) && *format != string(hive.ExportTSV) {
		log.Fatalf("unsupported format: %v", *format)
	}

	cfg, err := loadConfig(*dsn)
	if err != nil {
		log.Fatalf("failed to create Config, err: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = hive.Connect(ctx, cfg, func(conn *hive.Conn) error {
		switch {
		case *export != "":
			return exportResult(ctx, conn, query, *export, hive.ExportOptions{Format: hive.ExportFormat(*format), Compress: *compress})
		case *first:
			rs, err := conn.First(ctx, query)
			if err != nil {
				return err
			}
			return write(os.Stdout, rs, *format)
		case *batch > 0:
			for rs, err := range conn.FetchInBatch(ctx, query, *batch) {
				if err != nil {
					return err
				}
				if err = write(os.Stdout, rs, *format); err != nil {
					return err
				}
			}
			return nil
		default:
			rs, err := conn.Fetch(ctx, query)
			if err != nil {
				return err
			}
			return write(os.Stdout, rs, *format)
		}
	})
	if err != nil {
		log.Fatalf("failed to run a query. %v, err: %v", query, err)
	}
}

func loadConfig(dsn string) (*hive.Config, error) {
	if dsn == "" {
		return hive.LoadConnectionConfig()
	}
	return hive.ParseDSN(dsn)
}

func write(w io.Writer, rs *hive.ResultSet, format string) error {
	if rs.Len() == 0 {
		return nil
	}
	var err error
	if format == string(hive.ExportTSV) {
		err = rs.WriteTSV(w)
	} else {
		err = rs.WriteCSV(w)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

func exportResult(ctx context.Context, conn *hive.Conn, query, dest string, opts hive.ExportOptions) error {
	sink, err := hive.NewStorageClient(ctx, dest, hive.StorageConfig{AwsRegion: os.Getenv("AWS_REGION")})
	if err != nil {
		return err
	}
	defer sink.Close()
	rs, err := conn.Fetch(ctx, query)
	if err != nil {
		return err
	}
	name, err := hive.Export(ctx, rs, sink, opts)
	if err != nil {
		return err
	}
	fmt.Printf("exported %v rows to %v\n", rs.Len(), name)
	return nil
}
