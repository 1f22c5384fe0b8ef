/*
Package gohive is a client for the Hive query service.

# Connecting

A Config is built from a DSN or from a connections.toml file:

	cfg, err := gohive.ParseDSN("hive://localhost:10000/cliservice?batchSize=500&priority=HIGH")
	cfg, err := gohive.LoadConnectionConfig()

The DSN has the form

	hive://host[:port][/path][?param1=value1&...]

Supported parameters are batchSize, priority, queue, logLevel, protocol, connectTimeout and requestTimeout.
Every other parameter is issued as a session variable with SET once the connection is opened.

Connect opens a connection, runs a function and closes the connection whatever the function returns:

	err := gohive.Connect(ctx, cfg, func(conn *gohive.Conn) error {
		rs, err := conn.Fetch(ctx, "SELECT * FROM logs")
		if err != nil {
			return err
		}
		fmt.Println(rs.ToCSV())
		return nil
	})

# Results

The service answers with untyped, tab separated rows. A ResultSet types them with the declared schema. Columns the
schema doesn't declare, like partition values, get the synthetic names _p1, _p2 and so on, and are typed as strings.
Numeric columns are parsed leniently: a value with no numeric prefix becomes zero.

FetchInBatch streams a result in batches:

	for rs, err := range conn.FetchInBatch(ctx, query, 1000) {
		if err != nil {
			return err
		}
		process(rs)
	}

# Exporting

Export renders a ResultSet as CSV or TSV and stores it on a local directory, Amazon S3, Google Cloud Storage or Azure
Blob Storage. See NewStorageClient.

# Logging

The driver logs through a logrus based logger. Secrets are masked before they are written. Use SetLogger to replace
it and RegisterLogContextHook or SetLogKeys to add context values to log entries.
*/
package gohive
