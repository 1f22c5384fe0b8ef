// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"fmt"
	"runtime"
)

// HiveGoClientVersion is the version of the Go Hive client
const HiveGoClientVersion = "0.1.0"

const clientType = "GoHive"

var userAgent = fmt.Sprintf("%v/%v/%v/%v-%v", clientType, HiveGoClientVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)
