// Package main is the entry point for the snowload binary.
package main

import (
	"os"

	// sqlite3 serves as the built-in driver for local development targets.
	// Production warehouse drivers register themselves the same way.
	_ "github.com/mattn/go-sqlite3"

	cli "github.com/shengyushen/spark-snowflake/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
