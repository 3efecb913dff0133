package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "export-sqlite":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: carmuseum export-sqlite <path>")
			os.Exit(1)
		}
		err = runExportSQLite(ctx, os.Args[2])
	case "dump":
		err = runDump(ctx, os.Stdout)
	case "version":
		fmt.Printf("carmuseum %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`carmuseum - automotive content API

Usage:
  carmuseum <command> [arguments]

Commands:
  serve                 Start the HTTP API
  export-sqlite <path>  Write the embedded dataset to a SQLite content database
  dump                  Validate the configured content and print it as JSON
  version               Print the carmuseum version
  help                  Show this help message

Environment:
  CARMUSEUM_ADDR, PORT, CARMUSEUM_SITE_URL, CARMUSEUM_CONTENT_DB,
  CARMUSEUM_LOG_LEVEL, CARMUSEUM_RATE_LIMIT, CARMUSEUM_RATE_WINDOW,
  CARMUSEUM_REDIS_ADDR, CARMUSEUM_REDIS_PASSWORD, CARMUSEUM_METRICS,
  CARMUSEUM_SHUTDOWN_TIMEOUT`)
}
