// Package main is the entrypoint for the method-gateway binary.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/morezero/method-gateway/internal/server"
)

const usage = `Usage: gateway [command]
       gateway serve    Start the gateway (HTTP entry point, optional COMMS).
       gateway help     Show this message.

Commands:
  serve    (default) Start the method gateway.

Environment: GATEWAY_HTTP_ADDR (default 0.0.0.0:8080), GATEWAY_BASE_PATH,
GATEWAY_BATCH_MAX_SIZE, GATEWAY_REQUEST_TIMEOUT, COMMS_URL (optional),
GATEWAY_COMMS_SUBJECT, LOG_LEVEL. A .env file in the working directory is
loaded first. See README.
`

func main() {
	// Optional .env; absence is normal outside local development.
	godotenv.Load()

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	case "serve", "":
		// serve (explicit or default)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q.\n%s", cmd, usage)
		os.Exit(1)
	}

	if err := server.Run(); err != nil {
		log.Fatalf("gateway: %v", err)
	}
}
