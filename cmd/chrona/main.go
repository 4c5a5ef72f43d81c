package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/chrona-labs/chrona-cli/internal/adapters/driving/cli"
)

func main() {
	// A local .env is optional; absence is not an error.
	_ = godotenv.Load()

	cleanup, err := cli.Bootstrap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chrona: %v\n", err)
		os.Exit(1)
	}

	err = cli.Execute()
	cleanup()
	if err != nil {
		os.Exit(1)
	}
}
