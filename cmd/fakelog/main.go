package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"

	"fakelog/internal/cli"
	"fakelog/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// A .env file is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Fatal Error: Could not load .env file: %v", err)
		return 1
	}

	if err := logger.Init(os.Getenv(logger.EnvDebugLog)); err != nil {
		log.Printf("Fatal Error: Could not initialize logger: %v", err)
		return 1
	}
	defer logger.Close()

	if err := cli.Execute(context.Background(), args); err != nil {
		return 1
	}
	return 0
}
