package main

import (
	"context"
	"log/slog"
	"os"

	"envgen/cmd"
	"envgen/internal/logger"
	"envgen/internal/version"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	slog.SetDefault(logger.NewLogger(os.Stderr))
	ctx := context.Background()

	// Report panics like any other failure
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "Unexpected failure: %v", r)
			exitCode = 1
		}
	}()

	if err := cmd.NewRootCommand().ExecuteContext(ctx); err != nil {
		logger.Error(ctx, "%s: %v", version.ApplicationName, err)
		return 1
	}
	return 0
}
