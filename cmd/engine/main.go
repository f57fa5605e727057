// Command engine reads one selection request as JSON on stdin and writes
// one result line to stdout.
package main

import (
	"context"
	"log/slog"
	"os"

	selectorsvc "github.com/alanyang/hemotask/internal/service/selector"
	"github.com/alanyang/hemotask/internal/transport/engine"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if err := engine.Run(context.Background(), os.Stdin, os.Stdout, selectorsvc.NewService(nil)); err != nil {
		slog.Error("engine failed", "error", err)
		os.Exit(1)
	}
}
