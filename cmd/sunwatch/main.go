package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/mpeters/sunwatch/internal/cli"
)

func main() {
	// Optional .env for SUNWATCH_ overrides; absence is fine.
	_ = godotenv.Load()

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		slog.Error("operation failed", "error", err)
		os.Exit(cli.GetExitCode(err))
	}
}
