package main

import (
	"log/slog"
	"os"

	"tripmate/cmd"
	"tripmate/config"
	"tripmate/logging"
)

func main() {
	config.LoadEnv()
	logging.Setup()

	if err := cmd.RootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}
