package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"ledgerlift/cmd/dedupe"
	"ledgerlift/cmd/ingest"
	"ledgerlift/cmd/root"
	"ledgerlift/internal/config"
)

func init() {
	// Load environment variables silently before any logging happens, then
	// pin the global log level so early loggers respect it.
	loadEnvSilently()
	configureLogLevelDirectly()

	root.Init()
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(dedupe.Cmd)
}

// loadEnvSilently loads environment variables without logging anything.
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global log level for all logrus
// instances before any logging happens.
func configureLogLevelDirectly() {
	logLevelStr := config.GetEnv("LOG_LEVEL", "info")

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
