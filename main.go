package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"tickd/internal/di"
	"tickd/internal/structures"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config file")
	debug := flag.Bool("debug", false, "enable debug logging to console")
	flag.Parse()

	// Optional .env holding the redis, VAPID and cron secrets.
	_ = godotenv.Load()

	_, err := di.InitApp(&structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "tickd: %s\n", err)
		os.Exit(1)
	}
}
