package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"podcastforge-server-go/internal/bootstrap"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default .config.yaml)")
	flag.Parse()

	if err := bootstrap.Run(context.Background(), *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "server exited with error: %v\n", err)
		os.Exit(1)
	}
}
