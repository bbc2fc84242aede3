package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
	"github.com/dmitrijs2005/authkeeper/internal/server"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
)

// healthCheckRequested reports whether -health-check is on the command line.
// The flag is parsed separately so it can coexist with the config flags.
func healthCheckRequested() bool {
	var healthCheck bool

	args := flagx.FilterArgs(os.Args[1:], []string{"-health-check"})

	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&healthCheck, "health-check", false, "Perform health check and exit")
	_ = fs.Parse(args)

	return healthCheck
}

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	// for Docker HEALTHCHECK
	if healthCheckRequested() {
		err := app.HealthCheck(ctx)
		app.Close()
		if err != nil {
			log.Fatalf("Health check failed: %v", err)
		}
		fmt.Println("Health check passed")
		return
	}

	defer app.Close()

	app.Run(ctx)
}
