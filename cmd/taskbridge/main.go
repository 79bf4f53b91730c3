// Package main is the entry point for the taskbridge CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"taskbridge/internal/auth"
	"taskbridge/internal/backend/graphql"
	"taskbridge/internal/backend/rest"
	"taskbridge/internal/cli"
	"taskbridge/internal/commands"
	"taskbridge/internal/config"
	"taskbridge/internal/remote"
	"taskbridge/internal/service"

	// Import all command packages to register them via init()
	_ "taskbridge/internal/commands"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create dispatcher with the backend factory
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newService)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

// newService builds the backend revision selected by config: REST by
// default, GraphQL with --graphql.
func newService(ctx context.Context, cfg *config.Config) (service.Service, error) {
	oauthClient, err := cfg.LoadOAuthClient()
	if err != nil {
		return nil, err
	}

	token, err := auth.LoadToken(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("not logged in (run: taskbridge login)")
	}

	logger := log.New(os.Stderr)
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	manager := auth.NewManager(cfg.BaseURL, oauthClient, "")
	api := remote.New(cfg.BaseURL, manager.HTTPClient(ctx, token), logger)

	if cfg.GraphQL {
		return graphql.New(api), nil
	}
	return rest.New(api), nil
}
