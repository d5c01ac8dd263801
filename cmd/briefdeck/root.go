package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/briefdeck/briefdeck/internal/api"
	"github.com/briefdeck/briefdeck/internal/config"
)

var version = "dev"

// app carries the persistent flag values every subcommand resolves a client
// and config from.
type app struct {
	configPath string
	apiURL     string
}

// loadConfig reads the config file and applies flag overrides on top.
func (a *app) loadConfig() (*config.Config, error) {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	return cfg, nil
}

// client resolves the backend client plus the config it came from.
func (a *app) client() (*api.Client, *config.Config, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	url := cfg.APIURL
	if url == "" {
		url = config.DefaultAPIURL
	}
	return api.New(url, api.WithLogger(slog.Default())), cfg, nil
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "briefdeck",
		Short: "Briefdeck - terminal dashboard for meeting preparation jobs",
		Long: `Briefdeck submits meeting-preparation jobs to the backend, polls them
to completion, and renders each agent's result in a live terminal dashboard.

Agent results arrive in whatever shape the backend produced (JSON objects,
JSON-encoded strings, fenced markdown, or prose); briefdeck normalizes them
at display time and never fails on a malformed payload.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default: user config dir)")
	cmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "Backend base URL (overrides config)")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newPrepareCommand(a))
	cmd.AddCommand(newWatchCommand(a))
	cmd.AddCommand(newJobsCommand(a))
	cmd.AddCommand(newExportCommand(a))
	cmd.AddCommand(newHealthCommand(a))
	cmd.AddCommand(newDemoCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
