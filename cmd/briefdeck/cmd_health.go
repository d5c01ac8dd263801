package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCommand(a *app) *cobra.Command {
	var poll bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check backend availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := a.client()
			if err != nil {
				return err
			}

			report := func() error {
				h, err := client.Health(cmd.Context())
				if err != nil {
					return fmt.Errorf("backend unreachable at %s: %w", client.BaseURL(), err)
				}
				fmt.Printf("%s  status=%s env=%s version=%s portia=%t\n",
					time.Now().Format(time.RFC3339), h.Status, h.Environment, h.Version, h.PortiaAvailable)
				return nil
			}

			if !poll {
				return report()
			}

			ticker := time.NewTicker(cfg.HealthInterval())
			defer ticker.Stop()
			for {
				if err := report(); err != nil {
					fmt.Println(err)
				}
				select {
				case <-cmd.Context().Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}

	cmd.Flags().BoolVar(&poll, "poll", false, "Keep probing at the configured health interval")

	return cmd
}
