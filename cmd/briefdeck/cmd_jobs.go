package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/briefdeck/briefdeck/internal/api"
)

func newJobsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List known jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := a.client()
			if err != nil {
				return err
			}

			var (
				jobs   map[string]api.JobSummary
				health *api.Health
			)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				jobs, err = client.ListJobs(ctx)
				return err
			})
			g.Go(func() error {
				// Health failures do not block the listing.
				health, _ = client.Health(ctx)
				return nil
			})
			if err := g.Wait(); err != nil {
				return err
			}

			if health != nil {
				fmt.Printf("Backend %s (%s, v%s)\n\n", health.Status, health.Environment, health.Version)
			} else {
				fmt.Printf("Backend unreachable at %s\n\n", client.BaseURL())
			}

			if len(jobs) == 0 {
				fmt.Println("No jobs.")
				return nil
			}

			ids := make([]string, 0, len(jobs))
			for id := range jobs {
				ids = append(ids, id)
			}
			sort.Slice(ids, func(i, j int) bool {
				return jobs[ids[i]].CreatedAt > jobs[ids[j]].CreatedAt
			})

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "JOB\tSTATUS\tTYPE\tCREATED")
			for _, id := range ids {
				j := jobs[id]
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", id, j.Status, j.Type, j.CreatedAt)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(newJobsRemoveCommand(a))

	return cmd
}

func newJobsRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <job-id>...",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete one or more jobs",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := a.client()
			if err != nil {
				return err
			}
			for _, id := range args {
				if err := client.DeleteJob(cmd.Context(), id); err != nil {
					return fmt.Errorf("deleting job %s: %w", id, err)
				}
				fmt.Printf("Deleted %s\n", id)
			}
			return nil
		},
	}
}
