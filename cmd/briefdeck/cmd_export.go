package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/briefdeck/briefdeck/internal/export"
)

func newExportCommand(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export <job-id>",
		Short: "Export a job's briefing bundle as a tar.gz archive",
		Long: `Export a job's briefing bundle as a tar.gz archive.

The bundle contains the final briefing as markdown, the full job record,
and each agent's raw result as a separate file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := a.client()
			if err != nil {
				return err
			}

			job, err := client.JobStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(job.Results) == 0 {
				return fmt.Errorf("job %s has no results to export (status: %s)", job.ID, job.Status)
			}

			path := filepath.Join(outDir, export.BundleFilename(job.ID))
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating bundle: %w", err)
			}
			defer f.Close() //nolint:errcheck

			if err := export.WriteBundle(f, job); err != nil {
				return fmt.Errorf("writing bundle: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "Directory to write the bundle into")

	return cmd
}
