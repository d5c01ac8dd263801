package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/briefdeck/briefdeck/internal/api"
	"github.com/briefdeck/briefdeck/internal/config"
	"github.com/briefdeck/briefdeck/internal/poller"
	"github.com/briefdeck/briefdeck/internal/render"
	"github.com/briefdeck/briefdeck/internal/tui"
)

func newWatchCommand(a *app) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "watch <job-id>",
		Short: "Watch a job until it completes",
		Long: `Watch a job until it completes.

On a terminal this opens the live dashboard. When stdout is not a TTY
(or --plain is set), one status line is printed per poll instead, which is
suitable for logs and CI.

The exit code is 1 when the job ends in the failed state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := a.client()
			if err != nil {
				return err
			}
			return watchJob(cmd.Context(), client, cfg, args[0], plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print status lines instead of the dashboard")

	return cmd
}

// watchJob polls jobID to a terminal state, interactively or line-by-line.
func watchJob(ctx context.Context, client *api.Client, cfg *config.Config, jobID string, plain bool) error {
	p := poller.New(client, poller.WithInterval(cfg.PollInterval()))

	if !plain && isatty.IsTerminal(os.Stdout.Fd()) {
		return watchInteractive(ctx, p, jobID)
	}
	return watchPlain(ctx, p, jobID)
}

func watchInteractive(ctx context.Context, p *poller.Poller, jobID string) error {
	w := poller.NewWatcher(p)
	w.Switch(ctx, jobID)
	defer w.Stop()

	prog := tea.NewProgram(tui.NewModel(w, jobID), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}

	m, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	if m.Err() != "" {
		return fmt.Errorf("watching job %s: %s", jobID, m.Err())
	}
	if job := m.Job(); job != nil && job.Status == api.StatusFailed {
		return &JobFailedError{JobID: jobID, Message: job.Error}
	}
	return nil
}

func watchPlain(ctx context.Context, p *poller.Poller, jobID string) error {
	sess := p.Watch(ctx, jobID)
	defer sess.Stop()

	width := 100
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	var last *api.Job
	for snap := range sess.Snapshots() {
		if snap.Err != nil {
			return fmt.Errorf("watching job %s: %w", jobID, snap.Err)
		}
		last = snap.Job
		fmt.Println(render.Truncate(statusLine(snap.Job), width))
	}

	if last == nil {
		return ctx.Err()
	}
	if last.Status == api.StatusFailed {
		return &JobFailedError{JobID: jobID, Message: last.Error}
	}
	return nil
}

func statusLine(job *api.Job) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s", job.ID, job.Status)
	if job.Progress != nil {
		fmt.Fprintf(&b, "  %d%%", job.Progress.Percent())
		if job.Progress.CurrentAgent != "" {
			fmt.Fprintf(&b, "  %s", render.Config(job.Progress.CurrentAgent).Label)
		}
	}
	if job.Error != "" {
		fmt.Fprintf(&b, "  error: %s", job.Error)
	}
	return b.String()
}
