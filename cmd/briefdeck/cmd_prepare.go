package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/briefdeck/briefdeck/internal/api"
	"github.com/briefdeck/briefdeck/internal/validation"
)

func newPrepareCommand(a *app) *cobra.Command {
	var (
		meetingContext string
		focusMode      string
		includeSlack   bool
		includeAgenda  bool
		watch          bool
	)

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Submit a meeting-preparation job",
		Long: `Submit a meeting-preparation job for the next upcoming meeting.

With no flags on a terminal, an interactive form collects the meeting
context and options. Use --watch to open the dashboard once the job is
accepted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := a.client()
			if err != nil {
				return err
			}

			if focusMode == "" {
				focusMode = cfg.FocusMode
			}

			interactive := meetingContext == "" && !cmd.Flags().Changed("slack") &&
				!cmd.Flags().Changed("agenda") && isatty.IsTerminal(os.Stdin.Fd())
			if interactive {
				if err := runPrepareForm(&meetingContext, &focusMode, &includeSlack, &includeAgenda); err != nil {
					return err
				}
			}

			if err := validateFocusMode(focusMode); err != nil {
				return err
			}

			resp, err := client.PrepareMeeting(cmd.Context(), api.PrepareRequest{
				MeetingContext: meetingContext,
				IncludeSlack:   includeSlack,
				IncludeAgenda:  includeAgenda,
				FocusMode:      focusMode,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Job %s accepted (%s)\n", resp.JobID, resp.Status)
			if watch {
				return watchJob(cmd.Context(), client, cfg, resp.JobID, false)
			}
			fmt.Printf("Run 'briefdeck watch %s' to follow it.\n", resp.JobID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&meetingContext, "context", "c", "", "Free-form meeting context")
	cmd.Flags().StringVar(&focusMode, "focus", "", "Focus mode (balanced, blockers, design, progress, planning)")
	cmd.Flags().BoolVar(&includeSlack, "slack", true, "Include team communications research")
	cmd.Flags().BoolVar(&includeAgenda, "agenda", true, "Include agenda generation")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Open the dashboard once the job is accepted")

	cmd.AddCommand(newPrepareCustomCommand(a))
	cmd.AddCommand(newPrepareAgendaCommand(a))

	return cmd
}

// runPrepareForm collects prepare options interactively.
func runPrepareForm(meetingContext, focusMode *string, includeSlack, includeAgenda *bool) error {
	if *focusMode == "" {
		*focusMode = "balanced"
	}

	focusOptions := make([]huh.Option[string], 0, len(api.FocusModes))
	for _, m := range api.FocusModes {
		focusOptions = append(focusOptions, huh.NewOption(m, m))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Meeting context").
				Description("Anything the preparation agents should know up front (optional)").
				Value(meetingContext),
			huh.NewSelect[string]().
				Title("Focus mode").
				Options(focusOptions...).
				Value(focusMode),
			huh.NewConfirm().
				Title("Include team communications research?").
				Value(includeSlack),
			huh.NewConfirm().
				Title("Generate an agenda?").
				Value(includeAgenda),
		),
	)
	return form.Run()
}

func validateFocusMode(mode string) error {
	if mode == "" {
		return nil
	}
	for _, m := range api.FocusModes {
		if mode == m {
			return nil
		}
	}
	return fmt.Errorf("unknown focus mode %q (valid: %s)", mode, strings.Join(api.FocusModes, ", "))
}

func newPrepareCustomCommand(a *app) *cobra.Command {
	var (
		agents         []string
		meetingContext string
		dataFiles      = map[validation.DataKind]*string{
			validation.KindCalendarData:  new(string),
			validation.KindPeopleData:    new(string),
			validation.KindTechnicalData: new(string),
			validation.KindSlackData:     new(string),
		}
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Submit a job running only the selected agents",
		Long: `Submit a job running only the selected agents, optionally seeded with
pre-collected data files.

Each data file is validated against its schema before submission; validation
problems are reported as warnings and do not block the request, since the
backend tolerates loosely-shaped data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(agents) == 0 {
				return fmt.Errorf("at least one agent is required (--agents)")
			}

			client, cfg, err := a.client()
			if err != nil {
				return err
			}

			req := api.CustomPrepareRequest{
				Agents:         agents,
				MeetingContext: meetingContext,
			}
			targets := map[validation.DataKind]*map[string]any{
				validation.KindCalendarData:  &req.CalendarData,
				validation.KindPeopleData:    &req.PeopleData,
				validation.KindTechnicalData: &req.TechnicalData,
				validation.KindSlackData:     &req.SlackData,
			}
			for kind, path := range dataFiles {
				if *path == "" {
					continue
				}
				doc, err := loadDataFile(cmd, kind, *path)
				if err != nil {
					return err
				}
				*targets[kind] = doc
			}

			resp, err := client.PrepareCustom(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Printf("Job %s accepted (%s)\n", resp.JobID, resp.Status)
			if watch {
				return watchJob(cmd.Context(), client, cfg, resp.JobID, false)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&agents, "agents", nil, "Agents to run (e.g. calendar,people_research)")
	cmd.Flags().StringVarP(&meetingContext, "context", "c", "", "Free-form meeting context")
	cmd.Flags().StringVar(dataFiles[validation.KindCalendarData], "calendar-data", "", "JSON file with pre-collected calendar data")
	cmd.Flags().StringVar(dataFiles[validation.KindPeopleData], "people-data", "", "JSON file with pre-collected attendee data")
	cmd.Flags().StringVar(dataFiles[validation.KindTechnicalData], "technical-data", "", "JSON file with pre-collected technical context")
	cmd.Flags().StringVar(dataFiles[validation.KindSlackData], "slack-data", "", "JSON file with pre-collected team communications")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Open the dashboard once the job is accepted")

	return cmd
}

// loadDataFile reads and schema-checks one agent data file. Schema problems
// are warnings, not errors; unparseable JSON is an error.
func loadDataFile(cmd *cobra.Command, kind validation.DataKind, path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s file: %w", kind, err)
	}
	doc, problems := validation.ValidateDataBytes(kind, data)
	if doc == nil {
		return nil, fmt.Errorf("%s file %s is not a JSON object: %s", kind, path, strings.Join(problems, "; "))
	}
	for _, p := range problems {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", path, p)
	}
	return doc, nil
}

func newPrepareAgendaCommand(a *app) *cobra.Command {
	var (
		contextFile string
		focusMode   string
		roles       []string
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Submit an agenda-only job",
		Long: `Submit a job that generates an agenda from a meeting context file
without running the research agents.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := a.client()
			if err != nil {
				return err
			}

			meetingContext := map[string]any{}
			if contextFile != "" {
				data, err := os.ReadFile(contextFile)
				if err != nil {
					return fmt.Errorf("reading context file: %w", err)
				}
				if err := json.Unmarshal(data, &meetingContext); err != nil {
					return fmt.Errorf("context file %s is not a JSON object: %w", contextFile, err)
				}
			}

			participantRoles := map[string]string{}
			for _, r := range roles {
				email, role, ok := strings.Cut(r, "=")
				if !ok {
					return fmt.Errorf("invalid --role %q, expected email=role", r)
				}
				participantRoles[email] = role
			}

			if focusMode == "" {
				focusMode = cfg.FocusMode
			}
			if err := validateFocusMode(focusMode); err != nil {
				return err
			}

			resp, err := client.PrepareAgenda(cmd.Context(), api.AgendaPrepareRequest{
				MeetingContext:   meetingContext,
				FocusMode:        focusMode,
				ParticipantRoles: participantRoles,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Job %s accepted (%s)\n", resp.JobID, resp.Status)
			if watch {
				return watchJob(cmd.Context(), client, cfg, resp.JobID, false)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contextFile, "context-file", "", "JSON file describing the meeting")
	cmd.Flags().StringVar(&focusMode, "focus", "", "Focus mode (balanced, blockers, design, progress, planning)")
	cmd.Flags().StringArrayVar(&roles, "role", nil, "Participant role as email=role (repeatable)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Open the dashboard once the job is accepted")

	return cmd
}
