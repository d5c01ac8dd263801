// Package tui is the live terminal dashboard for one meeting-preparation
// job. It owns all display state the web original kept in component state:
// the active result tab, the per-key raw/visual toggles, and the viewport
// scroll position. Parsing never happens here; the render package is handed
// the raw payload and the display mode.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/briefdeck/briefdeck/internal/api"
	"github.com/briefdeck/briefdeck/internal/poller"
	"github.com/briefdeck/briefdeck/internal/render"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	tabStyle      = lipgloss.NewStyle().Padding(0, 1).Faint(true)
	activeTab     = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	barFillStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	barEmptyStyle = lipgloss.NewStyle().Faint(true)
)

var statusStyles = map[api.Status]lipgloss.Style{
	api.StatusStarted:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	api.StatusRunning:   lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	api.StatusCompleted: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	api.StatusFailed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
}

type snapshotMsg poller.Snapshot

type streamClosedMsg struct{}

// Model is the bubbletea model for the job dashboard.
type Model struct {
	watcher *poller.Watcher
	jobID   string
	snaps   <-chan poller.Snapshot

	job    *api.Job
	errMsg string
	state  poller.State

	tabs   []string
	active int
	modes  map[string]render.Mode

	vp     viewport.Model
	spin   spinner.Model
	width  int
	height int
	ready  bool
}

// NewModel creates a dashboard model watching jobID through w. The watcher
// must already have been switched to jobID.
func NewModel(w *poller.Watcher, jobID string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		watcher: w,
		jobID:   jobID,
		snaps:   w.Snapshots(),
		state:   poller.StateFetching,
		modes:   make(map[string]render.Mode),
		spin:    sp,
	}
}

// Job returns the last observed job record, if any.
func (m Model) Job() *api.Job { return m.job }

// Err returns the fetch error that stopped polling, or "".
func (m Model) Err() string { return m.errMsg }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, waitForSnapshot(m.snaps))
}

func waitForSnapshot(ch <-chan poller.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return snapshotMsg(snap)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyHeight := msg.Height - chromeHeight
		if bodyHeight < 1 {
			bodyHeight = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, bodyHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = bodyHeight
		}
		m.refreshBody()
		return m, nil

	case snapshotMsg:
		// A snapshot for a different job id is from a superseded watch and
		// must not overwrite the current one.
		if msg.JobID != m.jobID {
			return m, waitForSnapshot(m.snaps)
		}
		m.state = msg.State
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
		} else {
			m.job = msg.Job
			m.syncTabs()
			m.refreshBody()
		}
		return m, waitForSnapshot(m.snaps)

	case streamClosedMsg:
		if m.state != poller.StateStopped {
			m.state = poller.StateStopped
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.watcher.Stop()
			return m, tea.Quit
		case "tab", "right", "l":
			if len(m.tabs) > 0 {
				m.active = (m.active + 1) % len(m.tabs)
				m.refreshBody()
			}
			return m, nil
		case "shift+tab", "left", "h":
			if len(m.tabs) > 0 {
				m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
				m.refreshBody()
			}
			return m, nil
		case "r":
			if key := m.activeKey(); key != "" {
				m.modes[key] = m.modes[key].Toggle()
				m.refreshBody()
			}
			return m, nil
		case "g":
			m.watcher.Refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

const chromeHeight = 6 // header + progress + tab bar + help + spacing

func (m *Model) activeKey() string {
	if m.active < 0 || m.active >= len(m.tabs) {
		return ""
	}
	return m.tabs[m.active]
}

// syncTabs recomputes the tab list from the keys present in the latest
// results map, in canonical order, with unknown keys appended.
func (m *Model) syncTabs() {
	if m.job == nil {
		return
	}
	prevKey := m.activeKey()

	var tabs []string
	seen := map[string]bool{}
	for _, key := range api.AgentKeys {
		if _, ok := m.job.Results[key]; ok {
			tabs = append(tabs, key)
			seen[key] = true
		}
	}
	for key := range m.job.Results {
		if !seen[key] {
			tabs = append(tabs, key)
		}
	}
	m.tabs = tabs

	m.active = 0
	for i, key := range tabs {
		if key == prevKey {
			m.active = i
			break
		}
	}
}

func (m *Model) refreshBody() {
	if !m.ready {
		return
	}
	key := m.activeKey()
	if key == "" || m.job == nil {
		m.vp.SetContent(helpStyle.Render("waiting for results…"))
		return
	}
	m.vp.SetContent(render.Render(key, m.job.Results[key], m.modes[key], m.vp.Width))
}

func (m Model) View() string {
	var b strings.Builder

	title := headerStyle.Render("briefdeck") + "  " + m.jobID
	b.WriteString(render.Truncate(title, m.width) + "\n")
	b.WriteString(m.statusLine() + "\n")
	b.WriteString(m.progressLine() + "\n")
	b.WriteString(m.tabBar() + "\n")
	if m.ready {
		b.WriteString(m.vp.View() + "\n")
	}
	b.WriteString(helpStyle.Render("tab/shift+tab switch · r raw/visual · g refresh · q quit"))
	return b.String()
}

func (m Model) statusLine() string {
	if m.errMsg != "" {
		return errStyle.Render("error: " + m.errMsg)
	}
	if m.job == nil {
		return m.spin.View() + " fetching job…"
	}
	line := statusStyles[m.job.Status].Render(string(m.job.Status))
	if m.job.Status == api.StatusRunning && m.job.Progress != nil && m.job.Progress.CurrentAgent != "" {
		line += "  " + m.spin.View() + " " + render.Config(m.job.Progress.CurrentAgent).Label
	}
	if m.job.Error != "" {
		line += "  " + errStyle.Render(m.job.Error)
	}
	return line
}

func (m Model) progressLine() string {
	if m.job == nil || m.job.Progress == nil {
		return ""
	}
	pct := m.job.Progress.Percent()
	barWidth := 30
	if m.width > 0 && m.width < 40 {
		barWidth = m.width - 10
	}
	if barWidth < 1 {
		barWidth = 1
	}
	filled := pct * barWidth / 100
	bar := barFillStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %3d%%  (%d/%d agents)", bar, pct,
		len(m.job.Progress.CompletedAgents), m.job.Progress.TotalAgents)
}

func (m Model) tabBar() string {
	if len(m.tabs) == 0 {
		return helpStyle.Render("no results yet")
	}
	parts := make([]string, 0, len(m.tabs))
	for i, key := range m.tabs {
		cfg := render.Config(key)
		label := cfg.Glyph + " " + cfg.Label
		if m.modes[key] == render.ModeRaw {
			label += " [raw]"
		}
		if i == m.active {
			parts = append(parts, activeTab.Foreground(cfg.Color).Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return render.Truncate(strings.Join(parts, ""), m.width)
}
