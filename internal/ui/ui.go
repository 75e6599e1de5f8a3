// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/session"
	"github.com/litescript/ls-starfield/internal/version"
)

const (
	// Depth adjustment per keypress, in magnitudes
	depthStep = 0.5

	minDepth = 0.0
	maxDepth = 15.0
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// DataUpdateMsg signals new session state is available.
	DataUpdateMsg struct {
		Snapshot session.Snapshot
	}

	// ErrorMsg signals a catalog load error.
	ErrorMsg struct {
		Error error
	}

	// deepenDoneMsg signals a background deepen finished.
	deepenDoneMsg struct {
		err error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	session *session.Manager

	// UI state
	width     int
	height    int
	ready     bool
	statusMsg string

	// Requested magnitude depth; the catalog deepens toward it in the
	// background while the view renders whatever has loaded.
	depth     float64
	deepening bool

	refresh  time.Duration
	skyView  SkyViewModel
	snapshot session.Snapshot
}

// New creates a new root UI model. refresh is the snapshot poll interval.
func New(mgr *session.Manager, depth float64, refresh time.Duration) Model {
	if refresh <= 0 {
		refresh = 500 * time.Millisecond
	}
	return Model{
		session: mgr,
		depth:   depth,
		refresh: refresh,
		skyView: NewSkyViewModel(depth),
	}
}

// WithTarget aims the initial camera at an equatorial position.
func (m Model) WithTarget(ra, dec astro.Degree) Model {
	m.skyView = m.skyView.AimAt(ra, dec)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.deepenCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "+", "=":
			if m.depth < maxDepth {
				m.depth += depthStep
				m.skyView = m.skyView.UpdateData(m.snapshot, m.depth)
				if !m.deepening {
					m.deepening = true
					cmds = append(cmds, m.deepenCmd())
				}
			}

		case "-", "_":
			// Shallower display only; loaded bands stay in memory.
			if m.depth > minDepth {
				m.depth -= depthStep
				m.skyView = m.skyView.UpdateData(m.snapshot, m.depth)
			}

		default:
			var cmd tea.Cmd
			m.skyView, cmd = m.skyView.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		// Header takes 3 lines, footer 2
		m.skyView = m.skyView.SetSize(msg.Width, msg.Height-5)

	case TickMsg:
		cmds = append(cmds, m.tickCmd())
		m.snapshot = m.session.Snapshot()
		m.skyView = m.skyView.UpdateData(m.snapshot, m.depth)

	case DataUpdateMsg:
		m.snapshot = msg.Snapshot
		m.skyView = m.skyView.UpdateData(m.snapshot, m.depth)

	case deepenDoneMsg:
		m.deepening = false
		m.snapshot = m.session.Snapshot()
		m.skyView = m.skyView.UpdateData(m.snapshot, m.depth)
		if msg.err != nil {
			m.statusMsg = "catalog: " + msg.err.Error()
		} else {
			m.statusMsg = ""
		}
		// The requested depth may have grown while we were fetching.
		if m.snapshot.LoadedVmag == nil || *m.snapshot.LoadedVmag < m.depth {
			if !m.snapshot.Failed {
				m.deepening = true
				cmds = append(cmds, m.deepenCmd())
			}
		}

	case ErrorMsg:
		m.statusMsg = msg.Error.Error()

	default:
		var cmd tea.Cmd
		m.skyView, cmd = m.skyView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderHeader() + "\n" + m.skyView.View() + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	title := titleStyle.Render("ls-starfield") + muted.Render(" v"+version.Version)

	f := m.snapshot.Frame
	gast := astro.NormalizeDeg(astro.GreenwichApparentSiderealTime(time.Now()))
	site := muted.Render(fmt.Sprintf("lat %.2f° lon %.2f° | GAST %.2f°",
		float64(f.Lat), float64(f.Lon), float64(gast)))

	stars := muted.Render(fmt.Sprintf("%d stars", len(m.snapshot.Stars)))

	return fmt.Sprintf("  %s | %s | %s\n", title, site, stars)
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	var status string
	switch {
	case m.snapshot.Failed:
		status = errorStyle.Render("ERROR: catalog load failed")
	case m.statusMsg != "":
		status = errorStyle.Render(m.statusMsg)
	case m.deepening:
		status = accentStyle.Render("loading bands...")
	case len(m.snapshot.Events) > 0:
		last := m.snapshot.Events[len(m.snapshot.Events)-1]
		status = dimStyle.Render(strings.ToLower(string(last.Type)))
	default:
		status = dimStyle.Render("idle")
	}

	help := dimStyle.Render("arrows: pan | z/x: zoom | +/-: depth | g: goto | n: labels | q: quit")
	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

// deepenCmd runs a blocking deepen in the background and reports back.
func (m Model) deepenCmd() tea.Cmd {
	mgr := m.session
	depth := m.depth
	return func() tea.Msg {
		err := mgr.Deepen(context.Background(), depth)
		return deepenDoneMsg{err: err}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SendDataUpdate creates a command that sends a data update message.
func SendDataUpdate(snapshot session.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
