// Package viz is the terminal presentation layer: a bubbletea session that
// renders the planned subplot stack with one shared, linked time window.
package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/jgae23/EEG-ECG-Multichannel/internal/annotations"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/classify"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/layout"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/recording"
)

// terminalRowDivisor maps plan pixel heights onto text rows.
const terminalRowDivisor = 25

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle()
	mutedStyle  = lipgloss.NewStyle()
	helpStyle   = lipgloss.NewStyle().MarginTop(1)
)

func applyTheme(t Theme) {
	headerStyle = lipgloss.NewStyle().Foreground(t.Header).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(t.Text)
	mutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	helpStyle = lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1)
}

func categoryStyle(cat classify.Category) lipgloss.Style {
	switch cat {
	case classify.ECG:
		return lipgloss.NewStyle().Foreground(CurrentTheme.ECG)
	case classify.Reference:
		return lipgloss.NewStyle().Foreground(CurrentTheme.Reference)
	default:
		return lipgloss.NewStyle().Foreground(CurrentTheme.EEG)
	}
}

// Model is the viewer state: which channels are on screen and the shared
// time window every panel is clipped to.
type Model struct {
	rec   *recording.Recording
	plan  *layout.Plan
	store *annotations.Store // nil disables marking

	t0, t1 float64 // visible window, seconds
	top    int     // first visible plan row

	width, height int
	showHelp      bool
	status        string
}

func NewModel(rec *recording.Recording, plan *layout.Plan, store *annotations.Store) Model {
	t0, t1 := 0.0, 1.0
	if len(rec.Time) > 0 {
		t0, t1 = rec.Time[0], rec.Time[len(rec.Time)-1]
	}
	return Model{
		rec:    rec,
		plan:   plan,
		store:  store,
		t0:     t0,
		t1:     t1,
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "h", "left":
		m.pan(-0.25)
	case "l", "right":
		m.pan(0.25)
	case "+", "=":
		m.zoom(0.5)
	case "-", "_":
		m.zoom(2.0)
	case "0", "r":
		m.reset()
	case "j", "down":
		if m.top < len(m.plan.Rows)-1 {
			m.top++
		}
	case "k", "up":
		if m.top > 0 {
			m.top--
		}
	case "g":
		m.top = 0
	case "G":
		m.top = len(m.plan.Rows) - 1
	case "m":
		m.mark()
	case "t":
		names := ThemeNames()
		for i, name := range names {
			if name == CurrentTheme.Name {
				SetTheme(names[(i+1)%len(names)])
				break
			}
		}
		applyTheme(CurrentTheme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) span() (float64, float64) {
	if len(m.rec.Time) == 0 {
		return 0, 1
	}
	return m.rec.Time[0], m.rec.Time[len(m.rec.Time)-1]
}

func (m *Model) pan(frac float64) {
	lo, hi := m.span()
	dt := (m.t1 - m.t0) * frac
	m.t0, m.t1 = clampWindow(m.t0+dt, m.t1+dt, lo, hi)
}

func (m *Model) zoom(factor float64) {
	lo, hi := m.span()
	center := (m.t0 + m.t1) / 2
	half := (m.t1 - m.t0) / 2 * factor
	m.t0, m.t1 = clampWindow(center-half, center+half, lo, hi)
}

func (m *Model) reset() {
	m.t0, m.t1 = m.span()
	m.status = ""
}

func (m *Model) mark() {
	if m.store == nil {
		m.status = "annotations disabled (no data dir)"
		return
	}
	w, err := m.store.Mark(m.rec.Path, m.t0, m.t1, "marked from viewer")
	if err != nil {
		m.status = fmt.Sprintf("mark failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("marked %.2f–%.2fs (%s)", w.StartSec, w.EndSec, w.ID[:8])
}

// panelRows is the terminal height of one subplot.
func (m *Model) panelRows() int {
	rows := m.plan.RowHeight / terminalRowDivisor
	if rows < 4 {
		rows = 4
	}
	if rows > 12 {
		rows = 12
	}
	return rows
}

func (m *Model) visibleRows() int {
	per := m.panelRows() + 2
	avail := m.height - 5
	if avail < per {
		return 1
	}
	return avail / per
}

func (m Model) View() string {
	if m.showHelp {
		return m.helpView()
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("EEG/ECG MULTI-CHANNEL") + "\n")
	s.WriteString(mutedStyle.Render(fmt.Sprintf("%s | %d channels | %.0fHz",
		m.rec.Path, len(m.plan.Rows), m.rec.SampleRate)) + "\n")
	s.WriteString(labelStyle.Render(fmt.Sprintf("Window: %.2f–%.2f seconds", m.t0, m.t1)))
	if m.status != "" {
		s.WriteString(mutedStyle.Render("  |  " + m.status))
	}
	s.WriteString("\n\n")

	graphWidth := m.width - 12
	if graphWidth < 20 {
		graphWidth = 20
	}

	end := m.top + m.visibleRows()
	if end > len(m.plan.Rows) {
		end = len(m.plan.Rows)
	}
	for _, row := range m.plan.Rows[m.top:end] {
		ch, ok := m.rec.Channel(row.Channel)
		if !ok {
			continue
		}
		s.WriteString(categoryStyle(row.Category).Render(row.Label) + "\n")
		s.WriteString(m.renderPanel(ch, graphWidth) + "\n")
	}
	if end < len(m.plan.Rows) {
		s.WriteString(mutedStyle.Render(fmt.Sprintf("… %d more channels (j/k to scroll)", len(m.plan.Rows)-end)) + "\n")
	}

	s.WriteString(helpStyle.Render("h/l:Pan  +/-:Zoom  0:Reset  j/k:Channels  m:Mark  t:Theme  ?:Help  q:Quit"))
	return s.String()
}

func (m *Model) renderPanel(ch *recording.Channel, graphWidth int) string {
	i0, i1 := windowIndices(m.rec.Time, m.t0, m.t1)
	if i1-i0 < 2 {
		return mutedStyle.Render("  (no samples in window)")
	}
	data := downsample(ch.Samples[i0:i1], graphWidth)
	return asciigraph.Plot(data,
		asciigraph.Height(m.panelRows()),
		asciigraph.Width(graphWidth),
	)
}

func (m Model) helpView() string {
	return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  H/←      - Pan left                 ║
║  L/→      - Pan right                ║
║  +        - Zoom in                  ║
║  -        - Zoom out                 ║
║  0/R      - Reset axes               ║
║  J/K      - Scroll channels          ║
║  G/Shift-G- First/last channel       ║
║  M        - Mark current window      ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`
}

// Run opens the interactive viewer for a loaded recording.
func Run(rec *recording.Recording, plan *layout.Plan, store *annotations.Store, theme string) error {
	SetTheme(theme)
	applyTheme(CurrentTheme)
	p := tea.NewProgram(NewModel(rec, plan, store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
