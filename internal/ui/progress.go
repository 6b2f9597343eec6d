package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"hirexpand/internal/driver"
)

// fileState is what one row of the view knows about a file.
type fileState struct {
	label string
	// weight is the share of the file's work already behind it, 0..1
	weight float64
	color  lipgloss.Color
	final  bool
}

var (
	stateQueued    = fileState{label: "queued", color: "7"}
	stateLoading   = fileState{label: "loading", color: "6"}
	stateParsing   = fileState{label: "parsing", weight: 0.3, color: "6"}
	stateExpanding = fileState{label: "expanding", weight: 0.6, color: "6"}
	stateDone      = fileState{label: "done", weight: 1, color: "2", final: true}
	stateCached    = fileState{label: "cached", weight: 1, color: "2", final: true}
	stateError     = fileState{label: "error", weight: 1, color: "1", final: true}
)

func stateOf(ev driver.Event) (fileState, bool) {
	switch ev.Status {
	case driver.StatusQueued:
		return stateQueued, true
	case driver.StatusDone:
		return stateDone, true
	case driver.StatusCached:
		return stateCached, true
	case driver.StatusError:
		return stateError, true
	case driver.StatusWorking:
		switch ev.Stage {
		case driver.StageLoad:
			return stateLoading, true
		case driver.StageParse:
			return stateParsing, true
		case driver.StageExpand:
			return stateExpanding, true
		}
	}
	return fileState{}, false
}

type fileRow struct {
	path  string
	state fileState
	calls int
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	// finished и failed считают файлы в финальном состоянии
	finished, failed int
	calls            int
	width            int
	done             bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that lists files with their
// expansion state and the number of macro calls found in each. The model
// quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("6"))))
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, path := range files {
		m.rows[i] = fileRow{path: path, state: stateQueued}
		m.byPath[path] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	}
	return m, cmd
}

// next ждёт следующее событие драйвера; закрытый канал означает конец.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

// apply ignores unknown files and events for files that already finished.
func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok || m.rows[i].state.final {
		return nil
	}
	row := &m.rows[i]
	if st, ok := stateOf(ev); ok {
		row.state = st
	}
	if ev.Calls > row.calls {
		m.calls += ev.Calls - row.calls
		row.calls = ev.Calls
	}
	if row.state.final {
		m.finished++
		if ev.Status == driver.StatusError {
			m.failed++
		}
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, row := range m.rows {
		sum += row.state.weight
	}
	return sum / float64(len(m.rows))
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s (%d/%d files, %d calls)", m.title, m.finished, len(m.rows), m.calls)
	if m.failed > 0 {
		header += fmt.Sprintf(", %d with errors", m.failed)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")).Render(header))
	b.WriteString("\n\n")

	const labelWidth, callsWidth = 10, 6
	nameWidth := max(m.width-labelWidth-callsWidth-5, 20)
	for _, row := range m.rows {
		label := lipgloss.NewStyle().Foreground(row.state.color).Render(fmt.Sprintf("%*s", labelWidth, row.state.label))
		calls := strings.Repeat(" ", callsWidth)
		if row.calls > 0 {
			calls = fmt.Sprintf("%*d!", callsWidth-1, row.calls)
		}
		fmt.Fprintf(&b, "  %s %s %s\n", label, calls, truncate(row.path, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// truncate cuts value to width terminal cells, marking the cut with "...".
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	default:
		return runewidth.Truncate(value, width, "...")
	}
}
