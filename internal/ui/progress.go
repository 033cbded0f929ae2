// Package ui renders shader build progress in the terminal.
package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"shaderbuild/internal/buildpipeline"
)

const (
	labelQueued    = "queued"
	labelCompiling = "compiling"
	labelDone      = "done"
	labelError     = "error"
	labelSkipped   = "planned"
)

type progressModel struct {
	title   string
	root    string
	events  <-chan buildpipeline.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	dir     string
	width   int
	done    bool
	cancel  func()
}

type fileItem struct {
	path   string
	status string
	note   string
}

type eventMsg buildpipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders one line per
// shader. Files discovered after start are appended as their events arrive.
// cancel, if set, is called on ctrl+c.
func NewProgressModel(title, root string, files []string, events <-chan buildpipeline.Event, cancel func()) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	m := &progressModel{
		title:   title,
		root:    root,
		events:  events,
		spinner: sp,
		prog:    prog,
		index:   make(map[string]int, len(files)),
		width:   80,
		cancel:  cancel,
	}
	for _, file := range files {
		m.add(file)
	}
	return m
}

func (m *progressModel) add(file string) int {
	if idx, ok := m.index[file]; ok {
		return idx
	}
	m.items = append(m.items, fileItem{path: file, status: labelQueued})
	m.index[file] = len(m.items) - 1
	return len(m.items) - 1
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(buildpipeline.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		// raw mode swallows SIGINT; cancel the build and wait for the
		// event channel to close
		if msg.String() == "ctrl+c" && m.cancel != nil {
			m.cancel()
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.dir != "" && !m.done {
		header = fmt.Sprintf("%s (%s)", header, m.display(m.dir))
	}
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 10
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := m.display(item.path)
		if item.note != "" {
			name += "  " + item.note
		}
		name = truncate(name, nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%10s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s\n", statusStyled, name))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) display(path string) string {
	if m.root == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(m.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev buildpipeline.Event) tea.Cmd {
	if ev.Dir != "" {
		m.dir = ev.Dir
		return nil
	}
	if ev.File == "" {
		return nil
	}
	idx := m.add(ev.File)
	if label := statusLabel(ev.Status); label != "" {
		m.items[idx].status = label
	}
	if ev.Note != "" {
		m.items[idx].note = ev.Note
	}
	if ev.Status == buildpipeline.StatusError && ev.ExitCode != 0 {
		m.items[idx].note = fmt.Sprintf("exit %d", ev.ExitCode)
	}
	return m.prog.SetPercent(m.fraction())
}

func (m *progressModel) fraction() float64 {
	if len(m.items) == 0 {
		return 0
	}
	finished := 0.0
	for _, item := range m.items {
		switch item.status {
		case labelDone, labelError, labelSkipped:
			finished += 1.0
		case labelCompiling:
			finished += 0.5
		}
	}
	return finished / float64(len(m.items))
}

func statusLabel(status buildpipeline.Status) string {
	switch status {
	case buildpipeline.StatusQueued:
		return labelQueued
	case buildpipeline.StatusWorking:
		return labelCompiling
	case buildpipeline.StatusDone:
		return labelDone
	case buildpipeline.StatusError:
		return labelError
	case buildpipeline.StatusSkipped:
		return labelSkipped
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case labelDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case labelError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case labelCompiling, labelSkipped:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
