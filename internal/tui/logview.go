// Package tui implements the interactive log viewer behind `forge logs -f`.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/productforge/forge/internal/logging"
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	footerStyle = lipgloss.NewStyle().Faint(true)
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	fieldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func levelStyle(level string) lipgloss.Style {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return debugStyle
	case logging.LevelWarn:
		return warnStyle
	case logging.LevelError:
		return errorStyle
	default:
		return infoStyle
	}
}

// tickMsg is sent periodically to poll the log file for new lines
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// logViewModel tails a log file into a scrollable viewport.
type logViewModel struct {
	path    string
	vp      viewport.Model
	lines   []string
	offset  int64
	partial string
	ready   bool
	width   int
	height  int
	readErr error
}

// Init starts the poll loop
func (m logViewModel) Init() tea.Cmd {
	return tick()
}

// Update handles messages and updates the model
func (m logViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// One line each for header and footer
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - 2
		}
		m.setContent()
		m.vp.GotoBottom()
		return m, nil

	case tickMsg:
		appended := m.readNew()
		if appended && m.ready {
			m.setContent()
			m.vp.GotoBottom()
		}
		return m, tick()
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// readNew reads lines appended to the log file since the last poll. It
// reports whether anything was added. A file that shrank was rotated, so
// reading restarts from the top of the new file.
func (m *logViewModel) readNew() bool {
	file, err := os.Open(m.path)
	if err != nil {
		m.readErr = err
		return false
	}
	defer file.Close()
	m.readErr = nil

	info, err := file.Stat()
	if err != nil {
		m.readErr = err
		return false
	}
	if info.Size() < m.offset {
		m.offset = 0
		m.partial = ""
		m.lines = nil
	}
	if info.Size() == m.offset {
		return false
	}

	if _, err := file.Seek(m.offset, io.SeekStart); err != nil {
		m.readErr = err
		return false
	}
	data, err := io.ReadAll(file)
	if err != nil {
		m.readErr = err
		return false
	}
	m.offset += int64(len(data))

	text := m.partial + string(data)
	parts := strings.Split(text, "\n")
	// The last element is an unterminated line; hold it for the next poll
	m.partial = parts[len(parts)-1]
	parts = parts[:len(parts)-1]

	added := false
	for _, line := range parts {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m.lines = append(m.lines, renderLine(line))
		added = true
	}
	return added
}

func (m *logViewModel) setContent() {
	truncated := make([]string, len(m.lines))
	for i, line := range m.lines {
		truncated[i] = truncateANSI(line, m.width)
	}
	m.vp.SetContent(strings.Join(truncated, "\n"))
}

// renderLine formats one raw log line for display. Unparseable lines are
// shown as-is.
func renderLine(line string) string {
	entry, ok := logging.ParseLine(line)
	if !ok {
		return line
	}

	var sb strings.Builder
	sb.WriteString(timeStyle.Render(entry.Time.Format("15:04:05.000")))
	sb.WriteString(" ")
	sb.WriteString(levelStyle(entry.Level).Render(fmt.Sprintf("%-5s", strings.ToUpper(entry.Level))))
	sb.WriteString(" ")
	sb.WriteString(entry.Msg)

	if entry.Validator != "" {
		sb.WriteString(" ")
		sb.WriteString(fieldStyle.Render("validator=" + entry.Validator))
	}
	if entry.Component != "" {
		sb.WriteString(" ")
		sb.WriteString(fieldStyle.Render("component=" + entry.Component))
	}
	for key, value := range entry.Extra {
		sb.WriteString(" ")
		sb.WriteString(fieldStyle.Render(key + "="))
		sb.WriteString(fmt.Sprintf("%v", value))
	}

	return sb.String()
}

// truncateANSI truncates a line to maxWidth visual columns, preserving ANSI
// escape sequences.
func truncateANSI(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return "..."
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "...")
}

// View renders the viewer
func (m logViewModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := headerStyle.Render("forge logs") + footerStyle.Render(" "+m.path)
	footer := footerStyle.Render("↑/↓ scroll · q quit")
	if m.readErr != nil {
		footer = errorStyle.Render(fmt.Sprintf("read error: %v", m.readErr))
	}

	return truncateANSI(header, m.width) + "\n" + m.vp.View() + "\n" + footer
}

// RunLogView opens an interactive viewer that follows the log file at path.
func RunLogView(path string) error {
	m := logViewModel{path: path}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
