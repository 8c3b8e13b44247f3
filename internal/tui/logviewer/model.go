// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     logviewer
// Description: Bubble Tea model that follows the Sprachwerk log file
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logviewer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/sprachwerk/pkg/core/logging"
)

// maxLineSize bounds a single log line
const maxLineSize = 1 << 20

// LevelFilter tracks which log levels are shown. Debug covers trace.
type LevelFilter struct {
	Debug bool
	Info  bool
	Warn  bool
	Error bool
}

// allLevels shows every level
var allLevels = LevelFilter{Debug: true, Info: true, Warn: true, Error: true}

// Config holds log viewer configuration
type Config struct {
	Path       string
	MaxEntries int
	Refresh    time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path:       logging.DefaultLogPath(),
		MaxEntries: 1000,
		Refresh:    2 * time.Second,
	}
}

// Model is the main Bubble Tea model of the log viewer
type Model struct {
	// State
	width      int
	height     int
	ready      bool
	loading    bool
	paused     bool
	autoScroll bool
	searching  bool
	err        error

	// Components
	viewport viewport.Model
	spinner  spinner.Model
	search   textinput.Model

	// Log state
	allLogs      []logging.Entry
	filteredLogs []logging.Entry
	skipped      int
	levelFilter  LevelFilter
	searchFilter string

	// Configuration
	path       string
	maxEntries int
	refresh    time.Duration
}

// New creates a new log viewer model
func New(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "Suche in Nachrichten"

	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 1000
	}
	if cfg.Refresh <= 0 {
		cfg.Refresh = 2 * time.Second
	}

	return Model{
		spinner:     sp,
		search:      search,
		loading:     true,
		levelFilter: allLevels,
		autoScroll:  true,
		path:        cfg.Path,
		maxEntries:  cfg.MaxEntries,
		refresh:     cfg.Refresh,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadLogs,
		m.tick(),
	)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 5 // Title + filter bar
		footerHeight := 4 // Status bar + help
		viewportHeight := max(1, msg.Height-headerHeight-footerHeight)

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case logsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.allLogs = msg.entries
			m.skipped = msg.skipped
			m.applyFilters()
			m.updateViewportContent()
		}

	case tickMsg:
		if !m.paused {
			cmds = append(cmds, m.loadLogs)
		}
		cmds = append(cmds, m.tick())
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		if m.searchFilter != "" {
			m.searchFilter = ""
			m.search.SetValue("")
			m.refilter()
		}
		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		switch string(msg.Runes) {
		case "q":
			return m, tea.Quit

		// Log level filters
		case "1":
			m.levelFilter.Debug = !m.levelFilter.Debug
			m.refilter()
		case "2":
			m.levelFilter.Info = !m.levelFilter.Info
			m.refilter()
		case "3":
			m.levelFilter.Warn = !m.levelFilter.Warn
			m.refilter()
		case "4":
			m.levelFilter.Error = !m.levelFilter.Error
			m.refilter()
		case "0":
			m.levelFilter = allLevels
			m.refilter()

		case "/":
			m.searching = true
			return m, m.search.Focus()

		case "p", " ":
			m.paused = !m.paused

		case "r":
			m.loading = true
			return m, m.loadLogs

		case "a":
			m.autoScroll = !m.autoScroll
			if m.autoScroll {
				m.viewport.GotoBottom()
			}

		case "g":
			m.viewport.GotoTop()
			m.autoScroll = false

		case "G":
			m.viewport.GotoBottom()
			m.autoScroll = true
		}
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		m.autoScroll = false
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil

	case tea.KeyUp:
		m.viewport.LineUp(1)
		m.autoScroll = false
		return m, nil

	case tea.KeyDown:
		m.viewport.LineDown(1)
		return m, nil
	}

	return m, nil
}

// handleSearchKey edits the search term
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.searchFilter = strings.TrimSpace(m.search.Value())
		m.refilter()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.searchFilter)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) refilter() {
	m.applyFilters()
	m.updateViewportContent()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade Log..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	b.WriteString(m.renderLogArea())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

// renderHeader renders the header with logo and file path
func (m Model) renderHeader() string {
	pauseStatus := ""
	if m.paused {
		pauseStatus = "  " + StatusPausedStyle.Render("PAUSIERT")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		LogoStyle.Render(Logo),
		strings.Repeat(" ", 3),
		SubHeaderStyle.Render(m.path),
		pauseStatus,
	)
	return TitlePanelStyle.Width(max(10, m.width-4)).Render(header)
}

// renderFilterBar renders the level filters and search term
func (m Model) renderFilterBar() string {
	filters := []string{
		"1:" + RenderFilterStatus("DEBUG", m.levelFilter.Debug),
		"2:" + RenderFilterStatus("INFO", m.levelFilter.Info),
		"3:" + RenderFilterStatus("WARN", m.levelFilter.Warn),
		"4:" + RenderFilterStatus("ERROR", m.levelFilter.Error),
	}

	content := strings.Join(filters, "  ") + "  " +
		HelpDescStyle.Render(fmt.Sprintf("[%d/%d Eintraege]", len(m.filteredLogs), len(m.allLogs)))

	switch {
	case m.searching:
		content += "  " + m.search.View()
	case m.searchFilter != "":
		content += "  " + FilterActiveStyle.Render("Suche: "+m.searchFilter)
	}
	if m.autoScroll {
		content += "  " + FilterActiveStyle.Render("[Auto-Scroll]")
	}

	return FilterBarStyle.Width(max(10, m.width-2)).Render(content)
}

func (m Model) renderLogArea() string {
	style := LogPanelStyle.Width(max(10, m.width-2)).Height(m.viewport.Height + 2)
	return style.Render(m.viewport.View())
}

// renderStatusBar renders load state and errors
func (m Model) renderStatusBar() string {
	var status string
	switch {
	case m.loading:
		status = m.spinner.View() + " Lade..."
	case m.err != nil:
		status = StatusErrorStyle.Render("Fehler: " + m.err.Error())
	default:
		status = HelpDescStyle.Render(fmt.Sprintf("Eintraege: %d", len(m.allLogs)))
		if m.skipped > 0 {
			status += HelpDescStyle.Render(fmt.Sprintf("  (%d Zeilen nicht lesbar)", m.skipped))
		}
	}
	return StatusBarStyle.Width(max(10, m.width-2)).Render(status)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("1-4", "Level"),
		RenderKeyHint("0", "Alle"),
		RenderKeyHint("/", "Suche"),
		RenderKeyHint("p", "Pause"),
		RenderKeyHint("r", "Neu laden"),
		RenderKeyHint("a", "AutoScroll"),
		RenderKeyHint("g/G", "Anfang/Ende"),
		RenderKeyHint("q", "Beenden"),
	}
	return HelpStyle.Render(strings.Join(items, "  "))
}

// updateViewportContent renders the filtered entries into the viewport
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}

	var content strings.Builder
	for _, e := range m.filteredLogs {
		content.WriteString(formatEntry(e))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
	if m.autoScroll {
		m.viewport.GotoBottom()
	}
}

// formatEntry renders one entry as a single line
func formatEntry(e logging.Entry) string {
	parts := []string{
		LogTimestampStyle.Render(e.Timestamp.Format("15:04:05")),
		RenderLevelBadge(e.Level),
	}
	if e.RequestID != "" {
		parts = append(parts, LogRequestStyle.Render(truncateString(e.RequestID, 8)))
	}
	parts = append(parts, LogMessageStyle.Render(e.Message))
	if e.Error != nil {
		parts = append(parts, LogErrorTextStyle.Render("error="+e.Error.Error()))
	}
	return strings.Join(parts, " ")
}

// applyFilters filters logs based on current filter settings
func (m *Model) applyFilters() {
	m.filteredLogs = filterEntries(m.allLogs, m.levelFilter, m.searchFilter)
}

func filterEntries(entries []logging.Entry, levels LevelFilter, search string) []logging.Entry {
	search = strings.ToLower(search)
	filtered := make([]logging.Entry, 0, len(entries))

	for _, e := range entries {
		switch e.Level {
		case logging.LevelTrace, logging.LevelDebug:
			if !levels.Debug {
				continue
			}
		case logging.LevelInfo:
			if !levels.Info {
				continue
			}
		case logging.LevelWarn:
			if !levels.Warn {
				continue
			}
		case logging.LevelError:
			if !levels.Error {
				continue
			}
		}

		if search != "" && !strings.Contains(strings.ToLower(e.Message), search) &&
			!strings.Contains(strings.ToLower(e.RequestID), search) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// loadLogs reads the log file
func (m Model) loadLogs() tea.Msg {
	entries, skipped, err := readLogFile(m.path, m.maxEntries)
	return logsLoadedMsg{entries: entries, skipped: skipped, err: err}
}

// readLogFile parses the last max entries of path. Lines that cannot be
// parsed are counted in skipped.
func readLogFile(path string, max int) ([]logging.Entry, int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	defer f.Close()

	var (
		entries []logging.Entry
		skipped int
	)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := logging.ParseLine(line)
		if err != nil {
			skipped++
			continue
		}
		entries = append(entries, entry)
		if len(entries) > max {
			entries = entries[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}
	return entries, skipped, nil
}

// truncateString truncates a string to max length
func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// Run starts the log viewer
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
