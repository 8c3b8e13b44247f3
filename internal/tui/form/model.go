// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     form
// Description: Bubble Tea model for the text-to-speech form
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package form

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/sprachwerk/internal/conversion"
	"github.com/msto63/sprachwerk/pkg/core/config"
	"github.com/msto63/sprachwerk/pkg/core/logging"
)

// Field represents the currently focused form field
type Field int

const (
	FieldText Field = iota
	FieldVoice
	FieldSpeed
	FieldOutput
	FieldConvert
)

// defaultOutputBase names the output file when no path is remembered
const defaultOutputBase = "sprachwerk"

// Config holds the configuration for the form
type Config struct {
	Converter    *conversion.Converter
	DefaultVoice conversion.Voice
	DefaultSpeed float64
	SettingsPath string
	Logger       *logging.Logger

	// AudioExt is the extension of the default output file (default: mp3)
	AudioExt string
}

// Model is the main Bubble Tea model
type Model struct {
	// Dimensions
	width, height int
	ready         bool

	// State
	focus      Field
	voice      conversion.Voice
	converting bool
	picking    bool
	allFiles   bool
	notice     *notice
	quitting   bool

	// loaded holds a file's exact contents, loadedView what the textarea
	// made of it. loaded is submitted until the user edits the text.
	loaded     string
	loadedView string

	// Components
	text    textarea.Model
	speed   textinput.Model
	output  textinput.Model
	picker  filepicker.Model
	spinner spinner.Model

	// Dependencies
	ctx          context.Context
	converter    *conversion.Converter
	settings     Settings
	settingsPath string
	logger       *logging.Logger
}

// New creates the form model. ctx is handed to every conversion.
func New(ctx context.Context, cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	settings := Settings{}
	if cfg.SettingsPath != "" {
		s, err := LoadSettings(cfg.SettingsPath)
		if err != nil {
			logger.WarnWithErr("Failed to load form settings", err, logging.String("path", cfg.SettingsPath))
		} else {
			settings = s
		}
	}

	defaultVoice := cfg.DefaultVoice
	if defaultVoice == "" {
		defaultVoice = conversion.VoiceSecondary
	}
	defaultSpeed := cfg.DefaultSpeed
	if defaultSpeed == 0 {
		defaultSpeed = 1.0
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	ta := textarea.New()
	ta.Placeholder = "Text zur Umwandlung in Sprache..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(60)
	ta.SetHeight(8)
	ta.Focus()

	speed := textinput.New()
	speed.Prompt = ""
	speed.Placeholder = "1.0"
	speed.CharLimit = 8
	speed.Width = 10
	speed.SetValue(formatSpeed(settings.speedOr(defaultSpeed)))

	output := textinput.New()
	output.Prompt = ""
	ext := strings.TrimPrefix(cfg.AudioExt, ".")
	if ext == "" {
		ext = "mp3"
	}
	output.Placeholder = "ausgabe." + ext
	output.CharLimit = 4096
	output.Width = 60
	output.SetValue(initialOutputPath(settings.OutputDir, ext))

	fp := filepicker.New()
	fp.AllowedTypes = []string{".txt"}
	fp.AutoHeight = false
	fp.CurrentDirectory = initialTextDir(settings.TextDir)

	return Model{
		focus:        FieldText,
		voice:        settings.voiceOr(defaultVoice),
		text:         ta,
		speed:        speed,
		output:       output,
		picker:       fp,
		spinner:      s,
		ctx:          ctx,
		converter:    cfg.Converter,
		settings:     settings,
		settingsPath: cfg.SettingsPath,
		logger:       logger,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+q":
			m.quitting = true
			return m, tea.Quit
		}

		if m.notice != nil {
			switch msg.String() {
			case "esc", "enter", " ":
				m.notice = nil
			}
			return m, nil
		}

		if m.picking {
			return m.updatePicker(msg)
		}
		return m.updateForm(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		fieldWidth := max(20, m.width-8)
		m.text.SetWidth(fieldWidth)
		m.text.SetHeight(max(3, m.height-22))
		m.output.Width = fieldWidth
		m.picker.Height = max(3, m.height-8)

	case spinner.TickMsg:
		if m.converting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case conversionDoneMsg:
		m.converting = false
		res := msg.result
		if !res.OK() {
			m.logger.WarnWithErr("Conversion reported failure", res.Err)
			m.notice = &notice{
				kind:  noticeError,
				title: "Fehler",
				body:  "Konvertierung fehlgeschlagen: " + res.Err.Error(),
			}
			break
		}

		m.notice = &notice{
			kind:  noticeInfo,
			title: "Erfolg",
			body: fmt.Sprintf("Konvertierung abgeschlossen.\n\nAudio: %s\nText:  %s\nGröße: %d Bytes",
				res.AudioPath, res.TextPath, res.Bytes),
		}
		m.settings.OutputDir = filepath.Dir(res.AudioPath)
		m.settings.Voice = string(res.Request.Voice)
		m.settings.Speed = res.Request.Speed
		cmds = append(cmds, m.saveSettings())

	case fileLoadedMsg:
		if msg.err != nil {
			m.notice = &notice{
				kind:  noticeError,
				title: "Fehler",
				body:  "Datei konnte nicht gelesen werden: " + msg.err.Error(),
			}
			break
		}
		m.text.SetValue(msg.text)
		m.loaded, m.loadedView = msg.text, m.text.Value()
		m.setFocus(FieldText)
		m.settings.TextDir = filepath.Dir(msg.path)
		m.logger.Debug("Text file loaded", logging.Fields{"path": msg.path, "length": len(msg.text)})

		if shown, total := lineCount(m.loadedView), lineCount(msg.text); shown < total {
			m.notice = &notice{
				kind:  noticeInfo,
				title: "Hinweis",
				body: fmt.Sprintf("Die Datei hat %d Zeilen, angezeigt werden %d.\nKonvertiert wird der vollständige Text.",
					total, shown),
			}
		}

	case settingsSavedMsg:
		if msg.err != nil {
			m.logger.WarnWithErr("Failed to save form settings", msg.err, logging.String("path", m.settingsPath))
		}

	default:
		// Directory listings, cursor blinks and other component messages
		var cmd tea.Cmd
		switch {
		case m.picking:
			m.picker, cmd = m.picker.Update(msg)
		case m.focus == FieldText:
			m.text, cmd = m.text.Update(msg)
		case m.focus == FieldSpeed:
			m.speed, cmd = m.speed.Update(msg)
		case m.focus == FieldOutput:
			m.output, cmd = m.output.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// updateForm handles keys while the form has focus
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+r", "ctrl+s":
		return m.submit()

	case "ctrl+o":
		return m.openPicker()

	case "tab":
		m.setFocus((m.focus + 1) % (FieldConvert + 1))
		return m, nil

	case "shift+tab":
		if m.focus == 0 {
			m.setFocus(FieldConvert)
		} else {
			m.setFocus(m.focus - 1)
		}
		return m, nil
	}

	switch m.focus {
	case FieldText:
		m.text, cmd = m.text.Update(msg)

	case FieldVoice:
		switch msg.String() {
		case "left", "right", " ", "up", "down":
			m.toggleVoice()
		case "1":
			m.voice = conversion.VoicePrimary
		case "2":
			m.voice = conversion.VoiceSecondary
		case "enter":
			m.setFocus(FieldSpeed)
		}

	case FieldSpeed:
		if msg.String() == "enter" {
			m.setFocus(FieldOutput)
			return m, nil
		}
		m.speed, cmd = m.speed.Update(msg)

	case FieldOutput:
		if msg.String() == "enter" {
			m.setFocus(FieldConvert)
			return m, nil
		}
		m.output, cmd = m.output.Update(msg)

	case FieldConvert:
		if msg.String() == "enter" || msg.String() == " " {
			return m.submit()
		}
	}

	return m, cmd
}

// updatePicker handles keys while the file picker is open
func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.picking = false
		return m, nil

	case "ctrl+a":
		// Switch between .txt files and all files
		m.allFiles = !m.allFiles
		if m.allFiles {
			m.picker.AllowedTypes = nil
		} else {
			m.picker.AllowedTypes = []string{".txt"}
		}
		return m, m.picker.Init()
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		return m, tea.Batch(cmd, loadTextFile(path))
	}
	return m, cmd
}

// submit validates the form and starts a conversion
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.converting {
		m.notice = &notice{kind: noticeError, title: "Hinweis", body: "Eine Konvertierung läuft bereits."}
		return m, nil
	}

	req, err := conversion.Validate(conversion.FormInput{
		Text:       m.textValue(),
		Voice:      string(m.voice),
		Speed:      m.speed.Value(),
		OutputPath: m.output.Value(),
	})
	if err != nil {
		m.logger.Debug("Form rejected", logging.Err(err))
		m.notice = &notice{kind: noticeError, title: "Eingabe prüfen", body: validationMessage(err)}
		return m, nil
	}

	results, err := m.converter.Start(m.ctx, req)
	if err != nil {
		m.notice = &notice{kind: noticeError, title: "Hinweis", body: validationMessage(err)}
		return m, nil
	}

	m.logger.Info("Form submitted", logging.Fields{
		"request_id": req.ID,
		"voice":      string(req.Voice),
		"speed":      req.Speed,
	})
	m.converting = true
	return m, tea.Batch(m.spinner.Tick, waitForResult(results))
}

// openPicker shows the file picker for loading a source text
func (m Model) openPicker() (tea.Model, tea.Cmd) {
	if m.converting {
		return m, nil
	}
	m.picking = true
	return m, m.picker.Init()
}

func (m *Model) setFocus(f Field) {
	m.focus = f
	m.text.Blur()
	m.speed.Blur()
	m.output.Blur()

	switch f {
	case FieldText:
		m.text.Focus()
	case FieldSpeed:
		m.speed.Focus()
	case FieldOutput:
		m.output.Focus()
	}
}

// textValue returns the text to convert: the loaded file as read while
// the textarea is unedited, otherwise the textarea content
func (m Model) textValue() string {
	if v := m.text.Value(); m.loaded == "" || v != m.loadedView {
		return v
	}
	return m.loaded
}

func lineCount(s string) int {
	return strings.Count(s, "\n") + 1
}

func (m *Model) toggleVoice() {
	if m.voice == conversion.VoicePrimary {
		m.voice = conversion.VoiceSecondary
	} else {
		m.voice = conversion.VoicePrimary
	}
}

func (m Model) saveSettings() tea.Cmd {
	if m.settingsPath == "" {
		return nil
	}
	path, settings := m.settingsPath, m.settings
	return func() tea.Msg {
		return settingsSavedMsg{err: SaveSettings(path, settings)}
	}
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.spinner.View() + " Initialisiere..."
	}

	var content string
	switch {
	case m.notice != nil:
		content = m.viewNotice()
	case m.picking:
		content = m.viewPicker()
	default:
		content = m.viewForm()
	}
	return content
}

// viewForm renders the form
func (m Model) viewForm() string {
	var b strings.Builder

	b.WriteString(TitlePanelStyle.Render(
		LogoStyle.Render(Logo) + "  " + SubHeaderStyle.Render("Text in Sprache umwandeln")))
	b.WriteString("\n")

	b.WriteString(m.renderLabel("Text:", FieldText) + "\n")
	b.WriteString(m.fieldStyle(FieldText).Render(m.text.View()))
	b.WriteString("\n")

	b.WriteString(m.renderLabel("Stimme:", FieldVoice) + "  ")
	var voices []string
	for _, v := range conversion.Voices {
		voices = append(voices, RenderRadio(v.Label(), v == m.voice))
	}
	b.WriteString(strings.Join(voices, "   "))
	b.WriteString("\n\n")

	b.WriteString(m.renderLabel(fmt.Sprintf("Sprechgeschwindigkeit (%.1f-%.1f):", config.MinSpeed, config.MaxSpeed), FieldSpeed) + " ")
	b.WriteString(m.fieldStyle(FieldSpeed).Render(m.speed.View()))
	b.WriteString("\n")

	b.WriteString(m.renderLabel("Ausgabedatei:", FieldOutput) + "\n")
	b.WriteString(m.fieldStyle(FieldOutput).Render(m.output.View()))
	b.WriteString("\n\n")

	switch {
	case m.converting:
		b.WriteString(ButtonDisabledStyle.Render("[ Konvertieren ]") + " " +
			m.spinner.View() + StatusRunningStyle.Render(" Konvertierung läuft..."))
	case m.focus == FieldConvert:
		b.WriteString(ButtonFocusedStyle.Render("[ Konvertieren ]"))
	default:
		b.WriteString(ButtonStyle.Render("[ Konvertieren ]"))
	}
	b.WriteString("\n")

	help := []string{
		RenderKeyHint("Tab", "Nächstes Feld"),
		RenderKeyHint("Ctrl+O", "Text laden"),
		RenderKeyHint("Ctrl+R", "Konvertieren"),
		RenderKeyHint("Ctrl+Q", "Beenden"),
	}
	b.WriteString(HelpStyle.Render(strings.Join(help, "  ")))

	return b.String()
}

// viewPicker renders the text file picker
func (m Model) viewPicker() string {
	var b strings.Builder

	filter := "Textdateien (*.txt)"
	if m.allFiles {
		filter = "Alle Dateien"
	}
	b.WriteString(TitlePanelStyle.Render(LogoStyle.Render("Textdatei laden") + "  " + SubHeaderStyle.Render(filter)))
	b.WriteString("\n")
	b.WriteString(SubHeaderStyle.Render(m.picker.CurrentDirectory) + "\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")

	help := []string{
		RenderKeyHint("Enter", "Auswählen"),
		RenderKeyHint("Ctrl+A", "Filter wechseln"),
		RenderKeyHint("Esc", "Abbrechen"),
	}
	b.WriteString(HelpStyle.Render(strings.Join(help, "  ")))
	return b.String()
}

// viewNotice renders the modal notice centered on screen
func (m Model) viewNotice() string {
	boxStyle, titleStyle := NoticeInfoStyle, NoticeInfoTitleStyle
	if m.notice.kind == noticeError {
		boxStyle, titleStyle = NoticeErrorStyle, NoticeErrorTitleStyle
	}

	box := boxStyle.Width(min(70, max(30, m.width-10))).Render(
		titleStyle.Render(m.notice.title) + "\n\n" +
			m.notice.body + "\n\n" +
			RenderKeyHint("Enter", "OK"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderLabel(label string, f Field) string {
	if m.focus == f && !m.converting {
		return LabelFocusedStyle.Render(label)
	}
	return LabelStyle.Render(label)
}

func (m Model) fieldStyle(f Field) lipgloss.Style {
	if m.focus == f {
		return FieldFocusedStyle
	}
	return FieldStyle
}

// waitForResult blocks on the worker channel off the update loop
func waitForResult(results <-chan conversion.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-results
		if !ok {
			return conversionDoneMsg{result: conversion.Result{Err: errors.New("conversion ended without result")}}
		}
		return conversionDoneMsg{result: res}
	}
}

// loadTextFile reads a source text file off the update loop
func loadTextFile(path string) tea.Cmd {
	return func() tea.Msg {
		text, err := conversion.LoadTextFile(path)
		return fileLoadedMsg{path: path, text: text, err: err}
	}
}

// validationMessage turns validation and guard errors into form text
func validationMessage(err error) string {
	var verr *conversion.ValidationError
	if !errors.As(err, &verr) {
		if errors.Is(err, conversion.ErrConversionInProgress) {
			return "Eine Konvertierung läuft bereits."
		}
		return err.Error()
	}

	lines := make([]string, 0, len(verr.Reasons))
	for _, r := range verr.Reasons {
		switch r.Code {
		case conversion.CodeInvalidSpeed:
			lines = append(lines, fmt.Sprintf("Bitte eine gültige Geschwindigkeit zwischen %.1f und %.1f eingeben.",
				config.MinSpeed, config.MaxSpeed))
		case conversion.CodeEmptyText:
			lines = append(lines, "Bitte Text zum Umwandeln eingeben.")
		case conversion.CodeNoOutputPath:
			lines = append(lines, "Bitte eine Ausgabedatei angeben.")
		case conversion.CodeOutputIsText:
			lines = append(lines, "Die Ausgabedatei darf keine .txt-Datei sein.")
		default:
			lines = append(lines, r.Error())
		}
	}
	return strings.Join(lines, "\n")
}

// formatSpeed renders a speed with at least one decimal
func formatSpeed(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func defaultOutputName(ext string) string {
	return defaultOutputBase + "." + ext
}

func initialOutputPath(dir, ext string) string {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return defaultOutputName(ext)
		}
		dir = wd
	}
	return filepath.Join(dir, defaultOutputName(ext))
}

func initialTextDir(dir string) string {
	if dir != "" {
		return dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Run starts the form and blocks until it quits
func Run(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(New(ctx, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
