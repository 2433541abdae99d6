package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/orusplay/editor"
	"github.com/iw2rmb/orusplay/internal/config"
	"github.com/iw2rmb/orusplay/internal/logger"
	"github.com/iw2rmb/orusplay/playground"
	"github.com/iw2rmb/orusplay/syntax"
)

type appConfig struct {
	Session *playground.Session
	Runner  *playground.Runner
	// Load prepares the runtime; it runs once at startup.
	Load    func(context.Context) error
	Version func() string

	Editor    config.EditorConfig
	ShareBase string
	// SaveTo receives the main tab on save. Empty disables saving.
	SaveTo string
	// Clipboard defaults to the system clipboard when one exists.
	Clipboard editor.Clipboard
}

type appKeyMap struct {
	Quit, Run, Clear, Save, Share key.Binding
	NewTab, NextTab, CloseTab     key.Binding
	Example, Reset                key.Binding
}

func defaultAppKeyMap() appKeyMap {
	return appKeyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		Run:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "run")),
		Clear:    key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "clear")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Share:    key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "share")),
		NewTab:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new tab")),
		NextTab:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "next tab")),
		CloseTab: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close tab")),
		Example:  key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "example")),
		Reset:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "reset")),
	}
}

type runtimeState int

const (
	runtimeLoading runtimeState = iota
	runtimeReady
	runtimeFailed
)

type runtimeLoadedMsg struct{ err error }

type runFinishedMsg struct {
	res     playground.Result
	current bool
}

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#858585"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#264f78"))
	outputHeader   = lipgloss.NewStyle().Foreground(lipgloss.Color("#858585"))
	outputError    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f48771"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#858585"))
	statusError    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f48771"))
)

// app hosts the editor, the session tabs and the output pane.
type app struct {
	cfg  appConfig
	keys appKeyMap

	editor        editor.Model
	width, height int

	runtime    runtimeState
	running    bool
	output     string
	outputErrs int

	status    string
	statusErr bool

	example int
}

func newApp(cfg appConfig) app {
	if cfg.Clipboard == nil && editor.SystemClipboardAvailable() {
		cfg.Clipboard = editor.SystemClipboard{}
	}
	a := app{cfg: cfg, keys: defaultAppKeyMap(), example: -1}
	a.resetEditor()
	a.setStatus("loading runtime…", false)
	return a
}

func (a app) Init() tea.Cmd {
	load := a.cfg.Load
	return tea.Batch(a.editor.Init(), func() tea.Msg {
		if load == nil {
			return runtimeLoadedMsg{}
		}
		return runtimeLoadedMsg{err: load(context.Background())}
	})
}

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.layout()
		return a, nil

	case runtimeLoadedMsg:
		if msg.err != nil {
			a.runtime = runtimeFailed
			a.setStatus("runtime unavailable: "+msg.err.Error(), true)
			return a, nil
		}
		a.runtime = runtimeReady
		a.setStatus(strings.TrimSpace("runtime ready "+a.version()), false)
		return a, nil

	case runFinishedMsg:
		if !msg.current {
			return a, nil
		}
		a.running = false
		a.output = msg.res.Output
		a.outputErrs = msg.res.ErrorCount
		if msg.res.Failed() {
			a.setStatus(fmt.Sprintf("run failed (%s)", msg.res.Source), true)
		} else {
			a.setStatus("ran in "+msg.res.Duration.Round(time.Millisecond).String(), false)
		}
		return a, nil

	case tea.KeyMsg:
		if handled, cmd := a.handleKey(msg); handled {
			return a, cmd
		}
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

func (a *app) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	s := a.cfg.Session
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.cfg.Runner.Cancel()
		return true, tea.Quit

	case key.Matches(msg, a.keys.Run):
		return true, a.run()

	case key.Matches(msg, a.keys.Clear):
		a.cfg.Runner.Clear()
		a.running = false
		a.output = ""
		a.outputErrs = 0
		a.setStatus("output cleared", false)

	case key.Matches(msg, a.keys.Save):
		a.save()

	case key.Matches(msg, a.keys.Share):
		a.share()

	case key.Matches(msg, a.keys.NewTab):
		name, err := s.NewFile(a.freeFileName())
		if err != nil {
			a.setStatus(err.Error(), true)
			return true, nil
		}
		a.resetEditor()
		a.setStatus("created "+name, false)

	case key.Matches(msg, a.keys.NextTab):
		files := s.Files()
		for i, f := range files {
			if f == s.Current() {
				_ = s.Switch(files[(i+1)%len(files)])
				break
			}
		}
		a.resetEditor()

	case key.Matches(msg, a.keys.CloseTab):
		name := s.Current()
		if err := s.Delete(name); err != nil {
			a.setStatus(err.Error(), true)
			return true, nil
		}
		a.resetEditor()
		a.setStatus("closed "+name, false)

	case key.Matches(msg, a.keys.Example):
		examples := playground.Examples()
		if len(examples) == 0 {
			return true, nil
		}
		a.example = (a.example + 1) % len(examples)
		title := examples[a.example].Title
		if err := s.LoadExample(title); err != nil {
			a.setStatus(err.Error(), true)
			return true, nil
		}
		a.resetEditor()
		a.setStatus("example: "+title, false)

	case key.Matches(msg, a.keys.Reset):
		s.Reset()
		a.resetEditor()
		a.setStatus("reset "+s.Current(), false)

	default:
		return false, nil
	}
	return true, nil
}

// run starts executing the current tab. A run still in flight is superseded.
func (a *app) run() tea.Cmd {
	if a.runtime == runtimeLoading {
		a.setStatus("runtime still loading…", false)
		return nil
	}
	a.running = true
	a.output = "Running…"
	a.outputErrs = 0
	a.setStatus("running "+a.cfg.Session.Current(), false)

	run := a.cfg.Runner.Start(a.cfg.Session.Code())
	return func() tea.Msg {
		res, current := run(context.Background())
		return runFinishedMsg{res: res, current: current}
	}
}

func (a *app) save() {
	if a.cfg.SaveTo == "" {
		a.setStatus("no file to save to; start with: orusplay edit <file>", true)
		return
	}
	code, _ := a.cfg.Session.FileCode(playground.MainFile)
	if err := os.WriteFile(a.cfg.SaveTo, []byte(code), 0o644); err != nil {
		logger.Error("save failed", "path", a.cfg.SaveTo, "error", err)
		a.setStatus("save failed: "+err.Error(), true)
		return
	}
	a.setStatus(fmt.Sprintf("saved %s (%s)", a.cfg.SaveTo, humanize.Bytes(uint64(len(code)))), false)
}

func (a *app) share() {
	link, err := playground.ShareURL(a.cfg.ShareBase, a.cfg.Session.Code())
	if err != nil {
		a.setStatus("share: "+err.Error(), true)
		return
	}
	if a.cfg.Clipboard == nil {
		a.setStatus(link, false)
		return
	}
	if err := a.cfg.Clipboard.WriteText(link); err != nil {
		logger.Warn("clipboard write failed", "error", err)
		a.setStatus(link, false)
		return
	}
	a.setStatus("share link copied ("+humanize.Bytes(uint64(len(link)))+")", false)
}

// freeFileName returns the first fileN name not used by the session.
func (a *app) freeFileName() string {
	used := map[string]bool{}
	for _, f := range a.cfg.Session.Files() {
		used[f] = true
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("file%d", i)
		if !used[name+playground.FileExt] {
			return name
		}
	}
}

// resetEditor rebuilds the editor for the current tab, so undo history stays
// per tab visit.
func (a *app) resetEditor() {
	s := a.cfg.Session
	ec := a.cfg.Editor
	a.editor = editor.New(editor.Config{
		Text:         s.Code(),
		OnChange:     func(text string) { s.SetCode(text) },
		Language:     ec.Language,
		Dark:         ec.Dark,
		ShowLineNums: ec.ShowLineNumbers,
		Style:        editor.DefaultStyle(ec.Dark),
		Clipboard:    a.cfg.Clipboard,
		Placeholder:  syntax.DefaultPlaceholder,
		HistoryLimit: ec.HistoryLimit,
	})
	a.layout()
}

func (a *app) setStatus(s string, isErr bool) {
	a.status = s
	a.statusErr = isErr
}

func (a app) version() string {
	if a.cfg.Version == nil {
		return ""
	}
	return a.cfg.Version()
}

// outputHeight is the output pane height including its header row.
func (a app) outputHeight() int {
	return clamp(a.height/3, 3, 12)
}

func (a *app) layout() {
	if a.width <= 0 || a.height <= 0 {
		return
	}
	h := a.height - 2 - a.outputHeight()
	if h < 1 {
		h = 1
	}
	a.editor = a.editor.SetSize(a.width, h)
}

func (a app) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		a.viewTabs(),
		a.editor.View(),
		a.viewOutput(),
		a.viewStatus(),
	)
}

func (a app) viewTabs() string {
	s := a.cfg.Session
	tabs := make([]string, 0, len(s.Files()))
	for _, f := range s.Files() {
		if f == s.Current() {
			tabs = append(tabs, activeTabStyle.Render(f))
		} else {
			tabs = append(tabs, tabStyle.Render(f))
		}
	}
	return lipgloss.NewStyle().MaxWidth(a.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (a app) viewOutput() string {
	h := a.outputHeight()
	header := "─ Output "
	if a.outputErrs > 0 {
		header += fmt.Sprintf("(%d %s) ", a.outputErrs, plural(a.outputErrs, "error", "errors"))
	}
	if w := a.width - runewidth.StringWidth(header); w > 0 {
		header += strings.Repeat("─", w)
	}

	rows := []string{outputHeader.Render(runewidth.Truncate(header, a.width, ""))}
	var lines []string
	if a.output != "" {
		lines = strings.Split(a.output, "\n")
	}
	// Keep the tail of long output.
	if n := h - 1; len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for _, line := range lines {
		line = runewidth.Truncate(strings.ReplaceAll(line, "\t", "    "), a.width, "…")
		if playground.IsErrorLine(line) {
			line = outputError.Render(line)
		}
		rows = append(rows, line)
	}
	for len(rows) < h {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func (a app) viewStatus() string {
	help := "ctrl+r run · ctrl+p share · ctrl+q quit"
	status := a.status
	st := statusStyle
	if a.statusErr {
		st = statusError
	}
	if w := a.width - runewidth.StringWidth(help) - 2; w > 0 {
		status = runewidth.FillRight(runewidth.Truncate(status, w, "…"), w)
		return st.Render(status) + "  " + statusStyle.Render(help)
	}
	return st.Render(runewidth.Truncate(status, a.width, "…"))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ tea.Model = app{}
