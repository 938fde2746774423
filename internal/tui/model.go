package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/codalotl/textdiffy/internal/diff"
	"github.com/codalotl/textdiffy/internal/export"
	"github.com/codalotl/textdiffy/internal/q/clipboard"
	"github.com/codalotl/textdiffy/internal/simplelogger"
)

// Replaced in tests.
var (
	writeClipboard = clipboard.Write
	writeExport    = export.WriteFile
)

// builtMsg is the result of build number gen.
type builtMsg struct {
	gen     int
	entries []diff.Entry
	err     error
	elapsed time.Duration
}

// noticeMsg replaces the status line notice.
type noticeMsg string

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	optionStyle = lipgloss.NewStyle().Faint(true)
	addStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	removeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	modifyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Italic(true)
)

type model struct {
	ctx context.Context
	log *slog.Logger

	oldName, newName string
	oldText, newText string
	watchOld         string
	watchNew         string
	exportFile       string
	color            bool

	opts diff.Options

	gen      int // number of the latest build requested
	building bool
	entries  []diff.Entry
	notice   string

	vp     viewport.Model
	width  int
	height int
}

func newModel(ctx context.Context, opts Options) *model {
	return &model{
		ctx:        ctx,
		log:        simplelogger.New("tui"),
		oldName:    opts.OldName,
		newName:    opts.NewName,
		oldText:    opts.OldText,
		newText:    opts.NewText,
		watchOld:   opts.WatchOld,
		watchNew:   opts.WatchNew,
		exportFile: opts.ExportFile,
		color:      opts.Color,
		opts:       opts.Diff,
		vp:         viewport.New(80, 20),
		width:      80,
		height:     22,
	}
}

func (m *model) Init() tea.Cmd {
	return m.rebuild()
}

// rebuild starts a new build of the current texts under a snapshot of the current options.
func (m *model) rebuild() tea.Cmd {
	m.gen++
	m.building = true
	gen, ctx, oldText, newText, opts := m.gen, m.ctx, m.oldText, m.newText, m.opts
	m.log.Debug("rebuild", "gen", gen, "granularity", opts.Granularity.String(), "whitespace_sensitive", opts.WhitespaceSensitive, "case_sensitive", opts.CaseSensitive)

	return func() tea.Msg {
		start := time.Now()
		entries, err := diff.BuildContext(ctx, oldText, newText, opts)
		return builtMsg{gen: gen, entries: entries, err: err, elapsed: time.Since(start)}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-2, 1) // title and status lines
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case builtMsg:
		if msg.gen != m.gen {
			m.log.Debug("dropping stale build", "gen", msg.gen, "latest", m.gen)
			return m, nil
		}
		m.building = false
		if msg.err != nil {
			m.notice = "diff failed: " + msg.err.Error()
			return m, nil
		}
		m.entries = msg.entries
		m.log.Info("built diff", "gen", msg.gen, "entries", len(msg.entries), "elapsed", msg.elapsed)
		m.vp.SetContent(diff.RenderPretty(m.entries, m.color))
		return m, nil

	case filesChangedMsg:
		if m.watchOld == "" || m.watchNew == "" {
			return m, nil
		}
		m.log.Info("files changed, reloading")
		return m, reload(m.watchOld, m.watchNew)

	case reloadedMsg:
		if msg.err != nil {
			m.notice = "reload failed: " + msg.err.Error()
			return m, nil
		}
		m.oldText, m.newText = msg.oldText, msg.newText
		m.notice = "reloaded"
		return m, m.rebuild()

	case noticeMsg:
		m.notice = string(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "w":
		m.opts.WhitespaceSensitive = !m.opts.WhitespaceSensitive
		m.notice = "whitespace " + sensitivity(m.opts.WhitespaceSensitive)
		return m, m.rebuild()
	case "c":
		m.opts.CaseSensitive = !m.opts.CaseSensitive
		m.notice = "case " + sensitivity(m.opts.CaseSensitive)
		return m, m.rebuild()
	case "g":
		m.opts.Granularity = nextGranularity(m.opts.Granularity)
		m.notice = "granularity " + m.opts.Granularity.String()
		return m, m.rebuild()
	case "y":
		return m, copyTranscript(m.entries, m.log)
	case "e":
		return m, exportDiff(m.exportFile, m.input(), m.log)
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *model) input() export.Input {
	return export.Input{OldName: m.oldName, NewName: m.newName, Old: m.oldText, New: m.newText, Entries: m.entries}
}

func (m *model) View() string {
	title := titleStyle.Render(m.oldName+" → "+m.newName) + "  " + optionStyle.Render(describeOptions(m.opts))
	return title + "\n" + m.vp.View() + "\n" + m.statusLine()
}

func (m *model) statusLine() string {
	s := diff.Summarize(m.entries)
	parts := []string{
		addStyle.Render("+" + humanize.Comma(int64(s.Added))),
		removeStyle.Render("-" + humanize.Comma(int64(s.Removed))),
		modifyStyle.Render("~" + humanize.Comma(int64(s.Modified))),
		humanize.Comma(int64(s.Same)) + " same",
	}
	if m.building {
		parts = append(parts, "building…")
	}
	if m.notice != "" {
		parts = append(parts, noticeStyle.Render(m.notice))
	}
	return strings.Join(parts, "  ")
}

func describeOptions(o diff.Options) string {
	return fmt.Sprintf("granularity: %s · whitespace: %s · case: %s", o.Granularity, sensitivity(o.WhitespaceSensitive), sensitivity(o.CaseSensitive))
}

func sensitivity(sensitive bool) string {
	if sensitive {
		return "significant"
	}
	return "ignored"
}

func nextGranularity(g diff.Granularity) diff.Granularity {
	next := g + 1
	if !next.Valid() {
		return diff.GranularityLine
	}
	return next
}

func copyTranscript(entries []diff.Entry, log *slog.Logger) tea.Cmd {
	text := diff.RenderPlain(entries)
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			log.Warn("clipboard write failed", "err", err)
			return noticeMsg("copy failed: " + err.Error())
		}
		return noticeMsg(fmt.Sprintf("copied %s lines", humanize.Comma(int64(len(entries)))))
	}
}

func exportDiff(path string, in export.Input, log *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		format := export.FormatForPath(path)
		n, err := writeExport(path, format, in)
		if err != nil {
			log.Warn("export failed", "path", path, "err", err)
			return noticeMsg("export failed: " + err.Error())
		}
		log.Info("exported", "path", path, "format", string(format), "bytes", n)
		return noticeMsg(fmt.Sprintf("wrote %s to %s", humanize.Bytes(uint64(n)), path))
	}
}
