package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jlrickert/go-stdin/mylog"
	"github.com/jlrickert/go-stdin/stdin"
)

// Shared styles for the monitor view
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0f93fc")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#BCBEC0"))

	liveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#49E209")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD93D")).
			Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#FF8C42")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#BCBEC0")).
			Italic(true)
)

// maxRetainedLines bounds the scrollback kept in memory.
const maxRetainedLines = 500

// runMonitor wires the input stream to the TUI and runs it
func runMonitor(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: mylog.ParseLevel(cfg.LogLevel),
	}))
	ctx := mylog.WithLogger(cmd.Context(), logger)

	opts := []stdin.Option{
		stdin.WithLogger(mylog.LoggerFromContext(ctx)),
		stdin.WithChunkSize(cfg.ChunkSize),
	}
	if cfg.MaxBuffered > 0 {
		// A paused or slow UI should see recent data, not a backlog.
		opts = append(opts, stdin.WithMaxBuffered(cfg.MaxBuffered, stdin.OverflowDropOldest))
	}

	stream := stdin.NewStream(opts...)
	defer stream.Close()

	model := &monitorModel{
		stream:       stream,
		fallback:     cfg.Fallback,
		tickInterval: cfg.TickInterval,
		plain:        cfg.Plain,
	}

	var p *tea.Program
	if cfg.Plain {
		// Plain mode - no TTY requirements
		p = tea.NewProgram(model, tea.WithInput(nil), tea.WithOutput(os.Stdout))
	} else {
		p = tea.NewProgram(model, tea.WithAltScreen())
	}

	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal. Try --plain for non-interactive testing")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	mylog.LoggerFromContext(ctx).Info("session finished",
		"mode", stream.Mode().String(),
		"chunks", model.chunks,
		"bytes", model.bytes,
	)
	return nil
}

// Message types for bubbletea
type (
	chunkMsg      []byte
	streamDoneMsg struct{}
	tickMsg       time.Time
)

// monitorModel renders the input stream and a liveness ticker
type monitorModel struct {
	stream       *stdin.Stream
	fallback     string
	tickInterval time.Duration
	plain        bool

	view  viewport.Model
	ready bool
	lines []string

	chunks   int
	bytes    int64
	ticks    int
	finished bool
}

func (m *monitorModel) Init() tea.Cmd {
	return tea.Batch(m.checkInput(), m.tick())
}

// checkInput polls the stream for the next chunk
func (m *monitorModel) checkInput() tea.Cmd {
	return func() tea.Msg {
		select {
		case chunk, ok := <-m.stream.Chunks():
			if !ok {
				// Stream drained and disconnected, input is done
				return streamDoneMsg{}
			}
			return chunkMsg(chunk)
		case <-time.After(50 * time.Millisecond):
			// No data available right now, check again soon
			// This timeout ensures the UI remains responsive
			return m.checkInput()()
		}
	}
}

func (m *monitorModel) tick() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		// Let the viewport handle scrolling keys
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 2
		if !m.ready {
			m.view = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = msg.Height - headerHeight - footerHeight
		}
		m.view.SetContent(strings.Join(m.lines, "\n"))

	case chunkMsg:
		m.chunks++
		m.bytes += int64(len(msg))
		m.appendLine(fmt.Sprintf("%s  %4dB  %s",
			time.Now().Format("15:04:05.000"), len(msg), preview(msg)))
		if m.ready {
			m.view.SetContent(strings.Join(m.lines, "\n"))
			m.view.GotoBottom()
		}
		// Keep polling until the stream disconnects
		if !m.finished {
			cmds = append(cmds, m.checkInput())
		}

	case streamDoneMsg:
		m.finished = true
		if m.plain {
			// Without a keyboard there is no "q"; show the final state
			// briefly and exit.
			cmds = append(cmds, tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
				return tea.Quit()
			}))
		}

	case tickMsg:
		m.ticks++
		cmds = append(cmds, m.tick())

	default:
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *monitorModel) appendLine(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > maxRetainedLines {
		m.lines = m.lines[len(m.lines)-maxRetainedLines:]
	}
}

func (m *monitorModel) View() string {
	if m.plain {
		// Plain output does not depend on terminal sizing at all.
		var b strings.Builder
		fmt.Fprintf(&b, "stdin-monitor (plain)\n\n")
		fmt.Fprintf(&b, "input: %s\n", m.stream.Mode())
		fmt.Fprintf(&b, "chunks: %d\nbytes: %d\nticks: %d\n", m.chunks, m.bytes, m.ticks)
		if m.stream.Mode() == stdin.ModeInteractive {
			fmt.Fprintf(&b, "fallback: %s\n", m.fallback)
		}
		if m.finished {
			b.WriteString("\nstream closed.\n")
		}
		return b.String()
	}

	if !m.ready {
		return "initializing..."
	}

	header := titleStyle.Render("stdin-monitor") +
		statusStyle.Render("  input: "+m.stream.Mode().String())

	var body string
	if m.stream.Mode() == stdin.ModeInteractive {
		body = bannerStyle.Render(
			"stdin is a terminal: no piped data will ever arrive.\n"+
				"fallback: "+m.fallback) +
			"\n\n" + m.view.View()
	} else {
		body = m.view.View()
	}

	state := liveStyle.Render("live")
	if m.finished {
		state = doneStyle.Render("done")
	}
	status := statusStyle.Render(fmt.Sprintf("chunks %d  bytes %d  ticks %d  ", m.chunks, m.bytes, m.ticks)) + state

	return header + "\n\n" + body + "\n" + status + "\n" + helpStyle.Render("q: quit")
}

// preview renders a chunk for display. %+q escapes control bytes and
// non-ASCII to plain ASCII, so truncating by byte cannot split a rune.
func preview(chunk []byte) string {
	const max = 64
	s := fmt.Sprintf("%+q", chunk)
	s = s[1 : len(s)-1]
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}
