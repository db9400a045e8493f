package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/moby/term"
)

type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Options configures the Logger.
type Options struct {
	// Out is where user-facing logs go. In most cases this should be os.Stderr
	// so that machine-readable command output on stdout stays clean.
	Out io.Writer

	// LogLevel controls how much gets printed.
	// error < warn < info < debug
	LogLevel LogLevel

	// Component identifies the source of log messages (e.g. "plan").
	// If empty, no component tag is included in log output.
	Component string

	// ForceColor renders styles even when Out is not a terminal.
	ForceColor bool
}

// Logger is a small leveled logger with optional lipgloss styling.
// Styling is dropped automatically when the output is not a terminal.
type Logger struct {
	mu        sync.Mutex
	out       io.Writer
	style     styles
	styled    bool
	component string
	logLevel  LogLevel
}

type styles struct {
	debug  lipgloss.Style
	info   lipgloss.Style
	warn   lipgloss.Style
	err    lipgloss.Style
	banner lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		debug:  lipgloss.NewStyle().Faint(true),
		info:   lipgloss.NewStyle(),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange-ish
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		banner: lipgloss.NewStyle().Bold(true).Border(lipgloss.NormalBorder()).Padding(0, 1).Margin(1, 0),
	}
}

// New creates a new Logger.
func New(opts Options) *Logger {
	if opts.Out == nil {
		opts.Out = os.Stderr
	}

	styled := opts.ForceColor
	if !styled {
		if f, ok := opts.Out.(*os.File); ok {
			styled = term.IsTerminal(f.Fd())
		}
	}

	return &Logger{
		out:       opts.Out,
		style:     defaultStyles(),
		styled:    styled,
		component: opts.Component,
		logLevel:  opts.LogLevel,
	}
}

func (l *Logger) SetLogLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logLevel = level
}

func (l *Logger) SetComponent(component string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.component = component
}

func (l *Logger) Error(format string, args ...any) {
	l.printLog(LogLevelError, "ERR ", l.style.err, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.printLog(LogLevelWarn, "WARN", l.style.warn, format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.printLog(LogLevelInfo, "INFO", l.style.info, format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.printLog(LogLevelDebug, "DBG ", l.style.debug, format, args...)
}

// Banner prints a framed title. Used sparingly, e.g. around plan summaries.
func (l *Logger) Banner(title string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.styled {
		fmt.Fprintln(l.out, l.style.banner.Render(title))
		return
	}
	fmt.Fprintf(l.out, "== %s ==\n", title)
}

func (l *Logger) Spacer() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out)
}

func (l *Logger) printLog(level LogLevel, tag string, style lipgloss.Style, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level > l.logLevel {
		return
	}

	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] [%s]", time.Now().Format("15:04:05.000"), tag)
	if l.component != "" {
		line += " [" + l.component + "]"
	}
	line += " " + msg

	if l.styled {
		line = style.Render(line)
	}
	fmt.Fprintln(l.out, line)
}
