// Package log is the package-level logger for pushguard. It writes leveled,
// key/value records to stderr so stdout stays reserved for reports.
package log

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// LLogger is a charmbracelet logger type redefinition
type LLogger = log.Logger

// Logger is this package level logger
var Logger *LLogger

func init() {
	Logger = newLogger(os.Stderr)
}

func newLogger(w io.Writer) *LLogger {
	styles := log.DefaultStyles()
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	styles.Values["err"] = lipgloss.NewStyle().Bold(true)

	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Prefix:          "pushguard",
	})
	l.SetStyles(styles)
	l.SetLevel(log.InfoLevel)
	return l
}

// SetOutput redirects log records, mainly for tests.
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// EnableDebug enables debug logging and caller reporting
func EnableDebug() {
	Logger.SetLevel(log.DebugLevel)
	Logger.SetReportCaller(true)
}

// EnableSilence drops everything below error level.
func EnableSilence() {
	Logger.SetLevel(log.ErrorLevel)
}

// Reset restores the default info level.
func Reset() {
	Logger.SetLevel(log.InfoLevel)
	Logger.SetReportCaller(false)
}

// Debug logs debug messages
func Debug(msg string, keyvals ...interface{}) {
	Logger.Helper()
	Logger.Debug(msg, keyvals...)
}

// Info logs info messages
func Info(msg string, keyvals ...interface{}) {
	Logger.Helper()
	Logger.Info(msg, keyvals...)
}

// Warn logs warning messages
func Warn(msg string, keyvals ...interface{}) {
	Logger.Helper()
	Logger.Warn(msg, keyvals...)
}

// Error logs error messages
func Error(msg string, keyvals ...interface{}) {
	Logger.Helper()
	Logger.Error(msg, keyvals...)
}
