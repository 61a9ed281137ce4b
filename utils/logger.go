package utils

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ANSI colour codes, one per level
const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	cyan   = "\033[36m"
	grey   = "\033[90m"
)

var (
	outMu   sync.Mutex
	out     io.Writer = os.Stdout
	verbose bool
)

// SetOutput redirects all log lines, e.g. to io.Discard in tests.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	out = w
}

// SetVerbose enables Debug lines.
func SetVerbose(v bool) {
	outMu.Lock()
	defer outMu.Unlock()
	verbose = v
}

func ts() string {
	return time.Now().Format("15:04:05")
}

func logf(colour, level, format string, a ...interface{}) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, "%s[%s] %-7s %s%s\n", colour, ts(), level, fmt.Sprintf(format, a...), reset)
}

func Debug(format string, a ...interface{}) {
	if !verbose {
		return
	}
	logf(grey, "[DEBUG]", format, a...)
}

func Info(format string, a ...interface{}) {
	logf(blue, "[INFO]", format, a...)
}

func Success(format string, a ...interface{}) {
	logf(green, "[OK]", format, a...)
}

func Warn(format string, a ...interface{}) {
	logf(yellow, "[WARN]", format, a...)
}

func Error(format string, a ...interface{}) {
	logf(red, "[ERROR]", format, a...)
}

func Section(title string) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, "\n%s[%s] ══════════ %s ══════════%s\n\n", cyan, ts(), title, reset)
}
