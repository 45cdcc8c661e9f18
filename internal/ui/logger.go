package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Box-drawing characters
const (
	boxTopLeft     = "╭"
	boxTopRight    = "╮"
	boxBottomLeft  = "╰"
	boxBottomRight = "╯"
	boxHorizontal  = "─"
	boxVertical    = "│"
)

var (
	outMu sync.Mutex
	out   io.Writer = os.Stdout
	now             = time.Now
)

// SetOutput redirects log output, returning the previous writer
func SetOutput(w io.Writer) io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	prev := out
	out = w
	return prev
}

func emit(line string) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintln(out, line)
}

func timestamp() string {
	return clrDim.Sprint(now().Format("15:04:05"))
}

// PrintBanner displays the startup header
func PrintBanner(version string) {
	badge := Heading(" ◆ SUPPORT DESK ")
	ver := Muted(version)
	width := 60

	emit("")
	emit(Muted(boxTopLeft + strings.Repeat(boxHorizontal, width) + boxTopRight))
	emit(fmt.Sprintf("%s  %s %s", Muted(boxVertical), badge, ver))
	emit(fmt.Sprintf("%s  %s", Muted(boxVertical), Subtle("Customer conversations, one inbox")))
	emit(Muted(boxBottomLeft + strings.Repeat(boxHorizontal, width) + boxBottomRight))
	emit("")
}

// LogStatus displays a status message with appropriate styling
func LogStatus(category, message string) {
	var icon, styled string

	switch category {
	case "success":
		icon = clrSuccess.Sprint("✔")
		styled = clrSuccess.Sprint(message)
	case "error":
		icon = clrError.Sprint("✖")
		styled = clrError.Sprint(message)
	case "warning", "warn":
		icon = clrWarning.Sprint("⚠")
		styled = clrWarning.Sprint(message)
	case "info":
		icon = clrInfo.Sprint("ℹ")
		styled = clrSubtle.Sprint(message)
	case "debug":
		icon = clrDim.Sprint("·")
		styled = clrDim.Sprint(message)
	default:
		icon = clrDim.Sprint("●")
		styled = clrSubtle.Sprint(message)
	}

	emit(fmt.Sprintf("%s  %s  %s", timestamp(), icon, styled))
}

// LogRequest displays one served HTTP request
func LogRequest(method, path string, status int, d time.Duration, requestID string) {
	var code string
	switch {
	case status >= 500:
		code = clrError.Sprintf("%d", status)
	case status >= 400:
		code = clrWarning.Sprintf("%d", status)
	case status >= 300:
		code = clrSecondary.Sprintf("%d", status)
	default:
		code = clrSuccess.Sprintf("%d", status)
	}

	emit(fmt.Sprintf("%s  %s  %s %s  %s  %s",
		timestamp(),
		Accent("→"),
		clrSubtle.Sprintf("%-6s", method),
		Accent("%-32s", path),
		code,
		Muted("%s %s", d.Round(time.Microsecond), requestID)))
}

// LogSection creates a section header
func LogSection(title string) {
	pad := 50 - len(title)
	if pad < 2 {
		pad = 2
	}
	emit("")
	emit(fmt.Sprintf("%s %s %s", Muted("──"), Heading(title), Muted(strings.Repeat("─", pad))))
}

// LogGroupItem logs a label/value pair under a section
func LogGroupItem(label, value string) {
	emit(fmt.Sprintf("%s  %s %s", AccentDim(boxVertical), Muted(label+":"), Accent(value)))
}

// LogGracefulShutdown announces that the servers are draining
func LogGracefulShutdown() {
	LogStatus("warning", "Shutting down gracefully...")
}

// PrintBlock writes pre-rendered text (e.g. a table) as-is
func PrintBlock(text string) {
	emit(strings.TrimRight(text, "\n"))
}
