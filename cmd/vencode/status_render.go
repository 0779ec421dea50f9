package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

var statusTags = map[statusKind]string{
	statusInfo:  "INFO",
	statusOK:    "OK",
	statusWarn:  "WARN",
	statusError: "ERROR",
}

var statusColors = map[statusKind]lipgloss.Color{
	statusInfo:  lipgloss.Color("4"),
	statusOK:    lipgloss.Color("2"),
	statusWarn:  lipgloss.Color("3"),
	statusError: lipgloss.Color("1"),
}

const statusLabelWidth = 14

// statusPrinter formats the labelled result lines shared by check, probe and
// run. Only the [TAG] is colored, and only when renderer is set.
type statusPrinter struct {
	renderer *lipgloss.Renderer
}

// newStatusPrinter colors output written to a terminal.
func newStatusPrinter(out io.Writer) statusPrinter {
	if !isTerminal(out) {
		return statusPrinter{}
	}
	return statusPrinter{renderer: lipgloss.NewRenderer(out)}
}

func (p statusPrinter) line(label string, kind statusKind, message string) string {
	tag := "[" + statusTags[kind] + "]"
	if p.renderer != nil {
		tag = p.renderer.NewStyle().Foreground(statusColors[kind]).Bold(kind == statusError).Render(tag)
	}
	line := fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", tag)
	if message = strings.TrimSpace(message); message != "" {
		line += " " + message
	}
	return line
}

func (p statusPrinter) section(title string) []string {
	heading := "== " + strings.TrimSpace(title) + " =="
	if p.renderer != nil {
		heading = p.renderer.NewStyle().Bold(true).Render(heading)
	}
	return []string{heading}
}

// isTerminal reports whether stream is a file attached to a terminal.
func isTerminal(stream any) bool {
	file, ok := stream.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
