package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vencode/internal/session"
	"vencode/internal/settings"
	"vencode/internal/textutil"
)

const logRows = 10

const footerText = "Controls: arrows/tab to navigate | left/right to change | enter to select | q to quit"

func (m Model) View() string {
	view := m.session.Snapshot()
	width := maxInt(40, m.width-2)

	parts := []string{
		headerStyle.Width(width - 2).Render(m.title),
		m.renderSettings(view, width),
		m.renderButton(view, width),
		m.renderStatus(view, width),
		m.renderDashboard(view, width),
		helpStyle.Width(width).Render(footerText),
	}
	return lipgloss.NewStyle().Margin(0, 1).Render(strings.Join(parts, "\n"))
}

func (m Model) renderSettings(view session.View, width int) string {
	left := width / 2
	right := width - left

	cell := func(f settings.Focus, w int) string {
		c, ok := view.Control(f)
		if !ok {
			return renderPanel("", "", w, panelBorder)
		}
		border := textutil.Ternary(c.Focused, focusColor, panelBorder)
		return renderPanel(c.Label, valueStyle.Render("< "+c.Value+" >"), w, border)
	}

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, cell(settings.FocusEncoder, left), cell(settings.FocusContainer, right)),
		lipgloss.JoinHorizontal(lipgloss.Top, cell(settings.FocusQuantizer, left), cell(settings.FocusFrameRate, right)),
		lipgloss.JoinHorizontal(lipgloss.Top,
			cell(settings.FocusAudioBitrate, left),
			renderPanel("FILES", filesStyle.Render(filesBody(view, right-4)), right, filesColor),
		),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// filesBody describes the job under the cursor.
func filesBody(view session.View, width int) string {
	input, output := "", ""
	if job, ok := view.CurrentJob(); ok {
		input, output = job.Input, job.Output
	} else if len(view.Jobs) == 0 {
		input = "No file selected"
	} else {
		input = "All files processed"
	}
	position := min(view.Current+1, len(view.Jobs))
	lines := []string{
		"IN: " + textutil.TruncateLeft(input, width-4),
		"OUT: " + textutil.TruncateLeft(output, width-5),
		fmt.Sprintf("Queue: %d/%d", position, len(view.Jobs)),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderButton(view session.View, width int) string {
	border := textutil.Ternary(view.Focus == settings.FocusSubmit, submitColor, panelBorder)
	label, fg := "[ START ENCODING ]", submitColor
	if view.Encoding {
		label, fg = "[ ENCODING IN PROGRESS... ]", accentSecondary
	}
	return buttonStyle.
		BorderForeground(border).
		Foreground(fg).
		Width(width - 2).
		Render(label)
}

func (m Model) renderStatus(view session.View, width int) string {
	if view.LastError != "" {
		return errorStyle.Render(textutil.TruncateRight("ERROR: "+textutil.SingleLine(view.LastError), width))
	}
	if !view.Encoding {
		return statusStyle.Render("* Ready")
	}
	job, _ := view.CurrentJob()
	return statusStyle.Render(textutil.TruncateRight(m.spinner.View()+" Encoding "+job.Input, width))
}

func (m Model) renderDashboard(view session.View, width int) string {
	inner := width - 4
	snap := view.Progress

	gauge := m.gauge
	gauge.Width = maxInt(10, inner-8)
	gaugeLine := gauge.ViewAs(snap.Fraction) + fmt.Sprintf(" %5.1f%%", snap.Fraction*100)

	stats := []struct{ label, value string }{
		{"FPS", snap.FrameRate},
		{"SPEED", snap.Speed},
		{"BITRATE", snap.Bitrate},
		{"TIME", snap.Elapsed},
	}
	boxW := inner / len(stats)
	boxes := make([]string, 0, len(stats))
	for _, s := range stats {
		boxes = append(boxes, statStyle.Width(boxW-2).Render(s.label+"\n"+s.value))
	}

	logs := logStyle.Render(strings.Join(recentLogs(view, logRows, inner), "\n"))

	body := lipgloss.JoinVertical(lipgloss.Left,
		gaugeLine,
		lipgloss.JoinHorizontal(lipgloss.Top, boxes...),
		panelTitleStyle.Render("SYSTEM LOGS"),
		logs,
	)
	return renderPanel("DASHBOARD", body, width, panelBorder)
}

// recentLogs returns up to n log lines, newest first.
func recentLogs(view session.View, n, width int) []string {
	tail := view.Tail(n)
	out := make([]string, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, textutil.TruncateRight(textutil.SingleLine(tail[i]), width))
	}
	return out
}
