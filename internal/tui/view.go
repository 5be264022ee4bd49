package tui

import (
	"fmt"
	"strings"

	"github.com/bensonlsp/reiki-timer/position"
	"github.com/bensonlsp/reiki-timer/session"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const labelEllipsis = "…"

func (m model) View() string {
	var body string
	switch m.screen {
	case screenRunning:
		body = m.runningView()
	case screenComplete:
		body = m.completeView()
	default:
		body = m.setupView()
	}

	parts := []string{titleStyle.Render(m.title()), body}
	if status := m.renderStatusLine(); status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, m.help.View(m.keys.forScreen(m.screen)))
	view := strings.Join(parts, "\n\n")
	if m.modal.kind != modalNone {
		view = m.renderModalOverlay(view)
	}
	return view
}

func (m model) title() string {
	if m.screen == screenSetup {
		return "Reiki Timer"
	}
	return "Reiki Timer · " + sequenceTitle(m.currentSequence())
}

func (m model) setupView() string {
	seq := m.currentSequence()
	total := m.positionSeconds() * seq.Len()
	rows := [][2]string{
		{"Sequence", fmt.Sprintf("< %s >", sequenceTitle(seq))},
		{"Duration", fmt.Sprintf("%d:%02d per position", m.minutes, m.seconds) + valueMuted.Render(fmt.Sprintf("  (%s total)", session.FormatRemaining(total)))},
		{"Bell", onOff(m.bell)},
		{"Music", onOff(m.music)},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%-10s", row[0]))+row[1])
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m model) runningView() string {
	frame := m.frame
	lines := []string{
		valueMuted.Render(frame.IndexLabel),
		positionStyle.Render(m.fitLabel(frame.PositionLabel)),
		"",
		countdownStyle.Render(frame.RemainingText),
		m.positionBar.ViewAs(frame.Position),
		"",
		labelStyle.Render("Session"),
		m.overallBar.ViewAs(frame.Overall),
	}
	if frame.Status == session.StatusPaused {
		lines = append(lines, "", pausedStyle.Render("PAUSED"))
	}

	style := panelStyle
	if m.flashing {
		style = panelFlashStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m model) completeView() string {
	seq := m.currentSequence()
	total := m.positionSeconds() * seq.Len()
	lines := []string{
		positionStyle.Render("Session complete"),
		"",
		fmt.Sprintf("%d positions held, %s in total", seq.Len(), session.FormatRemaining(total)),
		m.overallBar.ViewAs(1),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m model) renderStatusLine() string {
	text := strings.TrimSpace(m.status)
	if text == "" {
		return ""
	}
	style := valueMuted
	if m.statusLevel == statusError {
		style = statusErrorStyle
	} else if m.statusLevel == statusInfo {
		style = statusSuccessStyle
	}
	return style.Render(text)
}

func (m model) renderModalOverlay(content string) string {
	if m.modal.kind == modalNone {
		return content
	}
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + m.modalView()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
}

func (m model) modalView() string {
	options := []string{m.modal.confirmText, m.modal.cancelText}
	buttons := make([]string, 0, 2)
	for i, option := range options {
		style := valueMuted
		if i == m.modal.selected {
			style = selectedBorder
		}
		buttons = append(buttons, style.Render("["+option+"]"))
	}
	content := strings.Join([]string{m.modal.message, "", strings.Join(buttons, " ")}, "\n")
	modalStyle := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
	return modalStyle.Render(content)
}

// fitLabel truncates a position label to the panel width, counting wide
// runes as two columns.
func (m model) fitLabel(label string) string {
	if m.width <= 0 {
		return label
	}
	width := m.width - 8
	if width < 1 {
		width = 1
	}
	return runewidth.Truncate(label, width, labelEllipsis)
}

func sequenceTitle(seq position.Sequence) string {
	switch seq.Name() {
	case position.NameChakra:
		return fmt.Sprintf("Chakra (%d points)", seq.Len())
	case position.NameFull:
		return fmt.Sprintf("Full body (%d positions)", seq.Len())
	}
	return fmt.Sprintf("%s (%d)", seq.Name(), seq.Len())
}

func onOff(t Toggle) string {
	if t == nil {
		return valueMuted.Render("unavailable")
	}
	if t.Enabled() {
		return "on"
	}
	return valueMuted.Render("off")
}
