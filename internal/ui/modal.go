package ui

import "github.com/charmbracelet/lipgloss"

// modalWidth picks the inner width for an overlay on a given terminal.
func modalWidth(termWidth int) int {
	w := termWidth - 12
	if w > 56 {
		w = 56
	}
	if w < 24 {
		w = 24
	}
	return w
}

// overlay centers a modal over the base view. Bubble Tea repaints the
// whole screen, so replacing the view keeps the frame simple; the base
// is intentionally not composited behind the box.
func (m Model) overlay(_ string, content string) string {
	box := m.styles.Modal.Width(modalWidth(m.width)).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
