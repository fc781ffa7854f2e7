package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderInvitation draws the public invitation: names, welcome text,
// the countdown boxes, location, the photo grid and the status line.
func (m Model) renderInvitation() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderCountdown())
	b.WriteString("\n\n")
	b.WriteString(m.renderLocation())
	b.WriteString("\n\n")
	b.WriteString(m.renderTiles())
	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())

	return lipgloss.NewStyle().Padding(1, 2).MaxWidth(m.width).Render(b.String())
}

func (m Model) renderHeader() string {
	if m.loadErr != "" {
		return m.styles.Error.Render("No se pudo cargar la invitación: " + m.loadErr)
	}
	if m.invitation == nil {
		return m.styles.Muted.Render("Cargando invitación...")
	}

	var b strings.Builder
	if m.invitation.Title != "" {
		b.WriteString(m.styles.Subtitle.Render(m.invitation.Title))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Title.Render(m.invitation.Names))
	if m.invitation.WelcomeMessage != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Text.Render(m.invitation.WelcomeMessage))
	}
	return b.String()
}

// renderCountdown shows the four boxes, or the celebration line once
// the moment arrives.
func (m Model) renderCountdown() string {
	if m.target.IsZero() {
		return ""
	}
	if m.remaining.IsZero() {
		return m.styles.Success.Render("¡Llegó el gran día!")
	}

	boxes := []string{
		m.countdownBox(m.remaining.Days, "Días"),
		m.countdownBox(m.remaining.Hours, "Horas"),
		m.countdownBox(m.remaining.Minutes, "Minutos"),
		m.countdownBox(m.remaining.Seconds, "Segundos"),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m Model) countdownBox(value int, label string) string {
	content := m.styles.CountdownNum.Render(fmt.Sprintf("%02d", value)) +
		"\n" + m.styles.Label.Render(label)
	return m.styles.CountdownBox.Render(content)
}

func (m Model) renderLocation() string {
	if m.invitation == nil {
		return ""
	}
	var b strings.Builder
	if m.invitation.Date != "" {
		b.WriteString(m.styles.Label.Render("Cuándo  "))
		b.WriteString(m.styles.Text.Render(formatEventDate(m.target, m.invitation.Date)))
		b.WriteString("\n")
	}
	if m.invitation.Location != "" {
		b.WriteString(m.styles.Label.Render("Dónde   "))
		b.WriteString(m.styles.Text.Render(m.invitation.Location))
		b.WriteString("\n")
	}
	if m.invitation.GoogleMapsLink != "" {
		b.WriteString(m.styles.Label.Render("Mapa    "))
		b.WriteString(m.styles.Muted.Render(m.invitation.GoogleMapsLink))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderTiles draws the rotating photo grid. Opacity from the
// scheduler maps to foreground brightness, so captions dim out and
// brighten back as images swap.
func (m Model) renderTiles() string {
	images := m.scheduler.Images()
	if len(images) == 0 {
		return ""
	}

	rendered := make([]string, len(m.tiles))
	for i, tile := range m.tiles {
		caption := tileCaption(tile.Image(images))
		style := m.styles.Tile.
			BorderForeground(m.theme.fadeColor(tile.Opacity)).
			Foreground(m.theme.fadeColor(tile.Opacity))
		rendered[i] = style.Render(caption)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// tileCaption reduces an image path to a short label.
func tileCaption(path string) string {
	if path == "" {
		return ""
	}
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.LastIndex(path, "."); i > 0 {
		path = path[:i]
	}
	return path
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// formatEventDate renders the parsed event date in Spanish, falling
// back to the raw wire value when it did not parse.
func formatEventDate(t time.Time, raw string) string {
	if t.IsZero() {
		return raw
	}
	s := fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
	if t.Hour() != 0 || t.Minute() != 0 {
		s += fmt.Sprintf(", %02d:%02d hs", t.Hour(), t.Minute())
	}
	return s
}

func (m Model) renderStatusBar() string {
	var parts []string
	if m.status != "" {
		parts = append(parts, m.styles.Success.Render(m.status))
	}
	if m.audioNote != "" {
		parts = append(parts, m.styles.Muted.Render("♪ "+m.audioNote))
	} else if m.audio != nil && m.audio.Playing() {
		parts = append(parts, m.styles.Muted.Render("♪ sonando"))
	}

	help := "c: confirmar asistencia · r: regalo · m: música · g: invitados · q: salir"
	if m.session.IsLoggedIn {
		help += " · s: cerrar sesión (" + m.session.Email + ")"
	} else {
		help += " · s: iniciar sesión"
	}
	parts = append(parts, m.styles.Help.Render(help))

	return strings.Join(parts, "\n")
}
