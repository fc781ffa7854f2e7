package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nmartini/invitado/internal/api"
)

// renderGuests draws the logged-in guest list: the account's
// invitations, the confirmation table for the selected one, and the
// participant total.
func (m Model) renderGuests() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Invitados"))
	if m.session.Email != "" {
		b.WriteString("  ")
		b.WriteString(m.styles.Muted.Render(m.session.Email))
	}
	b.WriteString("\n\n")

	if m.guestsErr != "" {
		b.WriteString(m.styles.Error.Render(m.guestsErr))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderInvitationTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderGuestTable())
	b.WriteString("\n\n")

	total := m.rsvps.ParticipantsCount
	b.WriteString(m.styles.Label.Render("Participantes confirmados: "))
	b.WriteString(m.styles.Text.Render(fmt.Sprintf("%d", total)))
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(m.styles.Success.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(
		"tab: cambiar invitación · u: actualizar · x: exportar CSV · i: invitación · q: salir"))

	return lipgloss.NewStyle().Padding(1, 2).MaxWidth(m.width).Render(b.String())
}

func (m Model) renderInvitationTabs() string {
	if len(m.myInvitations) == 0 {
		return m.styles.Muted.Render("Sin invitaciones asociadas a esta cuenta.")
	}

	tabs := make([]string, len(m.myInvitations))
	for i, inv := range m.myInvitations {
		label := inv.Names
		if label == "" {
			label = inv.ID
		}
		if i == m.selected {
			tabs[i] = m.styles.SelectedRow.Render(" " + label + " ")
		} else {
			tabs[i] = m.styles.Muted.Render(" " + label + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// Column widths for the guest table.
var guestColumns = []struct {
	title string
	width int
}{
	{"Nombres", 32},
	{"Part.", 5},
	{"Email", 26},
	{"Teléfono", 14},
	{"Observaciones", 24},
	{"Asiste", 6},
}

func (m Model) renderGuestTable() string {
	if len(m.rsvps.RSVPs) == 0 {
		return m.styles.Muted.Render("Todavía no hay confirmaciones.")
	}

	var b strings.Builder
	header := make([]string, len(guestColumns))
	for i, col := range guestColumns {
		header[i] = padCell(col.title, col.width)
	}
	b.WriteString(m.styles.TableHeader.Render(strings.Join(header, " ")))
	b.WriteString("\n")

	for i, r := range m.rsvps.RSVPs {
		style := m.styles.TableRow
		if i%2 == 1 {
			style = m.styles.TableRowAlt
		}
		b.WriteString(style.Render(guestRow(r)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func guestRow(r api.RSVP) string {
	cells := []string{
		padCell(strings.Join(r.Names, ", "), guestColumns[0].width),
		padCell(fmt.Sprintf("%d", r.ParticipantsCount), guestColumns[1].width),
		padCell(cellOrNA(r.Email), guestColumns[2].width),
		padCell(cellOrNA(r.Phone), guestColumns[3].width),
		padCell(cellOrNA(r.Observations), guestColumns[4].width),
		padCell(attendanceCell(r), guestColumns[5].width),
	}
	return strings.Join(cells, " ")
}

func attendanceCell(r api.RSVP) string {
	if r.ConfirmedAttendance {
		return "Sí"
	}
	return "No"
}

func cellOrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// padCell truncates or pads a value to the column width.
func padCell(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
