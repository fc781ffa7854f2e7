// Package export builds the downloadable guest-list CSV.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nmartini/invitado/internal/api"
)

// The backend operators open these files in Spanish-locale Excel, hence
// the semicolon separator and the fixed Spanish header.
const header = "Nombres;Participantes;Email;Teléfono;Observaciones;Asistencia Confirmada"

// Filename returns the export file name for one invitation.
func Filename(invitationID string) string {
	return fmt.Sprintf("invitados_evento_%s.csv", invitationID)
}

// CSV renders the guest list: a header row, then one row per RSVP with
// text fields double-quoted, the participant count bare, and Sí/No for
// the confirmation flag. Missing optional fields render as N/A.
func CSV(rsvps []api.RSVP) string {
	rows := make([]string, 0, len(rsvps)+1)
	rows = append(rows, header)
	for _, r := range rsvps {
		rows = append(rows, row(r))
	}
	return strings.Join(rows, "\n")
}

func row(r api.RSVP) string {
	confirmed := "No"
	if r.ConfirmedAttendance {
		confirmed = "Sí"
	}
	fields := []string{
		quote(joinNames(r.Names)),
		fmt.Sprintf("%d", r.ParticipantsCount),
		quote(orNA(r.Email)),
		quote(orNA(r.Phone)),
		quote(orNA(r.Observations)),
		quote(confirmed),
	}
	return strings.Join(fields, ";")
}

// WriteFile writes the CSV for one invitation into dir and returns the
// full path.
func WriteFile(dir, invitationID string, rsvps []api.RSVP) (string, error) {
	path := filepath.Join(dir, Filename(invitationID))
	if err := os.WriteFile(path, []byte(CSV(rsvps)), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

func joinNames(names api.GuestNames) string {
	if len(names) == 0 {
		return "N/A"
	}
	return strings.Join(names, ", ")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func quote(s string) string {
	return `"` + s + `"`
}
