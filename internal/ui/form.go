package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nmartini/invitado/internal/api"
)

const (
	minParticipants = 1
	maxParticipants = 10
)

// clampParticipants keeps the participant count inside [1,10].
func clampParticipants(n int) int {
	if n < minParticipants {
		return minParticipants
	}
	if n > maxParticipants {
		return maxParticipants
	}
	return n
}

// reconcileNames resizes the name list to count slots, preserving
// already-entered names by position: growing appends empty slots,
// shrinking truncates.
func reconcileNames(names []string, count int) []string {
	out := make([]string, count)
	for i := range out {
		if i < len(names) {
			out[i] = names[i]
		}
	}
	return out
}

// rsvpForm is the confirmation modal state.
type rsvpForm struct {
	count        int
	names        []textinput.Model
	email        textinput.Model
	phone        textinput.Model
	observations textinput.Model
	confirmed    bool
	notAttending bool
	focus        int
	errText      string
	busy         bool
}

// Focus slots: 0 = participant count, 1..count = name inputs, then
// email, phone, observations, the two checkboxes, and submit.
func (f *rsvpForm) slotCount() int {
	return 1 + f.count + 6
}

func (f *rsvpForm) emailSlot() int        { return 1 + f.count }
func (f *rsvpForm) phoneSlot() int        { return 2 + f.count }
func (f *rsvpForm) observationsSlot() int { return 3 + f.count }
func (f *rsvpForm) confirmedSlot() int    { return 4 + f.count }
func (f *rsvpForm) notAttendingSlot() int { return 5 + f.count }
func (f *rsvpForm) submitSlot() int       { return 6 + f.count }

func newRSVPForm() rsvpForm {
	f := rsvpForm{count: minParticipants}
	f.names = []textinput.Model{nameInput(1)}

	f.email = textinput.New()
	f.email.Placeholder = "email@ejemplo.com"
	f.email.CharLimit = 120
	f.phone = textinput.New()
	f.phone.Placeholder = "teléfono (opcional)"
	f.phone.CharLimit = 40
	f.observations = textinput.New()
	f.observations.Placeholder = "observaciones (opcional)"
	f.observations.CharLimit = 300

	f.applyFocus()
	return f
}

func nameInput(position int) textinput.Model {
	in := textinput.New()
	in.Placeholder = fmt.Sprintf("nombre del participante %d", position)
	in.CharLimit = 80
	return in
}

// setCount clamps and applies a new participant count, keeping typed
// names by position.
func (f *rsvpForm) setCount(n int) {
	n = clampParticipants(n)
	if n == f.count {
		return
	}

	values := make([]string, len(f.names))
	for i, in := range f.names {
		values[i] = in.Value()
	}
	next := reconcileNames(values, n)

	inputs := make([]textinput.Model, n)
	for i := range inputs {
		inputs[i] = nameInput(i + 1)
		inputs[i].SetValue(next[i])
	}
	f.names = inputs
	f.count = n
	if f.focus >= f.slotCount() {
		f.focus = f.slotCount() - 1
	}
	f.applyFocus()
}

func (f *rsvpForm) applyFocus() {
	for i := range f.names {
		if f.focus == i+1 {
			f.names[i].Focus()
		} else {
			f.names[i].Blur()
		}
	}
	focusOrBlur(&f.email, f.focus == f.emailSlot())
	focusOrBlur(&f.phone, f.focus == f.phoneSlot())
	focusOrBlur(&f.observations, f.focus == f.observationsSlot())
}

func focusOrBlur(in *textinput.Model, focused bool) {
	if focused {
		in.Focus()
	} else {
		in.Blur()
	}
}

func (f *rsvpForm) moveFocus(delta int) {
	total := f.slotCount()
	f.focus = (f.focus + delta + total) % total
	f.applyFocus()
}

// update processes one key. It reports submit = true when the user
// activated the submit control and the form validated.
func (f *rsvpForm) update(msg tea.KeyMsg) (tea.Cmd, bool) {
	if f.busy {
		return nil, false
	}

	switch msg.String() {
	case "tab", "down":
		f.moveFocus(1)
		return nil, false
	case "shift+tab", "up":
		f.moveFocus(-1)
		return nil, false
	}

	switch {
	case f.focus == 0:
		switch msg.String() {
		case "+", "right", "l":
			f.setCount(f.count + 1)
		case "-", "left", "h":
			f.setCount(f.count - 1)
		}
		return nil, false

	case f.focus == f.confirmedSlot():
		if msg.String() == " " || msg.String() == "enter" {
			f.confirmed = !f.confirmed
			if f.confirmed {
				// Mutually exclusive with "no asistiré".
				f.notAttending = false
			}
		}
		return nil, false

	case f.focus == f.notAttendingSlot():
		if msg.String() == " " || msg.String() == "enter" {
			f.notAttending = !f.notAttending
			if f.notAttending {
				f.confirmed = false
			}
		}
		return nil, false

	case f.focus == f.submitSlot():
		if msg.String() == "enter" {
			if err := f.validate(); err != nil {
				f.errText = err.Error()
				return nil, false
			}
			f.errText = ""
			f.busy = true
			return nil, true
		}
		return nil, false
	}

	// A text input is focused.
	var cmd tea.Cmd
	switch {
	case f.focus >= 1 && f.focus <= f.count:
		f.names[f.focus-1], cmd = f.names[f.focus-1].Update(msg)
	case f.focus == f.emailSlot():
		f.email, cmd = f.email.Update(msg)
	case f.focus == f.phoneSlot():
		f.phone, cmd = f.phone.Update(msg)
	case f.focus == f.observationsSlot():
		f.observations, cmd = f.observations.Update(msg)
	}
	return cmd, false
}

// validate enforces the submit requirements: every name slot filled and
// a plausible email. Phone and observations stay optional.
func (f *rsvpForm) validate() error {
	for i, in := range f.names {
		if strings.TrimSpace(in.Value()) == "" {
			return fmt.Errorf("falta el nombre del participante %d", i+1)
		}
	}
	email := strings.TrimSpace(f.email.Value())
	if email == "" {
		return fmt.Errorf("el email es obligatorio")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return fmt.Errorf("el email no es válido")
	}
	return nil
}

// renderRSVPForm draws the confirmation modal.
func (m Model) renderRSVPForm() string {
	s := m.styles
	f := m.form
	var b strings.Builder

	b.WriteString(s.ModalTitle.Width(modalWidth(m.width)).Render("Confirmar Asistencia"))
	b.WriteString("\n\n")

	if f.errText != "" {
		b.WriteString(s.Error.Render(f.errText))
		b.WriteString("\n\n")
	}

	countLabel := fmt.Sprintf("Participantes: %d", f.count)
	if f.focus == 0 {
		b.WriteString(s.SelectedRow.Render(" " + countLabel + " "))
		b.WriteString(s.Help.Render("  +/- para cambiar"))
	} else {
		b.WriteString(s.Text.Render(countLabel))
	}
	b.WriteString("\n\n")

	for i := range f.names {
		b.WriteString(f.names[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.Label.Render("Email"))
	b.WriteString("\n")
	b.WriteString(f.email.View())
	b.WriteString("\n")
	b.WriteString(s.Label.Render("Teléfono"))
	b.WriteString("\n")
	b.WriteString(f.phone.View())
	b.WriteString("\n")
	b.WriteString(s.Label.Render("Observaciones"))
	b.WriteString("\n")
	b.WriteString(f.observations.View())
	b.WriteString("\n\n")

	b.WriteString(renderCheckbox(s, "Confirmo mi asistencia", f.confirmed, f.focus == f.confirmedSlot()))
	b.WriteString("\n")
	b.WriteString(renderCheckbox(s, "No podré asistir", f.notAttending, f.focus == f.notAttendingSlot()))
	b.WriteString("\n\n")
	submitLabel := "Enviar confirmación"
	if f.busy {
		submitLabel = "Enviando..."
	}
	b.WriteString(renderControl(s, submitLabel, f.focus == f.submitSlot()))
	b.WriteString("\n\n")
	b.WriteString(s.Help.Render("tab: siguiente campo · espacio: marcar · esc: cerrar"))

	return b.String()
}

func renderCheckbox(s Styles, label string, checked, focused bool) string {
	mark := "[ ] "
	if checked {
		mark = "[x] "
	}
	if focused {
		return s.SelectedRow.Render(" " + mark + label + " ")
	}
	return s.Text.Render(mark + label)
}

// payload builds the outgoing request for one invitation.
func (f *rsvpForm) payload(invitationID string) api.RSVPRequest {
	names := make([]string, len(f.names))
	for i, in := range f.names {
		names[i] = strings.TrimSpace(in.Value())
	}
	return api.RSVPRequest{
		Names:               names,
		ParticipantsCount:   f.count,
		Email:               strings.TrimSpace(f.email.Value()),
		Phone:               strings.TrimSpace(f.phone.Value()),
		Observations:        strings.TrimSpace(f.observations.Value()),
		ConfirmedAttendance: f.confirmed,
		NotAttending:        f.notAttending,
		InvitationID:        invitationID,
	}
}
