package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginForm backs the login/register modal. The same overlay serves
// both; register only submits email and password.
type loginForm struct {
	registerView bool
	email        textinput.Model
	password     textinput.Model
	accessToken  textinput.Model
	focus        int
	errText      string
	infoText     string
	busy         bool
}

func newLoginForm(registerView bool) loginForm {
	f := loginForm{registerView: registerView}

	f.email = textinput.New()
	f.email.Placeholder = "email"
	f.email.CharLimit = 120
	f.email.Focus()

	f.password = textinput.New()
	f.password.Placeholder = "contraseña"
	f.password.EchoMode = textinput.EchoPassword
	f.password.CharLimit = 120

	f.accessToken = textinput.New()
	f.accessToken.Placeholder = "clave de acceso"
	f.accessToken.CharLimit = 200

	return f
}

// Slots: email, password, (access token when logging in), submit,
// switch-view link.
func (f *loginForm) slotCount() int {
	if f.registerView {
		return 4
	}
	return 5
}

func (f *loginForm) submitSlot() int {
	return f.slotCount() - 2
}

func (f *loginForm) switchSlot() int {
	return f.slotCount() - 1
}

func (f *loginForm) applyFocus() {
	focusOrBlur(&f.email, f.focus == 0)
	focusOrBlur(&f.password, f.focus == 1)
	focusOrBlur(&f.accessToken, !f.registerView && f.focus == 2)
}

// loginSubmit describes what the modal asked for.
type loginSubmit struct {
	register    bool
	email       string
	password    string
	accessToken string
}

// update processes one key; submit is non-nil when the form was
// submitted with valid fields.
func (f *loginForm) update(msg tea.KeyMsg) (tea.Cmd, *loginSubmit) {
	if f.busy {
		return nil, nil
	}

	switch msg.String() {
	case "tab", "down":
		f.focus = (f.focus + 1) % f.slotCount()
		f.applyFocus()
		return nil, nil
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + f.slotCount()) % f.slotCount()
		f.applyFocus()
		return nil, nil
	}

	switch f.focus {
	case f.submitSlot():
		if msg.String() == "enter" {
			return nil, f.submit()
		}
		return nil, nil
	case f.switchSlot():
		if msg.String() == "enter" {
			f.registerView = !f.registerView
			f.errText = ""
			f.infoText = ""
			f.focus = 0
			f.applyFocus()
		}
		return nil, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case 0:
		f.email, cmd = f.email.Update(msg)
	case 1:
		f.password, cmd = f.password.Update(msg)
	case 2:
		if !f.registerView {
			f.accessToken, cmd = f.accessToken.Update(msg)
		}
	}
	return cmd, nil
}

func (f *loginForm) submit() *loginSubmit {
	email := strings.TrimSpace(f.email.Value())
	password := f.password.Value()
	if email == "" || password == "" {
		f.errText = "email y contraseña son obligatorios"
		return nil
	}
	f.errText = ""
	f.busy = true
	return &loginSubmit{
		register:    f.registerView,
		email:       email,
		password:    password,
		accessToken: strings.TrimSpace(f.accessToken.Value()),
	}
}

func (f *loginForm) render(s Styles, width int) string {
	var b strings.Builder

	title := "Iniciar Sesión"
	if f.registerView {
		title = "Solicitar Acceso"
	}
	b.WriteString(s.ModalTitle.Width(width).Render(title))
	b.WriteString("\n\n")

	if f.infoText != "" {
		b.WriteString(s.Success.Render(f.infoText))
		b.WriteString("\n\n")
	}
	if f.errText != "" {
		b.WriteString(s.Error.Render(f.errText))
		b.WriteString("\n\n")
	}

	b.WriteString(s.Label.Render("Email"))
	b.WriteString("\n")
	b.WriteString(f.email.View())
	b.WriteString("\n")
	b.WriteString(s.Label.Render("Contraseña"))
	b.WriteString("\n")
	b.WriteString(f.password.View())
	b.WriteString("\n")
	if !f.registerView {
		b.WriteString(s.Label.Render("Clave de acceso"))
		b.WriteString("\n")
		b.WriteString(f.accessToken.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	submitLabel := "Entrar"
	switchLabel := "¿Sin cuenta? Solicitar acceso"
	if f.registerView {
		submitLabel = "Enviar solicitud"
		switchLabel = "Volver a iniciar sesión"
	}
	if f.busy {
		submitLabel = "Enviando..."
	}
	b.WriteString(renderControl(s, submitLabel, f.focus == f.submitSlot()))
	b.WriteString("  ")
	b.WriteString(renderControl(s, switchLabel, f.focus == f.switchSlot()))
	b.WriteString("\n\n")
	b.WriteString(s.Help.Render("tab: siguiente campo · enter: activar · esc: cerrar"))

	return b.String()
}

func renderControl(s Styles, label string, focused bool) string {
	if focused {
		return s.SelectedRow.Render(" " + label + " ")
	}
	return s.Muted.Render("[" + label + "]")
}
