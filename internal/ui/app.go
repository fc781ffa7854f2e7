// Package ui renders the invitation as a Bubble Tea terminal
// application: the public invitation view with countdown, photo
// carousel and music, plus the logged-in guest list.
package ui

import (
	"context"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nmartini/invitado/internal/api"
	"github.com/nmartini/invitado/internal/audio"
	"github.com/nmartini/invitado/internal/carousel"
	"github.com/nmartini/invitado/internal/countdown"
	"github.com/nmartini/invitado/internal/export"
	"github.com/nmartini/invitado/internal/session"
)

// View represents the current active view.
type View int

const (
	ViewInvitation View = iota
	ViewGuests
)

// Modal identifies the active overlay, if any.
type Modal int

const (
	ModalNone Modal = iota
	ModalRSVP
	ModalLogin
	ModalGift
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Client       *api.Client
	Sessions     *session.Store
	Audio        *audio.Negotiator
	InvitationID string
	Images       []string
	Log          *logrus.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	client   *api.Client
	sessions *session.Store
	audio    *audio.Negotiator
	log      *logrus.Logger

	// UI state
	theme       Theme
	styles      Styles
	currentView View
	modal       Modal
	width       int
	height      int
	ready       bool
	status      string

	// Invitation view
	invitationID string
	invitation   *api.Invitation
	loadErr      string
	target       time.Time
	remaining    countdown.Snapshot
	scheduler    *carousel.Scheduler
	tiles        []carousel.Tile

	// Audio
	gestureSeen bool
	audioNote   string

	// Session
	session   session.State
	sessionCh <-chan session.State

	// Guests view
	myInvitations []api.Invitation
	selected      int
	rsvps         api.RSVPList
	guestsErr     string

	// Modals
	form  rsvpForm
	login loginForm
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	log := opts.Log
	if log == nil {
		log = logrus.New()
		log.SetOutput(os.Stderr)
	}

	theme := DefaultTheme()

	m := Model{
		ctx:          ctx,
		client:       opts.Client,
		sessions:     opts.Sessions,
		audio:        opts.Audio,
		log:          log,
		theme:        theme,
		styles:       theme.Styles(),
		currentView:  ViewInvitation,
		invitationID: opts.InvitationID,
		scheduler:    carousel.New(carousel.Config{Images: opts.Images, Tiles: 4}, time.Now()),
	}
	m.tiles = m.scheduler.At(time.Now())
	if opts.Sessions != nil {
		m.session = opts.Sessions.State()
		m.sessionCh = opts.Sessions.Subscribe()
	}
	return m
}

type tickMsg time.Time

type invitationMsg struct {
	invitation *api.Invitation
	err        error
}

type rsvpSubmittedMsg struct{ err error }

type loginResultMsg struct {
	token string
	err   error
}

type registerResultMsg struct {
	message string
	err     error
}

type myInvitationsMsg struct {
	invitations []api.Invitation
	err         error
}

type rsvpsMsg struct {
	list api.RSVPList
	err  error
}

type exportDoneMsg struct {
	path string
	err  error
}

type clipboardMsg struct {
	label string
	err   error
}

type sessionMsg session.State

type audioStartedMsg struct{ err error }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(time.Second),
		m.fetchInvitationCmd(),
	}
	if m.sessionCh != nil {
		cmds = append(cmds, waitSessionCmd(m.sessionCh))
	}
	if m.audio != nil {
		cmds = append(cmds, m.startAudioCmd())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		if !m.target.IsZero() {
			m.remaining = countdown.Remaining(now, m.target)
		}
		m.tiles = m.scheduler.At(now)
		return m, tickCmd(time.Second)

	case invitationMsg:
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			m.log.WithError(msg.err).Warn("fetch invitation failed")
			return m, nil
		}
		m.loadErr = ""
		m.invitation = msg.invitation
		m.target = parseEventDate(msg.invitation.Date)
		if !m.target.IsZero() {
			m.remaining = countdown.Remaining(time.Now(), m.target)
		}
		return m, nil

	case sessionMsg:
		m.session = session.State(msg)
		var cmd tea.Cmd
		if m.sessionCh != nil {
			cmd = waitSessionCmd(m.sessionCh)
		}
		if !m.session.IsLoggedIn && m.currentView == ViewGuests {
			m.currentView = ViewInvitation
		}
		return m, cmd

	case audioStartedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Info("audio blocked until keypress")
			if m.gestureSeen {
				// A keypress landed while negotiation was still running
				// and found nothing armed; consume the trigger now.
				m.audio.OnGesture()
				return m, nil
			}
			m.audioNote = "pulsá cualquier tecla para la música"
		}
		return m, nil

	case rsvpSubmittedMsg:
		m.form.busy = false
		if msg.err != nil {
			m.form.errText = msg.err.Error()
			return m, nil
		}
		m.modal = ModalNone
		m.status = "¡Confirmación enviada! Gracias."
		return m, nil

	case loginResultMsg:
		m.login.busy = false
		if msg.err != nil {
			m.login.errText = msg.err.Error()
			return m, nil
		}
		m.modal = ModalNone
		m.status = "Sesión iniciada."
		var cmds []tea.Cmd
		if m.sessions != nil {
			if err := m.sessions.Set(msg.token); err != nil {
				m.log.WithError(err).Warn("persist session failed")
				// Still usable for this run.
				m.session = session.State{IsLoggedIn: true, Token: msg.token}
				if email, ok := session.DecodeEmail(msg.token); ok {
					m.session.Email = email
				}
			}
		}
		cmds = append(cmds, m.fetchMyInvitationsCmd(msg.token))
		return m, tea.Batch(cmds...)

	case registerResultMsg:
		m.login.busy = false
		if msg.err != nil {
			m.login.errText = msg.err.Error()
			return m, nil
		}
		m.login.errText = ""
		m.login.infoText = msg.message
		m.login.registerView = false
		m.login.focus = 0
		m.login.applyFocus()
		return m, nil

	case myInvitationsMsg:
		if msg.err != nil {
			m.guestsErr = msg.err.Error()
			return m, nil
		}
		m.guestsErr = ""
		m.myInvitations = msg.invitations
		if m.selected >= len(m.myInvitations) {
			m.selected = 0
		}
		if id, ok := m.selectedInvitationID(); ok {
			return m, m.fetchRSVPsCmd(id)
		}
		return m, nil

	case rsvpsMsg:
		if msg.err != nil {
			m.guestsErr = msg.err.Error()
			return m, nil
		}
		m.guestsErr = ""
		m.rsvps = msg.list
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.status = "No se pudo exportar: " + msg.err.Error()
			return m, nil
		}
		m.status = "Exportado a " + msg.path
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			// Clipboard may be unavailable over SSH; not worth surfacing.
			m.log.WithError(msg.err).Debug("clipboard copy failed")
			return m, nil
		}
		m.status = msg.label + " copiado al portapapeles"
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Cargando..."
	}

	var base string
	switch m.currentView {
	case ViewGuests:
		base = m.renderGuests()
	default:
		base = m.renderInvitation()
	}

	switch m.modal {
	case ModalRSVP:
		return m.overlay(base, m.renderRSVPForm())
	case ModalLogin:
		return m.overlay(base, m.login.render(m.styles, modalWidth(m.width)))
	case ModalGift:
		return m.overlay(base, m.renderGift())
	}
	return base
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Transient status text lives until the next interaction.
	m.status = ""

	// The first keypress is the user gesture that unlocks audio.
	if !m.gestureSeen {
		m.gestureSeen = true
		m.audioNote = ""
		if m.audio != nil {
			m.audio.OnGesture()
		}
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.modal != ModalNone {
		return m.handleModalKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "m":
		if m.audio != nil {
			if err := m.audio.Toggle(); err != nil {
				m.log.WithError(err).Warn("audio toggle failed")
			}
		}
		return m, nil

	case "c":
		if m.currentView == ViewInvitation {
			m.form = newRSVPForm()
			m.modal = ModalRSVP
		}
		return m, nil

	case "r":
		if m.currentView == ViewInvitation {
			m.modal = ModalGift
		}
		return m, nil

	case "i":
		m.currentView = ViewInvitation
		return m, nil

	case "g":
		if !m.session.IsLoggedIn {
			m.login = newLoginForm(false)
			m.modal = ModalLogin
			return m, nil
		}
		m.currentView = ViewGuests
		return m, m.fetchMyInvitationsCmd(m.session.Token)

	case "s":
		if m.session.IsLoggedIn {
			return m, m.logoutCmd()
		}
		m.login = newLoginForm(false)
		m.modal = ModalLogin
		return m, nil
	}

	if m.currentView == ViewGuests {
		return m.handleGuestsKey(msg)
	}
	return m, nil
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.modal = ModalNone
		return m, nil
	}

	switch m.modal {
	case ModalRSVP:
		cmd, submit := m.form.update(msg)
		if submit {
			return m, m.submitRSVPCmd(m.form.payload(m.invitationIDForRSVP()))
		}
		return m, cmd

	case ModalLogin:
		cmd, submit := m.login.update(msg)
		if submit != nil {
			if submit.register {
				return m, m.registerCmd(submit.email, submit.password)
			}
			return m, m.loginCmd(submit.email, submit.password, submit.accessToken)
		}
		return m, cmd

	case ModalGift:
		switch msg.String() {
		case "b":
			return m, copyCmd("CBU", giftCBU)
		case "a":
			return m, copyCmd("Alias", giftAlias)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleGuestsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "right":
		if len(m.myInvitations) > 1 {
			m.selected = (m.selected + 1) % len(m.myInvitations)
			if id, ok := m.selectedInvitationID(); ok {
				return m, m.fetchRSVPsCmd(id)
			}
		}
		return m, nil
	case "shift+tab", "left":
		if len(m.myInvitations) > 1 {
			m.selected = (m.selected - 1 + len(m.myInvitations)) % len(m.myInvitations)
			if id, ok := m.selectedInvitationID(); ok {
				return m, m.fetchRSVPsCmd(id)
			}
		}
		return m, nil
	case "x":
		if id, ok := m.selectedInvitationID(); ok && len(m.rsvps.RSVPs) > 0 {
			return m, exportCmd(id, m.rsvps.RSVPs)
		}
		m.status = "Nada para exportar."
		return m, nil
	case "u":
		if id, ok := m.selectedInvitationID(); ok {
			return m, m.fetchRSVPsCmd(id)
		}
		return m, nil
	}
	return m, nil
}

// selectedInvitationID returns the invitation the guests view is
// showing, falling back to the configured one when the account list is
// empty.
func (m Model) selectedInvitationID() (string, bool) {
	if m.selected < len(m.myInvitations) {
		return m.myInvitations[m.selected].ID, true
	}
	if m.invitationID != "" {
		return m.invitationID, true
	}
	return "", false
}

// invitationIDForRSVP prefers the loaded invitation's own id.
func (m Model) invitationIDForRSVP() string {
	if m.invitation != nil && m.invitation.ID != "" {
		return m.invitation.ID
	}
	return m.invitationID
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchInvitationCmd() tea.Cmd {
	ctx, client, id := m.ctx, m.client, m.invitationID
	return func() tea.Msg {
		inv, err := client.FetchInvitation(ctx, id)
		return invitationMsg{invitation: inv, err: err}
	}
}

func (m Model) submitRSVPCmd(req api.RSVPRequest) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		return rsvpSubmittedMsg{err: client.SubmitRSVP(ctx, req)}
	}
}

func (m Model) loginCmd(email, password, accessToken string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		token, err := client.Login(ctx, email, password, accessToken)
		return loginResultMsg{token: token, err: err}
	}
}

func (m Model) registerCmd(email, password string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		message, err := client.Register(ctx, email, password)
		return registerResultMsg{message: message, err: err}
	}
}

func (m Model) fetchMyInvitationsCmd(token string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		invitations, err := client.FetchMyInvitations(ctx, token)
		return myInvitationsMsg{invitations: invitations, err: err}
	}
}

func (m Model) fetchRSVPsCmd(invitationID string) tea.Cmd {
	ctx, client, token := m.ctx, m.client, m.session.Token
	return func() tea.Msg {
		list, err := client.FetchRSVPs(ctx, token, invitationID)
		return rsvpsMsg{list: list, err: err}
	}
}

// logoutCmd clears the persisted token. The new state arrives through
// the store subscription like any other change; emitting it here too
// would re-arm the session waiter twice.
func (m Model) logoutCmd() tea.Cmd {
	sessions := m.sessions
	if sessions == nil {
		return func() tea.Msg { return sessionMsg(session.State{}) }
	}
	return func() tea.Msg {
		_ = sessions.Clear()
		return nil
	}
}

func (m Model) startAudioCmd() tea.Cmd {
	negotiator := m.audio
	return func() tea.Msg {
		return audioStartedMsg{err: negotiator.Negotiate()}
	}
}

func exportCmd(invitationID string, rsvps []api.RSVP) tea.Cmd {
	return func() tea.Msg {
		dir, err := os.Getwd()
		if err != nil {
			dir = "."
		}
		path, err := export.WriteFile(dir, invitationID, rsvps)
		return exportDoneMsg{path: path, err: err}
	}
}

func copyCmd(label, value string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{label: label, err: clipboard.WriteAll(value)}
	}
}

func waitSessionCmd(ch <-chan session.State) tea.Cmd {
	return func() tea.Msg {
		return sessionMsg(<-ch)
	}
}

// parseEventDate accepts the date formats the backend has used.
func parseEventDate(raw string) time.Time {
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Run starts the Bubble Tea program and blocks until the user quits or
// the context is cancelled.
func Run(opts Options) error {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	return err
}
