package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestClampParticipants(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{"zero", 0, 1},
		{"negative", -3, 1},
		{"one", 1, 1},
		{"middle", 5, 5},
		{"ten", 10, 10},
		{"eleven", 11, 10},
		{"large", 200, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := clampParticipants(tc.in); got != tc.want {
				t.Fatalf("clampParticipants(%d) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestReconcileNamesGrowAndShrink(t *testing.T) {
	grown := reconcileNames([]string{"Ana", "Luis"}, 4)
	if len(grown) != 4 {
		t.Fatalf("grown length = %d, want 4", len(grown))
	}
	if grown[0] != "Ana" || grown[1] != "Luis" || grown[2] != "" || grown[3] != "" {
		t.Fatalf("grown = %v", grown)
	}

	shrunk := reconcileNames([]string{"Ana", "Luis", "Eva"}, 1)
	if len(shrunk) != 1 || shrunk[0] != "Ana" {
		t.Fatalf("shrunk = %v", shrunk)
	}
}

func TestSetCountPreservesTypedNames(t *testing.T) {
	f := newRSVPForm()
	f.names[0].SetValue("Ana")

	f.setCount(3)
	if f.count != 3 || len(f.names) != 3 {
		t.Fatalf("count = %d, inputs = %d, want 3/3", f.count, len(f.names))
	}
	if got := f.names[0].Value(); got != "Ana" {
		t.Fatalf("first name after grow = %q, want Ana", got)
	}

	f.names[1].SetValue("Luis")
	f.setCount(2)
	if got := f.names[1].Value(); got != "Luis" {
		t.Fatalf("second name after shrink = %q, want Luis", got)
	}

	f.setCount(99)
	if f.count != maxParticipants {
		t.Fatalf("count = %d, want %d", f.count, maxParticipants)
	}
}

func TestSetCountKeepsFocusInRange(t *testing.T) {
	f := newRSVPForm()
	f.setCount(5)
	f.focus = f.submitSlot()
	f.setCount(1)
	if f.focus >= f.slotCount() {
		t.Fatalf("focus %d out of range (slots %d)", f.focus, f.slotCount())
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAttendanceCheckboxesMutuallyExclusive(t *testing.T) {
	f := newRSVPForm()

	f.focus = f.confirmedSlot()
	f.update(keyRunes(" "))
	if !f.confirmed {
		t.Fatalf("confirmed not set")
	}

	f.focus = f.notAttendingSlot()
	f.update(keyRunes(" "))
	if !f.notAttending {
		t.Fatalf("notAttending not set")
	}
	if f.confirmed {
		t.Fatalf("confirmed should clear when notAttending is set")
	}

	f.focus = f.confirmedSlot()
	f.update(keyRunes(" "))
	if f.notAttending {
		t.Fatalf("notAttending should clear when confirmed is set")
	}
}

func TestCountKeysAdjustParticipants(t *testing.T) {
	f := newRSVPForm()
	f.focus = 0

	f.update(keyRunes("+"))
	f.update(keyRunes("+"))
	if f.count != 3 {
		t.Fatalf("count after ++ = %d, want 3", f.count)
	}
	f.update(keyRunes("-"))
	if f.count != 2 {
		t.Fatalf("count after - = %d, want 2", f.count)
	}
	f.update(keyRunes("-"))
	f.update(keyRunes("-"))
	if f.count != minParticipants {
		t.Fatalf("count floor = %d, want %d", f.count, minParticipants)
	}
}

func TestValidateRequiresNamesAndEmail(t *testing.T) {
	f := newRSVPForm()
	if err := f.validate(); err == nil {
		t.Fatalf("expected error for empty name")
	}

	f.names[0].SetValue("Ana García")
	if err := f.validate(); err == nil {
		t.Fatalf("expected error for empty email")
	}

	f.email.SetValue("sin-arroba")
	if err := f.validate(); err == nil {
		t.Fatalf("expected error for invalid email")
	}
	f.email.SetValue("ana@dominio")
	if err := f.validate(); err == nil {
		t.Fatalf("expected error for email without dot")
	}

	f.email.SetValue("ana@example.com")
	if err := f.validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSubmitLatchBlocksDoubleEnter(t *testing.T) {
	f := newRSVPForm()
	f.names[0].SetValue("Ana García")
	f.email.SetValue("ana@example.com")
	f.focus = f.submitSlot()

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	if _, submit := f.update(enter); !submit {
		t.Fatal("first enter did not submit")
	}
	if _, submit := f.update(enter); submit {
		t.Fatal("second enter submitted again while the first was in flight")
	}

	// A failed submission releases the latch for a retry.
	f.busy = false
	if _, submit := f.update(enter); !submit {
		t.Fatal("enter after release did not submit")
	}
}

func TestPayloadTrimsAndCarriesInvitation(t *testing.T) {
	f := newRSVPForm()
	f.setCount(2)
	f.names[0].SetValue("  Ana García ")
	f.names[1].SetValue("Luis")
	f.email.SetValue(" ana@example.com ")
	f.confirmed = true

	req := f.payload("boda-elegante")
	if req.InvitationID != "boda-elegante" {
		t.Fatalf("invitation id = %q", req.InvitationID)
	}
	if req.ParticipantsCount != 2 {
		t.Fatalf("participants = %d, want 2", req.ParticipantsCount)
	}
	if req.Names[0] != "Ana García" || req.Names[1] != "Luis" {
		t.Fatalf("names = %v", req.Names)
	}
	if req.Email != "ana@example.com" {
		t.Fatalf("email = %q", req.Email)
	}
	if !req.ConfirmedAttendance || req.NotAttending {
		t.Fatalf("attendance flags = %v/%v", req.ConfirmedAttendance, req.NotAttending)
	}
}
