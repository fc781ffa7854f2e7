package api

import (
	"encoding/json"
	"strings"
)

// Invitation mirrors the invitation record returned by the backend.
type Invitation struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Names          string `json:"names"`
	WelcomeMessage string `json:"welcome_message"`
	Date           string `json:"date"`
	Location       string `json:"location"`
	GoogleMapsLink string `json:"google_maps_link"`
	MusicURL       string `json:"music_url"`
}

// RSVP is one guest confirmation row.
type RSVP struct {
	Names               GuestNames `json:"names"`
	ParticipantsCount   int        `json:"participants_count"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	Observations        string     `json:"observations"`
	ConfirmedAttendance bool       `json:"confirmed_attendance"`
	NotAttending        bool       `json:"not_attending"`
}

// RSVPRequest is the outgoing confirmation payload.
type RSVPRequest struct {
	Names               []string `json:"names"`
	ParticipantsCount   int      `json:"participants_count"`
	Email               string   `json:"email"`
	Phone               string   `json:"phone,omitempty"`
	Observations        string   `json:"observations,omitempty"`
	ConfirmedAttendance bool     `json:"confirmed_attendance"`
	NotAttending        bool     `json:"not_attending"`
	InvitationID        string   `json:"invitation_id"`
}

// RSVPList mirrors the /api/rsvps/{id} response.
type RSVPList struct {
	RSVPs             []RSVP `json:"rsvps"`
	ParticipantsCount int    `json:"participants_count"`
}

// GuestNames is the guest-name list of an RSVP. The backend's storage
// format for this field changed over time without a migration, so the
// wire value may be a JSON array of strings, a string containing a
// JSON-encoded array, or a plain string. Decoding reconciles all three
// here so the rest of the program only ever sees a []string.
type GuestNames []string

// UnmarshalJSON decodes the three historical wire shapes, in order:
// array as-is, string that parses to an array, plain string as a single
// name. Malformed input never fails; it degrades to the raw string.
func (g *GuestNames) UnmarshalJSON(data []byte) error {
	var asArray []string
	if err := json.Unmarshal(data, &asArray); err == nil {
		*g = cleanNames(asArray)
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		// Not an array and not a string; treat as absent rather than
		// failing the whole row.
		*g = nil
		return nil
	}

	var nested []string
	if err := json.Unmarshal([]byte(asString), &nested); err == nil {
		*g = cleanNames(nested)
		return nil
	}

	if trimmed := stripQuotes(asString); trimmed != "" {
		*g = GuestNames{trimmed}
	} else {
		*g = nil
	}
	return nil
}

// MarshalJSON always emits the canonical array shape.
func (g GuestNames) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(g))
}

func cleanNames(names []string) GuestNames {
	out := make(GuestNames, 0, len(names))
	for _, n := range names {
		out = append(out, stripQuotes(n))
	}
	return out
}

// stripQuotes removes surrounding double quotes left over from
// historical double encoding.
func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return s
}
