package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}

	u, err = parseBaseURL("api.example.com/base/")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "api.example.com" || u.Path != "/base" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("http://localhost:3001?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchesEndpointsWithBearerAuth(t *testing.T) {
	t.Parallel()

	var gotAuth, gotRSVPAuth string
	var gotRSVPBody RSVPRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/invitation/boda-elegante":
			_ = json.NewEncoder(w).Encode(Invitation{ID: "boda-elegante", Names: "Antonio y Vanesa"})
		case "/api/rsvp":
			_ = json.NewDecoder(r.Body).Decode(&gotRSVPBody)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))
		case "/api/rsvps/boda-elegante":
			gotRSVPAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(RSVPList{
				RSVPs:             []RSVP{{Names: GuestNames{"Ana"}, ParticipantsCount: 1}},
				ParticipantsCount: 1,
			})
		case "/api/my-invitations":
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode([]Invitation{{ID: "boda-elegante"}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	inv, err := c.FetchInvitation(ctx, "boda-elegante")
	if err != nil {
		t.Fatalf("FetchInvitation returned error: %v", err)
	}
	if inv.Names != "Antonio y Vanesa" {
		t.Fatalf("invitation names = %q", inv.Names)
	}

	req := RSVPRequest{
		Names:               []string{"Ana", "Luis"},
		ParticipantsCount:   2,
		Email:               "a@x.com",
		ConfirmedAttendance: true,
		InvitationID:        "boda-elegante",
	}
	if err := c.SubmitRSVP(ctx, req); err != nil {
		t.Fatalf("SubmitRSVP returned error: %v", err)
	}
	if gotRSVPBody.InvitationID != "boda-elegante" || len(gotRSVPBody.Names) != 2 {
		t.Fatalf("rsvp body = %+v", gotRSVPBody)
	}

	list, err := c.FetchRSVPs(ctx, "tok-123", "boda-elegante")
	if err != nil {
		t.Fatalf("FetchRSVPs returned error: %v", err)
	}
	if gotRSVPAuth != "Bearer tok-123" {
		t.Fatalf("rsvps auth header = %q", gotRSVPAuth)
	}
	if list.ParticipantsCount != 1 || len(list.RSVPs) != 1 {
		t.Fatalf("rsvp list = %+v", list)
	}

	invs, err := c.FetchMyInvitations(ctx, "tok-123")
	if err != nil {
		t.Fatalf("FetchMyInvitations returned error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("my-invitations auth header = %q", gotAuth)
	}
	if len(invs) != 1 || invs[0].ID != "boda-elegante" {
		t.Fatalf("invitations = %+v", invs)
	}
}

func TestClient_LoginAndRegister(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch r.URL.Path {
		case "/api/login":
			if body["email"] != "a@x.com" || body["password"] != "pw" || body["access_token"] != "invite-key" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "credenciales inválidas"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-abc"})
		case "/api/register":
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "solicitud enviada"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	token, err := c.Login(ctx, "a@x.com", "pw", "invite-key")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token != "tok-abc" {
		t.Fatalf("token = %q, want tok-abc", token)
	}

	_, err = c.Login(ctx, "a@x.com", "wrong", "invite-key")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("bad login error = %v, want ErrUnauthorized", err)
	}
	if err == nil || err.Error() != "credenciales inválidas: unauthorized" {
		t.Fatalf("bad login message = %v", err)
	}

	msg, err := c.Register(ctx, "b@x.com", "pw")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if msg != "solicitud enviada" {
		t.Fatalf("message = %q", msg)
	}
}

func TestClient_MapsNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchInvitation(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestClient_BasePathIsPreserved(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Invitation{ID: "x"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/backend/")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchInvitation(context.Background(), "x"); err != nil {
		t.Fatalf("FetchInvitation returned error: %v", err)
	}
	if gotPath != "/backend/api/invitation/x" {
		t.Fatalf("request path = %q, want /backend/api/invitation/x", gotPath)
	}
}
