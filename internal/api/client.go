// Package api is the HTTP client for the invitaciones-digitales
// backend. All persistence lives behind that API; this package only
// shapes requests and decodes responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sentinel errors for conditions the UI distinguishes.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// Client talks to the backend REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "https://invitaciones-digitales-backend.vercel.app"
	defaultUserAgent = "invitado/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL. An empty value uses
// the production backend.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchInvitation retrieves one invitation record by identifier.
func (c *Client) FetchInvitation(ctx context.Context, id string) (*Invitation, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("invitation id required")
	}
	var payload Invitation
	if err := c.do(ctx, http.MethodGet, "/api/invitation/"+id, "", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SubmitRSVP creates a guest confirmation.
func (c *Client) SubmitRSVP(ctx context.Context, req RSVPRequest) error {
	if strings.TrimSpace(req.InvitationID) == "" {
		return fmt.Errorf("invitation id required")
	}
	return c.do(ctx, http.MethodPost, "/api/rsvp", "", req, nil)
}

// Login exchanges credentials for a session bearer token.
func (c *Client) Login(ctx context.Context, email, password, accessToken string) (string, error) {
	body := map[string]string{
		"email":        email,
		"password":     password,
		"access_token": accessToken,
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/login", "", body, &payload); err != nil {
		return "", err
	}
	if payload.Token == "" {
		return "", fmt.Errorf("login response missing token")
	}
	return payload.Token, nil
}

// Register submits an access request; the backend replies with a
// human-readable message.
func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var payload struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/register", "", body, &payload); err != nil {
		return "", err
	}
	return payload.Message, nil
}

// FetchRSVPs retrieves the confirmations for one invitation. Requires a
// bearer token.
func (c *Client) FetchRSVPs(ctx context.Context, token, invitationID string) (RSVPList, error) {
	if strings.TrimSpace(invitationID) == "" {
		return RSVPList{}, fmt.Errorf("invitation id required")
	}
	var payload RSVPList
	if err := c.do(ctx, http.MethodGet, "/api/rsvps/"+invitationID, token, nil, &payload); err != nil {
		return RSVPList{}, err
	}
	return payload, nil
}

// FetchMyInvitations retrieves the invitations owned by the logged-in
// account. Requires a bearer token.
func (c *Client) FetchMyInvitations(ctx context.Context, token string) ([]Invitation, error) {
	var payload []Invitation
	if err := c.do(ctx, http.MethodGet, "/api/my-invitations", token, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, dest any) error {
	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + path

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return apiError(path, resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiError maps an error response to a sentinel where the UI cares,
// preferring the backend's own message when one is present.
func apiError(path string, resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		if body.Error != "" {
			return fmt.Errorf("%s: %w", body.Error, ErrNotFound)
		}
		return fmt.Errorf("api %s: %w", path, ErrNotFound)
	case http.StatusUnauthorized, http.StatusForbidden:
		if body.Error != "" {
			return fmt.Errorf("%s: %w", body.Error, ErrUnauthorized)
		}
		return fmt.Errorf("api %s: %w", path, ErrUnauthorized)
	}
	if body.Error != "" {
		return fmt.Errorf("api %s: %s", path, body.Error)
	}
	return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
