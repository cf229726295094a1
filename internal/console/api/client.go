package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client talks to the HelmDesk directory service over JSON/HTTP and
// implements EntityAPI and ReferenceAPI. A cookie jar carries the session
// established by Login.
type Client struct {
	httpClient *http.Client
	base       string
}

// NewClient builds a client for the service rooted at base
// (e.g. "https://helmdesk.example.com").
func NewClient(base string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second, Jar: jar},
		base:       strings.TrimRight(base, "/"),
	}
}

// NewClientWithHTTP builds a client around a caller-supplied http.Client.
// Used by tests that need a custom transport.
func NewClientWithHTTP(base string, hc *http.Client) *Client {
	return &Client{httpClient: hc, base: strings.TrimRight(base, "/")}
}

// Login establishes a session for subsequent API calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	in := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}
	return c.request(ctx, http.MethodPost, "/login", in, nil)
}

// Logout drops the current session.
func (c *Client) Logout(ctx context.Context) error {
	return c.request(ctx, http.MethodPost, "/logout", nil, nil)
}

func (c *Client) ListEntities(ctx context.Context) ([]Entity, error) {
	var out []Entity
	if err := c.request(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEntity(ctx context.Context, id string) (Entity, error) {
	var out Entity
	if err := c.request(ctx, http.MethodGet, "/api/users/"+id, nil, &out); err != nil {
		return Entity{}, err
	}
	return out, nil
}

func (c *Client) CreateEntity(ctx context.Context, p Payload) (Entity, error) {
	var out Entity
	if err := c.request(ctx, http.MethodPost, "/api/users", p, &out); err != nil {
		return Entity{}, err
	}
	return out, nil
}

func (c *Client) UpdateEntity(ctx context.Context, id string, p Payload) (Entity, error) {
	var out Entity
	if err := c.request(ctx, http.MethodPut, "/api/users/"+id, p, &out); err != nil {
		return Entity{}, err
	}
	return out, nil
}

func (c *Client) DeleteEntity(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodDelete, "/api/users/"+id, nil, nil)
}

func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	var out []Role
	if err := c.request(ctx, http.MethodGet, "/api/roles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// errorBody is the service's JSON error envelope.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (c *Client) request(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return &Error{Kind: KindTransport, Cause: err}
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return &Error{Kind: KindTransport, Cause: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return &Error{Kind: kindForStatus(resp.StatusCode), Message: eb.Error}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindTransport, Cause: err}
	}
	return nil
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindRejected
	}
}
