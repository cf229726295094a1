package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_ListEntities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/users" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"u1","name":"Jane","email":"jane@x.com","role":{"id":"r2","name":"Manager"}}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.ListEntities(context.Background())
	if err != nil {
		t.Fatalf("ListEntities failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("entities: got %d, want 1", len(got))
	}
	if got[0].Role.ID() != "r2" {
		t.Errorf("role id: got %q, want %q", got[0].Role.ID(), "r2")
	}
}

func TestClient_CreateEntity_OmitsBlankPassword(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u9","name":"Jane","email":"jane@x.com","role":"r1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.CreateEntity(context.Background(), Payload{Name: "Jane", Email: "jane@x.com", RoleID: "r1"})
	if err != nil {
		t.Fatalf("CreateEntity failed: %v", err)
	}
	if _, present := body["password"]; present {
		t.Error("blank password must be omitted from the wire payload")
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		payload  string
		wantKind Kind
		wantMsg  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"sign in required","code":"unauthorized"}`, KindUnauthorized, "sign in required"},
		{"not found", http.StatusNotFound, `{"error":"user not found","code":"not_found"}`, KindNotFound, "user not found"},
		{"rejected with message", http.StatusConflict, `{"error":"a user with this email already exists","code":"duplicate_email"}`, KindRejected, "a user with this email already exists"},
		{"rejected without message", http.StatusInternalServerError, ``, KindRejected, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			c := NewClient(srv.URL)
			err := c.DeleteEntity(context.Background(), "u1")
			if err == nil {
				t.Fatal("expected error")
			}
			var ae *Error
			if !errors.As(err, &ae) {
				t.Fatalf("expected *api.Error, got %T", err)
			}
			if ae.Kind != tt.wantKind {
				t.Errorf("kind: got %q, want %q", ae.Kind, tt.wantKind)
			}
			if ae.Message != tt.wantMsg {
				t.Errorf("message: got %q, want %q", ae.Message, tt.wantMsg)
			}
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL)
	_, err := c.ListEntities(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if ErrorKind(err) != KindTransport {
		t.Errorf("kind: got %q, want %q", ErrorKind(err), KindTransport)
	}
}

func TestErrorMessage_NonAPIError(t *testing.T) {
	if msg := ErrorMessage(errors.New("boom")); msg != "" {
		t.Errorf("foreign errors carry no message, got %q", msg)
	}
}
