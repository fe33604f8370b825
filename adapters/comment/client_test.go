package comment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPostAddsMarker(t *testing.T) {
	var capturedBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		capturedBody = string(buf)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 1, "body": "ok"}`))
	}))
	defer server.Close()

	c := New(server.URL, "secret-token")
	note, err := c.Post(context.Background(), "/notes", "total delta: +$50.00")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if note.ID != 1 {
		t.Fatalf("note.ID = %d, want 1", note.ID)
	}
	var payload struct {
		Body string `json:"body"`
	}
	if err := json.Unmarshal([]byte(capturedBody), &payload); err != nil {
		t.Fatalf("posted payload is not JSON: %v (%q)", err, capturedBody)
	}
	if !strings.Contains(payload.Body, marker) {
		t.Fatalf("expected posted body to carry the marker, got %q", payload.Body)
	}
}

func TestFindExistingOnlyMatchesMarkedComment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "body": "hi there"}, {"id": 2, "body": "` + marker + `\nold report"}]`))
	}))
	defer server.Close()

	c := New(server.URL, "")
	note, err := c.FindExisting(context.Background(), "/notes")
	if err != nil {
		t.Fatalf("FindExisting: %v", err)
	}
	if note == nil || note.ID != 2 {
		t.Fatalf("expected to find the marked note (id=2), got %+v", note)
	}
}

func TestErrorsNeverLeakToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("token top-secret-value rejected"))
	}))
	defer server.Close()

	c := New(server.URL, "top-secret-value")
	_, err := c.Post(context.Background(), "/notes", "body")
	if err == nil {
		t.Fatal("expected an error")
	}
	if strings.Contains(err.Error(), "top-secret-value") {
		t.Fatalf("expected token to be redacted from error, got %v", err)
	}
}

func TestNoteEndpoint(t *testing.T) {
	if got := NoteEndpoint("/notes/", 42); got != "/notes/42" {
		t.Fatalf("NoteEndpoint = %q, want /notes/42", got)
	}
}
