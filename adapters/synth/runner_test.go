package synth

import (
	"context"
	"strings"
	"testing"
)

func TestRunSuccess(t *testing.T) {
	r := New(t.TempDir())
	out, err := r.Run(context.Background(), "echo", "-n", `{"Resources":{}}`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, "Resources") {
		t.Fatalf("expected command output to be captured, got %q", out)
	}
}

func TestRunFailureWrapsStderr(t *testing.T) {
	r := New(t.TempDir())
	_, err := r.Run(context.Background(), "sh", "-c", "echo boom 1>&2; exit 1")
	if err == nil {
		t.Fatal("expected an error from a nonzero exit")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected the error to carry stderr tail, got %v", err)
	}
}
