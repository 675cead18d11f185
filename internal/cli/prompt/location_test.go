package prompt

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thoreinstein/timeto/internal/backup"
	"github.com/thoreinstein/timeto/internal/errors"
)

func testCandidates(t *testing.T) []Candidate {
	t.Helper()
	return []Candidate{
		{Label: "Downloads", Path: t.TempDir()},
		{Label: "Documents", Path: t.TempDir()},
	}
}

func TestPromptForLocation_DefaultSelection(t *testing.T) {
	t.Parallel()

	cands := testCandidates(t)
	var buf bytes.Buffer
	p := NewLocationPrompterWithIO(strings.NewReader("\n"), &buf, cands...)

	loc, err := p.PromptForLocation(context.Background(), backup.DefaultName, backup.MIMEType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(loc) != cands[0].Path {
		t.Errorf("location = %q, want %q", loc, cands[0].Path)
	}

	out := buf.String()
	for _, want := range []string{backup.FolderName, backup.DefaultName, backup.MIMEType, "[1] Downloads", "[3] Enter a path"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPromptForLocation_NumberedSelection(t *testing.T) {
	t.Parallel()

	cands := testCandidates(t)
	p := NewLocationPrompterWithIO(strings.NewReader("2\n"), io.Discard, cands...)

	loc, err := p.PromptForLocation(context.Background(), backup.DefaultName, backup.MIMEType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(loc) != cands[1].Path {
		t.Errorf("location = %q, want %q", loc, cands[1].Path)
	}
}

func TestPromptForLocation_CustomPath(t *testing.T) {
	t.Parallel()

	cands := testCandidates(t)
	custom := t.TempDir()
	input := "3\nrelative/dir\n" + custom + "\n"
	var buf bytes.Buffer
	p := NewLocationPrompterWithIO(strings.NewReader(input), &buf, cands...)

	loc, err := p.PromptForLocation(context.Background(), backup.DefaultName, backup.MIMEType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(loc) != custom {
		t.Errorf("location = %q, want %q", loc, custom)
	}
	if !strings.Contains(buf.String(), "not an absolute path") {
		t.Errorf("expected relative path to be rejected, got:\n%s", buf.String())
	}
}

func TestPromptForLocation_TypedPath(t *testing.T) {
	t.Parallel()

	custom := t.TempDir()
	p := NewLocationPrompterWithIO(strings.NewReader(custom+"/\n"), io.Discard, testCandidates(t)...)

	loc, err := p.PromptForLocation(context.Background(), backup.DefaultName, backup.MIMEType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(loc) != filepath.Clean(custom) {
		t.Errorf("location = %q, want %q", loc, custom)
	}
}

func TestPromptForLocation_RetriesInvalid(t *testing.T) {
	t.Parallel()

	cands := testCandidates(t)
	var buf bytes.Buffer
	p := NewLocationPrompterWithIO(strings.NewReader("abc\n9\n1\n"), &buf, cands...)

	loc, err := p.PromptForLocation(context.Background(), backup.DefaultName, backup.MIMEType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(loc) != cands[0].Path {
		t.Errorf("location = %q, want %q", loc, cands[0].Path)
	}
	if !strings.Contains(buf.String(), "not a number") || !strings.Contains(buf.String(), "out of range") {
		t.Errorf("expected both errors in output:\n%s", buf.String())
	}
}

func TestPromptForLocation_Cancel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"eof", ""},
		{"quit", "q\n"},
		{"eof after invalid", "nope\n"},
		{"eof in path prompt", "3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewLocationPrompterWithIO(strings.NewReader(tt.input), io.Discard, testCandidates(t)...)
			_, err := p.PromptForLocation(context.Background(), backup.DefaultName, backup.MIMEType)
			if !errors.Is(err, backup.ErrUserCancelled) {
				t.Errorf("expected ErrUserCancelled, got: %v", err)
			}
		})
	}
}

func TestPromptForLocation_ContextDone(t *testing.T) {
	t.Parallel()

	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	p := NewLocationPrompterWithIO(r, io.Discard, testCandidates(t)...)
	_, err := p.PromptForLocation(ctx, backup.DefaultName, backup.MIMEType)
	if !errors.Is(err, backup.ErrUserCancelled) {
		t.Errorf("expected ErrUserCancelled, got: %v", err)
	}
}

func TestPromptForLocation_InterruptedThenAnswered(t *testing.T) {
	t.Parallel()

	r, w := io.Pipe()
	defer w.Close()

	cands := testCandidates(t)
	p := NewLocationPrompterWithIO(r, io.Discard, cands...)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := p.PromptForLocation(ctx, backup.DefaultName, backup.MIMEType)
	if !errors.Is(err, backup.ErrUserCancelled) {
		t.Fatalf("expected ErrUserCancelled, got: %v", err)
	}

	go func() {
		_, _ = io.WriteString(w, "2\n")
	}()

	ctx2, cancel2 := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel2()
	loc, err := p.PromptForLocation(ctx2, backup.DefaultName, backup.MIMEType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(loc) != cands[1].Path {
		t.Errorf("location = %q, want %q", loc, cands[1].Path)
	}
}

func TestPromptForLocation_NoCandidates(t *testing.T) {
	t.Parallel()

	custom := t.TempDir()
	p := NewLocationPrompterWithIO(strings.NewReader("\n1\n"+custom+"\n"), io.Discard)
	p.candidates = func() []Candidate { return nil }

	loc, err := p.PromptForLocation(context.Background(), backup.DefaultName, backup.MIMEType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(loc) != custom {
		t.Errorf("location = %q, want %q", loc, custom)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	if got := expandHome("~/backups"); got != "/home/tester/backups" {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("~"); got != "/home/tester" {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/abs"); got != "/abs" {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("~other/x"); got != "~other/x" {
		t.Errorf("expandHome = %q", got)
	}
}
