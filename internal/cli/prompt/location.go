// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/timeto/internal/backup"
	"github.com/thoreinstein/timeto/internal/errors"
	"github.com/thoreinstein/timeto/internal/logging"
	"github.com/thoreinstein/timeto/internal/paths"
)

// ErrInvalidSelection is returned for input that names no usable directory.
var ErrInvalidSelection = errors.New("invalid selection")

// Candidate is a suggested backup location.
type Candidate struct {
	Label string
	Path  string
}

// customLabel marks the entry that asks for a typed path.
const customLabel = "Enter a path"

// LocationPrompter asks the user for a backup directory.
// On a terminal it uses a fuzzy finder; otherwise it prints a numbered list
// and reads a line.
type LocationPrompter struct {
	reader      *bufio.Reader
	writer      io.Writer
	interactive bool
	candidates  func() []Candidate

	// lines is fed by a single goroutine that owns reader. It is closed
	// after the first read error has been delivered.
	startReader sync.Once
	lines       chan lineResult
}

type lineResult struct {
	line string
	err  error
}

var _ backup.Prompter = (*LocationPrompter)(nil)

// NewLocationPrompter returns a prompter on stdin and stdout.
func NewLocationPrompter() *LocationPrompter {
	return &LocationPrompter{
		reader:      bufio.NewReader(os.Stdin),
		writer:      os.Stdout,
		interactive: logging.IsTTY(os.Stdin) && logging.IsTTY(os.Stdout),
		candidates:  DefaultCandidates,
	}
}

// NewLocationPrompterWithIO returns a line-mode prompter for testing.
func NewLocationPrompterWithIO(r io.Reader, w io.Writer, candidates ...Candidate) *LocationPrompter {
	p := &LocationPrompter{
		reader:     bufio.NewReader(r),
		writer:     w,
		candidates: DefaultCandidates,
	}
	if len(candidates) > 0 {
		p.candidates = func() []Candidate { return candidates }
	}
	return p
}

// DefaultCandidates suggests the downloads, documents and home directories
// that exist on this machine, in that order.
func DefaultCandidates() []Candidate {
	home, _ := paths.ResolveHome()
	all := []Candidate{
		{Label: "Downloads", Path: paths.DownloadDir()},
		{Label: "Documents", Path: paths.DocumentsDir()},
		{Label: "Home", Path: home},
	}

	seen := map[string]bool{}
	out := make([]Candidate, 0, len(all))
	for _, c := range all {
		if c.Path == "" || seen[c.Path] || !isDir(c.Path) {
			continue
		}
		seen[c.Path] = true
		out = append(out, c)
	}
	return out
}

// PromptForLocation asks for a directory that will hold the backup folder.
// Dismissing the prompt, end of input or a done context return
// backup.ErrUserCancelled.
func (p *LocationPrompter) PromptForLocation(ctx context.Context, defaultName, mimeType string) (backup.Location, error) {
	candidates := p.candidates()

	fmt.Fprintf(p.writer, "Automatic backups need a location.\n")
	fmt.Fprintf(p.writer, "timeto will create %s/ there and write daily %s files (%s) into it.\n",
		backup.FolderName, defaultName, mimeType)

	if p.interactive {
		return p.find(ctx, candidates)
	}
	return p.ask(ctx, candidates)
}

func (p *LocationPrompter) find(ctx context.Context, candidates []Candidate) (backup.Location, error) {
	items := append(append([]Candidate(nil), candidates...), Candidate{Label: customLabel})

	idx, err := fuzzyfinder.Find(
		items,
		func(i int) string {
			if items[i].Path == "" {
				return items[i].Label
			}
			return fmt.Sprintf("%s: %s", items[i].Label, items[i].Path)
		},
		fuzzyfinder.WithContext(ctx),
		fuzzyfinder.WithPromptString("Backup location > "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 || items[i].Path == "" {
				return "Type an absolute directory after selecting."
			}
			return fmt.Sprintf("Backups go to:\n%s", backup.FolderPath(backup.Location(items[i].Path)))
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) || ctx.Err() != nil {
			return "", errors.Wrap(backup.ErrUserCancelled, "location picker closed")
		}
		return "", errors.Wrap(err, "location picker failed")
	}

	if items[idx].Path != "" {
		return backup.Location(items[idx].Path), nil
	}
	return p.askPath(ctx)
}

func (p *LocationPrompter) ask(ctx context.Context, candidates []Candidate) (backup.Location, error) {
	for {
		for i, c := range candidates {
			fmt.Fprintf(p.writer, "  [%d] %s (%s)\n", i+1, c.Label, c.Path)
		}
		fmt.Fprintf(p.writer, "  [%d] %s\n", len(candidates)+1, customLabel)
		if len(candidates) > 0 {
			fmt.Fprintf(p.writer, "Select [1], or q to skip: ")
		} else {
			fmt.Fprintf(p.writer, "Select, or q to skip: ")
		}

		input, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}

		loc, err := p.choose(ctx, input, candidates)
		if err == nil {
			return loc, nil
		}
		if !errors.Is(err, ErrInvalidSelection) {
			return "", err
		}
		fmt.Fprintf(p.writer, "%v\n", err)
	}
}

func (p *LocationPrompter) choose(ctx context.Context, input string, candidates []Candidate) (backup.Location, error) {
	switch {
	case input == "" && len(candidates) > 0:
		return backup.Location(candidates[0].Path), nil
	case input == "":
		return "", errors.Wrap(ErrInvalidSelection, "no default available")
	case strings.EqualFold(input, "q"):
		return "", errors.Wrap(backup.ErrUserCancelled, "skipped")
	case strings.HasPrefix(input, "/") || strings.HasPrefix(input, "~"):
		return validatePath(input)
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	switch {
	case n >= 1 && n <= len(candidates):
		return backup.Location(candidates[n-1].Path), nil
	case n == len(candidates)+1:
		return p.askPath(ctx)
	default:
		return "", errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(candidates)+1)
	}
}

func (p *LocationPrompter) askPath(ctx context.Context) (backup.Location, error) {
	for {
		fmt.Fprintf(p.writer, "Directory: ")
		input, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		loc, err := validatePath(input)
		if err == nil {
			return loc, nil
		}
		fmt.Fprintf(p.writer, "%v\n", err)
	}
}

// readLine reads one trimmed line. End of input and a done context both
// count as dismissing the prompt. A line typed after an interrupted prompt
// is delivered to the next one.
func (p *LocationPrompter) readLine(ctx context.Context) (string, error) {
	p.startReader.Do(func() {
		p.lines = make(chan lineResult)
		go p.readLines()
	})

	select {
	case <-ctx.Done():
		return "", errors.Wrap(backup.ErrUserCancelled, "prompt interrupted")
	case r, ok := <-p.lines:
		if !ok {
			return "", errors.Wrap(backup.ErrUserCancelled, "end of input")
		}
		if r.err != nil {
			if errors.Is(r.err, io.EOF) && strings.TrimSpace(r.line) != "" {
				return strings.TrimSpace(r.line), nil
			}
			if errors.Is(r.err, io.EOF) {
				return "", errors.Wrap(backup.ErrUserCancelled, "end of input")
			}
			return "", errors.Wrap(r.err, "reading selection")
		}
		return strings.TrimSpace(r.line), nil
	}
}

func (p *LocationPrompter) readLines() {
	defer close(p.lines)
	for {
		line, err := p.reader.ReadString('\n')
		p.lines <- lineResult{line: line, err: err}
		if err != nil {
			return
		}
	}
}

func validatePath(input string) (backup.Location, error) {
	path := expandHome(input)
	if !filepath.IsAbs(path) {
		return "", errors.Wrapf(ErrInvalidSelection, "%q is not an absolute path", input)
	}
	path = filepath.Clean(path)
	if !isDir(path) {
		return "", errors.Wrapf(ErrInvalidSelection, "%s is not an existing directory", path)
	}
	return backup.Location(path), nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := paths.ResolveHome()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
