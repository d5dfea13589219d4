// Package clipboard copies rendered query text to the system clipboard
// and drives the copy button's transient feedback label.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Feedback labels and the window they stay visible for.
const (
	CopiedLabel    = "Copied!"
	FailedLabel    = "Failed"
	FeedbackWindow = 2 * time.Second
)

// ErrUnavailable is returned when no clipboard tool is installed.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer places text on a clipboard.
type Writer interface {
	Write(ctx context.Context, text string) error
}

// SystemWriter writes through the platform's clipboard command.
type SystemWriter struct {
	goos     string
	lookPath func(string) (string, error)
}

// NewSystemWriter returns a writer for the running platform.
func NewSystemWriter() *SystemWriter {
	return &SystemWriter{goos: runtime.GOOS, lookPath: exec.LookPath}
}

func commandsFor(goos string) [][]string {
	switch goos {
	case "darwin":
		return [][]string{{"pbcopy"}}
	case "windows":
		return [][]string{{"clip"}}
	default:
		return [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
	}
}

// Write implements Writer using the first available tool.
func (s *SystemWriter) Write(ctx context.Context, text string) error {
	for _, argv := range commandsFor(s.goos) {
		path, err := s.lookPath(argv[0])
		if err != nil {
			continue
		}
		cmd := exec.CommandContext(ctx, path, argv[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("%s: %w: %s", argv[0], err, strings.TrimSpace(string(out)))
		}
		return nil
	}
	return ErrUnavailable
}

// Button is a copy control carrying a percent-encoded payload. The
// original label is captured at construction so repeated activations
// always restore to it.
type Button struct {
	Encoded string

	mu       sync.Mutex
	original string
	label    string
	window   time.Duration
	gen      uint64
	timer    *time.Timer
}

// ButtonOption configures a Button.
type ButtonOption func(*Button)

// WithFeedbackWindow overrides how long feedback labels stay visible.
func WithFeedbackWindow(d time.Duration) ButtonOption {
	return func(b *Button) { b.window = d }
}

// NewButton returns a copy button showing label.
func NewButton(encoded, label string, opts ...ButtonOption) *Button {
	b := &Button{Encoded: encoded, original: label, label: label, window: FeedbackWindow}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Text returns the decoded payload.
func (b *Button) Text() (string, error) {
	text, err := url.PathUnescape(b.Encoded)
	if err != nil {
		return "", fmt.Errorf("decoding copy payload: %w", err)
	}
	return text, nil
}

// Activate copies the decoded payload through w and shows "Copied!" or
// "Failed" for the feedback window. Activating again inside the window
// restarts it.
func (b *Button) Activate(ctx context.Context, w Writer) error {
	text, err := b.Text()
	if err == nil {
		err = w.Write(ctx, text)
	}
	if err != nil {
		b.flash(FailedLabel)
		return err
	}
	b.flash(CopiedLabel)
	return nil
}

// Label returns what the button currently shows.
func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

func (b *Button) flash(label string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.gen++
	gen := b.gen
	b.label = label
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.window, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		// A newer activation owns the label.
		if b.gen == gen {
			b.label = b.original
		}
	})
}
