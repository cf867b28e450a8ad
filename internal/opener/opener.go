package opener

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrUnsupportedPlatform is returned when no viewer command is known for the OS.
	ErrUnsupportedPlatform = errors.New("no file viewer command for this platform")
	// ErrThrottled is returned when a file was opened too recently.
	ErrThrottled = errors.New("file opening throttled")
)

// Opener shows a file to the user.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// Runner executes an external command and waits for it to exit.
type Runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// System opens files with the platform's default handler.
type System struct {
	goos string
	run  Runner
}

// SystemOption configures System.
type SystemOption func(*System)

// WithGOOS overrides runtime.GOOS, primarily for tests.
func WithGOOS(goos string) SystemOption {
	return func(s *System) {
		s.goos = goos
	}
}

// WithRunner overrides the command runner, primarily for tests.
func WithRunner(run Runner) SystemOption {
	return func(s *System) {
		s.run = run
	}
}

// NewSystem returns an Opener for the host OS.
func NewSystem(opts ...SystemOption) *System {
	s := &System{
		goos: runtime.GOOS,
		run:  execRunner,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Command returns the command line used to open path.
func (s *System) Command(path string) (string, []string, error) {
	switch s.goos {
	case "windows":
		return "cmd", []string{"/c", "start", "", path}, nil
	case "darwin":
		return "open", []string{path}, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return "xdg-open", []string{path}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, s.goos)
	}
}

// Open runs the viewer command for path.
func (s *System) Open(ctx context.Context, path string) error {
	name, args, err := s.Command(path)
	if err != nil {
		return err
	}
	if err := s.run(ctx, name, args...); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

// Throttled limits how often the wrapped Opener is invoked.
type Throttled struct {
	next    Opener
	limiter *rate.Limiter
}

// NewThrottled allows one open per interval. A non-positive interval disables throttling.
func NewThrottled(next Opener, interval time.Duration) *Throttled {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Throttled{
		next:    next,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Open forwards to the wrapped Opener unless the limiter denies it.
func (t *Throttled) Open(ctx context.Context, path string) error {
	if !t.limiter.Allow() {
		return ErrThrottled
	}
	return t.next.Open(ctx, path)
}
