package jumia

import (
	"catalog-scraper/config"
	"catalog-scraper/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrPageTimeout reports that no item rendered within the ready timeout.
// It ends pagination; it is not a run failure.
var ErrPageTimeout = errors.New("no items rendered before timeout")

// ErrNoBackend reports that no rendering backend could be started.
var ErrNoBackend = errors.New("no rendering backend available")

// PageFetcher loads a listing page and waits up to readyTimeout for at least
// one item to appear. It returns ErrPageTimeout when none does.
type PageFetcher interface {
	Fetch(ctx context.Context, url string, readyTimeout time.Duration) (*Page, error)
}

// Session is a PageFetcher owning a rendering backend for one run.
// Close releases the backend and must be called on every exit path.
type Session interface {
	PageFetcher
	Close() error
}

// Backend opens sessions of one kind, e.g. a headless Chrome.
type Backend struct {
	Name string
	Open func(ctx context.Context, cfg *config.Config) (Session, error)
}

// DefaultBackends lists every known backend by name.
func DefaultBackends() map[string]Backend {
	return map[string]Backend{
		"chromedp": {Name: "chromedp", Open: openChromedp},
		"rod":      {Name: "rod", Open: openRod},
		"static":   {Name: "static", Open: openStatic},
	}
}

// BackendsByName resolves names in order, skipping unknown ones.
func BackendsByName(names []string) ([]Backend, error) {
	known := DefaultBackends()
	var out []Backend
	var unknown []string
	for _, name := range names {
		b, ok := known[strings.ToLower(name)]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		out = append(out, b)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: none of %v is a known backend", ErrNoBackend, names)
	}
	if len(unknown) > 0 {
		return out, fmt.Errorf("unknown backends ignored: %v", unknown)
	}
	return out, nil
}

// OpenSession tries each backend in order and returns the first session that
// starts. If all fail, the error wraps ErrNoBackend and every backend error.
func OpenSession(ctx context.Context, cfg *config.Config, backends []Backend) (Session, error) {
	errs := []error{ErrNoBackend}
	for _, b := range backends {
		session, err := b.Open(ctx, cfg)
		if err == nil {
			utils.Success("Rendering backend ready: %s", b.Name)
			return session, nil
		}
		utils.Warn("Backend %s unavailable: %v", b.Name, err)
		errs = append(errs, fmt.Errorf("%s: %w", b.Name, err))
	}
	return nil, errors.Join(errs...)
}
