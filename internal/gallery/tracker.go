// Package gallery tracks the catalog request lifecycle of the gallery view.
//
// A [Tracker] hands out a [Ticket] per fetch. Starting a fetch cancels the previous one, and
// only the ticket of the latest fetch may change the result list or the busy flag.
package gallery

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/desertthunder/marquee/internal/models"
)

// Outcome describes what [Tracker.Resolve] did with a completion.
type Outcome int

const (
	Applied    Outcome = iota // result list replaced
	Superseded                // a newer fetch owns the state
	Cancelled                 // the fetch's context was cancelled
	Failed                    // busy cleared, previous list kept
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Superseded:
		return "superseded"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Ticket identifies one fetch.
type Ticket struct {
	Generation uint64
	Group      models.Group
	Page       int
}

// Tracker owns the result list, the busy flag and the cancel func of the live fetch.
type Tracker struct {
	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	busy     bool
	items    []models.CatalogItem
	err      error
	current  Ticket
	loadedAt time.Time
	now      func() time.Time
}

// NewTracker creates an idle tracker with an empty result list.
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// Begin cancels the live fetch, if any, and starts a new one derived from parent.
func (t *Tracker) Begin(parent context.Context, group models.Group, page int) (context.Context, Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	t.gen++
	t.cancel = cancel
	t.busy = true
	t.current = Ticket{Generation: t.gen, Group: group, Page: page}
	return ctx, t.current
}

// Resolve applies the completion of the fetch identified by ticket.
func (t *Tracker) Resolve(ticket Ticket, items []models.CatalogItem, err error) Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ticket.Generation != t.gen {
		return Superseded
	}
	if errors.Is(err, context.Canceled) {
		return Cancelled
	}

	t.release()
	if err != nil {
		t.err = err
		return Failed
	}

	t.items = items
	t.err = nil
	t.loadedAt = t.now()
	return Applied
}

// Stop cancels the live fetch and clears the busy flag. Later completions are superseded.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	if t.cancel != nil {
		t.cancel()
	}
	t.release()
}

func (t *Tracker) release() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.busy = false
}

// Busy reports whether a fetch is in flight.
func (t *Tracker) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.busy
}

// Items returns the current result list.
func (t *Tracker) Items() []models.CatalogItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.items
}

// Err returns the error of the latest failed fetch, cleared by the next success.
func (t *Tracker) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Current returns the ticket of the latest fetch.
func (t *Tracker) Current() Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// LoadedAt returns when the result list was last replaced.
func (t *Tracker) LoadedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loadedAt
}
