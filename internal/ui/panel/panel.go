// Package panel defines the capability every dashboard pane implements and
// the table machinery the resource panes share.
//
// A refresh is split in two so the blocking provider call can run outside
// the UI loop while panel state still only changes on the UI goroutine:
// Refresher snapshots what the fetch needs, the returned Fetcher performs
// the remote call, and the Commit it yields applies the outcome.
package panel

import (
	"context"

	"github.com/noelruault/awstop/internal/config"
)

// Commit applies a fetched outcome to its panel. A non-nil error is fatal.
type Commit func() error

// Fetcher performs the blocking remote call of one refresh.
type Fetcher func(ctx context.Context) Commit

// Panel is a renderable, refreshable pane.
type Panel interface {
	Refresher(sel config.Selection) Fetcher
	Render(width, height int) string
	RequiredHeight() int
}

// Content is a pane that can fill the main area of the screen.
type Content interface {
	Panel
	Title() string
	Headers() []string
	State() State
	Err() error
	ScrollBy(delta int)
}

// State is the refresh lifecycle of a pane.
type State int

const (
	// StateEmpty means nothing has been fetched yet.
	StateEmpty State = iota
	// StateLoaded means the pane holds records, an error, or both.
	StateLoaded
)

func (s State) String() string {
	if s == StateLoaded {
		return "loaded"
	}
	return "empty"
}

// Refresh fetches and commits synchronously.
func Refresh(ctx context.Context, p Panel, sel config.Selection) error {
	return p.Refresher(sel)(ctx)()
}

// Noop is a Fetcher that changes nothing.
func Noop(context.Context) Commit {
	return func() error { return nil }
}
