package panel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/noelruault/awstop/internal/aws"
	"github.com/noelruault/awstop/internal/config"
	"github.com/noelruault/awstop/internal/logging"
	"github.com/noelruault/awstop/internal/ui/shared"
)

const loadingNotice = "Loading..."

// Column renders one field of a record.
type Column[T any] struct {
	Header string
	Value  func(T) string
	// Style optionally colors the padded cell.
	Style func(T) lipgloss.Style
}

// LoadFunc lists the records of a table for a selection.
type LoadFunc[T any] func(ctx context.Context, sel config.Selection) ([]T, error)

// Option configures a Table.
type Option func(*settings)

type settings struct {
	surfaceErrors bool
	logger        *slog.Logger
}

// WithLogger sets the logger refresh failures are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithoutErrorDisplay keeps provider errors off screen: they are logged and
// the stale records stay visible.
func WithoutErrorDisplay() Option {
	return func(s *settings) {
		s.surfaceErrors = false
	}
}

// Table is a Content pane listing records of one resource type in
// fixed-width columns.
type Table[T any] struct {
	title   string
	columns []Column[T]
	notice  string
	load    LoadFunc[T]
	settings

	state   State
	records []T
	err     error
	// vp.Height is the row budget of the last Render.
	vp shared.Viewport
}

// NewTable builds an empty table. notice is shown when a load returns no
// records.
func NewTable[T any](title string, columns []Column[T], notice string, load LoadFunc[T], opts ...Option) *Table[T] {
	t := &Table[T]{
		title:   title,
		columns: columns,
		notice:  notice,
		load:    load,
		settings: settings{
			surfaceErrors: true,
			logger:        logging.Discard(),
		},
	}
	for _, opt := range opts {
		opt(&t.settings)
	}
	return t
}

func (t *Table[T]) Title() string { return t.title }

func (t *Table[T]) State() State { return t.state }

func (t *Table[T]) Err() error { return t.err }

// Records returns the cached snapshot.
func (t *Table[T]) Records() []T { return t.records }

// Headers returns the column labels in display order.
func (t *Table[T]) Headers() []string {
	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.Header
	}
	return headers
}

// SetColumns replaces the column set. Must be called on the UI goroutine.
func (t *Table[T]) SetColumns(columns []Column[T]) {
	t.columns = columns
}

// Refresher implements Panel using the table's own load func. A table
// built without one never changes.
func (t *Table[T]) Refresher(sel config.Selection) Fetcher {
	load := t.load
	if load == nil {
		return Noop
	}
	return t.FetcherFor(func(ctx context.Context) ([]T, error) {
		return load(ctx, sel)
	})
}

// FetcherFor wraps an arbitrary load into a Fetcher committing to t.
func (t *Table[T]) FetcherFor(load func(ctx context.Context) ([]T, error)) Fetcher {
	return func(ctx context.Context) Commit {
		records, err := load(ctx)
		return func() error {
			return t.apply(records, err)
		}
	}
}

func (t *Table[T]) apply(records []T, err error) error {
	if err == nil {
		if records == nil {
			records = []T{}
		}
		t.records = records
		t.err = nil
		t.state = StateLoaded
		t.ScrollBy(0)
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	if !aws.IsClassified(err) {
		return fmt.Errorf("%s refresh: %w", t.title, err)
	}

	t.state = StateLoaded
	t.logger.Warn("refresh failed",
		slog.String("panel", t.title),
		slog.Bool("displayed", t.surfaceErrors),
		slog.Any("err", err),
	)
	if t.surfaceErrors {
		t.err = err
	}
	return nil
}

// RequiredHeight is one header row plus a row per record, or one notice row.
func (t *Table[T]) RequiredHeight() int {
	return 1 + max(len(t.records), 1)
}

// ScrollBy moves the first visible record by delta, stopping once the last
// record is on screen.
func (t *Table[T]) ScrollBy(delta int) {
	t.vp.Scroll(delta, len(t.records))
}

// Render draws the table into width x height cells.
func (t *Table[T]) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if t.err != nil {
		return shared.ErrorStyle.Render(shared.Center(errorLine(t.err), width))
	}

	colWidth := 1
	if len(t.columns) > 0 {
		colWidth = max(width/len(t.columns), 1)
	}

	var b strings.Builder
	for _, c := range t.columns {
		b.WriteString(shared.Cell(c.Header, colWidth))
	}
	lines := []string{shared.HeaderStyle.Render(b.String())}

	switch {
	case t.state == StateEmpty:
		lines = append(lines, shared.MutedStyle.Render(shared.Center(loadingNotice, width)))
	case len(t.records) == 0:
		lines = append(lines, shared.WarnStyle.Render(shared.Center(t.notice, width)))
	default:
		t.vp.Height = height - 1
		t.vp.Scroll(0, len(t.records))
		start, end := shared.GetVisibleRange(len(t.records), t.vp)
		for _, rec := range t.records[start:end] {
			lines = append(lines, t.renderRow(rec, colWidth))
		}
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (t *Table[T]) renderRow(rec T, colWidth int) string {
	var b strings.Builder
	for _, c := range t.columns {
		cell := shared.Cell(c.Value(rec), colWidth)
		if c.Style != nil {
			cell = c.Style(rec).Render(cell)
		}
		b.WriteString(cell)
	}
	return b.String()
}

// errorLine flattens an error onto one line.
func errorLine(err error) string {
	return strings.Join(strings.Fields(err.Error()), " ")
}
