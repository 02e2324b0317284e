// Package status renders the single-line account, region and clock bar at
// the top of the screen.
package status

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/noelruault/awstop/internal/aws"
	"github.com/noelruault/awstop/internal/config"
	"github.com/noelruault/awstop/internal/logging"
	"github.com/noelruault/awstop/internal/ui/panel"
	"github.com/noelruault/awstop/internal/ui/shared"
)

const (
	unknownIdentity = "unknown"
	timeLayout      = "Jan 02 2006 15:04:05"
)

// Panel shows who is logged in, the selected region and the time of the
// last refresh. The caller identity is looked up once and cached; a failed
// lookup is retried on every refresh.
type Panel struct {
	client aws.ResourceClient
	logger *slog.Logger
	now    func() time.Time

	identity string
	region   string
	at       time.Time
}

var _ panel.Panel = (*Panel)(nil)

func New(client aws.ResourceClient, logger *slog.Logger) *Panel {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Panel{client: client, logger: logger, now: time.Now}
}

// SetClock replaces the time source.
func (p *Panel) SetClock(now func() time.Time) {
	p.now = now
}

// Identity returns the cached caller ARN, or "" before a lookup succeeded.
func (p *Panel) Identity() string { return p.identity }

func (p *Panel) RequiredHeight() int { return 1 }

func (p *Panel) Refresher(sel config.Selection) panel.Fetcher {
	cached := p.identity
	now := p.now
	return func(ctx context.Context) panel.Commit {
		identity, err := cached, error(nil)
		if identity == "" {
			identity, err = p.client.CallerIdentity(ctx)
		}
		at := now()
		return func() error {
			return p.apply(sel.Region, identity, at, err)
		}
	}
}

func (p *Panel) apply(region, identity string, at time.Time, err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	p.region = region
	p.at = at
	if err != nil {
		if !aws.IsClassified(err) {
			return fmt.Errorf("status refresh: %w", err)
		}
		p.logger.Warn("caller identity lookup failed", slog.Any("err", err))
		return nil
	}
	p.identity = identity
	return nil
}

// Render lays out identity, region and time left, center and right. When
// they do not fit side by side they are joined and clipped.
func (p *Panel) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	identity := p.identity
	if identity == "" {
		identity = unknownIdentity
	}
	at := ""
	if !p.at.IsZero() {
		at = p.at.Format(timeLayout)
	}

	left := "Logged in as: " + identity
	center := "Region: " + p.region
	right := "Time: " + at

	lw, cw, rw := runewidth.StringWidth(left), runewidth.StringWidth(center), runewidth.StringWidth(right)
	cpos := (width - cw) / 2

	var line string
	if lw < cpos && cpos+cw < width-rw {
		line = left +
			strings.Repeat(" ", cpos-lw) +
			center +
			strings.Repeat(" ", width-rw-cpos-cw) +
			right
	} else {
		line = shared.FitLine(strings.Join([]string{left, center, right}, "  "), width)
	}
	return shared.StatusStyle.Render(line)
}
