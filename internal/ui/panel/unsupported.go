package panel

import (
	"fmt"
	"strings"

	"github.com/noelruault/awstop/internal/config"
	"github.com/noelruault/awstop/internal/ui/shared"
)

// Unsupported stands in for a service that can be selected but has no
// listing yet. It never calls the provider.
type Unsupported struct {
	service config.Service
}

func NewUnsupported(service config.Service) *Unsupported {
	return &Unsupported{service: service}
}

func (u *Unsupported) Title() string { return string(u.service) }

func (u *Unsupported) Headers() []string { return nil }

func (u *Unsupported) State() State { return StateLoaded }

func (u *Unsupported) Err() error { return nil }

func (u *Unsupported) ScrollBy(int) {}

func (u *Unsupported) Refresher(config.Selection) Fetcher { return Noop }

func (u *Unsupported) RequiredHeight() int { return 2 }

func (u *Unsupported) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	notice := shared.WarnStyle.Render(shared.Center(u.Notice(), width))
	if height == 1 {
		return notice
	}
	return strings.Repeat(" ", width) + "\n" + notice
}

// Notice is the message shown in place of a table.
func (u *Unsupported) Notice() string {
	return fmt.Sprintf("%s is not supported yet.", u.service)
}
