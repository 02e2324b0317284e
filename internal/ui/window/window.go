// Package window is the dashboard's top-level bubbletea model. It owns the
// layout (status line, content pane, option bar), the modal overlay, the
// current region/service selection and the refresh schedule.
package window

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skratchdot/open-golang/open"

	"github.com/noelruault/awstop/internal/aws"
	"github.com/noelruault/awstop/internal/config"
	"github.com/noelruault/awstop/internal/logging"
	uiDialog "github.com/noelruault/awstop/internal/ui/dialog"
	uiEC2 "github.com/noelruault/awstop/internal/ui/ec2"
	uiLambda "github.com/noelruault/awstop/internal/ui/lambda"
	"github.com/noelruault/awstop/internal/ui/optionbar"
	"github.com/noelruault/awstop/internal/ui/panel"
	uiS3 "github.com/noelruault/awstop/internal/ui/s3"
	uiShared "github.com/noelruault/awstop/internal/ui/shared"
	"github.com/noelruault/awstop/internal/ui/status"
)

// Messages
type tickMsg struct{}

type refreshMsg struct {
	gen     uint64
	commits []panel.Commit
}

type consoleOpenedMsg struct {
	url string
	err error
}

// Model is the dashboard.
type Model struct {
	client aws.ResourceClient
	cfg    *config.Config
	logger *slog.Logger
	keys   KeyMap

	sel     config.Selection
	status  *status.Panel
	content panel.Content
	bar     *optionbar.Bar
	overlay uiDialog.Overlay
	showCPU bool

	width  int
	height int

	// A single refresh runs at a time. gen tags it so results that arrive
	// after the selection changed are dropped.
	gen         uint64
	inflight    bool
	pending     bool
	cancel      context.CancelFunc
	lastRefresh time.Time
	lastStart   time.Time
	interval    time.Duration

	err error

	now     func() time.Time
	openURL func(string) error
}

// Option customizes a Model.
type Option func(*Model)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock replaces time.Now for the status line.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// WithURLOpener replaces the browser launcher used for the console action.
func WithURLOpener(fn func(string) error) Option {
	return func(m *Model) {
		m.openURL = fn
	}
}

// New builds the dashboard for cfg's initial selection.
func New(client aws.ResourceClient, cfg *config.Config, opts ...Option) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Model{
		client:   client,
		cfg:      cfg,
		logger:   logging.Discard(),
		keys:     DefaultKeyMap(),
		sel:      cfg.Selection(),
		interval: cfg.RefreshInterval,
		now:      time.Now,
		openURL:  open.Run,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.status = status.New(client, m.logger)
	m.status.SetClock(m.now)
	m.content = m.newContent(m.sel.Service)

	bar, err := optionbar.New(m.options())
	if err != nil {
		return nil, err
	}
	m.bar = bar
	return m, nil
}

// Err is the fatal error that stopped the program, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) Selection() config.Selection { return m.sel }

func (m *Model) Content() panel.Content { return m.content }

func (m *Model) Overlay() uiDialog.Overlay { return m.overlay }

func (m *Model) Bar() *optionbar.Bar { return m.bar }

// LastRefresh is when the last refresh was committed.
func (m *Model) LastRefresh() time.Time { return m.lastRefresh }

func (m *Model) options() []optionbar.Option {
	cpuLabel := "Show CPU"
	if m.showCPU {
		cpuLabel = "Hide CPU"
	}
	return []optionbar.Option{
		{Label: "Help", Action: m.openHelp},
		{Label: "Region", Action: m.openRegionSelector},
		{Label: "Service", Action: m.openServiceSelector},
		{Label: "Refresh", Action: func() tea.Cmd { return nil }},
		{Label: cpuLabel, Action: m.toggleCPU},
		{Label: "Console", Action: m.openConsole},
		{Label: "Exit", Action: func() tea.Cmd { return tea.Quit }},
	}
}

func (m *Model) newContent(service config.Service) panel.Content {
	switch service {
	case config.ServiceEC2:
		p := uiEC2.New(m.client, m.logger)
		p.SetShowCPU(m.showCPU)
		return p
	case config.ServiceS3:
		return uiS3.New(m.client, m.logger)
	case config.ServiceLambda:
		return uiLambda.New(m.client, m.logger)
	default:
		return panel.NewUnsupported(service)
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.startRefresh(), m.tick())
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// requestRefresh starts a refresh, or queues one behind the refresh in
// flight. Any number of requests made meanwhile collapse into one.
func (m *Model) requestRefresh() tea.Cmd {
	if m.inflight {
		m.pending = true
		return nil
	}
	return m.startRefresh()
}

func (m *Model) startRefresh() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.inflight = true
	m.pending = false
	m.lastStart = m.now()

	gen := m.gen
	fetchers := []panel.Fetcher{
		m.status.Refresher(m.sel),
		m.content.Refresher(m.sel),
	}
	logger := m.logger
	sel := m.sel
	return func() tea.Msg {
		defer cancel()
		start := time.Now()
		commits := make([]panel.Commit, 0, len(fetchers))
		for _, fetch := range fetchers {
			commits = append(commits, fetch(ctx))
		}
		logger.Debug("refresh fetched",
			slog.String("region", sel.Region),
			slog.String("service", string(sel.Service)),
			slog.Duration("took", time.Since(start)),
		)
		return refreshMsg{gen: gen, commits: commits}
	}
}

// applySelection switches region or service. The refresh in flight is
// cancelled and its results discarded.
func (m *Model) applySelection(sel config.Selection) tea.Cmd {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.gen++
	m.inflight = false

	if sel.Service != m.sel.Service {
		m.content = m.newContent(sel.Service)
	}
	m.logger.Info("selection changed",
		slog.String("region", sel.Region),
		slog.String("service", string(sel.Service)),
	)
	m.sel = sel
	return m.startRefresh()
}

func (m *Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.logger.Error("fatal", slog.Any("err", err))
	if m.cancel != nil {
		m.cancel()
	}
	return m, tea.Quit
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if _, err := m.bar.Render(m.width); err != nil {
			return m.fail(err)
		}
		return m, nil

	case tickMsg:
		if m.now().Sub(m.lastStart) < m.interval {
			return m, m.tick()
		}
		return m, tea.Batch(m.tick(), m.requestRefresh())

	case refreshMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.inflight = false
		m.cancel = nil
		for _, commit := range msg.commits {
			if err := commit(); err != nil {
				return m.fail(err)
			}
		}
		m.lastRefresh = m.now()
		if m.pending {
			return m, m.startRefresh()
		}
		return m, nil

	case consoleOpenedMsg:
		if msg.err != nil {
			m.logger.Warn("could not open console", slog.String("url", msg.url), slog.Any("err", msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug("key", slog.String("key", msg.String()), slog.Any("model", m))
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.overlay != nil {
		sel, err := m.handleEvents(m.overlay.HandleKey(msg))
		if err != nil {
			return m.fail(err)
		}
		if sel != m.sel {
			return m, m.applySelection(sel)
		}
		return m, m.requestRefresh()
	}

	if handled, cmd := m.bar.HandleKey(msg); handled {
		if m.err != nil {
			return m.fail(m.err)
		}
		return m, tea.Batch(cmd, m.requestRefresh())
	}

	page := max(m.contentHeight()-1, 1)
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.content.ScrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.content.ScrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.content.ScrollBy(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.content.ScrollBy(page)
	case key.Matches(msg, m.keys.Home):
		m.content.ScrollBy(-m.content.RequiredHeight())
	case key.Matches(msg, m.keys.End):
		m.content.ScrollBy(m.content.RequiredHeight())
	}
	return m, nil
}

// handleEvents applies overlay events and returns the resulting selection.
func (m *Model) handleEvents(events []uiDialog.Event) (config.Selection, error) {
	sel := m.sel
	for _, ev := range events {
		switch ev := ev.(type) {
		case uiDialog.SelectedEvent:
			switch ev.Kind {
			case uiDialog.KindRegion:
				sel = sel.WithRegion(ev.Value)
			case uiDialog.KindService:
				service, err := config.ParseService(ev.Value)
				if err != nil {
					return m.sel, err
				}
				sel = sel.WithService(service)
			}
		case uiDialog.CloseEvent:
			m.overlay = nil
		}
	}
	return sel, nil
}

func (m *Model) openHelp() tea.Cmd {
	m.overlay = uiDialog.NewHelp("awstop keys", newHelpKeys(m.bar, m.keys))
	return nil
}

func (m *Model) openRegionSelector() tea.Cmd {
	regions := m.cfg.Regions
	if len(regions) == 0 {
		regions = config.DefaultRegions
	}
	s, err := uiDialog.New(uiDialog.KindRegion, "Select region", regions, m.sel.Region)
	if err != nil {
		m.err = err
		return nil
	}
	m.overlay = s
	return nil
}

func (m *Model) openServiceSelector() tea.Cmd {
	s, err := uiDialog.New(uiDialog.KindService, "Select service", config.ServiceNames(), string(m.sel.Service))
	if err != nil {
		m.err = err
		return nil
	}
	m.overlay = s
	return nil
}

func (m *Model) toggleCPU() tea.Cmd {
	m.showCPU = !m.showCPU
	if p, ok := m.content.(*uiEC2.Panel); ok {
		p.SetShowCPU(m.showCPU)
	}
	if err := m.bar.SetOptions(m.options()); err != nil {
		m.err = err
	}
	return nil
}

func (m *Model) openConsole() tea.Cmd {
	url := consoleURL(m.sel)
	openURL := m.openURL
	return func() tea.Msg {
		return consoleOpenedMsg{url: url, err: openURL(url)}
	}
}

func (m *Model) contentHeight() int {
	return max(m.height-2, 0)
}

func (m *Model) View() string {
	if m.err != nil || m.width <= 0 || m.height <= 0 {
		return ""
	}

	parts := []string{uiShared.PadLines(m.status.Render(m.width, 1), m.width, 1)}
	if h := m.contentHeight(); h > 0 {
		parts = append(parts, uiShared.PadLines(m.content.Render(m.width, h), m.width, h))
	}
	if m.height > 1 {
		bar, err := m.bar.Render(m.width)
		if err != nil {
			bar = ""
		}
		parts = append(parts, uiShared.PadLines(bar, m.width, 1))
	}
	frame := strings.Join(parts, "\n")

	if m.overlay != nil {
		w, h := m.overlay.Size()
		frame = uiShared.OverlayCenteredSized(frame, m.overlay.View(), m.width, m.height, w, h)
	}
	return frame
}

// String describes the model for debug logs.
func (m *Model) String() string {
	return fmt.Sprintf("window{region=%s service=%s gen=%d inflight=%t pending=%t}",
		m.sel.Region, m.sel.Service, m.gen, m.inflight, m.pending)
}
