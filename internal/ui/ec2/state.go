package ec2

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/noelruault/awstop/internal/aws"
	"github.com/noelruault/awstop/internal/config"
	"github.com/noelruault/awstop/internal/logging"
	"github.com/noelruault/awstop/internal/ui/panel"
)

const (
	Title  = "EC2"
	Notice = "No available EC2 instances in this region."

	metricTTL = 60 * time.Second
)

// Row is an instance plus its recent CPU samples, oldest first. CPU is only
// filled while the CPU column is shown.
type Row struct {
	aws.Instance
	CPU []float64
}

// Panel lists the instances of the selected region.
type Panel struct {
	*panel.Table[Row]

	client  aws.ResourceClient
	logger  *slog.Logger
	metrics *metricCache
	showCPU bool
}

var _ panel.Content = (*Panel)(nil)

func New(client aws.ResourceClient, logger *slog.Logger) *Panel {
	if logger == nil {
		logger = logging.Discard()
	}
	p := &Panel{
		client:  client,
		logger:  logger,
		metrics: newMetricCache(metricTTL, time.Now),
	}
	p.Table = panel.NewTable[Row](Title, columns(false), Notice, nil, panel.WithLogger(logger))
	return p
}

// ShowCPU reports whether the CPU column is on.
func (p *Panel) ShowCPU() bool { return p.showCPU }

// SetShowCPU toggles the CPU column. Samples appear on the next refresh.
func (p *Panel) SetShowCPU(on bool) {
	p.showCPU = on
	p.SetColumns(columns(on))
}

// Refresher snapshots the CPU toggle so a refresh in flight keeps the
// column set it started with.
func (p *Panel) Refresher(sel config.Selection) panel.Fetcher {
	showCPU := p.showCPU
	return p.FetcherFor(func(ctx context.Context) ([]Row, error) {
		return p.loadRows(ctx, sel.Region, showCPU)
	})
}

func (p *Panel) loadRows(ctx context.Context, region string, withCPU bool) ([]Row, error) {
	instances, err := p.client.ListInstances(ctx, region)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(instances))
	for i, inst := range instances {
		rows[i] = Row{Instance: inst}
		if !withCPU || inst.State != aws.StateRunning {
			continue
		}
		samples, err := p.metrics.get(ctx, p.client, region, inst.ID)
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		if err != nil {
			p.logger.Debug("cpu metrics unavailable",
				slog.String("instance", inst.ID),
				slog.Any("err", err),
			)
			continue
		}
		rows[i].CPU = samples
	}
	return rows, nil
}

type metricEntry struct {
	samples []float64
	fetched time.Time
}

// metricCache keeps per-instance CPU samples for ttl to bound CloudWatch
// calls to one per instance per minute.
type metricCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]metricEntry
}

func newMetricCache(ttl time.Duration, now func() time.Time) *metricCache {
	return &metricCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]metricEntry),
	}
}

func (c *metricCache) get(ctx context.Context, client aws.ResourceClient, region, instanceID string) ([]float64, error) {
	key := region + "/" + instanceID

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok && c.now().Sub(entry.fetched) < c.ttl {
		return entry.samples, nil
	}

	points, err := client.GetMetric(ctx, region, aws.NamespaceEC2, instanceID, aws.MetricCPUUtilization, aws.DefaultMetricWindow)
	if err != nil {
		return nil, err
	}
	samples := make([]float64, len(points))
	for i, dp := range points {
		samples[i] = dp.Average
	}

	c.mu.Lock()
	c.entries[key] = metricEntry{samples: samples, fetched: c.now()}
	c.mu.Unlock()
	return samples, nil
}
