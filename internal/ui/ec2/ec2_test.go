package ec2

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noelruault/awstop/internal/aws"
	"github.com/noelruault/awstop/internal/aws/awstest"
	"github.com/noelruault/awstop/internal/config"
	"github.com/noelruault/awstop/internal/ui/panel"
)

var sel = config.Selection{Region: "eu-west-1", Service: config.ServiceEC2}

func fixture() *awstest.Fake {
	return &awstest.Fake{
		Instances: map[string][]aws.Instance{
			"eu-west-1": {
				{ID: "i-001", Name: "web", State: aws.StateRunning, InstanceType: "t3.micro", AZ: "eu-west-1a"},
				{ID: "i-002", State: aws.StateStopped, InstanceType: "t3.small", AZ: "eu-west-1b"},
				{ID: "i-003", Name: "db", State: aws.StateRunning, InstanceType: "m5.large", AZ: "eu-west-1c"},
			},
		},
		Metrics: map[string][]aws.DataPoint{
			"i-001": {{Average: 0}, {Average: 50}, {Average: 100}},
		},
	}
}

func renderLines(p *Panel, w, h int) []string {
	return strings.Split(ansi.Strip(p.Render(w, h)), "\n")
}

func TestPanelListsInstances(t *testing.T) {
	p := New(fixture(), nil)
	require.NoError(t, panel.Refresh(context.Background(), p, sel))

	assert.Equal(t, 4, p.RequiredHeight())
	assert.Equal(t, []string{"ID", "Name", "State", "Type", "AZ"}, p.Headers())

	out := renderLines(p, 100, 10)
	require.Len(t, out, 4)
	assert.True(t, strings.HasPrefix(out[1], "i-001"))
	assert.True(t, strings.HasPrefix(out[2], "i-002"))
	assert.True(t, strings.HasPrefix(out[3], "i-003"))
	assert.Contains(t, out[2], missingName)
	assert.Contains(t, out[1], "running")
}

func TestPanelEmptyRegion(t *testing.T) {
	fake := fixture()
	p := New(fake, nil)
	require.NoError(t, panel.Refresh(context.Background(), p, sel.WithRegion("ap-south-1")))

	assert.Equal(t, 2, p.RequiredHeight())
	out := renderLines(p, 100, 10)
	require.Len(t, out, 2)
	assert.Equal(t, Notice, strings.TrimSpace(out[1]))
	assert.Equal(t, []string{"ap-south-1"}, fake.Regions)
}

func TestPanelKeepsRowsOnProviderError(t *testing.T) {
	fake := fixture()
	p := New(fake, nil)
	require.NoError(t, panel.Refresh(context.Background(), p, sel))

	fake.Set(func(f *awstest.Fake) {
		f.InstancesErr = &aws.Error{Kind: aws.KindUnauthorized, Op: "describe instances", Code: "AuthFailure", Message: "bad key"}
	})
	require.NoError(t, panel.Refresh(context.Background(), p, sel))

	assert.Len(t, p.Records(), 3)
	out := renderLines(p, 100, 10)
	require.Len(t, out, 1)
	assert.Contains(t, out[0], "AuthFailure")
}

func TestPanelCPUColumn(t *testing.T) {
	fake := fixture()
	p := New(fake, nil)
	p.SetShowCPU(true)
	require.NoError(t, panel.Refresh(context.Background(), p, sel))

	assert.True(t, p.ShowCPU())
	assert.Equal(t, "CPU", p.Headers()[len(p.Headers())-1])

	rows := p.Records()
	assert.Equal(t, []float64{0, 50, 100}, rows[0].CPU)
	assert.Nil(t, rows[1].CPU, "stopped instances are not queried")
	assert.Equal(t, 2, fake.Calls("GetMetric"))

	out := renderLines(p, 120, 10)
	assert.Contains(t, out[1], "▁▄█")

	p.SetShowCPU(false)
	assert.Len(t, p.Headers(), 5)
}

func TestPanelCPUSnapshot(t *testing.T) {
	fake := fixture()
	p := New(fake, nil)

	fetch := p.Refresher(sel)
	p.SetShowCPU(true)
	require.NoError(t, fetch(context.Background())())

	assert.Equal(t, 0, fake.Calls("GetMetric"))
}

func TestPanelMetricErrorsDoNotFailList(t *testing.T) {
	fake := fixture()
	fake.MetricErr = &aws.Error{Kind: aws.KindThrottled, Op: "get metric statistics", Code: "Throttling"}
	p := New(fake, nil)
	p.SetShowCPU(true)

	require.NoError(t, panel.Refresh(context.Background(), p, sel))
	assert.NoError(t, p.Err())
	assert.Len(t, p.Records(), 3)
}

func TestMetricCacheTTL(t *testing.T) {
	fake := fixture()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := newMetricCache(time.Minute, func() time.Time { return now })

	_, err := cache.get(context.Background(), fake, "eu-west-1", "i-001")
	require.NoError(t, err)
	_, err = cache.get(context.Background(), fake, "eu-west-1", "i-001")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.Calls("GetMetric"))

	now = now.Add(2 * time.Minute)
	_, err = cache.get(context.Background(), fake, "eu-west-1", "i-001")
	require.NoError(t, err)
	assert.Equal(t, 2, fake.Calls("GetMetric"))
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		samples []float64
		width   int
		want    string
	}{
		{nil, 5, ""},
		{[]float64{0, 100}, 5, "▁█"},
		{[]float64{-5, 150}, 5, "▁█"},
		{[]float64{0, 0, 0, 100}, 2, "▁█"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sparkline(tt.samples, tt.width))
	}
}
