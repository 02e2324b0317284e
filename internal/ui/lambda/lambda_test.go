package lambda

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

var sel = config.Selection{Region: "eu-west-1", Service: config.ServiceLambda}

func TestPanelListsFunctions(t *testing.T) {
	fake := &awstest.Fake{Functions: map[string][]aws.Function{
		"eu-west-1": {{
			Name:           "resize",
			Runtime:        "python3.12",
			CodeSize:       2048,
			MemoryMB:       128,
			TimeoutSeconds: 30,
			LastModified:   time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC),
		}},
	}}
	p := New(fake, nil)
	require.NoError(t, panel.Refresh(context.Background(), p, sel))

	assert.Equal(t, []string{"Name", "Runtime", "Size", "Memory", "Timeout", "Last Modified"}, p.Headers())
	assert.Equal(t, []string{"eu-west-1"}, fake.Regions)

	out := strings.Split(ansi.Strip(p.Render(150, 10)), "\n")
	require.Len(t, out, 2)
	for _, want := range []string{"resize", "python3.12", "2.0 kB", "128 MB", "30s", "2024-03-01 12:30:45"} {
		assert.Contains(t, out[1], want)
	}
}

func TestPanelNoFunctions(t *testing.T) {
	p := New(&awstest.Fake{}, nil)
	require.NoError(t, panel.Refresh(context.Background(), p, sel))

	out := strings.Split(ansi.Strip(p.Render(80, 10)), "\n")
	require.Len(t, out, 2)
	assert.Equal(t, Notice, strings.TrimSpace(out[1]))
}

func TestPanelShowsProviderError(t *testing.T) {
	fake := &awstest.Fake{FunctionsErr: &aws.Error{Kind: aws.KindThrottled, Op: "list functions", Code: "TooManyRequestsException", Message: "Rate exceeded"}}
	p := New(fake, nil)
	require.NoError(t, panel.Refresh(context.Background(), p, sel))

	require.Error(t, p.Err())
	out := strings.Split(ansi.Strip(p.Render(120, 10)), "\n")
	require.Len(t, out, 1)
	assert.Contains(t, out[0], "Rate exceeded")
}
