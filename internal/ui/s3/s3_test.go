package s3

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

var sel = config.Selection{Region: "us-east-1", Service: config.ServiceS3}

func TestPanelListsBuckets(t *testing.T) {
	fake := &awstest.Fake{Buckets: []aws.Bucket{
		{Name: "logs", CreationDate: time.Date(2023, 4, 5, 6, 7, 8, 0, time.UTC)},
		{Name: "assets"},
	}}
	p := New(fake, nil)
	require.NoError(t, panel.Refresh(context.Background(), p, sel))

	assert.Equal(t, []string{"Name", "Creation Date"}, p.Headers())
	assert.Equal(t, 3, p.RequiredHeight())

	out := strings.Split(ansi.Strip(p.Render(60, 10)), "\n")
	require.Len(t, out, 3)
	assert.True(t, strings.HasPrefix(out[1], "logs"))
	assert.Contains(t, out[1], "2023-04-05 06:07:08")
	assert.Equal(t, "assets", strings.TrimSpace(out[2]))
}

func TestPanelIgnoresRegion(t *testing.T) {
	fake := &awstest.Fake{Buckets: []aws.Bucket{{Name: "logs"}}}
	p := New(fake, nil)
	require.NoError(t, panel.Refresh(context.Background(), p, sel.WithRegion("eu-west-1")))
	require.NoError(t, panel.Refresh(context.Background(), p, sel.WithRegion("ap-south-1")))

	assert.Len(t, p.Records(), 1)
	assert.Empty(t, fake.Regions)
	assert.Equal(t, 2, fake.Calls("ListBuckets"))
}

func TestPanelHidesProviderErrors(t *testing.T) {
	fake := &awstest.Fake{Buckets: []aws.Bucket{{Name: "logs"}}}
	p := New(fake, nil)
	require.NoError(t, panel.Refresh(context.Background(), p, sel))

	fake.Set(func(f *awstest.Fake) {
		f.BucketsErr = &aws.Error{Kind: aws.KindUnauthorized, Op: "list buckets", Code: "AccessDenied"}
	})
	require.NoError(t, panel.Refresh(context.Background(), p, sel))

	assert.NoError(t, p.Err())
	out := strings.Split(ansi.Strip(p.Render(60, 10)), "\n")
	require.Len(t, out, 2)
	assert.Contains(t, out[1], "logs")
}

func TestPanelNoBuckets(t *testing.T) {
	p := New(&awstest.Fake{}, nil)
	require.NoError(t, panel.Refresh(context.Background(), p, sel))

	out := strings.Split(ansi.Strip(p.Render(60, 10)), "\n")
	require.Len(t, out, 2)
	assert.Equal(t, Notice, strings.TrimSpace(out[1]))
}
