package s3

import (
	"context"
	"log/slog"

	"github.com/noelruault/awstop/internal/aws"
	"github.com/noelruault/awstop/internal/config"
	"github.com/noelruault/awstop/internal/ui/panel"
)

const (
	Title  = "S3"
	Notice = "No available S3 buckets."
)

// Panel lists the account's buckets. Bucket listing is global, so the
// selected region does not change its contents.
//
// Provider errors are logged rather than shown: a failing refresh leaves
// the last listing on screen.
type Panel struct {
	*panel.Table[aws.Bucket]
}

var _ panel.Content = (*Panel)(nil)

func New(client aws.ResourceClient, logger *slog.Logger) *Panel {
	load := func(ctx context.Context, _ config.Selection) ([]aws.Bucket, error) {
		return client.ListBuckets(ctx)
	}
	return &Panel{
		Table: panel.NewTable(Title, columns(), Notice, load,
			panel.WithLogger(logger),
			panel.WithoutErrorDisplay(),
		),
	}
}
