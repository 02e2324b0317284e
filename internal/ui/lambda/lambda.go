package lambda

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/noelruault/awstop/internal/aws"
	"github.com/noelruault/awstop/internal/config"
	"github.com/noelruault/awstop/internal/ui/panel"
)

const (
	Title  = "Lambda"
	Notice = "No available Lambda functions in this region."

	modifiedLayout = "2006-01-02 15:04:05"
)

// Panel lists the functions of the selected region.
type Panel struct {
	*panel.Table[aws.Function]
}

var _ panel.Content = (*Panel)(nil)

func New(client aws.ResourceClient, logger *slog.Logger) *Panel {
	load := func(ctx context.Context, sel config.Selection) ([]aws.Function, error) {
		return client.ListFunctions(ctx, sel.Region)
	}
	return &Panel{
		Table: panel.NewTable(Title, columns(), Notice, load, panel.WithLogger(logger)),
	}
}

func columns() []panel.Column[aws.Function] {
	return []panel.Column[aws.Function]{
		{Header: "Name", Value: func(f aws.Function) string { return f.Name }},
		{Header: "Runtime", Value: func(f aws.Function) string { return f.Runtime }},
		{Header: "Size", Value: func(f aws.Function) string { return humanize.Bytes(uint64(max(f.CodeSize, 0))) }},
		{Header: "Memory", Value: func(f aws.Function) string { return fmt.Sprintf("%d MB", f.MemoryMB) }},
		{Header: "Timeout", Value: func(f aws.Function) string { return fmt.Sprintf("%ds", f.TimeoutSeconds) }},
		{Header: "Last Modified", Value: lastModified},
	}
}

func lastModified(f aws.Function) string {
	if f.LastModified.IsZero() {
		return ""
	}
	return f.LastModified.Format(modifiedLayout)
}
