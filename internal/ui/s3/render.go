package s3

import (
	"github.com/noelruault/awstop/internal/aws"
	"github.com/noelruault/awstop/internal/ui/panel"
)

const creationLayout = "2006-01-02 15:04:05"

func columns() []panel.Column[aws.Bucket] {
	return []panel.Column[aws.Bucket]{
		{Header: "Name", Value: func(b aws.Bucket) string { return b.Name }},
		{Header: "Creation Date", Value: creationDate},
	}
}

func creationDate(b aws.Bucket) string {
	if b.CreationDate.IsZero() {
		return ""
	}
	return b.CreationDate.Format(creationLayout)
}
