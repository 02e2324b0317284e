package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Bucket represents an S3 bucket with relevant information
type Bucket struct {
	Name         string
	CreationDate time.Time
}

// ListBuckets retrieves the S3 buckets of the account. Buckets are global,
// so the call is not region scoped.
func (c *Client) ListBuckets(ctx context.Context) ([]Bucket, error) {
	input := &s3.ListBucketsInput{}
	result, err := c.S3.ListBuckets(ctx, input)
	if err != nil {
		return nil, classify("list buckets", err)
	}

	return bucketsFromOutput(result.Buckets), nil
}

func bucketsFromOutput(in []types.Bucket) []Bucket {
	buckets := []Bucket{}
	for _, bucket := range in {
		b := Bucket{
			Name: getString(bucket.Name),
		}
		if bucket.CreationDate != nil {
			b.CreationDate = *bucket.CreationDate
		}
		buckets = append(buckets, b)
	}
	return buckets
}
