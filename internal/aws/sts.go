package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// CallerIdentity returns the ARN of the principal the client signs as.
func (c *Client) CallerIdentity(ctx context.Context) (string, error) {
	result, err := c.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", classify("get caller identity", err)
	}
	return getString(result.Arn), nil
}
