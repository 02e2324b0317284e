package window

import (
	"fmt"

	"github.com/noelruault/awstop/internal/config"
)

// consoleURL is the web console page for what the dashboard is showing.
func consoleURL(sel config.Selection) string {
	r := sel.Region
	switch sel.Service {
	case config.ServiceEC2:
		return fmt.Sprintf("https://%s.console.aws.amazon.com/ec2/home?region=%s#Instances:", r, r)
	case config.ServiceS3:
		return fmt.Sprintf("https://s3.console.aws.amazon.com/s3/buckets?region=%s", r)
	case config.ServiceLambda:
		return fmt.Sprintf("https://%s.console.aws.amazon.com/lambda/home?region=%s#/functions", r, r)
	case config.ServiceDynamoDB:
		return fmt.Sprintf("https://%s.console.aws.amazon.com/dynamodbv2/home?region=%s#tables", r, r)
	default:
		return fmt.Sprintf("https://%s.console.aws.amazon.com/console/home?region=%s", r, r)
	}
}
