package aws

import (
	"context"
	"sort"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// NamespaceEC2 is the CloudWatch namespace of instance metrics.
const NamespaceEC2 = "AWS/EC2"

// EC2 instance metric names.
const (
	MetricCPUUtilization    = "CPUUtilization"
	MetricStatusCheckFailed = "StatusCheckFailed"
	MetricDiskReadBytes     = "DiskReadBytes"
	MetricDiskWriteBytes    = "DiskWriteBytes"
	MetricNetworkIn         = "NetworkIn"
	MetricNetworkOut        = "NetworkOut"
)

const (
	// MetricPeriod is the granularity of every datapoint.
	MetricPeriod = 60 * time.Second
	// DefaultMetricWindow is the trailing window queried when none is given.
	DefaultMetricWindow = 20 * time.Minute
)

// DataPoint is a single averaged CloudWatch sample.
type DataPoint struct {
	Timestamp time.Time
	Average   float64
	Unit      string
}

// GetMetric retrieves the per-minute average of metricName for one instance
// over the trailing window, oldest sample first.
func (c *Client) GetMetric(ctx context.Context, region, namespace, instanceID, metricName string, window time.Duration) ([]DataPoint, error) {
	if window <= 0 {
		window = DefaultMetricWindow
	}
	endTime := time.Now().UTC()
	startTime := endTime.Add(-window)

	input := &cloudwatch.GetMetricStatisticsInput{
		Namespace:  sdkaws.String(namespace),
		MetricName: sdkaws.String(metricName),
		Dimensions: []cwTypes.Dimension{
			{
				Name:  sdkaws.String("InstanceId"),
				Value: sdkaws.String(instanceID),
			},
		},
		StartTime:  sdkaws.Time(startTime),
		EndTime:    sdkaws.Time(endTime),
		Period:     sdkaws.Int32(int32(MetricPeriod / time.Second)),
		Statistics: []cwTypes.Statistic{cwTypes.StatisticAverage},
	}

	result, err := c.CloudWatch.GetMetricStatistics(ctx, input, inCloudWatchRegion(region))
	if err != nil {
		return nil, classify("get metric statistics", err)
	}

	return dataPointsFromOutput(result.Datapoints), nil
}

func dataPointsFromOutput(in []cwTypes.Datapoint) []DataPoint {
	points := make([]DataPoint, 0, len(in))
	for _, dp := range in {
		if dp.Timestamp == nil {
			continue
		}
		points = append(points, DataPoint{
			Timestamp: *dp.Timestamp,
			Average:   getFloat64(dp.Average),
			Unit:      string(dp.Unit),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	return points
}

func inCloudWatchRegion(region string) func(*cloudwatch.Options) {
	return func(o *cloudwatch.Options) {
		if region != "" {
			o.Region = region
		}
	}
}
