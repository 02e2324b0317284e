package aws

import (
	"testing"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

func TestDataPointsFromOutputSortsByTime(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	points := dataPointsFromOutput([]cwTypes.Datapoint{
		{Timestamp: sdkaws.Time(base.Add(2 * time.Minute)), Average: sdkaws.Float64(30), Unit: cwTypes.StandardUnitPercent},
		{Timestamp: sdkaws.Time(base), Average: sdkaws.Float64(10)},
		{Average: sdkaws.Float64(99)},
		{Timestamp: sdkaws.Time(base.Add(time.Minute))},
	})

	if len(points) != 3 {
		t.Fatalf("Expected datapoints without timestamp to be dropped, got %d", len(points))
	}
	wantAverages := []float64{10, 0, 30}
	for i, want := range wantAverages {
		if points[i].Average != want {
			t.Errorf("points[%d].Average = %v, want %v", i, points[i].Average, want)
		}
	}
	if points[2].Unit != "Percent" {
		t.Errorf("Expected unit Percent, got %s", points[2].Unit)
	}
}
