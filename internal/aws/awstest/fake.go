// Package awstest provides an in-memory aws.ResourceClient for UI tests.
package awstest

import (
	"context"
	"sync"
	"time"

	"github.com/noelruault/awstop/internal/aws"
)

// Fake returns canned data per region. Zero value is usable and empty.
type Fake struct {
	mu sync.Mutex

	Instances map[string][]aws.Instance
	Buckets   []aws.Bucket
	Functions map[string][]aws.Function
	Metrics   map[string][]aws.DataPoint
	Identity  string

	InstancesErr error
	BucketsErr   error
	FunctionsErr error
	MetricErr    error
	IdentityErr  error

	calls map[string]int
	// Regions records the region of every regional call, in order.
	Regions []string
}

var _ aws.ResourceClient = (*Fake)(nil)

func (f *Fake) record(op, region string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[op]++
	if region != "" {
		f.Regions = append(f.Regions, region)
	}
}

// Calls reports how many times op was invoked. Ops are named after the
// interface methods.
func (f *Fake) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// Set runs fn with the fake locked, for tests that change data between
// refreshes.
func (f *Fake) Set(fn func(f *Fake)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *Fake) ListInstances(ctx context.Context, region string) ([]aws.Instance, error) {
	f.record("ListInstances", region)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InstancesErr != nil {
		return nil, f.InstancesErr
	}
	return append([]aws.Instance{}, f.Instances[region]...), nil
}

func (f *Fake) ListBuckets(ctx context.Context) ([]aws.Bucket, error) {
	f.record("ListBuckets", "")
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.BucketsErr != nil {
		return nil, f.BucketsErr
	}
	return append([]aws.Bucket{}, f.Buckets...), nil
}

func (f *Fake) ListFunctions(ctx context.Context, region string) ([]aws.Function, error) {
	f.record("ListFunctions", region)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FunctionsErr != nil {
		return nil, f.FunctionsErr
	}
	return append([]aws.Function{}, f.Functions[region]...), nil
}

func (f *Fake) GetMetric(ctx context.Context, region, _, instanceID, _ string, _ time.Duration) ([]aws.DataPoint, error) {
	f.record("GetMetric", region)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.MetricErr != nil {
		return nil, f.MetricErr
	}
	return append([]aws.DataPoint{}, f.Metrics[instanceID]...), nil
}

func (f *Fake) CallerIdentity(ctx context.Context) (string, error) {
	f.record("CallerIdentity", "")
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.IdentityErr != nil {
		return "", f.IdentityErr
	}
	return f.Identity, nil
}
