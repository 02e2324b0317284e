package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdaTypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// lambdaTimeLayout is the format Lambda uses for LastModified,
// e.g. 2024-03-01T12:30:45.123+0000.
const lambdaTimeLayout = "2006-01-02T15:04:05.000-0700"

// Function represents a Lambda function configuration
type Function struct {
	Name           string
	Runtime        string
	CodeSize       int64 // bytes
	MemoryMB       int32
	TimeoutSeconds int32
	LastModified   time.Time
}

// ListFunctions retrieves the first ListFunctions page in region.
func (c *Client) ListFunctions(ctx context.Context, region string) ([]Function, error) {
	input := &lambda.ListFunctionsInput{}
	result, err := c.Lambda.ListFunctions(ctx, input, inLambdaRegion(region))
	if err != nil {
		return nil, classify("list functions", err)
	}

	return functionsFromOutput(result.Functions), nil
}

func functionsFromOutput(in []lambdaTypes.FunctionConfiguration) []Function {
	functions := []Function{}
	for _, fn := range in {
		functions = append(functions, Function{
			Name:           getString(fn.FunctionName),
			Runtime:        string(fn.Runtime),
			CodeSize:       fn.CodeSize,
			MemoryMB:       getInt32(fn.MemorySize),
			TimeoutSeconds: getInt32(fn.Timeout),
			LastModified:   parseLambdaTime(getString(fn.LastModified)),
		})
	}
	return functions
}

// parseLambdaTime returns the zero time when the value cannot be parsed.
func parseLambdaTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(lambdaTimeLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

func inLambdaRegion(region string) func(*lambda.Options) {
	return func(o *lambda.Options) {
		if region != "" {
			o.Region = region
		}
	}
}
