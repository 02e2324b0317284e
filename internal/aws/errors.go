package aws

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrorKind classifies a provider failure.
type ErrorKind int

const (
	// KindRejected is any other call the provider refused.
	KindRejected ErrorKind = iota
	KindUnauthorized
	KindThrottled
	KindNotFound
	KindTransient
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindThrottled:
		return "throttled"
	case KindNotFound:
		return "not found"
	case KindTransient:
		return "transient"
	default:
		return "rejected"
	}
}

// Error is a classified provider error. Panels show these in place of their
// table; anything that is not an *Error is treated as fatal by the UI.
type Error struct {
	Kind    ErrorKind
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Code != "" {
		return fmt.Sprintf("failed to %s: %s: %s", e.Op, e.Code, msg)
	}
	return fmt.Sprintf("failed to %s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsAuth reports whether the error is an authentication failure (bad or
// missing credentials) rather than a rejected call.
func (e *Error) IsAuth() bool {
	return e.Kind == KindUnauthorized
}

// AsError returns the classified error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsClassified reports whether err carries a provider classification.
func IsClassified(err error) bool {
	_, ok := AsError(err)
	return ok
}

var (
	authCodes = map[string]bool{
		"AuthFailure":                 true,
		"UnauthorizedOperation":       true,
		"AccessDenied":                true,
		"AccessDeniedException":       true,
		"InvalidClientTokenId":        true,
		"InvalidAccessKeyId":          true,
		"SignatureDoesNotMatch":       true,
		"ExpiredToken":                true,
		"ExpiredTokenException":       true,
		"UnrecognizedClientException": true,
		"InvalidToken":                true,
	}
	throttleCodes = map[string]bool{
		"Throttling":                             true,
		"ThrottlingException":                    true,
		"ThrottledException":                     true,
		"RequestLimitExceeded":                   true,
		"RequestThrottled":                       true,
		"RequestThrottledException":              true,
		"TooManyRequestsException":               true,
		"SlowDown":                               true,
		"ProvisionedThroughputExceededException": true,
	}
	notFoundCodes = map[string]bool{
		"NoSuchBucket":              true,
		"NotFound":                  true,
		"ResourceNotFoundException": true,
	}
)

// classify wraps an SDK error into an *Error. Context cancellation passes
// through untouched since it is not a provider failure.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return &Error{
			Kind:    kindForCode(code),
			Op:      op,
			Code:    code,
			Message: apiErr.ErrorMessage(),
			Err:     err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTransient, Op: op, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &Error{Kind: KindTransient, Op: op, Err: err}
	}
	if isCredentialsError(err) {
		return &Error{Kind: KindUnauthorized, Op: op, Err: err}
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}

func kindForCode(code string) ErrorKind {
	switch {
	case authCodes[code]:
		return KindUnauthorized
	case throttleCodes[code]:
		return KindThrottled
	case notFoundCodes[code], strings.HasSuffix(code, ".NotFound"), strings.HasPrefix(code, "NoSuch"):
		return KindNotFound
	default:
		return KindRejected
	}
}

// isCredentialsError matches the SDK's credential resolution failures, which
// are plain errors without an API code.
func isCredentialsError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "get credentials") ||
		strings.Contains(msg, "failed to retrieve credentials") ||
		strings.Contains(msg, "no valid credential") ||
		strings.Contains(msg, "anonymous credentials")
}
