package s3

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3leaps/cirrus/pkg/provider"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid minimal config",
			config:  Config{Bucket: "test-bucket"},
			wantErr: false,
		},
		{
			name:    "missing bucket",
			config:  Config{},
			wantErr: true,
		},
		{
			name:    "access key without secret",
			config:  Config{Bucket: "b", AccessKeyID: "AKIA..."},
			wantErr: true,
		},
		{
			name:    "secret without access key",
			config:  Config{Bucket: "b", SecretAccessKey: "shh"},
			wantErr: true,
		},
		{
			name:    "both credentials",
			config:  Config{Bucket: "b", AccessKeyID: "AKIA...", SecretAccessKey: "shh"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				var cfgErr *ConfigError
				assert.ErrorAs(t, err, &cfgErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTranslateError_APICodes(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		wantCode provider.ErrorCode
	}{
		{"slow down", "SlowDown", provider.ErrCodeRequestRateLimited},
		{"throttling", "Throttling", provider.ErrCodeRequestRateLimited},
		{"request limit", "RequestLimitExceeded", provider.ErrCodeRequestRateLimited},
		{"service unavailable", "ServiceUnavailable", provider.ErrCodeServiceUnavailable},
		{"internal error", "InternalError", provider.ErrCodeServiceUnavailable},
		{"access denied", "AccessDenied", provider.ErrCodePermissionFailure},
		{"forbidden", "Forbidden", provider.ErrCodePermissionFailure},
		{"invalid key", "InvalidAccessKeyId", provider.ErrCodeNotAuthenticated},
		{"bad signature", "SignatureDoesNotMatch", provider.ErrCodeNotAuthenticated},
		{"expired token", "ExpiredToken", provider.ErrCodeNotAuthenticated},
		{"no such bucket", "NoSuchBucket", provider.ErrCodeZoneNotFound},
		{"request timeout", "RequestTimeout", provider.ErrCodeNetworkFailure},
		{"not implemented", "NotImplemented", provider.ErrCodeIncompatibleVersion},
		{"unknown code passes through", "TeapotError", provider.ErrorCode("TeapotError")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &smithy.GenericAPIError{Code: tt.code, Message: "detail"}

			pe := translateError(err)

			require.NotNil(t, pe)
			assert.Equal(t, tt.wantCode, pe.Code)
			assert.Equal(t, "detail", pe.Message)
		})
	}
}

func TestTranslateError_ContextCancellation(t *testing.T) {
	pe := translateError(context.Canceled)
	assert.Equal(t, provider.ErrCodeOperationCancelled, pe.Code)

	pe = translateError(context.DeadlineExceeded)
	assert.Equal(t, provider.ErrCodeOperationCancelled, pe.Code)

	pe = translateError(&smithy.CanceledError{Err: context.Canceled})
	assert.Equal(t, provider.ErrCodeOperationCancelled, pe.Code)
}

func TestTranslateError_TransportFailures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode provider.ErrorCode
	}{
		{"dns failure", errors.New("dial tcp: lookup s3.amazonaws.com: no such host"), provider.ErrCodeNetworkUnavailable},
		{"refused", errors.New("dial tcp 127.0.0.1:9000: connection refused"), provider.ErrCodeNetworkUnavailable},
		{"reset", errors.New("read tcp: connection reset by peer"), provider.ErrCodeNetworkFailure},
		{"credentials", errors.New("failed to retrieve credentials"), provider.ErrCodeNotAuthenticated},
		{"opaque", errors.New("gremlins"), provider.ErrorCode("unknown")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := translateError(tt.err)
			assert.Equal(t, tt.wantCode, pe.Code)
		})
	}
}

func TestTranslateError_KeepsUnderlying(t *testing.T) {
	underlying := &smithy.GenericAPIError{Code: "SlowDown"}

	pe := translateError(underlying)

	assert.ErrorIs(t, pe, underlying)
}

func TestRetryAfterHint(t *testing.T) {
	respWithHeader := func(value string) error {
		h := http.Header{}
		if value != "" {
			h.Set("Retry-After", value)
		}
		return &awshttp.ResponseError{
			ResponseError: &smithyhttp.ResponseError{
				Response: &smithyhttp.Response{
					Response: &http.Response{StatusCode: 503, Header: h},
				},
				Err: &smithy.GenericAPIError{Code: "SlowDown"},
			},
		}
	}

	tests := []struct {
		name string
		err  error
		want time.Duration
	}{
		{"whole seconds", respWithHeader("5"), 5 * time.Second},
		{"fractional seconds", respWithHeader("2.3"), 2300 * time.Millisecond},
		{"missing header", respWithHeader(""), 0},
		{"unparsable", respWithHeader("Wed, 21 Oct 2026 07:28:00 GMT"), 0},
		{"negative clamped", respWithHeader("-3"), 0},
		{"no response error in chain", errors.New("plain"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retryAfterHint(tt.err))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&types.NotFound{}))
	assert.True(t, isNotFound(&types.NoSuchKey{}))
	assert.True(t, isNotFound(&smithy.GenericAPIError{Code: "NotFound"}))
	assert.True(t, isNotFound(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	assert.False(t, isNotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("plain")))
}

func TestMarkerKey(t *testing.T) {
	c := &Container{markerPrefix: "_cirrus/permissions/"}

	key := c.markerKey(provider.PermissionUserDiscoverability)

	assert.Equal(t, "_cirrus/permissions/user-discoverability", key)
}

func TestResolveRegion(t *testing.T) {
	tests := []struct {
		name      string
		endpoint  string
		sdkRegion string
		want      string
	}{
		{"sdk resolved wins", "", "eu-west-1", "eu-west-1"},
		{"aws default applied", "", "", DefaultAWSRegion},
		{"custom endpoint no default", "http://localhost:9000", "", ""},
		{"custom endpoint keeps sdk region", "http://localhost:9000", "us-west-2", "us-west-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveRegion(tt.endpoint, tt.sdkRegion))
		})
	}
}
