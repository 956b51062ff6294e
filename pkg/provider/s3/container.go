package s3

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/3leaps/cirrus/pkg/provider"
)

// stateMetadataKey is the user-metadata key on permission markers
// recording the grant decision.
const stateMetadataKey = "state"

// Container implements provider.Container against AWS S3 and
// S3-compatible storage.
//
// The bucket stands in for the user's account zone: HeadBucket probes
// account state, and permission decisions live as marker objects under
// the configured prefix. S3 has no user-facing grant prompt, so
// RequestPermission records the grant directly.
type Container struct {
	client       *s3.Client
	bucket       string
	markerPrefix string
}

var _ provider.Container = (*Container)(nil)

// New creates an S3 container with the given configuration.
//
// The container uses AWS SDK v2's default credential chain unless
// explicit credentials are provided in the config.
func New(ctx context.Context, cfg Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s3Opts := []func(*s3.Options){
		func(o *s3.Options) {
			if cfg.ForcePathStyle {
				o.UsePathStyle = true
			}
		},
	}

	// Custom endpoint for S3-compatible stores
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	prefix := cfg.MarkerPrefix
	if prefix == "" {
		prefix = DefaultMarkerPrefix
	}

	return &Container{
		client:       s3.NewFromConfig(awsCfg, s3Opts...),
		bucket:       cfg.Bucket,
		markerPrefix: prefix,
	}, nil
}

// loadAWSConfig builds the AWS configuration with appropriate credentials.
func loadAWSConfig(ctx context.Context, cfg Config) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error

	// Only apply explicit region if user set one in config.
	// Let SDK resolve from env/profile first.
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		staticCreds := credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"", // session token (empty for long-term credentials)
		)
		opts = append(opts, config.WithCredentialsProvider(staticCreds))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, err
	}

	awsCfg.Region = resolveRegion(cfg.Endpoint, awsCfg.Region)

	return awsCfg, nil
}

// AccountStatus probes the account state with a HeadBucket call.
func (c *Container) AccountStatus(ctx context.Context) (provider.AccountStatusCode, error) {
	_, err := c.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err == nil {
		return provider.AccountAvailable, nil
	}

	pe := translateError(err)
	switch pe.Code {
	case provider.ErrCodePermissionFailure:
		// Credentials exist but bucket access is blocked.
		return provider.AccountRestricted, nil
	case provider.ErrCodeNotAuthenticated:
		return provider.AccountNoAccount, nil
	default:
		return provider.AccountCouldNotDetermine, pe
	}
}

// PermissionStatus reads the permission marker without writing anything.
func (c *Container) PermissionStatus(ctx context.Context, perm provider.Permission) (provider.PermissionStatusCode, error) {
	out, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(c.markerKey(perm)),
	})
	if err != nil {
		if isNotFound(err) {
			// No marker yet: the user has not decided.
			return provider.PermissionInitial, nil
		}
		return provider.PermissionCouldNotComplete, translateError(err)
	}

	if out.Metadata[stateMetadataKey] == string(provider.PermissionDenied) {
		return provider.PermissionDenied, nil
	}
	return provider.PermissionGranted, nil
}

// RequestPermission records a grant marker for the permission.
//
// There is no OS prompt to surface on this backend; the request is the
// grant. Callers wanting a denial recorded instead should write their
// own marker out of band.
func (c *Container) RequestPermission(ctx context.Context, perm provider.Permission) (provider.PermissionStatusCode, error) {
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(c.markerKey(perm)),
		Metadata: map[string]string{
			stateMetadataKey: string(provider.PermissionGranted),
		},
	})
	if err != nil {
		return provider.PermissionCouldNotComplete, translateError(err)
	}
	return provider.PermissionGranted, nil
}

func (c *Container) markerKey(perm provider.Permission) string {
	return c.markerPrefix + perm.String()
}

// isNotFound reports whether err is an S3 missing-object error.
func isNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}
	return false
}

// translateError converts SDK and transport errors to raw provider
// errors. Codes this adapter does not recognize pass through untouched
// so the upstream classifier can report them as unexpected.
func translateError(err error) *provider.Error {
	pe := &provider.Error{
		Code:       provider.ErrorCode("unknown"),
		Message:    err.Error(),
		RetryAfter: retryAfterHint(err),
		Err:        err,
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		pe.Code = provider.ErrCodeOperationCancelled
		return pe
	}

	var canceled *smithy.CanceledError
	if errors.As(err, &canceled) {
		pe.Code = provider.ErrCodeOperationCancelled
		return pe
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		pe.Message = apiErr.ErrorMessage()
		switch code := apiErr.ErrorCode(); code {
		case "SlowDown", "Throttling", "ThrottlingException", "RequestLimitExceeded", "TooManyRequests":
			pe.Code = provider.ErrCodeRequestRateLimited
		case "ServiceUnavailable", "InternalError":
			pe.Code = provider.ErrCodeServiceUnavailable
		case "AccessDenied", "Forbidden":
			pe.Code = provider.ErrCodePermissionFailure
		case "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken", "InvalidToken":
			pe.Code = provider.ErrCodeNotAuthenticated
		case "NoSuchBucket":
			pe.Code = provider.ErrCodeZoneNotFound
		case "RequestTimeout", "RequestTimeoutException":
			pe.Code = provider.ErrCodeNetworkFailure
		case "NotImplemented":
			pe.Code = provider.ErrCodeIncompatibleVersion
		default:
			pe.Code = provider.ErrorCode(code)
		}
		return pe
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			pe.Code = provider.ErrCodeNetworkFailure
		} else {
			pe.Code = provider.ErrCodeNetworkUnavailable
		}
		return pe
	}

	// Fallback: sniff the message for common transport failures.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such host"), strings.Contains(msg, "connection refused"):
		pe.Code = provider.ErrCodeNetworkUnavailable
	case strings.Contains(msg, "connection reset"), strings.Contains(msg, "broken pipe"):
		pe.Code = provider.ErrCodeNetworkFailure
	case strings.Contains(msg, "failed to retrieve credentials"), strings.Contains(msg, "no EC2 IMDS role found"):
		pe.Code = provider.ErrCodeNotAuthenticated
	}

	return pe
}

// retryAfterHint reads the Retry-After header from the HTTP response in
// err's chain, if one is present. Supports both delta-seconds values and
// fractional seconds some S3-compatible stores emit.
func retryAfterHint(err error) time.Duration {
	var respErr *awshttp.ResponseError
	if !errors.As(err, &respErr) || respErr.Response == nil {
		return 0
	}

	raw := respErr.Response.Header.Get("Retry-After")
	if raw == "" {
		return 0
	}

	secs, perr := strconv.ParseFloat(raw, 64)
	if perr != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// resolveRegion applies the fallback default after SDK config loading.
//
// The SDK has already resolved explicit config, environment, and profile
// regions by this point. Only AWS S3 proper (no custom endpoint) gets a
// default; S3-compatible stores may not need a region at all.
func resolveRegion(endpoint, sdkRegion string) string {
	if sdkRegion != "" {
		return sdkRegion
	}
	if endpoint == "" {
		return DefaultAWSRegion
	}
	return ""
}
