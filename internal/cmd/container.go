package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/3leaps/cirrus/internal/config"
	"github.com/3leaps/cirrus/pkg/provider"
	"github.com/3leaps/cirrus/pkg/provider/s3"
)

// Provider connection flags shared by the account and discover commands.
var (
	connBucket    string
	connRegion    string
	connProfile   string
	connEndpoint  string
	connPathStyle bool
)

func addConnectionFlags(cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.Flags().StringVarP(&connBucket, "bucket", "b", "", "S3 bucket to probe (overrides config)")
		c.Flags().StringVarP(&connRegion, "region", "r", "", "AWS region")
		c.Flags().StringVarP(&connProfile, "profile", "p", "", "AWS profile")
		c.Flags().StringVar(&connEndpoint, "endpoint", "", "Custom S3 endpoint")
		c.Flags().BoolVar(&connPathStyle, "path-style", false, "Force path-style URLs (S3-compatible stores)")
	}
}

// newContainer builds the S3 container from config overlaid with flags.
func newContainer(ctx context.Context) (provider.Container, *config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	s3cfg := s3.Config{
		Bucket:          cfg.Provider.Bucket,
		Region:          cfg.Provider.Region,
		Endpoint:        cfg.Provider.Endpoint,
		Profile:         cfg.Provider.Profile,
		AccessKeyID:     cfg.Provider.AccessKeyID,
		SecretAccessKey: cfg.Provider.SecretAccessKey,
		ForcePathStyle:  cfg.Provider.ForcePathStyle,
		MarkerPrefix:    cfg.Provider.MarkerPrefix,
	}
	if connBucket != "" {
		s3cfg.Bucket = connBucket
	}
	if connRegion != "" {
		s3cfg.Region = connRegion
	}
	if connProfile != "" {
		s3cfg.Profile = connProfile
	}
	if connEndpoint != "" {
		s3cfg.Endpoint = connEndpoint
	}
	if connPathStyle {
		s3cfg.ForcePathStyle = true
	}

	cont, err := s3.New(ctx, s3cfg)
	if err != nil {
		return nil, nil, err
	}
	return cont, cfg, nil
}
