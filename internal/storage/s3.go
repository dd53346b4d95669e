// Package storage persists report snapshots to S3 for the dashboard
// to consume. Write-only: this job never reads snapshots back.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdkconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/avisia/analytics-agent/internal/config"
	"github.com/avisia/analytics-agent/internal/pkg/logger"
	"github.com/avisia/analytics-agent/internal/report"
)

// StoredReport is the JSON document written per reporting period.
type StoredReport struct {
	PropertyID       string                 `json:"property_id"`
	PeriodStart      string                 `json:"period_start"`
	PeriodEnd        string                 `json:"period_end"`
	GeneratedAt      time.Time              `json:"generated_at"`
	RunID            string                 `json:"run_id"`
	TotalSessions    int                    `json:"total_sessions"`
	TotalConversions int                    `json:"total_conversions"`
	TotalRevenue     float64                `json:"total_revenue"`
	Channels         []report.ChannelMetric `json:"channels"`
	EmailFocus       *report.ChannelMetric  `json:"email_focus,omitempty"`
	SocialFocus      *report.ChannelMetric  `json:"social_focus,omitempty"`
	AIInsights       string                 `json:"ai_insights"`
}

// Store writes snapshots to one S3 bucket under a fixed prefix.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewStore creates an S3 snapshot store and probes bucket access. A
// failed probe only warns: the bucket may be created later and a
// storage failure is non-fatal to the job anyway.
func NewStore(ctx context.Context, cfg appconfig.StorageConfig) (*Store, error) {
	awsCfg, err := sdkconfig.LoadDefaultConfig(ctx,
		sdkconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)

	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(cfg.Bucket)}); err != nil {
		logger.Warn("snapshot bucket access check failed", "bucket", cfg.Bucket, "error", err)
	}

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// ObjectKey builds the snapshot key for a reporting period:
// <prefix>/report_<start>_to_<end>.json. Re-running the job for the
// same period overwrites the same object.
func ObjectKey(prefix string, period report.Period) string {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return fmt.Sprintf("report_%s_to_%s.json", period.Start, period.End)
	}
	return fmt.Sprintf("%s/report_%s_to_%s.json", prefix, period.Start, period.End)
}

// Save uploads one snapshot document and returns the object key it was
// written under.
func (s *Store) Save(ctx context.Context, rep StoredReport) (string, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing snapshot: %w", err)
	}

	key := ObjectKey(s.prefix, report.Period{Start: rep.PeriodStart, End: rep.PeriodEnd})

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("uploading snapshot %s: %w", key, err)
	}

	logger.Info("snapshot saved", "bucket", s.bucket, "key", key, "bytes", len(data))
	return key, nil
}
