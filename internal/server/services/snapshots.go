package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/studenthub/internal/common"
	"github.com/dmitrijs2005/studenthub/internal/server/config"
	"github.com/google/uuid"
)

const presignExpiry = 15 * time.Minute

// AWS seams, swapped in tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// SnapshotService hands out presigned S3 PUT URLs under which clients
// upload JSON exports of their records.
type SnapshotService struct {
	config *config.Config
	now    func() time.Time
}

func NewSnapshotService(cfg *config.Config) *SnapshotService {
	return &SnapshotService{config: cfg, now: time.Now}
}

// SnapshotKey builds snapshots/<owner>/<yyyy>/<mm>/<dd>/<uuid>.json.
func SnapshotKey(ownerID string, at time.Time) string {
	return fmt.Sprintf("snapshots/%s/%04d/%02d/%02d/%s.json", ownerID, at.Year(), at.Month(), at.Day(), uuid.New())
}

func (s *SnapshotService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignPut returns a fresh object key for the owner and a URL valid for
// one upload.
func (s *SnapshotService) PresignPut(ctx context.Context, ownerID string) (key string, url string, err error) {
	if ownerID == "" {
		return "", "", fmt.Errorf("%w: owner id is empty", common.ErrInvalidRecord)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key = SnapshotKey(ownerID, s.now().UTC())

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String("application/json"),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}
