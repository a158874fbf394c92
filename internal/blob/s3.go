// Package blob hands out presigned object-storage URLs for translated-file
// payloads, so artifact records can carry a storage key instead of inline
// content.
package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Seams for tests.
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
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Config carries the S3-compatible backend settings.
type Config struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
	BaseEndpoint string
}

type Presigner struct {
	cfg Config
}

func NewPresigner(cfg Config) *Presigner {
	return &Presigner{cfg: cfg}
}

// Enabled reports whether a backend is configured. When false, artifacts
// carry inline content instead of storage keys.
func (p *Presigner) Enabled() bool {
	return p.cfg.BaseEndpoint != ""
}

// RandomStorageKey partitions uploads by date to keep bucket listings sane.
func RandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("artifacts/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (p *Presigner) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(p.cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.cfg.RootUser,
			p.cfg.RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(p.cfg.BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// PresignPut returns a fresh storage key together with a URL the admin UI
// can PUT the translated file to.
func (p *Presigner) PresignPut(ctx context.Context) (string, string, error) {
	presignClient, err := p.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := p.cfg.Bucket
	key := RandomStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PresignGet resolves an artifact's storage key to a download URL.
func (p *Presigner) PresignGet(ctx context.Context, key string) (string, error) {
	presignClient, err := p.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := p.cfg.Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
