// Package storage wraps S3 for image uploads. The API never proxies file
// bytes: clients receive a presigned PUT URL and upload directly.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type Service struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	baseURL   string
}

type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	BaseURL         string // optional CDN/front; defaults to the bucket URL
}

// PresignedUpload is handed to the client for a direct PUT.
type PresignedUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	ExpiresIn int    `json:"expires_in"`
}

func New(ctx context.Context, cfg Config) (*Service, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &Service{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// PresignUpload creates a PUT URL for a new object under folder. The key is
// date-partitioned with a uuid so concurrent uploads never collide.
func (s *Service) PresignUpload(ctx context.Context, folder, contentType, extension string) (*PresignedUpload, error) {
	const expiry = 15 * time.Minute

	key := fmt.Sprintf("%s/%s/%s.%s",
		folder, time.Now().UTC().Format("2006/01/02"), uuid.NewString(), strings.TrimPrefix(extension, "."))

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return nil, err
	}

	return &PresignedUpload{
		Key:       key,
		UploadURL: req.URL,
		PublicURL: s.baseURL + "/" + key,
		ExpiresIn: int(expiry.Seconds()),
	}, nil
}

// Delete removes an object given its public URL. URLs outside our bucket
// are rejected so a caller cannot aim the API at arbitrary objects.
func (s *Service) Delete(ctx context.Context, publicURL string) error {
	if !strings.HasPrefix(publicURL, s.baseURL+"/") {
		return fmt.Errorf("url does not belong to this bucket")
	}
	key := strings.TrimPrefix(publicURL, s.baseURL+"/")

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
