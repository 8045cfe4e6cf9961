// Package s3store is an S3-compatible backend (AWS S3, MinIO). Upload and
// download targets are presigned URLs; the bearer token handed around by
// the caller is only used to detect a refreshed credential.
package s3store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrijs2005/gophvault/internal/server/storage"
)

const (
	contentType   = "application/octet-stream"
	uploadExpires = 15 * time.Minute
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	presignUploadPart = func(pc *s3.PresignClient, ctx context.Context, in *s3.UploadPartInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignUploadPart(ctx, in, optFns...)
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// authCodes are error codes that mean the signing credential is no longer
// accepted.
var authCodes = map[string]bool{
	"ExpiredToken":          true,
	"TokenRefreshRequired":  true,
	"InvalidAccessKeyId":    true,
	"SignatureDoesNotMatch": true,
	"InvalidToken":          true,
}

type Config struct {
	Bucket       string
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
}

type Store struct {
	bucket  string
	creds   *aws.CredentialsCache
	client  *s3.Client
	presign *s3.PresignClient
}

var _ storage.Backend = (*Store)(nil)

func New(ctx context.Context, cfg Config) (*Store, error) {
	creds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""))

	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = true
		// retries belong to storage.Call
		o.RetryMaxAttempts = 1
	})

	return &Store{
		bucket:  cfg.Bucket,
		creds:   creds,
		client:  client,
		presign: s3.NewPresignClient(client),
	}, nil
}

// AuthorizeAccount drops the cached signing credential and loads it again.
// The access key id serves as the token.
func (s *Store) AuthorizeAccount(ctx context.Context) (string, error) {
	s.creds.Invalidate()
	c, err := s.creds.Retrieve(ctx)
	if err != nil {
		return "", fmt.Errorf("retrieve credentials: %w", err)
	}
	return c.AccessKeyID, nil
}

func (s *Store) StartLargeFile(ctx context.Context, _, name string) (storage.Object, error) {
	out, err := s.client.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return storage.Object{}, classify("start_large_file", err)
	}
	return storage.Object{ID: aws.ToString(out.UploadId), Name: name}, nil
}

func (s *Store) GetUploadTarget(ctx context.Context, _, name string) (storage.UploadTarget, error) {
	req, err := presignPutObject(s.presign, ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	}, s3.WithPresignExpires(uploadExpires))
	if err != nil {
		return storage.UploadTarget{}, classify("get_upload_url", err)
	}
	return storage.UploadTarget{URL: req.URL}, nil
}

func (s *Store) GetUploadPartTarget(ctx context.Context, _ string, obj storage.Object, partNumber int) (storage.UploadTarget, error) {
	req, err := presignUploadPart(s.presign, ctx, &s3.UploadPartInput{
		Bucket:     aws.String(s.bucket),
		Key:        aws.String(obj.Name),
		UploadId:   aws.String(obj.ID),
		PartNumber: aws.Int32(int32(partNumber)),
	}, s3.WithPresignExpires(uploadExpires))
	if err != nil {
		return storage.UploadTarget{}, classify("get_upload_part_url", err)
	}
	return storage.UploadTarget{URL: req.URL, PartNumber: partNumber}, nil
}

// FinishLargeFile completes the upload; checksums are the part ETags in
// part order.
func (s *Store) FinishLargeFile(ctx context.Context, _ string, obj storage.Object, checksums []string) error {
	parts := make([]types.CompletedPart, len(checksums))
	for i, etag := range checksums {
		parts[i] = types.CompletedPart{
			ETag:       aws.String(etag),
			PartNumber: aws.Int32(int32(i + 1)),
		}
	}

	_, err := s.client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(s.bucket),
		Key:             aws.String(obj.Name),
		UploadId:        aws.String(obj.ID),
		MultipartUpload: &types.CompletedMultipartUpload{Parts: parts},
	})
	return classify("finish_large_file", err)
}

func (s *Store) CancelLargeFile(ctx context.Context, _ string, obj storage.Object) error {
	_, err := s.client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(s.bucket),
		Key:      aws.String(obj.Name),
		UploadId: aws.String(obj.ID),
	})
	return classify("cancel_large_file", err)
}

func (s *Store) DeleteFileVersion(ctx context.Context, _ string, obj storage.Object) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(obj.Name),
	})
	return classify("delete_file_version", err)
}

// GetDownloadAuthorization presigns a GET for the object at pathPrefix.
// The presigned URL itself is the grant.
func (s *Store) GetDownloadAuthorization(ctx context.Context, _, pathPrefix string, ttl time.Duration) (string, error) {
	req, err := presignGetObject(s.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(pathPrefix),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", classify("get_download_authorization", err)
	}
	return req.URL, nil
}

func (s *Store) DownloadURL(_, grant string) string {
	return grant
}

// classify turns SDK errors into *storage.BackendError so the caller can
// tell an expired credential from other failures.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	be := &storage.BackendError{
		Op:          op,
		Code:        apiErr.ErrorCode(),
		Message:     apiErr.ErrorMessage(),
		AuthExpired: authCodes[apiErr.ErrorCode()],
	}
	// S3 wraps the transport error in its own response type, so match on
	// behaviour rather than on *awshttp.ResponseError.
	var respErr interface{ HTTPStatusCode() int }
	if errors.As(err, &respErr) {
		be.Status = respErr.HTTPStatusCode()
	}
	return be
}
