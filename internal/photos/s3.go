// Package photos stores senior photos in an S3-compatible bucket and hands
// out short-lived links to them.
package photos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/mapatag/internal/common"
	"github.com/dmitrijs2005/mapatag/internal/config"
)

// LinkExpiry is how long a presigned photo link stays valid.
const LinkExpiry = 15 * time.Minute

const refScheme = "s3://"

// ErrPhotosDisabled is returned when no bucket is configured.
var ErrPhotosDisabled = errors.New("photo storage is not configured")

var allowedExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	openFile = func(path string) (io.ReadCloser, error) {
		return os.Open(path)
	}
)

// Store uploads photos and resolves stored references to viewable links.
type Store interface {
	Upload(ctx context.Context, seniorID, localPath string) (string, error)
	Link(ctx context.Context, ref string) (string, error)
}

// S3Store is the Store backed by aws-sdk-go-v2. It works with AWS S3 and
// with MinIO when S3BaseEndpoint is set.
type S3Store struct {
	cfg   *config.Config
	newID func() string
}

func NewS3Store(cfg *config.Config) *S3Store {
	return &S3Store{cfg: cfg, newID: uuid.NewString}
}

func (s *S3Store) client(ctx context.Context) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(s.cfg.S3Region)}
	if s.cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.cfg.S3AccessKey, s.cfg.S3SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if s.cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Upload puts the image at localPath under seniors/<seniorID>/ and returns
// its reference, s3://<bucket>/<key>.
func (s *S3Store) Upload(ctx context.Context, seniorID, localPath string) (string, error) {
	if !s.cfg.PhotosEnabled() {
		return "", ErrPhotosDisabled
	}

	ext := strings.ToLower(filepath.Ext(localPath))
	if !allowedExt[ext] {
		return "", fmt.Errorf("%w: unsupported image type %q", common.ErrorValidation, ext)
	}

	f, err := openFile(localPath)
	if err != nil {
		return "", fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	c, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.cfg.S3Bucket
	key := fmt.Sprintf("seniors/%s/%s%s", seniorID, s.newID(), ext)

	_, err = putObject(c, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        f,
		ContentType: aws.String(mime.TypeByExtension(ext)),
	})
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}

	return refScheme + bucket + "/" + key, nil
}

// Link returns a presigned GET URL for an s3:// reference. Any other
// reference, such as a plain https URL, is returned unchanged.
func (s *S3Store) Link(ctx context.Context, ref string) (string, error) {
	bucket, key, ok := ParseRef(ref)
	if !ok {
		return ref, nil
	}
	if !s.cfg.PhotosEnabled() {
		return "", ErrPhotosDisabled
	}

	c, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(newS3PresignClient(c), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(LinkExpiry))
	if err != nil {
		return "", fmt.Errorf("presign photo: %w", err)
	}

	return req.URL, nil
}

// ParseRef splits s3://bucket/key. ok is false for anything else.
func ParseRef(ref string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(ref, refScheme)
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
