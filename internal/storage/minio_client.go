package storage

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	md5simd "github.com/minio/md5-simd"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"lifeblog/internal/apperr"
	"lifeblog/internal/config"
)

// ObjectClient is the subset of *minio.Client the cover image store uses.
type ObjectClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	SetBucketPolicy(ctx context.Context, bucketName, policy string) error
}

type Storage interface {
	Upload(ctx context.Context, data []byte) (string, error)
	Resolve(key string) (string, bool)
}

// CoverImageStore keeps cover images under content-derived keys, so the same
// bytes always land on the same object.
type CoverImageStore struct {
	client    ObjectClient
	hasher    md5simd.Server
	bucket    string
	prefix    string
	publicURL string
}

func NewMinIOClient(cfg *config.Config) (*minio.Client, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return client, nil
}

func NewCoverImageStore(client ObjectClient, cfg config.MinIO) *CoverImageStore {
	return &CoverImageStore{
		client:    client,
		hasher:    md5simd.NewServer(),
		bucket:    cfg.BucketName,
		prefix:    strings.Trim(cfg.KeyPrefix, "/"),
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}
}

// Close stops the digest workers.
func (s *CoverImageStore) Close() {
	s.hasher.Close()
}

// Digest returns the lowercase hex MD5 of data.
func (s *CoverImageStore) Digest(data []byte) string {
	h := s.hasher.NewHash()
	defer h.Close()

	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Key returns the storage key data would be uploaded under.
func (s *CoverImageStore) Key(data []byte) string {
	digest := s.Digest(data)
	if s.prefix == "" {
		return digest
	}
	return s.prefix + "/" + digest
}

// Upload writes data at its content key. PutObject overwrites, so uploading
// the same bytes again rewrites the same object.
func (s *CoverImageStore) Upload(ctx context.Context, data []byte) (string, error) {
	key := s.Key(data)
	contentType := mimetype.Detect(data).String()

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"uploaded-at": time.Now().UTC().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", apperr.UploadFailed(providerMessage(err), err)
	}

	slog.DebugContext(ctx, "cover image stored", "key", key, "size", len(data), "content_type", contentType)
	return key, nil
}

// Resolve maps a key to its public URL without touching the network. An
// empty key has no URL.
func (s *CoverImageStore) Resolve(key string) (string, bool) {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", false
	}

	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}

	return s.publicURL + "/" + url.PathEscape(s.bucket) + "/" + strings.Join(segments, "/"), true
}

// EnsureBucket creates the bucket when missing and opens it for anonymous
// reads so resolved URLs are fetchable by browsers.
func (s *CoverImageStore) EnsureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return apperr.Unavailable("failed to check bucket", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return apperr.Unavailable("failed to create bucket", err)
		}
		slog.InfoContext(ctx, "bucket created", "bucket", s.bucket)
	}

	if err := s.client.SetBucketPolicy(ctx, s.bucket, s.readPolicy()); err != nil {
		return apperr.Unavailable("failed to set bucket policy", err)
	}

	return nil
}

func (s *CoverImageStore) readPolicy() string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, s.bucket)
}

func providerMessage(err error) string {
	resp := minio.ToErrorResponse(err)
	if resp.Message != "" {
		return resp.Message
	}
	return err.Error()
}
