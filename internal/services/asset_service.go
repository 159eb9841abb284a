// internal/services/asset_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/printbazaar/marketplace-backend/internal/config"
)

// AssetService resolves stored asset paths into client-facing URLs and
// handles owner uploads. It implements catalog.AssetResolver.
type AssetService struct {
	s3Client *s3.S3
	config   *config.Config
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

type UploadOptions struct {
	Folder       string
	MaxSize      int64 // in bytes
	AllowedTypes []string
}

func NewAssetService(config *config.Config) (*AssetService, error) {
	if config.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &AssetService{config: config}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &AssetService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

// ResolveBatch maps every path to a URL in one pass. CloudFront wins when a
// distribution is configured; otherwise objects are presigned per request.
// Paths that cannot be resolved fail the whole batch, since a page with
// half-broken images is worse than a retried request.
func (s *AssetService) ResolveBatch(ctx context.Context, paths []string) (map[string]string, error) {
	resolved := make(map[string]string, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		url, err := s.resolveOne(path)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", path, err)
		}
		resolved[path] = url
	}
	return resolved, nil
}

func (s *AssetService) resolveOne(path string) (string, error) {
	key := strings.TrimPrefix(path, "/")

	if s.config.AWS.CloudFrontURL != "" {
		return strings.TrimSuffix(s.config.AWS.CloudFrontURL, "/") + "/" + key, nil
	}

	if s.s3Client == nil {
		// Local development fallback
		return fmt.Sprintf("http://%s:%s/uploads/%s", s.config.Server.Host, s.config.Server.Port, key), nil
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	url, err := req.Presign(time.Duration(s.config.AWS.PresignTTL) * time.Minute)
	if err != nil {
		return "", fmt.Errorf("failed to presign: %w", err)
	}
	return url, nil
}

// UploadFile stores an owner-provided asset and returns its key; the key is
// what catalog rows persist, never the resolved URL.
func (s *AssetService) UploadFile(file multipart.File, header *multipart.FileHeader, options UploadOptions) (*UploadResult, error) {
	if options.MaxSize > 0 && header.Size > options.MaxSize {
		return nil, fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", header.Size, options.MaxSize)
	}

	if len(options.AllowedTypes) > 0 {
		fileExt := strings.ToLower(filepath.Ext(header.Filename))
		allowed := false
		for _, allowedType := range options.AllowedTypes {
			if fileExt == allowedType {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, fmt.Errorf("file type %s is not allowed", fileExt)
		}
	}

	key := s.generateFileName(header.Filename, options.Folder)

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if s.s3Client == nil {
		return &UploadResult{
			URL:      fmt.Sprintf("http://%s:%s/uploads/%s", s.config.Server.Host, s.config.Server.Port, key),
			Key:      key,
			Size:     int64(len(fileBytes)),
			MimeType: contentType,
		}, nil
	}

	_, err = s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	url, err := s.resolveOne(key)
	if err != nil {
		return nil, err
	}
	return &UploadResult{
		URL:      url,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

// GetDefaultUploadOptions returns the per-surface upload policy.
func (s *AssetService) GetDefaultUploadOptions(category string) UploadOptions {
	switch category {
	case "designs":
		return UploadOptions{
			Folder:       "designs",
			MaxSize:      50 * 1024 * 1024, // 50MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png", ".svg", ".gif"},
		}
	case "previews":
		return UploadOptions{
			Folder:       "previews",
			MaxSize:      10 * 1024 * 1024, // 10MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif"},
		}
	case "logos":
		return UploadOptions{
			Folder:       "logos",
			MaxSize:      2 * 1024 * 1024, // 2MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png"},
		}
	default:
		return UploadOptions{
			Folder:       "general",
			MaxSize:      5 * 1024 * 1024, // 5MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png"},
		}
	}
}

func (s *AssetService) generateFileName(originalName, folder string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext
	if folder == "" {
		return name
	}
	return folder + "/" + name
}
