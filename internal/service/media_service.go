package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/config"
	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// ImageUpload is an image received from a client.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaStore stores image bytes and returns a retrievable URL.
type MediaStore interface {
	Store(ctx context.Context, upload *ImageUpload) (string, error)
}

// cloudinaryUploader is the part of the Cloudinary upload API in use.
type cloudinaryUploader interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryStore uploads images to Cloudinary.
type CloudinaryStore struct {
	uploader cloudinaryUploader
	folder   string
}

// NewCloudinaryStore creates a Cloudinary backed MediaStore.
func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return &CloudinaryStore{uploader: &cld.Upload, folder: folder}, nil
}

// Store implements MediaStore.
func (s *CloudinaryStore) Store(ctx context.Context, upload *ImageUpload) (string, error) {
	result, err := s.uploader.Upload(ctx, upload.Body, uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", err
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}

// s3PutObjectAPI is the part of the S3 client used by S3Store.
type s3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads images to an S3 compatible bucket.
type S3Store struct {
	client    s3PutObjectAPI
	bucket    string
	folder    string
	publicURL string
}

// NewS3Store creates an S3 backed MediaStore from the media settings.
// A custom endpoint (MinIO and similar) switches to path-style addressing.
func NewS3Store(ctx context.Context, cfg *config.MediaSettings) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		if cfg.S3Endpoint != "" {
			publicURL = strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
		}
	}

	return &S3Store{
		client:    client,
		bucket:    cfg.S3Bucket,
		folder:    cfg.Folder,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// objectKey returns a date partitioned, collision free key for an upload.
func (s *S3Store) objectKey(fileName string) string {
	d := time.Now().UTC()
	return path.Join(s.folder, fmt.Sprintf("%d/%02d/%02d", d.Year(), d.Month(), d.Day()),
		uuid.New().String()+strings.ToLower(filepath.Ext(fileName)))
}

// Store implements MediaStore.
func (s *S3Store) Store(ctx context.Context, upload *ImageUpload) (string, error) {
	key := s.objectKey(upload.FileName)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        upload.Body,
		ContentType: aws.String(upload.ContentType),
	}
	if upload.Size > 0 {
		input.ContentLength = aws.Int64(upload.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", err
	}
	return s.publicURL + "/" + key, nil
}

// LocalStore writes images to a directory served under /uploads.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates a filesystem backed MediaStore, creating dir if needed.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Store implements MediaStore. Files are named <timestamp>-<original name>.
func (s *LocalStore) Store(_ context.Context, upload *ImageUpload) (string, error) {
	name := strings.ReplaceAll(time.Now().UTC().Format("2006-01-02T15:04:05.000Z"), ":", "-") +
		"-" + filepath.Base(upload.FileName)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, upload.Body); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return s.baseURL + "/" + url.PathEscape(name), nil
}

// NewMediaStore builds the MediaStore selected by the media settings.
func NewMediaStore(ctx context.Context, cfg *config.MediaSettings) (MediaStore, error) {
	switch strings.ToLower(cfg.Provider) {
	case constants.MediaProviderCloudinary:
		return NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.Folder)
	case constants.MediaProviderS3:
		return NewS3Store(ctx, cfg)
	case constants.MediaProviderLocal, "":
		return NewLocalStore(cfg.LocalDir, cfg.LocalBaseURL)
	default:
		return nil, fmt.Errorf("unknown media provider: %s", cfg.Provider)
	}
}

// MediaService turns uploaded files into product image metadata.
type MediaService struct {
	store MediaStore
}

// NewMediaService creates a new MediaService.
func NewMediaService(store MediaStore) *MediaService {
	return &MediaService{store: store}
}

// IsAllowedImageType reports whether a MIME type is accepted for product images.
func IsAllowedImageType(contentType string) bool {
	return constants.AllowedImageTypes[strings.ToLower(contentType)]
}

// UploadProductImage stores the image and returns its metadata.
// Unsupported types are ignored: the result is nil with no error.
// Store failures are returned as UploadError.
func (s *MediaService) UploadProductImage(ctx context.Context, upload *ImageUpload) (*models.ProductImage, error) {
	if upload == nil {
		return nil, nil
	}
	if !IsAllowedImageType(upload.ContentType) {
		log.Debug().
			Str("file_name", upload.FileName).
			Str("content_type", upload.ContentType).
			Msg("Ignoring upload with unsupported image type")
		return nil, nil
	}

	fileURL, err := s.store.Store(ctx, upload)
	if err != nil {
		log.Error().Err(err).Str("file_name", upload.FileName).Msg("Image upload failed")
		return nil, utils.NewUploadError(err)
	}

	return &models.ProductImage{
		FileName: upload.FileName,
		FilePath: fileURL,
		FileType: upload.ContentType,
		FileSize: utils.FormatFileSize(upload.Size, 2),
	}, nil
}
