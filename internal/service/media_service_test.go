package service

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/yasinhessnawi1/inventory_backend/internal/config"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

type fakeS3Client struct {
	err   error
	input *s3.PutObjectInput
	body  string
}

func (f *fakeS3Client) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	b, _ := io.ReadAll(params.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

type fakeCloudinaryUploader struct {
	result *uploader.UploadResult
	err    error
	params uploader.UploadParams
}

func (f *fakeCloudinaryUploader) Upload(_ context.Context, _ interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.params = params
	return f.result, f.err
}

func TestLocalStore_Store(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir, "http://localhost:5000/uploads/")
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}

	fileURL, err := store.Store(context.Background(), &ImageUpload{
		FileName:    "../my lamp.png",
		ContentType: "image/png",
		Body:        strings.NewReader("png-bytes"),
	})
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	if !strings.HasPrefix(fileURL, "http://localhost:5000/uploads/") {
		t.Errorf("Unexpected URL: %s", fileURL)
	}

	escaped := strings.TrimPrefix(fileURL, "http://localhost:5000/uploads/")
	name, err := url.PathUnescape(escaped)
	if err != nil {
		t.Fatalf("Invalid escaped name %q: %v", escaped, err)
	}
	if !strings.HasSuffix(name, "-my lamp.png") || strings.Contains(name, ":") {
		t.Errorf("Unexpected stored name: %s", name)
	}

	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("Stored file missing: %v", err)
	}
	if string(content) != "png-bytes" {
		t.Errorf("Unexpected file content: %q", content)
	}
}

func TestS3Store_Store(t *testing.T) {
	client := &fakeS3Client{}
	store := &S3Store{
		client:    client,
		bucket:    "inventory-media",
		folder:    "inventory",
		publicURL: "https://cdn.example.com",
	}

	fileURL, err := store.Store(context.Background(), &ImageUpload{
		FileName:    "Lamp.JPG",
		ContentType: "image/jpeg",
		Size:        9,
		Body:        strings.NewReader("jpg-bytes"),
	})
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	key := aws.ToString(client.input.Key)
	if !strings.HasPrefix(key, "inventory/") || !strings.HasSuffix(key, ".jpg") {
		t.Errorf("Unexpected object key: %s", key)
	}
	if aws.ToString(client.input.Bucket) != "inventory-media" {
		t.Errorf("Unexpected bucket: %s", aws.ToString(client.input.Bucket))
	}
	if aws.ToString(client.input.ContentType) != "image/jpeg" {
		t.Errorf("Unexpected content type: %s", aws.ToString(client.input.ContentType))
	}
	if aws.ToInt64(client.input.ContentLength) != 9 {
		t.Errorf("Unexpected content length: %d", aws.ToInt64(client.input.ContentLength))
	}
	if client.body != "jpg-bytes" {
		t.Errorf("Unexpected body: %q", client.body)
	}
	if fileURL != "https://cdn.example.com/"+key {
		t.Errorf("Unexpected URL: %s", fileURL)
	}

	client.err = errors.New("access denied")
	if _, err := store.Store(context.Background(), &ImageUpload{FileName: "x.png", Body: strings.NewReader("")}); err == nil {
		t.Error("Expected an error")
	}
}

func TestNewS3Store_PublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MediaSettings
		want string
	}{
		{
			name: "aws",
			cfg:  config.MediaSettings{S3Region: "eu-north-1", S3Bucket: "media"},
			want: "https://media.s3.eu-north-1.amazonaws.com",
		},
		{
			name: "custom endpoint",
			cfg:  config.MediaSettings{S3Region: "us-east-1", S3Bucket: "media", S3Endpoint: "http://minio:9000/"},
			want: "http://minio:9000/media",
		},
		{
			name: "explicit public url",
			cfg:  config.MediaSettings{S3Region: "us-east-1", S3Bucket: "media", S3PublicURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.S3AccessKey = "key"
			cfg.S3SecretKey = "secret"

			store, err := NewS3Store(context.Background(), &cfg)
			if err != nil {
				t.Fatalf("NewS3Store() error = %v", err)
			}
			if store.publicURL != tt.want {
				t.Errorf("Expected public URL %s, got %s", tt.want, store.publicURL)
			}
		})
	}
}

func TestCloudinaryStore_Store(t *testing.T) {
	fake := &fakeCloudinaryUploader{
		result: &uploader.UploadResult{SecureURL: "https://res.cloudinary.com/demo/image/upload/lamp.png"},
	}
	store := &CloudinaryStore{uploader: fake, folder: "Inventory App"}

	fileURL, err := store.Store(context.Background(), &ImageUpload{FileName: "lamp.png", Body: strings.NewReader("png")})
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if fileURL != "https://res.cloudinary.com/demo/image/upload/lamp.png" {
		t.Errorf("Unexpected URL: %s", fileURL)
	}
	if fake.params.Folder != "Inventory App" || fake.params.ResourceType != "image" {
		t.Errorf("Unexpected upload params: %+v", fake.params)
	}

	// Cloudinary reports API failures in the result body
	fake.result = &uploader.UploadResult{}
	fake.result.Error.Message = "Invalid image file"
	if _, err := store.Store(context.Background(), &ImageUpload{Body: strings.NewReader("")}); err == nil {
		t.Error("Expected an error from the result body")
	}

	fake.err = errors.New("timeout")
	if _, err := store.Store(context.Background(), &ImageUpload{Body: strings.NewReader("")}); err == nil {
		t.Error("Expected the transport error")
	}
}

func TestNewMediaStore(t *testing.T) {
	store, err := NewMediaStore(context.Background(), &config.MediaSettings{
		LocalDir:     t.TempDir(),
		LocalBaseURL: "http://localhost:5000/uploads",
	})
	if err != nil {
		t.Fatalf("NewMediaStore() error = %v", err)
	}
	if _, ok := store.(*LocalStore); !ok {
		t.Errorf("Expected local store by default, got %T", store)
	}

	if _, err := NewMediaStore(context.Background(), &config.MediaSettings{Provider: "ftp"}); err == nil {
		t.Error("Expected an error for an unknown provider")
	}
}

func TestIsAllowedImageType(t *testing.T) {
	tests := map[string]bool{
		"image/png":       true,
		"image/jpeg":      true,
		"image/jpg":       true,
		"IMAGE/PNG":       true,
		"image/gif":       false,
		"application/pdf": false,
		"":                false,
	}

	for contentType, want := range tests {
		if got := IsAllowedImageType(contentType); got != want {
			t.Errorf("IsAllowedImageType(%q) = %v, want %v", contentType, got, want)
		}
	}
}

func TestMediaService_UploadProductImage(t *testing.T) {
	store := &MockMediaStore{url: "https://media.example.com/a.png"}
	service := NewMediaService(store)
	ctx := context.Background()

	image, err := service.UploadProductImage(ctx, &ImageUpload{
		FileName:    "a.png",
		ContentType: "image/png",
		Size:        2500000,
		Body:        strings.NewReader("x"),
	})
	if err != nil {
		t.Fatalf("UploadProductImage() error = %v", err)
	}
	if image.FileName != "a.png" || image.FilePath != store.url || image.FileType != "image/png" {
		t.Errorf("Unexpected image metadata: %+v", image)
	}
	if image.FileSize != "2.5 MB" {
		t.Errorf("Expected 2.5 MB, got %s", image.FileSize)
	}

	image, err = service.UploadProductImage(ctx, nil)
	if image != nil || err != nil {
		t.Errorf("Expected nil, nil for no upload, got %v, %v", image, err)
	}

	image, err = service.UploadProductImage(ctx, &ImageUpload{FileName: "a.webp", ContentType: "image/webp"})
	if image != nil || err != nil {
		t.Errorf("Expected unsupported type to be ignored, got %v, %v", image, err)
	}

	store.err = errors.New("quota exceeded")
	_, err = service.UploadProductImage(ctx, &ImageUpload{FileName: "a.png", ContentType: "image/png", Body: strings.NewReader("x")})
	if !errors.Is(err, utils.ErrUpload) {
		t.Errorf("Expected upload error, got %v", err)
	}
}
