package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tuanminh7/website-lms/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider lưu và xóa file đính kèm. Path trả về là định danh dùng
// lại khi xóa và là đường dẫn client tải file.
type StorageProvider interface {
	Save(ctx context.Context, dir, filename string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
}

// NewStorageProvider chọn backend theo cấu hình, mặc định lưu đĩa cục bộ.
func NewStorageProvider(cfg *config.Config) (StorageProvider, error) {
	if cfg.Storage.Type == "minio" {
		return newMinioStorage(cfg)
	}
	base := cfg.Storage.LocalPath
	if base == "" {
		base = "uploads"
	}
	return &LocalStorage{base: base}, nil
}

// LocalStorage ghi file xuống đĩa dưới thư mục gốc cấu hình.
type LocalStorage struct {
	base string
}

func (s *LocalStorage) Save(ctx context.Context, dir, filename string, r io.Reader, size int64, contentType string) (string, error) {
	target := filepath.Join(s.base, dir)
	if err := os.MkdirAll(target, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(target, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", err
	}
	return filepath.ToSlash(filepath.Join(dir, filename)), nil
}

func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	full := filepath.Join(s.base, filepath.FromSlash(path))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MinioStorage đẩy file lên một bucket MinIO/S3.
type MinioStorage struct {
	client *minio.Client
	bucket string
}

func newMinioStorage(cfg *config.Config) (*MinioStorage, error) {
	client, err := minio.New(cfg.Storage.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.MinioAccessID, cfg.Storage.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, fmt.Errorf("khởi tạo minio: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Storage.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("kiểm tra bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Storage.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("tạo bucket: %w", err)
		}
	}

	return &MinioStorage{client: client, bucket: cfg.Storage.MinioBucket}, nil
}

func (s *MinioStorage) Save(ctx context.Context, dir, filename string, r io.Reader, size int64, contentType string) (string, error) {
	object := dir + "/" + filename
	_, err := s.client.PutObject(ctx, s.bucket, object, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return object, nil
}

func (s *MinioStorage) Delete(ctx context.Context, path string) error {
	return s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{})
}
