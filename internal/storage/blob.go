package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BlobStorage 圖片與封面的存放協作者。授權通過後才會被呼叫；
// 它的失敗由呼叫端轉成 ErrStorageFailure，不影響授權結果。
type BlobStorage interface {
	Save(ctx context.Context, key string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// DiskStorage 本機磁碟實作；不做任何影像處理，位元組原樣落地
type DiskStorage struct {
	baseDir   string
	publicURL string
}

func NewDiskStorage(baseDir, publicURL string) (*DiskStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &DiskStorage{
		baseDir:   baseDir,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

func (s *DiskStorage) path(key string) (string, error) {
	clean := filepath.Clean(key)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid blob key: %q", key)
	}
	return filepath.Join(s.baseDir, clean), nil
}

func (s *DiskStorage) Save(ctx context.Context, key string, r io.Reader) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func (s *DiskStorage) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		// 重複清理同一個 key 不算失敗
		return nil
	}
	return err
}

func (s *DiskStorage) URL(key string) string {
	return s.publicURL + "/" + key
}
