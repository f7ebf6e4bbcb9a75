package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ZJUSCT/resolver/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Source opens dataset and image references: local paths, http(s) URLs and
// s3://bucket/key objects.
type Source struct {
	minioCfg config.Minio
	http     *http.Client

	clientOnce sync.Once
	client     *minio.Client
	clientErr  error
}

func NewSource(cfg config.Minio) *Source {
	return &Source{
		minioCfg: cfg,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Open returns a reader for ref.
func (s *Source) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return s.openHTTP(ctx, ref)
	case strings.HasPrefix(ref, "s3://"):
		bucket, key, err := splitObjectRef(ref)
		if err != nil {
			return nil, err
		}
		client, err := s.minio()
		if err != nil {
			return nil, err
		}
		obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", ref, err)
		}
		return obj, nil
	default:
		return os.Open(ref)
	}
}

func (s *Source) openHTTP(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return resp.Body, nil
}

// minio builds the object storage client on first use. Sources are shared
// by concurrent reloads.
func (s *Source) minio() (*minio.Client, error) {
	s.clientOnce.Do(func() {
		s.client, s.clientErr = newMinioClient(s.minioCfg)
	})
	return s.client, s.clientErr
}

func newMinioClient(cfg config.Minio) (*minio.Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("minio endpoint is required for s3:// sources")
	}
	if strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errors.New("minio access key and secret key are required")
	}
	return minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
}

// splitObjectRef parses s3://bucket/key.
func splitObjectRef(ref string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(ref, "s3://")
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid object reference %q, want s3://bucket/key", ref)
	}
	return bucket, key, nil
}
