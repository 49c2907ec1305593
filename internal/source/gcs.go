package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/Veraticus/work-order-flow/internal/googleauth"
	"github.com/Veraticus/work-order-flow/internal/model"
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"
)

const gcsScheme = "gs://"

// GCSSource reads scans from a Cloud Storage bucket.
type GCSSource struct {
	service *storage.Service
	logger  *slog.Logger
	bucket  string
	prefix  string
}

// NewGCSSource creates a bucket source authenticated with a service
// account key file.
func NewGCSSource(ctx context.Context, bucket, prefix, credentialsFile string, logger *slog.Logger) (*GCSSource, error) {
	if bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", common.ErrMissingConfig)
	}

	creds := googleauth.Credentials{ServiceAccountPath: credentialsFile}
	httpClient, err := creds.HTTPClient(ctx, storage.DevstorageReadOnlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate with cloud storage: %w", err)
	}

	svc, err := storage.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create storage service: %w", err)
	}

	return newGCSSourceWithService(svc, bucket, prefix, logger), nil
}

func newGCSSourceWithService(svc *storage.Service, bucket, prefix string, logger *slog.Logger) *GCSSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &GCSSource{service: svc, bucket: bucket, prefix: prefix, logger: logger}
}

// List returns gs:// URLs of every supported object under the prefix.
func (s *GCSSource) List(ctx context.Context) ([]string, error) {
	var urls []string
	call := s.service.Objects.List(s.bucket).Prefix(s.prefix).Fields("nextPageToken", "items/name")
	err := call.Pages(ctx, func(page *storage.Objects) error {
		for _, obj := range page.Items {
			if strings.HasSuffix(obj.Name, "/") || !IsSupported(obj.Name) {
				continue
			}
			urls = append(urls, s.objectURL(obj.Name))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list gs://%s/%s: %w", s.bucket, s.prefix, err)
	}

	s.logger.Debug("listed bucket documents", "bucket", s.bucket, "prefix", s.prefix, "count", len(urls))
	return urls, nil
}

// Fetch downloads one object.
func (s *GCSSource) Fetch(ctx context.Context, url string) (model.Document, error) {
	bucket, object, err := ParseGCSURL(url)
	if err != nil {
		return model.Document{}, err
	}

	resp, err := s.service.Objects.Get(bucket, object).Context(ctx).Download()
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to read %s: %w", url, err)
	}

	return model.Document{
		Name: path.Base(object),
		URL:  url,
		Data: data,
	}, nil
}

func (s *GCSSource) objectURL(name string) string {
	return gcsScheme + s.bucket + "/" + name
}

// ParseGCSURL splits gs://bucket/object.
func ParseGCSURL(url string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(url, gcsScheme)
	if !ok {
		return "", "", fmt.Errorf("%w: not a gs:// url: %s", common.ErrInvalidDocument, url)
	}
	bucket, object, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("%w: malformed gs:// url: %s", common.ErrInvalidDocument, url)
	}
	return bucket, object, nil
}
