package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"
)

// fakeBucket serves object listing and media download for one bucket.
type fakeBucket struct {
	objects map[string]string
	pages   [][]string
}

func (f *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const listPath = "/storage/v1/b/scans/o"

	switch {
	case r.URL.Path == listPath:
		page := 0
		if tok := r.URL.Query().Get("pageToken"); tok == "next" {
			page = 1
		}
		var items []any
		for _, name := range f.pages[page] {
			items = append(items, map[string]any{"name": name})
		}
		resp := map[string]any{"items": items}
		if page+1 < len(f.pages) {
			resp["nextPageToken"] = "next"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	case strings.HasPrefix(r.URL.Path, listPath+"/"):
		name := strings.TrimPrefix(r.URL.Path, listPath+"/")
		body, ok := f.objects[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":404,"message":"No such object"}}`))
			return
		}
		_, _ = w.Write([]byte(body))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestGCSSource(t *testing.T, bucket *fakeBucket, prefix string) *GCSSource {
	t.Helper()

	server := httptest.NewServer(bucket)
	t.Cleanup(server.Close)

	svc, err := storage.NewService(context.Background(),
		option.WithEndpoint(server.URL+"/storage/v1/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)

	return newGCSSourceWithService(svc, "scans", prefix, nil)
}

func TestGCSSource_List(t *testing.T) {
	bucket := &fakeBucket{pages: [][]string{
		{"2024/", "2024/wo-1.pdf", "2024/readme.txt"},
		{"2024/wo-2.JPG"},
	}}
	src := newTestGCSSource(t, bucket, "2024/")

	urls, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gs://scans/2024/wo-1.pdf", "gs://scans/2024/wo-2.JPG"}, urls)
}

func TestGCSSource_Fetch(t *testing.T) {
	bucket := &fakeBucket{objects: map[string]string{"2024/wo-1.pdf": "%PDF-1.4 scan"}}
	src := newTestGCSSource(t, bucket, "")

	doc, err := src.Fetch(context.Background(), "gs://scans/2024/wo-1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "wo-1.pdf", doc.Name)
	assert.Equal(t, "gs://scans/2024/wo-1.pdf", doc.URL)
	assert.Equal(t, "%PDF-1.4 scan", string(doc.Data))

	_, err = src.Fetch(context.Background(), "gs://scans/2024/missing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to download")
}

func TestParseGCSURL(t *testing.T) {
	tests := []struct {
		url        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{url: "gs://scans/2024/wo.pdf", wantBucket: "scans", wantObject: "2024/wo.pdf"},
		{url: "gs://scans/wo.pdf", wantBucket: "scans", wantObject: "wo.pdf"},
		{url: "/local/wo.pdf", wantErr: true},
		{url: "gs://scans", wantErr: true},
		{url: "gs:///wo.pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			bucket, object, err := ParseGCSURL(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidDocument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantObject, object)
		})
	}
}

func TestNewGCSSource_RequiresBucket(t *testing.T) {
	_, err := NewGCSSource(context.Background(), "", "", "", nil)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}
