package api

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"

	"redfin-etl/internal/domain/model"
	"redfin-etl/pkg/http"
)

// datasetGatewayImpl implements the DatasetGateway interface
type datasetGatewayImpl struct {
	httpClient *http.Client
	path       string
}

// NewDatasetGateway creates a new instance of DatasetGateway for the given
// snapshot URL with HTTP client
func NewDatasetGateway(sourceURL string, clientOptions http.ClientOptions) (DatasetGateway, error) {
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset source url %q: %w", sourceURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid dataset source url %q: missing scheme or host", sourceURL)
	}

	httpClient := http.NewHttpClient(parsed.Scheme+"://"+parsed.Host, clientOptions)

	return &datasetGatewayImpl{
		httpClient: httpClient,
		path:       parsed.Path,
	}, nil
}

// Head fetches the snapshot metadata without downloading the body
func (g *datasetGatewayImpl) Head(ctx context.Context) (*model.SnapshotMeta, error) {
	resp, err := g.httpClient.Stream(ctx, string(http.HEAD), g.path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("head snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		return nil, fmt.Errorf("head snapshot: unexpected status %d", resp.StatusCode)
	}
	return snapshotMetaFromResponse(resp), nil
}

// Fetch streams the snapshot body, unwrapping gzip payloads
func (g *datasetGatewayImpl) Fetch(ctx context.Context) (io.ReadCloser, *model.SnapshotMeta, error) {
	resp, err := g.httpClient.Stream(ctx, string(http.GET), g.path, nil, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	if resp.StatusCode != nethttp.StatusOK {
		resp.Body.Close()
		return nil, nil, fmt.Errorf("fetch snapshot: unexpected status %d", resp.StatusCode)
	}

	meta := snapshotMetaFromResponse(resp)

	if !isGzipPayload(g.path, resp.Header.Get("Content-Type")) {
		return resp.Body, meta, nil
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, nil, fmt.Errorf("open gzip stream: %w", err)
	}
	return &gzipReadCloser{gz: gz, body: resp.Body}, meta, nil
}

func snapshotMetaFromResponse(resp *nethttp.Response) *model.SnapshotMeta {
	meta := &model.SnapshotMeta{
		ETag:          resp.Header.Get("ETag"),
		ContentLength: resp.ContentLength,
	}
	if v := resp.Header.Get("Last-Modified"); v != "" {
		if t, err := nethttp.ParseTime(v); err == nil {
			meta.LastModified = t
		}
	}
	return meta
}

func isGzipPayload(path, contentType string) bool {
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		return true
	}
	switch contentType {
	case "application/gzip", "application/x-gzip":
		return true
	}
	return false
}

// gzipReadCloser closes the gzip reader and the underlying body together
type gzipReadCloser struct {
	gz   *gzip.Reader
	body io.ReadCloser
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.gz.Read(p)
}

func (g *gzipReadCloser) Close() error {
	gzErr := g.gz.Close()
	bodyErr := g.body.Close()
	if gzErr != nil {
		return gzErr
	}
	return bodyErr
}
