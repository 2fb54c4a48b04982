package api

import (
	"bytes"
	"compress/gzip"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"redfin-etl/pkg/http"
)

const snapshotPath = "/data/city_market_tracker.tsv000.gz"

func gzipBytes(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(body)); err != nil {
		t.Fatalf("compressing body: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("closing gzip writer: %v", err)
	}
	return buf.Bytes()
}

func newSnapshotServer(t *testing.T, compressed []byte) *httptest.Server {
	t.Helper()
	handler := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != snapshotPath {
			w.WriteHeader(nethttp.StatusNotFound)
			return
		}
		w.Header().Set("ETag", `"abc123"`)
		w.Header().Set("Last-Modified", "Sun, 02 Apr 2023 08:30:00 GMT")
		w.Header().Set("Content-Type", "application/gzip")
		if r.Method == nethttp.MethodHead {
			w.Header().Set("Content-Length", strconv.Itoa(len(compressed)))
			w.WriteHeader(nethttp.StatusOK)
			return
		}
		w.Write(compressed)
	})
	return httptest.NewServer(handler)
}

func TestHeadReturnsSnapshotMeta(t *testing.T) {
	compressed := gzipBytes(t, "period_begin\tperiod_end\n")
	server := newSnapshotServer(t, compressed)
	defer server.Close()

	gateway, err := NewDatasetGateway(server.URL+snapshotPath, http.ClientOptions{})
	if err != nil {
		t.Fatalf("NewDatasetGateway returned error: %v", err)
	}

	meta, err := gateway.Head(t.Context())
	if err != nil {
		t.Fatalf("Head returned error: %v", err)
	}
	if meta.ETag != `"abc123"` {
		t.Errorf("ETag = %q, want %q", meta.ETag, `"abc123"`)
	}
	want := time.Date(2023, time.April, 2, 8, 30, 0, 0, time.UTC)
	if !meta.LastModified.Equal(want) {
		t.Errorf("LastModified = %v, want %v", meta.LastModified, want)
	}
	if meta.ContentLength != int64(len(compressed)) {
		t.Errorf("ContentLength = %d, want %d", meta.ContentLength, len(compressed))
	}
}

func TestFetchUnwrapsGzip(t *testing.T) {
	const tsv = "period_begin\tperiod_end\n2023-01-01\t2023-03-31\n"
	server := newSnapshotServer(t, gzipBytes(t, tsv))
	defer server.Close()

	gateway, err := NewDatasetGateway(server.URL+snapshotPath, http.ClientOptions{})
	if err != nil {
		t.Fatalf("NewDatasetGateway returned error: %v", err)
	}

	body, meta, err := gateway.Fetch(t.Context())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if string(data) != tsv {
		t.Errorf("snapshot body = %q, want %q", string(data), tsv)
	}
	if meta.ETag != `"abc123"` {
		t.Errorf("ETag = %q, want %q", meta.ETag, `"abc123"`)
	}
}

func TestFetchPassesPlainBodiesThrough(t *testing.T) {
	const tsv = "period_begin\tperiod_end\n"
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/tab-separated-values")
		io.WriteString(w, tsv)
	}))
	defer server.Close()

	gateway, err := NewDatasetGateway(server.URL+"/data/city_market_tracker.tsv", http.ClientOptions{})
	if err != nil {
		t.Fatalf("NewDatasetGateway returned error: %v", err)
	}

	body, _, err := gateway.Fetch(t.Context())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if string(data) != tsv {
		t.Errorf("snapshot body = %q, want %q", string(data), tsv)
	}
}

func TestFetchFailsOnErrorStatus(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusForbidden)
	}))
	defer server.Close()

	gateway, err := NewDatasetGateway(server.URL+"/missing.gz", http.ClientOptions{})
	if err != nil {
		t.Fatalf("NewDatasetGateway returned error: %v", err)
	}

	if _, _, err := gateway.Fetch(t.Context()); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestNewDatasetGatewayRejectsInvalidURL(t *testing.T) {
	if _, err := NewDatasetGateway("not-a-url", http.ClientOptions{}); err == nil {
		t.Error("expected error for url without scheme")
	}
}
