package http

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type testPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type testError struct {
	Message string `json:"message"`
}

func TestGetDecodesJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/items" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("region type"); got != "city & town" {
			t.Errorf("query param not escaped, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"tracker","count":28}`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	var payload testPayload
	_, _, status, err := client.Get("/items", map[string]string{"region type": "city & town"}, nil, &payload, nil)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if payload.Name != "tracker" || payload.Count != 28 {
		t.Errorf("payload = %+v", payload)
	}
}

func TestGetDecodesErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"bad period"}`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	var errBody testError
	_, errorResp, status, err := client.Get("/items", nil, nil, nil, &errBody)
	if err == nil {
		t.Fatal("expected error for 422 status")
	}
	if status != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", status)
	}
	if errorResp == nil || errBody.Message != "bad period" {
		t.Errorf("error body = %+v", errBody)
	}
}

func TestGetDismisses404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{Dismiss404: true})

	_, _, status, err := client.Get("/missing", nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("expected dismissed 404, got error: %v", err)
	}
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestRequestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"ok","count":1}`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	var payload testPayload
	_, _, status, err := client.Request().
		WithMethod(GET).
		WithPath("/flaky").
		WithSuccessResp(&payload).
		WithBackoff(NewBackoffConfig().WithMaxRetries(3).WithInitialDelay(time.Millisecond)).
		Execute()
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server calls = %d, want 3", got)
	}
}

func TestRequestDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	_, _, status, err := client.Request().
		WithMethod(GET).
		WithPath("/bad").
		WithBackoff(NewBackoffConfig().WithMaxRetries(3).WithInitialDelay(time.Millisecond)).
		Execute()
	if err == nil {
		t.Fatal("expected error for 400 status")
	}
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server calls = %d, want 1", got)
	}
}

func TestUnmarshalResponseDecodesXMLCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml; charset=ISO-8859-1")
		_, _ = w.Write([]byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><resp><name>caf\xe9</name></resp>"))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	var payload struct {
		Name string `xml:"name"`
	}
	_, _, _, err := client.Get("/xml", nil, nil, &payload, nil)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if payload.Name != "café" {
		t.Errorf("name = %q, want %q", payload.Name, "café")
	}
}

func TestStreamReturnsRawBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Header().Set("ETag", `"abc123"`)
		_, _ = w.Write([]byte("col_a\tcol_b\n1\t2\n"))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	resp, err := client.Stream(t.Context(), http.MethodGet, "/snapshot", nil, nil)
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("ETag") != `"abc123"` {
		t.Errorf("etag header = %q", resp.Header.Get("ETag"))
	}
}
