package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ycl-tw/attention-monitor/pkg/config"
	"github.com/ycl-tw/attention-monitor/pkg/logger"
)

func testClient() *Client {
	cfg := &config.Config{
		Env:         "development",
		LogLevel:    "error",
		LogFormat:   "json",
		HTTPTimeout: 5 * time.Second,
	}
	return New(cfg, logger.New(cfg))
}

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("Expected User-Agent header to be set")
		}
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	client := testClient().DisableRetry()

	body, err := client.GetBytes(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetBytes() failed: %v", err)
	}

	if string(body) != "hello" {
		t.Errorf("Expected body hello, got %q", body)
	}
}

func TestGetBytesNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := testClient().DisableRetry()

	_, err := client.GetBytes(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Expected error for 404 response, got nil")
	}
}

func TestRetryOn5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := testClient().WithRetry(3, 10*time.Millisecond)

	body, err := client.GetBytes(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetBytes() failed: %v", err)
	}

	if string(body) != "ok" {
		t.Errorf("Expected body ok, got %q", body)
	}

	if got := calls.Load(); got != 3 {
		t.Errorf("Expected 3 attempts, got %d", got)
	}
}

func TestRetryExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := testClient().WithRetry(2, 10*time.Millisecond)

	resp, err := client.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get() returned transport error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected final 500 response, got %d", resp.StatusCode)
	}

	// 1 initial attempt + 2 retries
	if got := calls.Load(); got != 3 {
		t.Errorf("Expected 3 attempts, got %d", got)
	}
}

func TestGetContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := testClient().DisableRetry()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, srv.URL)
	if err == nil {
		t.Fatal("Expected error for cancelled context, got nil")
	}
}
