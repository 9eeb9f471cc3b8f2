package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func withTestServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	origURL, origTimeout := baseURL, timeout
	baseURL = srv.URL
	timeout = 5 * time.Second
	t.Cleanup(func() {
		baseURL = origURL
		timeout = origTimeout
	})
}

func TestShowSummary(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/summary" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"income":"1200","expense":"603.5","balance":"596.5"}`))
	})

	out := captureOutput(t, showSummary)

	if !strings.Contains(out, "Balance: 596.5") {
		t.Fatalf("expected balance in output, got %q", out)
	}
}

func TestListTours(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tours":[{"id":"tour-1","name":"Weekend trip","members":[{"name":"Alice"},{"name":"Bob"}],"expenses":[]}],"total":1}`))
	})

	out := captureOutput(t, listTours)

	if !strings.Contains(out, "Tours: 1") || !strings.Contains(out, "Weekend trip (2 members, 0 expenses)") {
		t.Fatalf("unexpected listing output: %q", out)
	}
}

func TestShowSettlements(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/tours/tour-1/settlements" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"settlements":[{"from":"Bob","to":"Alice","amount":30}]}`))
	})

	out := captureOutput(t, func() { showSettlements("tour-1") })

	if !strings.Contains(out, "Bob pays Alice 30.00") {
		t.Fatalf("unexpected settlements output: %q", out)
	}
}

func TestShowSettlementsAllSettled(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"settlements":[]}`))
	})

	out := captureOutput(t, func() { showSettlements("tour-1") })

	if !strings.Contains(out, "All settled up") {
		t.Fatalf("expected settled message, got %q", out)
	}
}
