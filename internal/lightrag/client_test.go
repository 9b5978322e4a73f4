package lightrag

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestInsertText(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	defer c.Close()

	if err := c.InsertText(context.Background(), "doc_test_abc123", "chunk text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/documents/text" {
		t.Fatalf("expected /documents/text, got %s", gotPath)
	}
}

func TestInsertText_RetryableOn503(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	defer c.Close()

	err := c.InsertText(context.Background(), "doc_test_abc123", "chunk text")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var re *RetryableError
	if !errors.As(err, &re) {
		t.Fatalf("expected RetryableError, got %T", err)
	}
}

func TestInsertText_NotRetryableOn400(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	defer c.Close()

	err := c.InsertText(context.Background(), "doc_test_abc123", "chunk text")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var re *RetryableError
	if errors.As(err, &re) {
		t.Fatal("expected non-retryable error for 400")
	}
}

func TestQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":"the answer"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	defer c.Close()

	got, err := c.Query(context.Background(), "what is x", "hybrid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "the answer" {
		t.Fatalf("expected %q, got %q", "the answer", got)
	}
}

func TestAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	defer c.Close()

	if !c.Available(context.Background()) {
		t.Fatal("expected available")
	}

	down := NewClient("http://127.0.0.1:1")
	defer down.Close()
	if down.Available(context.Background()) {
		t.Fatal("expected unavailable")
	}
}

func TestParseEntityList(t *testing.T) {
	answer := "- ACME Corp\n- John Smith\n- ACME Corp\n* Berlin, Paris\n"
	got := parseEntityList(answer)
	want := []string{"ACME Corp", "John Smith", "Berlin", "Paris"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseEntityList_Empty(t *testing.T) {
	got := parseEntityList("")
	if len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}
