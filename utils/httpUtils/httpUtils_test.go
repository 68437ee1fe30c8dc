package httpUtils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMakeRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("unexpected User-Agent: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":42}`))
	}))
	defer server.Close()

	var response struct {
		Value int `json:"value"`
	}

	err := MakeRequest(RequestOptions{
		Method:   MethodGet,
		URL:      server.URL,
		Headers:  map[string]string{"User-Agent": "test-agent"},
		Response: &response,
	})
	if err != nil {
		t.Fatalf("MakeRequest() returned error: %v", err)
	}
	if response.Value != 42 {
		t.Errorf("response.Value = %d, want 42", response.Value)
	}
}

func TestMakeRequestPostBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected Content-Type: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	err := MakeRequest(RequestOptions{
		Method: MethodPost,
		URL:    server.URL,
		Body: struct {
			Name string `json:"name"`
		}{Name: "doggo"},
	})
	if err != nil {
		t.Fatalf("MakeRequest() returned error: %v", err)
	}
}

func TestMakeRequestHttpError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	err := MakeRequest(RequestOptions{
		Method: MethodGet,
		URL:    server.URL,
	})

	var httpError *HttpError
	if !errors.As(err, &httpError) {
		t.Fatalf("expected *HttpError, got %v", err)
	}
	if httpError.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want %d", httpError.StatusCode, http.StatusNotFound)
	}
	if got := httpError.Error(); got != "unexpected HTTP status 404 (Not Found)" {
		t.Errorf("Error() = %q", got)
	}
}

func TestMakeRequestInvalidJson(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	var response map[string]any
	err := MakeRequest(RequestOptions{
		Method:   MethodGet,
		URL:      server.URL,
		Response: &response,
	})
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}
