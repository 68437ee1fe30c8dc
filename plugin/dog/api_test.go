package dog

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBreedPath(t *testing.T) {
	tests := []struct {
		name  string
		breed string
		want  string
	}{
		{
			name:  "single word",
			breed: "Husky",
			want:  "husky",
		},
		{
			name:  "sub-breed in natural word order",
			breed: "Blue Heeler",
			want:  "heeler/blue",
		},
		{
			name:  "another sub-breed",
			breed: "Border Collie",
			want:  "collie/border",
		},
		{
			name:  "already lowercase",
			breed: "pug",
			want:  "pug",
		},
		{
			name:  "surrounding whitespace",
			breed: "  golden   retriever  ",
			want:  "retriever/golden",
		},
		{
			name:  "empty",
			breed: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BreedPath(tt.breed)
			if got != tt.want {
				t.Errorf("BreedPath(%q) = %q, want %q", tt.breed, got, tt.want)
			}
		})
	}
}

func TestGetRandomImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/breeds/image/random" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"https://images.dog.ceo/breeds/pug/n02110958_1975.jpg","status":"success"}`))
	}))
	defer server.Close()

	oldBase := apiBase
	apiBase = server.URL
	defer func() { apiBase = oldBase }()

	response, err := getRandomImage()
	if err != nil {
		t.Fatalf("getRandomImage() returned error: %v", err)
	}
	if !response.Ok() {
		t.Errorf("expected success status, got %q", response.Status)
	}
	if response.Message != "https://images.dog.ceo/breeds/pug/n02110958_1975.jpg" {
		t.Errorf("unexpected image URL: %q", response.Message)
	}
}

func TestGetBreedImage(t *testing.T) {
	tests := []struct {
		name     string
		breed    string
		wantPath string
		body     string
		wantOk   bool
	}{
		{
			name:     "known breed",
			breed:    "Husky",
			wantPath: "/breed/husky/images/random",
			body:     `{"message":"https://images.dog.ceo/breeds/husky/n02110185_1469.jpg","status":"success"}`,
			wantOk:   true,
		},
		{
			name:     "known sub-breed",
			breed:    "Blue Heeler",
			wantPath: "/breed/heeler/blue/images/random",
			body:     `{"message":"https://images.dog.ceo/breeds/heeler-blue/cattledog.jpg","status":"success"}`,
			wantOk:   true,
		},
		{
			name:     "unknown breed",
			breed:    "Dino",
			wantPath: "/breed/dino/images/random",
			body:     `{"message":"Breed not found (master breed does not exist)","status":"error"}`,
			wantOk:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tt.wantPath {
					t.Errorf("unexpected path: %s, want %s", r.URL.Path, tt.wantPath)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			oldBase := apiBase
			apiBase = server.URL
			defer func() { apiBase = oldBase }()

			response, err := getBreedImage(BreedPath(tt.breed))
			if err != nil {
				t.Fatalf("getBreedImage() returned error: %v", err)
			}
			if response.Ok() != tt.wantOk {
				t.Errorf("Ok() = %v, want %v (status %q)", response.Ok(), tt.wantOk, response.Status)
			}
		})
	}
}

func TestGetAllBreeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/breeds/list/all" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":{"affenpinscher":[],"bulldog":["boston","english","french"]},"status":"success"}`))
	}))
	defer server.Close()

	oldBase := apiBase
	apiBase = server.URL
	defer func() { apiBase = oldBase }()

	response, err := getAllBreeds()
	if err != nil {
		t.Fatalf("getAllBreeds() returned error: %v", err)
	}
	if !response.Ok() {
		t.Errorf("expected success status, got %q", response.Status)
	}
	if len(response.Message) != 2 {
		t.Errorf("expected 2 breeds, got %d", len(response.Message))
	}
	if got := response.Message["bulldog"]; len(got) != 3 {
		t.Errorf("expected 3 bulldog sub-breeds, got %v", got)
	}
}

func TestGetRandomImageServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	oldBase := apiBase
	apiBase = server.URL
	defer func() { apiBase = oldBase }()

	_, err := getRandomImage()
	if err == nil {
		t.Fatal("expected error on HTTP 500, got nil")
	}
}
