package currency

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEuroRate(t *testing.T) {
	tests := []struct {
		name     string
		response Response
		want     float64
		wantOk   bool
	}{
		{
			name: "rate present",
			response: Response{
				"tether-eurt": TokenPrice{USD: 1.07},
			},
			want:   1.07,
			wantOk: true,
		},
		{
			name:     "rate missing",
			response: Response{},
			wantOk:   false,
		},
		{
			name: "other token only",
			response: Response{
				"bitcoin": TokenPrice{USD: 64000},
			},
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.response.EuroRate()
			if ok != tt.wantOk {
				t.Fatalf("EuroRate() ok = %v, want %v", ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Errorf("EuroRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEuroRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tether-eurt":{"usd":1.07}}`))
	}))
	defer server.Close()

	oldUrl := apiUrl
	apiUrl = server.URL
	defer func() { apiUrl = oldUrl }()

	response, err := getEuroRate()
	if err != nil {
		t.Fatalf("getEuroRate() returned error: %v", err)
	}

	rate, ok := response.EuroRate()
	if !ok {
		t.Fatal("expected Euro rate in response")
	}
	if rate != 1.07 {
		t.Errorf("rate = %v, want 1.07", rate)
	}
}

func TestGetEuroRateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	oldUrl := apiUrl
	apiUrl = server.URL
	defer func() { apiUrl = oldUrl }()

	_, err := getEuroRate()
	if err == nil {
		t.Fatal("expected error on HTTP 429, got nil")
	}
}
