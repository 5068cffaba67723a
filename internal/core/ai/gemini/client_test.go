package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Muhi2007/eshopping-ai/internal/infrastructure/config"
	"github.com/Muhi2007/eshopping-ai/internal/pkg/common"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.Config{
		Gemini: config.GeminiConfig{
			APIKey:  "test-key",
			Model:   "gemini-2.0-flash",
			BaseURL: server.URL,
		},
	})
}

func TestGenerateContentSendsModelPathAndKey(t *testing.T) {
	var gotPath, gotKey string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"[]"}]}}]}`))
	})

	text, err := client.GenerateContent(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("GenerateContent returned error: %v", err)
	}
	if text != "[]" {
		t.Fatalf("text = %q, want %q", text, "[]")
	}
	if want := "/v1beta/models/gemini-2.0-flash:generateContent"; gotPath != want {
		t.Fatalf("path = %q, want %q", gotPath, want)
	}
	if gotKey != "test-key" {
		t.Fatalf("x-goog-api-key = %q, want %q", gotKey, "test-key")
	}
}

func TestGenerateContentProviderErrorMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := client.GenerateContent(context.Background(), "hello", nil)
	ce, ok := err.(*common.CustomError)
	if !ok {
		t.Fatalf("error = %T, want *common.CustomError", err)
	}
	if ce.Code != common.ErrCodeProvider {
		t.Fatalf("code = %q, want %q", ce.Code, common.ErrCodeProvider)
	}
	if ce.Message != "API key not valid" {
		t.Fatalf("message = %q", ce.Message)
	}
}

func TestGenerateContentProviderErrorFallsBackToStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.GenerateContent(context.Background(), "hello", nil)
	ce, ok := err.(*common.CustomError)
	if !ok {
		t.Fatalf("error = %T, want *common.CustomError", err)
	}
	if !strings.Contains(ce.Message, "500") {
		t.Fatalf("message = %q, want raw status text", ce.Message)
	}
}

func TestGenerateContentMissingParts(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no candidates", body: `{"candidates":[]}`},
		{name: "no parts", body: `{"candidates":[{"content":{"parts":[]}}]}`},
		{name: "empty text", body: `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`},
		{name: "not the envelope", body: `"just a string"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := client.GenerateContent(context.Background(), "hello", nil)
			ce, ok := err.(*common.CustomError)
			if !ok {
				t.Fatalf("error = %T, want *common.CustomError", err)
			}
			if ce.Code != common.ErrCodeEmptyResponse {
				t.Fatalf("code = %q, want %q", ce.Code, common.ErrCodeEmptyResponse)
			}
		})
	}
}

func TestGenerateContentTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close() // 連線將被拒絕

	client := NewClient(&config.Config{
		Gemini: config.GeminiConfig{
			APIKey:  "test-key",
			Model:   "gemini-2.0-flash",
			BaseURL: baseURL,
		},
	})

	_, err := client.GenerateContent(context.Background(), "hello", nil)
	ce, ok := err.(*common.CustomError)
	if !ok {
		t.Fatalf("error = %T, want *common.CustomError", err)
	}
	if ce.Code != common.ErrCodeAIService {
		t.Fatalf("code = %q, want %q", ce.Code, common.ErrCodeAIService)
	}
	if !strings.Contains(ce.Message, "Failed to fetch recommendations") {
		t.Fatalf("message = %q, want generic fetch failure", ce.Message)
	}
}
