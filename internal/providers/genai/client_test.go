package genai

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(Options{APIKey: "test-key", BaseURL: srv.URL, Model: "test-model"})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	return client
}

func TestEditImageReturnsFirstInlineImage(t *testing.T) {
	want := []byte{0x89, 0x50, 0x4e, 0x47}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in query: %s", r.URL.RawQuery)
		}
		if !strings.Contains(r.URL.Path, "test-model") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req geminiGenerateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 2 {
			t.Errorf("unexpected request shape: %+v", req)
		}
		if req.GenerationConfig == nil || len(req.GenerationConfig.ResponseModalities) != 2 {
			t.Errorf("response modalities not requested")
		}
		resp := geminiGenerateContentResponse{Candidates: []geminiCandidate{{
			Content: geminiContent{Parts: []geminiPart{
				{Text: "Here is the regenerated scene."},
				{InlineData: &geminiInlineData{MimeType: "image/png", Data: base64.StdEncoding.EncodeToString(want)}},
				{InlineData: &geminiInlineData{MimeType: "image/png", Data: base64.StdEncoding.EncodeToString([]byte("second"))}},
			}},
		}}}
		_ = json.NewEncoder(w).Encode(resp)
	})

	data, mime, err := client.EditImage(context.Background(), []byte("src"), "image/jpeg", "low angle")
	if err != nil {
		t.Fatalf("EditImage error: %v", err)
	}
	if mime != "image/png" {
		t.Fatalf("mime mismatch: %q", mime)
	}
	if string(data) != string(want) {
		t.Fatalf("expected first inline image, got %q", data)
	}
}

func TestEditImageTextOnlyResponseIsSoftFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		resp := geminiGenerateContentResponse{Candidates: []geminiCandidate{{
			Content: geminiContent{Parts: []geminiPart{{Text: "cannot comply"}}},
		}}}
		_ = json.NewEncoder(w).Encode(resp)
	})

	data, _, err := client.EditImage(context.Background(), []byte("src"), "image/jpeg", "close-up")
	if err != nil {
		t.Fatalf("EditImage error: %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil image for text-only response, got %d bytes", len(data))
	}
}

func TestEditImagePropagatesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exhausted"}}`))
	})

	_, _, err := client.EditImage(context.Background(), []byte("src"), "image/jpeg", "wide shot")
	if err == nil {
		t.Fatal("expected error for API failure")
	}
	if !strings.Contains(err.Error(), "quota exhausted") {
		t.Fatalf("error should carry API message, got %v", err)
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
