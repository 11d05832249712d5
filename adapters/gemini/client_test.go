package gemini_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/minsu-kang/steamrec/adapters/gemini"
)

func modelServer(t *testing.T, responseText string) (*httptest.Server, *http.Request) {
	t.Helper()
	var captured http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r
		captured.Header = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		body := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"parts": []map[string]string{{"text": responseText}},
				}},
			},
		}
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestExtractTags(t *testing.T) {
	srv, captured := modelServer(t, `추천 태그입니다: ["로그라이크", "2D", "덱빌딩"]`)

	c := gemini.NewClient(gemini.Config{BaseURL: srv.URL, APIKey: "k", Model: "test-model"}, zerolog.Nop())

	tags, err := c.ExtractTags(context.Background(), "카드 뽑는 게임")
	if err != nil {
		t.Fatalf("ExtractTags: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"로그라이크", "2D", "덱빌딩"}) {
		t.Errorf("tags = %v", tags)
	}

	if !strings.Contains(captured.URL.Path, "test-model") {
		t.Errorf("path = %q, want configured model", captured.URL.Path)
	}
	if captured.Header.Get("x-goog-api-key") != "k" {
		t.Error("api key header missing")
	}
}

func TestExtractTags_UnusableResponseIsEmptyNotError(t *testing.T) {
	srv, _ := modelServer(t, "죄송합니다, 태그를 고를 수 없습니다.")

	c := gemini.NewClient(gemini.Config{BaseURL: srv.URL, APIKey: "k"}, zerolog.Nop())

	tags, err := c.ExtractTags(context.Background(), "이상한 입력")
	if err != nil {
		t.Fatalf("ExtractTags: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("tags = %v, want empty", tags)
	}
}

func TestExtractTags_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	c := gemini.NewClient(gemini.Config{BaseURL: srv.URL, APIKey: "k"}, zerolog.Nop())

	tags, err := c.ExtractTags(context.Background(), "아무 게임")
	if err != nil {
		t.Fatalf("ExtractTags: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("tags = %v, want empty", tags)
	}
}

func TestExtractTags_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := gemini.NewClient(gemini.Config{BaseURL: srv.URL, APIKey: "k"}, zerolog.Nop())

	if _, err := c.ExtractTags(context.Background(), "아무 게임"); err == nil {
		t.Error("expected error on non-OK status")
	}
}
