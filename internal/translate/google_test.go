package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTranslateServer(t *testing.T, payload string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate_a/single" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(status)
		w.Write([]byte(payload))
	}))
}

func TestGoogleTranslate(t *testing.T) {
	// The gtx endpoint splits long inputs into several segments.
	srv := newTranslateServer(t, `[[["नमस्ते ","hello ",null,null],["दुनिया","world",null,null]],null,"en"]`, http.StatusOK)
	defer srv.Close()

	p := NewGoogleProvider(srv.URL)
	got, err := p.Translate(context.Background(), "hello world", "hi")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "नमस्ते दुनिया" {
		t.Fatalf("Translate = %q", got)
	}
}

func TestGoogleTranslateEmptyIdentity(t *testing.T) {
	srv := newTranslateServer(t, `[]`, http.StatusOK)
	defer srv.Close()

	p := NewGoogleProvider(srv.URL)
	got, err := p.Translate(context.Background(), "", "hi")
	if err != nil {
		t.Fatalf("empty translation must not fail: %v", err)
	}
	if got != "" {
		t.Fatalf("Translate(\"\") = %q, want empty", got)
	}
}

func TestGoogleDetect(t *testing.T) {
	srv := newTranslateServer(t, `[[["hello","हैलो",null,null]],null,"hi"]`, http.StatusOK)
	defer srv.Close()

	p := NewGoogleProvider(srv.URL)
	det, err := p.Detect(context.Background(), "हैलो")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if !det.Known || det.Code != "hi" {
		t.Fatalf("Detect = %+v, want known hi", det)
	}
}

func TestGoogleDetectServerError(t *testing.T) {
	srv := newTranslateServer(t, `rate limited`, http.StatusTooManyRequests)
	defer srv.Close()

	p := NewGoogleProvider(srv.URL)
	if _, err := p.Detect(context.Background(), "hello"); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestGoogleDetectEmptyText(t *testing.T) {
	p := NewGoogleProvider("http://127.0.0.1:1") // must not be reached
	det, err := p.Detect(context.Background(), "")
	if err != nil {
		t.Fatalf("Detect(\"\"): %v", err)
	}
	if det.Known {
		t.Fatalf("Detect(\"\") = %+v, want unknown", det)
	}
}
