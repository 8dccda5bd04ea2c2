package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"pdf magic", []byte("%PDF-1.7 rest of file"), true},
		{"plain text", []byte("just text"), false},
		{"magic mid-buffer", []byte("x%PDF-1.7"), false},
		{"empty", nil, false},
		{"short prefix", []byte("%PD"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPDF(tt.data); got != tt.want {
				t.Errorf("IsPDF() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPDFTextMalformed(t *testing.T) {
	if _, err := PDFText([]byte("%PDF-1.4 but not a real document")); err == nil {
		t.Error("expected error for malformed PDF")
	}
}

func TestFromURLPlainText(t *testing.T) {
	const body = "the plain text body of the document"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	e := New(5*time.Second, zap.NewNop())
	if got := e.FromURL(context.Background(), srv.URL+"/doc.txt"); got != body {
		t.Errorf("FromURL() = %q, want %q", got, body)
	}
}

func TestFromURLMarkdownByExtension(t *testing.T) {
	const body = "# heading\n\nmarkdown body"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	e := New(5*time.Second, zap.NewNop())
	if got := e.FromURL(context.Background(), srv.URL+"/readme.md"); got != body {
		t.Errorf("FromURL() = %q, want %q", got, body)
	}
}

func TestFromURLUnsupportedType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	}))
	defer srv.Close()

	e := New(5*time.Second, zap.NewNop())
	if got := e.FromURL(context.Background(), srv.URL+"/image.png"); got != "" {
		t.Errorf("FromURL() = %q, want empty for unsupported type", got)
	}
}

func TestFromURLFailuresYieldEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	e := New(5*time.Second, zap.NewNop())

	tests := []struct {
		name string
		url  string
	}{
		{"empty url", ""},
		{"invalid url", "://not-a-url"},
		{"unreachable host", "http://127.0.0.1:1/doc.txt"},
		{"non-200 response", srv.URL + "/missing.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.FromURL(context.Background(), tt.url); got != "" {
				t.Errorf("FromURL(%q) = %q, want empty", tt.url, got)
			}
		})
	}
}

func TestFromURLCorruptPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 garbage"))
	}))
	defer srv.Close()

	e := New(5*time.Second, zap.NewNop())
	if got := e.FromURL(context.Background(), srv.URL+"/doc.pdf"); got != "" {
		t.Errorf("FromURL() = %q, want empty for corrupt PDF", got)
	}
}
