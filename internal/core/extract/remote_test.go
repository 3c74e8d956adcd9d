package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRemoteClientExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/extract-pdf-text" {
			t.Errorf("path = %s, want /extract-pdf-text", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		if header.Filename != "deck.pdf" {
			t.Errorf("filename = %s, want deck.pdf", header.Filename)
		}
		json.NewEncoder(w).Encode(map[string]string{"text": "extracted body"})
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL)
	got, err := c.Extract(context.Background(), SourceFile{
		Name:        "deck.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4"),
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "extracted body" {
		t.Errorf("Extract() = %q, want %q", got, "extracted body")
	}
}

func TestRemoteClientFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "service error message surfaced",
			status:  http.StatusUnprocessableEntity,
			body:    `{"error": "document is encrypted"}`,
			wantMsg: "document is encrypted",
		},
		{
			name:    "generic message when body has no error",
			status:  http.StatusInternalServerError,
			body:    `boom`,
			wantMsg: "status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewRemoteClient(srv.URL)
			_, err := c.Extract(context.Background(), SourceFile{Name: "x.pdf", Data: []byte("x")})
			if err == nil {
				t.Fatal("Extract() error = nil, want failure")
			}
			if CodeOf(err) != CodeRemoteFailed {
				t.Errorf("CodeOf() = %s, want %s", CodeOf(err), CodeRemoteFailed)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestRemoteClientUnreachable(t *testing.T) {
	c := NewRemoteClient("http://127.0.0.1:1")
	_, err := c.Extract(context.Background(), SourceFile{Name: "x.pdf", Data: []byte("x")})
	if err == nil {
		t.Fatal("Extract() error = nil, want failure")
	}
	if CodeOf(err) != CodeRemoteFailed {
		t.Errorf("CodeOf() = %s, want %s", CodeOf(err), CodeRemoteFailed)
	}
}
