package gateways

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ochairo/hashwatch/internal/domain/entities"
)

func TestVersionResolver_Resolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("User-Agent = %q, want %q", r.Header.Get("User-Agent"), userAgent)
		}
		switch r.URL.Path {
		case "/pack-x86_64/":
			fmt.Fprint(w, `<a href="kicad-r24567.7a1b2c3d4-x86_64.exe">kicad-r24567.7a1b2c3d4-x86_64.exe</a>`)
		case "/empty/":
			fmt.Fprint(w, `<html><body>No artifacts</body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	pattern := `kicad-r([\d]+\.[a-f0-9]+)-x86_64\.exe`

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr error
	}{
		{name: "match", path: "/pack-x86_64/", want: "24567.7a1b2c3d4"},
		{name: "page without match", path: "/empty/", wantErr: entities.ErrVersionNotFound},
		{name: "missing page", path: "/missing/", wantErr: entities.ErrFetchFailed},
	}

	vr := NewVersionResolver(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := entities.VariantSpec{
				Name:           "x86_64",
				VersionPageURL: server.URL + tt.path,
				VersionPattern: pattern,
			}

			got, err := vr.Resolve(context.Background(), spec)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got.Token != tt.want || got.VariantName != "x86_64" {
				t.Errorf("Resolve() = %+v, want token %s", got, tt.want)
			}
		})
	}
}

func TestVersionResolver_NotFoundIsNotFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "nothing to see")
	}))
	defer server.Close()

	_, err := NewVersionResolver(0).Resolve(context.Background(), entities.VariantSpec{
		Name:           "i686",
		VersionPageURL: server.URL,
		VersionPattern: `kicad-r([0-9]+)`,
	})
	if errors.Is(err, entities.ErrFetchFailed) {
		t.Errorf("pattern miss classified as fetch failure: %v", err)
	}
	if !errors.Is(err, entities.ErrVersionNotFound) {
		t.Errorf("Resolve() error = %v, want ErrVersionNotFound", err)
	}
}

func TestVersionResolver_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewVersionResolver(0).Resolve(context.Background(), entities.VariantSpec{
		Name:           "x86_64",
		VersionPageURL: url,
		VersionPattern: `v([0-9]+)`,
	})
	if !errors.Is(err, entities.ErrFetchFailed) {
		t.Errorf("Resolve() error = %v, want ErrFetchFailed", err)
	}
}
