package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// ============================================================================
// Listing page tests
// ============================================================================

func TestListingPDFsResolvesAndDedupes(t *testing.T) {
	page := `<html><body>
		<a href="/documents/register-may.pdf">May</a>
		<a href="register-june.PDF">June</a>
		<a href="/documents/register-may.pdf">May again</a>
		<a href="/about.html">About</a>
		<a>No href</a>
	</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	links, err := New().ListingPDFs(context.Background(), srv.URL+"/planning/registers")
	if err != nil {
		t.Fatalf("ListingPDFs: %v", err)
	}

	if len(links) != 2 {
		t.Fatalf("got %d links, want 2: %+v", len(links), links)
	}
	if want := srv.URL + "/documents/register-may.pdf"; links[0].URL != want {
		t.Errorf("links[0].URL = %q, want %q", links[0].URL, want)
	}
	if want := srv.URL + "/planning/register-june.PDF"; links[1].URL != want {
		t.Errorf("links[1].URL = %q, want %q", links[1].URL, want)
	}
	if links[0].Name != "register-may.pdf" {
		t.Errorf("links[0].Name = %q, want %q", links[0].Name, "register-may.pdf")
	}
}

func TestListingPDFsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := New().ListingPDFs(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error on 404 listing page")
	}
}

// ============================================================================
// Download tests
// ============================================================================

func TestDownloadWritesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest, err := New().Download(context.Background(), srv.URL+"/docs/register.pdf", dir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if want := filepath.Join(dir, "register.pdf"); dest != want {
		t.Errorf("dest = %q, want %q", dest, want)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != "%PDF-1.4 fake" {
		t.Errorf("file contents = %q", data)
	}
}

func TestDownloadStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	if _, err := New().Download(context.Background(), srv.URL+"/register.pdf", t.TempDir()); err == nil {
		t.Fatal("expected error on 410 download")
	}
}
