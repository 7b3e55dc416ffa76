package ui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"randmodel/app"
	"randmodel/internal"
)

func newTestApp(t *testing.T, dir string) *App {
	t.Helper()
	a, err := NewApp(Config{
		OutDir: dir,
		Logger: internal.NewLoggerWithOutput(internal.LogLevelError, io.Discard),
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	return a
}

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body of %s: %v", path, err)
	}
	return resp, string(body)
}

func TestAppServesReport(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, app.ReportFile,
		"# Sequence analysis report\n\n| statistic | source |\n|---|---|\n| mean | 1.5 |\n")

	srv := httptest.NewServer(newTestApp(t, dir).Router())
	defer srv.Close()

	resp, body := get(t, srv, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
	for _, fragment := range []string{"<h1", "Sequence analysis report", "<table>", "1.5"} {
		if !strings.Contains(body, fragment) {
			t.Errorf("page missing fragment %q", fragment)
		}
	}
}

func TestAppReportMissing(t *testing.T) {
	srv := httptest.NewServer(newTestApp(t, t.TempDir()).Router())
	defer srv.Close()

	resp, body := get(t, srv, "/")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	if !strings.Contains(body, "run analyze first") {
		t.Errorf("body = %q, want a hint to run analyze", body)
	}
}

func TestAppServesManifest(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, app.ManifestFile, `{"run_id":"run-abc"}`)

	srv := httptest.NewServer(newTestApp(t, dir).Router())
	defer srv.Close()

	resp, body := get(t, srv, "/api/run")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content type = %q, want application/json", ct)
	}
	if !strings.Contains(body, "run-abc") {
		t.Errorf("body = %q, want the manifest payload", body)
	}

	empty := httptest.NewServer(newTestApp(t, t.TempDir()).Router())
	defer empty.Close()
	if resp, _ := get(t, empty, "/api/run"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing manifest status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestAppServesArtifactFiles(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "table1.csv", "10,20,50\n")

	srv := httptest.NewServer(newTestApp(t, dir).Router())
	defer srv.Close()

	resp, body := get(t, srv, "/artifacts/table1.csv")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if body != "10,20,50\n" {
		t.Errorf("body = %q, want the file contents", body)
	}

	if resp, _ := get(t, srv, "/artifacts/absent.csv"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("absent file status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestNewAppRequiresOutDir(t *testing.T) {
	if _, err := NewApp(Config{}); err == nil {
		t.Fatal("NewApp() accepted an empty artifact directory")
	}
}
