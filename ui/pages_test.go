package ui

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emglab/composite-shell/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		TargetURL:           "https://example.invalid/app",
		WindowTitle:         "Test Shell",
		Width:               800,
		Height:              600,
		SecurityPolicy:      config.PolicyStrict,
		ProbeTimeoutSeconds: 5,
	}
}

func TestBootstrapPageRedirectsToTarget(t *testing.T) {
	page := string(BootstrapPage(testConfig()))

	if !strings.Contains(page, "https://example.invalid/app") {
		t.Error("Bootstrap page does not reference the target URL")
	}
	if !strings.Contains(page, "http-equiv=\"refresh\"") {
		t.Error("Bootstrap page has no meta refresh")
	}
	if !strings.Contains(page, "window.location.replace") {
		t.Error("Bootstrap page has no script redirect")
	}
}

func TestFailurePageIsLabeled(t *testing.T) {
	page := FailurePage(testConfig(), errors.New("connection refused"))

	if !strings.Contains(page, "Test Shell") {
		t.Error("Failure page does not name the application")
	}
	if !strings.Contains(page, "https://example.invalid/app") {
		t.Error("Failure page does not name the target URL")
	}
	if !strings.Contains(page, "connection refused") {
		t.Error("Failure page does not show the failure reason")
	}
}

func TestFailurePageEscapesReason(t *testing.T) {
	page := FailurePage(testConfig(), errors.New("<script>alert(1)</script>"))

	if strings.Contains(page, "<script>alert(1)</script>") {
		t.Error("Failure reason was not HTML-escaped")
	}
}

func TestFailurePageWithNilReason(t *testing.T) {
	page := FailurePage(testConfig(), nil)
	if !strings.Contains(page, "was not reported") {
		t.Error("Expected placeholder text for missing reason")
	}
}

func TestPageStoreServesCurrentPage(t *testing.T) {
	store := NewPageStore()
	store.Set([]byte("<html>first</html>"))

	server := httptest.NewServer(store)
	defer server.Close()

	get := func(path string) (string, string) {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", path, err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return string(body), resp.Header.Get("Content-Type")
	}

	body, contentType := get("/")
	if body != "<html>first</html>" {
		t.Errorf("Unexpected body: %q", body)
	}
	if !strings.HasPrefix(contentType, "text/html") {
		t.Errorf("Unexpected content type: %q", contentType)
	}

	// Every path serves the same page
	if body, _ := get("/some/other/path"); body != "<html>first</html>" {
		t.Errorf("Unexpected body for nested path: %q", body)
	}

	store.Set([]byte("<html>second</html>"))
	if body, _ := get("/"); body != "<html>second</html>" {
		t.Errorf("Expected swapped page, got %q", body)
	}
}

func TestPageStoreEmpty(t *testing.T) {
	server := httptest.NewServer(NewPageStore())
	defer server.Close()

	resp, err := http.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for empty store, got %d", resp.StatusCode)
	}
}
