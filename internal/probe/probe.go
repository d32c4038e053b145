// Package probe checks whether the remote target currently serves a page.
// The rendering engines this shell embeds do not all expose navigation
// lifecycle callbacks, so surface adapters use a probe result to decide
// whether a navigation succeeded or failed.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Prober struct {
	client *http.Client
}

func New(timeout time.Duration) *Prober {
	return &Prober{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: timeout,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
}

// Check performs a HEAD request against rawURL, falling back to GET when
// the host rejects HEAD. Any response below 400 counts as reachable; the
// caller interprets a non-nil error as a load failure reason.
func (p *Prober) Check(ctx context.Context, rawURL string) error {
	status, err := p.request(ctx, http.MethodHead, rawURL)
	if err != nil {
		return fmt.Errorf("probe %s: %w", rawURL, err)
	}

	// Some hosts (Streamlit Cloud among them) answer HEAD with 405
	if status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		status, err = p.request(ctx, http.MethodGet, rawURL)
		if err != nil {
			return fmt.Errorf("probe %s: %w", rawURL, err)
		}
	}

	if status >= 400 {
		return fmt.Errorf("probe %s: host returned status %d", rawURL, status)
	}
	return nil
}

func (p *Prober) request(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	return resp.StatusCode, nil
}
