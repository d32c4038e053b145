// Package ui renders the pages the shell serves into its web-rendering
// surface: the bootstrap page that hands the window off to the hosted
// application, and the failure page shown when the remote content cannot
// be loaded. Both are self-contained documents with no external resources,
// so they render even when the network is down.
package ui

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/emglab/composite-shell/pkg/config"
)

var bootstrapTmpl = template.Must(template.New("bootstrap").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="0; url={{.TargetURL}}">
<title>{{.Title}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; background: #fafafa;
         display: flex; align-items: center; justify-content: center; height: 100vh; margin: 0; }
  p { color: #666; }
</style>
</head>
<body>
<p>Loading {{.Title}}&hellip;</p>
<script>window.location.replace({{.TargetURL}});</script>
<noscript><p><a href="{{.TargetURL}}">Continue to {{.Title}}</a></p></noscript>
</body>
</html>
`))

var failureTmpl = template.Must(template.New("failure").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} - Unavailable</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; background: #fafafa;
         display: flex; align-items: center; justify-content: center; height: 100vh; margin: 0; }
  main { max-width: 36em; padding: 2em; text-align: center; }
  h1 { font-size: 1.3em; color: #333; }
  p { color: #666; }
  code { background: #eee; padding: 0.1em 0.4em; border-radius: 3px; word-break: break-all; }
</style>
</head>
<body>
<main>
<h1>{{.Title}} could not be loaded</h1>
<p>The application at <code>{{.TargetURL}}</code> is not reachable right now.</p>
<p>{{.Reason}}</p>
<p>Check your network connection, then relaunch the application.</p>
</main>
</body>
</html>
`))

type pageData struct {
	Title     string
	TargetURL string
	Reason    string
}

// BootstrapPage renders the page the window loads first; it immediately
// hands off to the configured target URL.
func BootstrapPage(cfg *config.Config) []byte {
	return render(bootstrapTmpl, pageData{Title: cfg.WindowTitle, TargetURL: cfg.TargetURL})
}

// FailurePage renders the visible failure indication for a load that could
// not complete.
func FailurePage(cfg *config.Config, reason error) string {
	reasonText := "The cause of the failure was not reported."
	if reason != nil {
		reasonText = reason.Error()
	}
	return string(render(failureTmpl, pageData{
		Title:     cfg.WindowTitle,
		TargetURL: cfg.TargetURL,
		Reason:    reasonText,
	}))
}

func render(tmpl *template.Template, data pageData) []byte {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		// Templates are compiled in and the data is plain strings; an
		// execution error here is a programming bug.
		log.Printf("[ui] Template execution failed: %v", err)
		return []byte("<!DOCTYPE html><html><body><p>" + template.HTMLEscapeString(data.Title) + "</p></body></html>")
	}
	return buf.Bytes()
}

// PageStore holds the page the surface is currently asked to display and
// serves it over HTTP for engines (the Wails asset server) that pull their
// content from a handler.
type PageStore struct {
	mu   sync.RWMutex
	page []byte
}

func NewPageStore() *PageStore {
	return &PageStore{}
}

func (s *PageStore) Set(page []byte) {
	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
}

// ServeHTTP serves the current page at every path. The hosted application
// lives at the remote URL; nothing else is served locally.
func (s *PageStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	page := s.page
	s.mu.RUnlock()

	if len(page) == 0 {
		http.Error(w, "no page set", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(page)
}
