package theme

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sync"
)

// StylesheetID is the element id of the injected <style> node
const StylesheetID = "dynamic-styles"

// Stylesheet is the process-wide style resource carrying the brand palette.
// It is written once by Install and only read afterwards.
type Stylesheet struct {
	once    sync.Once
	palette Palette
	css     string
	etag    string
}

var global Stylesheet

// Global returns the application stylesheet. Install it before the first
// Palette or CSS read: that read locks in DefaultBrandColor.
func Global() *Stylesheet {
	return &global
}

// Install computes the palette from brand and stores it.
// Only the first call has any effect.
func (s *Stylesheet) Install(brand string) {
	s.once.Do(func() {
		s.palette = NewPalette(brand)
		s.css = s.palette.CSS()
		sum := sha256.Sum256([]byte(s.css))
		s.etag = `"` + hex.EncodeToString(sum[:8]) + `"`
	})
}

// Palette returns the installed palette. When Install has not run yet it
// installs DefaultBrandColor, and later Install calls are no-ops.
func (s *Stylesheet) Palette() Palette {
	s.Install(DefaultBrandColor)
	return s.palette
}

// CSS returns the installed :root rule. Like Palette, it installs
// DefaultBrandColor when nothing was installed first.
func (s *Stylesheet) CSS() string {
	s.Install(DefaultBrandColor)
	return s.css
}

// ServeHTTP serves the stylesheet as text/css with an ETag
func (s *Stylesheet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	css := s.CSS()
	w.Header().Set("ETag", s.etag)
	w.Header().Set("Cache-Control", "public, max-age=300")
	if r.Header.Get("If-None-Match") == s.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(css))
}
