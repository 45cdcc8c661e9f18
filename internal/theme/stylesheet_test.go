package theme

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPaletteCSS(t *testing.T) {
	css := NewPalette("#1890ff").CSS()

	want := []string{
		"--brand-color: #1890ff !important;",
		"--brand-color-hover: #46a6ff !important;",
		"--brand-color-active: #1373cc !important;",
		"--brand-color-light: #badeff !important;",
		"--brand-color-lighter: #8cc8ff !important;",
		"--brand-color-dark: #020c14 !important;",
		"--brand-color-darker: #031321 !important;",
	}
	if !strings.HasPrefix(css, ":root {") {
		t.Errorf("css should open a :root rule, got %q", css)
	}
	last := -1
	for _, line := range want {
		idx := strings.Index(css, line)
		if idx < 0 {
			t.Errorf("missing %q in\n%s", line, css)
			continue
		}
		if idx < last {
			t.Errorf("%q out of order", line)
		}
		last = idx
	}
}

func TestPaletteMalformedBrand(t *testing.T) {
	p := NewPalette("brand")
	for _, v := range p.Variables() {
		if v.Value != "brand" {
			t.Errorf("%s = %q, want unchanged brand", v.Name, v.Value)
		}
	}
}

func TestPaletteNormalizesBrand(t *testing.T) {
	tests := []struct {
		brand string
		want  string
	}{
		{"1890FF", "#1890ff"},
		{"#1890FF", "#1890ff"},
		{"#1890ff", "#1890ff"},
	}
	for _, tt := range tests {
		p := NewPalette(tt.brand)
		if p.Brand != tt.want {
			t.Errorf("NewPalette(%q).Brand = %q, want %q", tt.brand, p.Brand, tt.want)
		}
		if !strings.Contains(p.CSS(), "--brand-color: "+tt.want+" !important;") {
			t.Errorf("NewPalette(%q).CSS() = %s", tt.brand, p.CSS())
		}
	}
}

func TestStylesheetInstallOnce(t *testing.T) {
	var s Stylesheet
	s.Install("#ff0000")
	s.Install("#00ff00")

	if got := s.Palette().Brand; got != "#ff0000" {
		t.Errorf("brand = %s, want first installed value", got)
	}
	if !strings.Contains(s.CSS(), "--brand-color: #ff0000") {
		t.Errorf("css = %s", s.CSS())
	}
}

func TestStylesheetDefaultsWhenNotInstalled(t *testing.T) {
	var s Stylesheet
	if got := s.Palette().Brand; got != DefaultBrandColor {
		t.Errorf("brand = %s, want %s", got, DefaultBrandColor)
	}
}

func TestStylesheetImplicitDefaultLocksBrand(t *testing.T) {
	var s Stylesheet
	_ = s.CSS()
	s.Install("#ff0000")

	if got := s.Palette().Brand; got != DefaultBrandColor {
		t.Errorf("brand = %s, want %s after an early read", got, DefaultBrandColor)
	}
}

func TestStylesheetServeHTTP(t *testing.T) {
	var s Stylesheet
	s.Install("#1890ff")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dynamic-styles.css", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("content type = %s", ct)
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	req := httptest.NewRequest(http.MethodGet, "/dynamic-styles.css", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotModified {
		t.Errorf("conditional status = %d, want 304", rec.Code)
	}
}
