package i18n

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func initTestLangs(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	en := `{"app_title": "Carousel Test Bench", "only_en": "fallback"}`
	hu := `{"app_title": "Carousel Tesztpad"}`
	if err := os.WriteFile(filepath.Join(dir, "en.json"), []byte(en), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "hu.json"), []byte(hu), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	translations = make(map[string]map[string]string)
	Init(dir)
}

func TestT(t *testing.T) {
	initTestLangs(t)

	if got := T("hu", "app_title"); got != "Carousel Tesztpad" {
		t.Errorf("hu app_title = %q", got)
	}
	if got := T("hu", "only_en"); got != "fallback" {
		t.Errorf("missing hu key must fall back to en, got %q", got)
	}
	if got := T("de", "app_title"); got != "Carousel Test Bench" {
		t.Errorf("unknown lang must fall back to en, got %q", got)
	}
	if got := T("en", "no_such_key"); got != "no_such_key" {
		t.Errorf("unknown key must echo the key, got %q", got)
	}
	if _, ok := translations["broken"]; ok {
		t.Error("malformed file must be skipped")
	}
}

func TestGetLang(t *testing.T) {
	initTestLangs(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetLang(r); got != "en" {
		t.Errorf("no cookie: got %q, want en", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "lang", Value: "hu"})
	if got := GetLang(r); got != "hu" {
		t.Errorf("hu cookie: got %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "lang", Value: "xx"})
	if got := GetLang(r); got != "en" {
		t.Errorf("unknown cookie lang must fall back to en, got %q", got)
	}
}
