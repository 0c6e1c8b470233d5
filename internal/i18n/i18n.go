package i18n

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var translations = make(map[string]map[string]string)

// Init loads every <lang>.json file from dir. Missing or malformed files are
// skipped; lookups then fall back to the key itself.
func Init(dir string) {
	files, _ := os.ReadDir(dir)
	for _, f := range files {
		if filepath.Ext(f.Name()) != ".json" {
			continue
		}
		lang := strings.TrimSuffix(f.Name(), ".json")
		data, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			continue
		}
		var t map[string]string
		if err := json.Unmarshal(data, &t); err != nil {
			continue
		}
		translations[lang] = t
	}
}

func T(lang, key string) string {
	if t, ok := translations[lang]; ok {
		if val, ok := t[key]; ok {
			return val
		}
	}
	// Fallback to en
	if t, ok := translations["en"]; ok {
		if val, ok := t[key]; ok {
			return val
		}
	}
	return key
}

// GetLang reads the lang cookie; unknown languages fall back to en.
func GetLang(r *http.Request) string {
	if cookie, err := r.Cookie("lang"); err == nil {
		if _, ok := translations[cookie.Value]; ok {
			return cookie.Value
		}
	}
	return "en"
}

func GetAvailableLangs() []string {
	langs := []string{}
	for l := range translations {
		langs = append(langs, l)
	}
	if len(langs) == 0 {
		return []string{"en", "hu"}
	}
	return langs
}
