package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KnuggetDeveloper/Carousel-Test/internal/logger"
)

func TestLibraryDefaults(t *testing.T) {
	lib, err := NewLibrary(t.TempDir(), logger.NewNop())
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}

	for _, name := range []string{ContentPrompt, FirstImagePrompt, RemainingImagesPrompt} {
		tpl, ok := lib.Get(name)
		if !ok {
			t.Fatalf("built-in prompt %q missing", name)
		}
		if strings.TrimSpace(tpl) == "" {
			t.Errorf("built-in prompt %q is blank", name)
		}
	}

	if tpl, _ := lib.Get(ContentPrompt); !strings.Contains(tpl, "{transcript}") {
		t.Error("content prompt must reference {transcript}")
	}
	for _, name := range []string{FirstImagePrompt, RemainingImagesPrompt} {
		tpl, _ := lib.Get(name)
		for _, ph := range []string{"{heading}", "{explanation}"} {
			if !strings.Contains(tpl, ph) {
				t.Errorf("%s prompt must reference %s", name, ph)
			}
		}
	}

	if _, ok := lib.Get("nope"); ok {
		t.Error("unknown name should not resolve")
	}
}

func TestLibraryOverrides(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, ContentPrompt+".txt")
	if err := os.WriteFile(override, []byte("Custom: {transcript}"), 0644); err != nil {
		t.Fatal(err)
	}

	lib, err := NewLibrary(dir, logger.NewNop())
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}

	t.Run("file in prompts dir wins over default", func(t *testing.T) {
		tpl, ok := lib.Get(ContentPrompt)
		if !ok || tpl != "Custom: {transcript}" {
			t.Errorf("got %q, ok=%v", tpl, ok)
		}
	})

	t.Run("blank files are ignored", func(t *testing.T) {
		blank := filepath.Join(dir, FirstImagePrompt+".txt")
		if err := os.WriteFile(blank, []byte("  \n"), 0644); err != nil {
			t.Fatal(err)
		}
		lib.loadFile(blank)
		tpl, ok := lib.Get(FirstImagePrompt)
		if !ok || strings.TrimSpace(tpl) == "" {
			t.Error("blank override should not replace the default")
		}
	})

	t.Run("removing the file restores the default", func(t *testing.T) {
		lib.removeFile(override)
		tpl, ok := lib.Get(ContentPrompt)
		if !ok || tpl == "Custom: {transcript}" {
			t.Errorf("default not restored, got %q", tpl)
		}
	})

	t.Run("new names extend the library", func(t *testing.T) {
		extra := filepath.Join(dir, "experiment.txt")
		if err := os.WriteFile(extra, []byte("Try {heading} like this"), 0644); err != nil {
			t.Fatal(err)
		}
		lib.loadFile(extra)
		if _, ok := lib.Get("experiment"); !ok {
			t.Error("new prompt file was not registered")
		}
		found := false
		for _, n := range lib.Names() {
			if n == "experiment" {
				found = true
			}
		}
		if !found {
			t.Errorf("Names() = %v, missing experiment", lib.Names())
		}
	})
}
