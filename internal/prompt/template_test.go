package prompt

import (
	"errors"
	"reflect"
	"testing"
)

func TestSubstitute(t *testing.T) {
	t.Run("replaces all occurrences of each placeholder", func(t *testing.T) {
		got, err := Substitute("{name} meets {name} at {place}", map[string]string{
			"name":  "Ada",
			"place": "the lab",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Ada meets Ada at the lab" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("is case-sensitive", func(t *testing.T) {
		got, err := Substitute("{Name} and {name}", map[string]string{"name": "Ada"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "{Name} and Ada" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("leaves unmatched placeholders verbatim", func(t *testing.T) {
		got, err := Substitute("Hello {who}", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Hello {who}" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("does not re-substitute values containing placeholders", func(t *testing.T) {
		got, err := Substitute("{a} {b}", map[string]string{
			"a": "literal {b} inside",
			"b": "beta",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "literal {b} inside beta" {
			t.Errorf("value was re-scanned: got %q", got)
		}
	})

	t.Run("is idempotent once no keys remain unmatched", func(t *testing.T) {
		values := map[string]string{"heading": "Cats", "explanation": "Independent."}
		once, err := Substitute("{heading}: {explanation}", values)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		twice, err := Substitute(once, values)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if once != twice {
			t.Errorf("second pass changed output: %q vs %q", once, twice)
		}
	})

	t.Run("rejects empty and blank templates", func(t *testing.T) {
		for _, tpl := range []string{"", "   ", "\n\t "} {
			if _, err := Substitute(tpl, nil); !errors.Is(err, ErrEmptyPrompt) {
				t.Errorf("template %q: want ErrEmptyPrompt, got %v", tpl, err)
			}
		}
	})
}

func TestEnsureImageInstruction(t *testing.T) {
	cases := []struct {
		name   string
		prompt string
		want   string
	}{
		{"already asks to draw", "Draw a blue circle", "Draw a blue circle"},
		{"plain description gets prefix", "A red square", "Generate an image: A red square"},
		{"generate present", "Please generate something nice", "Please generate something nice"},
		{"create uppercase", "CREATE a poster", "CREATE a poster"},
		{"image mid-sentence", "An image of a cat", "An image of a cat"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EnsureImageInstruction(tc.prompt); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildImagePrompt(t *testing.T) {
	t.Run("substitutes and applies guard", func(t *testing.T) {
		got, err := BuildImagePrompt("A {color} square", map[string]string{"color": "red"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Generate an image: A red square" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("rejects blank templates", func(t *testing.T) {
		if _, err := BuildImagePrompt("  ", nil); !errors.Is(err, ErrEmptyPrompt) {
			t.Errorf("want ErrEmptyPrompt, got %v", err)
		}
	})

	t.Run("rejects prompts that substitute to nothing", func(t *testing.T) {
		_, err := BuildImagePrompt("{heading}{explanation}", map[string]string{
			"heading":     "",
			"explanation": " ",
		})
		if !errors.Is(err, ErrEmptyPrompt) {
			t.Errorf("want ErrEmptyPrompt, got %v", err)
		}
	})
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("{transcript} then {heading}, {transcript} again")
	want := []string{"transcript", "heading"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if names := Placeholders("no placeholders here"); len(names) != 0 {
		t.Errorf("expected none, got %v", names)
	}
}
