package usage

import (
	"testing"
	"time"
)

func TestTracker(t *testing.T) {
	tr := NewTracker()

	tr.Log(Record{Provider: "gemini", Model: "m", Operation: "content", PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30})
	tr.Log(Record{Provider: "gemini", Model: "m", Operation: "first_image", PromptTokens: 5, CompletionTokens: 0, TotalTokens: 5})
	tr.Log(Record{Provider: "gemini", Model: "m", Operation: "remaining_images", PromptTokens: 7, CompletionTokens: 1, TotalTokens: 8})

	t.Run("totals sum all records", func(t *testing.T) {
		got := tr.Totals()
		want := Summary{Calls: 3, PromptTokens: 22, CompletionTokens: 21, TotalTokens: 43}
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("recent returns newest first", func(t *testing.T) {
		recent := tr.Recent(2)
		if len(recent) != 2 {
			t.Fatalf("want 2, got %d", len(recent))
		}
		if recent[0].Operation != "remaining_images" || recent[1].Operation != "first_image" {
			t.Errorf("order wrong: %s, %s", recent[0].Operation, recent[1].Operation)
		}
	})

	t.Run("recent caps at record count", func(t *testing.T) {
		if got := tr.Recent(100); len(got) != 3 {
			t.Errorf("want 3, got %d", len(got))
		}
		if got := tr.Recent(0); len(got) != 3 {
			t.Errorf("n<=0 should return everything, got %d", len(got))
		}
	})

	t.Run("created_at is stamped", func(t *testing.T) {
		if tr.Recent(1)[0].CreatedAt.IsZero() {
			t.Error("CreatedAt not stamped")
		}
		fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		tr.Log(Record{Operation: "content", CreatedAt: fixed})
		if !tr.Recent(1)[0].CreatedAt.Equal(fixed) {
			t.Error("explicit CreatedAt overwritten")
		}
	})
}
