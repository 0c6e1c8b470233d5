package usage

import (
	"sync"
	"time"
)

// Record is one logged AI call.
type Record struct {
	Provider         string    `json:"provider"`
	Model            string    `json:"model"`
	Operation        string    `json:"operation"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	CreatedAt        time.Time `json:"created_at"`
}

// Summary aggregates every record of the session.
type Summary struct {
	Calls            int `json:"calls"`
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Tracker keeps an in-memory tally of AI usage. Single-user harness; nothing
// is persisted across restarts.
type Tracker struct {
	mu      sync.Mutex
	records []Record
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Log appends one record, stamping CreatedAt when unset.
func (t *Tracker) Log(r Record) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	t.mu.Lock()
	t.records = append(t.records, r)
	t.mu.Unlock()
}

// Totals sums every logged record.
func (t *Tracker) Totals() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	var s Summary
	for _, r := range t.records {
		s.Calls++
		s.PromptTokens += r.PromptTokens
		s.CompletionTokens += r.CompletionTokens
		s.TotalTokens += r.TotalTokens
	}
	return s
}

// Recent returns up to n records, newest first.
func (t *Tracker) Recent(n int) []Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n <= 0 || n > len(t.records) {
		n = len(t.records)
	}
	out := make([]Record, 0, n)
	for i := len(t.records) - 1; i >= len(t.records)-n; i-- {
		out = append(out, t.records[i])
	}
	return out
}
