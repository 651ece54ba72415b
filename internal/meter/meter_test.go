package meter

import (
	"testing"

	openai "github.com/openai/openai-go/v3"
)

// newFallbackMeter builds a meter on the character-count path so tests do
// not depend on the BPE vocabulary being fetchable.
func newFallbackMeter(multiplier float64) *Meter {
	return &Meter{multiplier: multiplier}
}

func TestCountTokensEmpty(t *testing.T) {
	m := newFallbackMeter(1.5)
	if got := m.CountTokens(""); got != 0 {
		t.Errorf("expected 0 for empty text, got %d", got)
	}
}

func TestCountTokensFallback(t *testing.T) {
	m := newFallbackMeter(1.5)
	// 20 characters / 4
	if got := m.CountTokens("abcdefghijklmnopqrst"); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	// Short non-empty text can estimate to zero tokens
	if got := m.CountTokens("hi"); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestCountTokensFallbackCountsRunes(t *testing.T) {
	m := newFallbackMeter(1.5)
	// 10 runes (28 bytes): the estimate must not scale with encoding width.
	if got := m.CountTokens("안녕하세요 반가워요"); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
}

func TestCountTokensMonotonic(t *testing.T) {
	m := newFallbackMeter(1.5)
	short := m.CountTokens("안녕하세요")
	long := m.CountTokens("안녕하세요 오늘 하루는 어떠셨나요 저는 잘 지냈어요")
	if long <= short {
		t.Errorf("expected longer text to cost more: %d vs %d", short, long)
	}
}

func TestEstimate(t *testing.T) {
	m := newFallbackMeter(1.5)

	// 40 chars -> 10 prompt tokens, completion = 10/2 = 5
	prompt := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	u := m.Estimate(prompt, 512)
	if u.PromptTokens != 10 || u.CompletionTokens != 5 || u.TotalTokens != 15 {
		t.Errorf("unexpected estimate: %+v", u)
	}
	// round(15 * 1.5) = 23
	if u.PointsToDeduct != 23 {
		t.Errorf("expected 23 points, got %d", u.PointsToDeduct)
	}
}

func TestEstimateCapsCompletion(t *testing.T) {
	m := newFallbackMeter(1.5)

	prompt := make([]byte, 400) // 100 prompt tokens
	for i := range prompt {
		prompt[i] = 'a'
	}
	u := m.Estimate(string(prompt), 20)
	if u.CompletionTokens != 20 {
		t.Errorf("expected completion capped at 20, got %d", u.CompletionTokens)
	}
	if u.TotalTokens != 120 {
		t.Errorf("expected total 120, got %d", u.TotalTokens)
	}
}

func TestEstimateEmptyPromptStillCharges(t *testing.T) {
	m := newFallbackMeter(1.5)
	u := m.Estimate("", 512)
	if u.TotalTokens != 0 {
		t.Errorf("expected 0 tokens, got %d", u.TotalTokens)
	}
	if u.PointsToDeduct != 1 {
		t.Errorf("expected minimum charge of 1, got %d", u.PointsToDeduct)
	}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		multiplier float64
		total      int
		want       int
	}{
		{1.5, 100, 150},
		{1.5, 1, 2},  // round(1.5)
		{1.5, 0, 1},  // floor at 1
		{2.0, 7, 14},
		{1.0, 3, 3},
	}
	for _, tt := range tests {
		m := newFallbackMeter(tt.multiplier)
		if got := m.Reconcile(Usage{TotalTokens: tt.total}); got != tt.want {
			t.Errorf("Reconcile(total=%d, x%v) = %d, want %d", tt.total, tt.multiplier, got, tt.want)
		}
	}
}

func TestFromCompletion(t *testing.T) {
	u := FromCompletion(openai.CompletionUsage{
		PromptTokens:     120,
		CompletionTokens: 30,
		TotalTokens:      150,
	})
	if u.PromptTokens != 120 || u.CompletionTokens != 30 || u.TotalTokens != 150 {
		t.Errorf("usage not mapped: %+v", u)
	}
	if u.PointsToDeduct != 0 {
		t.Errorf("charge belongs to Reconcile, got %d", u.PointsToDeduct)
	}

	m := newFallbackMeter(1.5)
	if got := m.Reconcile(u); got != 225 {
		t.Errorf("expected 225 points, got %d", got)
	}
}

func TestNewDefaults(t *testing.T) {
	m := New("", 0, nil)
	if m.multiplier != DefaultMultiplier {
		t.Errorf("expected default multiplier, got %v", m.multiplier)
	}
	// Whichever tokenizer path New landed on, counting must work.
	if got := m.CountTokens("hello world, how are you"); got <= 0 {
		t.Errorf("expected positive token count, got %d", got)
	}
}
