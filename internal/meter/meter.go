// Package meter estimates and reconciles the point cost of a chat turn
// from token counts. It only computes the number; deducting it from a
// balance is the caller's job.
package meter

import (
	"log/slog"
	"math"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// Usage mirrors the token-usage report of a completion call plus the
// derived point charge.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
	PointsToDeduct   int `json:"points_to_deduct"`
}

// DefaultMultiplier is the markup applied to raw token counts when
// charging points.
const DefaultMultiplier = 1.5

// DefaultModel is the vocabulary used when none is configured.
const DefaultModel = "gpt-4o"

// Meter counts tokens and converts them to points.
type Meter struct {
	enc        *tiktoken.Tiktoken // nil when the tokenizer backend is unavailable
	multiplier float64
}

// New returns a meter for the given model's vocabulary. When the
// tokenizer backend cannot be initialized (offline BPE fetch, unknown
// model) the meter falls back to a character-count approximation instead
// of failing.
func New(model string, multiplier float64, logger *slog.Logger) *Meter {
	if model == "" {
		model = DefaultModel
	}
	if multiplier <= 0 {
		multiplier = DefaultMultiplier
	}

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("tokenizer unavailable, using character estimate", "model", model, "error", err)
		enc = nil
	}
	return &Meter{enc: enc, multiplier: multiplier}
}

// CountTokens returns the token count of text under the configured
// vocabulary, or characters/4 when the tokenizer is unavailable. Empty
// text is always 0.
func (m *Meter) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	if m.enc != nil {
		return len(m.enc.Encode(text, nil, nil))
	}
	// Characters, not bytes: a byte count would triple the estimate for
	// Korean text.
	return utf8.RuneCountInString(text) / 4
}

// Estimate is the pre-flight cost of a prompt: completion tokens are
// assumed to be half the prompt, capped at maxCompletionTokens.
func (m *Meter) Estimate(prompt string, maxCompletionTokens int) Usage {
	promptTokens := m.CountTokens(prompt)
	completion := promptTokens / 2
	if completion > maxCompletionTokens {
		completion = maxCompletionTokens
	}

	u := Usage{
		PromptTokens:     promptTokens,
		CompletionTokens: completion,
		TotalTokens:      promptTokens + completion,
	}
	u.PointsToDeduct = m.Reconcile(u)
	return u
}

// Reconcile converts an actual usage report into a point charge:
// round(total * multiplier), never below 1 so every exchange meters.
func (m *Meter) Reconcile(u Usage) int {
	points := int(math.Round(float64(u.TotalTokens) * m.multiplier))
	if points < 1 {
		points = 1
	}
	return points
}
