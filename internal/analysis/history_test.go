package analysis

import (
	"math"
	"testing"
)

func TestHistoryWindowEviction(t *testing.T) {
	h := NewHistory(2)
	h.Push(map[string]float64{"joy": 0.9})
	h.Push(map[string]float64{"joy": 0.3})
	h.Push(map[string]float64{"joy": 0.6})

	if h.Len() != 2 {
		t.Fatalf("expected window of 2, got %d", h.Len())
	}

	// Oldest snapshot (0.9) evicted: (0.0 + 0.3 + 0.6) / 3
	got := h.Smooth(map[string]float64{"joy": 0.0})
	if math.Abs(got["joy"]-0.3) > 1e-9 {
		t.Errorf("expected smoothed joy 0.3, got %v", got["joy"])
	}
}

func TestHistoryEmptySmoothing(t *testing.T) {
	h := NewHistory(5)
	current := map[string]float64{"joy": 0.7, "fear": 0.2}
	got := h.Smooth(current)

	for _, label := range EmotionLabels() {
		if math.Abs(got[label]-current[label]) > 1e-9 {
			t.Errorf("label %q: expected %v, got %v", label, current[label], got[label])
		}
	}
}

func TestHistoryClampsSize(t *testing.T) {
	h := NewHistory(0)
	h.Push(map[string]float64{"joy": 1})
	h.Push(map[string]float64{"joy": 0})
	if h.Len() != 1 {
		t.Errorf("expected size clamped to 1, got %d", h.Len())
	}
}
