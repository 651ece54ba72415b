package analysis

// History is a fixed-size rolling window of recent emotion snapshots.
// Callers that want smoothed scores across turns own a History value and
// pass it in explicitly; the analyzer itself stays stateless.
type History struct {
	window [][]float64
	labels []string
	size   int
}

// NewHistory returns a history holding up to size snapshots. Size values
// below 1 are clamped to 1.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{labels: EmotionLabels(), size: size}
}

// Push records an emotion snapshot, evicting the oldest when full.
func (h *History) Push(scores map[string]float64) {
	row := make([]float64, len(h.labels))
	for i, label := range h.labels {
		row[i] = scores[label]
	}
	h.window = append(h.window, row)
	if len(h.window) > h.size {
		h.window = h.window[1:]
	}
}

// Len reports how many snapshots are currently held.
func (h *History) Len() int { return len(h.window) }

// Smooth averages current with every held snapshot, label by label.
// With an empty history it returns a copy of current unchanged.
func (h *History) Smooth(current map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(h.labels))
	n := float64(len(h.window) + 1)
	for i, label := range h.labels {
		sum := current[label]
		for _, row := range h.window {
			sum += row[i]
		}
		out[label] = sum / n
	}
	return out
}
