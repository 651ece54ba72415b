package analysis

import (
	"sort"
	"strings"

	"github.com/eoralabs/aura-memory/internal/model"
)

// Signals is the full derived-signal bundle for one conversation turn.
type Signals struct {
	EmotionScore   map[string]float64 `json:"emotion_score"`
	Context        model.Context      `json:"context"`
	Tags           []string           `json:"tags"`
	InsightLevel   float64            `json:"insight_level"`
	IntuitionScore float64            `json:"intuition_score"`
	BeliefStrength float64            `json:"belief_strength"`
}

// Analyze derives signals from a single piece of text. It is total:
// empty or unmatchable input yields the all-default result, never an error.
func Analyze(text string) Signals {
	return AnalyzeTurn(text, "", "")
}

// AnalyzeTurn derives signals from a message/response pair. Emotion,
// sentiment and the heuristic scores are computed over the combined text;
// topic, complexity and the question flag come from the message alone.
func AnalyzeTurn(message, response, memoryType string) Signals {
	combined := strings.TrimSpace(message + " " + response)

	sig := Signals{
		EmotionScore:   emotionLexicon.Score(combined),
		InsightLevel:   density(combined, insightMarkers, insightStep),
		IntuitionScore: density(combined, intuitionMarkers, intuitionStep),
		BeliefStrength: density(combined, beliefMarkers, beliefStep),
	}

	sig.Context = model.Context{
		Topic:          Topic(message),
		Sentiment:      Sentiment(combined),
		Complexity:     float64(len(strings.Fields(message))) / 10.0,
		ResponseLength: len(response),
		HasQuestion:    strings.Contains(message, "?"),
		HasEmotion:     countMarkers(strings.ToLower(message), emotionHints) > 0,
	}

	sig.Tags = buildTags(combined, sig, memoryType)
	return sig
}

// Topic returns the first topic category whose markers appear in text, in
// the fixed category order; "general" when nothing matches.
func Topic(text string) string {
	lower := strings.ToLower(text)
	for _, tc := range topicCategories {
		if countMarkers(lower, tc.markers) > 0 {
			return tc.name
		}
	}
	return DefaultTopic
}

// Sentiment compares positive and negative marker counts. Ties, including
// zero matches on both sides, resolve to "neutral".
func Sentiment(text string) string {
	lower := strings.ToLower(text)
	pos := countMarkers(lower, positiveMarkers)
	neg := countMarkers(lower, negativeMarkers)
	switch {
	case pos > neg:
		return "positive"
	case neg > pos:
		return "negative"
	default:
		return "neutral"
	}
}

// DominantEmotion returns the highest-scoring label and its score.
// Label ties resolve alphabetically so the result is deterministic.
func DominantEmotion(scores map[string]float64) (string, float64) {
	best, bestScore := "", -1.0
	for _, label := range EmotionLabels() {
		if s := scores[label]; s > bestScore {
			best, bestScore = label, s
		}
	}
	return best, bestScore
}

// buildTags assembles the tag set: memory type, topic, dominant emotion
// above threshold, and any special keywords present in the turn.
func buildTags(combined string, sig Signals, memoryType string) []string {
	seen := map[string]bool{}
	var tags []string
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}

	add(memoryType)
	if sig.Context.Topic != DefaultTopic {
		add(sig.Context.Topic)
	}
	if label, score := DominantEmotion(sig.EmotionScore); score > 0.3 {
		add(label)
	}
	lower := strings.ToLower(combined)
	for _, kw := range specialKeywords {
		if strings.Contains(lower, kw) {
			add(kw)
		}
	}

	sort.Strings(tags)
	return tags
}
