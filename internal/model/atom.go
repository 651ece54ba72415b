// Package model defines the core memory data types.
package model

import "time"

// Atom is one stored conversational unit: a user/response exchange plus
// the signals derived from it at creation time.
type Atom struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	SessionID       string             `json:"session_id,omitempty"`
	Message         string             `json:"message"`
	Response        string             `json:"response,omitempty"`
	Timestamp       time.Time          `json:"timestamp"`
	MemoryType      string             `json:"memory_type"`
	Importance      float64            `json:"importance"`
	EmotionScore    map[string]float64 `json:"emotion_score"`
	Context         Context            `json:"context"`
	Tags            []string           `json:"tags,omitempty"`
	InsightLevel    float64            `json:"insight_level"`
	IntuitionScore  float64            `json:"intuition_score"`
	BeliefStrength  float64            `json:"belief_strength"`
	RelatedMemories []string           `json:"related_memories,omitempty"`
}

// Context is the derived snapshot of a conversation turn, computed once
// when the atom is created.
type Context struct {
	Topic          string  `json:"topic"`
	Sentiment      string  `json:"sentiment"`
	Complexity     float64 `json:"complexity"`
	ResponseLength int     `json:"response_length"`
	HasQuestion    bool    `json:"has_question"`
	HasEmotion     bool    `json:"has_emotion"`
}

// ValidMemoryTypes are the allowed memory type tags.
var ValidMemoryTypes = map[string]bool{
	"conversation": true,
	"insight":      true,
	"emotion":      true,
	"belief":       true,
	"intuition":    true,
}

// PrimaryText returns the text used for deduplication and scoring:
// the message, or the response when the message is empty.
func (a *Atom) PrimaryText() string {
	if a.Message != "" {
		return a.Message
	}
	return a.Response
}
