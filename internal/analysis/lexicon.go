// Package analysis derives emotion, topic, sentiment and heuristic signal
// scores from raw conversation text. All scoring is lexical: case-normalized
// substring containment against fixed marker tables, no stemming or NLP.
package analysis

import "strings"

// Lexicon scores text by counting marker substrings per category. Each
// match adds Step to the category score, capped at 1.0.
type Lexicon struct {
	Categories map[string][]string
	Step       float64
}

// Score returns one entry per category, each in [0,1]. Every category in
// the lexicon appears in the result, even at zero.
func (l Lexicon) Score(text string) map[string]float64 {
	lower := strings.ToLower(text)
	scores := make(map[string]float64, len(l.Categories))
	for cat, markers := range l.Categories {
		s := float64(countMarkers(lower, markers)) * l.Step
		if s > 1.0 {
			s = 1.0
		}
		scores[cat] = s
	}
	return scores
}

// countMarkers counts how many markers occur in lower (already lowercased).
func countMarkers(lower string, markers []string) int {
	n := 0
	for _, m := range markers {
		if strings.Contains(lower, m) {
			n++
		}
	}
	return n
}

// density is the single-list variant used by the insight, intuition and
// belief heuristics: min(matches*step, 1.0).
func density(text string, markers []string, step float64) float64 {
	s := float64(countMarkers(strings.ToLower(text), markers)) * step
	if s > 1.0 {
		s = 1.0
	}
	return s
}

// emotionLexicon is the fixed emotion vocabulary. The label set never
// changes at runtime; recall relies on every atom carrying exactly these
// keys. Markers cover Korean and English.
var emotionLexicon = Lexicon{
	Step: 0.3,
	Categories: map[string][]string{
		"joy":          {"기쁘", "행복", "즐거", "좋", "감사", "사랑", "웃", "happy", "glad", "love", "thank"},
		"sadness":      {"슬프", "우울", "아프", "힘들", "불안", "걱정", "sad", "depress", "lonely"},
		"anger":        {"화나", "짜증", "분노", "열받", "싫", "angry", "annoy", "hate"},
		"fear":         {"무서", "두려", "겁", "불안", "걱정", "afraid", "scared", "anxious"},
		"surprise":     {"놀라", "신기", "대박", "와", "surpris", "amazing", "wow"},
		"disgust":      {"역겨", "싫", "혐오", "구역", "disgust", "gross"},
		"trust":        {"믿", "신뢰", "안전", "편안", "trust", "safe", "reliable"},
		"anticipation": {"기대", "희망", "꿈", "미래", "hope", "dream", "future"},
	},
}

// topicCategory pairs a topic name with its markers. Order matters:
// extraction returns the first category with any match, not the best one.
type topicCategory struct {
	name    string
	markers []string
}

var topicCategories = []topicCategory{
	{"technology", []string{"ai", "인공지능", "기술", "프로그래밍", "코드", "code", "programming", "technology"}},
	{"philosophy", []string{"철학", "생각", "의미", "존재", "진리", "philosophy", "meaning", "existence"}},
	{"emotion", []string{"감정", "기분", "마음", "사랑", "행복", "emotion", "feeling"}},
	{"daily", []string{"일상", "생활", "요리", "운동", "취미", "daily", "cooking", "hobby"}},
	{"work", []string{"일", "업무", "직장", "프로젝트", "회사", "work", "project", "company"}},
	{"learning", []string{"학습", "공부", "교육", "지식", "배움", "study", "education", "knowledge"}},
}

// DefaultTopic is returned when no topic category matches.
const DefaultTopic = "general"

var positiveMarkers = []string{"좋", "기쁘", "행복", "감사", "사랑", "즐거", "good", "happy", "love", "thank"}
var negativeMarkers = []string{"싫", "슬프", "화나", "힘들", "아프", "불안", "bad", "sad", "hate", "angry"}

var insightMarkers = []string{
	"왜냐하면", "그 이유는", "이는", "따라서", "결론적으로",
	"because", "reason", "therefore", "thus", "hence",
	"분석", "이해", "깨달음", "통찰", "인사이트",
}

var intuitionMarkers = []string{
	"느낌", "직감", "본능", "무의식", "감",
	"feel", "intuition", "instinct", "gut",
	"갑자기", "문득", "어쩐지", "모르겠지만",
}

var beliefMarkers = []string{
	"믿어", "확신", "분명", "틀림없", "절대",
	"believe", "certain", "sure", "definitely",
	"나는", "내 생각", "내 믿음", "내 신념",
}

const (
	insightStep   = 0.2
	intuitionStep = 0.15
	beliefStep    = 0.1
)

// specialKeywords become tags whenever they appear in a turn.
var specialKeywords = []string{"ai", "인공지능", "철학", "감정", "생각", "미래", "과거", "현재"}

// emotionHints is the short list used for the has_emotion context flag.
var emotionHints = []string{"기쁘", "슬프", "화나", "좋", "싫", "happy", "sad", "angry"}

// EmotionLabels returns the fixed emotion vocabulary in sorted order.
func EmotionLabels() []string {
	return []string{"anger", "anticipation", "disgust", "fear", "joy", "sadness", "surprise", "trust"}
}
