// Package reltime converts between relative-time phrases and timestamps.
// It understands a fixed bilingual (Korean/English) phrase table plus
// "N units ago" patterns; nothing here is configurable per call.
package reltime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// offset is a phrase's displacement from the reference time.
type offset struct {
	minutes int
	hours   int
	days    int
}

func (o offset) apply(ref time.Time) time.Time {
	return ref.Add(time.Duration(o.minutes)*time.Minute + time.Duration(o.hours)*time.Hour).
		AddDate(0, 0, o.days)
}

// phraseEntry pairs a phrase with its offset. The table is ordered and
// lookup takes the first phrase contained in the input, so more specific
// phrases must come before ones they contain.
type phraseEntry struct {
	phrase string
	off    offset
}

var phraseTable = []phraseEntry{
	{"방금", offset{}},
	{"조금 전", offset{minutes: -5}},
	{"아까", offset{minutes: -30}},
	{"그끄저께", offset{days: -3}},
	{"그저께", offset{days: -2}},
	{"엊그제", offset{days: -2}},
	{"어제", offset{days: -1}},
	{"오늘", offset{}},
	{"사흘전", offset{days: -3}},
	{"나흘전", offset{days: -4}},
	{"닷새전", offset{days: -5}},
	{"엿새전", offset{days: -6}},
	{"일주일전", offset{days: -7}},
	{"지난주", offset{days: -7}},
	{"이번주", offset{}},
	{"지난달", offset{days: -30}},
	{"이번달", offset{}},
	{"작년", offset{days: -365}},
	{"올해", offset{}},

	// Times of day, used for same-day queries.
	{"새벽", offset{hours: 3}},
	{"아침", offset{hours: 8}},
	{"오전", offset{hours: 10}},
	{"점심", offset{hours: 12}},
	{"오후", offset{hours: 15}},
	{"저녁", offset{hours: 18}},
	{"밤", offset{hours: 21}},

	{"yesterday", offset{days: -1}},
	{"last week", offset{days: -7}},
	{"this week", offset{}},
	{"last month", offset{days: -30}},
	{"this month", offset{}},
	{"today", offset{}},
	{"now", offset{}},
}

// unitPattern matches "N<unit> 전" / "N <unit>s ago" forms.
type unitPattern struct {
	re    *regexp.Regexp
	scale offset // per single unit; multiplied by the captured count
}

var unitPatterns = []unitPattern{
	{regexp.MustCompile(`(\d+)분\s*전`), offset{minutes: -1}},
	{regexp.MustCompile(`(\d+)시간\s*전`), offset{hours: -1}},
	{regexp.MustCompile(`(\d+)일\s*전`), offset{days: -1}},
	{regexp.MustCompile(`(\d+)주\s*전`), offset{days: -7}},
	{regexp.MustCompile(`(\d+)달\s*전`), offset{days: -30}},
	{regexp.MustCompile(`(\d+)년\s*전`), offset{days: -365}},

	{regexp.MustCompile(`(?i)(\d+)\s*minutes?\s*ago`), offset{minutes: -1}},
	{regexp.MustCompile(`(?i)(\d+)\s*hours?\s*ago`), offset{hours: -1}},
	{regexp.MustCompile(`(?i)(\d+)\s*days?\s*ago`), offset{days: -1}},
	{regexp.MustCompile(`(?i)(\d+)\s*weeks?\s*ago`), offset{days: -7}},
	{regexp.MustCompile(`(?i)(\d+)\s*months?\s*ago`), offset{days: -30}},
	{regexp.MustCompile(`(?i)(\d+)\s*years?\s*ago`), offset{days: -365}},
}

// Parse converts a relative-time expression into a timestamp against the
// reference time. Unrecognized input returns the reference unchanged;
// Parse is a safe no-op, never an error.
func Parse(expression string, ref time.Time) time.Time {
	expr := strings.ToLower(strings.TrimSpace(expression))

	for _, e := range phraseTable {
		if strings.Contains(expr, e.phrase) {
			return e.off.apply(ref)
		}
	}

	for _, p := range unitPatterns {
		if m := p.re.FindStringSubmatch(expr); m != nil {
			n, _ := strconv.Atoi(m[1])
			scaled := offset{
				minutes: p.scale.minutes * n,
				hours:   p.scale.hours * n,
				days:    p.scale.days * n,
			}
			return scaled.apply(ref)
		}
	}

	return ref
}

// Describe buckets the delta between target and reference into a fixed
// band and emits the human phrase for it. Bucket thresholds: 60s, 5m,
// 30m, 1h, 1d, 2d, 3d, 1w, 1mo, 1y, with symmetric future bands.
func Describe(target, ref time.Time) string {
	secs := int(ref.Sub(target).Seconds())

	if secs < 0 {
		future := -secs
		switch {
		case future < 60:
			return "곧"
		case future < 3600:
			return fmt.Sprintf("%d분 후", future/60)
		case future < 86400:
			return fmt.Sprintf("%d시간 후", future/3600)
		default:
			return fmt.Sprintf("%d일 후", future/86400)
		}
	}

	switch {
	case secs < 60:
		return "방금"
	case secs < 300:
		return "조금 전"
	case secs < 1800:
		return "아까"
	case secs < 3600:
		return fmt.Sprintf("%d분 전", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%d시간 전", secs/3600)
	case secs < 172800:
		return "어제"
	case secs < 259200:
		return "그저께"
	case secs < 604800:
		return fmt.Sprintf("%d일 전", secs/86400)
	case secs < 2592000:
		return fmt.Sprintf("%d주 전", secs/604800)
	case secs < 31536000:
		return fmt.Sprintf("%d달 전", secs/2592000)
	default:
		return fmt.Sprintf("%d년 전", secs/31536000)
	}
}

// Expressions returns every relative-time phrase or pattern match found
// in text, in table order then pattern order.
func Expressions(text string) []string {
	lower := strings.ToLower(text)
	var out []string

	for _, e := range phraseTable {
		if strings.Contains(lower, e.phrase) {
			out = append(out, e.phrase)
		}
	}
	for _, p := range unitPatterns {
		out = append(out, p.re.FindAllString(text, -1)...)
	}
	return out
}
