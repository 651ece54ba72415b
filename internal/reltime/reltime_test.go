package reltime

import (
	"testing"
	"time"
)

func TestParseRoundTrip(t *testing.T) {
	ref := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		expr string
		want string
	}{
		{"방금", "방금"},
		{"어제", "어제"},
		{"그저께", "그저께"},
		{"엊그제", "그저께"},
		{"지난주", "1주 전"},
		{"지난달", "1달 전"},
		{"작년", "1년 전"},
		{"3시간 전", "3시간 전"},
		{"5일 전", "5일 전"},
		{"2주 전", "2주 전"},
		{"yesterday", "어제"},
		{"last week", "1주 전"},
		{"10 minutes ago", "아까"}, // 10 minutes lands in the 5m–30m bucket
	}
	for _, tt := range tests {
		target := Parse(tt.expr, ref)
		if got := Describe(target, ref); got != tt.want {
			t.Errorf("Parse+Describe(%q) = %q, want %q", tt.expr, got, tt.want)
		}
	}
}

func TestParseOffsets(t *testing.T) {
	ref := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		expr string
		want time.Time
	}{
		{"어제 뭐 했지?", ref.AddDate(0, 0, -1)},
		{"조금 전에 한 말", ref.Add(-5 * time.Minute)},
		{"아까 그 얘기", ref.Add(-30 * time.Minute)},
		{"3시간 전 일정", ref.Add(-3 * time.Hour)},
		{"2 days ago", ref.AddDate(0, 0, -2)},
		{"", ref},
		{"시간 표현 없음", ref},
	}
	for _, tt := range tests {
		if got := Parse(tt.expr, ref); !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestParsePhraseBeatsPattern(t *testing.T) {
	ref := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
	// Table phrases win over unit patterns when both appear.
	if got := Parse("어제 3시간 전쯤", ref); !got.Equal(ref.AddDate(0, 0, -1)) {
		t.Errorf("expected phrase to win, got %v", got)
	}
}

func TestDescribeBuckets(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		target time.Time
		want   string
	}{
		{now.Add(-30 * time.Second), "방금"},
		{now.Add(-3 * time.Minute), "조금 전"},
		{now.Add(-20 * time.Minute), "아까"},
		{now.Add(-45 * time.Minute), "45분 전"},
		{now.Add(-2 * time.Hour), "2시간 전"},
		{now.AddDate(0, 0, -1), "어제"},
		{now.AddDate(0, 0, -2), "그저께"},
		{now.AddDate(0, 0, -4), "4일 전"},
		{now.AddDate(0, 0, -14), "2주 전"},
		{now.AddDate(0, 0, -60), "2달 전"},
		{now.AddDate(0, 0, -400), "1년 전"},
		{now.Add(30 * time.Second), "곧"},
		{now.Add(10 * time.Minute), "10분 후"},
		{now.Add(5 * time.Hour), "5시간 후"},
		{now.AddDate(0, 0, 3), "3일 후"},
	}
	for _, tt := range tests {
		if got := Describe(tt.target, now); got != tt.want {
			t.Errorf("Describe(%v) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestExpressions(t *testing.T) {
	got := Expressions("어제 본 영화를 3시간 전에 얘기했어")
	want := []string{"어제", "3시간 전"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expression %d: got %q, want %q", i, got[i], want[i])
		}
	}

	if got := Expressions("we met 2 days ago"); len(got) != 1 || got[0] != "2 days ago" {
		t.Errorf("expected full pattern match, got %v", got)
	}

	if got := Expressions("시간 표현이 없는 문장"); len(got) != 0 {
		t.Errorf("expected none, got %v", got)
	}
}
