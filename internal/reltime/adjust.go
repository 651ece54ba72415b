package reltime

import (
	"time"

	"github.com/eoralabs/aura-memory/internal/model"
)

// Scored wraps an atom with its relative-time annotation.
type Scored struct {
	model.Atom
	RelativeTime  string  `json:"relative_time,omitempty"`
	TimeRelevance float64 `json:"time_relevance_score,omitempty"`
}

// AdjustContext filters atoms against the relative-time phrases found in
// the query. Each phrase yields the calendar-day window around its target
// time; atoms inside any window are annotated with a relative-time label
// and a relevance score (1.0 at zero offset, decaying to ~0.2 by one
// month) and returned sorted by that score. When the query carries no
// temporal signal, or no atom falls in any window, the input is returned
// unchanged — this must never narrow a result set to zero on its own.
func AdjustContext(query string, atoms []model.Atom, now time.Time) []Scored {
	if now.IsZero() {
		now = time.Now()
	}

	exprs := Expressions(query)
	if len(exprs) == 0 {
		return wrap(atoms)
	}

	type window struct {
		target     time.Time
		start, end time.Time
	}
	var windows []window
	for _, expr := range exprs {
		target := Parse(expr, now)
		start := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, target.Location())
		windows = append(windows, window{target: target, start: start, end: start.AddDate(0, 0, 1)})
	}

	var filtered []Scored
	for _, a := range atoms {
		for _, w := range windows {
			if a.Timestamp.Before(w.start) || !a.Timestamp.Before(w.end) {
				continue
			}
			filtered = append(filtered, Scored{
				Atom:          a,
				RelativeTime:  Describe(a.Timestamp, now),
				TimeRelevance: relevance(a.Timestamp, w.target),
			})
			break
		}
	}
	if len(filtered) == 0 {
		return wrap(atoms)
	}

	// Insertion sort keeps equal scores in input order; result sets here
	// are recall-limit sized.
	for i := 1; i < len(filtered); i++ {
		for j := i; j > 0 && filtered[j].TimeRelevance > filtered[j-1].TimeRelevance; j-- {
			filtered[j], filtered[j-1] = filtered[j-1], filtered[j]
		}
	}
	return filtered
}

// relevance scores how close an atom's timestamp sits to the target:
// piecewise linear, 1.0 at zero offset, 0.5 at one day, 0.2 at one week,
// fading to zero past a month.
func relevance(atomTime, target time.Time) float64 {
	delta := atomTime.Sub(target).Seconds()
	if delta < 0 {
		delta = -delta
	}

	const (
		day   = 86400
		week  = 604800
		month = 2592000
	)
	switch {
	case delta < day:
		return 1.0 - (delta/day)*0.5
	case delta < week:
		return 0.5 - ((delta-day)/(week-day))*0.3
	default:
		s := 0.2 - (delta/month)*0.2
		if s < 0 {
			return 0
		}
		return s
	}
}

func wrap(atoms []model.Atom) []Scored {
	out := make([]Scored, len(atoms))
	for i, a := range atoms {
		out[i] = Scored{Atom: a}
	}
	return out
}
