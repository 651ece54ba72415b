// Package recall merges multiple retrieval strategies over the atom store
// into one deduplicated, ranked result list.
package recall

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/eoralabs/aura-memory/internal/model"
	"github.com/eoralabs/aura-memory/internal/store"
)

// Options are the tunable ranking constants. The defaults reproduce the
// product's historical behavior; none of them are calibrated, so treat
// them as policy knobs rather than a relevance model.
type Options struct {
	OverlapWeight float64       // score per word shared between query and atom
	FreshnessDays int           // linear freshness bonus horizon, in days
	RecencyWindow time.Duration // how far back the recency strategy reaches
}

// DefaultOptions returns the historical defaults.
func DefaultOptions() Options {
	return Options{
		OverlapWeight: 10,
		FreshnessDays: 30,
		RecencyWindow: 7 * 24 * time.Hour,
	}
}

// tagVocabulary is the fixed set of domain tags the tag strategy scans a
// query for, in both languages the product serves.
var tagVocabulary = []string{
	"일정", "여행", "시험", "친구", "비", "날씨", "시간", "장소",
	"schedule", "travel", "exam", "friend", "weather", "place",
}

// Engine runs the three retrieval strategies and merges their results.
type Engine struct {
	store store.Store
	log   *slog.Logger
	opts  Options
}

// New returns an engine over the given store. A nil logger falls back to
// slog.Default; zero option fields take their defaults.
func New(s store.Store, logger *slog.Logger, opts Options) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultOptions()
	if opts.OverlapWeight == 0 {
		opts.OverlapWeight = def.OverlapWeight
	}
	if opts.FreshnessDays == 0 {
		opts.FreshnessDays = def.FreshnessDays
	}
	if opts.RecencyWindow == 0 {
		opts.RecencyWindow = def.RecencyWindow
	}
	return &Engine{store: s, log: logger, opts: opts}
}

// Recall returns up to limit atoms relevant to the query, ranked by word
// overlap plus a freshness bonus. A failing strategy contributes nothing
// and is logged; Recall itself never fails — at worst it returns an empty
// list. On context cancellation the strategies completed so far are ranked
// and returned.
func (e *Engine) Recall(ctx context.Context, query, userID string, limit int) []model.Atom {
	if limit <= 0 {
		limit = 5
	}
	per := limit / 3
	if per < 1 {
		per = 1
	}

	strategies := []struct {
		name string
		run  func() ([]model.Atom, error)
	}{
		{"tags", func() ([]model.Atom, error) { return e.byTags(ctx, query, userID, per) }},
		{"keywords", func() ([]model.Atom, error) { return e.byKeywords(ctx, query, userID, per) }},
		{"recency", func() ([]model.Atom, error) { return e.byRecency(ctx, userID, per) }},
	}

	var merged []model.Atom
	for _, st := range strategies {
		if ctx.Err() != nil {
			break
		}
		atoms, err := st.run()
		if err != nil {
			e.log.Warn("recall strategy degraded", "strategy", st.name, "error", err)
			continue
		}
		merged = append(merged, atoms...)
	}

	atoms := e.rank(dedupe(merged), query)
	if len(atoms) > limit {
		atoms = atoms[:limit]
	}
	return atoms
}

// byTags matches atoms whose tag set or text contains any domain tag
// present in the query. No tags in the query means no contribution.
func (e *Engine) byTags(ctx context.Context, query, userID string, limit int) ([]model.Atom, error) {
	tags := extractTags(query)
	if len(tags) == 0 {
		return nil, nil
	}
	return e.store.Query(ctx, store.QueryParams{
		UserID:     userID,
		Tags:       tags,
		TagsInText: true,
		Limit:      limit,
	})
}

// byKeywords matches atoms containing any query word of length >= 2.
func (e *Engine) byKeywords(ctx context.Context, query, userID string, limit int) ([]model.Atom, error) {
	kws := keywords(query)
	if len(kws) == 0 {
		return nil, nil
	}
	return e.store.Query(ctx, store.QueryParams{
		UserID:   userID,
		MatchAny: kws,
		Limit:    limit,
	})
}

// byRecency returns the newest atoms of the recency window regardless of
// textual match — the fallback for "what have we been discussing" queries.
func (e *Engine) byRecency(ctx context.Context, userID string, limit int) ([]model.Atom, error) {
	return e.store.Query(ctx, store.QueryParams{
		UserID: userID,
		Since:  time.Now().Add(-e.opts.RecencyWindow),
		Limit:  limit,
	})
}

// extractTags returns every vocabulary tag contained in the query.
func extractTags(query string) []string {
	lower := strings.ToLower(query)
	var tags []string
	for _, tag := range tagVocabulary {
		if strings.Contains(lower, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

// keywords splits the query into words of at least two runes, up to five.
func keywords(query string) []string {
	var kws []string
	for _, w := range strings.Fields(query) {
		if len([]rune(w)) >= 2 {
			kws = append(kws, w)
			if len(kws) == 5 {
				break
			}
		}
	}
	return kws
}

// dedupe drops atoms whose primary text repeats one already seen. First
// occurrence wins, which preserves strategy priority for identical text.
func dedupe(atoms []model.Atom) []model.Atom {
	seen := map[string]bool{}
	var out []model.Atom
	for _, a := range atoms {
		text := a.PrimaryText()
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, a)
	}
	return out
}

// rank sorts atoms descending by word-overlap score plus freshness bonus.
// The sort is stable so ties keep the tag > keyword > recency merge order.
func (e *Engine) rank(atoms []model.Atom, query string) []model.Atom {
	queryWords := wordSet(query)
	now := time.Now()

	type scored struct {
		atom  model.Atom
		score float64
	}
	rows := make([]scored, len(atoms))
	for i, a := range atoms {
		rows[i] = scored{atom: a, score: e.score(&a, queryWords, now)}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].score > rows[j].score
	})

	out := make([]model.Atom, len(rows))
	for i, r := range rows {
		out[i] = r.atom
	}
	return out
}

func (e *Engine) score(a *model.Atom, queryWords map[string]bool, now time.Time) float64 {
	overlap := 0
	for w := range wordSet(a.PrimaryText()) {
		if queryWords[w] {
			overlap++
		}
	}
	score := e.opts.OverlapWeight * float64(overlap)

	days := int(now.Sub(a.Timestamp).Hours() / 24)
	if bonus := e.opts.FreshnessDays - days; bonus > 0 {
		score += float64(bonus)
	}
	return score
}

func wordSet(text string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = true
	}
	return set
}
