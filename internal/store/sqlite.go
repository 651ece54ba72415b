package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/eoralabs/aura-memory/internal/analysis"
	"github.com/eoralabs/aura-memory/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS atoms (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		session_id      TEXT,
		message         TEXT NOT NULL DEFAULT '',
		response        TEXT NOT NULL DEFAULT '',
		timestamp       TEXT NOT NULL,
		memory_type     TEXT NOT NULL DEFAULT 'conversation',
		importance      REAL NOT NULL DEFAULT 0.5,
		emotion_score   TEXT NOT NULL,
		context         TEXT NOT NULL,
		tags            TEXT,
		insight_level   REAL NOT NULL DEFAULT 0,
		intuition_score REAL NOT NULL DEFAULT 0,
		belief_strength REAL NOT NULL DEFAULT 0,
		related         TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_atoms_user_ts ON atoms(user_id, timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_atoms_session ON atoms(session_id);
	CREATE INDEX IF NOT EXISTS idx_atoms_type ON atoms(user_id, memory_type);
	CREATE INDEX IF NOT EXISTS idx_atoms_ts ON atoms(timestamp DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Create(ctx context.Context, p CreateParams) (*model.Atom, error) {
	if strings.TrimSpace(p.Message) == "" && strings.TrimSpace(p.Response) == "" {
		return nil, ErrNoContent
	}

	memType := p.MemoryType
	if memType == "" {
		memType = "conversation"
	}
	if !model.ValidMemoryTypes[memType] {
		return nil, fmt.Errorf("invalid memory type %q", memType)
	}

	importance := 0.5
	if p.Importance != nil {
		if *p.Importance < 0 || *p.Importance > 1 {
			return nil, fmt.Errorf("importance %v out of range [0,1]", *p.Importance)
		}
		importance = *p.Importance
	}

	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	// Stored as fixed-precision RFC3339 so string comparison orders by time.
	ts = ts.UTC().Truncate(time.Second)
	id := p.ID
	if id == "" {
		id = s.newID()
	}

	sig := analysis.AnalyzeTurn(p.Message, p.Response, memType)

	emotionJSON, _ := json.Marshal(sig.EmotionScore)
	contextJSON, _ := json.Marshal(sig.Context)

	var tagsJSON *string
	if len(sig.Tags) > 0 {
		b, _ := json.Marshal(sig.Tags)
		js := string(b)
		tagsJSON = &js
	}
	var relatedJSON *string
	if len(p.Related) > 0 {
		b, _ := json.Marshal(p.Related)
		js := string(b)
		relatedJSON = &js
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO atoms (id, user_id, session_id, message, response, timestamp, memory_type,
		                    importance, emotion_score, context, tags,
		                    insight_level, intuition_score, belief_strength, related)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.UserID, nullable(p.SessionID), p.Message, p.Response,
		ts.Format(time.RFC3339), memType, importance,
		string(emotionJSON), string(contextJSON), tagsJSON,
		sig.InsightLevel, sig.IntuitionScore, sig.BeliefStrength, relatedJSON)
	if err != nil {
		return nil, fmt.Errorf("insert atom: %w", err)
	}

	return &model.Atom{
		ID:              id,
		UserID:          p.UserID,
		SessionID:       p.SessionID,
		Message:         p.Message,
		Response:        p.Response,
		Timestamp:       ts,
		MemoryType:      memType,
		Importance:      importance,
		EmotionScore:    sig.EmotionScore,
		Context:         sig.Context,
		Tags:            sig.Tags,
		InsightLevel:    sig.InsightLevel,
		IntuitionScore:  sig.IntuitionScore,
		BeliefStrength:  sig.BeliefStrength,
		RelatedMemories: p.Related,
	}, nil
}

const atomColumns = `id, user_id, session_id, message, response, timestamp, memory_type,
	importance, emotion_score, context, tags, insight_level, intuition_score, belief_strength, related`

func (s *SQLiteStore) Query(ctx context.Context, p QueryParams) ([]model.Atom, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where, args := buildWhere(p)
	query := fmt.Sprintf(`SELECT %s FROM atoms WHERE %s ORDER BY timestamp DESC LIMIT ?`,
		atomColumns, where)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var atoms []model.Atom
	for rows.Next() {
		a, err := scanAtom(rows)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, a)
	}
	return atoms, rows.Err()
}

func (s *SQLiteStore) Count(ctx context.Context, p QueryParams) (int, error) {
	where, args := buildWhere(p)
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM atoms WHERE `+where, args...).Scan(&n)
	return n, err
}

func (s *SQLiteStore) Amend(ctx context.Context, p AmendParams) error {
	set := []string{}
	args := []interface{}{}

	if p.Importance != nil {
		if *p.Importance < 0 || *p.Importance > 1 {
			return fmt.Errorf("importance %v out of range [0,1]", *p.Importance)
		}
		set = append(set, "importance = ?")
		args = append(args, *p.Importance)
	}
	if p.Related != nil {
		b, _ := json.Marshal(p.Related)
		set = append(set, "related = ?")
		args = append(args, string(b))
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, p.ID)
	res, err := s.db.ExecContext(ctx,
		`UPDATE atoms SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// buildWhere turns QueryParams into a WHERE conjunction. Always returns at
// least the trivial predicate so callers can append it unconditionally.
func buildWhere(p QueryParams) (string, []interface{}) {
	where := []string{"1=1"}
	args := []interface{}{}

	if p.ID != "" {
		where = append(where, "id = ?")
		args = append(args, p.ID)
	}
	if p.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, p.UserID)
	}
	if p.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, p.SessionID)
	}
	if p.MemoryType != "" {
		where = append(where, "memory_type = ?")
		args = append(args, p.MemoryType)
	}

	if len(p.Tags) > 0 {
		var ors []string
		for _, tag := range p.Tags {
			// Tags column is a JSON array; quote-wrapping the tag matches
			// whole entries only.
			ors = append(ors, `tags LIKE ? ESCAPE '\'`)
			args = append(args, `%"`+escapeLike(tag)+`"%`)
			if p.TagsInText {
				ors = append(ors, `message LIKE ? ESCAPE '\'`, `response LIKE ? ESCAPE '\'`)
				args = append(args, "%"+escapeLike(tag)+"%", "%"+escapeLike(tag)+"%")
			}
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	if p.Contains != "" {
		where = append(where, `(message LIKE ? ESCAPE '\' OR response LIKE ? ESCAPE '\')`)
		args = append(args, "%"+escapeLike(p.Contains)+"%", "%"+escapeLike(p.Contains)+"%")
	}

	if len(p.MatchAny) > 0 {
		var ors []string
		for _, kw := range p.MatchAny {
			ors = append(ors, `message LIKE ? ESCAPE '\'`, `response LIKE ? ESCAPE '\'`)
			args = append(args, "%"+escapeLike(kw)+"%", "%"+escapeLike(kw)+"%")
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	if !p.Since.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, p.Since.UTC().Format(time.RFC3339))
	}
	if !p.Until.IsZero() {
		where = append(where, "timestamp < ?")
		args = append(args, p.Until.UTC().Format(time.RFC3339))
	}

	return strings.Join(where, " AND "), args
}

// escapeLike backslash-escapes LIKE metacharacters so query text matches
// literally. Every predicate built from it carries ESCAPE '\'.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAtom(row scanner) (model.Atom, error) {
	var a model.Atom
	var sessionID, tagsJSON, relatedJSON sql.NullString
	var emotionJSON, contextJSON, timestamp string

	err := row.Scan(
		&a.ID, &a.UserID, &sessionID, &a.Message, &a.Response, &timestamp,
		&a.MemoryType, &a.Importance, &emotionJSON, &contextJSON, &tagsJSON,
		&a.InsightLevel, &a.IntuitionScore, &a.BeliefStrength, &relatedJSON,
	)
	if err != nil {
		return a, err
	}

	a.Timestamp, _ = time.Parse(time.RFC3339, timestamp)
	if sessionID.Valid {
		a.SessionID = sessionID.String
	}
	json.Unmarshal([]byte(emotionJSON), &a.EmotionScore)
	json.Unmarshal([]byte(contextJSON), &a.Context)
	if tagsJSON.Valid {
		json.Unmarshal([]byte(tagsJSON.String), &a.Tags)
	}
	if relatedJSON.Valid {
		json.Unmarshal([]byte(relatedJSON.String), &a.RelatedMemories)
	}

	return a, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
