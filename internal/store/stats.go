package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string      `json:"db_path"`
	DBSizeBytes int64       `json:"db_size_bytes"`
	TotalAtoms  int         `json:"total_atoms"`
	ByType      []TypeStats `json:"by_type"`
	ByUser      []UserStats `json:"by_user"`
}

// TypeStats holds per-memory-type counts.
type TypeStats struct {
	MemoryType string `json:"memory_type"`
	Count      int    `json:"count"`
}

// UserStats holds per-user counts.
type UserStats struct {
	UserID   string `json:"user_id"`
	Count    int    `json:"count"`
	Sessions int    `json:"sessions"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM atoms`).Scan(&st.TotalAtoms)

	rows, err := s.db.QueryContext(ctx, `
		SELECT memory_type, COUNT(*) as cnt
		FROM atoms GROUP BY memory_type ORDER BY cnt DESC`)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var ts TypeStats
		rows.Scan(&ts.MemoryType, &ts.Count)
		st.ByType = append(st.ByType, ts)
	}

	userRows, err := s.db.QueryContext(ctx, `
		SELECT user_id, COUNT(*) as cnt, COUNT(DISTINCT session_id) as sessions
		FROM atoms GROUP BY user_id ORDER BY cnt DESC`)
	if err != nil {
		return st, err
	}
	defer userRows.Close()
	for userRows.Next() {
		var us UserStats
		userRows.Scan(&us.UserID, &us.Count, &us.Sessions)
		st.ByUser = append(st.ByUser, us)
	}

	return st, nil
}
