package store

import (
	"context"
	"strings"

	"github.com/eoralabs/aura-memory/internal/model"
)

// ExportAll returns all atoms, optionally filtered by user, oldest first.
func (s *SQLiteStore) ExportAll(ctx context.Context, userID string) ([]model.Atom, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if userID != "" {
		where = append(where, "user_id = ?")
		args = append(args, userID)
	}

	query := `SELECT ` + atomColumns + ` FROM atoms WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY timestamp ASC`

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

// Import stores atoms from an export, preserving ids and timestamps so
// recency scoring survives the round trip. Returns the number imported.
func (s *SQLiteStore) Import(ctx context.Context, atoms []model.Atom) (int, error) {
	imported := 0
	for _, a := range atoms {
		imp := a.Importance
		_, err := s.Create(ctx, CreateParams{
			ID:         a.ID,
			UserID:     a.UserID,
			SessionID:  a.SessionID,
			Message:    a.Message,
			Response:   a.Response,
			Timestamp:  a.Timestamp,
			MemoryType: a.MemoryType,
			Importance: &imp,
			Related:    a.RelatedMemories,
		})
		if err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
