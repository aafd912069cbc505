package store

import (
	"fmt"
	"time"
)

func (s *Store) GetSelection() (Selection, error) {
	rows, err := s.db.Query(`
		SELECT row_id, page_key
		FROM selection
		ORDER BY selected_at, row_id
	`)
	if err != nil {
		return Selection{}, fmt.Errorf("failed to query selection: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var sel Selection
	for rows.Next() {
		var rowID, pageKey string
		if err := rows.Scan(&rowID, &pageKey); err != nil {
			return Selection{}, fmt.Errorf("failed to scan selection: %w", err)
		}
		sel.PageKey = pageKey
		sel.RowIDs = append(sel.RowIDs, rowID)
	}

	return sel, rows.Err()
}

// AddToSelection adds ids picked on pageKey. Ids picked on a different page
// are dropped first, since a selection never spans pages.
func (s *Store) AddToSelection(pageKey string, rowIDs []string) (Selection, error) {
	err := s.ExecTx(func(tx *Store) error {
		if _, err := tx.db.Exec(`DELETE FROM selection WHERE page_key <> ?`, pageKey); err != nil {
			return fmt.Errorf("failed to reset selection: %w", err)
		}

		stmt, err := tx.db.Prepare(`
			INSERT INTO selection (row_id, page_key, selected_at)
			VALUES (?, ?, ?)
			ON CONFLICT(row_id) DO NOTHING
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare selection SQL : %w", err)
		}
		defer func() {
			_ = stmt.Close()
		}()

		now := time.Now().UnixNano()
		for i, id := range rowIDs {
			if _, err := stmt.Exec(id, pageKey, now+int64(i)); err != nil {
				return fmt.Errorf("failed to select row %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return Selection{}, err
	}

	return s.GetSelection()
}

func (s *Store) RemoveFromSelection(rowIDs []string) (Selection, error) {
	err := s.ExecTx(func(tx *Store) error {
		for _, id := range rowIDs {
			if _, err := tx.db.Exec(`DELETE FROM selection WHERE row_id = ?`, id); err != nil {
				return fmt.Errorf("failed to unselect row %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return Selection{}, err
	}

	return s.GetSelection()
}

func (s *Store) ClearSelection() error {
	if _, err := s.db.Exec(`DELETE FROM selection`); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}
