package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// GameRow represents a recorded game.
type GameRow struct {
	ID        string
	HumanSide string
	Status    string // "in_progress", "checkmate", "stalemate"
	CreatedAt time.Time
}

// Store is the optional durability collaborator: an SQLite record of games
// and their move histories. The session registry works without one and never
// reads sessions back from it; it is a write-through game log.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// WAL mode for better concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id         TEXT PRIMARY KEY,
			human_side TEXT NOT NULL,
			status     TEXT NOT NULL DEFAULT 'in_progress',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS game_history (
			game_id      TEXT PRIMARY KEY REFERENCES games(id),
			moves_json   TEXT NOT NULL,
			updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	return err
}

// CreateGame inserts a new game record.
func (s *Store) CreateGame(id, humanSide string) error {
	_, err := s.db.Exec(
		"INSERT INTO games (id, human_side, status) VALUES (?, ?, 'in_progress')",
		id, humanSide,
	)
	return err
}

// GetGame retrieves a game record by id.
func (s *Store) GetGame(id string) (*GameRow, error) {
	row := s.db.QueryRow("SELECT id, human_side, status, created_at FROM games WHERE id = ?", id)
	var gr GameRow
	if err := row.Scan(&gr.ID, &gr.HumanSide, &gr.Status, &gr.CreatedAt); err != nil {
		return nil, err
	}
	return &gr, nil
}

// UpdateStatus changes a game's status.
func (s *Store) UpdateStatus(id, status string) error {
	_, err := s.db.Exec("UPDATE games SET status = ? WHERE id = ?", status, id)
	return err
}

// ListGames returns all games with the given status (or all if status is empty).
func (s *Store) ListGames(status string) ([]GameRow, error) {
	var rows *sql.Rows
	var err error
	if status == "" {
		rows, err = s.db.Query("SELECT id, human_side, status, created_at FROM games ORDER BY created_at DESC")
	} else {
		rows, err = s.db.Query("SELECT id, human_side, status, created_at FROM games WHERE status = ? ORDER BY created_at DESC", status)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []GameRow
	for rows.Next() {
		var gr GameRow
		if err := rows.Scan(&gr.ID, &gr.HumanSide, &gr.Status, &gr.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, gr)
	}
	return result, rows.Err()
}

// SaveHistory upserts the serialized move history for a game.
func (s *Store) SaveHistory(id, movesJSON string) error {
	_, err := s.db.Exec(`
		INSERT INTO game_history (game_id, moves_json, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(game_id) DO UPDATE SET moves_json = excluded.moves_json, updated_at = excluded.updated_at
	`, id, movesJSON)
	return err
}

// GetHistory retrieves the serialized move history for a game.
func (s *Store) GetHistory(id string) (string, error) {
	var movesJSON string
	err := s.db.QueryRow("SELECT moves_json FROM game_history WHERE game_id = ?", id).Scan(&movesJSON)
	return movesJSON, err
}

// DeleteGame removes a game and its history.
func (s *Store) DeleteGame(id string) error {
	_, err := s.db.Exec("DELETE FROM game_history WHERE game_id = ?", id)
	if err != nil {
		return err
	}
	_, err = s.db.Exec("DELETE FROM games WHERE id = ?", id)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
