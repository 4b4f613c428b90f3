// Package store persists wallpaper settings and cached collections
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// KeyValueStore is the persisted key/value capability the rest of the app
// depends on. Setting an empty value clears the key.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Clear(key string) error
}

// Database is the durable KeyValueStore backed by sqlite
type Database struct {
	db *sql.DB
}

var _ KeyValueStore = (*Database)(nil)

func NewDatabase(dbPath string) (*Database, error) {
	// Create directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &Database{db: db}

	// Create table if it doesn't exist
	if err := database.createTable(); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return database, nil
}

func (d *Database) createTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS kv (
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
		PRIMARY KEY (key)
	);
	`
	_, err := d.db.Exec(query)
	return err
}

func (d *Database) Get(key string) (string, bool, error) {
	query := `SELECT value FROM kv WHERE key = ?`
	var value string
	err := d.db.QueryRow(query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return value, true, nil
}

func (d *Database) Set(key, value string) error {
	if value == "" {
		return d.Clear(key)
	}

	const stmt = `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at
	`
	if _, err := d.db.Exec(stmt, key, value); err != nil {
		return fmt.Errorf("upsert key %s: %w", key, err)
	}
	return nil
}

func (d *Database) Clear(key string) error {
	query := `DELETE FROM kv WHERE key = ?`
	if _, err := d.db.Exec(query, key); err != nil {
		return fmt.Errorf("failed to clear key %s: %w", key, err)
	}
	return nil
}

func (d *Database) Close() error {
	return d.db.Close()
}
