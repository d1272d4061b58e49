package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// GetRecord 读取记录；不存在时 ok=false
func (s *Store) GetRecord(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM records WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get record %s: %w", key, err)
	}
	return value, true, nil
}

// PutRecord 写入记录（后写覆盖）
func (s *Store) PutRecord(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO records (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("put record %s: %w", key, err)
	}
	return nil
}

// DeleteRecord 删除记录；不存在不报错
func (s *Store) DeleteRecord(key string) error {
	if _, err := s.db.Exec("DELETE FROM records WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete record %s: %w", key, err)
	}
	return nil
}

// ListRecordKeys 列出全部已存在的键
func (s *Store) ListRecordKeys() ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM records ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list record keys: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
