package store

import (
	"fmt"
	"time"
)

// UploadLog 名单上传记录
type UploadLog struct {
	ID        int64     `json:"id"`
	FileID    string    `json:"fileId"`
	Filename  string    `json:"filename"`
	FileSize  int64     `json:"fileSize"`
	FileHash  string    `json:"fileHash"`
	IsValid   bool      `json:"isValid"`
	RowCount  int       `json:"rowCount"`
	ErrorKind string    `json:"errorKind"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateUploadLog 记录一次上传（无论校验是否通过），返回 id
func (s *Store) CreateUploadLog(l UploadLog) (int64, error) {
	valid := 0
	if l.IsValid {
		valid = 1
	}
	res, err := s.db.Exec(`
		INSERT INTO upload_logs (file_id, filename, file_size, file_hash, is_valid, row_count, error_kind)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, l.FileID, l.Filename, l.FileSize, l.FileHash, valid, l.RowCount, l.ErrorKind)
	if err != nil {
		return 0, fmt.Errorf("failed to create upload log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get upload log id: %w", err)
	}
	return id, nil
}

// ListUploadLogs 最近的上传记录（按 id 倒序）
func (s *Store) ListUploadLogs(limit int) ([]UploadLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, file_id, filename, file_size, file_hash, is_valid, row_count, error_kind, created_at
		FROM upload_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query upload logs failed: %w", err)
	}
	defer rows.Close()

	out := make([]UploadLog, 0)
	for rows.Next() {
		var it UploadLog
		var valid int
		if err := rows.Scan(&it.ID, &it.FileID, &it.Filename, &it.FileSize, &it.FileHash, &valid, &it.RowCount, &it.ErrorKind, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan upload logs failed: %w", err)
		}
		it.IsValid = valid == 1
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate upload logs failed: %w", err)
	}
	return out, nil
}
