package store

import (
	"sort"
	"sync"
	"time"

	dbstore "materiality/internal/store"
)

// MemoryStore 内存记录存储（-ephemeral 模式与测试使用，进程退出即丢失）
type MemoryStore struct {
	records map[string]string
	logs    []dbstore.UploadLog
	mu      sync.RWMutex
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]string),
	}
}

// GetRecord 读取记录
func (s *MemoryStore) GetRecord(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.records[key]
	return v, ok, nil
}

// PutRecord 写入记录
func (s *MemoryStore) PutRecord(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = value
	return nil
}

// DeleteRecord 删除记录
func (s *MemoryStore) DeleteRecord(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

// ListRecordKeys 列出全部键（按字典序）
func (s *MemoryStore) ListRecordKeys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Count 记录数量
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Clear 清空全部记录
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]string)
	s.logs = nil
}

// CreateUploadLog 记录一次上传，返回 id
func (s *MemoryStore) CreateUploadLog(l dbstore.UploadLog) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = int64(len(s.logs) + 1)
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	s.logs = append(s.logs, l)
	return l.ID, nil
}

// ListUploadLogs 最近的上传记录（按 id 倒序）
func (s *MemoryStore) ListUploadLogs(limit int) ([]dbstore.UploadLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = 20
	}
	out := make([]dbstore.UploadLog, 0, limit)
	for i := len(s.logs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.logs[i])
	}
	return out, nil
}
