package store

import (
	"fmt"
	"sync"
	"testing"

	dbstore "materiality/internal/store"
)

// TestNewMemoryStore 测试创建存储
func TestNewMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	if store == nil {
		t.Fatal("NewMemoryStore() returned nil")
	}
	if store.Count() != 0 {
		t.Errorf("New store should be empty, got %d records", store.Count())
	}
}

// TestPutGetRecord 测试写入与读取
func TestPutGetRecord(t *testing.T) {
	store := NewMemoryStore()

	if _, ok, _ := store.GetRecord("surveyData"); ok {
		t.Fatal("GetRecord should miss on empty store")
	}

	_ = store.PutRecord("surveyData", "v1")
	_ = store.PutRecord("surveyData", "v2")

	v, ok, err := store.GetRecord("surveyData")
	if err != nil || !ok {
		t.Fatalf("GetRecord failed: ok=%v err=%v", ok, err)
	}
	if v != "v2" {
		t.Errorf("value = %s, want v2", v)
	}
}

// TestDeleteAndClear 测试删除与清空
func TestDeleteAndClear(t *testing.T) {
	store := NewMemoryStore()
	_ = store.PutRecord("a", "1")
	_ = store.PutRecord("b", "2")

	_ = store.DeleteRecord("a")
	keys, _ := store.ListRecordKeys()
	if len(keys) != 1 || keys[0] != "b" {
		t.Errorf("keys = %v, want [b]", keys)
	}

	store.Clear()
	if store.Count() != 0 {
		t.Errorf("Count = %d after Clear", store.Count())
	}
}

// TestConcurrentAccess 测试并发安全
func TestConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = store.PutRecord(fmt.Sprintf("k%d", i%5), fmt.Sprintf("v%d", i))
		}(i)
		go func(i int) {
			defer wg.Done()
			_, _, _ = store.GetRecord(fmt.Sprintf("k%d", i%5))
		}(i)
	}
	wg.Wait()

	if store.Count() != 5 {
		t.Errorf("Count = %d, want 5", store.Count())
	}
}

// TestUploadLogs 测试上传记录
func TestUploadLogs(t *testing.T) {
	store := NewMemoryStore()

	for i := 0; i < 3; i++ {
		id, err := store.CreateUploadLog(dbstore.UploadLog{FileID: fmt.Sprintf("f-%d", i), IsValid: i%2 == 0})
		if err != nil {
			t.Fatalf("CreateUploadLog failed: %v", err)
		}
		if id != int64(i+1) {
			t.Errorf("id = %d, want %d", id, i+1)
		}
	}

	logs, err := store.ListUploadLogs(2)
	if err != nil {
		t.Fatalf("ListUploadLogs failed: %v", err)
	}
	if len(logs) != 2 || logs[0].FileID != "f-2" || logs[1].FileID != "f-1" {
		t.Fatalf("unexpected logs: %+v", logs)
	}
	if logs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	store.Clear()
	if logs, _ := store.ListUploadLogs(0); len(logs) != 0 {
		t.Errorf("logs after Clear = %d", len(logs))
	}
}
