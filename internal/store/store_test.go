package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "materiality.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestRecordLifecycle(t *testing.T) {
	st := newTestStore(t)

	if _, ok, err := st.GetRecord("surveyData"); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	if err := st.PutRecord("surveyData", `{"a":1}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := st.PutRecord("surveyData", `{"a":2}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, ok, err := st.GetRecord("surveyData")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if v != `{"a":2}` {
		t.Fatalf("value=%s, want last write", v)
	}

	if err := st.PutRecord("excelUploadData", `{}`); err != nil {
		t.Fatalf("put second: %v", err)
	}
	keys, err := st.ListRecordKeys()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 2 || keys[0] != "excelUploadData" || keys[1] != "surveyData" {
		t.Fatalf("keys=%v", keys)
	}

	if err := st.DeleteRecord("surveyData"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.DeleteRecord("surveyData"); err != nil {
		t.Fatalf("delete missing should not fail: %v", err)
	}
	if _, ok, _ := st.GetRecord("surveyData"); ok {
		t.Fatalf("record should be gone")
	}
}

func TestRecordsSurviveReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "materiality.db")
	st, err := New(dbPath)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	if err := st.PutRecord("surveyResult", `{"ok":true}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	_ = st.Close()

	st2, err := New(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = st2.Close() })

	if v, ok, _ := st2.GetRecord("surveyResult"); !ok || v != `{"ok":true}` {
		t.Fatalf("after reopen: ok=%v v=%s", ok, v)
	}
}

func TestUploadLogs(t *testing.T) {
	st := newTestStore(t)

	if _, err := st.CreateUploadLog(UploadLog{FileID: "f1", Filename: "a.xlsx", FileSize: 10, IsValid: true, RowCount: 3}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := st.CreateUploadLog(UploadLog{FileID: "f2", Filename: "b.xlsx", ErrorKind: "HeaderMismatch"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	logs, err := st.ListUploadLogs(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("logs=%d, want 2", len(logs))
	}
	if logs[0].FileID != "f2" || logs[0].IsValid || logs[0].ErrorKind != "HeaderMismatch" {
		t.Fatalf("latest log=%+v", logs[0])
	}
	if !logs[1].IsValid || logs[1].RowCount != 3 {
		t.Fatalf("first log=%+v", logs[1])
	}
}

func TestSchemaVersionRecorded(t *testing.T) {
	st := newTestStore(t)

	var v int
	if err := st.db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		t.Fatalf("read version: %v", err)
	}
	if v != schemaVersion {
		t.Fatalf("user_version=%d, want %d", v, schemaVersion)
	}
	if filepath.Base(st.Path()) != "materiality.db" {
		t.Fatalf("path=%s", st.Path())
	}
}

func TestNewerSchemaIsRejected(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "materiality.db")
	st, err := New(dbPath)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	if _, err := st.db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = st.Close()

	if _, err := New(dbPath); err == nil {
		t.Fatal("expected error for newer schema version")
	}
}
