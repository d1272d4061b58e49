package archive

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"materiality/internal/model"
)

func TestSaveAndReadUpload(t *testing.T) {
	a := New(t.TempDir())

	path, err := a.SaveUpload("f-1", "Roster.XLSX", []byte("PK\x03\x04"))
	if err != nil {
		t.Fatalf("SaveUpload failed: %v", err)
	}
	if filepath.Base(path) != "f-1.xlsx" {
		t.Fatalf("unexpected path: %s", path)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file should be renamed away, stat err=%v", err)
	}

	data, ext, err := a.ReadUpload("f-1")
	if err != nil {
		t.Fatalf("ReadUpload failed: %v", err)
	}
	if string(data) != "PK\x03\x04" || ext != ".xlsx" {
		t.Fatalf("unexpected data: %q ext=%s", data, ext)
	}

	if _, err := a.SaveUpload("f-3", "legacy.xls", []byte{0xD0, 0xCF}); err != nil {
		t.Fatalf("SaveUpload xls failed: %v", err)
	}
	if _, ext, err := a.ReadUpload("f-3"); err != nil || ext != ".xls" {
		t.Fatalf("xls upload: ext=%s err=%v", ext, err)
	}

	for _, id := range []string{"", "..", "../f-1", "uploads/f-1"} {
		if _, _, err := a.ReadUpload(id); !os.IsNotExist(err) {
			t.Fatalf("id %q should not resolve, err=%v", id, err)
		}
	}

	if _, err := a.SaveUpload("", "x.xlsx", nil); err == nil {
		t.Fatal("expected error for empty file id")
	}
}

func TestSubmissions(t *testing.T) {
	a := New(t.TempDir())

	ids, err := a.ListSubmissions()
	if err != nil || len(ids) != 0 {
		t.Fatalf("empty archive: ids=%v err=%v", ids, err)
	}

	res := model.SurveyResult{
		SubmissionID:   "b-2",
		CompanyID:      "ACME",
		RespondentType: "임직원",
		Timestamp:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		TotalItems:     0,
		Responses:      []model.SurveyResponse{},
	}
	if err := a.SaveSubmission(res); err != nil {
		t.Fatalf("SaveSubmission failed: %v", err)
	}
	res.SubmissionID = "a-1"
	if err := a.SaveSubmission(res); err != nil {
		t.Fatalf("SaveSubmission failed: %v", err)
	}

	ids, err = a.ListSubmissions()
	if err != nil {
		t.Fatalf("ListSubmissions failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a-1" || ids[1] != "b-2" {
		t.Fatalf("unexpected ids: %v", ids)
	}

	got, err := a.LoadSubmission("b-2")
	if err != nil {
		t.Fatalf("LoadSubmission failed: %v", err)
	}
	if got.CompanyID != "ACME" || !got.Timestamp.Equal(res.Timestamp) {
		t.Fatalf("unexpected submission: %+v", got)
	}

	if _, err := a.LoadSubmission("missing"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing submission err=%v", err)
	}
	if _, err := a.LoadSubmission("../submissions/b-2"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("path-like id should not resolve, err=%v", err)
	}
}

func TestWriteFailureLeavesNoFile(t *testing.T) {
	orig := osRename
	osRename = func(string, string) error { return errors.New("rename failed") }
	defer func() { osRename = orig }()

	a := New(t.TempDir())
	if _, err := a.SaveUpload("f-2", "x.xlsx", []byte("data")); err == nil {
		t.Fatal("expected rename error")
	}
	if _, _, err := a.ReadUpload("f-2"); !os.IsNotExist(err) {
		t.Fatalf("final file should not exist, err=%v", err)
	}
}
