package workflow

import (
	"testing"

	"materiality/internal/model"
	"materiality/internal/service/excel"
)

func stateWithContacts(n int) State {
	s := NewState()
	for i := 0; i < n; i++ {
		s = AddContact(s)
	}
	return s
}

func TestDeleteContactShiftsEditingCell(t *testing.T) {
	s := stateWithContacts(3)
	s, err := BeginEdit(s, 2, model.FieldName)
	if err != nil {
		t.Fatalf("BeginEdit failed: %v", err)
	}

	s, err = DeleteContact(s, 0)
	if err != nil {
		t.Fatalf("DeleteContact failed: %v", err)
	}
	if s.Editing == nil || s.Editing.Row != 1 {
		t.Fatalf("editing cell should follow its row, got %+v", s.Editing)
	}

	s, err = DeleteContact(s, 1)
	if err != nil {
		t.Fatalf("DeleteContact failed: %v", err)
	}
	if s.Editing != nil {
		t.Fatalf("editing cell on deleted row should be cleared, got %+v", s.Editing)
	}
}

func TestReducersDoNotMutateInput(t *testing.T) {
	s := stateWithContacts(1)
	next, err := UpdateContact(s, 0, model.FieldCompany, "ACME")
	if err != nil {
		t.Fatalf("UpdateContact failed: %v", err)
	}
	if s.Contacts[0].Company != "" {
		t.Fatal("input state was mutated")
	}
	if next.Contacts[0].Company != "ACME" {
		t.Fatalf("Company=%q", next.Contacts[0].Company)
	}
}

func TestRowBounds(t *testing.T) {
	s := stateWithContacts(1)
	if _, err := UpdateContact(s, 1, model.FieldName, "x"); err == nil {
		t.Fatal("expected error for row out of range")
	}
	if _, err := DeleteContact(s, -1); err == nil {
		t.Fatal("expected error for negative row")
	}
	if _, err := BeginEdit(s, 0, model.ContactField("phone")); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestUploadRecordRoundTrip(t *testing.T) {
	empty := UploadRecord(NewState())
	if empty.IsValid != nil || empty.FileName != nil || empty.Base64Data != nil {
		t.Fatalf("never-uploaded record should have null metadata: %+v", empty)
	}
	if empty.ExcelData == nil {
		t.Fatal("ExcelData should be an empty list, not null")
	}

	s := WithUpload(NewState(), &excel.IngestResult{
		FileID:   "f",
		FileName: "r.xlsx",
		IsValid:  true,
		Rows:     []model.UploadedContact{{Name: "김민수"}},
		Base64:   "UEsDBA==",
	})
	back := FromUploadRecord(NewState(), UploadRecord(s))
	if len(back.Contacts) != 1 || back.Contacts[0].Name != "김민수" {
		t.Fatalf("contacts=%+v", back.Contacts)
	}
	if back.Upload == nil || !back.Upload.IsValid || back.Upload.FileName != "r.xlsx" || back.Upload.Base64 != "UEsDBA==" {
		t.Fatalf("upload=%+v", back.Upload)
	}
}
