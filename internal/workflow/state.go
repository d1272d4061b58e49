package workflow

import (
	"fmt"

	"materiality/internal/apperr"
	"materiality/internal/model"
	"materiality/internal/service/excel"
	"materiality/internal/survey"
)

// UploadMeta 最近一次上传的文件信息
type UploadMeta struct {
	FileID    string   `json:"fileId"`
	FileName  string   `json:"fileName"`
	SheetName string   `json:"sheetName"`
	IsValid   bool     `json:"isValid"`
	Headers   []string `json:"headers"`
	Base64    string   `json:"base64Data"`
}

// EditingCell 当前处于编辑状态的单元格
type EditingCell struct {
	Row   int                `json:"row"`
	Field model.ContactField `json:"field"`
}

// State 工作流状态；可整体序列化，由 Controller 独占持有
type State struct {
	Contacts []model.UploadedContact `json:"contacts"`
	Upload   *UploadMeta             `json:"upload"`
	Editing  *EditingCell            `json:"editingCell"`

	CompanyID  string                   `json:"companyId"`
	Period     model.ReportPeriod       `json:"period"`
	Media      *model.MediaSearchRecord `json:"mediaSearch"`
	Issuepools *model.IssuepoolList     `json:"issuepools"`

	// Categories 为可编辑的类别列表；Assessment 保存最近一次评估的统计信息
	Categories []model.AssessmentCategory `json:"categories"`
	Assessment *model.AssessmentRecord    `json:"assessment"`

	Survey       survey.State        `json:"survey"`
	SurveyResult *model.SurveyResult `json:"surveyResult"`
}

// NewState 空状态
func NewState() State {
	return State{
		Contacts:   []model.UploadedContact{},
		Categories: []model.AssessmentCategory{},
	}
}

func (s State) clone() State {
	out := s
	out.Contacts = append([]model.UploadedContact{}, s.Contacts...)
	out.Categories = append([]model.AssessmentCategory{}, s.Categories...)
	if s.Editing != nil {
		e := *s.Editing
		out.Editing = &e
	}
	return out
}

// ---- 名单 reducers（纯函数）----

// WithUpload 用解析结果整体替换名单；校验失败时名单清空但保留文件信息
func WithUpload(s State, res *excel.IngestResult) State {
	out := s.clone()
	out.Editing = nil
	out.Upload = &UploadMeta{
		FileID:    res.FileID,
		FileName:  res.FileName,
		SheetName: res.SheetName,
		IsValid:   res.IsValid,
		Headers:   res.Headers,
		Base64:    res.Base64,
	}
	out.Contacts = []model.UploadedContact{}
	if res.IsValid {
		out.Contacts = append(out.Contacts, res.Rows...)
	}
	return out
}

// AddContact 追加一行空白联系人
func AddContact(s State) State {
	out := s.clone()
	out.Contacts = append(out.Contacts, model.UploadedContact{})
	return out
}

// UpdateContact 修改单个字段
func UpdateContact(s State, row int, field model.ContactField, value string) (State, error) {
	if err := checkRow(s, row); err != nil {
		return s, err
	}
	updated, ok := s.Contacts[row].With(field, value)
	if !ok {
		return s, unknownField(field)
	}
	out := s.clone()
	out.Contacts[row] = updated
	return out, nil
}

// DeleteContact 删除一行；编辑中的单元格随之调整
func DeleteContact(s State, row int) (State, error) {
	if err := checkRow(s, row); err != nil {
		return s, err
	}
	out := s.clone()
	out.Contacts = append(out.Contacts[:row], out.Contacts[row+1:]...)
	if out.Editing != nil {
		switch {
		case out.Editing.Row == row:
			out.Editing = nil
		case out.Editing.Row > row:
			out.Editing.Row--
		}
	}
	return out, nil
}

// BeginEdit 进入单元格编辑
func BeginEdit(s State, row int, field model.ContactField) (State, error) {
	if err := checkRow(s, row); err != nil {
		return s, err
	}
	if _, ok := s.Contacts[row].Get(field); !ok {
		return s, unknownField(field)
	}
	out := s.clone()
	out.Editing = &EditingCell{Row: row, Field: field}
	return out, nil
}

// CommitEdit 提交编辑值并退出编辑
func CommitEdit(s State, value string) (State, error) {
	if s.Editing == nil {
		return s, apperr.New(apperr.InvalidArgument, "편집 중인 셀이 없습니다.")
	}
	out, err := UpdateContact(s, s.Editing.Row, s.Editing.Field, value)
	if err != nil {
		return s, err
	}
	out.Editing = nil
	return out, nil
}

// CancelEdit 放弃编辑
func CancelEdit(s State) State {
	out := s.clone()
	out.Editing = nil
	return out
}

// ClearRoster 清空名单与上传信息
func ClearRoster(s State) State {
	out := s.clone()
	out.Contacts = []model.UploadedContact{}
	out.Upload = nil
	out.Editing = nil
	return out
}

// UploadRecord 名单缓存记录；从未上传时各字段为 null
func UploadRecord(s State) model.UploadRecord {
	rec := model.UploadRecord{ExcelData: append([]model.UploadedContact{}, s.Contacts...)}
	if s.Upload != nil {
		valid := s.Upload.IsValid
		name := s.Upload.FileName
		data := s.Upload.Base64
		rec.IsValid = &valid
		rec.FileName = &name
		rec.Base64Data = &data
	}
	return rec
}

// FromUploadRecord 从缓存记录恢复名单
func FromUploadRecord(s State, rec model.UploadRecord) State {
	out := s.clone()
	out.Editing = nil
	out.Contacts = append([]model.UploadedContact{}, rec.ExcelData...)
	out.Upload = nil
	if rec.IsValid != nil || rec.FileName != nil || rec.Base64Data != nil {
		meta := &UploadMeta{}
		if rec.IsValid != nil {
			meta.IsValid = *rec.IsValid
		}
		if rec.FileName != nil {
			meta.FileName = *rec.FileName
		}
		if rec.Base64Data != nil {
			meta.Base64 = *rec.Base64Data
		}
		out.Upload = meta
	}
	return out
}

func checkRow(s State, row int) error {
	if row < 0 || row >= len(s.Contacts) {
		return apperr.WithDetail(apperr.InvalidArgument,
			fmt.Sprintf("잘못된 행 번호입니다: %d", row),
			map[string]int{"row": row, "size": len(s.Contacts)})
	}
	return nil
}

func unknownField(field model.ContactField) error {
	return apperr.WithDetail(apperr.InvalidArgument,
		fmt.Sprintf("알 수 없는 항목입니다: %s", field), model.ContactFields)
}
