package model

// ContactField 名单可编辑字段
type ContactField string

const (
	FieldName            ContactField = "name"
	FieldPosition        ContactField = "position"
	FieldCompany         ContactField = "company"
	FieldStakeholderType ContactField = "stakeholderType"
	FieldEmail           ContactField = "email"
)

// ContactFields 按 Excel A–E 列顺序排列
var ContactFields = []ContactField{
	FieldName,
	FieldPosition,
	FieldCompany,
	FieldStakeholderType,
	FieldEmail,
}

// RosterHeaders 名单第 2 行期望表头（A–E）
var RosterHeaders = []string{"이름", "직책", "소속 기업", "이해관계자 구분", "이메일"}

// UploadedContact 上传名单中的一行（问卷收件人）
// 所有字段缺省为空串
type UploadedContact struct {
	Name            string `json:"name"`
	Position        string `json:"position"`
	Company         string `json:"company"`
	StakeholderType string `json:"stakeholderType"`
	Email           string `json:"email"`
}

// Get 按字段读取
func (c UploadedContact) Get(field ContactField) (string, bool) {
	switch field {
	case FieldName:
		return c.Name, true
	case FieldPosition:
		return c.Position, true
	case FieldCompany:
		return c.Company, true
	case FieldStakeholderType:
		return c.StakeholderType, true
	case FieldEmail:
		return c.Email, true
	}
	return "", false
}

// With 返回修改指定字段后的副本；未知字段返回 false
func (c UploadedContact) With(field ContactField, value string) (UploadedContact, bool) {
	switch field {
	case FieldName:
		c.Name = value
	case FieldPosition:
		c.Position = value
	case FieldCompany:
		c.Company = value
	case FieldStakeholderType:
		c.StakeholderType = value
	case FieldEmail:
		c.Email = value
	default:
		return c, false
	}
	return c, true
}

// Values 按列顺序导出
func (c UploadedContact) Values() []string {
	return []string{c.Name, c.Position, c.Company, c.StakeholderType, c.Email}
}

// ContactFromCells 按列位置构造，缺失单元格为空串
func ContactFromCells(cells []string) UploadedContact {
	at := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}
	return UploadedContact{
		Name:            at(0),
		Position:        at(1),
		Company:         at(2),
		StakeholderType: at(3),
		Email:           at(4),
	}
}

// UploadRecord 名单上传缓存记录（excelUploadData）
type UploadRecord struct {
	ExcelData  []UploadedContact `json:"excelData"`
	IsValid    *bool             `json:"isValid"`
	FileName   *string           `json:"fileName"`
	Base64Data *string           `json:"base64Data"`
}
