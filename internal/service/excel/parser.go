package excel

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"materiality/internal/apperr"
	"materiality/internal/model"
)

const (
	// DefaultMaxBytes 上传文件大小上限 10 MiB
	DefaultMaxBytes int64 = 10 << 20

	headerRow    = 2 // 表头位于第 2 行
	firstDataRow = 3 // 数据自第 3 行开始
)

var allowedExtensions = []string{".xlsx", ".xls"}

// HeaderMismatchDetail 表头校验失败时返回给前端的对照信息
type HeaderMismatchDetail struct {
	Expected []string `json:"expected"`
	Actual   []string `json:"actual"`
}

// IngestResult 名单解析结果
// Base64 始终为原始文件内容（校验失败也返回，便于下载/重新上传）
type IngestResult struct {
	FileID    string                  `json:"fileId"`
	FileName  string                  `json:"fileName"`
	SheetName string                  `json:"sheetName"`
	IsValid   bool                    `json:"isValid"`
	Headers   []string                `json:"headers"`
	Rows      []model.UploadedContact `json:"rows"`
	Base64    string                  `json:"base64"`
}

// Parser 名单 Excel 解析器
type Parser struct {
	maxBytes int64
}

// NewParser 创建解析器；maxBytes <= 0 时使用默认上限
func NewParser(maxBytes int64) *Parser {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Parser{maxBytes: maxBytes}
}

// MaxBytes 当前大小上限
func (p *Parser) MaxBytes() int64 {
	return p.maxBytes
}

// Ingest 校验并解析上传的名单文件
func (p *Parser) Ingest(data []byte, fileName string) (*IngestResult, error) {
	if int64(len(data)) > p.maxBytes {
		return nil, apperr.WithDetail(apperr.FileTooLarge,
			fmt.Sprintf("파일 크기는 %dMB를 초과할 수 없습니다.", p.maxBytes>>20),
			map[string]int64{"size": int64(len(data)), "limit": p.maxBytes})
	}
	if !hasAllowedExtension(fileName) {
		return nil, apperr.WithDetail(apperr.UnsupportedExtension,
			"엑셀 파일(.xlsx, .xls)만 업로드할 수 있습니다.", allowedExtensions)
	}

	result := &IngestResult{
		FileID:   uuid.New().String(),
		FileName: fileName,
		Base64:   base64.StdEncoding.EncodeToString(data),
	}

	var sd *sheetData
	var err error
	if isCompoundFile(data) {
		sd, err = readXLS(data)
	} else {
		sd, err = readXLSX(data)
	}
	if err != nil {
		return result, err
	}
	result.SheetName = sd.name
	result.Headers = sd.headers

	if !headersMatch(sd.headers) {
		return result, apperr.WithDetail(apperr.HeaderMismatch,
			"엑셀 양식이 올바르지 않습니다. 2행의 헤더를 확인해 주세요: "+strings.Join(model.RosterHeaders, ", "),
			HeaderMismatchDetail{Expected: append([]string(nil), model.RosterHeaders...), Actual: sd.headers})
	}

	rows := make([]model.UploadedContact, 0, len(sd.rows))
	for _, row := range sd.rows {
		rows = append(rows, model.ContactFromCells(row))
	}
	result.IsValid = true
	result.Rows = rows
	return result, nil
}

func hasAllowedExtension(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// sheetData 第一个工作表的表头（第 2 行）与数据行（第 3 行起）
type sheetData struct {
	name    string
	headers []string
	rows    [][]string
}

func unreadable(err error) error {
	return apperr.Wrap(apperr.InvalidWorkbook, "엑셀 파일을 읽을 수 없습니다.", err)
}

func readXLSX(data []byte) (*sheetData, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, unreadable(fmt.Errorf("failed to open excel: %w", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.New(apperr.InvalidWorkbook, "워크시트가 없는 파일입니다.")
	}
	sd := &sheetData{name: sheets[0]}

	if sd.headers, err = readHeaderCells(f, sd.name); err != nil {
		return sd, unreadable(err)
	}
	rows, err := f.GetRows(sd.name)
	if err != nil {
		return sd, unreadable(err)
	}
	if len(rows) >= firstDataRow {
		sd.rows = rows[firstDataRow-1:]
	}
	return sd, nil
}

// readHeaderCells 读取第 2 行 A–E；只有文本单元格计入，数字/布尔/日期/错误值按空串处理
func readHeaderCells(f *excelize.File, sheet string) ([]string, error) {
	out := make([]string, len(model.RosterHeaders))
	for i := range model.RosterHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, err
		}
		typ, err := f.GetCellType(sheet, cell)
		if err != nil {
			return nil, fmt.Errorf("read cell type %s: %w", cell, err)
		}
		if !isTextCell(typ) {
			continue
		}
		v, err := f.GetCellValue(sheet, cell)
		if err != nil {
			return nil, fmt.Errorf("read cell %s: %w", cell, err)
		}
		out[i] = v
	}
	return out, nil
}

// isTextCell 没有 t 属性的单元格（CellTypeUnset）是数字
func isTextCell(typ excelize.CellType) bool {
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return true
	}
	return false
}

func headersMatch(headers []string) bool {
	if len(headers) != len(model.RosterHeaders) {
		return false
	}
	for i, want := range model.RosterHeaders {
		if headers[i] != want {
			return false
		}
	}
	return true
}
