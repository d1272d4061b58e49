package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"materiality/internal/model"
)

const (
	rosterSheet = "설문 대상자"
	rosterTitle = "이해관계자 설문 대상자 명단"
)

// Exporter 名单导出器（与上传模板同版式，可直接重新上传）
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export 生成名单工作簿：第 1 行标题，第 2 行表头，第 3 行起数据
func (e *Exporter) Export(contacts []model.UploadedContact) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetCellValue(rosterSheet, "A1", rosterTitle); err != nil {
		return nil, err
	}
	if err := f.MergeCell(rosterSheet, "A1", "E1"); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(model.RosterHeaders))
	for i, h := range model.RosterHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(rosterSheet, fmt.Sprintf("A%d", headerRow), &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	// 设置表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetRowStyle(rosterSheet, headerRow, headerRow, headerStyle)

	for i, c := range contacts {
		values := c.Values()
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		cell := fmt.Sprintf("A%d", firstDataRow+i)
		if err := f.SetSheetRow(rosterSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", firstDataRow+i, err)
		}
	}

	// 设置列宽
	_ = f.SetColWidth(rosterSheet, "A", "B", 14)
	_ = f.SetColWidth(rosterSheet, "C", "D", 20)
	_ = f.SetColWidth(rosterSheet, "E", "E", 30)

	return f, nil
}

// ExportBytes 导出为 xlsx 字节
func (e *Exporter) ExportBytes(contacts []model.UploadedContact) ([]byte, error) {
	f, err := e.Export(contacts)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
