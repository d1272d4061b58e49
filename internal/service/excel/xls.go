package excel

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/extrame/xls"

	"materiality/internal/apperr"
	"materiality/internal/model"
)

// compoundFileSignature OLE2 复合文档头（Excel 97-2003 .xls）
var compoundFileSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// isCompoundFile 按内容判断格式，不看扩展名
func isCompoundFile(data []byte) bool {
	return bytes.HasPrefix(data, compoundFileSignature)
}

// readXLS 读取 BIFF 工作簿的第一个工作表
// xls 库遇到损坏数据会 panic，这里统一转成 InvalidWorkbook
func readXLS(data []byte) (sd *sheetData, err error) {
	defer func() {
		if r := recover(); r != nil {
			sd, err = nil, unreadable(fmt.Errorf("parse xls: %v", r))
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, unreadable(fmt.Errorf("failed to open xls: %w", err))
	}
	if wb == nil {
		return nil, unreadable(fmt.Errorf("no Workbook stream in compound file"))
	}
	if wb.NumSheets() == 0 {
		return nil, apperr.New(apperr.InvalidWorkbook, "워크시트가 없는 파일입니다.")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, apperr.New(apperr.InvalidWorkbook, "워크시트가 없는 파일입니다.")
	}

	grid := make([][]string, int(sheet.MaxRow)+1)
	for i := range grid {
		grid[i] = xlsRowCells(sheet, i)
	}
	for len(grid) > 0 && len(grid[len(grid)-1]) == 0 {
		grid = grid[:len(grid)-1]
	}

	sd = &sheetData{name: sheet.Name, headers: make([]string, len(model.RosterHeaders))}
	if len(grid) >= headerRow {
		for i, v := range grid[headerRow-1] {
			if i >= len(sd.headers) {
				break
			}
			// BIFF 不暴露单元格类型；能解析成数字的视为数字单元格
			if _, perr := strconv.ParseFloat(strings.TrimSpace(v), 64); perr == nil {
				continue
			}
			sd.headers[i] = v
		}
	}
	if len(grid) >= firstDataRow {
		sd.rows = grid[firstDataRow-1:]
	}
	return sd, nil
}

// xlsRowCells 读取一行，去掉行尾空单元格；缺失的行返回 nil
// （WorkSheet.Row 对不存在的行会 panic）
func xlsRowCells(sheet *xls.WorkSheet, i int) (cells []string) {
	defer func() {
		if recover() != nil {
			cells = nil
		}
	}()

	row := sheet.Row(i)
	width := row.LastCol()
	if width < len(model.RosterHeaders) {
		width = len(model.RosterHeaders)
	}
	cells = make([]string, width)
	for c := range cells {
		cells[c] = row.Col(c)
	}
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}
