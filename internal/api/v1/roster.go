package v1

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"materiality/internal/apperr"
	"materiality/internal/model"
	"materiality/internal/workflow"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsContentType  = "application/vnd.ms-excel"
)

// RosterResponse 名单视图
type RosterResponse struct {
	Contacts []model.UploadedContact `json:"contacts"`
	Upload   *workflow.UploadMeta    `json:"upload"`
	Editing  *workflow.EditingCell   `json:"editingCell"`
	Headers  []string                `json:"headers"`
}

func rosterResponse(s workflow.State) RosterResponse {
	return RosterResponse{
		Contacts: s.Contacts,
		Upload:   s.Upload,
		Editing:  s.Editing,
		Headers:  model.RosterHeaders,
	}
}

// GetRoster 当前名单
// GET /api/v1/roster
func (h *Handler) GetRoster(c *gin.Context) {
	success(c, rosterResponse(h.ctrl.State()))
}

// UploadRoster 上传名单 Excel（multipart 字段 file）
// POST /api/v1/roster/upload
func (h *Handler) UploadRoster(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "업로드할 파일을 찾을 수 없습니다.")
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, apperr.Wrap(apperr.Internal, "파일을 읽을 수 없습니다.", err))
		return
	}
	defer f.Close()

	// 多读 1 字节，超限由解析器判定为 FileTooLarge
	data, err := io.ReadAll(io.LimitReader(f, h.ctrl.MaxUploadBytes()+1))
	if err != nil {
		fail(c, apperr.Wrap(apperr.Internal, "파일을 읽을 수 없습니다.", err))
		return
	}

	res, err := h.ctrl.Upload(data, fh.Filename)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, gin.H{
		"fileId":    res.FileID,
		"fileName":  res.FileName,
		"sheetName": res.SheetName,
		"isValid":   res.IsValid,
		"rowCount":  len(res.Rows),
		"roster":    rosterResponse(h.ctrl.State()),
	})
}

// ListUploads 最近的上传记录
// GET /api/v1/roster/uploads?limit=20
func (h *Handler) ListUploads(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	logs, err := h.ctrl.UploadLogs(limit)
	if err != nil {
		fail(c, apperr.Wrap(apperr.Internal, "업로드 기록을 불러오지 못했습니다.", err))
		return
	}
	success(c, logs)
}

// DownloadUpload 下载归档的原始上传文件
// GET /api/v1/roster/uploads/:fileId/file
func (h *Handler) DownloadUpload(c *gin.Context) {
	fileID := c.Param("fileId")
	data, ext, err := h.ctrl.UploadFile(fileID)
	if err != nil {
		fail(c, err)
		return
	}
	contentType := xlsxContentType
	if ext == ".xls" {
		contentType = xlsContentType
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileID+ext))
	c.Data(http.StatusOK, contentType, data)
}

// AddContact 追加空白行
// POST /api/v1/roster/rows
func (h *Handler) AddContact(c *gin.Context) {
	s, err := h.ctrl.AddContact()
	if err != nil {
		fail(c, err)
		return
	}
	success(c, rosterResponse(s))
}

// UpdateContactRequest 单元格修改
type UpdateContactRequest struct {
	Field model.ContactField `json:"field"`
	Value string             `json:"value"`
}

// UpdateContact 修改单元格
// PATCH /api/v1/roster/rows/:index
func (h *Handler) UpdateContact(c *gin.Context) {
	row, ok := indexParam(c, "index")
	if !ok {
		return
	}
	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "요청 형식이 올바르지 않습니다.")
		return
	}
	s, err := h.ctrl.UpdateContact(row, req.Field, req.Value)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, rosterResponse(s))
}

// DeleteContact 删除行
// DELETE /api/v1/roster/rows/:index
func (h *Handler) DeleteContact(c *gin.Context) {
	row, ok := indexParam(c, "index")
	if !ok {
		return
	}
	s, err := h.ctrl.DeleteContact(row)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, rosterResponse(s))
}

// BeginEditRequest 进入编辑
type BeginEditRequest struct {
	Row   int                `json:"row"`
	Field model.ContactField `json:"field"`
}

// BeginEdit 进入单元格编辑
// POST /api/v1/roster/edit
func (h *Handler) BeginEdit(c *gin.Context) {
	var req BeginEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "요청 형식이 올바르지 않습니다.")
		return
	}
	s, err := h.ctrl.BeginEdit(req.Row, req.Field)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, rosterResponse(s))
}

// CommitEdit 提交编辑
// POST /api/v1/roster/edit/commit
func (h *Handler) CommitEdit(c *gin.Context) {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "요청 형식이 올바르지 않습니다.")
		return
	}
	s, err := h.ctrl.CommitEdit(req.Value)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, rosterResponse(s))
}

// CancelEdit 放弃编辑
// POST /api/v1/roster/edit/cancel
func (h *Handler) CancelEdit(c *gin.Context) {
	s, err := h.ctrl.CancelEdit()
	if err != nil {
		fail(c, err)
		return
	}
	success(c, rosterResponse(s))
}

// ClearRoster 清空名单
// DELETE /api/v1/roster
func (h *Handler) ClearRoster(c *gin.Context) {
	if err := h.ctrl.ClearRoster(); err != nil {
		fail(c, err)
		return
	}
	success(c, rosterResponse(h.ctrl.State()))
}

// ExportRoster 下载当前名单
// GET /api/v1/roster/export
func (h *Handler) ExportRoster(c *gin.Context) {
	name, data, err := h.ctrl.ExportRoster()
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", contentDisposition(name))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// contentDisposition ASCII 文件名兜底 + RFC 5987 UTF-8 文件名
func contentDisposition(name string) string {
	return fmt.Sprintf("attachment; filename=\"stakeholders.xlsx\"; filename*=UTF-8''%s", url.PathEscape(name))
}
