package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"materiality/internal/apperr"
	"materiality/internal/workflow"
)

// Handler V1 API 处理器
type Handler struct {
	ctrl *workflow.Controller
}

// NewHandler 创建 V1 API 处理器
func NewHandler(ctrl *workflow.Controller) *Handler {
	return &Handler{ctrl: ctrl}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)
	router.POST("/reset", h.Reset)

	// 名单
	router.GET("/roster", h.GetRoster)
	router.POST("/roster/upload", h.UploadRoster)
	router.GET("/roster/uploads", h.ListUploads)
	router.GET("/roster/uploads/:fileId/file", h.DownloadUpload)
	router.POST("/roster/rows", h.AddContact)
	router.PATCH("/roster/rows/:index", h.UpdateContact)
	router.DELETE("/roster/rows/:index", h.DeleteContact)
	router.POST("/roster/edit", h.BeginEdit)
	router.POST("/roster/edit/commit", h.CommitEdit)
	router.POST("/roster/edit/cancel", h.CancelEdit)
	router.DELETE("/roster", h.ClearRoster)
	router.GET("/roster/export", h.ExportRoster)

	// 检索
	router.GET("/companies", h.ListCompanies)
	router.POST("/media/search", h.SearchMedia)
	router.GET("/media/search", h.GetMediaSearch)
	router.POST("/issuepools", h.ListIssuepools)
	router.GET("/categories/catalog", h.ListCatalog)

	// 评估
	router.POST("/assessment", h.RunAssessment)
	router.GET("/assessment", h.GetAssessment)
	router.POST("/assessment/categories", h.AddCategory)
	router.DELETE("/assessment/categories/:index", h.DeleteCategory)
	router.PUT("/assessment/categories/:index/base-issue-pool", h.SelectBaseIssuePool)
	router.GET("/assessment/formula/:index", h.GetFormula)

	// 问卷
	router.POST("/survey/start", h.StartSurvey)
	router.GET("/survey", h.GetSurvey)
	router.PUT("/survey/respondent", h.SetRespondentType)
	router.PUT("/survey/items/:id/score", h.SetScore)
	router.POST("/survey/next", h.NextStep)
	router.POST("/survey/prev", h.PrevStep)
	router.GET("/survey/result", h.GetSurveyResult)
	router.GET("/survey/submissions", h.ListSubmissions)
	router.GET("/survey/submissions/:id", h.GetSubmission)
	router.GET("/survey/scale", h.GetScale)
}

// Response 通用响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Kind    apperr.Kind `json:"kind,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errorMapping struct {
	code   int
	status int
}

var errorMappings = map[apperr.Kind]errorMapping{
	apperr.InvalidArgument:       {1001, http.StatusBadRequest},
	apperr.NotFound:              {1004, http.StatusNotFound},
	apperr.CacheMiss:             {1005, http.StatusNotFound},
	apperr.FileTooLarge:          {1101, http.StatusRequestEntityTooLarge},
	apperr.UnsupportedExtension:  {1102, http.StatusUnsupportedMediaType},
	apperr.InvalidWorkbook:       {1103, http.StatusUnprocessableEntity},
	apperr.HeaderMismatch:        {1104, http.StatusUnprocessableEntity},
	apperr.MissingRespondentType: {1201, http.StatusUnprocessableEntity},
	apperr.IncompleteBucket:      {1202, http.StatusUnprocessableEntity},
	apperr.MissingSelection:      {1203, http.StatusUnprocessableEntity},
	apperr.Busy:                  {1409, http.StatusConflict},
	apperr.NetworkFailure:        {2001, http.StatusBadGateway},
	apperr.RemoteRejection:       {2002, http.StatusBadGateway},
	apperr.Timeout:               {2003, http.StatusGatewayTimeout},
	apperr.Internal:              {5000, http.StatusInternalServerError},
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// fail 按错误类别返回状态码与业务码；附加数据（如期望表头）放在 data
func fail(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	m, ok := errorMappings[kind]
	if !ok {
		m = errorMappings[apperr.Internal]
	}
	c.JSON(m.status, Response{
		Code:    m.code,
		Message: apperr.MessageOf(err),
		Kind:    kind,
		Data:    apperr.DetailOf(err),
	})
}

func badRequest(c *gin.Context, message string) {
	fail(c, apperr.New(apperr.InvalidArgument, message))
}

func indexParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		badRequest(c, "잘못된 번호입니다: "+c.Param(name))
		return 0, false
	}
	return v, true
}

// GetStatus 状态概览
// GET /api/v1/status
func (h *Handler) GetStatus(c *gin.Context) {
	success(c, h.ctrl.Status())
}

// Reset 清空全部数据
// POST /api/v1/reset
func (h *Handler) Reset(c *gin.Context) {
	if err := h.ctrl.Reset(); err != nil {
		fail(c, err)
		return
	}
	success(c, h.ctrl.Status())
}
