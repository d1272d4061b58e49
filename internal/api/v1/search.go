package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"materiality/internal/model"
)

// ListCompanies 可选公司列表
// GET /api/v1/companies
func (h *Handler) ListCompanies(c *gin.Context) {
	names, err := h.ctrl.Companies(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	success(c, names)
}

// SearchMedia 媒体检索
// POST /api/v1/media/search
func (h *Handler) SearchMedia(c *gin.Context) {
	var req model.MediaSearchQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "요청 형식이 올바르지 않습니다.")
		return
	}
	rec, err := h.ctrl.SearchMedia(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, rec)
}

// GetMediaSearch 最近一次检索；没有时 data 为 null
// GET /api/v1/media/search
func (h *Handler) GetMediaSearch(c *gin.Context) {
	rec, ok := h.ctrl.LastMediaSearch()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": nil})
		return
	}
	success(c, rec)
}

// IssuepoolRequest 议题池查询；字段为空时沿用当前检索条件
type IssuepoolRequest struct {
	CompanyID     string             `json:"companyId"`
	ReportPeriod  model.ReportPeriod `json:"reportPeriod"`
	SearchContext string             `json:"searchContext"`
}

// ListIssuepools 历年议题池
// POST /api/v1/issuepools
func (h *Handler) ListIssuepools(c *gin.Context) {
	var req IssuepoolRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "요청 형식이 올바르지 않습니다.")
			return
		}
	}
	list, err := h.ctrl.ListIssuepools(c.Request.Context(), req.CompanyID, req.ReportPeriod, req.SearchContext)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, list)
}

// ListCatalog 类别目录
// GET /api/v1/categories/catalog
func (h *Handler) ListCatalog(c *gin.Context) {
	list, err := h.ctrl.Catalog(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	success(c, list)
}
