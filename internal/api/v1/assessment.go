package v1

import (
	"github.com/gin-gonic/gin"
)

// RunAssessment 以最近一次检索结果运行评估
// POST /api/v1/assessment
func (h *Handler) RunAssessment(c *gin.Context) {
	if _, err := h.ctrl.RunAssessment(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	success(c, h.ctrl.Assessment())
}

// GetAssessment 当前类别列表与派生数据
// GET /api/v1/assessment
func (h *Handler) GetAssessment(c *gin.Context) {
	success(c, h.ctrl.Assessment())
}

// AddCategoryRequest 新增类别
type AddCategoryRequest struct {
	CategoryName          string `json:"categoryName"`
	Rank                  int    `json:"rank"`
	SelectedBaseIssuePool string `json:"selectedBaseIssuePool"`
}

// AddCategory 新增类别
// POST /api/v1/assessment/categories
func (h *Handler) AddCategory(c *gin.Context) {
	var req AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "요청 형식이 올바르지 않습니다.")
		return
	}
	view, err := h.ctrl.AddCategory(req.CategoryName, req.Rank, req.SelectedBaseIssuePool)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, view)
}

// DeleteCategory 删除类别
// DELETE /api/v1/assessment/categories/:index
func (h *Handler) DeleteCategory(c *gin.Context) {
	index, ok := indexParam(c, "index")
	if !ok {
		return
	}
	view, err := h.ctrl.DeleteCategory(index)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, view)
}

// SelectBaseIssuePool 选择 base issue pool
// PUT /api/v1/assessment/categories/:index/base-issue-pool
func (h *Handler) SelectBaseIssuePool(c *gin.Context) {
	index, ok := indexParam(c, "index")
	if !ok {
		return
	}
	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "요청 형식이 올바르지 않습니다.")
		return
	}
	view, err := h.ctrl.SelectBaseIssuePool(index, req.Value)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, view)
}

// GetFormula 得分公式展开
// GET /api/v1/assessment/formula/:index
func (h *Handler) GetFormula(c *gin.Context) {
	index, ok := indexParam(c, "index")
	if !ok {
		return
	}
	f, err := h.ctrl.Formula(index)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, f)
}
