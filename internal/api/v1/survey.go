package v1

import (
	"github.com/gin-gonic/gin"

	"materiality/internal/apperr"
	"materiality/internal/model"
	"materiality/internal/survey"
)

var errNoResult = apperr.New(apperr.NotFound, "제출된 설문 결과가 없습니다.")

// SurveyView 问卷状态及派生的步骤信息
type SurveyView struct {
	State    survey.State  `json:"state"`
	Steps    []survey.Step `json:"steps"`
	Current  survey.Step   `json:"current"`
	Progress int           `json:"progress"`
	MaxStep  int           `json:"maxStep"`
}

func surveyView(s survey.State) SurveyView {
	return SurveyView{
		State:    s,
		Steps:    s.Steps(),
		Current:  s.Current(),
		Progress: s.Progress(),
		MaxStep:  s.MaxStep(),
	}
}

// StartSurvey 以当前类别列表生成问卷
// POST /api/v1/survey/start
func (h *Handler) StartSurvey(c *gin.Context) {
	s, err := h.ctrl.StartSurvey()
	if err != nil {
		fail(c, err)
		return
	}
	success(c, surveyView(s))
}

// GetSurvey 当前问卷
// GET /api/v1/survey
func (h *Handler) GetSurvey(c *gin.Context) {
	success(c, surveyView(h.ctrl.Survey()))
}

// SetRespondentType 设置应答者类型
// PUT /api/v1/survey/respondent
func (h *Handler) SetRespondentType(c *gin.Context) {
	var req struct {
		RespondentType string `json:"respondentType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "요청 형식이 올바르지 않습니다.")
		return
	}
	s, err := h.ctrl.SetRespondentType(req.RespondentType)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, surveyView(s))
}

// ScoreRequest 单题评分
type ScoreRequest struct {
	Dimension survey.Dimension `json:"dimension"`
	Score     int              `json:"score"`
}

// SetScore 设置单题分数
// PUT /api/v1/survey/items/:id/score
func (h *Handler) SetScore(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "요청 형식이 올바르지 않습니다.")
		return
	}
	s, err := h.ctrl.SetScore(c.Param("id"), req.Dimension, req.Score)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, surveyView(s))
}

// NextStep 前进；最后一步时提交
// POST /api/v1/survey/next
func (h *Handler) NextStep(c *gin.Context) {
	s, payload, err := h.ctrl.Next()
	if err != nil {
		fail(c, err)
		return
	}
	success(c, struct {
		SurveyView
		Submitted *model.SurveyResult `json:"submittedResult"`
	}{surveyView(s), payload})
}

// PrevStep 后退；第一步时 exit=true
// POST /api/v1/survey/prev
func (h *Handler) PrevStep(c *gin.Context) {
	s, exit := h.ctrl.Prev()
	success(c, struct {
		SurveyView
		Exit bool `json:"exit"`
	}{surveyView(s), exit})
}

// GetSurveyResult 最近一次提交结果
// GET /api/v1/survey/result
func (h *Handler) GetSurveyResult(c *gin.Context) {
	res, summary, ok := h.ctrl.SurveyResult()
	if !ok {
		fail(c, errNoResult)
		return
	}
	success(c, gin.H{"result": res, "summary": summary})
}

// ListSubmissions 已归档的提交 id
// GET /api/v1/survey/submissions
func (h *Handler) ListSubmissions(c *gin.Context) {
	ids, err := h.ctrl.Submissions()
	if err != nil {
		fail(c, err)
		return
	}
	success(c, ids)
}

// GetSubmission 单条归档提交及汇总
// GET /api/v1/survey/submissions/:id
func (h *Handler) GetSubmission(c *gin.Context) {
	res, summary, err := h.ctrl.Submission(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, gin.H{"result": res, "summary": summary})
}

// GetScale 评分量表
// GET /api/v1/survey/scale
func (h *Handler) GetScale(c *gin.Context) {
	success(c, gin.H{
		"scale":              survey.Scale,
		"dimensions":         []survey.Dimension{survey.DimensionOutside, survey.DimensionInside},
		"notApplicableLabel": survey.NotApplicableLabel,
	})
}
