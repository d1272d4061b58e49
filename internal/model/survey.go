package model

import "time"

// Bucket 问卷分组
type Bucket string

const (
	BucketEnvironmental Bucket = "environmental"
	BucketSocial        Bucket = "social"
	BucketGovernance    Bucket = "governance" // 含经济类
)

// Buckets 固定顺序：环境 → 社会 → 治理/经济
var Buckets = []Bucket{BucketEnvironmental, BucketSocial, BucketGovernance}

// Label 分组展示名
func (b Bucket) Label() string {
	switch b {
	case BucketEnvironmental:
		return "환경"
	case BucketSocial:
		return "사회"
	case BucketGovernance:
		return "지배구조/경제"
	}
	return string(b)
}

// SurveyItem 问卷题目，由评估类别一对一派生
// 分数为 1..5，nil 表示未作答
type SurveyItem struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	OutsideScore      *int              `json:"outsideScore"`
	InsideScore       *int              `json:"insideScore"`
	Category          string            `json:"category"`
	ESGClassification ESGClassification `json:"esgClassification"`
	Rank              int               `json:"rank"`
}

// Complete 两个维度均已作答
func (it SurveyItem) Complete() bool {
	return it.OutsideScore != nil && it.InsideScore != nil
}

// SurveyData 问卷输入（surveyData）
type SurveyData struct {
	CompanyID  string               `json:"companyId"`
	Categories []AssessmentCategory `json:"categories"`
	Timestamp  time.Time            `json:"timestamp"`
}

// SurveyResponse 提交结果中的单题答复（附带分组名）
type SurveyResponse struct {
	SurveyItem
	Bucket Bucket `json:"bucket"`
}

// SurveyResult 问卷提交载荷（surveyResult）
type SurveyResult struct {
	SubmissionID       string           `json:"submissionId"`
	CompanyID          string           `json:"companyId"`
	RespondentType     string           `json:"respondentType"`
	Timestamp          time.Time        `json:"timestamp"`
	TotalItems         int              `json:"totalItems"`
	Responses          []SurveyResponse `json:"responses"`
	OriginalSurveyData SurveyData       `json:"originalSurveyData"`
}
