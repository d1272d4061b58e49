package model

import "time"

// ESGClassification ESG 分类标签
type ESGClassification string

const (
	ESGEnvironmental ESGClassification = "환경"
	ESGSocial        ESGClassification = "사회"
	ESGGovernance    ESGClassification = "지배구조"
	ESGEconomic      ESGClassification = "경제"
	ESGUnclassified  ESGClassification = "미분류"
)

// ESGClassifications 全部合法标签
var ESGClassifications = []ESGClassification{
	ESGEnvironmental,
	ESGSocial,
	ESGGovernance,
	ESGEconomic,
	ESGUnclassified,
}

// AssessmentCategory 一个 ESG 议题类别（服务端评分 + 用户编辑状态）
type AssessmentCategory struct {
	Rank              int               `json:"rank"`
	Category          string            `json:"category"`
	ESGClassification ESGClassification `json:"esgClassification"`

	FrequencyScore float64 `json:"frequencyScore"`
	RelevanceScore float64 `json:"relevanceScore"`
	RecentScore    float64 `json:"recentScore"`
	RankScore      float64 `json:"rankScore"`
	ReferenceScore float64 `json:"referenceScore"`
	NegativeScore  float64 `json:"negativeScore"`
	FinalScore     float64 `json:"finalScore"` // 服务端计算，客户端不覆盖

	TotalIssuePools       int      `json:"totalIssuePools"`
	BaseIssuePools        []string `json:"baseIssuePools"`
	SelectedBaseIssuePool string   `json:"selectedBaseIssuePool"`
}

// AssessmentResult 评估结果及其统计
type AssessmentResult struct {
	MatchedCategories []AssessmentCategory `json:"matchedCategories"`
	TotalArticles     int                  `json:"totalArticles"`
	NegativeArticles  int                  `json:"negativeArticles"`
	NegativeRatio     float64              `json:"negativeRatio"`
	TotalCategories   int                  `json:"totalCategories"`
}

// ReportPeriod 报告期间（YYYY-MM-DD）
type ReportPeriod struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// AssessmentRecord 评估结果缓存记录（materialityAssessmentResult）
type AssessmentRecord struct {
	AssessmentResult AssessmentResult `json:"assessmentResult"`
	CompanyID        string           `json:"companyId"`
	SearchPeriod     ReportPeriod     `json:"searchPeriod"`
	Timestamp        time.Time        `json:"timestamp"`
}

// CatalogCategory 类别目录项（categories/all）
type CatalogCategory struct {
	CategoryName      string            `json:"categoryName"`
	ESGClassification ESGClassification `json:"esgClassification"`
	BaseIssuePools    []string          `json:"baseIssuePools"`
}
