package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"materiality/internal/model"
)

// 远端接口使用 snake_case；本文件内的类型只在边界使用，进入模型层前全部转换为 model 类型。

type reportPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func toWirePeriod(p model.ReportPeriod) reportPeriod {
	return reportPeriod{StartDate: p.StartDate, EndDate: p.EndDate}
}

func (p reportPeriod) toModel() model.ReportPeriod {
	return model.ReportPeriod{StartDate: p.StartDate, EndDate: p.EndDate}
}

func stamp(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}

type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e envelope) reason() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// ---- companies ----

type companiesResponse struct {
	Companies []struct {
		CompanyName string `json:"companyname"`
	} `json:"companies"`
}

// ---- media search ----

type mediaSearchRequest struct {
	CompanyID    string       `json:"company_id"`
	ReportPeriod reportPeriod `json:"report_period"`
	SearchType   string       `json:"search_type"`
	Timestamp    string       `json:"timestamp"`
}

type mediaSearchData struct {
	CompanyID    string          `json:"company_id"`
	SearchPeriod reportPeriod    `json:"search_period"`
	Articles     []model.Article `json:"articles"`
	TotalResults int             `json:"total_results"`
}

type mediaSearchResponse struct {
	ExcelFilename string `json:"excel_filename"`
	ExcelBase64   string `json:"excel_base64"`
}

func (d mediaSearchData) validate() error {
	if d.Articles == nil {
		return fmt.Errorf("articles missing")
	}
	if d.TotalResults < 0 {
		return fmt.Errorf("total_results negative: %d", d.TotalResults)
	}
	return nil
}

// ---- issuepool ----

type issuepoolRequest struct {
	CompanyID     string       `json:"company_id"`
	ReportPeriod  reportPeriod `json:"report_period"`
	SearchContext string       `json:"search_context"`
	RequestType   string       `json:"request_type"`
	Timestamp     string       `json:"timestamp"`
}

type issuepoolEntry struct {
	Ranking           int      `json:"ranking"`
	Category          string   `json:"category"`
	BaseIssuePool     string   `json:"base_issue_pool"`
	ESGClassification esgLabel `json:"esg_classification"`
}

type issuepoolData struct {
	CompanyID     string           `json:"company_id"`
	SearchContext string           `json:"search_context"`
	Year          int              `json:"year"`
	Issuepools    []issuepoolEntry `json:"issuepools"`
}

func (d issuepoolData) toModel(companyID, searchContext string) model.IssuepoolList {
	out := model.IssuepoolList{
		CompanyID:     d.CompanyID,
		SearchContext: d.SearchContext,
		Year:          d.Year,
		Issuepools:    make([]model.Issuepool, 0, len(d.Issuepools)),
	}
	if out.CompanyID == "" {
		out.CompanyID = companyID
	}
	if out.SearchContext == "" {
		out.SearchContext = searchContext
	}
	for _, e := range d.Issuepools {
		if strings.TrimSpace(e.Category) == "" {
			continue
		}
		out.Issuepools = append(out.Issuepools, model.Issuepool{
			Ranking:           e.Ranking,
			Category:          e.Category,
			BaseIssuePool:     e.BaseIssuePool,
			ESGClassification: model.ESGClassification(e.ESGClassification),
		})
	}
	return out
}

// ---- assessment ----

type assessmentRequest struct {
	CompanyID    string          `json:"company_id"`
	ReportPeriod reportPeriod    `json:"report_period"`
	RequestType  string          `json:"request_type"`
	Timestamp    string          `json:"timestamp"`
	Articles     []model.Article `json:"articles"`
	TotalResults int             `json:"total_results"`
}

type assessmentCategory struct {
	Rank              int       `json:"rank"`
	Category          string    `json:"category"`
	ESGClassification esgLabel  `json:"esg_classification"`
	FrequencyScore    float64   `json:"frequency_score"`
	RelevanceScore    float64   `json:"relevance_score"`
	RecentScore       float64   `json:"recent_score"`
	RankScore         float64   `json:"rank_score"`
	ReferenceScore    float64   `json:"reference_score"`
	NegativeScore     float64   `json:"negative_score"`
	FinalScore        float64   `json:"final_score"`
	TotalIssuePools   int       `json:"total_issue_pools"`
	BaseIssuePools    poolNames `json:"base_issue_pools"`
}

type assessmentData struct {
	MatchedCategories []assessmentCategory `json:"matched_categories"`
	TotalArticles     int                  `json:"total_articles"`
	NegativeArticles  int                  `json:"negative_articles"`
	NegativeRatio     float64              `json:"negative_ratio"`
	TotalCategories   int                  `json:"total_categories"`
}

func (d assessmentData) validate() error {
	if d.MatchedCategories == nil {
		return fmt.Errorf("matched_categories missing")
	}
	for i, c := range d.MatchedCategories {
		if strings.TrimSpace(c.Category) == "" {
			return fmt.Errorf("matched_categories[%d]: empty category", i)
		}
	}
	if d.NegativeRatio < 0 {
		return fmt.Errorf("negative_ratio negative: %v", d.NegativeRatio)
	}
	return nil
}

func (d assessmentData) toModel() model.AssessmentResult {
	out := model.AssessmentResult{
		MatchedCategories: make([]model.AssessmentCategory, 0, len(d.MatchedCategories)),
		TotalArticles:     d.TotalArticles,
		NegativeArticles:  d.NegativeArticles,
		NegativeRatio:     d.NegativeRatio,
		TotalCategories:   d.TotalCategories,
	}
	for _, c := range d.MatchedCategories {
		pools := []string(c.BaseIssuePools)
		if pools == nil {
			pools = []string{}
		}
		out.MatchedCategories = append(out.MatchedCategories, model.AssessmentCategory{
			Rank:              c.Rank,
			Category:          c.Category,
			ESGClassification: model.ESGClassification(c.ESGClassification),
			FrequencyScore:    c.FrequencyScore,
			RelevanceScore:    c.RelevanceScore,
			RecentScore:       c.RecentScore,
			RankScore:         c.RankScore,
			ReferenceScore:    c.ReferenceScore,
			NegativeScore:     c.NegativeScore,
			FinalScore:        c.FinalScore,
			TotalIssuePools:   c.TotalIssuePools,
			BaseIssuePools:    pools,
		})
	}
	return out
}

// ---- categories/all ----

type categoriesRequest struct {
	IncludeBaseIssuePools    bool `json:"include_base_issue_pools"`
	IncludeESGClassification bool `json:"include_esg_classification"`
}

type catalogEntry struct {
	CategoryName      string    `json:"category_name"`
	ESGClassification esgLabel  `json:"esg_classification"`
	BaseIssuePools    poolNames `json:"base_issue_pools"`
}

type categoriesResponse struct {
	Categories []catalogEntry `json:"categories"`
}

// esgLabel 兼容 "환경" 与 {"esg":"환경"} 两种形式
type esgLabel string

func (l *esgLabel) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = esgLabel(s)
		return nil
	}
	var obj struct {
		ESG string `json:"esg"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("esg_classification: %w", err)
	}
	*l = esgLabel(obj.ESG)
	return nil
}

// poolNames 兼容 ["a"] 与 [{"base_issue_pool":"a"}] 两种形式
type poolNames []string

func (p *poolNames) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("base_issue_pools: %w", err)
	}
	out := make([]string, 0, len(raw))
	for i, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
			continue
		}
		var obj struct {
			BaseIssuePool string `json:"base_issue_pool"`
		}
		if err := json.Unmarshal(r, &obj); err != nil {
			return fmt.Errorf("base_issue_pools[%d]: %w", i, err)
		}
		out = append(out, obj.BaseIssuePool)
	}
	*p = out
	return nil
}
