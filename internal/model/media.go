package model

import "time"

// Article 媒体检索返回的新闻条目
type Article struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	OriginalLink     string `json:"originallink"`
	PubDate          string `json:"pubDate"`
	Company          string `json:"company"`
	Issue            string `json:"issue,omitempty"`
	OriginalCategory string `json:"original_category,omitempty"`
	QueryKind        string `json:"query_kind,omitempty"`
	Keyword          string `json:"keyword,omitempty"`
}

// MediaSearchResult 检索结果
type MediaSearchResult struct {
	CompanyID    string       `json:"companyId"`
	SearchPeriod ReportPeriod `json:"searchPeriod"`
	Articles     []Article    `json:"articles"`
	TotalResults int          `json:"totalResults"`
}

// ExcelAttachment 检索结果附带的 Excel 文件（base64）
type ExcelAttachment struct {
	FileName   string `json:"fileName"`
	Base64Data string `json:"base64Data"`
}

// MediaSearchQuery 检索条件
type MediaSearchQuery struct {
	CompanyID    string       `json:"companyId"`
	ReportPeriod ReportPeriod `json:"reportPeriod"`
	SearchType   string       `json:"searchType"`
}

// MediaSearchRecord 最近一次检索的缓存记录（savedMediaSearch）
type MediaSearchRecord struct {
	Query     MediaSearchQuery  `json:"query"`
	Result    MediaSearchResult `json:"result"`
	Excel     *ExcelAttachment  `json:"excel,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Issuepool 历年议题池条目
type Issuepool struct {
	Ranking           int               `json:"ranking"`
	Category          string            `json:"category"`
	BaseIssuePool     string            `json:"baseIssuePool"`
	ESGClassification ESGClassification `json:"esgClassification"`
}

// IssuepoolList 议题池查询结果
type IssuepoolList struct {
	CompanyID     string      `json:"companyId"`
	SearchContext string      `json:"searchContext"`
	Year          int         `json:"year,omitempty"`
	Issuepools    []Issuepool `json:"issuepools"`
}
