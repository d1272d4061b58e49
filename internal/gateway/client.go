// Package gateway 远端 materiality 网关的类型化客户端。
//
// 所有响应在此处完成校验并转换为 model 类型；错误统一归类为
// Timeout（仅评估接口）、RemoteRejection（success:false）或 NetworkFailure。
// 不做任何自动重试。
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"materiality/internal/apperr"
	"materiality/internal/model"
)

const (
	pathCompanies   = "/api/v1/search/companies"
	pathSearchMedia = "/api/v1/materiality-service/search-media"
	pathIssuepools  = "/api/v1/materiality-service/issuepool/list"
	pathAssessment  = "/api/v1/materiality-service/middleissue/assessment"
	pathCategories  = "/api/v1/materiality-service/category/categories/all"

	DefaultTimeout           = 30 * time.Second
	DefaultAssessmentTimeout = 120 * time.Second

	maxResponseBytes = 64 << 20
)

const (
	msgNetwork       = "서버와 통신할 수 없습니다. 네트워크 상태를 확인해 주세요."
	msgBadResponse   = "서버 응답 형식이 올바르지 않습니다."
	msgRejected      = "서버가 요청을 처리하지 못했습니다."
	msgAssessTimeout = "분석 요청 시간이 초과되었습니다. 잠시 후 다시 시도해 주세요."
)

// Options 客户端配置
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	AssessmentTimeout time.Duration
	HTTPClient        *http.Client
	Now               func() time.Time
}

// Client 网关客户端
type Client struct {
	baseURL           string
	http              *http.Client
	timeout           time.Duration
	assessmentTimeout time.Duration
	now               func() time.Time

	// 只读查询（公司列表、类别目录）的并发请求合并为一次
	lookups singleflight.Group
}

// New 创建客户端；超时由每次调用的 context 控制
func New(opts Options) *Client {
	c := &Client{
		baseURL:           strings.TrimRight(opts.BaseURL, "/"),
		http:              opts.HTTPClient,
		timeout:           opts.Timeout,
		assessmentTimeout: opts.AssessmentTimeout,
		now:               opts.Now,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.assessmentTimeout <= 0 {
		c.assessmentTimeout = DefaultAssessmentTimeout
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// BaseURL 网关地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SearchCompanies 公司名称列表
func (c *Client) SearchCompanies(ctx context.Context) ([]string, error) {
	v, err := c.shared(ctx, pathCompanies, func(ctx context.Context) (any, error) {
		return c.fetchCompanies(ctx)
	})
	if err != nil {
		return nil, err
	}
	return append([]string(nil), v.([]string)...), nil
}

func (c *Client) fetchCompanies(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, pathCompanies, nil, c.timeout, false)
	if err != nil {
		return nil, err
	}
	var resp companiesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, badResponse(pathCompanies, err)
	}
	names := make([]string, 0, len(resp.Companies))
	for _, co := range resp.Companies {
		if name := strings.TrimSpace(co.CompanyName); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// SearchMedia 媒体检索；附带的 Excel 文件（如有）一并返回
func (c *Client) SearchMedia(ctx context.Context, q model.MediaSearchQuery) (*model.MediaSearchResult, *model.ExcelAttachment, error) {
	req := mediaSearchRequest{
		CompanyID:    q.CompanyID,
		ReportPeriod: toWirePeriod(q.ReportPeriod),
		SearchType:   q.SearchType,
		Timestamp:    stamp(c.now()),
	}
	body, err := c.do(ctx, http.MethodPost, pathSearchMedia, req, c.timeout, false)
	if err != nil {
		return nil, nil, err
	}

	var data mediaSearchData
	if err := json.Unmarshal(unwrap(body), &data); err != nil {
		return nil, nil, badResponse(pathSearchMedia, err)
	}
	if err := data.validate(); err != nil {
		return nil, nil, badResponse(pathSearchMedia, err)
	}

	result := &model.MediaSearchResult{
		CompanyID:    data.CompanyID,
		SearchPeriod: data.SearchPeriod.toModel(),
		Articles:     data.Articles,
		TotalResults: data.TotalResults,
	}
	if result.CompanyID == "" {
		result.CompanyID = q.CompanyID
	}

	var root mediaSearchResponse
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, nil, badResponse(pathSearchMedia, err)
	}
	var excel *model.ExcelAttachment
	if root.ExcelBase64 != "" {
		excel = &model.ExcelAttachment{FileName: root.ExcelFilename, Base64Data: root.ExcelBase64}
	}
	return result, excel, nil
}

// ListIssuepools 查询历年议题池
func (c *Client) ListIssuepools(ctx context.Context, companyID string, period model.ReportPeriod, searchContext string) (*model.IssuepoolList, error) {
	req := issuepoolRequest{
		CompanyID:     companyID,
		ReportPeriod:  toWirePeriod(period),
		SearchContext: searchContext,
		RequestType:   "issuepool_list",
		Timestamp:     stamp(c.now()),
	}
	body, err := c.do(ctx, http.MethodPost, pathIssuepools, req, c.timeout, false)
	if err != nil {
		return nil, err
	}
	var data issuepoolData
	if err := json.Unmarshal(unwrap(body), &data); err != nil {
		return nil, badResponse(pathIssuepools, err)
	}
	list := data.toModel(companyID, searchContext)
	return &list, nil
}

// AssessmentInput 评估请求参数
type AssessmentInput struct {
	CompanyID    string
	ReportPeriod model.ReportPeriod
	Articles     []model.Article
	TotalResults int
}

// RunAssessment 运行中分类评估；超时上限为 AssessmentTimeout，超时后不重试
func (c *Client) RunAssessment(ctx context.Context, in AssessmentInput) (*model.AssessmentResult, error) {
	req := assessmentRequest{
		CompanyID:    in.CompanyID,
		ReportPeriod: toWirePeriod(in.ReportPeriod),
		RequestType:  "middleissue_assessment",
		Timestamp:    stamp(c.now()),
		Articles:     NormalizeArticles(in.Articles),
		TotalResults: in.TotalResults,
	}
	body, err := c.do(ctx, http.MethodPost, pathAssessment, req, c.assessmentTimeout, true)
	if err != nil {
		return nil, err
	}

	var data assessmentData
	if err := json.Unmarshal(unwrap(body), &data); err != nil {
		return nil, badResponse(pathAssessment, err)
	}
	if err := data.validate(); err != nil {
		return nil, badResponse(pathAssessment, err)
	}
	result := data.toModel()
	return &result, nil
}

// ListCategories 类别目录（含基础议题池与 ESG 分类）
func (c *Client) ListCategories(ctx context.Context) ([]model.CatalogCategory, error) {
	v, err := c.shared(ctx, pathCategories, func(ctx context.Context) (any, error) {
		return c.fetchCategories(ctx)
	})
	if err != nil {
		return nil, err
	}
	return append([]model.CatalogCategory(nil), v.([]model.CatalogCategory)...), nil
}

func (c *Client) fetchCategories(ctx context.Context) ([]model.CatalogCategory, error) {
	req := categoriesRequest{IncludeBaseIssuePools: true, IncludeESGClassification: true}
	body, err := c.do(ctx, http.MethodPost, pathCategories, req, c.timeout, false)
	if err != nil {
		return nil, err
	}
	var resp categoriesResponse
	if err := json.Unmarshal(unwrap(body), &resp); err != nil {
		return nil, badResponse(pathCategories, err)
	}
	out := make([]model.CatalogCategory, 0, len(resp.Categories))
	for _, e := range resp.Categories {
		if strings.TrimSpace(e.CategoryName) == "" {
			continue
		}
		pools := []string(e.BaseIssuePools)
		if pools == nil {
			pools = []string{}
		}
		out = append(out, model.CatalogCategory{
			CategoryName:      e.CategoryName,
			ESGClassification: model.ESGClassification(e.ESGClassification),
			BaseIssuePools:    pools,
		})
	}
	return out, nil
}

// shared 合并同一 key 的并发查询。共享请求脱离发起者的取消信号
// （超时仍由 do 控制），单个调用方取消时只有它自己提前返回
func (c *Client) shared(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	ch := c.lookups.DoChan(key, func() (any, error) {
		return fetch(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, apperr.Wrap(apperr.NetworkFailure, msgNetwork, ctx.Err())
	}
}

// do 发送请求并完成错误归类。timeoutKind 为 true 时超时归为 Timeout，否则归为 NetworkFailure
func (c *Client) do(ctx context.Context, method, path string, payload any, timeout time.Duration, timeoutKind bool) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "요청을 만들 수 없습니다.", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, apperr.Wrap(apperr.NetworkFailure, msgNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if timeoutKind && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Printf("[gateway] %s %s timed out after %s", method, path, time.Since(start).Round(time.Millisecond))
			return nil, apperr.Wrap(apperr.Timeout, msgAssessTimeout, err)
		}
		log.Printf("[gateway] %s %s failed: %v", method, path, err)
		return nil, apperr.Wrap(apperr.NetworkFailure, msgNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if timeoutKind && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperr.Wrap(apperr.Timeout, msgAssessTimeout, err)
		}
		return nil, apperr.Wrap(apperr.NetworkFailure, msgNetwork, err)
	}
	log.Printf("[gateway] %s %s -> %d (%s, %d bytes)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond), len(body))

	if rejected, reason := rejection(body); rejected {
		if reason == "" {
			reason = msgRejected
		}
		return nil, apperr.WithDetail(apperr.RemoteRejection, reason, map[string]any{"status": resp.StatusCode, "path": path})
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperr.Wrap(apperr.NetworkFailure, msgNetwork,
			fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode))
	}
	if !gjson.ValidBytes(body) {
		return nil, badResponse(path, fmt.Errorf("body is not valid JSON"))
	}
	return body, nil
}

// rejection 判断响应是否为 success:false，并取出服务端说明
func rejection(body []byte) (bool, string) {
	if !gjson.ValidBytes(body) {
		return false, ""
	}
	success := gjson.GetBytes(body, "success")
	if !success.Exists() || success.Type != gjson.False {
		return false, ""
	}
	var env envelope
	_ = json.Unmarshal(body, &env)
	return true, env.reason()
}

// unwrap 统一评估等接口的两种响应形态：优先取 .data 对象，否则使用根对象。
// 远端应统一为 .data，在此之前两种形态均视为合法。
func unwrap(body []byte) []byte {
	if d := gjson.GetBytes(body, "data"); d.Exists() && d.IsObject() {
		return []byte(d.Raw)
	}
	return body
}

func badResponse(path string, err error) error {
	log.Printf("[gateway] invalid response from %s: %v", path, err)
	return apperr.Wrap(apperr.NetworkFailure, msgBadResponse, fmt.Errorf("%s: %w", path, err))
}
