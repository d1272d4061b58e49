// Package workflow 工作台的单一控制器：持有全部工作流状态，
// 负责调用远端网关、执行本地编辑，并在每次变更后整条写回缓存。
package workflow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"materiality/internal/apperr"
	"materiality/internal/assessment"
	"materiality/internal/cache"
	"materiality/internal/gateway"
	"materiality/internal/model"
	"materiality/internal/service/archive"
	"materiality/internal/service/excel"
	"materiality/internal/store"
	"materiality/internal/survey"
)

// Gateway 远端网关（*gateway.Client 实现）
type Gateway interface {
	SearchCompanies(ctx context.Context) ([]string, error)
	SearchMedia(ctx context.Context, q model.MediaSearchQuery) (*model.MediaSearchResult, *model.ExcelAttachment, error)
	ListIssuepools(ctx context.Context, companyID string, period model.ReportPeriod, searchContext string) (*model.IssuepoolList, error)
	RunAssessment(ctx context.Context, in gateway.AssessmentInput) (*model.AssessmentResult, error)
	ListCategories(ctx context.Context) ([]model.CatalogCategory, error)
}

// UploadLogger 上传审计记录（SQLite Store 与 MemoryStore 均实现）
type UploadLogger interface {
	CreateUploadLog(l store.UploadLog) (int64, error)
	ListUploadLogs(limit int) ([]store.UploadLog, error)
}

// Options 控制器依赖
type Options struct {
	Cache   *cache.ResultCache
	Gateway Gateway
	Parser  *excel.Parser
	Logs    UploadLogger     // 可选
	Archive *archive.Archive // 可选
	TopN    int
	Now     func() time.Time
}

// Controller 工作流控制器
//
// mu 保护 state；远端调用期间不持有 mu，只占用对应操作的 in-flight 标记。
type Controller struct {
	mu    sync.Mutex
	state State

	cache    *cache.ResultCache
	gateway  Gateway
	parser   *excel.Parser
	exporter *excel.Exporter
	logs     UploadLogger
	archive  *archive.Archive
	flights  *inflight
	topN     int
	now      func() time.Time
}

// New 创建控制器（空状态；需要恢复缓存时调用 Restore）
func New(opts Options) *Controller {
	c := &Controller{
		state:    NewState(),
		cache:    opts.Cache,
		gateway:  opts.Gateway,
		parser:   opts.Parser,
		exporter: excel.NewExporter(),
		logs:     opts.Logs,
		archive:  opts.Archive,
		flights:  newInflight(),
		topN:     opts.TopN,
		now:      opts.Now,
	}
	if c.parser == nil {
		c.parser = excel.NewParser(0)
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.topN <= 0 {
		c.topN = 10
	}
	return c
}

// Restore 从缓存恢复状态；缺失或损坏的记录按空处理
func (c *Controller) Restore() {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := NewState()
	if rec, ok := c.cache.LoadUpload(); ok {
		s = FromUploadRecord(s, rec)
	}
	if rec, ok := c.cache.LoadMediaSearch(); ok {
		s.Media = &rec
		s.CompanyID = rec.Query.CompanyID
		s.Period = rec.Query.ReportPeriod
	}
	if rec, ok := c.cache.LoadAssessment(); ok {
		s.Categories = assessment.ReplaceAll(rec.AssessmentResult.MatchedCategories)
		s.Assessment = &rec
		if s.CompanyID == "" {
			s.CompanyID = rec.CompanyID
			s.Period = rec.SearchPeriod
		}
	}
	if data, ok := c.cache.LoadSurveyData(); ok {
		s.Survey = survey.Load(data)
	}
	if res, ok := c.cache.LoadSurveyResult(); ok {
		s.SurveyResult = &res
	}
	c.state = s

	log.Printf("[workflow] restored: contacts=%d categories=%d survey=%v", len(s.Contacts), len(s.Categories), s.Survey.Loaded)
}

// State 当前状态副本
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Status 状态概览
type Status struct {
	Records      map[string]bool `json:"records"`
	StoredKeys   []string        `json:"storedKeys"`
	InFlight     []Action        `json:"inFlight"`
	Contacts     int             `json:"contacts"`
	Categories   int             `json:"categories"`
	CompanyID    string          `json:"companyId"`
	SurveyLoaded bool            `json:"surveyLoaded"`
	Submitted    bool            `json:"submitted"`
}

// Status 返回各缓存键是否存在以及进行中的操作
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := make(map[string]bool, len(cache.Keys))
	for _, k := range cache.Keys {
		records[k] = c.cache.Has(k)
	}
	stored, err := c.cache.StoredKeys()
	if err != nil {
		log.Printf("[workflow] list stored keys failed: %v", err)
		stored = []string{}
	}
	return Status{
		Records:      records,
		StoredKeys:   stored,
		InFlight:     c.flights.active(),
		Contacts:     len(c.state.Contacts),
		Categories:   len(c.state.Categories),
		CompanyID:    c.state.CompanyID,
		SurveyLoaded: c.state.Survey.Loaded,
		Submitted:    c.state.SurveyResult != nil,
	}
}

// Reset 清空全部状态与缓存
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.cache.ClearAll(); err != nil {
		return apperr.Wrap(apperr.Internal, "저장된 데이터를 삭제하지 못했습니다.", err)
	}
	c.state = NewState()
	return nil
}

// ==================== 名单 ====================

// MaxUploadBytes 上传大小上限
func (c *Controller) MaxUploadBytes() int64 {
	return c.parser.MaxBytes()
}

// Upload 解析上传文件并整体替换名单。
// 大小/扩展名不合格时状态不变；表头不符时名单清空，仍保留文件信息（含 base64）。
func (c *Controller) Upload(data []byte, fileName string) (*excel.IngestResult, error) {
	res, ingestErr := c.parser.Ingest(data, fileName)
	c.logUpload(data, fileName, res, ingestErr)
	if res == nil {
		return nil, ingestErr
	}

	if c.archive != nil {
		if _, err := c.archive.SaveUpload(res.FileID, fileName, data); err != nil {
			log.Printf("[workflow] archive upload failed: %v", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = WithUpload(c.state, res)
	if err := c.persistUploadLocked(); err != nil {
		return res, err
	}
	return res, ingestErr
}

func (c *Controller) logUpload(data []byte, fileName string, res *excel.IngestResult, ingestErr error) {
	if c.logs == nil {
		return
	}
	sum := sha256.Sum256(data)
	entry := store.UploadLog{
		Filename:  fileName,
		FileSize:  int64(len(data)),
		FileHash:  hex.EncodeToString(sum[:]),
		ErrorKind: string(apperr.KindOf(ingestErr)),
	}
	if res != nil {
		entry.FileID = res.FileID
		entry.IsValid = res.IsValid
		entry.RowCount = len(res.Rows)
	}
	if _, err := c.logs.CreateUploadLog(entry); err != nil {
		log.Printf("[workflow] write upload log failed: %v", err)
	}
}

// UploadLogs 最近的上传记录
func (c *Controller) UploadLogs(limit int) ([]store.UploadLog, error) {
	if c.logs == nil {
		return []store.UploadLog{}, nil
	}
	return c.logs.ListUploadLogs(limit)
}

// Contacts 当前名单
func (c *Controller) Contacts() []model.UploadedContact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.UploadedContact{}, c.state.Contacts...)
}

// AddContact 追加空白行
func (c *Controller) AddContact() (State, error) {
	return c.mutateRoster(func(s State) (State, error) { return AddContact(s), nil }, true)
}

// UpdateContact 修改单元格
func (c *Controller) UpdateContact(row int, field model.ContactField, value string) (State, error) {
	return c.mutateRoster(func(s State) (State, error) { return UpdateContact(s, row, field, value) }, true)
}

// DeleteContact 删除行
func (c *Controller) DeleteContact(row int) (State, error) {
	return c.mutateRoster(func(s State) (State, error) { return DeleteContact(s, row) }, true)
}

// BeginEdit 进入单元格编辑（仅界面状态，不写缓存）
func (c *Controller) BeginEdit(row int, field model.ContactField) (State, error) {
	return c.mutateRoster(func(s State) (State, error) { return BeginEdit(s, row, field) }, false)
}

// CommitEdit 提交编辑
func (c *Controller) CommitEdit(value string) (State, error) {
	return c.mutateRoster(func(s State) (State, error) { return CommitEdit(s, value) }, true)
}

// CancelEdit 放弃编辑
func (c *Controller) CancelEdit() (State, error) {
	return c.mutateRoster(func(s State) (State, error) { return CancelEdit(s), nil }, false)
}

// ClearRoster 清空名单并删除缓存记录
func (c *Controller) ClearRoster() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = ClearRoster(c.state)
	if err := c.cache.Clear(cache.KeyExcelUpload); err != nil {
		return apperr.Wrap(apperr.Internal, "저장된 명단을 삭제하지 못했습니다.", err)
	}
	return nil
}

func (c *Controller) mutateRoster(fn func(State) (State, error), persist bool) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := fn(c.state)
	if err != nil {
		return c.state.clone(), err
	}
	c.state = next
	if persist {
		if err := c.persistUploadLocked(); err != nil {
			return c.state.clone(), err
		}
	}
	return c.state.clone(), nil
}

func (c *Controller) persistUploadLocked() error {
	if err := c.cache.SaveUpload(UploadRecord(c.state)); err != nil {
		return apperr.Wrap(apperr.Internal, "명단을 저장하지 못했습니다.", err)
	}
	return nil
}

// ExportRoster 将当前名单导出为与上传格式一致的 Excel，返回文件名与内容
func (c *Controller) ExportRoster() (string, []byte, error) {
	c.mu.Lock()
	contacts := append([]model.UploadedContact{}, c.state.Contacts...)
	name := "stakeholders.xlsx"
	if c.state.Upload != nil && c.state.Upload.FileName != "" {
		base := strings.TrimSuffix(c.state.Upload.FileName, filepath.Ext(c.state.Upload.FileName))
		name = base + ".xlsx"
	}
	c.mu.Unlock()

	data, err := c.exporter.ExportBytes(contacts)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.Internal, "엑셀 파일을 만들지 못했습니다.", err)
	}
	return name, data, nil
}

// ==================== 远端检索 ====================

// Companies 公司名称列表
func (c *Controller) Companies(ctx context.Context) ([]string, error) {
	return c.gateway.SearchCompanies(ctx)
}

// SearchMedia 媒体检索；成功后保存查询与结果
func (c *Controller) SearchMedia(ctx context.Context, q model.MediaSearchQuery) (*model.MediaSearchRecord, error) {
	if strings.TrimSpace(q.CompanyID) == "" {
		return nil, apperr.New(apperr.MissingSelection, "기업을 선택해 주세요.")
	}
	release, err := c.flights.begin(ActionSearch)
	if err != nil {
		return nil, err
	}
	defer release()

	result, excelFile, err := c.gateway.SearchMedia(ctx, q)
	if err != nil {
		return nil, err
	}

	rec := model.MediaSearchRecord{
		Query:     q,
		Result:    *result,
		Excel:     excelFile,
		Timestamp: c.now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Media = &rec
	c.state.CompanyID = q.CompanyID
	c.state.Period = q.ReportPeriod
	if err := c.cache.SaveMediaSearch(rec); err != nil {
		return &rec, apperr.Wrap(apperr.Internal, "검색 결과를 저장하지 못했습니다.", err)
	}
	return &rec, nil
}

// LastMediaSearch 最近一次检索
func (c *Controller) LastMediaSearch() (*model.MediaSearchRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Media == nil {
		return nil, false
	}
	rec := *c.state.Media
	return &rec, true
}

// ListIssuepools 历年议题池；companyID 为空时使用当前公司
func (c *Controller) ListIssuepools(ctx context.Context, companyID string, period model.ReportPeriod, searchContext string) (*model.IssuepoolList, error) {
	c.mu.Lock()
	if companyID == "" {
		companyID = c.state.CompanyID
	}
	if period == (model.ReportPeriod{}) {
		period = c.state.Period
	}
	c.mu.Unlock()
	if companyID == "" {
		return nil, apperr.New(apperr.MissingSelection, "기업을 선택해 주세요.")
	}

	release, err := c.flights.begin(ActionIssuepool)
	if err != nil {
		return nil, err
	}
	defer release()

	list, err := c.gateway.ListIssuepools(ctx, companyID, period, searchContext)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Issuepools = list
	return list, nil
}

// Catalog 类别目录
func (c *Controller) Catalog(ctx context.Context) ([]model.CatalogCategory, error) {
	return c.gateway.ListCategories(ctx)
}

// ==================== 评估 ====================

// RunAssessment 以最近一次检索结果运行评估，成功后整体替换类别列表
func (c *Controller) RunAssessment(ctx context.Context) (*model.AssessmentRecord, error) {
	c.mu.Lock()
	media := c.state.Media
	c.mu.Unlock()
	if media == nil {
		return nil, apperr.New(apperr.MissingSelection, "먼저 미디어 검색을 실행해 주세요.")
	}

	release, err := c.flights.begin(ActionAssessment)
	if err != nil {
		return nil, err
	}
	defer release()

	res, err := c.gateway.RunAssessment(ctx, gateway.AssessmentInput{
		CompanyID:    media.Query.CompanyID,
		ReportPeriod: media.Query.ReportPeriod,
		Articles:     media.Result.Articles,
		TotalResults: media.Result.TotalResults,
	})
	if err != nil {
		if apperr.IsKind(err, apperr.Timeout) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Printf("[workflow] assessment for %s timed out", media.Query.CompanyID)
		}
		return nil, err
	}

	categories := assessment.ReplaceAll(res.MatchedCategories)
	rec := model.AssessmentRecord{
		AssessmentResult: *res,
		CompanyID:        media.Query.CompanyID,
		SearchPeriod:     media.Query.ReportPeriod,
		Timestamp:        c.now(),
	}
	rec.AssessmentResult.MatchedCategories = categories

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Categories = categories
	c.state.Assessment = &rec
	c.state.CompanyID = rec.CompanyID
	c.state.Period = rec.SearchPeriod
	if err := c.persistAssessmentLocked(); err != nil {
		return &rec, err
	}
	out := *c.state.Assessment
	return &out, nil
}

// AssessmentView 类别列表及其派生展示数据（每次按当前列表重新计算）
type AssessmentView struct {
	CompanyID    string                     `json:"companyId"`
	Period       model.ReportPeriod         `json:"period"`
	Categories   []model.AssessmentCategory `json:"categories"`
	Top          []model.AssessmentCategory `json:"top"`
	Distribution []assessment.Share         `json:"distribution"`
	Stats        *model.AssessmentResult    `json:"stats,omitempty"`
	Timestamp    *time.Time                 `json:"timestamp,omitempty"`
}

// Assessment 当前评估视图
func (c *Controller) Assessment() AssessmentView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() AssessmentView {
	cats := append([]model.AssessmentCategory{}, c.state.Categories...)
	v := AssessmentView{
		CompanyID:    c.state.CompanyID,
		Period:       c.state.Period,
		Categories:   cats,
		Top:          assessment.TopN(cats, c.topN),
		Distribution: assessment.Distribution(cats),
	}
	if c.state.Assessment != nil {
		stats := c.state.Assessment.AssessmentResult
		stats.MatchedCategories = nil
		ts := c.state.Assessment.Timestamp
		v.Stats = &stats
		v.Timestamp = &ts
	}
	return v
}

// AddCategory 新增类别
func (c *Controller) AddCategory(name string, rank int, selectedBaseIssuePool string) (AssessmentView, error) {
	return c.mutateCategories(func(list []model.AssessmentCategory) ([]model.AssessmentCategory, error) {
		return assessment.AddCategory(list, strings.TrimSpace(name), rank, strings.TrimSpace(selectedBaseIssuePool))
	})
}

// DeleteCategory 删除类别
func (c *Controller) DeleteCategory(index int) (AssessmentView, error) {
	return c.mutateCategories(func(list []model.AssessmentCategory) ([]model.AssessmentCategory, error) {
		return assessment.DeleteCategory(list, index)
	})
}

// SelectBaseIssuePool 选择 base issue pool
func (c *Controller) SelectBaseIssuePool(index int, value string) (AssessmentView, error) {
	return c.mutateCategories(func(list []model.AssessmentCategory) ([]model.AssessmentCategory, error) {
		return assessment.SelectBaseIssuePool(list, index, strings.TrimSpace(value))
	})
}

// Formula 展开指定类别的得分公式
func (c *Controller) Formula(index int) (assessment.FormulaBreakdown, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.state.Categories) {
		return assessment.FormulaBreakdown{}, apperr.WithDetail(apperr.NotFound,
			"존재하지 않는 카테고리입니다.", map[string]int{"index": index, "size": len(c.state.Categories)})
	}
	return assessment.Explain(c.state.Categories[index]), nil
}

func (c *Controller) mutateCategories(fn func([]model.AssessmentCategory) ([]model.AssessmentCategory, error)) (AssessmentView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := fn(c.state.Categories)
	if err != nil {
		return c.viewLocked(), err
	}
	c.state.Categories = next
	if err := c.persistAssessmentLocked(); err != nil {
		return c.viewLocked(), err
	}
	return c.viewLocked(), nil
}

// persistAssessmentLocked 整条重写评估记录（类别列表 + 公司 + 期间 + 时间）
func (c *Controller) persistAssessmentLocked() error {
	rec := model.AssessmentRecord{
		CompanyID:    c.state.CompanyID,
		SearchPeriod: c.state.Period,
		Timestamp:    c.now(),
	}
	if c.state.Assessment != nil {
		rec = *c.state.Assessment
	}
	rec.AssessmentResult.MatchedCategories = append([]model.AssessmentCategory{}, c.state.Categories...)
	c.state.Assessment = &rec
	if err := c.cache.SaveAssessment(rec); err != nil {
		return apperr.Wrap(apperr.Internal, "평가 결과를 저장하지 못했습니다.", err)
	}
	return nil
}

// ==================== 问卷 ====================

// StartSurvey 以当前类别列表生成问卷并保存问卷输入
func (c *Controller) StartSurvey() (survey.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.state.Categories) == 0 {
		return c.state.Survey, apperr.New(apperr.MissingSelection, "설문을 만들 평가 결과가 없습니다.")
	}
	data := model.SurveyData{
		CompanyID:  c.state.CompanyID,
		Categories: append([]model.AssessmentCategory{}, c.state.Categories...),
		Timestamp:  c.now(),
	}
	if err := c.cache.SaveSurveyData(data); err != nil {
		return c.state.Survey, apperr.Wrap(apperr.Internal, "설문 데이터를 저장하지 못했습니다.", err)
	}
	c.state.Survey = survey.Load(data)
	return c.state.Survey, nil
}

// Survey 当前问卷状态
func (c *Controller) Survey() survey.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Survey
}

// SetRespondentType 设置应答者类型
func (c *Controller) SetRespondentType(respondentType string) (survey.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Survey.Loaded {
		return c.state.Survey, errNoSurvey()
	}
	c.state.Survey = c.state.Survey.SetRespondentType(strings.TrimSpace(respondentType))
	return c.state.Survey, nil
}

// SetScore 设置单题分数
func (c *Controller) SetScore(id string, dim survey.Dimension, score int) (survey.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Survey.Loaded {
		return c.state.Survey, errNoSurvey()
	}
	next, err := c.state.Survey.SetScore(id, dim, score)
	if err != nil {
		return c.state.Survey, err
	}
	c.state.Survey = next
	return next, nil
}

// Next 前进；触发提交时保存并返回提交结果
func (c *Controller) Next() (survey.State, *model.SurveyResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, payload, err := c.state.Survey.Next(c.now())
	if err != nil {
		return c.state.Survey, nil, err
	}
	c.state.Survey = next
	if payload == nil {
		return next, nil, nil
	}

	c.state.SurveyResult = payload
	if err := c.cache.SaveSurveyResult(*payload); err != nil {
		return next, payload, apperr.Wrap(apperr.Internal, "설문 결과를 저장하지 못했습니다.", err)
	}
	if c.archive != nil {
		if err := c.archive.SaveSubmission(*payload); err != nil {
			log.Printf("[workflow] archive submission failed: %v", err)
		}
	}
	log.Printf("[workflow] survey submitted: id=%s items=%d", payload.SubmissionID, payload.TotalItems)
	return next, payload, nil
}

// Prev 后退；exit=true 表示已在第一步，应离开问卷
func (c *Controller) Prev() (survey.State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, exit := c.state.Survey.Prev()
	c.state.Survey = next
	return next, exit
}

// SurveyResult 最近一次提交结果及汇总
func (c *Controller) SurveyResult() (*model.SurveyResult, survey.Summary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.SurveyResult == nil {
		return nil, survey.Summary{}, false
	}
	res := *c.state.SurveyResult
	return &res, survey.Summarize(res), true
}

// Submissions 已归档的提交 id（升序）；未配置归档时为空
func (c *Controller) Submissions() ([]string, error) {
	if c.archive == nil {
		return []string{}, nil
	}
	ids, err := c.archive.ListSubmissions()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "제출 기록을 불러오지 못했습니다.", err)
	}
	return ids, nil
}

// Submission 读取一条归档的提交结果及汇总
func (c *Controller) Submission(id string) (*model.SurveyResult, survey.Summary, error) {
	if c.archive == nil {
		return nil, survey.Summary{}, errNoArchived(id)
	}
	res, err := c.archive.LoadSubmission(id)
	if errors.Is(err, os.ErrNotExist) {
		return nil, survey.Summary{}, errNoArchived(id)
	}
	if err != nil {
		return nil, survey.Summary{}, apperr.Wrap(apperr.Internal, "제출 기록을 불러오지 못했습니다.", err)
	}
	return res, survey.Summarize(*res), nil
}

// UploadFile 读取归档的原始上传文件，返回内容与扩展名
func (c *Controller) UploadFile(fileID string) ([]byte, string, error) {
	if c.archive == nil {
		return nil, "", errNoArchived(fileID)
	}
	data, ext, err := c.archive.ReadUpload(fileID)
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", errNoArchived(fileID)
	}
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "업로드 파일을 불러오지 못했습니다.", err)
	}
	return data, ext, nil
}

func errNoArchived(id string) error {
	return apperr.WithDetail(apperr.NotFound, "보관된 기록을 찾을 수 없습니다.", map[string]string{"id": id})
}

func errNoSurvey() error {
	return apperr.New(apperr.NotFound, "설문 데이터가 없습니다. 평가 결과에서 설문을 시작해 주세요.")
}
