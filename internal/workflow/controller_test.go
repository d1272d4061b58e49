package workflow

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"materiality/internal/apperr"
	"materiality/internal/cache"
	"materiality/internal/gateway"
	"materiality/internal/model"
	"materiality/internal/service/archive"
	memstore "materiality/internal/service/store"
	"materiality/internal/survey"
)

type fakeGateway struct {
	mu          sync.Mutex
	assessment  *model.AssessmentResult
	assessErr   error
	block       chan struct{}
	started     chan struct{}
	lastAssess  gateway.AssessmentInput
	searchCalls int
}

func (g *fakeGateway) SearchCompanies(ctx context.Context) ([]string, error) {
	return []string{"ACME"}, nil
}

func (g *fakeGateway) SearchMedia(ctx context.Context, q model.MediaSearchQuery) (*model.MediaSearchResult, *model.ExcelAttachment, error) {
	g.mu.Lock()
	g.searchCalls++
	g.mu.Unlock()
	return &model.MediaSearchResult{
		CompanyID:    q.CompanyID,
		SearchPeriod: q.ReportPeriod,
		Articles:     []model.Article{{Title: "기후 공시", Company: q.CompanyID}},
		TotalResults: 1,
	}, &model.ExcelAttachment{FileName: "media.xlsx", Base64Data: "UEsDBA=="}, nil
}

func (g *fakeGateway) ListIssuepools(ctx context.Context, companyID string, period model.ReportPeriod, searchContext string) (*model.IssuepoolList, error) {
	return &model.IssuepoolList{CompanyID: companyID, SearchContext: searchContext, Issuepools: []model.Issuepool{}}, nil
}

func (g *fakeGateway) RunAssessment(ctx context.Context, in gateway.AssessmentInput) (*model.AssessmentResult, error) {
	g.mu.Lock()
	g.lastAssess = in
	block, started := g.block, g.started
	g.mu.Unlock()
	if started != nil {
		close(started)
	}
	if block != nil {
		<-block
	}
	if g.assessErr != nil {
		return nil, g.assessErr
	}
	res := *g.assessment
	return &res, nil
}

func (g *fakeGateway) ListCategories(ctx context.Context) ([]model.CatalogCategory, error) {
	return []model.CatalogCategory{{CategoryName: "기후변화", ESGClassification: model.ESGEnvironmental, BaseIssuePools: []string{"기후변화 대응"}}}, nil
}

var testNow = time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

func newController(t *testing.T, gw *fakeGateway) (*Controller, *memstore.MemoryStore) {
	t.Helper()
	backend := memstore.NewMemoryStore()
	c := New(Options{
		Cache:   cache.New(backend),
		Gateway: gw,
		Logs:    backend,
		Archive: archive.New(t.TempDir()),
		TopN:    2,
		Now:     func() time.Time { return testNow },
	})
	return c, backend
}

func rosterBytes(t *testing.T, headers []string, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "이해관계자 명단"))
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}
	for r, row := range rows {
		for i, v := range row {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+3)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func sampleAssessment() *model.AssessmentResult {
	return &model.AssessmentResult{
		MatchedCategories: []model.AssessmentCategory{
			{Rank: 1, Category: "기후변화", ESGClassification: model.ESGEnvironmental, FinalScore: 2.4, BaseIssuePools: []string{"기후변화 대응"}},
			{Rank: 2, Category: "산업안전", ESGClassification: model.ESGSocial, FinalScore: 1.9},
			{Rank: 3, Category: "윤리경영", FinalScore: 1.1},
		},
		TotalArticles:    30,
		NegativeArticles: 6,
		NegativeRatio:    0.2,
		TotalCategories:  3,
	}
}

func TestUploadThenCategoryScenario(t *testing.T) {
	c, backend := newController(t, &fakeGateway{})

	data := rosterBytes(t, model.RosterHeaders, [][]string{
		{"김민수", "팀장", "ACME", "임직원", "kim@acme.test"},
		{"이영희", "", "협력사", "협력사", ""},
		{"박지훈", "대표", "NGO", "시민단체", "park@ngo.test"},
	})
	res, err := c.Upload(data, "roster.xlsx")
	require.NoError(t, err)
	assert.True(t, res.IsValid)

	rec, ok := cache.New(backend).LoadUpload()
	require.True(t, ok)
	assert.Len(t, rec.ExcelData, 3)
	require.NotNil(t, rec.IsValid)
	assert.True(t, *rec.IsValid)
	assert.Equal(t, "roster.xlsx", *rec.FileName)
	assert.NotEmpty(t, *rec.Base64Data)

	view, err := c.AddCategory("기후변화", 1, "기후변화 대응")
	require.NoError(t, err)
	require.Len(t, view.Categories, 1)
	assert.Equal(t, 1, view.Categories[0].Rank)
	assert.Equal(t, model.ESGEnvironmental, view.Categories[0].ESGClassification)

	view, err = c.DeleteCategory(0)
	require.NoError(t, err)
	assert.Empty(t, view.Categories)

	saved, ok := cache.New(backend).LoadAssessment()
	require.True(t, ok)
	assert.Empty(t, saved.AssessmentResult.MatchedCategories)

	logs, err := c.UploadLogs(10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.True(t, logs[0].IsValid)
	assert.Equal(t, 3, logs[0].RowCount)
	assert.Len(t, logs[0].FileHash, 64)
}

func TestUploadHeaderMismatchKeepsFileButClearsRows(t *testing.T) {
	c, backend := newController(t, &fakeGateway{})

	good := rosterBytes(t, model.RosterHeaders, [][]string{{"a", "b", "c", "d", "e"}})
	_, err := c.Upload(good, "good.xlsx")
	require.NoError(t, err)

	bad := rosterBytes(t, []string{"이름", "직책", "소속기업", "이해관계자 구분", "이메일"}, [][]string{{"x"}})
	res, err := c.Upload(bad, "bad.xlsx")
	assert.Equal(t, apperr.HeaderMismatch, apperr.KindOf(err))
	require.NotNil(t, res)
	assert.False(t, res.IsValid)

	st := c.State()
	assert.Empty(t, st.Contacts)
	require.NotNil(t, st.Upload)
	assert.Equal(t, "bad.xlsx", st.Upload.FileName)

	rec, ok := cache.New(backend).LoadUpload()
	require.True(t, ok)
	assert.False(t, *rec.IsValid)
	assert.NotEmpty(t, *rec.Base64Data)
}

func TestUploadRejectedFileLeavesStateUnchanged(t *testing.T) {
	c, _ := newController(t, &fakeGateway{})
	_, err := c.Upload([]byte("name,email"), "roster.csv")
	assert.Equal(t, apperr.UnsupportedExtension, apperr.KindOf(err))
	assert.Nil(t, c.State().Upload)

	logs, _ := c.UploadLogs(5)
	require.Len(t, logs, 1)
	assert.Equal(t, "UnsupportedExtension", logs[0].ErrorKind)
}

func TestRosterEditingWritesThrough(t *testing.T) {
	c, backend := newController(t, &fakeGateway{})
	rc := cache.New(backend)

	_, err := c.AddContact()
	require.NoError(t, err)
	_, err = c.AddContact()
	require.NoError(t, err)

	st, err := c.BeginEdit(1, model.FieldEmail)
	require.NoError(t, err)
	require.NotNil(t, st.Editing)

	st, err = c.CommitEdit("new@acme.test")
	require.NoError(t, err)
	assert.Nil(t, st.Editing)
	assert.Equal(t, "new@acme.test", st.Contacts[1].Email)

	rec, _ := rc.LoadUpload()
	assert.Equal(t, "new@acme.test", rec.ExcelData[1].Email)
	assert.Nil(t, rec.IsValid, "no file was ever uploaded")

	_, err = c.CommitEdit("again")
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	_, err = c.UpdateContact(0, model.ContactField("phone"), "x")
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	_, err = c.DeleteContact(0)
	require.NoError(t, err)
	rec, _ = rc.LoadUpload()
	require.Len(t, rec.ExcelData, 1)
	assert.Equal(t, "new@acme.test", rec.ExcelData[0].Email)

	require.NoError(t, c.ClearRoster())
	assert.False(t, rc.Has(cache.KeyExcelUpload))
}

func TestExportRosterRoundTrip(t *testing.T) {
	c, _ := newController(t, &fakeGateway{})
	data := rosterBytes(t, model.RosterHeaders, [][]string{{"김민수", "팀장", "ACME", "임직원", "kim@acme.test"}})
	_, err := c.Upload(data, "명단.xls")
	require.NoError(t, err)
	_, err = c.UpdateContact(0, model.FieldPosition, "본부장")
	require.NoError(t, err)

	name, out, err := c.ExportRoster()
	require.NoError(t, err)
	assert.Equal(t, "명단.xlsx", name)

	res, err := c.Upload(out, name)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "본부장", res.Rows[0].Position)
}

func TestSearchAssessmentSurveyFlow(t *testing.T) {
	gw := &fakeGateway{assessment: sampleAssessment()}
	c, backend := newController(t, gw)
	rc := cache.New(backend)

	_, err := c.RunAssessment(context.Background())
	assert.Equal(t, apperr.MissingSelection, apperr.KindOf(err), "assessment needs a prior search")

	period := model.ReportPeriod{StartDate: "2025-01-01", EndDate: "2025-12-31"}
	search, err := c.SearchMedia(context.Background(), model.MediaSearchQuery{CompanyID: "ACME", ReportPeriod: period, SearchType: "all"})
	require.NoError(t, err)
	assert.Equal(t, testNow, search.Timestamp)
	assert.True(t, rc.Has(cache.KeyMediaSearch))

	rec, err := c.RunAssessment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ACME", gw.lastAssess.CompanyID)
	assert.Len(t, gw.lastAssess.Articles, 1)
	require.Len(t, rec.AssessmentResult.MatchedCategories, 3)
	assert.Equal(t, model.ESGGovernance, rec.AssessmentResult.MatchedCategories[2].ESGClassification,
		"missing classification is filled by keyword lookup")

	view := c.Assessment()
	assert.Len(t, view.Top, 2)
	require.NotNil(t, view.Stats)
	assert.Equal(t, 30, view.Stats.TotalArticles)
	assert.Len(t, view.Distribution, 3)

	_, err = c.SelectBaseIssuePool(1, "중대재해 예방")
	require.NoError(t, err)
	saved, _ := rc.LoadAssessment()
	assert.Equal(t, "중대재해 예방", saved.AssessmentResult.MatchedCategories[1].SelectedBaseIssuePool)
	assert.Equal(t, "ACME", saved.CompanyID)
	assert.Equal(t, period, saved.SearchPeriod)

	formula, err := c.Formula(0)
	require.NoError(t, err)
	assert.Equal(t, 2.4, formula.ServerFinal)
	_, err = c.Formula(9)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	st, err := c.StartSurvey()
	require.NoError(t, err)
	assert.Equal(t, 5, st.MaxStep())
	assert.True(t, rc.Has(cache.KeySurveyData))

	_, _, err = c.Next()
	assert.Equal(t, apperr.MissingRespondentType, apperr.KindOf(err))

	_, err = c.SetRespondentType("투자자")
	require.NoError(t, err)
	_, _, err = c.Next()
	require.NoError(t, err)

	var payload *model.SurveyResult
	for step := 0; step < 3; step++ {
		cur := c.Survey()
		for _, it := range cur.Items(cur.Current().Bucket) {
			_, err = c.SetScore(it.ID, survey.DimensionOutside, 4)
			require.NoError(t, err)
			_, err = c.SetScore(it.ID, survey.DimensionInside, 2)
			require.NoError(t, err)
		}
		_, payload, err = c.Next()
		require.NoError(t, err)
	}
	require.NotNil(t, payload)
	assert.Equal(t, 5, c.Survey().CurrentStep)
	assert.Equal(t, 3, payload.TotalItems)

	stored, ok := rc.LoadSurveyResult()
	require.True(t, ok)
	assert.Equal(t, payload.SubmissionID, stored.SubmissionID)

	res, summary, ok := c.SurveyResult()
	require.True(t, ok)
	assert.Equal(t, payload.SubmissionID, res.SubmissionID)
	assert.Len(t, summary.Buckets, 3)

	_, again, err := c.Next()
	require.NoError(t, err)
	assert.Nil(t, again, "completion does not resubmit")

	ids, err := c.Submissions()
	require.NoError(t, err)
	assert.Equal(t, []string{payload.SubmissionID}, ids)
	archived, archivedSummary, err := c.Submission(payload.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, "투자자", archived.RespondentType)
	assert.Equal(t, summary.TotalItems, archivedSummary.TotalItems)
	assert.Equal(t, summary.Buckets, archivedSummary.Buckets)
	_, _, err = c.Submission("missing")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestAssessmentInFlightGuard(t *testing.T) {
	gw := &fakeGateway{
		assessment: sampleAssessment(),
		block:      make(chan struct{}),
		started:    make(chan struct{}),
	}
	c, _ := newController(t, gw)
	_, err := c.SearchMedia(context.Background(), model.MediaSearchQuery{CompanyID: "ACME"})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := c.RunAssessment(context.Background())
		done <- err
	}()
	<-gw.started

	_, err = c.RunAssessment(context.Background())
	assert.Equal(t, apperr.Busy, apperr.KindOf(err))
	assert.Equal(t, []Action{ActionAssessment}, c.Status().InFlight)

	// 其他操作不受影响
	_, err = c.SearchMedia(context.Background(), model.MediaSearchQuery{CompanyID: "ACME"})
	require.NoError(t, err)

	close(gw.block)
	require.NoError(t, <-done)
	assert.Empty(t, c.Status().InFlight)
}

func TestInFlightClearedAfterFailure(t *testing.T) {
	gw := &fakeGateway{assessErr: apperr.New(apperr.Timeout, "timeout")}
	c, _ := newController(t, gw)
	_, err := c.SearchMedia(context.Background(), model.MediaSearchQuery{CompanyID: "ACME"})
	require.NoError(t, err)

	_, err = c.RunAssessment(context.Background())
	assert.Equal(t, apperr.Timeout, apperr.KindOf(err))
	assert.Empty(t, c.Status().InFlight)

	gw.assessErr = nil
	gw.assessment = sampleAssessment()
	_, err = c.RunAssessment(context.Background())
	require.NoError(t, err, "user-initiated retry works after a failure")
}

func TestRestoreFromCache(t *testing.T) {
	gw := &fakeGateway{assessment: sampleAssessment()}
	c, backend := newController(t, gw)

	_, err := c.Upload(rosterBytes(t, model.RosterHeaders, [][]string{{"a", "b", "c", "d", "e"}}), "r.xlsx")
	require.NoError(t, err)
	_, err = c.SearchMedia(context.Background(), model.MediaSearchQuery{CompanyID: "ACME"})
	require.NoError(t, err)
	_, err = c.RunAssessment(context.Background())
	require.NoError(t, err)
	_, err = c.DeleteCategory(2)
	require.NoError(t, err)
	_, err = c.StartSurvey()
	require.NoError(t, err)

	require.NoError(t, backend.PutRecord(cache.KeySurveyResult, "{broken"))

	restored := New(Options{Cache: cache.New(backend), Gateway: gw})
	restored.Restore()
	st := restored.State()

	assert.Len(t, st.Contacts, 1)
	require.NotNil(t, st.Upload)
	assert.True(t, st.Upload.IsValid)
	assert.Equal(t, "ACME", st.CompanyID)
	assert.Len(t, st.Categories, 2)
	assert.True(t, st.Survey.Loaded)
	assert.Equal(t, 4, st.Survey.MaxStep())
	assert.Nil(t, st.SurveyResult, "unreadable record is treated as absent")
}

func TestArchivedUploadReadBack(t *testing.T) {
	c, _ := newController(t, &fakeGateway{})
	data := rosterBytes(t, model.RosterHeaders, [][]string{{"김민수", "팀장", "ACME", "임직원", "kim@acme.test"}})
	res, err := c.Upload(data, "Roster.XLSX")
	require.NoError(t, err)

	got, ext, err := c.UploadFile(res.FileID)
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", ext)
	assert.Equal(t, data, got)

	_, _, err = c.UploadFile("../" + res.FileID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestArchiveReadsWithoutArchive(t *testing.T) {
	c := New(Options{Cache: cache.New(memstore.NewMemoryStore())})

	ids, err := c.Submissions()
	require.NoError(t, err)
	assert.Empty(t, ids)
	_, _, err = c.Submission("x")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	_, _, err = c.UploadFile("x")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestResetClearsEverything(t *testing.T) {
	c, backend := newController(t, &fakeGateway{})
	_, err := c.AddContact()
	require.NoError(t, err)
	require.NoError(t, c.Reset())

	assert.Empty(t, c.State().Contacts)
	keys, _ := backend.ListRecordKeys()
	assert.Empty(t, keys)
}

func TestStatusReportsStoredKeys(t *testing.T) {
	c, backend := newController(t, &fakeGateway{})
	require.NoError(t, backend.PutRecord("legacyKey", "{}"))
	_, err := c.AddContact()
	require.NoError(t, err)

	st := c.Status()
	assert.Equal(t, []string{cache.KeyExcelUpload, "legacyKey"}, st.StoredKeys)
	assert.True(t, st.Records[cache.KeyExcelUpload])

	require.NoError(t, c.Reset())
	assert.Empty(t, c.Status().StoredKeys)
}

func TestSurveyRequiresCategories(t *testing.T) {
	c, _ := newController(t, &fakeGateway{})
	_, err := c.StartSurvey()
	assert.Equal(t, apperr.MissingSelection, apperr.KindOf(err))

	_, err = c.SetRespondentType("x")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	_, exit := c.Prev()
	assert.True(t, exit)
}
