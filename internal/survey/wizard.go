// Package survey 问卷向导：步骤推导、作答校验与提交载荷生成。
//
// State 是可序列化的值类型，所有转换都返回新的 State，不修改接收者。
package survey

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"materiality/internal/apperr"
	"materiality/internal/model"
)

// StepKind 步骤类型
type StepKind string

const (
	StepIntro      StepKind = "intro"
	StepBucket     StepKind = "bucket"
	StepCompletion StepKind = "completion"
)

// Step 单个步骤
type Step struct {
	Number int          `json:"number"`
	Kind   StepKind     `json:"kind"`
	Bucket model.Bucket `json:"bucket,omitempty"`
	Label  string       `json:"label"`
}

// IncompleteDetail 未答完分组的提示信息
type IncompleteDetail struct {
	Bucket     model.Bucket `json:"bucket"`
	Label      string       `json:"label"`
	MissingIDs []string     `json:"missingIds"`
}

// State 向导状态
type State struct {
	Loaded         bool   `json:"loaded"`
	CompanyID      string `json:"companyId"`
	CurrentStep    int    `json:"currentStep"`
	RespondentType string `json:"respondentType"`
	Submitted      bool   `json:"submitted"`

	Environmental []model.SurveyItem `json:"environmental"`
	Social        []model.SurveyItem `json:"social"`
	Governance    []model.SurveyItem `json:"governance"`
	// 分类无法归入三组的题目，不参与问卷
	Unclassified []model.SurveyItem `json:"unclassified"`

	Original model.SurveyData `json:"originalSurveyData"`
}

// Load 由问卷输入构建初始状态（第 1 步）
func Load(data model.SurveyData) State {
	buckets, dropped := Partition(BuildItems(data.Categories))
	if len(dropped) > 0 {
		log.Printf("[survey] %d unclassified items excluded from survey", len(dropped))
	}
	if dropped == nil {
		dropped = []model.SurveyItem{}
	}
	return State{
		Loaded:        true,
		CompanyID:     data.CompanyID,
		CurrentStep:   1,
		Environmental: buckets[model.BucketEnvironmental],
		Social:        buckets[model.BucketSocial],
		Governance:    buckets[model.BucketGovernance],
		Unclassified:  dropped,
		Original:      data,
	}
}

// Items 返回指定分组的题目
func (s State) Items(b model.Bucket) []model.SurveyItem {
	switch b {
	case model.BucketEnvironmental:
		return s.Environmental
	case model.BucketSocial:
		return s.Social
	case model.BucketGovernance:
		return s.Governance
	}
	return nil
}

func (s *State) setItems(b model.Bucket, items []model.SurveyItem) {
	switch b {
	case model.BucketEnvironmental:
		s.Environmental = items
	case model.BucketSocial:
		s.Social = items
	case model.BucketGovernance:
		s.Governance = items
	}
}

// NonEmptyBuckets 有题目的分组（固定顺序），空组不占步骤
func (s State) NonEmptyBuckets() []model.Bucket {
	out := make([]model.Bucket, 0, len(model.Buckets))
	for _, b := range model.Buckets {
		if len(s.Items(b)) > 0 {
			out = append(out, b)
		}
	}
	return out
}

// MaxStep = 1（开始） + 非空分组数 + 1（完成）
func (s State) MaxStep() int {
	return 1 + len(s.NonEmptyBuckets()) + 1
}

// Steps 全部步骤
func (s State) Steps() []Step {
	steps := []Step{{Number: 1, Kind: StepIntro, Label: "응답자 정보"}}
	for i, b := range s.NonEmptyBuckets() {
		steps = append(steps, Step{Number: i + 2, Kind: StepBucket, Bucket: b, Label: b.Label()})
	}
	steps = append(steps, Step{Number: s.MaxStep(), Kind: StepCompletion, Label: "완료"})
	return steps
}

// Current 当前步骤
func (s State) Current() Step {
	steps := s.Steps()
	idx := s.CurrentStep - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(steps) {
		idx = len(steps) - 1
	}
	return steps[idx]
}

// Progress 进度百分比；未加载数据时为 0
func (s State) Progress() int {
	if !s.Loaded {
		return 0
	}
	ratio := math.Min(float64(s.CurrentStep)/float64(s.MaxStep()), 1)
	return int(math.Round(ratio * 100))
}

// TotalItems 三组题目总数
func (s State) TotalItems() int {
	return len(s.Environmental) + len(s.Social) + len(s.Governance)
}

func (s State) clone() State {
	out := s
	out.Environmental = append([]model.SurveyItem(nil), s.Environmental...)
	out.Social = append([]model.SurveyItem(nil), s.Social...)
	out.Governance = append([]model.SurveyItem(nil), s.Governance...)
	out.Unclassified = append([]model.SurveyItem(nil), s.Unclassified...)
	return out
}

// SetRespondentType 设置应答者类型
func (s State) SetRespondentType(respondentType string) State {
	out := s.clone()
	out.RespondentType = respondentType
	return out
}

// SetScore 按 id 更新单题的一个维度；按 环境 → 社会 → 治理 顺序查找
func (s State) SetScore(id string, dim Dimension, score int) (State, error) {
	if dim != DimensionOutside && dim != DimensionInside {
		return s, apperr.New(apperr.InvalidArgument, fmt.Sprintf("알 수 없는 평가 항목입니다: %s", dim))
	}
	if !ValidScore(score) {
		return s, apperr.WithDetail(apperr.InvalidArgument,
			fmt.Sprintf("점수는 %d~%d 사이여야 합니다.", MinScore, MaxScore), Scale)
	}

	out := s.clone()
	for _, b := range model.Buckets {
		items := out.Items(b)
		for i := range items {
			if items[i].ID != id {
				continue
			}
			v := score
			if dim == DimensionOutside {
				items[i].OutsideScore = &v
			} else {
				items[i].InsideScore = &v
			}
			out.setItems(b, items)
			return out, nil
		}
	}

	log.Printf("[survey] item %q not found in any bucket", id)
	return s, apperr.WithDetail(apperr.NotFound, "해당 설문 항목을 찾을 수 없습니다.", map[string]string{"id": id})
}

// Next 校验当前步骤并前进；从最后一个分组前进即提交。
// 已提交后再次进入完成步骤不会重复提交（返回的载荷为 nil）。
func (s State) Next(now time.Time) (State, *model.SurveyResult, error) {
	if !s.Loaded {
		return s, nil, apperr.New(apperr.InvalidArgument, "설문 데이터가 없습니다.")
	}

	cur := s.Current()
	switch cur.Kind {
	case StepIntro:
		if strings.TrimSpace(s.RespondentType) == "" {
			return s, nil, apperr.New(apperr.MissingRespondentType, "응답자 유형을 선택해 주세요.")
		}
	case StepBucket:
		if missing := missingIDs(s.Items(cur.Bucket)); len(missing) > 0 {
			return s, nil, apperr.WithDetail(apperr.IncompleteBucket,
				fmt.Sprintf("%s 영역의 모든 항목에 두 가지 점수를 입력해 주세요.", cur.Bucket.Label()),
				IncompleteDetail{Bucket: cur.Bucket, Label: cur.Bucket.Label(), MissingIDs: missing})
		}
	case StepCompletion:
		if s.Submitted {
			return s, nil, nil
		}
	}

	if cur.Kind == StepCompletion || s.CurrentStep+1 >= s.MaxStep() {
		next, payload := s.Submit(now)
		return next, payload, nil
	}

	out := s.clone()
	out.CurrentStep++
	return out, nil, nil
}

// Prev 后退一步；已在第 1 步时 exit=true（由调用方离开向导）
func (s State) Prev() (State, bool) {
	if s.CurrentStep <= 1 {
		return s, true
	}
	out := s.clone()
	out.CurrentStep--
	if out.CurrentStep > out.MaxStep() {
		out.CurrentStep = out.MaxStep()
	}
	return out, false
}

// Submit 汇总三组答复生成载荷，并跳转到完成步骤。
// 不做作答校验（由 Next 负责）；已提交时只跳转不生成载荷。
func (s State) Submit(now time.Time) (State, *model.SurveyResult) {
	out := s.clone()
	out.CurrentStep = out.MaxStep()
	if s.Submitted {
		return out, nil
	}
	out.Submitted = true

	responses := make([]model.SurveyResponse, 0, s.TotalItems())
	for _, b := range model.Buckets {
		for _, it := range s.Items(b) {
			responses = append(responses, model.SurveyResponse{SurveyItem: it, Bucket: b})
		}
	}

	return out, &model.SurveyResult{
		SubmissionID:       uuid.New().String(),
		CompanyID:          s.CompanyID,
		RespondentType:     s.RespondentType,
		Timestamp:          now,
		TotalItems:         len(responses),
		Responses:          responses,
		OriginalSurveyData: s.Original,
	}
}

func missingIDs(items []model.SurveyItem) []string {
	var out []string
	for _, it := range items {
		if !it.Complete() {
			out = append(out, it.ID)
		}
	}
	return out
}
