package workflow

import (
	"sort"
	"sync"

	"materiality/internal/apperr"
)

// Action 需要防重复提交的远端操作
type Action string

const (
	ActionSearch     Action = "search"
	ActionAssessment Action = "assessment"
	ActionIssuepool  Action = "issuepool"
)

// inflight 每个操作同时最多一个请求；重复触发直接拒绝，不排队
type inflight struct {
	mu      sync.Mutex
	running map[Action]bool
}

func newInflight() *inflight {
	return &inflight{running: make(map[Action]bool)}
}

// begin 标记操作开始；返回的 release 必须在所有路径上调用（defer）
func (f *inflight) begin(a Action) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running[a] {
		return nil, apperr.WithDetail(apperr.Busy, "이전 요청이 아직 처리 중입니다.", map[string]string{"action": string(a)})
	}
	f.running[a] = true

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.running, a)
			f.mu.Unlock()
		})
	}, nil
}

// active 正在进行的操作（有序）
func (f *inflight) active() []Action {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Action, 0, len(f.running))
	for a := range f.running {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
