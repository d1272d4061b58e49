// Package assessment 中期议题评估结果的本地编辑与展示计算。
//
// 所有操作都是纯函数：输入旧列表，返回新列表，不修改入参。
// 每次结构性变更（增/删）后 rank 重新编号为 1..N。
package assessment

import (
	"fmt"
	"sort"

	"materiality/internal/apperr"
	"materiality/internal/model"
)

func clone(list []model.AssessmentCategory) []model.AssessmentCategory {
	out := make([]model.AssessmentCategory, len(list))
	for i, c := range list {
		c.BaseIssuePools = append([]string(nil), c.BaseIssuePools...)
		out[i] = c
	}
	return out
}

// ReplaceAll 安装服务端返回的新列表；缺失的分类按关键词补齐
func ReplaceAll(categories []model.AssessmentCategory) []model.AssessmentCategory {
	out := clone(categories)
	for i := range out {
		if out[i].ESGClassification == "" {
			out[i].ESGClassification = Classify(out[i].Category)
		}
		if out[i].BaseIssuePools == nil {
			out[i].BaseIssuePools = []string{}
		}
	}
	return out
}

// Rerank 按当前位置重新编号 rank = index+1
func Rerank(list []model.AssessmentCategory) []model.AssessmentCategory {
	out := clone(list)
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// AddCategory 新增类别：分数全部为 0，分类按关键词推断；
// 插入后按 rank 稳定排序（同 rank 保持原有先后），再重新编号。
// rank < 1 视为追加到末尾。
func AddCategory(list []model.AssessmentCategory, categoryName string, rank int, selectedBaseIssuePool string) ([]model.AssessmentCategory, error) {
	if categoryName == "" || selectedBaseIssuePool == "" {
		return nil, apperr.New(apperr.MissingSelection, "카테고리와 base issue pool을 모두 선택해 주세요.")
	}
	if rank < 1 {
		rank = len(list) + 1
	}

	out := clone(list)
	out = append(out, model.AssessmentCategory{
		Rank:                  rank,
		Category:              categoryName,
		ESGClassification:     Classify(categoryName),
		BaseIssuePools:        []string{selectedBaseIssuePool},
		SelectedBaseIssuePool: selectedBaseIssuePool,
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return Rerank(out), nil
}

// DeleteCategory 删除指定位置的类别并重新编号（确认交互由界面负责）
func DeleteCategory(list []model.AssessmentCategory, index int) ([]model.AssessmentCategory, error) {
	if index < 0 || index >= len(list) {
		return nil, indexError(index, len(list))
	}
	out := make([]model.AssessmentCategory, 0, len(list)-1)
	out = append(out, list[:index]...)
	out = append(out, list[index+1:]...)
	return Rerank(out), nil
}

// SelectBaseIssuePool 设置用户选择的 base issue pool；value 为空时不做修改
func SelectBaseIssuePool(list []model.AssessmentCategory, index int, value string) ([]model.AssessmentCategory, error) {
	if index < 0 || index >= len(list) {
		return nil, indexError(index, len(list))
	}
	out := clone(list)
	if value == "" {
		return out, nil
	}
	out[index].SelectedBaseIssuePool = value
	return out, nil
}

// TopN 前 n 个类别（按当前顺序）；n <= 0 返回全部
func TopN(list []model.AssessmentCategory, n int) []model.AssessmentCategory {
	if n <= 0 || n >= len(list) {
		return clone(list)
	}
	return clone(list[:n])
}

func indexError(index, size int) error {
	return &apperr.Error{
		Kind:    apperr.InvalidArgument,
		Message: "존재하지 않는 카테고리입니다.",
		Detail:  map[string]int{"index": index, "size": size},
		Cause:   fmt.Errorf("index %d out of range [0,%d)", index, size),
	}
}
