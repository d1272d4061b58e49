package survey

import (
	"fmt"
	"strings"

	"materiality/internal/model"
)

// BucketOf 按分类子串确定问卷分组；无法归类时 ok=false（该题不进入问卷）
func BucketOf(c model.ESGClassification) (model.Bucket, bool) {
	s := string(c)
	switch {
	case strings.Contains(s, string(model.ESGEnvironmental)):
		return model.BucketEnvironmental, true
	case strings.Contains(s, string(model.ESGSocial)):
		return model.BucketSocial, true
	case strings.Contains(s, string(model.ESGGovernance)), strings.Contains(s, string(model.ESGEconomic)):
		return model.BucketGovernance, true
	}
	return "", false
}

// ItemID 题目 id = 小写分类 + "_" + (全局下标+1)
// 使用全局下标而非组内计数，同一组内编号可能不连续
func ItemID(c model.ESGClassification, globalIndex int) string {
	return fmt.Sprintf("%s_%d", strings.ToLower(string(c)), globalIndex+1)
}

// BuildItems 按源顺序一对一派生题目
func BuildItems(categories []model.AssessmentCategory) []model.SurveyItem {
	items := make([]model.SurveyItem, 0, len(categories))
	for i, c := range categories {
		items = append(items, model.SurveyItem{
			ID:                ItemID(c.ESGClassification, i),
			Title:             c.Category,
			Description:       c.SelectedBaseIssuePool,
			Category:          c.Category,
			ESGClassification: c.ESGClassification,
			Rank:              c.Rank,
		})
	}
	return items
}

// Partition 将题目分到三个固定分组；返回未归类题目
func Partition(items []model.SurveyItem) (map[model.Bucket][]model.SurveyItem, []model.SurveyItem) {
	buckets := make(map[model.Bucket][]model.SurveyItem, len(model.Buckets))
	for _, b := range model.Buckets {
		buckets[b] = []model.SurveyItem{}
	}
	var dropped []model.SurveyItem
	for _, it := range items {
		b, ok := BucketOf(it.ESGClassification)
		if !ok {
			dropped = append(dropped, it)
			continue
		}
		buckets[b] = append(buckets[b], it)
	}
	return buckets, dropped
}
