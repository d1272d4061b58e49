package assessment

import (
	"math"
	"strings"

	"materiality/internal/model"
)

// 展示用分组（治理与经济合并，仅用于展示，不改变存储的分类）
const (
	DisplayEnvironmental = "환경"
	DisplaySocial        = "사회"
	DisplayGovernance    = "지배구조/경제"
	DisplayUnclassified  = "미분류"
)

var displayOrder = []string{DisplayEnvironmental, DisplaySocial, DisplayGovernance, DisplayUnclassified}

// Share 分组占比
type Share struct {
	Label      string `json:"label"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// DisplayBucket 分类 → 展示分组
func DisplayBucket(c model.ESGClassification) string {
	s := string(c)
	switch {
	case strings.Contains(s, string(model.ESGEnvironmental)):
		return DisplayEnvironmental
	case strings.Contains(s, string(model.ESGSocial)):
		return DisplaySocial
	case strings.Contains(s, string(model.ESGGovernance)), strings.Contains(s, string(model.ESGEconomic)):
		return DisplayGovernance
	}
	return DisplayUnclassified
}

// Distribution 各展示分组的数量与百分比
// 百分比 = round(count/total*100)，total 含미분류；各组独立取整，总和可能偏离 100
func Distribution(categories []model.AssessmentCategory) []Share {
	if len(categories) == 0 {
		return []Share{}
	}

	counts := make(map[string]int, len(displayOrder))
	for _, c := range categories {
		counts[DisplayBucket(c.ESGClassification)]++
	}

	total := float64(len(categories))
	out := make([]Share, 0, len(counts))
	for _, label := range displayOrder {
		n := counts[label]
		if n == 0 {
			continue
		}
		out = append(out, Share{
			Label:      label,
			Count:      n,
			Percentage: int(math.Round(float64(n) / total * 100)),
		})
	}
	return out
}
