package assessment

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"materiality/internal/model"
)

//go:embed keywords.yaml
var keywordsYAML []byte

// KeywordTable 四组分类关键词
type KeywordTable struct {
	Environmental []string `yaml:"environmental"`
	Social        []string `yaml:"social"`
	Governance    []string `yaml:"governance"`
	Economic      []string `yaml:"economic"`
}

// ParseKeywordTable 解析关键词表；四组均不能为空
func ParseKeywordTable(data []byte) (*KeywordTable, error) {
	var t KeywordTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse keyword table: %w", err)
	}
	if len(t.Environmental) == 0 || len(t.Social) == 0 || len(t.Governance) == 0 || len(t.Economic) == 0 {
		return nil, fmt.Errorf("keyword table: every group needs at least one keyword")
	}
	return &t, nil
}

var defaultKeywords = mustLoadKeywords()

func mustLoadKeywords() *KeywordTable {
	t, err := ParseKeywordTable(keywordsYAML)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultKeywords 内置关键词表
func DefaultKeywords() *KeywordTable {
	return defaultKeywords
}

// Classify 按子串匹配分类，顺序 环境 → 社会 → 治理 → 经济，全部未命中返回 미분류
func (t *KeywordTable) Classify(categoryName string) model.ESGClassification {
	groups := []struct {
		label    model.ESGClassification
		keywords []string
	}{
		{model.ESGEnvironmental, t.Environmental},
		{model.ESGSocial, t.Social},
		{model.ESGGovernance, t.Governance},
		{model.ESGEconomic, t.Economic},
	}
	for _, g := range groups {
		for _, kw := range g.keywords {
			if kw != "" && strings.Contains(categoryName, kw) {
				return g.label
			}
		}
	}
	return model.ESGUnclassified
}

// Classify 使用内置关键词表分类
func Classify(categoryName string) model.ESGClassification {
	return defaultKeywords.Classify(categoryName)
}
