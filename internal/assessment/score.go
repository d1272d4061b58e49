package assessment

import "materiality/internal/model"

// FormulaText 最终得分公式说明（展示用）
const FormulaText = "final = 0.4×frequency + 0.6×relevance + 0.2×recent + 0.4×rank + 0.6×reference + 0.8×negative×(1 + 0.5×frequency + 0.5×relevance)"

// FormulaTerm 公式中的一项
type FormulaTerm struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Score  float64 `json:"score"`
	Value  float64 `json:"value"`
}

// FormulaBreakdown 公式展开结果
// Computed 仅用于说明；ServerFinal 才是权威得分
type FormulaBreakdown struct {
	Category    string        `json:"category"`
	Formula     string        `json:"formula"`
	Terms       []FormulaTerm `json:"terms"`
	Computed    float64       `json:"computed"`
	ServerFinal float64       `json:"serverFinal"`
}

// FinalScoreFormula 按服务端公开的公式复算最终得分，仅供展示，不覆盖 FinalScore
func FinalScoreFormula(c model.AssessmentCategory) float64 {
	var sum float64
	for _, t := range terms(c) {
		sum += t.Value
	}
	return sum
}

// Explain 展开公式各项
func Explain(c model.AssessmentCategory) FormulaBreakdown {
	ts := terms(c)
	var sum float64
	for _, t := range ts {
		sum += t.Value
	}
	return FormulaBreakdown{
		Category:    c.Category,
		Formula:     FormulaText,
		Terms:       ts,
		Computed:    sum,
		ServerFinal: c.FinalScore,
	}
}

func terms(c model.AssessmentCategory) []FormulaTerm {
	negBoost := 1 + 0.5*c.FrequencyScore + 0.5*c.RelevanceScore
	return []FormulaTerm{
		{Name: "frequency", Weight: 0.4, Score: c.FrequencyScore, Value: 0.4 * c.FrequencyScore},
		{Name: "relevance", Weight: 0.6, Score: c.RelevanceScore, Value: 0.6 * c.RelevanceScore},
		{Name: "recent", Weight: 0.2, Score: c.RecentScore, Value: 0.2 * c.RecentScore},
		{Name: "rank", Weight: 0.4, Score: c.RankScore, Value: 0.4 * c.RankScore},
		{Name: "reference", Weight: 0.6, Score: c.ReferenceScore, Value: 0.6 * c.ReferenceScore},
		{Name: "negative", Weight: 0.8 * negBoost, Score: c.NegativeScore, Value: 0.8 * c.NegativeScore * negBoost},
	}
}
