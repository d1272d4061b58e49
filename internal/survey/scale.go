package survey

// Dimension 评分维度
type Dimension string

const (
	// Outside-in：外部/财务重要性
	DimensionOutside Dimension = "outside"
	// Inside-out：环境/社会影响重要性
	DimensionInside Dimension = "inside"
)

const (
	MinScore = 1
	MaxScore = 5
)

// ScaleOption 量表选项
type ScaleOption struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

// Scale 固定 1–5 量表
var Scale = []ScaleOption{
	{Score: 1, Label: "전혀 중요하지 않음"},
	{Score: 2, Label: "낮음"},
	{Score: 3, Label: "보통"},
	{Score: 4, Label: "높음"},
	{Score: 5, Label: "매우 높음"},
}

// NotApplicableLabel 界面文案中的"해당 없음"；评分字段不表示该状态
const NotApplicableLabel = "해당 없음"

// ValidScore 是否为合法分值
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}
