package survey

import (
	"github.com/montanaflynn/stats"

	"materiality/internal/model"
)

// BucketSummary 单组统计
type BucketSummary struct {
	Bucket        model.Bucket `json:"bucket"`
	Label         string       `json:"label"`
	Count         int          `json:"count"`
	OutsideMean   float64      `json:"outsideMean"`
	InsideMean    float64      `json:"insideMean"`
	OutsideMedian float64      `json:"outsideMedian"`
	InsideMedian  float64      `json:"insideMedian"`
}

// MatrixPoint 双重重要性矩阵上的一个点
type MatrixPoint struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Bucket  model.Bucket `json:"bucket"`
	Outside int          `json:"outside"`
	Inside  int          `json:"inside"`
}

// Summary 提交结果汇总
type Summary struct {
	SubmissionID string          `json:"submissionId"`
	TotalItems   int             `json:"totalItems"`
	Buckets      []BucketSummary `json:"buckets"`
	Points       []MatrixPoint   `json:"points"`
}

// Summarize 计算各组均值/中位数；未评分的题目不计入
func Summarize(result model.SurveyResult) Summary {
	out := Summary{
		SubmissionID: result.SubmissionID,
		TotalItems:   result.TotalItems,
		Buckets:      []BucketSummary{},
		Points:       []MatrixPoint{},
	}

	outside := make(map[model.Bucket]stats.Float64Data)
	inside := make(map[model.Bucket]stats.Float64Data)
	for _, r := range result.Responses {
		if !r.Complete() {
			continue
		}
		outside[r.Bucket] = append(outside[r.Bucket], float64(*r.OutsideScore))
		inside[r.Bucket] = append(inside[r.Bucket], float64(*r.InsideScore))
		out.Points = append(out.Points, MatrixPoint{
			ID:      r.ID,
			Title:   r.Title,
			Bucket:  r.Bucket,
			Outside: *r.OutsideScore,
			Inside:  *r.InsideScore,
		})
	}

	for _, b := range model.Buckets {
		o, i := outside[b], inside[b]
		if len(o) == 0 {
			continue
		}
		bs := BucketSummary{Bucket: b, Label: b.Label(), Count: len(o)}
		bs.OutsideMean = roundTwo(o.Mean())
		bs.InsideMean = roundTwo(i.Mean())
		bs.OutsideMedian = roundTwo(o.Median())
		bs.InsideMedian = roundTwo(i.Median())
		out.Buckets = append(out.Buckets, bs)
	}
	return out
}

func roundTwo(v float64, err error) float64 {
	if err != nil {
		return 0
	}
	r, err := stats.Round(v, 2)
	if err != nil {
		return v
	}
	return r
}
