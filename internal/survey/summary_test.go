package survey

import (
	"testing"
	"time"

	"materiality/internal/model"
)

func TestSummarizeBucketStats(t *testing.T) {
	s := Load(sampleData()).SetRespondentType("임직원")
	s, _ = s.SetScore("환경_1", DimensionOutside, 5)
	s, _ = s.SetScore("환경_1", DimensionInside, 4)
	s, _ = s.SetScore("환경_3", DimensionOutside, 2)
	s, _ = s.SetScore("환경_3", DimensionInside, 1)
	s, _ = s.SetScore("지배구조_2", DimensionOutside, 3)
	s, _ = s.SetScore("지배구조_2", DimensionInside, 3)

	_, payload := s.Submit(time.Now())
	sum := Summarize(*payload)

	if sum.TotalItems != 3 || len(sum.Points) != 3 {
		t.Fatalf("TotalItems=%d points=%d", sum.TotalItems, len(sum.Points))
	}
	if len(sum.Buckets) != 2 {
		t.Fatalf("buckets=%d, want 2 (social has no items)", len(sum.Buckets))
	}
	env := sum.Buckets[0]
	if env.Bucket != model.BucketEnvironmental || env.Count != 2 {
		t.Fatalf("env=%+v", env)
	}
	if env.OutsideMean != 3.5 || env.InsideMean != 2.5 {
		t.Fatalf("env means=%v/%v", env.OutsideMean, env.InsideMean)
	}
	if env.OutsideMedian != 3.5 {
		t.Fatalf("env outside median=%v", env.OutsideMedian)
	}
	gov := sum.Buckets[1]
	if gov.Label != "지배구조/경제" || gov.OutsideMean != 3 {
		t.Fatalf("gov=%+v", gov)
	}
}

func TestSummarizeSkipsUnscored(t *testing.T) {
	s := Load(sampleData())
	_, payload := s.Submit(time.Now())
	sum := Summarize(*payload)
	if len(sum.Buckets) != 0 || len(sum.Points) != 0 {
		t.Fatalf("summary=%+v", sum)
	}
}
