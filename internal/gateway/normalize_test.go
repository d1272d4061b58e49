package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"materiality/internal/model"
)

func TestNormalizeArticles(t *testing.T) {
	in := []model.Article{
		{
			Title:       "<b>한국전력</b>, 재생에너지 &amp; 탄소중립",
			Description: "  줄바꿈\n포함   설명 ",
			PubDate:     "Tue, 04 Mar 2025 10:00:00 +0900",
			Company:     " 한국전력 ",
			Keyword:     "탄소",
		},
		{Title: "plain"},
	}

	out := NormalizeArticles(in)

	assert.Equal(t, "한국전력, 재생에너지 & 탄소중립", out[0].Title)
	assert.Equal(t, "줄바꿈 포함 설명", out[0].Description)
	assert.Equal(t, "Tue, 04 Mar 2025 10:00:00 +0900", out[0].PubDate)
	assert.Equal(t, "한국전력", out[0].Company)
	assert.Equal(t, "탄소", out[0].Keyword)
	assert.Equal(t, "plain", out[1].Title)
	assert.Equal(t, "<b>한국전력</b>, 재생에너지 &amp; 탄소중립", in[0].Title, "input must not be modified")
}

func TestNormalizeArticlesEmpty(t *testing.T) {
	assert.Empty(t, NormalizeArticles(nil))
	assert.NotNil(t, NormalizeArticles(nil))
}
