package gateway

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"materiality/internal/model"
)

// NormalizeArticles 去除标题/摘要中的 HTML 标签与实体（检索接口会返回 <b>、&quot; 等），
// pubDate 原样保留，返回新切片。
func NormalizeArticles(articles []model.Article) []model.Article {
	out := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		a.Title = plainText(a.Title)
		a.Description = plainText(a.Description)
		a.Company = strings.TrimSpace(a.Company)
		a.OriginalLink = strings.TrimSpace(a.OriginalLink)
		out = append(out, a)
	}
	return out
}

func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapseSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapseSpace(s)
	}
	return collapseSpace(doc.Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
