// File: internal/services/email/template.go
package email

import (
	"bytes"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/iyunix/go-newsbot/internal/domain"
)

var markdown = goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps()))

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #0ea5e9, #6366f1); color: white; padding: 20px; border-radius: 8px; margin-bottom: 20px; }
    .section { background: #f8f9fa; padding: 15px; border-radius: 8px; margin-bottom: 15px; }
    .section h3 { margin-top: 0; color: #0ea5e9; }
    .user-info { background: #e3f2fd; padding: 15px; border-radius: 8px; margin-bottom: 20px; }
    .news-item { padding: 10px 0; border-bottom: 1px solid #ddd; }
    .news-item:last-child { border-bottom: none; }
    .footer { text-align: center; color: #666; font-size: 12px; margin-top: 20px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h2>📰 뉴스 챗봇 요약 리포트</h2>
      <p>키워드: <strong>{{.Keyword}}</strong></p>
    </div>

    <div class="user-info">
      <h3>👤 요청자 정보</h3>
      <p><strong>이름:</strong> {{.Requester.Name}}</p>
      <p><strong>전화번호:</strong> {{.Requester.Phone}}</p>
      <p><strong>이메일:</strong> {{.Requester.Email}}</p>
    </div>

    <div class="section">
      <h3>📋 AI 요약</h3>
      {{.SummaryHTML}}
    </div>

    <div class="section">
      <h3>📰 뉴스 목록 ({{len .News}}건)</h3>
      {{range $i, $n := .News}}
      <div class="news-item">
        <strong>{{inc $i}}. {{$n.Title}}</strong><br>
        <a href="{{$n.Link}}" target="_blank">{{$n.Link}}</a><br>
        <small>출처: {{$n.Source}} · {{$n.PublishedAt}}</small>
      </div>
      {{end}}
    </div>

    <div class="footer">
      <p>뉴스 챗봇으로 생성됨 · {{.GeneratedAt}}</p>
    </div>
  </div>
</body>
</html>
`))

// Report is the content of one summary email.
type Report struct {
	Requester domain.Requester
	Keyword   string
	Summary   string
	News      []domain.NewsItem
}

type reportView struct {
	Report
	SummaryHTML template.HTML
	GeneratedAt string
}

var seoul = loadSeoul()

func loadSeoul() *time.Location {
	if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
		return loc
	}
	return time.FixedZone("KST", 9*60*60)
}

// RenderReport renders the report body. Summary line breaks are kept; raw
// HTML inside the summary is not passed through.
func RenderReport(r Report, now time.Time) (string, error) {
	var summary bytes.Buffer
	if err := markdown.Convert([]byte(r.Summary), &summary); err != nil {
		return "", err
	}

	view := reportView{
		Report:      r,
		SummaryHTML: template.HTML(summary.String()),
		GeneratedAt: now.In(seoul).Format("2006. 1. 2. 15:04:05"),
	}

	var out bytes.Buffer
	if err := reportTemplate.Execute(&out, view); err != nil {
		return "", err
	}
	return out.String(), nil
}
