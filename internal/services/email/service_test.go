package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-newsbot/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type recordingProvider struct {
	sent []*Message
	id   string
	err  error
}

func (p *recordingProvider) Send(ctx context.Context, msg *Message) (string, error) {
	p.sent = append(p.sent, msg)
	return p.id, p.err
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.APIKey = "re_test"
	return cfg
}

var sampleReport = Report{
	Requester: domain.Requester{Name: "홍길동", Phone: "010-1234-5678", Email: "hong@example.com"},
	Keyword:   "반도체",
	Summary:   "첫 줄\n둘째 줄",
	News: []domain.NewsItem{
		{Title: "수출 <증가>", Link: "https://news.example.com/1", Source: "연합뉴스", PublishedAt: "2024-01-01"},
	},
}

func TestSendReport_RequiresRequester(t *testing.T) {
	p := &recordingProvider{}
	svc := NewService(testConfig(), func(*Config) Provider { return p }, nopLogger{})

	r := sampleReport
	r.Requester.Phone = ""
	_, err := svc.SendReport(context.Background(), r)
	require.Error(t, err)
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrTypeValidation, appErr.Type)
	assert.Equal(t, "이름, 전화번호, 이메일을 모두 입력해주세요.", appErr.Message)
	assert.Empty(t, p.sent)
}

func TestSendReport_MissingAPIKey(t *testing.T) {
	p := &recordingProvider{}
	svc := NewService(DefaultConfig(), func(*Config) Provider { return p }, nopLogger{})

	_, err := svc.SendReport(context.Background(), sampleReport)
	require.Error(t, err)
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrTypeConfig, appErr.Type)
	assert.Equal(t, "RESEND_API_KEY가 설정되지 않았습니다.", appErr.Message)
	assert.Empty(t, p.sent)
}

func TestSendReport_SendsToFixedRecipient(t *testing.T) {
	p := &recordingProvider{id: "msg_123"}
	svc := NewService(testConfig(), func(*Config) Provider { return p }, nopLogger{})

	id, err := svc.SendReport(context.Background(), sampleReport)
	require.NoError(t, err)
	assert.Equal(t, "msg_123", id)

	require.Len(t, p.sent, 1)
	msg := p.sent[0]
	assert.Equal(t, []string{"liszzmword@gmail.com"}, msg.To)
	assert.Equal(t, "뉴스챗봇 <onboarding@resend.dev>", msg.From)
	assert.Equal(t, "[뉴스 요약] 반도체 - 홍길동", msg.Subject)
	assert.Contains(t, msg.HTML, "hong@example.com")
}

func TestSendReport_ProviderError(t *testing.T) {
	p := &recordingProvider{err: domain.NewUpstreamError("resend send", errors.New("domain not verified"))}
	svc := NewService(testConfig(), func(*Config) Provider { return p }, nopLogger{})

	_, err := svc.SendReport(context.Background(), sampleReport)
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrTypeUpstream))
}

func TestRenderReport(t *testing.T) {
	now := time.Date(2026, 1, 28, 3, 4, 5, 0, time.UTC)
	r := sampleReport
	r.Summary = "첫 줄\n둘째 줄 <script>alert(1)</script>"

	out, err := RenderReport(r, now)
	require.NoError(t, err)

	assert.Contains(t, out, "키워드: <strong>반도체</strong>")
	assert.Contains(t, out, "첫 줄<br")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "1. 수출 &lt;증가&gt;")
	assert.Contains(t, out, `href="https://news.example.com/1"`)
	assert.Contains(t, out, "뉴스 목록 (1건)")
	assert.Contains(t, out, "2026. 1. 28. 12:04:05")
}

func TestResendProvider_Send(t *testing.T) {
	var payload map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	}))
	defer srv.Close()

	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	p := NewResendProvider(testConfig()).WithBaseURL(base)

	id, err := p.Send(context.Background(), &Message{
		From:    "a@example.com",
		To:      []string{"b@example.com"},
		Subject: "s",
		HTML:    "<p>hi</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "49a3999c-0ce1-4ea6-ab68-afcd6dc2e794", id)
	assert.Equal(t, "s", payload["subject"])
	assert.Equal(t, "<p>hi</p>", payload["html"])
}
