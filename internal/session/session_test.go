package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-newsbot/internal/client"
	"github.com/iyunix/go-newsbot/internal/domain"
)

type fakeAPI struct {
	mu sync.Mutex

	news         []domain.NewsItem
	searchErr    error
	summary      string
	summarizeErr error
	reply        string
	chatErr      error
	saveErr      error
	emailID      string

	summarizeCalls int
	chatReqs       []client.ChatRequest
	saves          []client.SaveRequest
	emails         []client.EmailRequest

	// block, when set, holds SearchNews until closed.
	block chan struct{}
}

func (f *fakeAPI) SearchNews(ctx context.Context, keyword string) ([]domain.NewsItem, error) {
	if f.block != nil {
		<-f.block
	}
	return f.news, f.searchErr
}

func (f *fakeAPI) Summarize(ctx context.Context, news []domain.NewsItem) (string, error) {
	f.mu.Lock()
	f.summarizeCalls++
	f.mu.Unlock()
	return f.summary, f.summarizeErr
}

func (f *fakeAPI) Chat(ctx context.Context, req client.ChatRequest) (string, error) {
	f.mu.Lock()
	f.chatReqs = append(f.chatReqs, req)
	f.mu.Unlock()
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return f.reply, nil
}

func (f *fakeAPI) SaveSearch(ctx context.Context, req client.SaveRequest) (string, error) {
	f.mu.Lock()
	f.saves = append(f.saves, req)
	f.mu.Unlock()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if f.saveErr != nil {
		return "", f.saveErr
	}
	return "saved-1", nil
}

func (f *fakeAPI) SendEmail(ctx context.Context, req client.EmailRequest) (string, error) {
	f.emails = append(f.emails, req)
	return f.emailID, nil
}

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Info(msg string, kv ...interface{})  {}
func (l *recordingLogger) Error(msg string, kv ...interface{}) {}
func (l *recordingLogger) Debug(msg string, kv ...interface{}) {}
func (l *recordingLogger) Warn(msg string, kv ...interface{}) {
	l.mu.Lock()
	l.warns = append(l.warns, msg)
	l.mu.Unlock()
}

func sampleNews() []domain.NewsItem {
	return []domain.NewsItem{{Title: "a", Link: "l", Source: "s", PublishedAt: "p"}}
}

func TestSearch_CreatesSelectsAndPersists(t *testing.T) {
	api := &fakeAPI{news: sampleNews(), summary: "요약"}
	o := New(api, Options{NewID: func() string { return "e-1" }})
	o.SetUser(&domain.PublicUser{ID: "u-1", Username: "Kim", Email: "k@x.com"})

	entry, err := o.Search(context.Background(), "  경제 ")
	require.NoError(t, err)
	o.Wait()

	assert.Equal(t, "경제", entry.Keyword)
	assert.Equal(t, "요약", entry.Summary)

	st := o.State()
	assert.Equal(t, Idle, st.Loading)
	assert.Equal(t, "e-1", st.Selected)
	assert.Equal(t, 1, st.History.Len())

	require.Len(t, api.saves, 1)
	assert.Equal(t, "경제", api.saves[0].Keyword)
	assert.Equal(t, "u-1", api.saves[0].Requester.UserID)
	assert.Equal(t, "Kim", api.saves[0].Requester.Name)
}

func TestSearch_EmptyKeyword(t *testing.T) {
	api := &fakeAPI{}
	o := New(api, Options{})

	_, err := o.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyKeyword)
	assert.Equal(t, ErrEmptyKeyword.Error(), o.State().Error)
}

func TestSearch_NoNewsSkipsSummarize(t *testing.T) {
	api := &fakeAPI{news: []domain.NewsItem{}}
	o := New(api, Options{})

	_, err := o.Search(context.Background(), "없음")
	assert.ErrorIs(t, err, ErrNoNews)
	assert.Equal(t, 0, api.summarizeCalls)

	st := o.State()
	assert.Equal(t, Idle, st.Loading)
	assert.Equal(t, ErrNoNews.Error(), st.Error)
	assert.Equal(t, 0, st.History.Len())
}

func TestSearch_SummarizeFailureAddsNothing(t *testing.T) {
	api := &fakeAPI{news: sampleNews(), summarizeErr: errors.New("요약 실패")}
	o := New(api, Options{})

	_, err := o.Search(context.Background(), "경제")
	assert.EqualError(t, err, "요약 실패")
	o.Wait()

	assert.Equal(t, 0, o.State().History.Len())
	assert.Empty(t, api.saves)
}

func TestSearch_BusyWhileInFlight(t *testing.T) {
	api := &fakeAPI{news: sampleNews(), summary: "s", block: make(chan struct{})}
	o := New(api, Options{})

	done := make(chan error, 1)
	go func() {
		_, err := o.Search(context.Background(), "first")
		done <- err
	}()

	require.Eventually(t, func() bool { return o.State().Loading == Searching }, time.Second, time.Millisecond)

	_, err := o.Search(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)
	_, err = o.Search(context.Background(), "")
	assert.ErrorIs(t, err, ErrBusy)
	_, err = o.Chat(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrBusy)

	close(api.block)
	require.NoError(t, <-done)
	o.Wait()
	assert.Equal(t, 1, o.State().History.Len())
}

func TestSearch_PersistFailureIsSideChannelOnly(t *testing.T) {
	logger := &recordingLogger{}
	var reported []error
	var mu sync.Mutex

	api := &fakeAPI{news: sampleNews(), summary: "s", saveErr: errors.New("db down")}
	o := New(api, Options{
		Logger: logger,
		OnPersistError: func(e Entry, err error) {
			mu.Lock()
			reported = append(reported, err)
			mu.Unlock()
		},
	})

	_, err := o.Search(context.Background(), "경제")
	require.NoError(t, err)
	o.Wait()

	assert.Empty(t, o.State().Error)
	require.Len(t, reported, 1)
	assert.EqualError(t, reported[0], "db down")
	assert.Equal(t, []string{"background save failed"}, logger.warns)
}

func TestSearch_PersistOutlivesCallerContext(t *testing.T) {
	api := &fakeAPI{news: sampleNews(), summary: "s"}
	var failed error
	o := New(api, Options{OnPersistError: func(_ Entry, err error) { failed = err }})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := o.Search(ctx, "경제")
	require.NoError(t, err)
	o.Wait()

	assert.NoError(t, failed)
	require.Len(t, api.saves, 1)
}

func TestChat_AppendsTurns(t *testing.T) {
	api := &fakeAPI{news: sampleNews(), summary: "s", reply: "답변"}
	o := New(api, Options{NewID: func() string { return "e-1" }})
	_, err := o.Search(context.Background(), "경제")
	require.NoError(t, err)

	reply, err := o.Chat(context.Background(), " 왜? ")
	require.NoError(t, err)
	assert.Equal(t, "답변", reply)

	_, err = o.Chat(context.Background(), "그리고?")
	require.NoError(t, err)

	entry, ok := o.State().History.Get("e-1")
	require.True(t, ok)
	require.Len(t, entry.Chat, 4)
	assert.Equal(t, domain.RoleUser, entry.Chat[0].Role)
	assert.Equal(t, "왜?", entry.Chat[0].Content)
	assert.Equal(t, domain.RoleAssistant, entry.Chat[1].Role)

	require.Len(t, api.chatReqs, 2)
	assert.Empty(t, api.chatReqs[0].History)
	assert.Len(t, api.chatReqs[1].History, 2)
	assert.Equal(t, "s", api.chatReqs[1].Summary)
}

func TestChat_RollsBackOnFailure(t *testing.T) {
	api := &fakeAPI{news: sampleNews(), summary: "s", reply: "ok"}
	o := New(api, Options{NewID: func() string { return "e-1" }})
	_, err := o.Search(context.Background(), "경제")
	require.NoError(t, err)
	_, err = o.Chat(context.Background(), "first")
	require.NoError(t, err)

	api.chatErr = errors.New("챗 실패")
	_, err = o.Chat(context.Background(), "second")
	assert.EqualError(t, err, "챗 실패")

	st := o.State()
	assert.Equal(t, Idle, st.Loading)
	assert.Equal(t, "챗 실패", st.Error)
	entry, _ := st.History.Get("e-1")
	require.Len(t, entry.Chat, 2)
	assert.Equal(t, "first", entry.Chat[0].Content)
}

func TestChat_Guards(t *testing.T) {
	o := New(&fakeAPI{}, Options{})

	_, err := o.Chat(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	_, err = o.Chat(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestSelectAndDelete(t *testing.T) {
	ids := []string{"e-1", "e-2"}
	api := &fakeAPI{news: sampleNews(), summary: "s"}
	o := New(api, Options{NewID: func() string { id := ids[0]; ids = ids[1:]; return id }})

	_, err := o.Search(context.Background(), "one")
	require.NoError(t, err)
	_, err = o.Search(context.Background(), "two")
	require.NoError(t, err)
	o.Wait()

	require.NoError(t, o.Select("e-1"))
	assert.Equal(t, "e-1", o.State().Selected)
	assert.ErrorIs(t, o.Select("nope"), ErrNoSelection)

	before := o.State().History
	o.Delete("e-1")
	st := o.State()
	assert.Empty(t, st.Selected)
	assert.Equal(t, 1, st.History.Len())
	assert.Equal(t, 2, before.Len())
}

func TestSendEmail(t *testing.T) {
	api := &fakeAPI{news: sampleNews(), summary: "요약", emailID: "msg-1"}
	o := New(api, Options{})
	o.SetUser(&domain.PublicUser{ID: "u-1"})
	_, err := o.Search(context.Background(), "경제")
	require.NoError(t, err)

	id, err := o.SendEmail(context.Background(), Contact{Name: "Kim", Phone: "010", Email: "k@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	require.Len(t, api.emails, 1)
	assert.Equal(t, "경제", api.emails[0].Keyword)
	assert.Equal(t, "Kim", api.emails[0].Requester.Name)
	assert.Equal(t, "u-1", api.emails[0].Requester.UserID)
	assert.Equal(t, Idle, o.State().Loading)
}
