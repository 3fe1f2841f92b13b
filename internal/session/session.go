// File: internal/session/session.go
//
// Package session drives the search, summarize, chat and share flow on the
// client side. One action runs at a time; the rest are refused with ErrBusy.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iyunix/go-newsbot/internal/client"
	"github.com/iyunix/go-newsbot/internal/domain"
)

type Loading string

const (
	Idle      Loading = "idle"
	Searching Loading = "search"
	Summarize Loading = "summarize"
	Chatting  Loading = "chat"
	Emailing  Loading = "email"
)

var (
	ErrBusy         = errors.New("다른 작업이 진행 중입니다.")
	ErrEmptyKeyword = errors.New("키워드를 입력하세요.")
	ErrNoNews       = errors.New("이 키워드로 검색된 뉴스가 없습니다. 다른 키워드를 시도해 보세요.")
	ErrEmptyMessage = errors.New("메시지를 입력하세요.")
	ErrNoSelection  = errors.New("선택된 검색 결과가 없습니다.")
)

type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// API is the slice of the server the orchestrator talks to. *client.Client
// satisfies it.
type API interface {
	SearchNews(ctx context.Context, keyword string) ([]domain.NewsItem, error)
	Summarize(ctx context.Context, news []domain.NewsItem) (string, error)
	Chat(ctx context.Context, req client.ChatRequest) (string, error)
	SaveSearch(ctx context.Context, req client.SaveRequest) (string, error)
	SendEmail(ctx context.Context, req client.EmailRequest) (string, error)
}

type Options struct {
	Logger Logger
	// OnPersistError is told about background saves that failed. It runs on
	// the save goroutine.
	OnPersistError func(Entry, error)
	Now            func() time.Time
	NewID          func() string
}

// State is a snapshot of the orchestrator.
type State struct {
	Loading  Loading
	History  History
	Selected string
	User     *domain.PublicUser
	Error    string
}

type Orchestrator struct {
	api            API
	logger         Logger
	onPersistError func(Entry, error)
	now            func() time.Time
	newID          func() string

	mu       sync.Mutex
	loading  Loading
	history  History
	selected string
	user     *domain.PublicUser
	lastErr  string

	persists sync.WaitGroup
}

func New(api API, opts Options) *Orchestrator {
	o := &Orchestrator{
		api:            api,
		logger:         opts.Logger,
		onPersistError: opts.OnPersistError,
		now:            opts.Now,
		newID:          opts.NewID,
		loading:        Idle,
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.newID == nil {
		o.newID = func() string { return uuid.New().String() }
	}
	return o
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return State{
		Loading:  o.loading,
		History:  o.history,
		Selected: o.selected,
		User:     o.user,
		Error:    o.lastErr,
	}
}

// SetUser records who is logged in; nil logs out.
func (o *Orchestrator) SetUser(u *domain.PublicUser) {
	o.mu.Lock()
	o.user = u
	o.mu.Unlock()
}

// Select makes id the current entry.
func (o *Orchestrator) Select(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.history.Get(id); !ok {
		return ErrNoSelection
	}
	o.selected = id
	return nil
}

// Delete drops id from the local history. The stored copy, if any, stays.
func (o *Orchestrator) Delete(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = o.history.Without(id)
	if o.selected == id {
		o.selected = ""
	}
}

// Wait blocks until every background save has finished.
func (o *Orchestrator) Wait() {
	o.persists.Wait()
}

func (o *Orchestrator) begin(l Loading) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.loading != Idle {
		return ErrBusy
	}
	o.loading = l
	o.lastErr = ""
	return nil
}

func (o *Orchestrator) advance(l Loading) {
	o.mu.Lock()
	o.loading = l
	o.mu.Unlock()
}

// finish returns to idle and records err, if any, as the visible error.
func (o *Orchestrator) finish(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.loading = Idle
	if err != nil {
		o.lastErr = err.Error()
	}
}

// Search fetches news for keyword, summarizes it, adds the result to the
// history, selects it and saves it in the background.
func (o *Orchestrator) Search(ctx context.Context, keyword string) (entry Entry, err error) {
	k := strings.TrimSpace(keyword)
	if k == "" {
		o.mu.Lock()
		busy := o.loading != Idle
		if !busy {
			o.lastErr = ErrEmptyKeyword.Error()
		}
		o.mu.Unlock()
		if busy {
			return Entry{}, ErrBusy
		}
		return Entry{}, ErrEmptyKeyword
	}

	if err := o.begin(Searching); err != nil {
		return Entry{}, err
	}
	defer func() { o.finish(err) }()

	news, err := o.api.SearchNews(ctx, k)
	if err != nil {
		return Entry{}, err
	}
	if len(news) == 0 {
		return Entry{}, ErrNoNews
	}

	o.advance(Summarize)
	summary, err := o.api.Summarize(ctx, news)
	if err != nil {
		return Entry{}, err
	}

	entry = Entry{
		ID:        o.newID(),
		Keyword:   k,
		CreatedAt: o.now(),
		News:      news,
		Summary:   summary,
	}

	o.mu.Lock()
	o.history = o.history.With(entry)
	o.selected = entry.ID
	user := o.user
	o.mu.Unlock()

	o.persist(ctx, entry, user)
	return entry, nil
}

func (o *Orchestrator) persist(ctx context.Context, entry Entry, user *domain.PublicUser) {
	req := client.SaveRequest{
		Keyword: entry.Keyword,
		News:    entry.News,
		Summary: entry.Summary,
	}
	if user != nil {
		req.Requester = domain.Requester{UserID: user.ID, Name: user.Username, Email: user.Email, Phone: user.Phone}
	}

	// The save outlives the action that triggered it.
	bg := context.WithoutCancel(ctx)
	o.persists.Add(1)
	go func() {
		defer o.persists.Done()
		id, err := o.api.SaveSearch(bg, req)
		if err != nil {
			if o.logger != nil {
				o.logger.Warn("background save failed", "keyword", entry.Keyword, "error", err)
			}
			if o.onPersistError != nil {
				o.onPersistError(entry, err)
			}
			return
		}
		if o.logger != nil {
			o.logger.Debug("search saved", "keyword", entry.Keyword, "search_id", id)
		}
	}()
}

// Chat asks a follow-up question about the selected entry. The user turn is
// appended right away and removed again if the call fails.
func (o *Orchestrator) Chat(ctx context.Context, message string) (reply string, err error) {
	m := strings.TrimSpace(message)
	if m == "" {
		return "", ErrEmptyMessage
	}

	o.mu.Lock()
	if o.loading != Idle {
		o.mu.Unlock()
		return "", ErrBusy
	}
	entry, ok := o.history.Get(o.selected)
	if !ok {
		o.mu.Unlock()
		return "", ErrNoSelection
	}
	prior := entry.Chat
	entry.Chat = append(prior[:len(prior):len(prior)], domain.ChatMessage{Role: domain.RoleUser, Content: m})
	o.history = o.history.With(entry)
	o.loading = Chatting
	o.lastErr = ""
	o.mu.Unlock()

	defer func() { o.finish(err) }()

	reply, err = o.api.Chat(ctx, client.ChatRequest{
		Message: m,
		News:    entry.News,
		Summary: entry.Summary,
		History: prior,
	})

	o.mu.Lock()
	defer o.mu.Unlock()
	current, ok := o.history.Get(entry.ID)
	if !ok {
		// Deleted mid-flight; nothing to update.
		return reply, err
	}
	if err != nil {
		current.Chat = prior
		o.history = o.history.With(current)
		return "", err
	}
	current.Chat = append(current.Chat, domain.ChatMessage{Role: domain.RoleAssistant, Content: reply})
	o.history = o.history.With(current)
	return reply, nil
}

// Contact is who a report is sent on behalf of.
type Contact struct {
	Name  string
	Phone string
	Email string
}

// SendEmail mails the selected entry's summary and news.
func (o *Orchestrator) SendEmail(ctx context.Context, contact Contact) (id string, err error) {
	o.mu.Lock()
	if o.loading != Idle {
		o.mu.Unlock()
		return "", ErrBusy
	}
	entry, ok := o.history.Get(o.selected)
	if !ok {
		o.mu.Unlock()
		return "", ErrNoSelection
	}
	requester := domain.Requester{Name: contact.Name, Phone: contact.Phone, Email: contact.Email}
	if o.user != nil {
		requester.UserID = o.user.ID
	}
	o.loading = Emailing
	o.lastErr = ""
	o.mu.Unlock()

	defer func() { o.finish(err) }()

	return o.api.SendEmail(ctx, client.EmailRequest{
		Keyword:   entry.Keyword,
		Summary:   entry.Summary,
		News:      entry.News,
		Requester: requester,
	})
}
