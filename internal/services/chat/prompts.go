// File: internal/services/chat/prompts.go
package chat

import (
	"fmt"
	"strings"

	"github.com/iyunix/go-newsbot/internal/domain"
)

const summaryInstruction = `아래는 특정 키워드로 검색한 뉴스 제목 목록입니다. 
이 뉴스들을 종합해 3~5문장 정도로 요약해 주세요. 
핵심 주제, 공통 이슈, 전반적인 흐름을 담아주세요. 한국어로 답변해 주세요.`

const chatPersona = "당신은 아래 뉴스 기사들을 기반으로 대화하는 뉴스 챗봇입니다."

const chatGuideline = `지침: 위 뉴스와 요약을 바탕으로만 답변하세요. 없는 내용은 "해당 뉴스에서는 다루지 않는 것 같습니다" 등으로 정중히 말하세요. 짧고 명확하게 한국어로 답변하세요.`

// BuildSummaryPrompt lists the articles as "[i] title (source, publishedAt)".
func BuildSummaryPrompt(news []domain.NewsItem) string {
	lines := make([]string, len(news))
	for i, n := range news {
		lines[i] = fmt.Sprintf("[%d] %s (%s, %s)", i+1, n.Title, n.Source, n.PublishedAt)
	}
	return fmt.Sprintf("%s\n\n뉴스 목록:\n%s\n\n요약:", summaryInstruction, strings.Join(lines, "\n"))
}

// ChatInput is everything a chat turn can be grounded on.
type ChatInput struct {
	Message string
	News    []domain.NewsItem
	Summary string
	History []domain.ChatMessage
}

// BuildChatPrompt renders the persona, optional summary, news and history
// blocks, the grounding guideline and the new message. Only the last window
// history turns are included.
func BuildChatPrompt(in ChatInput, window int) string {
	var summaryBlock, newsBlock, historyBlock string

	if in.Summary != "" {
		summaryBlock = "[뉴스 요약]\n" + in.Summary
	}

	if len(in.News) > 0 {
		lines := make([]string, len(in.News))
		for i, n := range in.News {
			lines[i] = fmt.Sprintf("[%d] %s (%s) - %s", i+1, n.Title, n.Source, n.Link)
		}
		newsBlock = "[참고 뉴스 목록]\n" + strings.Join(lines, "\n")
	}

	if len(in.History) > 0 {
		turns := in.History
		if window > 0 && len(turns) > window {
			turns = turns[len(turns)-window:]
		}
		lines := make([]string, len(turns))
		for i, m := range turns {
			lines[i] = speaker(m.Role) + ": " + m.Content
		}
		historyBlock = "\n[이전 대화]\n" + strings.Join(lines, "\n")
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s\n\n%s\n\n사용자: %s\n챗봇:",
		chatPersona, summaryBlock, newsBlock, historyBlock, chatGuideline, in.Message)
}

func speaker(role domain.ChatRole) string {
	if role == domain.RoleUser {
		return "사용자"
	}
	return "챗봇"
}
