package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		want string
	}{
		{"nil response", nil, "fallback"},
		{"primary text", &Response{Text: "  요약입니다.  "}, "요약입니다."},
		{
			"blank primary uses parts",
			&Response{Text: "   ", Candidates: []Candidate{{Parts: []Part{{Text: "첫째 "}, {Text: "둘째"}}}}},
			"첫째 둘째",
		},
		{
			"only first candidate counts",
			&Response{Candidates: []Candidate{{}, {Parts: []Part{{Text: "ignored"}}}}},
			"fallback",
		},
		{"empty everything", &Response{}, "fallback"},
		{
			"blank parts",
			&Response{Candidates: []Candidate{{Parts: []Part{{Text: " "}, {Text: "\n"}}}}},
			"fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractText(tt.resp, "fallback"))
		})
	}
}
