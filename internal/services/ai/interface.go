// File: internal/services/ai/interface.go
package ai

import "context"

// Client generates a single completion for a fully rendered prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (*Response, error)
}

// Response mirrors the generative API result. Text is the convenience field
// some backends fill; Candidates carry the raw content parts.
type Response struct {
	Text       string
	Candidates []Candidate
}

type Candidate struct {
	Parts []Part
}

type Part struct {
	Text string
}
