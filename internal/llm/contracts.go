package llm

import "context"

// GenerateRequest is a single chat-completions call: a fixed system
// instruction and a user instruction carrying the full document text.
type GenerateRequest struct {
	System string
	User   string
}

// TextGenerator is the interface the extraction tasks depend on. One call,
// one markdown response; implementations convert transport and provider
// errors into plain error values.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
