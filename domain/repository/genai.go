package repository

import "context"

// IGenAI defines the interface over the generative-AI API. The returned text
// is never assumed to be valid JSON; callers route it through the repair
// parser before use.
type IGenAI interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
