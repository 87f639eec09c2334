package llm

import (
	"context"
)

// Client generates free-form text from a prompt. Used by the counselling
// assistant.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
