// Package assistant answers KCET counselling questions through a configured
// LLM provider.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/admitplan/kcetgo/internal/llm"
)

// ErrEmptyQuestion is returned for blank input before any provider call.
var ErrEmptyQuestion = errors.New("question is empty")

const counsellingPrompt = `You are an assistant for KCET (Karnataka CET) engineering admission counselling.
Answer the candidate's question about the counselling process: rounds, choice
entry, seat allotment, documents, fees and the calendar of events. Be concise
and factual. If the question is not about KCET counselling, say so briefly.

Question: %s`

type Assistant struct {
	llm llm.Client
}

func New(client llm.Client) *Assistant {
	return &Assistant{llm: client}
}

// Answer generates a counselling answer for one question.
func (a *Assistant) Answer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	answer, err := a.llm.Generate(ctx, fmt.Sprintf(counsellingPrompt, question))
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}
