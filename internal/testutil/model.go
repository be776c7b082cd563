package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// FakeModel is an llms.Model that records every request and answers with a
// canned reply or error.
type FakeModel struct {
	Reply string
	Err   error

	mu       sync.Mutex
	requests [][]llms.MessageContent
}

// GenerateContent records messages and returns Reply as the single choice.
func (f *FakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, messages)
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.Reply}},
	}, nil
}

// Call implements the single-prompt form of llms.Model.
func (f *FakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

// Calls returns how many requests were made.
func (f *FakeModel) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// LastText returns the concatenated text of the message with the given role
// in the most recent request.
func (f *FakeModel) LastText(role llms.ChatMessageType) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return ""
	}

	var b strings.Builder
	for _, msg := range f.requests[len(f.requests)-1] {
		if msg.Role != role {
			continue
		}
		for _, part := range msg.Parts {
			if tc, ok := part.(llms.TextContent); ok {
				b.WriteString(tc.Text)
			}
		}
	}
	return b.String()
}
