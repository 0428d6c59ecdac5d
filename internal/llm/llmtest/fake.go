// Package llmtest provides an in-memory llm.Provider for tests.
package llmtest

import (
	"context"
	"sync"

	"promptlab/internal/llm"
)

type Fake struct {
	Handler func(req llm.Request) (llm.Response, error)

	mu    sync.Mutex
	calls []llm.Request
}

var _ llm.Provider = (*Fake)(nil)

// Reply returns a Fake that answers every request with text.
func Reply(text string) *Fake {
	return &Fake{Handler: func(llm.Request) (llm.Response, error) {
		return llm.Response{Text: text}, nil
	}}
}

func (f *Fake) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return llm.Response{}, err
	}
	return f.Handler(req)
}

func (f *Fake) Calls() []llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]llm.Request, len(f.calls))
	copy(out, f.calls)
	return out
}
