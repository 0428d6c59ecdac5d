package llm

import (
	"context"
	"errors"
)

var ErrEmptyOutput = errors.New("llm returned no output text")

// Schema constrains the model output to a JSON document.
type Schema struct {
	Name       string
	Definition map[string]any
	Strict     bool
}

// WebSearch enables the provider's integrated web search tool.
type WebSearch struct {
	Country     string
	ContextSize string
}

type Request struct {
	Model     string
	Reasoning string
	Verbosity string
	// Instructions is sent with the developer role.
	Instructions string
	Input        string
	Schema       *Schema
	WebSearch    *WebSearch
}

type Response struct {
	Text string
}

type Provider interface {
	Generate(ctx context.Context, req Request) (Response, error)
}
