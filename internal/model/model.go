package model

import "fmt"

type Company struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type Topic struct {
	ID          string `json:"id"`
	Topic       string `json:"topic"`
	Suggestions string `json:"suggestions"`
}

type PromptType string

const (
	PromptBrandDiscovery PromptType = "brand-discovery"
	PromptOrganicMention PromptType = "organic-mention"
)

type Prompt struct {
	ID      string     `json:"id"`
	Prompt  string     `json:"prompt"`
	Tag     string     `json:"tag"`
	Type    PromptType `json:"type"`
	TopicID string     `json:"topicId,omitempty"`
}

const (
	ModelGPT5Nano = "gpt-5-nano"
	ModelGPT5Mini = "gpt-5-mini"
	ModelGPT5     = "gpt-5"

	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// LLMSettings selects the model and its tuning knobs. An empty field means
// "not specified" when the value is used as a patch.
type LLMSettings struct {
	Model             string `json:"model,omitempty"`
	Reasoning         string `json:"reasoning,omitempty"`
	Verbosity         string `json:"verbosity,omitempty"`
	SearchContextSize string `json:"searchContextSize,omitempty"`
}

func DefaultLLMSettings() LLMSettings {
	return LLMSettings{
		Model:             ModelGPT5Mini,
		Reasoning:         LevelLow,
		Verbosity:         LevelLow,
		SearchContextSize: LevelLow,
	}
}

// Merge returns s with every non-empty field of patch applied on top.
func (s LLMSettings) Merge(patch LLMSettings) LLMSettings {
	if patch.Model != "" {
		s.Model = patch.Model
	}
	if patch.Reasoning != "" {
		s.Reasoning = patch.Reasoning
	}
	if patch.Verbosity != "" {
		s.Verbosity = patch.Verbosity
	}
	if patch.SearchContextSize != "" {
		s.SearchContextSize = patch.SearchContextSize
	}
	return s
}

var (
	models = map[string]bool{ModelGPT5Nano: true, ModelGPT5Mini: true, ModelGPT5: true}
	levels = map[string]bool{LevelLow: true, LevelMedium: true, LevelHigh: true}
)

// Validate checks every non-empty field against the allowed values.
func (s LLMSettings) Validate() error {
	if s.Model != "" && !models[s.Model] {
		return fmt.Errorf("unsupported model %q", s.Model)
	}
	for _, f := range []struct{ name, value string }{
		{"reasoning", s.Reasoning},
		{"verbosity", s.Verbosity},
		{"searchContextSize", s.SearchContextSize},
	} {
		if f.value != "" && !levels[f.value] {
			return fmt.Errorf("unsupported %s level %q", f.name, f.value)
		}
	}
	return nil
}
