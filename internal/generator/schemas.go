package generator

import "promptlab/internal/llm"

const (
	schemaCompany = "company_info"
	schemaTopics  = "topics_list"
	schemaPrompts = "prompts_list"
)

func companySchema() *llm.Schema {
	return &llm.Schema{
		Name:   schemaCompany,
		Strict: true,
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":        map[string]any{"type": "string", "description": "Company name"},
				"description": map[string]any{"type": "string", "description": "Company description in French"},
			},
			"required":             []string{"name", "description"},
			"additionalProperties": false,
		},
	}
}

func topicsSchema() *llm.Schema {
	return &llm.Schema{
		Name:   schemaTopics,
		Strict: true,
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"items": map[string]any{
					"type":  "array",
					"items": objectOf("topic", "suggestions"),
				},
			},
			"required":             []string{"items"},
			"additionalProperties": false,
		},
	}
}

func promptsSchema() *llm.Schema {
	return &llm.Schema{
		Name:   schemaPrompts,
		Strict: true,
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prompts": map[string]any{
					"type":  "array",
					"items": objectOf("prompt", "tag"),
				},
			},
			"required":             []string{"prompts"},
			"additionalProperties": false,
		},
	}
}

// objectOf describes a closed object whose fields are all required strings.
func objectOf(fields ...string) map[string]any {
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		props[f] = map[string]any{"type": "string"}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             fields,
		"additionalProperties": false,
	}
}
