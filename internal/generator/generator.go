package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"promptlab/internal/ids"
	"promptlab/internal/llm"
	"promptlab/internal/metrics"
	"promptlab/internal/model"
	"promptlab/internal/prompts"
)

const (
	DefaultTopicCount  = 5
	DefaultPromptCount = 10

	MaxTopicCount  = 50
	MaxPromptCount = 100

	searchCountry = "FR"
)

var ErrNotConfigured = errors.New("OpenAI API key not configured")

// ValidationError reports a request with missing or out-of-range input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type Config struct {
	// Provider is nil when no credential is configured.
	Provider llm.Provider
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	Now      func() time.Time
}

type Service struct {
	provider llm.Provider
	logger   zerolog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

func New(cfg Config) *Service {
	m := cfg.Metrics
	if m == nil {
		m = metrics.Global()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger.With().Str("component", "generator").Logger(),
		metrics:  m,
		now:      cfg.Now,
	}
}

type CompanyRequest struct {
	URL          string             `json:"url"`
	SystemPrompt string             `json:"systemPrompt"`
	LLMSettings  *model.LLMSettings `json:"llmSettings,omitempty"`
}

type TopicsRequest struct {
	CompanyName        string             `json:"companyName"`
	CompanyDescription string             `json:"companyDescription"`
	Count              int                `json:"count,omitempty"`
	SystemPrompt       string             `json:"systemPrompt"`
	LLMSettings        *model.LLMSettings `json:"llmSettings,omitempty"`
}

type PromptsRequest struct {
	TopicName            string             `json:"topicName"`
	TopicID              string             `json:"topicId,omitempty"`
	CompanyName          string             `json:"companyName"`
	CompanyDescription   string             `json:"companyDescription"`
	Count                int                `json:"count,omitempty"`
	BrandDiscoveryPrompt string             `json:"brandDiscoveryPrompt"`
	OrganicMentionPrompt string             `json:"organicMentionPrompt"`
	LLMSettings          *model.LLMSettings `json:"llmSettings,omitempty"`
}

// InferCompany asks the model, with web search enabled, to identify the
// company behind req.URL.
func (s *Service) InferCompany(ctx context.Context, req CompanyRequest) (model.Company, error) {
	if blank(req.URL) {
		return model.Company{}, &ValidationError{Message: "URL is required"}
	}
	if s.provider == nil {
		return model.Company{}, ErrNotConfigured
	}

	settings := model.LLMSettings{
		Model:             model.ModelGPT5Mini,
		Reasoning:         model.LevelLow,
		SearchContextSize: model.LevelLow,
	}.Merge(deref(req.LLMSettings))

	var out struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	err := s.call(ctx, llm.Request{
		Model:        settings.Model,
		Reasoning:    settings.Reasoning,
		Verbosity:    settings.Verbosity,
		Instructions: req.SystemPrompt,
		Input:        "URL: " + req.URL,
		Schema:       companySchema(),
		WebSearch:    &llm.WebSearch{Country: searchCountry, ContextSize: settings.SearchContextSize},
	}, &out)
	if err != nil {
		return model.Company{}, err
	}
	if out.Name == nil || out.Description == nil {
		return model.Company{}, fmt.Errorf("parse %s output: name and description are required", schemaCompany)
	}

	return model.Company{Name: *out.Name, Description: *out.Description, URL: req.URL}, nil
}

// GenerateTopics returns topics in the order the model ranked them.
func (s *Service) GenerateTopics(ctx context.Context, req TopicsRequest) ([]model.Topic, error) {
	if blank(req.CompanyName) || blank(req.CompanyDescription) {
		return nil, &ValidationError{Message: "Company name and description are required"}
	}
	if req.Count > MaxTopicCount {
		return nil, &ValidationError{Message: fmt.Sprintf("Count must be at most %d", MaxTopicCount)}
	}
	if s.provider == nil {
		return nil, ErrNotConfigured
	}

	count := req.Count
	if count <= 0 {
		count = DefaultTopicCount
	}
	s.warnUnknownPlaceholders(prompts.KindTopics, req.SystemPrompt, prompts.PlaceholderCount)

	settings := model.LLMSettings{Model: model.ModelGPT5Mini}.Merge(deref(req.LLMSettings))

	var out struct {
		Items []struct {
			Topic       string `json:"topic"`
			Suggestions string `json:"suggestions"`
		} `json:"items"`
	}
	err := s.call(ctx, llm.Request{
		Model:        settings.Model,
		Reasoning:    settings.Reasoning,
		Verbosity:    settings.Verbosity,
		Instructions: prompts.FillCount(req.SystemPrompt, count),
		Input:        fmt.Sprintf("Entreprise : %s\n\nDescription : %s", req.CompanyName, req.CompanyDescription),
		Schema:       topicsSchema(),
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Items == nil {
		return nil, fmt.Errorf("parse %s output: items are required", schemaTopics)
	}

	now := s.now()
	topics := make([]model.Topic, 0, len(out.Items))
	for i, item := range out.Items {
		topics = append(topics, model.Topic{
			ID:          ids.New("topic", now, i),
			Topic:       item.Topic,
			Suggestions: item.Suggestions,
		})
	}
	return topics, nil
}

type promptList struct {
	Prompts []struct {
		Prompt string `json:"prompt"`
		Tag    string `json:"tag"`
	} `json:"prompts"`
}

// GeneratePrompts splits req.Count 70/30 between brand-discovery and
// organic-mention prompts and generates both halves concurrently. If either
// call fails no prompts are returned.
func (s *Service) GeneratePrompts(ctx context.Context, req PromptsRequest) ([]model.Prompt, error) {
	if blank(req.TopicName) || blank(req.CompanyName) || blank(req.CompanyDescription) {
		return nil, &ValidationError{Message: "Topic and company info are required"}
	}
	if req.Count > MaxPromptCount {
		return nil, &ValidationError{Message: fmt.Sprintf("Count must be at most %d", MaxPromptCount)}
	}
	if s.provider == nil {
		return nil, ErrNotConfigured
	}

	total := req.Count
	if total <= 0 {
		total = DefaultPromptCount
	}
	bdCount, omCount := prompts.Split(total)

	allowed := []string{prompts.PlaceholderCount, prompts.PlaceholderTopic, prompts.PlaceholderCompany}
	s.warnUnknownPlaceholders(prompts.KindBrandDiscovery, req.BrandDiscoveryPrompt, allowed...)
	s.warnUnknownPlaceholders(prompts.KindOrganicMention, req.OrganicMentionPrompt, allowed...)

	settings := model.LLMSettings{Model: model.ModelGPT5Mini}.Merge(deref(req.LLMSettings))
	input := fmt.Sprintf("Topic : %s\n\nSecteur d'activité de l'entreprise (ADAPTE les prompts à ce secteur) :\n- Nom : %s\n- Activité : %s",
		req.TopicName, req.CompanyName, req.CompanyDescription)
	build := func(tpl string, count int) llm.Request {
		return llm.Request{
			Model:     settings.Model,
			Reasoning: settings.Reasoning,
			Verbosity: settings.Verbosity,
			Instructions: prompts.Fill(tpl, prompts.Params{
				Count:   count,
				Topic:   req.TopicName,
				Company: req.CompanyName,
			}),
			Input:  input,
			Schema: promptsSchema(),
		}
	}

	var bd, om promptList
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.call(gctx, build(req.BrandDiscoveryPrompt, bdCount), &bd)
	})
	g.Go(func() error {
		return s.call(gctx, build(req.OrganicMentionPrompt, omCount), &om)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bd.Prompts == nil || om.Prompts == nil {
		return nil, fmt.Errorf("parse %s output: prompts are required", schemaPrompts)
	}

	now := s.now()
	out := make([]model.Prompt, 0, min(len(bd.Prompts), bdCount)+min(len(om.Prompts), omCount))
	out = appendPrompts(out, bd, bdCount, "prompt-bd", model.PromptBrandDiscovery, req.TopicID, now)
	out = appendPrompts(out, om, omCount, "prompt-om", model.PromptOrganicMention, req.TopicID, now)
	return out, nil
}

func appendPrompts(out []model.Prompt, list promptList, limit int, prefix string, typ model.PromptType, topicID string, now time.Time) []model.Prompt {
	items := list.Prompts
	if len(items) > limit {
		items = items[:limit]
	}
	for i, p := range items {
		out = append(out, model.Prompt{
			ID:      ids.New(prefix, now, i),
			Prompt:  p.Prompt,
			Tag:     p.Tag,
			Type:    typ,
			TopicID: topicID,
		})
	}
	return out
}

func (s *Service) call(ctx context.Context, req llm.Request, out any) error {
	schema := ""
	if req.Schema != nil {
		schema = req.Schema.Name
	}
	start := time.Now()
	resp, err := s.provider.Generate(ctx, req)
	s.metrics.LLMDuration.WithLabelValues(schema).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.LLMCalls.WithLabelValues(schema, "error").Inc()
		s.logger.Error().Err(err).Str("schema", schema).Str("model", req.Model).Msg("llm call failed")
		return err
	}
	if err := json.Unmarshal([]byte(resp.Text), out); err != nil {
		s.metrics.LLMCalls.WithLabelValues(schema, "invalid_json").Inc()
		s.logger.Error().Err(err).Str("schema", schema).Msg("llm output is not valid json")
		return fmt.Errorf("parse %s output: %w", schema, err)
	}
	s.metrics.LLMCalls.WithLabelValues(schema, "ok").Inc()
	s.logger.Debug().Str("schema", schema).Str("model", req.Model).Dur("took", time.Since(start)).Msg("llm call completed")
	return nil
}

func (s *Service) warnUnknownPlaceholders(kind prompts.Kind, tpl string, allowed ...string) {
	if unknown := prompts.Unknown(tpl, allowed...); len(unknown) > 0 {
		s.logger.Warn().Str("template", string(kind)).Strs("placeholders", unknown).Msg("template has unknown placeholders; they are sent verbatim")
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func deref(s *model.LLMSettings) model.LLMSettings {
	if s == nil {
		return model.LLMSettings{}
	}
	return *s
}
