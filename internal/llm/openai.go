package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.openai.com/v1"

type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// OpenAI talks to the Responses API. Calls are made once; failures are
// returned to the caller as is.
type OpenAI struct {
	cfg Config
}

func NewOpenAI(cfg Config) *OpenAI {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 120 * time.Second}
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &OpenAI{cfg: cfg}
}

var _ Provider = (*OpenAI)(nil)

func (c *OpenAI) Generate(ctx context.Context, req Request) (Response, error) {
	body, endpointURL, err := c.buildPayload(req)
	if err != nil {
		return Response{}, err
	}
	text, err := c.callOnce(ctx, endpointURL, body)
	if err != nil {
		return Response{}, err
	}
	return Response{Text: text}, nil
}

func (c *OpenAI) buildPayload(req Request) ([]byte, string, error) {
	endpointURL, err := c.buildEndpointURL()
	if err != nil {
		return nil, "", err
	}

	payload := map[string]any{
		"model": req.Model,
		"input": []map[string]any{
			inputMessage("developer", req.Instructions),
			inputMessage("user", req.Input),
		},
	}
	if req.Reasoning != "" {
		payload["reasoning"] = map[string]any{"effort": req.Reasoning}
	}

	text := map[string]any{}
	if req.Verbosity != "" {
		text["verbosity"] = req.Verbosity
	}
	if req.Schema != nil {
		text["format"] = map[string]any{
			"type":   "json_schema",
			"name":   req.Schema.Name,
			"schema": req.Schema.Definition,
			"strict": req.Schema.Strict,
		}
	}
	if len(text) > 0 {
		payload["text"] = text
	}

	if req.WebSearch != nil {
		tool := map[string]any{"type": "web_search"}
		if req.WebSearch.Country != "" {
			tool["user_location"] = map[string]any{"type": "approximate", "country": req.WebSearch.Country}
		}
		if req.WebSearch.ContextSize != "" {
			tool["search_context_size"] = req.WebSearch.ContextSize
		}
		payload["tools"] = []map[string]any{tool}
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("marshal responses payload: %w", err)
	}
	return b, endpointURL, nil
}

func inputMessage(role, text string) map[string]any {
	return map[string]any{
		"role":    role,
		"content": []map[string]any{{"type": "input_text", "text": text}},
	}
}

func (c *OpenAI) callOnce(ctx context.Context, endpointURL string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(c.cfg.APIKey) != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if msg := apiErrorMessage(respBody); msg != "" {
			return "", fmt.Errorf("provider status %d: %s", resp.StatusCode, msg)
		}
		return "", fmt.Errorf("provider status %d", resp.StatusCode)
	}

	return parseResponsesAPI(respBody)
}

func (c *OpenAI) buildEndpointURL() (string, error) {
	base := strings.TrimSpace(c.cfg.BaseURL)
	if strings.HasSuffix(base, "/responses") {
		return base, nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/responses"
	return u.String(), nil
}

// parseResponsesAPI concatenates the output_text parts of every message item.
// Tool call and reasoning items are skipped.
func parseResponsesAPI(body []byte) (string, error) {
	var resp struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Type    string `json:"type"`
			Content []struct {
				Type    string `json:"type"`
				Text    string `json:"text"`
				Refusal string `json:"refusal"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode responses api response: %w", err)
	}
	if strings.TrimSpace(resp.OutputText) != "" {
		return resp.OutputText, nil
	}

	var sb strings.Builder
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			switch part.Type {
			case "output_text":
				sb.WriteString(part.Text)
			case "refusal":
				return "", fmt.Errorf("model refused: %s", part.Refusal)
			}
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyOutput
	}
	return sb.String(), nil
}

func apiErrorMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return strings.TrimSpace(e.Error.Message)
}
