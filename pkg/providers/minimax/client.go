package minimax

import (
	"context"
	"net/http"
	"strings"

	"polaris-hq/polaris/pkg/providers"
)

const (
	messagesPath = "/v1/messages"

	// defaultMaxTokens caps generation when the request does not.
	defaultMaxTokens = 4096

	// clientMaxRetries is the retry budget for completion calls. Unlike
	// discovery, a failed completion has no static data to fall back to.
	clientMaxRetries = 2
)

var _ providers.ModelClient = (*Client)(nil)

// Client is the callable model handle for one MiniMax model. It speaks the
// Anthropic Messages wire format against the provider's fixed endpoint.
type Client struct {
	provider string
	baseURL  string
	apiKey   string
	model    providers.Model
	headers  map[string]string
	http     *providers.HTTPClient
}

type clientConfig struct {
	provider string
	baseURL  string
	apiKey   string
	model    providers.Model
	headers  map[string]string
}

func newClient(cfg clientConfig) *Client {
	return &Client{
		provider: cfg.provider,
		baseURL:  cfg.baseURL,
		apiKey:   cfg.apiKey,
		model:    cfg.model,
		headers:  cfg.headers,
		http: providers.NewHTTPClient(providers.HTTPConfig{
			Provider:   cfg.provider,
			MaxRetries: clientMaxRetries,
		}),
	}
}

// Model implements providers.ModelClient.
func (c *Client) Model() providers.Model {
	return c.model
}

// Complete sends a conversation to the provider and returns the reply with
// the provider's usage counters.
func (c *Client) Complete(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	wireReq := c.buildRequest(req)

	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}
	for key, value := range c.headers {
		headers[key] = value
	}

	var wireResp wireResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, c.baseURL+messagesPath, wireReq, &wireResp, headers); err != nil {
		return nil, err
	}

	return transformResponse(&wireResp), nil
}

// Close releases pooled connections.
func (c *Client) Close() {
	c.http.Close()
}

// --- wire types (Anthropic Messages dialect) ---

type wireRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	System      string        `json:"system,omitempty"`
	Messages    []wireMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type wireMessage struct {
	Role    string      `json:"role"`
	Content []wireBlock `json:"content"`
}

type wireBlock struct {
	Type         string            `json:"type"`
	Text         string            `json:"text,omitempty"`
	CacheControl *wireCacheControl `json:"cache_control,omitempty"`
}

type wireCacheControl struct {
	Type string `json:"type"`
}

type wireResponse struct {
	Content    []wireBlock `json:"content"`
	StopReason string      `json:"stop_reason"`
	Usage      wireUsage   `json:"usage"`
}

type wireUsage struct {
	InputTokens              int  `json:"input_tokens"`
	OutputTokens             int  `json:"output_tokens"`
	CacheCreationInputTokens int  `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     *int `json:"cache_read_input_tokens"`
}

// --- conversion helpers ---

func (c *Client) buildRequest(req *providers.CompletionRequest) wireRequest {
	out := wireRequest{
		Model:       c.model.ID,
		MaxTokens:   req.MaxTokens,
		System:      req.System,
		Temperature: req.Temperature,
	}
	if out.MaxTokens == 0 {
		out.MaxTokens = defaultMaxTokens
	}

	out.Messages = make([]wireMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		block := wireBlock{Type: "text", Text: m.Content}
		if m.Cache {
			block.CacheControl = &wireCacheControl{Type: providers.CacheControlEphemeral}
		}
		out.Messages = append(out.Messages, wireMessage{
			Role:    m.Role,
			Content: []wireBlock{block},
		})
	}

	return out
}

func transformResponse(resp *wireResponse) *providers.CompletionResponse {
	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	out := &providers.CompletionResponse{
		Content:    text.String(),
		StopReason: resp.StopReason,
		Usage: providers.TokenUsage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
		},
		Metadata: &providers.CallMetadata{
			CacheWriteTokens: resp.Usage.CacheCreationInputTokens,
			CacheReadTokens:  resp.Usage.CacheReadInputTokens,
		},
	}

	return out
}
