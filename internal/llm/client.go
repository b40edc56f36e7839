// Package llm asks a text-generation service to explain Latin expressions.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	anthropicAPIURL  = "https://api.anthropic.com/v1/messages"
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 2048
	defaultKeyEnv    = "ANTHROPIC_API_KEY"
)

// Options configures a Client.
type Options struct {
	Model     string
	MaxTokens int
	APIKeyEnv string        // Environment variable holding the API key
	URL       string        // Messages endpoint, overridable for tests
	Timeout   time.Duration // Per-request timeout
}

// Client is an Anthropic API client.
//
// A nil *Client is valid and explains nothing, which is how callers express
// disabled explanations.
type Client struct {
	apiKey     string
	httpClient *http.Client
	model      string
	maxTokens  int
	url        string
}

// Explanation is the service's commentary on one Latin expression.
type Explanation struct {
	Expression string `json:"expression"`
	Grammar    string `json:"explain_grammar"`
	Semantic   string `json:"explain_semantic"`
	Nuances    string `json:"explain_nuances"`
}

// message represents an Anthropic API message.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// request represents an Anthropic API request.
type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

// response represents an Anthropic API response.
type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a new Anthropic client.
// It reads the API key from the environment variable named in opts.
func NewClient(opts Options) (*Client, error) {
	keyEnv := opts.APIKeyEnv
	if keyEnv == "" {
		keyEnv = defaultKeyEnv
	}
	apiKey := os.Getenv(keyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable not set", keyEnv)
	}

	// Trim any whitespace/newlines that might have snuck in
	apiKey = strings.TrimSpace(apiKey)

	c := &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		model:     defaultModel,
		maxTokens: defaultMaxTokens,
		url:       anthropicAPIURL,
	}
	if opts.Model != "" {
		c.model = opts.Model
	}
	if opts.MaxTokens > 0 {
		c.maxTokens = opts.MaxTokens
	}
	if opts.URL != "" {
		c.url = opts.URL
	}
	if opts.Timeout > 0 {
		c.httpClient.Timeout = opts.Timeout
	}
	return c, nil
}

// Explain returns one explanation per expression, in the order the service
// produced them.
func (c *Client) Explain(ctx context.Context, expressions []string) ([]Explanation, error) {
	if c == nil || len(expressions) == 0 {
		return nil, nil
	}

	req := request{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []message{
			{Role: "user", Content: buildPrompt(expressions)},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if apiResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", apiResp.Error.Message)
	}

	if len(apiResp.Content) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	return decodeExplanations(apiResp.Content[0].Text)
}

// decodeExplanations pulls the JSON object out of the model's reply, which
// may be wrapped in prose or a code fence.
func decodeExplanations(text string) ([]Explanation, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in response")
	}
	var payload struct {
		Entries []Explanation `json:"entries"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("unmarshaling explanations: %w", err)
	}
	return payload.Entries, nil
}

// buildPrompt creates the prompt for the LLM.
func buildPrompt(expressions []string) string {
	var sb strings.Builder

	sb.WriteString("You are a classical philologist helping a student read Latin.\n\n")

	sb.WriteString("=== EXPRESSIONS ===\n")
	for _, e := range expressions {
		sb.WriteString(fmt.Sprintf("- %s\n", e))
	}

	sb.WriteString("\n=== YOUR TASK ===\n")
	sb.WriteString("For every expression, explain:\n")
	sb.WriteString("1. its grammar (part of speech, inflection class, notable irregularities)\n")
	sb.WriteString("2. its meaning, with the sense most common in classical authors first\n")
	sb.WriteString("3. nuances that distinguish it from near-synonyms\n\n")
	sb.WriteString("Answer ONLY with a JSON object of this shape, nothing else:\n")
	sb.WriteString(`{"entries":[{"expression":"...","explain_grammar":"...","explain_semantic":"...","explain_nuances":"..."}]}`)

	return sb.String()
}
