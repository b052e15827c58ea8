package geminiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yuuto7838/adsim/internal/constants"
)

// Client calls the Gemini generateContent REST API. One client is built per
// submitted API key; it implements both the brief provider and the
// evaluator contracts consumed by the session manager.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	templates  Templates
}

// Templates are the prompt templates used for each generation kind. Tokens
// of the form {{name}} are substituted before sending. Empty fields fall
// back to the built-in defaults.
type Templates struct {
	Brief             string `json:"brief_prompt"`
	QA                string `json:"qa_prompt"`
	ChallengeQuestion string `json:"challenge_prompt"`
	ChallengeScore    string `json:"score_prompt"`
}

// Option mutates the client at construction time (tests override the base
// URL and timeout).
type Option func(*Client)

// WithBaseURL points the client at an alternate endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTemplates installs custom prompt templates (from the config file).
func WithTemplates(t Templates) Option {
	return func(c *Client) { c.templates = t }
}

// New builds a client for the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    constants.GeminiBaseURL,
		model:      constants.GeminiModel,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// generateText sends one prompt and returns the raw text of the first
// candidate.
func (c *Client) generateText(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}
	b, _ := json.Marshal(payload)

	url := c.baseURL + fmt.Sprintf(constants.GeminiGenerateContentPath, c.model) + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini error: %d %s", resp.StatusCode, string(body))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("gemini error: %s", out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// generateJSON sends one prompt that must produce a JSON document and
// decodes it into dst. Models occasionally wrap the document in markdown
// fences despite instructions; those are stripped before decoding.
func (c *Client) generateJSON(ctx context.Context, prompt string, dst interface{}) error {
	text, err := c.generateText(ctx, prompt+constants.GeminiJSONSuffix)
	if err != nil {
		return err
	}
	text = stripJSONFences(text)
	if err := json.Unmarshal([]byte(text), dst); err != nil {
		return fmt.Errorf("gemini returned unparseable JSON: %w", err)
	}
	return nil
}

func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// fill substitutes {{token}} placeholders in a template.
func fill(template string, tokens map[string]string) string {
	out := template
	for k, v := range tokens {
		out = strings.ReplaceAll(out, "{{"+k+"}}", v)
	}
	return out
}
