package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"scanguard/internal/config"
	"scanguard/pkg/logger"
)

// Advisor provides access to large language model APIs for risk assessments.
// The model is advisory only: callers parse the free-text reply defensively
// and degrade to heuristics when the advisor is unavailable.
type Advisor struct {
	httpClient *http.Client
	logger     *logger.Logger
	config     config.AdvisorConfig
}

const systemPrompt = `You are a security analyst assisting a browser security dashboard.
Assess the risk of the subject described by the user.

Respond with a risk score from 0 to 100 as the FIRST thing in your reply,
followed by a short explanation (2-3 sentences) a non-technical user can
understand. Example: "72 Several antivirus vendors flag this host."

Do not use markdown, headings, or lists. Plain text only.`

// NewAdvisor creates a new advisor client
func NewAdvisor(cfg config.AdvisorConfig, log *logger.Logger) *Advisor {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.3 // low temperature for factual analysis
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 512
	}
	if cfg.Model == "" {
		if cfg.Provider == "claude" {
			cfg.Model = "claude-3-5-haiku-20241022"
		} else {
			cfg.Model = "gpt-4o-mini"
		}
	}

	return &Advisor{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: log.WithComponent("advisor"),
		config: cfg,
	}
}

// Available reports whether the advisor can be called at all
func (a *Advisor) Available() bool {
	return a.config.APIKey != ""
}

// Assess sends a prompt to the configured provider and returns the raw
// free-text reply.
func (a *Advisor) Assess(ctx context.Context, prompt string) (string, error) {
	if !a.Available() {
		return "", fmt.Errorf("advisor API key not configured")
	}

	start := time.Now()

	var reply string
	var err error

	switch a.config.Provider {
	case "claude":
		reply, err = a.callClaude(ctx, prompt)
	case "openai":
		reply, err = a.callOpenAI(ctx, prompt)
	default:
		return "", fmt.Errorf("unsupported advisor provider: %s", a.config.Provider)
	}

	if err != nil {
		return "", err
	}

	a.logger.Debug().
		Str("provider", a.config.Provider).
		Str("model", a.config.Model).
		Dur("duration", time.Since(start)).
		Msg("advisor assessment completed")

	return reply, nil
}

// callClaude makes a request to the Anthropic messages API
func (a *Advisor) callClaude(ctx context.Context, prompt string) (string, error) {
	url := "https://api.anthropic.com/v1/messages"

	reqBody := map[string]interface{}{
		"model":       a.config.Model,
		"max_tokens":  a.config.MaxTokens,
		"temperature": a.config.Temperature,
		"system":      systemPrompt,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.config.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Claude API error %d: %s", resp.StatusCode, string(body))
	}

	var claudeResp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}

	if err := json.Unmarshal(body, &claudeResp); err != nil {
		return "", err
	}

	var content string
	for _, c := range claudeResp.Content {
		if c.Type == "text" {
			content += c.Text
		}
	}

	return content, nil
}

// callOpenAI makes a request to the OpenAI chat completions API
func (a *Advisor) callOpenAI(ctx context.Context, prompt string) (string, error) {
	url := "https://api.openai.com/v1/chat/completions"

	reqBody := map[string]interface{}{
		"model":       a.config.Model,
		"max_tokens":  a.config.MaxTokens,
		"temperature": a.config.Temperature,
		"messages": []map[string]interface{}{
			{
				"role":    "system",
				"content": systemPrompt,
			},
			{
				"role":    "user",
				"content": prompt,
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI API error %d: %s", resp.StatusCode, string(body))
	}

	var openAIResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return openAIResp.Choices[0].Message.Content, nil
}
