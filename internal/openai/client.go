package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/howardginsburg/ImageAIProcessor/internal/faults"
)

// ============================================================================
// Language Model HTTP Client - Narrative and Category Generation
// ============================================================================

const (
	narrativeSystemPrompt = "You are a helpful assistant that looks at images and describes the image(s) in as much detail as possible. Don't use any apostrophe characters (like this ') in your response or possessive nouns (like the man's) in your response."
	narrativeUserPrompt   = "Describe the scene in this picture with as much detail as possible. Don't use any apostrophe characters (like this ') in your response or possessive nouns (like the man's) in your response. Review your output, and if there are any apostrophe characters (like this ') replace them with double quotes."

	categorySystemPrompt = "You are a helpful assistant that looks at images and suggests categories based on image recognition.  You must only recommend (Lifestyle, Civil Rights, Entertainment, Sports) as potential categories.  If you are not sure, don't recommend anything.  Your response should always text in a comma separated list."
	categoryUserPrompt   = "Please suggest categories from for the image provided."
)

// NewClient creates a new language model client. The endpoint is the full
// chat-completions URL including deployment and api-version.
func NewClient(endpoint string, apiKey string) *Client {
	return &Client{
		Endpoint: endpoint,
		APIKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// GenerateNarrative asks the model for a free-form scene description of the
// image behind imageRef.
func (c *Client) GenerateNarrative(ctx context.Context, imageRef string) (string, error) {
	narrative, err := c.complete(ctx, narrativeSystemPrompt, narrativeUserPrompt, imageRef)
	if err != nil {
		return "", fmt.Errorf("generate narrative: %w", err)
	}

	log.Debugf("GenerateNarrative: %d characters", len(narrative))
	return narrative, nil
}

// GenerateCategories asks the model for category suggestions and splits the
// comma-separated answer into a trimmed list. An unsure model may answer
// with nothing, which yields an empty list.
func (c *Client) GenerateCategories(ctx context.Context, imageRef string) ([]string, error) {
	answer, err := c.complete(ctx, categorySystemPrompt, categoryUserPrompt, imageRef)
	if err != nil {
		return nil, fmt.Errorf("generate categories: %w", err)
	}

	categories := []string{}
	for _, category := range strings.Split(answer, ",") {
		if trimmed := strings.TrimSpace(category); trimmed != "" {
			categories = append(categories, trimmed)
		}
	}

	log.Debugf("GenerateCategories: %v", categories)
	return categories, nil
}

// complete sends one vision chat-completion request and returns the first
// choice's content.
func (c *Client) complete(ctx context.Context, systemPrompt string, userPrompt string, imageRef string) (string, error) {
	body := chatRequest{
		Messages: []message{
			{
				Role:    "system",
				Content: []contentPart{{Type: "text", Text: systemPrompt}},
			},
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: userPrompt},
					{Type: "image_url", ImageURL: &imageURL{URL: imageRef}},
				},
			},
		},
		Temperature: 0.7,
		TopP:        0.95,
		MaxTokens:   2000,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %v: %w", err, faults.ErrGeneration)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create completion request: %v: %w", err, faults.ErrGeneration)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.APIKey)

	log.Tracef("Language model: POST %s", c.Endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send completion request: %v: %w", err, faults.ErrGeneration)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %v: %w", err, faults.ErrGeneration)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s: %w", resp.StatusCode, string(respBody), faults.ErrGeneration)
	}

	var completion chatResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("parse completion response: %v: %w", err, faults.ErrDecode)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices: %w", faults.ErrGeneration)
	}

	return completion.Choices[0].Message.Content, nil
}
