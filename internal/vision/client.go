package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/howardginsburg/ImageAIProcessor/internal/faults"
)

// ============================================================================
// Image Analysis HTTP Client - Celebrity Detection
// ============================================================================

// NewClient creates a new image analysis client.
func NewClient(baseURL string, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// DetectCelebrities analyzes the image behind imageRef and returns any
// recognized celebrities. An image with no celebrities, or one the service
// cannot run celebrity models against, yields an empty list rather than an
// error.
// POST /vision/v3.2/analyze?visualFeatures=Categories&details=Celebrities
func (c *Client) DetectCelebrities(ctx context.Context, imageRef string) ([]CelebrityMatch, error) {
	url := fmt.Sprintf("%s/vision/v3.2/analyze?visualFeatures=Categories&details=Celebrities&language=en&model-version=latest",
		c.BaseURL)

	payload, err := json.Marshal(analyzeRequest{URL: imageRef})
	if err != nil {
		return nil, fmt.Errorf("marshal analyze request: %v: %w", err, faults.ErrDetection)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create analyze request: %v: %w", err, faults.ErrDetection)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.APIKey)

	log.Tracef("DetectCelebrities: POST %s", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze image: %v: %w", err, faults.ErrDetection)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read analyze response: %v: %w", err, faults.ErrDetection)
	}

	if resp.StatusCode != http.StatusOK {
		var svcErr serviceError
		if json.Unmarshal(respBody, &svcErr) == nil && svcErr.Error.Code == "NotSupportedFeature" {
			log.Debugf("DetectCelebrities: feature unsupported for this image, treating as no celebrities")
			return []CelebrityMatch{}, nil
		}
		return nil, fmt.Errorf("analyze image: API error %d: %s: %w", resp.StatusCode, string(respBody), faults.ErrDetection)
	}

	var analysis analyzeResponse
	if err := json.Unmarshal(respBody, &analysis); err != nil {
		return nil, fmt.Errorf("parse analyze response: %v: %w", err, faults.ErrDecode)
	}

	celebrities := []CelebrityMatch{}
	for _, cat := range analysis.Categories {
		if cat.Detail == nil {
			continue
		}
		celebrities = append(celebrities, cat.Detail.Celebrities...)
	}

	log.Debugf("DetectCelebrities: found %d celebrit(ies)", len(celebrities))
	return celebrities, nil
}
