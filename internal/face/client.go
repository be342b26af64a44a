package face

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
	"github.com/howardginsburg/ImageAIProcessor/internal/geometry"
)

// ============================================================================
// Face Service HTTP Client - Detection and Identity Store Operations
// ============================================================================

// APIVersion pins the face service API version for every call.
const APIVersion = "v1.1-preview.1"

// NewClient creates a new face service client.
func NewClient(baseURL string, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// DetectFaces detects faces in the image behind imageRef.
// POST /face/{version}/detect
func (c *Client) DetectFaces(ctx context.Context, imageRef string) ([]DetectedFace, error) {
	url := fmt.Sprintf("%s/face/%s/detect?returnFaceId=true&recognitionModel=recognition_04&detectionModel=detection_03",
		c.BaseURL, APIVersion)

	var faces []DetectedFace
	if err := c.postJSON(ctx, url, detectRequest{URL: imageRef}, &faces); err != nil {
		return nil, fmt.Errorf("detect faces: %v: %w", err, faults.ErrDetection)
	}

	log.Debugf("DetectFaces: found %d face(s)", len(faces))
	return faces, nil
}

// FindSimilar searches all known persons for faces similar to the given face
// IDs. The caller is responsible for respecting the service batch limit;
// this method submits the batch as-is.
// POST /face/{version}/identify
func (c *Client) FindSimilar(ctx context.Context, faceIDs []string) ([]SearchResult, error) {
	url := fmt.Sprintf("%s/face/%s/identify", c.BaseURL, APIVersion)

	body := searchRequest{
		FaceIDs:   faceIDs,
		PersonIDs: []string{"*"},
	}

	var results []SearchResult
	if err := c.postJSON(ctx, url, body, &results); err != nil {
		return nil, fmt.Errorf("find similar faces: %v: %w", err, faults.ErrIdentityStore)
	}

	log.Debugf("FindSimilar: got results for %d of %d face(s)", len(results), len(faceIDs))
	return results, nil
}

// CreatePerson creates a new person record and returns its ID.
// POST /face/{version}/persons
func (c *Client) CreatePerson(ctx context.Context, name string) (string, error) {
	url := fmt.Sprintf("%s/face/%s/persons", c.BaseURL, APIVersion)

	var created createPersonResponse
	if err := c.postJSON(ctx, url, createPersonRequest{Name: name}, &created); err != nil {
		return "", fmt.Errorf("create person: %v: %w", err, faults.ErrIdentityStore)
	}

	log.Debugf("CreatePerson: created person %s", created.PersonID)
	return created.PersonID, nil
}

// RenamePerson updates the display name of an existing person.
// PATCH /face/{version}/persons/{personId}
func (c *Client) RenamePerson(ctx context.Context, personID string, name string) error {
	url := fmt.Sprintf("%s/face/%s/persons/%s", c.BaseURL, APIVersion, personID)

	payload, err := json.Marshal(createPersonRequest{Name: name})
	if err != nil {
		return fmt.Errorf("marshal rename request: %v: %w", err, faults.ErrIdentityStore)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create rename request: %v: %w", err, faults.ErrIdentityStore)
	}
	c.setHeaders(req)

	log.Tracef("RenamePerson: PATCH %s", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rename person: %v: %w", err, faults.ErrIdentityStore)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("rename person: API error %d: %s: %w", resp.StatusCode, string(respBody), faults.ErrIdentityStore)
	}

	log.Infof("RenamePerson: person %s renamed to '%s'", personID, name)
	return nil
}

// AddFace registers the face inside rect as a persisted exemplar of the
// person, so future similarity searches match them more reliably.
// POST /face/{version}/persons/{personId}/recognitionModels/Recognition_04/persistedFaces
func (c *Client) AddFace(ctx context.Context, personID string, imageRef string, rect geometry.Rect) error {
	url := fmt.Sprintf("%s/face/%s/persons/%s/recognitionModels/Recognition_04/persistedFaces?targetFace=%d,%d,%d,%d&detectionModel=Detection_03",
		c.BaseURL, APIVersion, personID, rect.Left, rect.Top, rect.Width, rect.Height)

	var ignored json.RawMessage
	if err := c.postJSON(ctx, url, detectRequest{URL: imageRef}, &ignored); err != nil {
		return fmt.Errorf("add face to person %s: %v: %w", personID, err, faults.ErrIdentityStore)
	}

	log.Debugf("AddFace: registered exemplar for person %s", personID)
	return nil
}

// postJSON sends a JSON POST and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, url string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	log.Tracef("Face service: POST %s", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %v: %w", err, faults.ErrDecode)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.APIKey)
}
