package face

import (
	"net/http"

	"github.com/howardginsburg/ImageAIProcessor/internal/geometry"
)

// Client handles API calls to the face detection and identity service.
type Client struct {
	BaseURL    string
	APIKey     string
	httpClient *http.Client
}

// DetectedFace is one face returned by a detection call. The FaceID is only
// valid within the request that produced it.
type DetectedFace struct {
	FaceID    string        `json:"faceId"`
	Rectangle geometry.Rect `json:"faceRectangle"`
}

// Candidate is one person match for a searched face, with candidates
// pre-sorted by the service in descending similarity.
type Candidate struct {
	PersonID   string  `json:"personId"`
	Confidence float64 `json:"confidence"`
}

// SearchResult holds the candidates found for a single searched face.
type SearchResult struct {
	FaceID     string      `json:"faceId"`
	Candidates []Candidate `json:"candidates"`
}

// detectRequest is the body for detection and analysis calls.
type detectRequest struct {
	URL string `json:"url"`
}

// searchRequest is the body for a similarity search across all persons.
type searchRequest struct {
	FaceIDs   []string `json:"faceIds"`
	PersonIDs []string `json:"personIds"`
}

// createPersonRequest is the body for person creation and rename.
type createPersonRequest struct {
	Name string `json:"name"`
}

// createPersonResponse is the response from person creation.
type createPersonResponse struct {
	PersonID string `json:"personId"`
}
