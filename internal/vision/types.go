package vision

import (
	"net/http"

	"github.com/howardginsburg/ImageAIProcessor/internal/geometry"
)

// Client handles API calls to the image analysis service.
type Client struct {
	BaseURL    string
	APIKey     string
	httpClient *http.Client
}

// CelebrityMatch is one recognized celebrity with the rectangle the analysis
// service computed for their face. Celebrity rectangles come from a
// different model than face-detection rectangles, so they rarely line up
// exactly with detected faces.
type CelebrityMatch struct {
	Name       string        `json:"name"`
	Confidence float64       `json:"confidence"`
	Rectangle  geometry.Rect `json:"faceRectangle"`
}

// analyzeRequest is the body for an analysis call.
type analyzeRequest struct {
	URL string `json:"url"`
}

// analyzeResponse is the typed shape of the analysis result. Only the
// celebrity detail is consumed; categories without celebrity detail are
// normal and simply contribute nothing.
type analyzeResponse struct {
	Categories []category `json:"categories"`
}

type category struct {
	Name   string          `json:"name"`
	Score  float64         `json:"score"`
	Detail *categoryDetail `json:"detail,omitempty"`
}

type categoryDetail struct {
	Celebrities []CelebrityMatch `json:"celebrities"`
}

// serviceError is the typed error body the analysis service returns.
type serviceError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
