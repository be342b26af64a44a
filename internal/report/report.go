package report

import (
	"context"

	"github.com/howardginsburg/ImageAIProcessor/internal/recognition"
)

// Report is the terminal artifact of one processing request: created once,
// written once, immutable after assembly. Field names match the result
// document consumers already parse.
type Report struct {
	Filename        string                       `json:"filename"`
	ResizedFilename string                       `json:"resizedfilename"`
	FaceDetails     []recognition.ResolvedPerson `json:"facedetails"`
	Narrative       string                       `json:"ainarrative"`
	Categories      []string                     `json:"categories"`
	Metrics         map[string]float64           `json:"metrics"`
	Errors          map[string]string            `json:"errors,omitempty"`
}

// Sink persists a finished report. Persistence is optional; a request with
// no configured sinks simply returns the report to the caller.
type Sink interface {
	Persist(ctx context.Context, rep *Report) error
}
