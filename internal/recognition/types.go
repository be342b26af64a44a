package recognition

import (
	"context"

	"github.com/howardginsburg/ImageAIProcessor/internal/face"
	"github.com/howardginsburg/ImageAIProcessor/internal/geometry"
	"github.com/howardginsburg/ImageAIProcessor/internal/vision"
)

// UnknownName is the placeholder display name for persons with no celebrity
// attribution.
const UnknownName = "Unknown"

// FaceDetector finds faces in an image.
type FaceDetector interface {
	DetectFaces(ctx context.Context, imageRef string) ([]face.DetectedFace, error)
}

// CelebrityDetector finds recognized celebrities in an image.
type CelebrityDetector interface {
	DetectCelebrities(ctx context.Context, imageRef string) ([]vision.CelebrityMatch, error)
}

// IdentityStore is the persistent person registry: similarity search over
// known persons plus create/rename/add-exemplar writes.
type IdentityStore interface {
	FindSimilar(ctx context.Context, faceIDs []string) ([]face.SearchResult, error)
	CreatePerson(ctx context.Context, name string) (string, error)
	RenamePerson(ctx context.Context, personID string, name string) error
	AddFace(ctx context.Context, personID string, imageRef string, rect geometry.Rect) error
}

// PersonIdentity is a resolved identity for one detected face. Only the
// PersonID persists across requests; the display name is this request's
// view of it.
type PersonIdentity struct {
	PersonID    string
	DisplayName string
}

// Resolution pairs a detected face with its resolved identity.
type Resolution struct {
	Face   face.DetectedFace
	Person PersonIdentity
}

// ResolvedPerson is the per-face entry of the final report.
type ResolvedPerson struct {
	PersonID      string        `json:"person_id"`
	CelebrityName string        `json:"celebrity_name"`
	BoundingBox   geometry.Rect `json:"bounding_box"`
}
