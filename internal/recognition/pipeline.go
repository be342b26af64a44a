package recognition

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/howardginsburg/ImageAIProcessor/internal/face"
	"github.com/howardginsburg/ImageAIProcessor/internal/faults"
	"github.com/howardginsburg/ImageAIProcessor/internal/vision"
)

// Pipeline runs the full face flow for one image: detect faces and
// celebrities, resolve identities, correlate each face against the celebrity
// detections, and emit one ResolvedPerson per detected face.
type Pipeline struct {
	faces       FaceDetector
	celebrities CelebrityDetector
	resolver    *Resolver
	correlator  *Correlator
}

// NewPipeline assembles the face resolution pipeline.
func NewPipeline(faces FaceDetector, celebrities CelebrityDetector, resolver *Resolver, correlator *Correlator) *Pipeline {
	return &Pipeline{
		faces:       faces,
		celebrities: celebrities,
		resolver:    resolver,
		correlator:  correlator,
	}
}

// Process resolves every face in the image to a person. Face and celebrity
// detection have no data dependency and run concurrently. A celebrity
// detection failure degrades the result to "no celebrities" rather than
// failing the stage; a face detection or identity resolution failure fails
// the stage. Zero detected faces is a normal empty result.
//
// The second return value lists partial failures: writes that failed after
// the per-face result was already decided, such as a celebrity rename that
// did not persist. They accompany a usable person list and a nil error.
//
// Output order matches face-detection order.
func (p *Pipeline) Process(ctx context.Context, imageRef string) ([]ResolvedPerson, []string, error) {
	log.Infof("Processing faces for image: %s", imageRef)

	var (
		wg          sync.WaitGroup
		detected    []face.DetectedFace
		detectErr   error
		celebrities []vision.CelebrityMatch
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		detected, detectErr = p.faces.DetectFaces(ctx, imageRef)
	}()
	go func() {
		defer wg.Done()
		var err error
		celebrities, err = p.celebrities.DetectCelebrities(ctx, imageRef)
		if err != nil {
			log.Warnf("Celebrity detection failed, continuing without celebrities: %v", err)
			celebrities = nil
		}
	}()
	wg.Wait()

	if detectErr != nil {
		return nil, nil, fmt.Errorf("face detection: %w", detectErr)
	}
	if len(detected) == 0 {
		log.Debugf("No faces detected in %s", imageRef)
		return []ResolvedPerson{}, nil, nil
	}

	resolutions, err := p.resolver.Resolve(ctx, detected, imageRef)
	if err != nil {
		return nil, nil, fmt.Errorf("identity resolution: %w", err)
	}

	var partial []string
	persons := make([]ResolvedPerson, 0, len(resolutions))
	for _, resolution := range resolutions {
		name, err := p.correlator.Correlate(ctx, resolution.Face.Rectangle, celebrities, resolution.Person)
		if err != nil {
			switch {
			case errors.Is(err, faults.ErrInvalidGeometry):
				log.Errorf("Correlation aborted for face %s: %v", resolution.Face.FaceID, err)
			case errors.Is(err, faults.ErrIdentityStore):
				// The name already reflects this request's result; only the
				// persisted record is stale, so surface it as partial.
				partial = append(partial, fmt.Sprintf("rename of person %s to '%s' failed: %v", resolution.Person.PersonID, name, err))
			}
		}

		persons = append(persons, ResolvedPerson{
			PersonID:      resolution.Person.PersonID,
			CelebrityName: name,
			BoundingBox:   resolution.Face.Rectangle,
		})
	}

	log.Infof("Resolved %d person(s) in %s", len(persons), imageRef)
	return persons, partial, nil
}
