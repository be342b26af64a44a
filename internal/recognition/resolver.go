package recognition

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/howardginsburg/ImageAIProcessor/internal/face"
)

// DefaultSearchBatchSize bounds how many face IDs go into one similarity
// search call, matching the search provider's batch limit.
const DefaultSearchBatchSize = 10

// Resolver maps detected faces to stable person identities, creating new
// persons for faces nobody has seen before.
//
// Two concurrent requests that both see the same unseen person can each
// decide "no candidate" and create duplicate identities; the store offers no
// claim step to close that race, so duplicates are accepted here.
type Resolver struct {
	store     IdentityStore
	batchSize int
}

// NewResolver creates a Resolver. batchSize values below 1 fall back to
// DefaultSearchBatchSize.
func NewResolver(store IdentityStore, batchSize int) *Resolver {
	if batchSize < 1 {
		batchSize = DefaultSearchBatchSize
	}
	return &Resolver{store: store, batchSize: batchSize}
}

// Resolve assigns each detected face a person identity. Search requests are
// chunked to the batch limit; results are re-keyed by face ID because the
// service does not guarantee response order within or across chunks. Faces
// with no candidate get a brand-new person. Every resolved face is then
// registered as an exemplar of its person, best-effort: a failed exemplar
// write degrades future matching but never invalidates the identity already
// chosen.
//
// The returned slice preserves the input face order.
func (r *Resolver) Resolve(ctx context.Context, faces []face.DetectedFace, imageRef string) ([]Resolution, error) {
	if len(faces) == 0 {
		return []Resolution{}, nil
	}

	faceIDs := make([]string, len(faces))
	for i, f := range faces {
		faceIDs[i] = f.FaceID
	}

	results, err := r.searchChunked(ctx, faceIDs)
	if err != nil {
		return nil, err
	}

	byFaceID := make(map[string]face.SearchResult, len(results))
	for _, result := range results {
		byFaceID[result.FaceID] = result
	}

	resolutions := make([]Resolution, 0, len(faces))
	for _, f := range faces {
		person := PersonIdentity{DisplayName: UnknownName}

		if candidates := byFaceID[f.FaceID].Candidates; len(candidates) > 0 {
			// Candidates arrive pre-sorted by similarity; first wins.
			person.PersonID = candidates[0].PersonID
			log.Debugf("Resolve: face %s matched person %s", f.FaceID, person.PersonID)
		} else {
			personID, err := r.store.CreatePerson(ctx, UnknownName)
			if err != nil {
				// The face stays in the output with a degraded record.
				log.Warnf("Resolve: failed to create person for face %s: %v", f.FaceID, err)
			} else {
				person.PersonID = personID
				log.Debugf("Resolve: no candidate for face %s, created person %s", f.FaceID, personID)
			}
		}

		if person.PersonID != "" {
			if err := r.store.AddFace(ctx, person.PersonID, imageRef, f.Rectangle); err != nil {
				log.Warnf("Resolve: failed to add exemplar for person %s: %v", person.PersonID, err)
			}
		}

		resolutions = append(resolutions, Resolution{Face: f, Person: person})
	}

	return resolutions, nil
}

// searchChunked splits faceIDs into batch-limit chunks, issues one search
// per chunk, and concatenates the results.
func (r *Resolver) searchChunked(ctx context.Context, faceIDs []string) ([]face.SearchResult, error) {
	results := make([]face.SearchResult, 0, len(faceIDs))
	for start := 0; start < len(faceIDs); start += r.batchSize {
		end := min(start+r.batchSize, len(faceIDs))

		chunk, err := r.store.FindSimilar(ctx, faceIDs[start:end])
		if err != nil {
			return nil, fmt.Errorf("similarity search for faces %d-%d: %w", start, end-1, err)
		}
		results = append(results, chunk...)
	}
	return results, nil
}
