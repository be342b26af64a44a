package recognition

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/howardginsburg/ImageAIProcessor/internal/faults"
	"github.com/howardginsburg/ImageAIProcessor/internal/geometry"
	"github.com/howardginsburg/ImageAIProcessor/internal/vision"
)

// Correlator decides whether a resolved person is a recognized celebrity by
// intersecting the face rectangle with celebrity rectangles.
type Correlator struct {
	store IdentityStore
}

// NewCorrelator creates a Correlator that persists celebrity names through
// the given identity store.
func NewCorrelator(store IdentityStore) *Correlator {
	return &Correlator{store: store}
}

// Correlate returns the display name for the person behind faceRect.
// Celebrities are checked in the order the detection service returned them;
// the first one whose rectangle overlaps wins and the person record is
// renamed to that celebrity. Face and celebrity rectangles come from
// independent model calls, so any overlap counts as correlation evidence.
//
// Two outcomes surface as a non-nil error alongside a usable name:
//   - faults.ErrInvalidGeometry: a malformed rectangle aborted correlation
//     for this face; the returned name is UnknownName.
//   - faults.ErrIdentityStore: the rename write failed; the returned name is
//     still the celebrity's, since this request's result is already decided.
func (c *Correlator) Correlate(ctx context.Context, faceRect geometry.Rect, celebrities []vision.CelebrityMatch, person PersonIdentity) (string, error) {
	for _, celebrity := range celebrities {
		overlap, err := geometry.Overlaps(celebrity.Rectangle, faceRect)
		if err != nil {
			return UnknownName, fmt.Errorf("correlate against %s: %w", celebrity.Name, err)
		}
		if !overlap {
			continue
		}

		log.Debugf("Correlate: person %s overlaps celebrity '%s'", person.PersonID, celebrity.Name)

		if person.PersonID != "" {
			if err := c.store.RenamePerson(ctx, person.PersonID, celebrity.Name); err != nil {
				// The in-memory result keeps the celebrity name; only the
				// persisted record is stale.
				log.Warnf("Correlate: failed to rename person %s to '%s': %v", person.PersonID, celebrity.Name, err)
				if !errors.Is(err, faults.ErrIdentityStore) {
					err = fmt.Errorf("%v: %w", err, faults.ErrIdentityStore)
				}
				return celebrity.Name, err
			}
		}

		return celebrity.Name, nil
	}

	return UnknownName, nil
}
