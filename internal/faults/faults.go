package faults

import "errors"

// ============================================================================
// Error Taxonomy
// ============================================================================
//
// Every external-service failure is wrapped with one of these sentinels so
// callers can classify with errors.Is without depending on transport detail.
// ============================================================================

var (
	// ErrInvalidGeometry indicates a bounding box with negative dimensions
	// arrived from an upstream detector. Contract violation, not a transport
	// failure.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrDetection indicates a face or celebrity detection call failed.
	ErrDetection = errors.New("detection failed")

	// ErrIdentityStore indicates a search/create/rename/exemplar call against
	// the face identity store failed.
	ErrIdentityStore = errors.New("identity store failure")

	// ErrGeneration indicates a narrative or category generation call failed.
	ErrGeneration = errors.New("generation failed")

	// ErrResize indicates the image could not be normalized. Request-fatal:
	// no downstream stage can run without a normalized image.
	ErrResize = errors.New("resize failed")

	// ErrDecode indicates a provider response could not be decoded into its
	// typed struct.
	ErrDecode = errors.New("response decode failed")
)
