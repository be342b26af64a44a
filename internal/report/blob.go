package report

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/howardginsburg/ImageAIProcessor/internal/storage"
)

// BlobSink writes the report as a JSON blob named after the source image's
// stem.
type BlobSink struct {
	store     storage.Store
	container string
}

// NewBlobSink creates a sink writing into the given container.
func NewBlobSink(store storage.Store, container string) *BlobSink {
	return &BlobSink{store: store, container: container}
}

// Persist marshals the report and writes <stem>.json.
func (s *BlobSink) Persist(ctx context.Context, rep *Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report for %s: %w", rep.Filename, err)
	}

	name := strings.TrimSuffix(rep.Filename, filepath.Ext(rep.Filename)) + ".json"
	if err := s.store.Put(ctx, s.container, name, data); err != nil {
		return fmt.Errorf("write report %s: %w", name, err)
	}

	log.Infof("Report persisted to %s/%s", s.container, name)
	return nil
}
