package processor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/howardginsburg/ImageAIProcessor/internal/metrics"
	"github.com/howardginsburg/ImageAIProcessor/internal/recognition"
	"github.com/howardginsburg/ImageAIProcessor/internal/report"
	"github.com/howardginsburg/ImageAIProcessor/internal/storage"
)

// Stage names, which double as metric keys in the report.
const (
	StageResize     = "image_resize"
	StageFaces      = "facial_recognition"
	StageNarrative  = "ai_narrative"
	StageCategories = "ai_categories"
	MetricTotalTime = "total_time"
)

// Resizer normalizes an uploaded image and returns the resized blob name.
type Resizer interface {
	Resize(ctx context.Context, filename string) (string, error)
}

// FaceResolver produces the resolved person list for an image, plus any
// partial failures that degraded persisted state without changing the list.
type FaceResolver interface {
	Process(ctx context.Context, imageRef string) ([]recognition.ResolvedPerson, []string, error)
}

// NarrativeGenerator produces a scene description for an image.
type NarrativeGenerator interface {
	GenerateNarrative(ctx context.Context, imageRef string) (string, error)
}

// CategoryGenerator produces category suggestions for an image.
type CategoryGenerator interface {
	GenerateCategories(ctx context.Context, imageRef string) ([]string, error)
}

// Orchestrator drives one end-to-end request: normalize the image, run face
// resolution, narrative generation and category generation concurrently,
// and assemble the timed report.
type Orchestrator struct {
	resizer          Resizer
	faces            FaceResolver
	narrative        NarrativeGenerator
	categories       CategoryGenerator
	store            storage.Store
	resizedContainer string
	sinks            []report.Sink
	metrics          *metrics.Metrics
}

// Options collects the orchestrator's collaborators.
type Options struct {
	Resizer          Resizer
	Faces            FaceResolver
	Narrative        NarrativeGenerator
	Categories       CategoryGenerator
	Store            storage.Store
	ResizedContainer string
	Sinks            []report.Sink
	Metrics          *metrics.Metrics
}

// New creates an Orchestrator.
func New(opts Options) *Orchestrator {
	return &Orchestrator{
		resizer:          opts.Resizer,
		faces:            opts.Faces,
		narrative:        opts.Narrative,
		categories:       opts.Categories,
		store:            opts.Store,
		resizedContainer: opts.ResizedContainer,
		sinks:            opts.Sinks,
		metrics:          opts.Metrics,
	}
}

// Process runs one request. A resize failure is fatal; any of the three
// enrichment stages failing degrades the report instead of aborting it, with
// the failure recorded under its stage name. All launched stages are awaited
// even when a sibling has already failed.
func (o *Orchestrator) Process(ctx context.Context, filename string) (*report.Report, error) {
	log.Infof("Processing file: %s", filename)
	o.metrics.RequestStarted()
	start := time.Now()

	rep := &report.Report{
		Filename: filename,
		Metrics:  map[string]float64{},
		Errors:   map[string]string{},
	}

	resizeStart := time.Now()
	resized, err := o.resizer.Resize(ctx, filename)
	elapsed := time.Since(resizeStart).Seconds()
	rep.Metrics[StageResize] = elapsed
	o.metrics.ObserveStage(StageResize, elapsed)
	if err != nil {
		o.metrics.StageFailed(StageResize)
		o.metrics.RequestFailed()
		return nil, fmt.Errorf("resize %s: %w", filename, err)
	}
	rep.ResizedFilename = resized
	log.Infof("Image resizing completed in %.2f seconds", elapsed)

	imageRef, err := o.store.URL(o.resizedContainer, resized)
	if err != nil {
		o.metrics.RequestFailed()
		return nil, fmt.Errorf("reference resized image %s: %w", resized, err)
	}

	o.runStages(ctx, imageRef, rep)

	rep.Metrics[MetricTotalTime] = time.Since(start).Seconds()
	if len(rep.Errors) == 0 {
		rep.Errors = nil
	}
	log.Infof("Processing completed in %.2f seconds", rep.Metrics[MetricTotalTime])

	o.persist(ctx, rep)

	return rep, nil
}

// stageResult is one stage's private accounting slot. Each goroutine writes
// exactly one slot; the shared report maps are only merged after the join.
type stageResult struct {
	stage   string
	seconds float64
	err     error
}

// runStages fans out the three independent enrichment stages and joins them.
// Each stage writes only its own report field and result slot; the report's
// metric and error maps are merged on the calling goroutine after all stages
// have completed.
func (o *Orchestrator) runStages(ctx context.Context, imageRef string, rep *report.Report) {
	var (
		wg      sync.WaitGroup
		results [3]stageResult
		partial []string
	)

	run := func(slot int, stage string, fn func() error) {
		defer wg.Done()
		stageStart := time.Now()
		err := fn()
		results[slot] = stageResult{
			stage:   stage,
			seconds: time.Since(stageStart).Seconds(),
			err:     err,
		}
	}

	wg.Add(3)
	go run(0, StageFaces, func() error {
		persons, renameFailures, err := o.faces.Process(ctx, imageRef)
		if err != nil {
			return err
		}
		rep.FaceDetails = persons
		partial = renameFailures
		return nil
	})
	go run(1, StageNarrative, func() error {
		narrative, err := o.narrative.GenerateNarrative(ctx, imageRef)
		if err != nil {
			return err
		}
		rep.Narrative = narrative
		return nil
	})
	go run(2, StageCategories, func() error {
		categories, err := o.categories.GenerateCategories(ctx, imageRef)
		if err != nil {
			return err
		}
		rep.Categories = categories
		return nil
	})
	wg.Wait()

	for _, res := range results {
		rep.Metrics[res.stage] = res.seconds
		o.metrics.ObserveStage(res.stage, res.seconds)
		if res.err != nil {
			o.metrics.StageFailed(res.stage)
			rep.Errors[res.stage] = res.err.Error()
			log.Errorf("Stage %s failed after %.2f seconds: %v", res.stage, res.seconds, res.err)
			continue
		}
		log.Infof("Stage %s completed in %.2f seconds", res.stage, res.seconds)
	}

	if len(partial) > 0 {
		rep.Errors[StageFaces+"_partial"] = strings.Join(partial, "; ")
	}
}

// persist hands the finished report to every configured sink. Sink failures
// are logged but never fail the request; the caller still gets the report.
func (o *Orchestrator) persist(ctx context.Context, rep *report.Report) {
	for _, sink := range o.sinks {
		if err := sink.Persist(ctx, rep); err != nil {
			log.Warnf("Failed to persist report for %s: %v", rep.Filename, err)
		}
	}
}
