package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/howardginsburg/ImageAIProcessor/internal/config"
	"github.com/howardginsburg/ImageAIProcessor/internal/face"
	"github.com/howardginsburg/ImageAIProcessor/internal/metrics"
	"github.com/howardginsburg/ImageAIProcessor/internal/openai"
	"github.com/howardginsburg/ImageAIProcessor/internal/processor"
	"github.com/howardginsburg/ImageAIProcessor/internal/recognition"
	"github.com/howardginsburg/ImageAIProcessor/internal/report"
	"github.com/howardginsburg/ImageAIProcessor/internal/scaler"
	"github.com/howardginsburg/ImageAIProcessor/internal/storage"
	"github.com/howardginsburg/ImageAIProcessor/internal/vision"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "imageaiprocessor",
	Short: "Image analysis pipeline: face resolution, narrative and category generation",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// app bundles everything a command needs to process images.
type app struct {
	cfg     *config.Config
	store   storage.Store
	orch    *processor.Orchestrator
	metrics *metrics.Metrics
	close   func()
}

// newApp builds the full processing stack from the environment.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	store, err := storage.NewLocalStore(cfg.StorageRoot)
	if err != nil {
		return nil, fmt.Errorf("open storage root %s: %w", cfg.StorageRoot, err)
	}

	faceClient := face.NewClient(cfg.AIServiceEndpoint, cfg.AIServiceKey)
	visionClient := vision.NewClient(cfg.AIServiceEndpoint, cfg.AIServiceKey)
	openAIClient := openai.NewClient(cfg.OpenAIEndpoint, cfg.OpenAIKey)

	pipeline := recognition.NewPipeline(
		faceClient,
		visionClient,
		recognition.NewResolver(faceClient, cfg.SearchBatchSize),
		recognition.NewCorrelator(faceClient),
	)

	var sinks []report.Sink
	closeFn := func() {}
	if cfg.ResultContainer != "" {
		sinks = append(sinks, report.NewBlobSink(store, cfg.ResultContainer))
	}
	if cfg.ResultDSN != "" {
		pg, err := report.NewPostgresSink(ctx, cfg.ResultDSN)
		if err != nil {
			return nil, fmt.Errorf("open report database: %w", err)
		}
		sinks = append(sinks, pg)
		closeFn = func() { pg.Close(context.Background()) }
	}

	m := metrics.New()

	orch := processor.New(processor.Options{
		Resizer:          scaler.New(store, cfg.OriginalContainer, cfg.ResizedContainer, cfg.MaxImageBytes),
		Faces:            pipeline,
		Narrative:        openAIClient,
		Categories:       openAIClient,
		Store:            store,
		ResizedContainer: cfg.ResizedContainer,
		Sinks:            sinks,
		Metrics:          m,
	})

	return &app{cfg: cfg, store: store, orch: orch, metrics: m, close: closeFn}, nil
}
