package config

// Config holds every setting the processor needs. Values are read once at
// startup from the environment; components receive the struct explicitly
// instead of looking up variables themselves.
//
// Compatible with "github.com/caarlos0/env".
type Config struct {
	// AI service (face detection, identity store, celebrity detection).
	AIServiceEndpoint string `env:"AZURE_AI_SERVICE_ENDPOINT"`
	AIServiceKey      string `env:"AZURE_AI_SERVICE_KEY"`

	// Language model endpoint for narrative and category generation.
	OpenAIEndpoint string `env:"AZURE_OPEN_AI_ENDPOINT"`
	OpenAIKey      string `env:"AZURE_OPEN_AI_KEY"`

	// Blob storage layout.
	StorageRoot       string `env:"STORAGE_ROOT" envDefault:"./data"`
	OriginalContainer string `env:"ORIGINAL_IMAGE_CONTAINER" envDefault:"original-images"`
	ResizedContainer  string `env:"RESIZED_IMAGE_CONTAINER" envDefault:"resized-images"`

	// Result sinks. Both are optional; leaving them unset disables the sink.
	ResultContainer string `env:"ORCHESTRATOR_RESULT_CONTAINER"`
	ResultDSN       string `env:"ORCHESTRATOR_RESULT_DSN"`

	// Tuning.
	SearchBatchSize int   `env:"SEARCH_BATCH_SIZE" envDefault:"10"`
	MaxImageBytes   int64 `env:"MAX_IMAGE_BYTES" envDefault:"6291456"`

	// HTTP server (serve mode only).
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
}
