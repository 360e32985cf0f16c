package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/model"
	"codeberg.org/snonux/mediakit/internal/processor"
	"codeberg.org/snonux/mediakit/internal/registry"
)

func init() {
	registry.MustRegister("audio_transcriber", processor.KindAudio, func(cfg *config.Config) processor.Processor {
		return NewTranscriber(cfg)
	})
}

// speechBackend is the lazily constructed resource behind the
// transcriber: a validated API client plus a circuit breaker guarding it.
type speechBackend struct {
	client  *openai.Client
	breaker *gobreaker.CircuitBreaker
}

// Transcriber converts speech to text using the OpenAI audio API and
// writes the transcript next to the input as a .txt file. The API client
// is constructed on first use and shared by all workers.
type Transcriber struct {
	cfg     *config.Config
	backend *model.Lazy[*speechBackend]
}

// NewTranscriber builds a transcriber whose backend stays unconstructed
// until the first Process call.
func NewTranscriber(cfg *config.Config) *Transcriber {
	return &Transcriber{
		cfg: cfg,
		backend: model.NewLazy(func(ctx context.Context) (*speechBackend, error) {
			if cfg.OpenAIKey == "" {
				return nil, fmt.Errorf("OpenAI API key is required (set OPENAI_API_KEY or openai.key)")
			}
			return &speechBackend{
				client: openai.NewClient(cfg.OpenAIKey),
				breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
					Name:        "openai-audio",
					MaxRequests: 3,
					Timeout:     30 * time.Second,
				}),
			}, nil
		}),
	}
}

func (t *Transcriber) Kind() processor.Kind { return processor.KindAudio }

func (t *Transcriber) ValidateInput(path string) error {
	return Validate(path, t.cfg.AudioFormats)
}

func (t *Transcriber) Process(ctx context.Context, input string, req processor.Request) (*processor.Output, error) {
	backend, err := t.backend.Get(ctx)
	if err != nil {
		return nil, err
	}

	m := req.Params.Get("model", t.cfg.OpenAIAudioModel)
	resp, err := backend.breaker.Execute(func() (any, error) {
		return backend.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    m,
			FilePath: input,
		})
	})
	if err != nil {
		return nil, processor.Processingf("transcription of %s failed: %v", input, err)
	}

	text := resp.(openai.AudioResponse).Text
	out := outputPath(req.OutputPath, input, ".txt")
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return nil, processor.Processingf("create output directory: %v", err)
	}
	if err := os.WriteFile(out, []byte(text+"\n"), 0o644); err != nil {
		return nil, processor.Processingf("write transcript for %s: %v", input, err)
	}
	return &processor.Output{Path: out, Meta: map[string]any{"characters": len(text)}}, nil
}

// BackendState exposes the lazy backend's lifecycle state, mainly for
// diagnostics and tests.
func (t *Transcriber) BackendState() model.State {
	return t.backend.State()
}
