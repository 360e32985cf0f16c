package text

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/model"
	"codeberg.org/snonux/mediakit/internal/processor"
	"codeberg.org/snonux/mediakit/internal/registry"
)

func init() {
	registry.MustRegister("text_translator", processor.KindText, func(cfg *config.Config) processor.Processor {
		return NewTranslator(cfg)
	})
}

type chatBackend struct {
	client  *openai.Client
	breaker *gobreaker.CircuitBreaker
}

// Translator translates a text file line by line with an OpenAI chat
// model, preserving line boundaries. Parameters: target_lang (default
// "English"), model (default from configuration). The API client is
// constructed on first use and shared by all workers.
type Translator struct {
	cfg     *config.Config
	backend *model.Lazy[*chatBackend]
}

// NewTranslator builds a translator whose backend stays unconstructed
// until the first Process call.
func NewTranslator(cfg *config.Config) *Translator {
	return &Translator{
		cfg: cfg,
		backend: model.NewLazy(func(ctx context.Context) (*chatBackend, error) {
			if cfg.OpenAIKey == "" {
				return nil, fmt.Errorf("OpenAI API key is required (set OPENAI_API_KEY or openai.key)")
			}
			return &chatBackend{
				client: openai.NewClient(cfg.OpenAIKey),
				breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
					Name:        "openai-chat",
					MaxRequests: 3,
					Timeout:     30 * time.Second,
				}),
			}, nil
		}),
	}
}

func (t *Translator) Kind() processor.Kind { return processor.KindText }

func (t *Translator) ValidateInput(path string) error {
	return Validate(path, t.cfg.TextFormats)
}

func (t *Translator) Process(ctx context.Context, input string, req processor.Request) (*processor.Output, error) {
	backend, err := t.backend.Get(ctx)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, processor.Processingf("read %s: %v", input, err)
	}

	targetLang := req.Params.Get("target_lang", "English")
	chatModel := req.Params.Get("model", t.cfg.OpenAIChatModel)

	prompt := fmt.Sprintf(
		"Translate the following text to %s. Keep one translated line per input line and respond with the translation only.\n\n%s",
		targetLang, string(data),
	)
	resp, err := backend.breaker.Execute(func() (any, error) {
		return backend.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			Temperature: 0.3,
		})
	})
	if err != nil {
		return nil, processor.Processingf("translation of %s failed: %v", input, err)
	}

	completion := resp.(openai.ChatCompletionResponse)
	if len(completion.Choices) == 0 {
		return nil, processor.Processingf("no translation returned for %s", input)
	}
	translated := strings.TrimSpace(completion.Choices[0].Message.Content)

	out := outputPath(req.OutputPath, input, ".translated")
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return nil, processor.Processingf("create output directory: %v", err)
	}
	if err := os.WriteFile(out, []byte(translated+"\n"), 0o644); err != nil {
		return nil, processor.Processingf("write translation for %s: %v", input, err)
	}
	return &processor.Output{Path: out, Meta: map[string]any{"target_lang": targetLang}}, nil
}

// BackendState exposes the lazy backend's lifecycle state, mainly for
// diagnostics and tests.
func (t *Translator) BackendState() model.State {
	return t.backend.State()
}
