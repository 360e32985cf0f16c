package audio

import (
	"context"
	"fmt"

	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/processor"
	"codeberg.org/snonux/mediakit/internal/registry"
)

// DefaultLoudnessTarget is the EBU R128 integrated loudness target in
// LUFS used when no target_level parameter is given.
const DefaultLoudnessTarget = -23.0

func init() {
	registry.MustRegister("audio_normalizer", processor.KindAudio, func(cfg *config.Config) processor.Processor {
		return &Normalizer{cfg: cfg}
	})
}

// Normalizer applies EBU R128 loudness normalization via the ffmpeg
// loudnorm filter. Parameters: target_level (LUFS, default -23).
type Normalizer struct {
	cfg *config.Config
}

func (n *Normalizer) Kind() processor.Kind { return processor.KindAudio }

func (n *Normalizer) ValidateInput(path string) error {
	return Validate(path, n.cfg.AudioFormats)
}

func (n *Normalizer) Process(ctx context.Context, input string, req processor.Request) (*processor.Output, error) {
	target, err := req.Params.Float("target_level", DefaultLoudnessTarget)
	if err != nil {
		return nil, err
	}
	if target > 0 {
		return nil, processor.Validationf("target_level is in LUFS and must not be positive, got %g", target)
	}

	filter := fmt.Sprintf("loudnorm=I=%g:TP=-1.5:LRA=11", target)
	out := outputPath(req.OutputPath, input, "")
	if err := runFFmpeg(ctx, input, out, []string{"-af", filter}); err != nil {
		return nil, err
	}
	return &processor.Output{Path: out}, nil
}
