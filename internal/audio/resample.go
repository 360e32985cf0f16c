package audio

import (
	"context"
	"strconv"

	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/processor"
	"codeberg.org/snonux/mediakit/internal/registry"
)

// DefaultSampleRate is used when no target_sr parameter is given.
const DefaultSampleRate = 22050

func init() {
	registry.MustRegister("audio_resampler", processor.KindAudio, func(cfg *config.Config) processor.Processor {
		return &Resampler{cfg: cfg}
	})
}

// Resampler resamples audio to a target sample rate via ffmpeg.
// Parameters: target_sr (positive integer, default 22050).
type Resampler struct {
	cfg *config.Config
}

func (r *Resampler) Kind() processor.Kind { return processor.KindAudio }

func (r *Resampler) ValidateInput(path string) error {
	return Validate(path, r.cfg.AudioFormats)
}

func (r *Resampler) Process(ctx context.Context, input string, req processor.Request) (*processor.Output, error) {
	targetSR, err := req.Params.Int("target_sr", DefaultSampleRate)
	if err != nil {
		return nil, err
	}
	if targetSR <= 0 {
		return nil, processor.Validationf("target_sr must be positive, got %d", targetSR)
	}

	out := outputPath(req.OutputPath, input, "")
	if err := runFFmpeg(ctx, input, out, []string{"-ar", strconv.Itoa(targetSR)}); err != nil {
		return nil, err
	}
	return &processor.Output{Path: out}, nil
}
