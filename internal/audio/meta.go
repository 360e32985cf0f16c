package audio

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/processor"
	"codeberg.org/snonux/mediakit/internal/registry"
)

func init() {
	registry.MustRegister("audio_metaviewer", processor.KindAudio, func(cfg *config.Config) processor.Processor {
		return &MetaViewer{cfg: cfg}
	})
}

// MetaViewer extracts stream metadata (sample rate, channels, duration,
// bit depth) from an audio file. WAV headers are parsed directly; other
// formats go through ffprobe.
type MetaViewer struct {
	cfg *config.Config
}

func (m *MetaViewer) Kind() processor.Kind { return processor.KindAudio }

func (m *MetaViewer) ValidateInput(path string) error {
	return Validate(path, m.cfg.AudioFormats)
}

func (m *MetaViewer) Process(ctx context.Context, input string, req processor.Request) (*processor.Output, error) {
	var meta map[string]any
	if strings.EqualFold(filepath.Ext(input), ".wav") {
		info, err := ReadWAVInfo(input)
		if err != nil {
			return nil, err
		}
		meta = map[string]any{
			"sample_rate":     info.SampleRate,
			"channels":        info.Channels,
			"bits_per_sample": info.BitsPerSample,
			"duration":        info.Duration,
		}
	} else {
		probed, err := ffprobe(ctx, input)
		if err != nil {
			return nil, err
		}
		meta = probed
	}

	out := &processor.Output{Meta: meta}
	if req.OutputPath != "" {
		path := strings.TrimSuffix(req.OutputPath, filepath.Ext(req.OutputPath)) + ".meta.json"
		data, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return nil, processor.Processingf("encode metadata for %s: %v", input, err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, processor.Processingf("create output directory: %v", err)
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return nil, processor.Processingf("write metadata for %s: %v", input, err)
		}
		out.Path = path
	}
	return out, nil
}

// ffprobe shells out to ffprobe and condenses its JSON output into the
// same shape the WAV path produces.
func ffprobe(ctx context.Context, input string) (map[string]any, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		input,
	)
	raw, err := cmd.Output()
	if err != nil {
		return nil, processor.Processingf("ffprobe failed for %s: %v", input, err)
	}

	var probe struct {
		Streams []struct {
			CodecType  string `json:"codec_type"`
			SampleRate string `json:"sample_rate"`
			Channels   int    `json:"channels"`
			BitRate    string `json:"bit_rate"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
			BitRate  string `json:"bit_rate"`
		} `json:"format"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, processor.Processingf("parse ffprobe output for %s: %v", input, err)
	}

	meta := map[string]any{}
	for _, s := range probe.Streams {
		if s.CodecType != "audio" {
			continue
		}
		if sr, err := strconv.Atoi(s.SampleRate); err == nil {
			meta["sample_rate"] = sr
		}
		meta["channels"] = s.Channels
		if br, err := strconv.Atoi(s.BitRate); err == nil {
			meta["bit_rate"] = br
		}
		break
	}
	if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
		meta["duration"] = d
	}
	if len(meta) == 0 {
		return nil, processor.Processingf("no audio stream found in %s", input)
	}
	return meta, nil
}
