package audio

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/processor"
	"codeberg.org/snonux/mediakit/internal/registry"
	"codeberg.org/snonux/mediakit/internal/testutil"
)

func TestMetaViewerWAV(t *testing.T) {
	dir := t.TempDir()
	wav := testutil.WriteWAV(t, dir, "clip.wav", 16000, 1)

	viewer := &MetaViewer{cfg: config.Default()}
	if viewer.Kind() != processor.KindAudio {
		t.Errorf("Kind() = %q, want audio", viewer.Kind())
	}
	if err := viewer.ValidateInput(wav); err != nil {
		t.Fatalf("ValidateInput() error = %v", err)
	}

	out, err := viewer.Process(context.Background(), wav, processor.Request{})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out.Path != "" {
		t.Errorf("Path = %q, want empty without a requested output", out.Path)
	}
	if out.Meta["sample_rate"] != 16000 || out.Meta["channels"] != 1 {
		t.Errorf("Meta = %v, want sample_rate 16000, channels 1", out.Meta)
	}
}

func TestMetaViewerWritesSidecar(t *testing.T) {
	dir := t.TempDir()
	wav := testutil.WriteWAV(t, dir, "clip.wav", 8000, 1)

	viewer := &MetaViewer{cfg: config.Default()}
	req := processor.Request{OutputPath: filepath.Join(dir, "out", "clip.wav")}
	out, err := viewer.Process(context.Background(), wav, req)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want := filepath.Join(dir, "out", "clip.meta.json")
	if out.Path != want {
		t.Errorf("Path = %q, want %q", out.Path, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read sidecar: %v", err)
	}
	var meta map[string]any
	if err := json.Unmarshal(data, &meta); err != nil {
		t.Fatalf("sidecar is not valid JSON: %v", err)
	}
	if meta["sample_rate"] != float64(8000) {
		t.Errorf("sidecar sample_rate = %v, want 8000", meta["sample_rate"])
	}
}

func TestBuiltinsAreRegistered(t *testing.T) {
	for _, name := range []string{"audio_metaviewer", "audio_resampler", "audio_normalizer", "audio_transcriber"} {
		proc, err := registry.New(name, config.Default())
		if err != nil {
			t.Errorf("New(%q) error = %v", name, err)
			continue
		}
		if proc.Kind() != processor.KindAudio {
			t.Errorf("%s kind = %q, want audio", name, proc.Kind())
		}
	}
}
