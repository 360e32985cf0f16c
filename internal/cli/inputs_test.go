package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/processor"
	"codeberg.org/snonux/mediakit/internal/testutil"
)

func TestReadInputList(t *testing.T) {
	dir := t.TempDir()
	list := testutil.WriteFile(t, dir, "inputs.txt", `
# batch of recordings
a.wav

  b.wav
# trailing comment
c.wav
`)

	inputs, err := ReadInputList(list)
	if err != nil {
		t.Fatalf("ReadInputList() error = %v", err)
	}
	want := []string{"a.wav", "b.wav", "c.wav"}
	if !reflect.DeepEqual(inputs, want) {
		t.Errorf("ReadInputList() = %v, want %v", inputs, want)
	}
}

func TestReadInputListMissingFile(t *testing.T) {
	if _, err := ReadInputList(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("ReadInputList() with missing file did not fail")
	}
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()

	testutil.WriteFile(t, dir, "b.wav", "")
	testutil.WriteFile(t, dir, "a.mp3", "")
	testutil.WriteFile(t, dir, "notes.txt", "")
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	testutil.WriteFile(t, sub, "c.flac", "")

	audio, err := collectFiles(dir, processor.KindAudio, cfg)
	if err != nil {
		t.Fatalf("collectFiles(audio) error = %v", err)
	}
	wantAudio := []string{
		filepath.Join(dir, "a.mp3"),
		filepath.Join(dir, "b.wav"),
		filepath.Join(dir, "nested", "c.flac"),
	}
	if !reflect.DeepEqual(audio, wantAudio) {
		t.Errorf("collectFiles(audio) = %v, want %v", audio, wantAudio)
	}

	text, err := collectFiles(dir, processor.KindText, cfg)
	if err != nil {
		t.Fatalf("collectFiles(text) error = %v", err)
	}
	wantText := []string{filepath.Join(dir, "notes.txt")}
	if !reflect.DeepEqual(text, wantText) {
		t.Errorf("collectFiles(text) = %v, want %v", text, wantText)
	}
}

func TestGatherInputs(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	wav := testutil.WriteFile(t, dir, "one.wav", "")

	t.Run("single file", func(t *testing.T) {
		inputs, single, err := gatherInputs([]string{wav}, &Flags{}, processor.KindAudio, cfg)
		if err != nil {
			t.Fatalf("gatherInputs() error = %v", err)
		}
		if !single || len(inputs) != 1 || inputs[0] != wav {
			t.Errorf("gatherInputs() = (%v, %v), want single %q", inputs, single, wav)
		}
	})

	t.Run("directory", func(t *testing.T) {
		inputs, single, err := gatherInputs([]string{dir}, &Flags{}, processor.KindAudio, cfg)
		if err != nil {
			t.Fatalf("gatherInputs() error = %v", err)
		}
		if single {
			t.Error("directory input reported as single-file mode")
		}
		if len(inputs) != 1 || inputs[0] != wav {
			t.Errorf("gatherInputs() = %v, want [%q]", inputs, wav)
		}
	})

	t.Run("from-file list", func(t *testing.T) {
		list := testutil.WriteFile(t, dir, "list.txt", "x.wav\ny.wav\n")
		inputs, single, err := gatherInputs(nil, &Flags{FromFile: list}, processor.KindAudio, cfg)
		if err != nil {
			t.Fatalf("gatherInputs() error = %v", err)
		}
		if single {
			t.Error("list input reported as single-file mode")
		}
		if want := []string{"x.wav", "y.wav"}; !reflect.DeepEqual(inputs, want) {
			t.Errorf("gatherInputs() = %v, want %v", inputs, want)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		if _, _, err := gatherInputs([]string{filepath.Join(dir, "absent.wav")}, &Flags{}, processor.KindAudio, cfg); err == nil {
			t.Error("gatherInputs() with missing input did not fail")
		}
	})
}
