package text

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/processor"
	"codeberg.org/snonux/mediakit/internal/testutil"
)

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	formats := config.Default().TextFormats

	good := testutil.WriteFile(t, dir, "good.txt", "привет, world\n")
	empty := testutil.WriteFile(t, dir, "empty.txt", "")
	wav := testutil.WriteFile(t, dir, "clip.wav", "xxxx")
	binary := filepath.Join(dir, "binary.txt")
	if err := os.WriteFile(binary, []byte{0xff, 0xfe, 0x00, 0x41}, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid utf-8", good, false},
		{"missing file", filepath.Join(dir, "absent.txt"), true},
		{"directory", dir, true},
		{"unsupported extension", wav, true},
		{"empty file", empty, true},
		{"invalid utf-8", binary, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.path, formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, processor.ErrValidation) {
				t.Errorf("Validate(%q) error = %v, want ErrValidation wrap", tt.path, err)
			}
		})
	}
}

func TestValidateRuneStraddlingProbeBoundary(t *testing.T) {
	dir := t.TempDir()
	// Fill exactly up to the probe size so the final multi-byte rune is cut
	// mid-sequence when probed.
	content := strings.Repeat("a", utf8ProbeSize-1) + "ж" + strings.Repeat("b", 100)
	path := testutil.WriteFile(t, dir, "boundary.txt", content)

	if err := Validate(path, config.Default().TextFormats); err != nil {
		t.Errorf("Validate() error = %v for rune split at probe boundary", err)
	}
}

func TestOutputPathSuffix(t *testing.T) {
	tests := []struct {
		requested string
		input     string
		suffix    string
		want      string
	}{
		{"", "in.txt", "", "in.txt"},
		{"out.txt", "in.txt", "", "out.txt"},
		{"", "in.txt", ".translated", "in.translated.txt"},
		{"dir/out.md", "in.txt", ".norm", "dir/out.norm.md"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.requested, tt.input, tt.suffix); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.requested, tt.input, tt.suffix, got, tt.want)
		}
	}
}
