package text

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/processor"
	"codeberg.org/snonux/mediakit/internal/registry"
	"codeberg.org/snonux/mediakit/internal/testutil"
)

func TestNormalizeLine(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"hello world", "hello world"},
		{"  hello   world  ", "hello world"},
		{"tabs\tand\tspaces", "tabs and spaces"},
		{"", ""},
		{"   ", ""},
		// NFC composes the combining acute accent into a single rune.
		{"cafe\u0301", "café"},
	}
	for _, tt := range tests {
		if got := NormalizeLine(tt.input); got != tt.want {
			t.Errorf("NormalizeLine(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizerProcess(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "in.txt", "  Hello   World  \n\nВТОРАЯ строка\n")

	n := &Normalizer{cfg: config.Default()}
	out := filepath.Join(dir, "out.txt")

	tests := []struct {
		name   string
		params processor.Params
		want   string
		lines  int
	}{
		{
			name:  "default drops blanks",
			want:  "Hello World\nВТОРАЯ строка\n",
			lines: 2,
		},
		{
			name:   "lowercase",
			params: processor.Params{"lowercase": "true"},
			want:   "hello world\nвторая строка\n",
			lines:  2,
		},
		{
			name:   "keep blank lines",
			params: processor.Params{"keep_blank": "true"},
			want:   "Hello World\n\nВТОРАЯ строка\n",
			lines:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := processor.Request{OutputPath: out, Params: tt.params}
			result, err := n.Process(context.Background(), input, req)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			data, err := os.ReadFile(result.Path)
			if err != nil {
				t.Fatalf("read output: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("output = %q, want %q", data, tt.want)
			}
			if result.Meta["lines"] != tt.lines {
				t.Errorf("Meta[lines] = %v, want %d", result.Meta["lines"], tt.lines)
			}
		})
	}
}

func TestNormalizerRejectsBadBoolParam(t *testing.T) {
	n := &Normalizer{cfg: config.Default()}
	req := processor.Request{Params: processor.Params{"lowercase": "maybe"}}
	if _, err := n.Process(context.Background(), "in.txt", req); !errors.Is(err, processor.ErrValidation) {
		t.Errorf("Process() error = %v, want ErrValidation", err)
	}
}

func TestTextBuiltinsAreRegistered(t *testing.T) {
	for _, name := range []string{"text_metaviewer", "text_normalizer", "text_translator"} {
		proc, err := registry.New(name, config.Default())
		if err != nil {
			t.Errorf("New(%q) error = %v", name, err)
			continue
		}
		if proc.Kind() != processor.KindText {
			t.Errorf("%s kind = %q, want text", name, proc.Kind())
		}
	}
}
