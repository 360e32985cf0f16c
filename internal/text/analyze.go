package text

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/processor"
	"codeberg.org/snonux/mediakit/internal/registry"
)

func init() {
	registry.MustRegister("text_metaviewer", processor.KindText, func(cfg *config.Config) processor.Processor {
		return &MetaViewer{cfg: cfg}
	})
}

// LineStats describes one line of input.
type LineStats struct {
	Length      int  `json:"length"`
	WordCount   int  `json:"word_count"`
	HasDigit    bool `json:"has_digit"`
	HasLatin    bool `json:"has_latin"`
	HasCyrillic bool `json:"has_cyrillic"`
}

// MetaViewer gathers per-line statistics (rune length, word count, script
// flags) and writes them as JSON.
type MetaViewer struct {
	cfg *config.Config
}

func (m *MetaViewer) Kind() processor.Kind { return processor.KindText }

func (m *MetaViewer) ValidateInput(path string) error {
	return Validate(path, m.cfg.TextFormats)
}

func (m *MetaViewer) Process(ctx context.Context, input string, req processor.Request) (*processor.Output, error) {
	f, err := os.Open(input)
	if err != nil {
		return nil, processor.Processingf("open %s: %v", input, err)
	}
	defer f.Close()

	var stats []LineStats
	totalWords := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		s := AnalyzeLine(line)
		totalWords += s.WordCount
		stats = append(stats, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, processor.Processingf("scan %s: %v", input, err)
	}

	meta := map[string]any{
		"lines":       len(stats),
		"total_words": totalWords,
		"per_line":    stats,
	}
	out := &processor.Output{Meta: meta}
	if req.OutputPath != "" {
		path := strings.TrimSuffix(req.OutputPath, filepath.Ext(req.OutputPath)) + ".meta.json"
		data, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return nil, processor.Processingf("encode stats for %s: %v", input, err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, processor.Processingf("create output directory: %v", err)
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return nil, processor.Processingf("write stats for %s: %v", input, err)
		}
		out.Path = path
	}
	return out, nil
}

// AnalyzeLine computes the statistics for a single line.
func AnalyzeLine(line string) LineStats {
	s := LineStats{
		Length:    len([]rune(line)),
		WordCount: len(strings.Fields(line)),
	}
	for _, r := range line {
		switch {
		case unicode.IsDigit(r):
			s.HasDigit = true
		case unicode.In(r, unicode.Latin):
			s.HasLatin = true
		case unicode.In(r, unicode.Cyrillic):
			s.HasCyrillic = true
		}
	}
	return s
}
