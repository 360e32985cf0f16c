package text

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/processor"
	"codeberg.org/snonux/mediakit/internal/registry"
)

func init() {
	registry.MustRegister("text_normalizer", processor.KindText, func(cfg *config.Config) processor.Processor {
		return &Normalizer{cfg: cfg}
	})
}

// Normalizer rewrites a text file line by line: Unicode NFC
// normalization, whitespace collapsing, and optional case folding.
// Parameters: lowercase (bool, default false), keep_blank (bool, default
// false — blank lines are dropped unless set).
type Normalizer struct {
	cfg *config.Config
}

func (n *Normalizer) Kind() processor.Kind { return processor.KindText }

func (n *Normalizer) ValidateInput(path string) error {
	return Validate(path, n.cfg.TextFormats)
}

func (n *Normalizer) Process(ctx context.Context, input string, req processor.Request) (*processor.Output, error) {
	lowercase, err := req.Params.Bool("lowercase", false)
	if err != nil {
		return nil, err
	}
	keepBlank, err := req.Params.Bool("keep_blank", false)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, processor.Processingf("read %s: %v", input, err)
	}

	var lower *cases.Caser
	if lowercase {
		c := cases.Lower(language.Und)
		lower = &c
	}

	var b strings.Builder
	lines := 0
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := NormalizeLine(scanner.Text())
		if lower != nil {
			line = lower.String(line)
		}
		if line == "" && !keepBlank {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
		lines++
	}
	if err := scanner.Err(); err != nil {
		return nil, processor.Processingf("scan %s: %v", input, err)
	}

	out := outputPath(req.OutputPath, input, "")
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return nil, processor.Processingf("create output directory: %v", err)
	}
	if err := os.WriteFile(out, []byte(b.String()), 0o644); err != nil {
		return nil, processor.Processingf("write %s: %v", out, err)
	}
	return &processor.Output{Path: out, Meta: map[string]any{"lines": lines}}, nil
}

// NormalizeLine applies NFC normalization and collapses runs of
// whitespace into single spaces.
func NormalizeLine(line string) string {
	line = norm.NFC.String(line)
	return strings.Join(strings.Fields(line), " ")
}
