package text

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"codeberg.org/snonux/mediakit/internal/processor"
)

// utf8ProbeSize bounds how much of a file gets read for encoding checks.
const utf8ProbeSize = 8 * 1024

// Validate checks that path exists, is a regular non-empty file with a
// supported text extension, and that its leading bytes are valid UTF-8.
func Validate(path string, formats []string) error {
	info, err := os.Stat(path)
	if err != nil {
		return processor.Validationf("input file not found: %s", path)
	}
	if info.IsDir() {
		return processor.Validationf("input is a directory, not a file: %s", path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !contains(formats, ext) {
		sorted := append([]string(nil), formats...)
		sort.Strings(sorted)
		return processor.Validationf("unsupported text format %q (supported: %s)", ext, strings.Join(sorted, " "))
	}
	if info.Size() == 0 {
		return processor.Validationf("empty input: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return processor.Validationf("cannot open %s: %v", path, err)
	}
	defer f.Close()

	probe := make([]byte, utf8ProbeSize)
	n, err := f.Read(probe)
	if err != nil && err != io.EOF {
		return processor.Validationf("cannot read %s: %v", path, err)
	}
	probe = probe[:n]
	// A multi-byte rune may straddle the probe boundary; trim up to three
	// trailing continuation bytes before judging validity.
	if n == utf8ProbeSize {
		for i := 0; i < 3 && len(probe) > 0 && !utf8.Valid(probe); i++ {
			probe = probe[:len(probe)-1]
		}
	}
	if !utf8.Valid(probe) {
		return processor.Validationf("%s is not valid UTF-8 text", path)
	}
	return nil
}

func contains(formats []string, ext string) bool {
	for _, f := range formats {
		if f == ext {
			return true
		}
	}
	return false
}

// outputPath derives the destination for an artifact: the requested path
// when present, otherwise the input itself, with an optional suffix
// inserted before the extension.
func outputPath(requested, input, suffix string) string {
	out := requested
	if out == "" {
		out = input
	}
	if suffix != "" {
		ext := filepath.Ext(out)
		out = strings.TrimSuffix(out, ext) + suffix + ext
	}
	return out
}
