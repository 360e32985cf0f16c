package cli

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/processor"
)

// gatherInputs resolves the positional input argument (or the --from-file
// list) into the input sequence handed to the engine. The boolean result
// reports single-file mode.
func gatherInputs(args []string, flags *Flags, kind processor.Kind, cfg *config.Config) ([]string, bool, error) {
	if flags.FromFile != "" {
		inputs, err := ReadInputList(flags.FromFile)
		return inputs, false, err
	}

	input := args[0]
	info, err := os.Stat(input)
	if err != nil {
		return nil, false, fmt.Errorf("input not found: %s", input)
	}
	if !info.IsDir() {
		return []string{input}, true, nil
	}

	inputs, err := collectFiles(input, kind, cfg)
	return inputs, false, err
}

// ReadInputList reads input paths from a file, one per line. Blank lines
// and lines starting with '#' are skipped.
func ReadInputList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input list: %w", err)
	}
	defer f.Close()

	var inputs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input list: %w", err)
	}
	return inputs, nil
}

// collectFiles walks dir recursively and returns all files with a
// supported extension for the given kind, sorted for deterministic batch
// order.
func collectFiles(dir string, kind processor.Kind, cfg *config.Config) ([]string, error) {
	supported := cfg.IsAudioFile
	if kind == processor.KindText {
		supported = cfg.IsTextFile
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if supported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
