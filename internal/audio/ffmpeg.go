package audio

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/mediakit/internal/processor"
)

// runFFmpeg executes ffmpeg with the given filter arguments, writing to
// out. When out equals the input, the result goes through a temporary file
// in the same directory first since ffmpeg cannot edit in place.
func runFFmpeg(ctx context.Context, input, out string, args []string) error {
	target := out
	inPlace := sameFile(input, out)
	if inPlace {
		target = tempName(out)
	}

	if dir := filepath.Dir(target); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return processor.Processingf("create output directory: %v", err)
		}
	}

	cmdArgs := append([]string{"-y", "-hide_banner", "-loglevel", "error", "-i", input}, args...)
	cmdArgs = append(cmdArgs, target)
	cmd := exec.CommandContext(ctx, "ffmpeg", cmdArgs...)
	if output, err := cmd.CombinedOutput(); err != nil {
		if inPlace {
			os.Remove(target)
		}
		return processor.Processingf("ffmpeg failed for %s: %v (%s)", input, err, strings.TrimSpace(string(output)))
	}

	if inPlace {
		if err := os.Rename(target, out); err != nil {
			os.Remove(target)
			return processor.Processingf("replace %s: %v", out, err)
		}
	}
	return nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

func tempName(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".tmp" + ext
}
