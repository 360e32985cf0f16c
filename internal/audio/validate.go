package audio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codeberg.org/snonux/mediakit/internal/processor"
)

// Validate checks that path exists, is a regular file, and carries one of
// the supported audio extensions. WAV files additionally get a header
// sanity check so obviously corrupt inputs are rejected before a worker
// ever touches them.
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
		return processor.Validationf("unsupported audio format %q (supported: %s)", ext, strings.Join(sorted, " "))
	}
	if ext == ".wav" {
		if _, err := ReadWAVInfo(path); err != nil {
			return err
		}
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

// WAVInfo holds the fields of a RIFF/WAVE fmt chunk that the validators
// and the metadata viewer care about.
type WAVInfo struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	// Duration in seconds, zero when the data chunk was not found.
	Duration float64
}

// ReadWAVInfo parses the RIFF header and fmt chunk of a WAV file. It
// returns a validation error for malformed headers or out-of-range
// sample-rate/channel values.
func ReadWAVInfo(path string) (*WAVInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, processor.Validationf("cannot open %s: %v", path, err)
	}
	defer f.Close()

	var riff [12]byte
	if _, err := f.Read(riff[:]); err != nil {
		return nil, processor.Validationf("%s: file too short for a WAV header", path)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, processor.Validationf("%s: not a RIFF/WAVE file", path)
	}

	info := &WAVInfo{}
	var byteRate uint32
	for {
		var chunk [8]byte
		if _, err := f.Read(chunk[:]); err != nil {
			break
		}
		id := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])
		switch id {
		case "fmt ":
			if size < 16 {
				return nil, processor.Validationf("%s: fmt chunk truncated", path)
			}
			var fmtData [16]byte
			if _, err := f.Read(fmtData[:]); err != nil {
				return nil, processor.Validationf("%s: fmt chunk truncated", path)
			}
			info.Channels = int(binary.LittleEndian.Uint16(fmtData[2:4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(fmtData[4:8]))
			byteRate = binary.LittleEndian.Uint32(fmtData[8:12])
			info.BitsPerSample = int(binary.LittleEndian.Uint16(fmtData[14:16]))
			if remainder := int64(size) - 16; remainder > 0 {
				if _, err := f.Seek(remainder, 1); err != nil {
					break
				}
			}
		case "data":
			if byteRate > 0 {
				info.Duration = float64(size) / float64(byteRate)
			}
			// fmt precedes data in well-formed files; nothing further needed.
			return checkWAVInfo(path, info)
		default:
			if _, err := f.Seek(int64(size), 1); err != nil {
				break
			}
		}
	}
	if info.SampleRate == 0 && info.Channels == 0 {
		return nil, processor.Validationf("%s: missing fmt chunk", path)
	}
	return checkWAVInfo(path, info)
}

func checkWAVInfo(path string, info *WAVInfo) (*WAVInfo, error) {
	if info.SampleRate <= 0 {
		return nil, processor.Validationf("%s: invalid sample rate %d", path, info.SampleRate)
	}
	if info.Channels < 1 || info.Channels > 8 {
		return nil, processor.Validationf("%s: invalid channel count %d", path, info.Channels)
	}
	return info, nil
}

// outputPath derives the destination for an artifact: the requested path
// when present, otherwise the input itself (in-place processing), with an
// optional extension swap.
func outputPath(requested, input, newExt string) string {
	out := requested
	if out == "" {
		out = input
	}
	if newExt != "" {
		out = strings.TrimSuffix(out, filepath.Ext(out)) + newExt
	}
	return out
}
