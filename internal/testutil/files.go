package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// WAVBytes builds a minimal PCM WAV file in memory.
func WAVBytes(sampleRate, channels, bitsPerSample, frames int) []byte {
	blockAlign := channels * bitsPerSample / 8
	dataSize := frames * blockAlign
	byteRate := sampleRate * blockAlign

	buf := make([]byte, 0, 44+dataSize)
	buf = append(buf, "RIFF"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+dataSize))
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1) // PCM
	buf = binary.LittleEndian.AppendUint16(buf, uint16(channels))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(sampleRate))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(byteRate))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(blockAlign))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(bitsPerSample))
	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dataSize))
	buf = append(buf, make([]byte, dataSize)...)
	return buf
}

// WriteWAV writes a minimal WAV file into dir and returns its path.
func WriteWAV(t *testing.T, dir, name string, sampleRate, channels int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, WAVBytes(sampleRate, channels, 16, sampleRate/10), 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	return path
}

// WriteFile writes content into dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}
