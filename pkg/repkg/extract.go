package repkg

import (
	"fmt"
	"os"
	"path/filepath"
)

// Extract writes every entry of a parsed container to outputBase.
//
// Each entry's byte range is validated against data before anything is
// written for it; an out-of-range entry or a write failure aborts the whole
// extraction and returns the offending error. Files written before the
// failure remain on disk. Returns one ExtractedFile per entry written.
func Extract(info *Info, data []byte, outputBase string) ([]ExtractedFile, error) {
	extracted := make([]ExtractedFile, 0, len(info.Entries))

	for _, entry := range info.Entries {
		outputPath := filepath.Join(outputBase, filepath.FromSlash(entry.Name))

		if err := ExtractEntry(data, info.DataStart, entry, outputPath); err != nil {
			return extracted, err
		}

		extracted = append(extracted, ExtractedFile{
			EntryName:  entry.Name,
			OutputPath: outputPath,
			Size:       entry.Size,
		})
	}

	return extracted, nil
}

// ExtractEntry validates and writes a single entry to outputPath, creating
// parent directories as needed. Used for selective unpacking.
func ExtractEntry(data []byte, dataStart int, entry Entry, outputPath string) error {
	start := dataStart + int(entry.Offset)
	end := start + int(entry.Size)

	if start < dataStart || end < start || end > len(data) {
		return fmt.Errorf("entry %q: %w (offset %d size %d, %d bytes available)",
			entry.Name, ErrBounds, entry.Offset, entry.Size, len(data)-dataStart)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("entry %q: create directory %s: %w", entry.Name, dir, err)
		}
	}

	if err := os.WriteFile(outputPath, data[start:end], 0644); err != nil {
		return fmt.Errorf("entry %q: write %s: %w", entry.Name, outputPath, err)
	}

	return nil
}
