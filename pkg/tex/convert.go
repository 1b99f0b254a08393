package tex

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// ConvertedFile describes the file written by Convert.
type ConvertedFile struct {
	OutputPath string
	Format     string
	Width      uint32
	Height     uint32
}

// Convert writes a parsed texture's first image/first mipmap to disk.
//
// Video and pre-encoded image payloads are written verbatim (after LZ4
// decompression) under the classified format's extension. Raw and
// block-compressed pixel formats are decoded to RGBA and always written as
// PNG, whatever the source encoding was.
//
// outputPath may be a directory (or an extension-less path), in which case
// the input file's stem plus the format extension is appended; otherwise its
// extension is replaced. Parent directories are created as needed.
func Convert(f *TexFile, inputPath, outputPath string) (*ConvertedFile, error) {
	if len(f.Images) == 0 {
		return nil, fmt.Errorf("%w: no images in texture", ErrValidation)
	}
	img := &f.Images[0]

	if len(img.Mipmaps) == 0 {
		return nil, fmt.Errorf("%w: no mipmaps in first image", ErrValidation)
	}
	mip := &img.Mipmaps[0]

	format := Classify(f, img)

	data, err := Decompress(mip)
	if err != nil {
		return nil, err
	}

	finalPath := resolveOutputPath(outputPath, inputPath, format.Extension())
	if dir := filepath.Dir(finalPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	switch {
	case format == FormatVideoMP4, format.IsImage():
		// Pre-encoded payload: pass the bytes through untouched.
		if err := os.WriteFile(finalPath, data, 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", finalPath, err)
		}

	default:
		pix, err := DecodeMipmap(data, mip.Width, mip.Height, format)
		if err != nil {
			return nil, err
		}
		if err := savePNG(finalPath, pix, mip.Width, mip.Height); err != nil {
			return nil, err
		}
	}

	return &ConvertedFile{
		OutputPath: finalPath,
		Format:     format.Extension(),
		Width:      mip.Width,
		Height:     mip.Height,
	}, nil
}

// resolveOutputPath derives the final output file path. A directory target
// (or a path without an extension) gets the input stem plus ext appended;
// any other target has its extension swapped for ext.
func resolveOutputPath(outputPath, inputPath, ext string) string {
	if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		if stem == "" {
			stem = "output"
		}
		return filepath.Join(outputPath, stem+"."+ext)
	}

	if old := filepath.Ext(outputPath); old != "" {
		return strings.TrimSuffix(outputPath, old) + "." + ext
	}
	return outputPath + "." + ext
}

func savePNG(path string, pix []byte, width, height uint32) error {
	rgba := &image.RGBA{
		Pix:    pix,
		Stride: int(width) * 4,
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, rgba); err != nil {
		return fmt.Errorf("encode png %s: %w", path, err)
	}
	return nil
}
