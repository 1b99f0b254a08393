// Package main provides a command-line tool for inspecting and converting
// wallpaper scene assets (PKG containers and TEX textures).
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/WallTools/weFileTools/pkg/repkg"
	"github.com/WallTools/weFileTools/pkg/scan"
	"github.com/WallTools/weFileTools/pkg/tex"
)

var (
	mode      string
	inputPath string
	outputDir string
	verbose   bool
)

func init() {
	flag.StringVar(&mode, "mode", "", "Operation mode: info, extract, convert, auto")
	flag.StringVar(&inputPath, "in", "", "Input file (info/extract/convert) or directory (auto)")
	flag.StringVar(&outputDir, "out", "", "Output path or directory")
	flag.BoolVar(&verbose, "v", false, "Enable debug logging")
}

func main() {
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(); err != nil {
		log.Error().Err(err).Msg("failed")
		os.Exit(1)
	}
}

func run() error {
	if err := validateFlags(); err != nil {
		flag.Usage()
		return err
	}

	switch mode {
	case "info":
		return runInfo()
	case "extract":
		return runExtract()
	case "convert":
		return runConvert()
	case "auto":
		return runAuto()
	default:
		return fmt.Errorf("unknown mode: %s", mode)
	}
}

func validateFlags() error {
	if mode == "" {
		return fmt.Errorf("mode is required")
	}
	if inputPath == "" {
		return fmt.Errorf("input path is required")
	}

	switch mode {
	case "info":
	case "extract", "convert", "auto":
		if outputDir == "" {
			return fmt.Errorf("%s mode requires -out", mode)
		}
	default:
		return fmt.Errorf("mode must be one of info, extract, convert, auto")
	}

	return nil
}

func runInfo() error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}

	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".pkg":
		info := repkg.Parse(data)
		fmt.Printf("Container %s: %d entries (version %s)\n", inputPath, info.FileCount, info.Version)
		for _, e := range info.Entries {
			fmt.Printf("  %-50s %10d bytes @ %d\n", e.Name, e.Size, e.Offset)
		}
		return nil

	case ".tex":
		f, err := tex.Parse(data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", inputPath, err)
		}
		warnVideoMismatch(inputPath, f)

		s := tex.Summarize(f)
		fmt.Printf("Texture %s\n", inputPath)
		fmt.Printf("  version:    %s\n", s.Version)
		fmt.Printf("  format:     %s\n", s.Format)
		fmt.Printf("  size:       %dx%d\n", s.Width, s.Height)
		fmt.Printf("  images:     %d (%d mipmaps)\n", s.ImageCount, s.MipmapCount)
		fmt.Printf("  compressed: %v\n", s.IsCompressed)
		fmt.Printf("  video:      %v\n", s.IsVideo)
		fmt.Printf("  data size:  %d bytes\n", s.DataSize)
		return nil

	default:
		return fmt.Errorf("unrecognized file type: %s", inputPath)
	}
}

func runExtract() error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}

	info := repkg.Parse(data)
	extracted, err := repkg.Extract(info, data, outputDir)
	if err != nil {
		return fmt.Errorf("extract %s: %w", inputPath, err)
	}

	for _, f := range extracted {
		log.Debug().Str("entry", f.EntryName).Uint32("size", f.Size).Msg("extracted")
	}
	log.Info().Str("pkg", inputPath).Int("files", len(extracted)).Str("out", outputDir).Msg("extraction complete")
	return nil
}

func runConvert() error {
	conv, err := convertTexFile(inputPath, outputDir)
	if err != nil {
		return err
	}

	log.Info().
		Str("tex", inputPath).
		Str("out", conv.OutputPath).
		Str("format", conv.Format).
		Uint32("width", conv.Width).
		Uint32("height", conv.Height).
		Msg("conversion complete")
	return nil
}

// runAuto scans a library directory and processes every asset it finds.
// Per-file failures are logged and skipped; one corrupt asset must never
// abort the batch.
func runAuto() error {
	assets, err := scan.Scan(inputPath)
	if err != nil {
		return err
	}
	log.Info().Int("assets", len(assets)).Str("root", inputPath).Msg("scan complete")

	failed := 0
	for _, asset := range assets {
		rel, err := filepath.Rel(inputPath, asset.Path)
		if err != nil {
			rel = filepath.Base(asset.Path)
		}
		stem := strings.TrimSuffix(rel, filepath.Ext(rel))

		switch asset.Kind {
		case scan.KindPKG:
			err = autoExtract(asset.Path, filepath.Join(outputDir, stem))
		case scan.KindTEX:
			err = autoConvert(asset.Path, filepath.Join(outputDir, filepath.Dir(rel)))
		}

		if err != nil {
			failed++
			log.Warn().Err(err).Str("asset", asset.Path).Msg("skipped")
		}
	}

	log.Info().Int("processed", len(assets)-failed).Int("failed", failed).Msg("done")
	return nil
}

func autoExtract(path, outBase string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	info := repkg.Parse(data)
	extracted, err := repkg.Extract(info, data, outBase)
	if err != nil {
		return err
	}

	log.Debug().Str("pkg", path).Int("files", len(extracted)).Msg("extracted")

	// Extracted members may themselves be textures needing a second pass.
	for _, f := range extracted {
		if strings.ToLower(filepath.Ext(f.EntryName)) != ".tex" {
			continue
		}
		if _, err := convertTexFile(f.OutputPath, filepath.Dir(f.OutputPath)); err != nil {
			log.Warn().Err(err).Str("asset", f.OutputPath).Msg("skipped")
		}
	}

	return nil
}

func autoConvert(path, outBase string) error {
	if err := os.MkdirAll(outBase, 0755); err != nil {
		return fmt.Errorf("create %s: %w", outBase, err)
	}

	conv, err := convertTexFile(path, outBase)
	if err != nil {
		return err
	}

	log.Debug().Str("tex", path).Str("out", conv.OutputPath).Msg("converted")
	return nil
}

func convertTexFile(path, out string) (*tex.ConvertedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	f, err := tex.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	warnVideoMismatch(path, f)

	conv, err := tex.Convert(f, path, out)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}
	return conv, nil
}

// warnVideoMismatch surfaces files where only one of the two video
// indicators is set. Classification still ORs them; this is a diagnostic.
func warnVideoMismatch(path string, f *tex.TexFile) {
	if f.VideoFlagMismatch() {
		log.Warn().
			Str("tex", path).
			Bool("header_flag", f.Header.IsVideo()).
			Msg("video flag set on only one of header/image")
	}
}
