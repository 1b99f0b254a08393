// Package scan locates PKG and TEX assets inside a wallpaper library
// directory. It is the collaborator that decides which files the container
// and texture parsers get fed; it never opens or parses the files itself.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Kind classifies a scanned asset by its file extension.
type Kind int

const (
	KindPKG Kind = iota
	KindTEX
)

// String returns the kind name for reporting.
func (k Kind) String() string {
	switch k {
	case KindPKG:
		return "pkg"
	case KindTEX:
		return "tex"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Asset is one processable file found under the scanned root.
type Asset struct {
	Path string
	Kind Kind
	Size int64
}

// Scan walks root and returns every .pkg and .tex file found, sorted by
// path. Other files and directories are skipped. The extension check is
// case-insensitive because published wallpapers mix cases freely.
func Scan(root string) ([]Asset, error) {
	var assets []Asset

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		var kind Kind
		switch strings.ToLower(filepath.Ext(path)) {
		case ".pkg":
			kind = KindPKG
		case ".tex":
			kind = KindTEX
		default:
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		assets = append(assets, Asset{Path: path, Kind: kind, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Slice(assets, func(i, j int) bool { return assets[i].Path < assets[j].Path })
	return assets, nil
}
