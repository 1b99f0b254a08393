// Package tex parses and converts the versioned TEX texture container used by
// scene wallpapers.
//
// A TEX file starts with two NUL-terminated magic strings ("TEXV0005" then
// "TEXI0001"), a 7-field little-endian header, and an image container whose
// own magic selects one of four sub-versions (TEXB0001..TEXB0004). The
// container holds one or more images; each image holds one or more mipmaps
// ordered largest to smallest. Mipmap payloads may be LZ4 block-compressed,
// and the whole texture may actually wrap a pre-encoded image (PNG, JPEG, ...)
// or an MP4 video instead of raw pixel data.
package tex

import "errors"

// Sentinel errors wrapped by parse, decode and convert failures.
var (
	// ErrParse marks a structural mismatch: bad magic, unknown
	// sub-version, or a truncated structure.
	ErrParse = errors.New("tex parse error")

	// ErrValidation marks a size or bounds invariant violation in decoded
	// values.
	ErrValidation = errors.New("tex validation error")

	// ErrUnsupported marks a structurally valid but unhandled format code.
	ErrUnsupported = errors.New("unsupported tex format")
)

// headerFlagVideo is bit 5 of the header flags, set on video textures.
const headerFlagVideo = 32

// TexFile is one fully parsed texture file.
type TexFile struct {
	Header TexHeader
	Images []TexImage
}

// TexHeader is the fixed header following the two magic strings.
type TexHeader struct {
	Format        uint32
	Flags         uint32
	TextureWidth  uint32
	TextureHeight uint32
	ImageWidth    uint32
	ImageHeight   uint32
	Unk0          uint32
}

// IsVideo reports whether the header video flag (bit 5) is set.
func (h TexHeader) IsVideo() bool {
	return h.Flags&headerFlagVideo != 0
}

// TexImage is one frame or variant inside a texture.
type TexImage struct {
	// ImageFormat is the embedded-format code; -1 means the payload is raw
	// pixel data described by the header format.
	ImageFormat int32

	// IsVideoMP4 is the per-image video marker (sub-version 4 only).
	IsVideoMP4 bool

	Mipmaps []TexMipmap
}

// TexMipmap is one resolution level of one image.
type TexMipmap struct {
	Width  uint32
	Height uint32

	// IsLZ4Compressed signals that Data is an LZ4 block.
	IsLZ4Compressed bool

	// DecompressedByteCount is the expanded size; valid only when
	// IsLZ4Compressed is set.
	DecompressedByteCount uint32

	Data []byte
}

// VideoFlagMismatch reports whether exactly one of the two video indicators
// (header flag bit 5, first image's per-image marker) is set. The format is
// expected to set both or neither; a mismatch is worth a diagnostic but the
// OR semantics of classification are unaffected.
func (f *TexFile) VideoFlagMismatch() bool {
	if len(f.Images) == 0 {
		return false
	}
	return f.Header.IsVideo() != f.Images[0].IsVideoMP4
}

// Summary describes a texture's first image and mipmap without decoding.
type Summary struct {
	Version      string
	Format       string
	Width        uint32
	Height       uint32
	ImageCount   int
	MipmapCount  int
	IsCompressed bool
	IsVideo      bool
	DataSize     int
}

// Summarize builds a preview summary for a parsed texture. No payload bytes
// are decompressed or decoded.
func Summarize(f *TexFile) Summary {
	s := Summary{
		Version:    Magic1,
		Format:     FormatInvalid.String(),
		ImageCount: len(f.Images),
	}

	if len(f.Images) == 0 {
		return s
	}
	img := &f.Images[0]

	s.Format = Classify(f, img).String()
	s.IsVideo = img.IsVideoMP4 || f.Header.IsVideo()
	s.MipmapCount = len(img.Mipmaps)

	if len(img.Mipmaps) > 0 {
		mip := &img.Mipmaps[0]
		s.Width = mip.Width
		s.Height = mip.Height
		s.IsCompressed = mip.IsLZ4Compressed
		s.DataSize = len(mip.Data)
	}

	return s
}
