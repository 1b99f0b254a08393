package tex

import "fmt"

// MipmapFormat classifies what a mipmap payload actually contains: raw pixel
// data, block-compressed pixel data, a complete pre-encoded image file, or an
// MP4 video. Values at or above 1000 are pre-encoded image containers.
type MipmapFormat uint32

const (
	FormatInvalid  MipmapFormat = 0
	FormatRGBA8888 MipmapFormat = 1
	FormatR8       MipmapFormat = 2
	FormatRG88     MipmapFormat = 3
	FormatDXT5     MipmapFormat = 4
	FormatDXT3     MipmapFormat = 5
	FormatDXT1     MipmapFormat = 6
	FormatVideoMP4 MipmapFormat = 7
)

// Pre-encoded image container formats, mirroring the FreeImage format space
// the engine embeds.
const (
	FormatImageBMP MipmapFormat = 1000 + iota
	FormatImageICO
	FormatImageJPEG
	FormatImageJNG
	FormatImageKOALA
	FormatImageLBM
	FormatImageMNG
	FormatImagePBM
	FormatImagePBMRaw
	FormatImagePCD
	FormatImagePCX
	FormatImagePGM
	FormatImagePGMRaw
	FormatImagePNG
	FormatImagePPM
	FormatImagePPMRaw
	FormatImageRAS
	FormatImageTARGA
	FormatImageTIFF
	FormatImageWBMP
	FormatImagePSD
	FormatImageCUT
	FormatImageXBM
	FormatImageXPM
	FormatImageDDS
	FormatImageGIF
	FormatImageHDR
	FormatImageFAXG3
	FormatImageSGI
	FormatImageEXR
	FormatImageJ2K
	FormatImageJP2
	FormatImagePFM
	FormatImagePICT
	FormatImageRAW
)

// embeddedFormats maps the per-image embedded-format code (0..35) to a
// MipmapFormat. Code 35 is video; codes outside the table are Invalid.
var embeddedFormats = [36]MipmapFormat{
	FormatImageBMP,
	FormatImageICO,
	FormatImageJPEG,
	FormatImageJNG,
	FormatImageKOALA,
	FormatImageLBM,
	FormatImageMNG,
	FormatImagePBM,
	FormatImagePBMRaw,
	FormatImagePCD,
	FormatImagePCX,
	FormatImagePGM,
	FormatImagePGMRaw,
	FormatImagePNG,
	FormatImagePPM,
	FormatImagePPMRaw,
	FormatImageRAS,
	FormatImageTARGA,
	FormatImageTIFF,
	FormatImageWBMP,
	FormatImagePSD,
	FormatImageCUT,
	FormatImageXBM,
	FormatImageXPM,
	FormatImageDDS,
	FormatImageGIF,
	FormatImageHDR,
	FormatImageFAXG3,
	FormatImageSGI,
	FormatImageEXR,
	FormatImageJ2K,
	FormatImageJP2,
	FormatImagePFM,
	FormatImagePICT,
	FormatImageRAW,
	FormatVideoMP4,
}

// Classify determines the payload format for one image of a texture.
//
// Decision order: per-image video marker OR header video flag wins; then a
// non-negative embedded-format code is mapped through the embedded table;
// finally the header pixel-format code decides. The two video indicators are
// ORed for compatibility with real files (see TexFile.VideoFlagMismatch).
func Classify(f *TexFile, img *TexImage) MipmapFormat {
	if img.IsVideoMP4 || f.Header.IsVideo() {
		return FormatVideoMP4
	}

	if img.ImageFormat >= 0 {
		if int(img.ImageFormat) < len(embeddedFormats) {
			return embeddedFormats[img.ImageFormat]
		}
		return FormatInvalid
	}

	switch f.Header.Format {
	case 0:
		return FormatRGBA8888
	case 4:
		return FormatDXT5
	case 6:
		return FormatDXT3
	case 7:
		return FormatDXT1
	case 8:
		return FormatRG88
	case 9:
		return FormatR8
	default:
		return FormatInvalid
	}
}

// IsImage reports whether the format is a pre-encoded still-image container.
func (m MipmapFormat) IsImage() bool {
	return m >= 1000
}

// IsBlockCompressed reports whether the format is a BC1/BC2/BC3 encoding.
func (m MipmapFormat) IsBlockCompressed() bool {
	return m == FormatDXT1 || m == FormatDXT3 || m == FormatDXT5
}

// Extension returns the output file extension for the format, without a dot.
// Pixel formats decoded to RGBA are always written as PNG.
func (m MipmapFormat) Extension() string {
	switch m {
	case FormatRGBA8888, FormatR8, FormatRG88, FormatDXT1, FormatDXT3, FormatDXT5:
		return "png"
	case FormatVideoMP4:
		return "mp4"
	case FormatImageBMP:
		return "bmp"
	case FormatImageICO:
		return "ico"
	case FormatImageJPEG:
		return "jpg"
	case FormatImageJNG:
		return "jng"
	case FormatImageKOALA:
		return "koa"
	case FormatImageLBM:
		return "iff"
	case FormatImageMNG:
		return "mng"
	case FormatImagePBM, FormatImagePBMRaw:
		return "pbm"
	case FormatImagePCD:
		return "pcd"
	case FormatImagePCX:
		return "pcx"
	case FormatImagePGM, FormatImagePGMRaw:
		return "pgm"
	case FormatImagePNG:
		return "png"
	case FormatImagePPM, FormatImagePPMRaw:
		return "ppm"
	case FormatImageRAS:
		return "ras"
	case FormatImageTARGA:
		return "tga"
	case FormatImageTIFF:
		return "tif"
	case FormatImageWBMP:
		return "wbmp"
	case FormatImagePSD:
		return "psd"
	case FormatImageCUT:
		return "cut"
	case FormatImageXBM:
		return "xbm"
	case FormatImageXPM:
		return "xpm"
	case FormatImageDDS:
		return "dds"
	case FormatImageGIF:
		return "gif"
	case FormatImageHDR:
		return "hdr"
	case FormatImageFAXG3:
		return "g3"
	case FormatImageSGI:
		return "sgi"
	case FormatImageEXR:
		return "exr"
	case FormatImageJ2K:
		return "j2k"
	case FormatImageJP2:
		return "jp2"
	case FormatImagePFM:
		return "pfm"
	case FormatImagePICT:
		return "pict"
	case FormatImageRAW:
		return "raw"
	default:
		return "bin"
	}
}

// String returns a human-readable format name for reporting and previews.
func (m MipmapFormat) String() string {
	switch m {
	case FormatInvalid:
		return "Invalid"
	case FormatRGBA8888:
		return "RGBA8888"
	case FormatR8:
		return "R8"
	case FormatRG88:
		return "RG88"
	case FormatDXT5:
		return "DXT5"
	case FormatDXT3:
		return "DXT3"
	case FormatDXT1:
		return "DXT1"
	case FormatVideoMP4:
		return "VideoMP4"
	}
	if m.IsImage() {
		return "Image" + m.imageName()
	}
	return fmt.Sprintf("MipmapFormat(%d)", uint32(m))
}

func (m MipmapFormat) imageName() string {
	switch m {
	case FormatImageBMP:
		return "BMP"
	case FormatImageICO:
		return "ICO"
	case FormatImageJPEG:
		return "JPEG"
	case FormatImageJNG:
		return "JNG"
	case FormatImageKOALA:
		return "KOALA"
	case FormatImageLBM:
		return "LBM"
	case FormatImageMNG:
		return "MNG"
	case FormatImagePBM:
		return "PBM"
	case FormatImagePBMRaw:
		return "PBMRAW"
	case FormatImagePCD:
		return "PCD"
	case FormatImagePCX:
		return "PCX"
	case FormatImagePGM:
		return "PGM"
	case FormatImagePGMRaw:
		return "PGMRAW"
	case FormatImagePNG:
		return "PNG"
	case FormatImagePPM:
		return "PPM"
	case FormatImagePPMRaw:
		return "PPMRAW"
	case FormatImageRAS:
		return "RAS"
	case FormatImageTARGA:
		return "TARGA"
	case FormatImageTIFF:
		return "TIFF"
	case FormatImageWBMP:
		return "WBMP"
	case FormatImagePSD:
		return "PSD"
	case FormatImageCUT:
		return "CUT"
	case FormatImageXBM:
		return "XBM"
	case FormatImageXPM:
		return "XPM"
	case FormatImageDDS:
		return "DDS"
	case FormatImageGIF:
		return "GIF"
	case FormatImageHDR:
		return "HDR"
	case FormatImageFAXG3:
		return "FAXG3"
	case FormatImageSGI:
		return "SGI"
	case FormatImageEXR:
		return "EXR"
	case FormatImageJ2K:
		return "J2K"
	case FormatImageJP2:
		return "JP2"
	case FormatImagePFM:
		return "PFM"
	case FormatImagePICT:
		return "PICT"
	case FormatImageRAW:
		return "RAW"
	default:
		return fmt.Sprintf("(%d)", uint32(m))
	}
}
