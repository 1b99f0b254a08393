package tex

import (
	"fmt"

	"github.com/pierrec/lz4/v4"

	"github.com/WallTools/weFileTools/pkg/dxt"
)

// maxDecodePixels caps width*height for decodable mipmaps (a 16384x16384
// texture, far beyond anything the engine ships).
const maxDecodePixels = 1 << 28

// Decompress returns a mipmap's payload with LZ4 block compression undone.
// Uncompressed mipmaps return their payload as-is. A decompression failure or
// a size that does not match the declared decompressed byte count is a hard
// error; silent truncation would corrupt every downstream decode.
func Decompress(mip *TexMipmap) ([]byte, error) {
	if !mip.IsLZ4Compressed {
		return mip.Data, nil
	}

	out := make([]byte, mip.DecompressedByteCount)
	n, err := lz4.UncompressBlock(mip.Data, out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression: %w", err)
	}
	if uint32(n) != mip.DecompressedByteCount {
		return nil, fmt.Errorf("%w: lz4 produced %d bytes, expected %d",
			ErrValidation, n, mip.DecompressedByteCount)
	}

	return out, nil
}

// DecodeMipmap expands an already-decompressed mipmap payload into a
// width*height*4 RGBA buffer. Only raw and block-compressed pixel formats are
// decodable here; pre-encoded image and video payloads are written verbatim
// by Convert and are rejected by this function.
func DecodeMipmap(data []byte, width, height uint32, format MipmapFormat) ([]byte, error) {
	// Bound the pixel count before any size arithmetic: u32-max dimensions
	// from a crafted mipmap header would otherwise overflow the expected-size
	// computations below.
	if width == 0 || height == 0 || uint64(width)*uint64(height) > maxDecodePixels {
		return nil, fmt.Errorf("%w: invalid mipmap dimensions %dx%d", ErrValidation, width, height)
	}
	w, h := int(width), int(height)

	switch format {
	case FormatDXT1:
		pix, err := dxt.DecodeBC1(data, w, h)
		if err != nil {
			return nil, fmt.Errorf("dxt1 decode: %w", err)
		}
		return pix, nil

	case FormatDXT3:
		pix, err := dxt.DecodeBC2(data, w, h)
		if err != nil {
			return nil, fmt.Errorf("dxt3 decode: %w", err)
		}
		return pix, nil

	case FormatDXT5:
		pix, err := dxt.DecodeBC3(data, w, h)
		if err != nil {
			return nil, fmt.Errorf("dxt5 decode: %w", err)
		}
		return pix, nil

	case FormatRGBA8888:
		if len(data) != w*h*4 {
			return nil, fmt.Errorf("%w: rgba8888 payload is %d bytes, expected %d",
				ErrValidation, len(data), w*h*4)
		}
		return data, nil

	case FormatRG88:
		if len(data) != w*h*2 {
			return nil, fmt.Errorf("%w: rg88 payload is %d bytes, expected %d",
				ErrValidation, len(data), w*h*2)
		}
		pix := make([]byte, w*h*4)
		for i := 0; i < w*h; i++ {
			pix[i*4+0] = data[i*2+0]
			pix[i*4+1] = data[i*2+1]
			pix[i*4+2] = 0
			pix[i*4+3] = 255
		}
		return pix, nil

	case FormatR8:
		if len(data) != w*h {
			return nil, fmt.Errorf("%w: r8 payload is %d bytes, expected %d",
				ErrValidation, len(data), w*h)
		}
		pix := make([]byte, w*h*4)
		for i, v := range data {
			pix[i*4+0] = v
			pix[i*4+1] = v
			pix[i*4+2] = v
			pix[i*4+3] = 255
		}
		return pix, nil

	default:
		return nil, fmt.Errorf("%w: %s is not a decodable pixel format", ErrUnsupported, format)
	}
}
