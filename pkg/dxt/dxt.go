// Package dxt decodes BC1/BC2/BC3 (DXT1/DXT3/DXT5) block-compressed texture
// data into RGBA8888 pixel buffers.
//
// All three schemes encode 4x4 pixel blocks in row-major block order. BC1
// blocks are 8 bytes (two RGB565 endpoints plus 2-bit color indices). BC2
// prepends 8 bytes of explicit 4-bit alpha per block; BC3 prepends 8 bytes of
// interpolated 3-bit-indexed alpha. Images whose dimensions are not multiples
// of four still occupy whole blocks; the decoder clamps edge pixels.
package dxt

import (
	"encoding/binary"
	"fmt"
)

const (
	bc1BlockSize = 8
	bc2BlockSize = 16
	bc3BlockSize = 16

	// maxPixels bounds width*height so that every size computation below
	// (RGBA output, block count) fits in an int without overflow. Crafted
	// headers carry u32-max dimensions; those must error, not panic.
	maxPixels = 1 << 28
)

// DecodeBC1 decodes DXT1 data into a width*height*4 RGBA buffer.
func DecodeBC1(data []byte, width, height int) ([]byte, error) {
	pix, err := decodeBlocks(data, width, height, bc1BlockSize, decodeBC1Block)
	if err != nil {
		return nil, fmt.Errorf("bc1: %w", err)
	}
	return pix, nil
}

// DecodeBC2 decodes DXT3 data into a width*height*4 RGBA buffer.
func DecodeBC2(data []byte, width, height int) ([]byte, error) {
	pix, err := decodeBlocks(data, width, height, bc2BlockSize, decodeBC2Block)
	if err != nil {
		return nil, fmt.Errorf("bc2: %w", err)
	}
	return pix, nil
}

// DecodeBC3 decodes DXT5 data into a width*height*4 RGBA buffer.
func DecodeBC3(data []byte, width, height int) ([]byte, error) {
	pix, err := decodeBlocks(data, width, height, bc3BlockSize, decodeBC3Block)
	if err != nil {
		return nil, fmt.Errorf("bc3: %w", err)
	}
	return pix, nil
}

// blockFunc decodes one block into a 16-entry RGBA pixel array.
type blockFunc func(block []byte) [16][4]uint8

func decodeBlocks(data []byte, width, height, blockSize int, decode blockFunc) ([]byte, error) {
	if width <= 0 || height <= 0 || uint64(width)*uint64(height) > maxPixels {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}

	bw := (width + 3) / 4
	bh := (height + 3) / 4
	need := bw * bh * blockSize
	if len(data) < need {
		return nil, fmt.Errorf("truncated input: need %d bytes for %dx%d, have %d",
			need, width, height, len(data))
	}

	pix := make([]byte, width*height*4)
	offset := 0

	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			block := decode(data[offset : offset+blockSize])
			offset += blockSize

			for py := 0; py < 4; py++ {
				y := by*4 + py
				if y >= height {
					break
				}
				for px := 0; px < 4; px++ {
					x := bx*4 + px
					if x >= width {
						continue
					}
					c := block[py*4+px]
					i := (y*width + x) * 4
					pix[i+0] = c[0]
					pix[i+1] = c[1]
					pix[i+2] = c[2]
					pix[i+3] = c[3]
				}
			}
		}
	}

	return pix, nil
}

func decodeBC1Block(block []byte) [16][4]uint8 {
	c0 := binary.LittleEndian.Uint16(block[0:])
	c1 := binary.LittleEndian.Uint16(block[2:])
	indices := binary.LittleEndian.Uint32(block[4:])

	colors := colorPalette(c0, c1)

	var out [16][4]uint8
	for p := 0; p < 16; p++ {
		c := colors[(indices>>uint(2*p))&0x03]
		out[p] = [4]uint8{c[0], c[1], c[2], c[3]}
	}
	return out
}

func decodeBC2Block(block []byte) [16][4]uint8 {
	alphaBits := binary.LittleEndian.Uint64(block[0:])

	c0 := binary.LittleEndian.Uint16(block[8:])
	c1 := binary.LittleEndian.Uint16(block[10:])
	indices := binary.LittleEndian.Uint32(block[12:])

	colors := colorPalette(c0, c1)

	var out [16][4]uint8
	for p := 0; p < 16; p++ {
		c := colors[(indices>>uint(2*p))&0x03]
		// Explicit 4-bit alpha, expanded to the full 8-bit range.
		a := uint8((alphaBits >> uint(4*p)) & 0x0f)
		a = (a << 4) | a
		out[p] = [4]uint8{c[0], c[1], c[2], a}
	}
	return out
}

func decodeBC3Block(block []byte) [16][4]uint8 {
	a0 := block[0]
	a1 := block[1]

	var alphaBits uint64
	for i := 0; i < 6; i++ {
		alphaBits |= uint64(block[2+i]) << (8 * i)
	}

	c0 := binary.LittleEndian.Uint16(block[8:])
	c1 := binary.LittleEndian.Uint16(block[10:])
	indices := binary.LittleEndian.Uint32(block[12:])

	alpha := alphaPalette(a0, a1)
	colors := colorPalette(c0, c1)

	var out [16][4]uint8
	for p := 0; p < 16; p++ {
		c := colors[(indices>>uint(2*p))&0x03]
		a := alpha[(alphaBits>>uint(3*p))&0x07]
		out[p] = [4]uint8{c[0], c[1], c[2], a}
	}
	return out
}

// rgb565 expands a 16-bit RGB565 value to 8-bit channels.
func rgb565(c uint16) (r, g, b uint8) {
	r = uint8((c >> 11) & 0x1f)
	g = uint8((c >> 5) & 0x3f)
	b = uint8(c & 0x1f)

	r = (r << 3) | (r >> 2)
	g = (g << 2) | (g >> 4)
	b = (b << 3) | (b >> 2)

	return
}

// colorPalette builds the 4-color RGBA palette for a BC color block.
// When c0 <= c1 the block is in punch-through mode: index 2 is the midpoint
// and index 3 is transparent black (only meaningful for BC1).
func colorPalette(c0, c1 uint16) [4][4]uint8 {
	r0, g0, b0 := rgb565(c0)
	r1, g1, b1 := rgb565(c1)

	var p [4][4]uint8
	p[0] = [4]uint8{r0, g0, b0, 255}
	p[1] = [4]uint8{r1, g1, b1, 255}

	if c0 > c1 {
		p[2] = [4]uint8{
			uint8((2*int(r0) + int(r1)) / 3),
			uint8((2*int(g0) + int(g1)) / 3),
			uint8((2*int(b0) + int(b1)) / 3),
			255,
		}
		p[3] = [4]uint8{
			uint8((int(r0) + 2*int(r1)) / 3),
			uint8((int(g0) + 2*int(g1)) / 3),
			uint8((int(b0) + 2*int(b1)) / 3),
			255,
		}
	} else {
		p[2] = [4]uint8{
			uint8((int(r0) + int(r1)) / 2),
			uint8((int(g0) + int(g1)) / 2),
			uint8((int(b0) + int(b1)) / 2),
			255,
		}
		p[3] = [4]uint8{0, 0, 0, 0}
	}

	return p
}

// alphaPalette builds the 8-entry alpha palette for a BC3 alpha block.
func alphaPalette(a0, a1 uint8) [8]uint8 {
	var p [8]uint8
	p[0], p[1] = a0, a1

	if a0 > a1 {
		for i := 2; i < 8; i++ {
			p[i] = uint8(((8-i)*int(a0) + (i-1)*int(a1)) / 7)
		}
	} else {
		for i := 2; i < 6; i++ {
			p[i] = uint8(((6-i)*int(a0) + (i-1)*int(a1)) / 5)
		}
		p[6] = 0
		p[7] = 255
	}

	return p
}
