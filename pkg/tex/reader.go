package tex

import (
	"fmt"

	"github.com/WallTools/weFileTools/pkg/binread"
)

// Magic strings opening every TEX file.
const (
	Magic1 = "TEXV0005"
	Magic2 = "TEXI0001"
)

// containerVersion is the closed set of recognized image-container layouts.
// The trailing digit of the TEXB magic selects the per-mipmap field layout;
// anything outside this set is a parse error, never a guess.
type containerVersion int

const (
	containerV1 containerVersion = 1
	containerV2 containerVersion = 2
	containerV3 containerVersion = 3
	containerV4 containerVersion = 4
)

func parseContainerMagic(magic string) (containerVersion, error) {
	switch magic {
	case "TEXB0001":
		return containerV1, nil
	case "TEXB0002":
		return containerV2, nil
	case "TEXB0003":
		return containerV3, nil
	case "TEXB0004":
		return containerV4, nil
	default:
		return 0, fmt.Errorf("%w: unknown image container magic %q", ErrParse, magic)
	}
}

// Parse reads a complete TEX structure from raw file bytes.
func Parse(data []byte) (*TexFile, error) {
	r := binread.New(data)

	if magic := r.CString(16); magic != Magic1 {
		return nil, fmt.Errorf("%w: invalid magic %q, expected %q", ErrParse, magic, Magic1)
	}
	if magic := r.CString(16); magic != Magic2 {
		return nil, fmt.Errorf("%w: invalid magic %q, expected %q", ErrParse, magic, Magic2)
	}

	header := TexHeader{
		Format:        r.Uint32(),
		Flags:         r.Uint32(),
		TextureWidth:  r.Uint32(),
		TextureHeight: r.Uint32(),
		ImageWidth:    r.Uint32(),
		ImageHeight:   r.Uint32(),
		Unk0:          r.Uint32(),
	}

	images, err := readImageContainer(r)
	if err != nil {
		return nil, err
	}

	return &TexFile{Header: header, Images: images}, nil
}

func readImageContainer(r *binread.Reader) ([]TexImage, error) {
	magic := r.CString(16)
	imageCount := r.Int32()

	version, err := parseContainerMagic(magic)
	if err != nil {
		return nil, err
	}

	imageFormat := int32(-1)
	isVideoMP4 := false

	switch version {
	case containerV3:
		imageFormat = r.Int32()
	case containerV4:
		imageFormat = r.Int32()
		isVideoMP4 = r.Int32() == 1
	}

	// A version-4 container without the video flag uses the version-3
	// mipmap layout. Only video textures carry the extra v4 fields.
	effective := version
	if version == containerV4 && !isVideoMP4 {
		effective = containerV3
	}

	// Each image needs at least a 4-byte mipmap count, so a count larger
	// than the remaining buffer could possibly hold is corrupt, not just
	// oversized.
	if int64(imageCount) > int64(r.Remaining())/4 {
		return nil, fmt.Errorf("%w: image count %d exceeds remaining data (%d bytes)",
			ErrParse, imageCount, r.Remaining())
	}

	images := make([]TexImage, 0, max(int(imageCount), 0))
	for i := 0; i < int(imageCount); i++ {
		img, err := readImage(r, effective, imageFormat, isVideoMP4)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
		images = append(images, img)
	}

	return images, nil
}

func readImage(r *binread.Reader, version containerVersion, imageFormat int32, isVideoMP4 bool) (TexImage, error) {
	mipmapCount := r.Int32()

	// Every mipmap carries at least width, height and byte count.
	if int64(mipmapCount) > int64(r.Remaining())/12 {
		return TexImage{}, fmt.Errorf("%w: mipmap count %d exceeds remaining data (%d bytes)",
			ErrParse, mipmapCount, r.Remaining())
	}

	mipmaps := make([]TexMipmap, 0, max(int(mipmapCount), 0))
	for i := 0; i < int(mipmapCount); i++ {
		mip, err := readMipmap(r, version)
		if err != nil {
			return TexImage{}, fmt.Errorf("mipmap %d: %w", i, err)
		}
		mipmaps = append(mipmaps, mip)
	}

	return TexImage{
		ImageFormat: imageFormat,
		IsVideoMP4:  isVideoMP4,
		Mipmaps:     mipmaps,
	}, nil
}

func readMipmap(r *binread.Reader, version containerVersion) (TexMipmap, error) {
	if version == containerV4 {
		// Video mipmaps carry two leading ints, a JSON condition blob and
		// one trailing int before the common fields. None of them matter
		// for extraction.
		r.Int32()
		r.Int32()
		r.CString(0)
		r.Int32()
	}

	mip := TexMipmap{
		Width:  r.Uint32(),
		Height: r.Uint32(),
	}

	if version >= containerV2 {
		mip.IsLZ4Compressed = r.Int32() == 1
		mip.DecompressedByteCount = r.Uint32()
	}

	byteCount := r.Int32()
	if byteCount < 0 {
		return TexMipmap{}, fmt.Errorf("%w: negative payload size %d", ErrParse, byteCount)
	}

	data := r.Bytes(int(byteCount))
	if data == nil {
		return TexMipmap{}, fmt.Errorf("%w: payload truncated: need %d bytes, have %d",
			ErrParse, byteCount, r.Remaining())
	}
	mip.Data = data

	return mip, nil
}
