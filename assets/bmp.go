package assets

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Uncompressed 24-bit bitmap layout. All multi-byte fields are little endian.
const (
	BmpHeaderSize = 54

	bmpOffsetDataPos     = 0x0A
	bmpOffsetWidth       = 0x12
	bmpOffsetHeight      = 0x16
	bmpOffsetBpp         = 0x1C
	bmpOffsetCompression = 0x1E
	bmpOffsetImageSize   = 0x22

	// Larger than any texture size an OpenGL 4.1 driver will accept
	bmpMaxDimension = 1 << 15
)

// RawTextureData is a decoded 24-bit image. Data holds exactly Width*Height*3 bytes in BGR order,
// rows tightly packed and stored bottom row first (the order OpenGL expects for texture uploads).
type RawTextureData struct {
	Width  uint32
	Height uint32
	Data   []byte
}

func (t *RawTextureData) IsValid() bool {
	return t.Width > 0 && t.Height > 0 && len(t.Data) == int(t.Width*t.Height*3)
}

func DecodeBMP(path string) (RawTextureData, error) {

	b, err := os.ReadFile(path)
	if err != nil {
		return RawTextureData{}, fmt.Errorf("%w: failed to read '%s'. Err: %v", ErrDecode, path, err)
	}

	tex, err := DecodeBMPBytes(b)
	if err != nil {
		return RawTextureData{}, fmt.Errorf("bitmap '%s': %w", path, err)
	}

	return tex, nil
}

// DecodeBMPBytes decodes an uncompressed 24-bit bitmap.
//
// A zero image size field is computed from the dimensions and a zero data offset means the
// pixels start right after the standard header. Row padding is removed, and top-down
// bitmaps (negative height) are flipped so the result is always bottom-up.
func DecodeBMPBytes(b []byte) (RawTextureData, error) {

	if len(b) < BmpHeaderSize {
		return RawTextureData{}, fmt.Errorf("%w: bitmap header needs %d bytes but got %d", ErrDecode, BmpHeaderSize, len(b))
	}

	if b[0] != 'B' || b[1] != 'M' {
		return RawTextureData{}, fmt.Errorf("%w: bad bitmap signature '%c%c'", ErrDecode, b[0], b[1])
	}

	bpp := binary.LittleEndian.Uint16(b[bmpOffsetBpp:])
	compression := binary.LittleEndian.Uint32(b[bmpOffsetCompression:])
	if bpp != 24 || compression != 0 {
		return RawTextureData{}, fmt.Errorf("%w: only uncompressed 24-bit bitmaps are supported (bpp=%d; compression=%d)", ErrDecode, bpp, compression)
	}

	width := int32(binary.LittleEndian.Uint32(b[bmpOffsetWidth:]))
	height := int32(binary.LittleEndian.Uint32(b[bmpOffsetHeight:]))

	topDown := height < 0
	if topDown {
		height = -height
	}

	if width <= 0 || height <= 0 || width > bmpMaxDimension || height > bmpMaxDimension {
		return RawTextureData{}, fmt.Errorf("%w: invalid bitmap dimensions %dx%d", ErrDecode, width, height)
	}

	w := int(width)
	h := int(height)
	rowBytes := w * 3

	dataPos := int(binary.LittleEndian.Uint32(b[bmpOffsetDataPos:]))
	if dataPos == 0 {
		dataPos = BmpHeaderSize
	}

	declaredSize := int(binary.LittleEndian.Uint32(b[bmpOffsetImageSize:]))
	imageSize := declaredSize
	if imageSize == 0 {
		imageSize = rowBytes * h
	}

	if dataPos > len(b) {
		return RawTextureData{}, fmt.Errorf("%w: pixel data offset %d is past the end of the file (%d bytes)", ErrDecode, dataPos, len(b))
	}

	avail := len(b) - dataPos
	if imageSize > avail || rowBytes*h > avail {
		return RawTextureData{}, fmt.Errorf("%w: bitmap pixel data is truncated (need %d bytes, have %d)", ErrDecode, max(imageSize, rowBytes*h), avail)
	}

	// Rows are padded to 4 bytes in well formed files, but some writers don't pad.
	// A declared size tells which one it is, otherwise guess from what the file holds.
	stride := (rowBytes + 3) &^ 3
	switch {
	case declaredSize == rowBytes*h:
		stride = rowBytes
	case declaredSize != 0:
		if stride*(h-1)+rowBytes > imageSize {
			return RawTextureData{}, fmt.Errorf("%w: declared image size %d is too small for %dx%d pixels", ErrDecode, declaredSize, w, h)
		}
	case stride*(h-1)+rowBytes > avail:
		stride = rowBytes
	}

	tex := RawTextureData{
		Width:  uint32(w),
		Height: uint32(h),
		Data:   make([]byte, rowBytes*h),
	}

	pixels := b[dataPos:]
	for row := 0; row < h; row++ {

		srcRow := row
		if topDown {
			srcRow = h - 1 - row
		}

		copy(tex.Data[row*rowBytes:(row+1)*rowBytes], pixels[srcRow*stride:srcRow*stride+rowBytes])
	}

	return tex, nil
}
