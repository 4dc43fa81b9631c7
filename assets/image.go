package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	_ "github.com/ftrvxmtrx/tga"
	"github.com/mandykoh/prism"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeTexture picks a decoder by file extension. Bitmaps go through the strict 24-bit decoder,
// everything else through the registered image formats (png, jpeg, tga, tiff, webp).
func DecodeTexture(path string) (RawTextureData, error) {

	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		return DecodeBMP(path)
	}

	return DecodeImage(path)
}

func DecodeImage(path string) (RawTextureData, error) {

	b, err := os.ReadFile(path)
	if err != nil {
		return RawTextureData{}, fmt.Errorf("%w: failed to read '%s'. Err: %v", ErrDecode, path, err)
	}

	tex, err := DecodeImageBytes(b)
	if err != nil {
		return RawTextureData{}, fmt.Errorf("texture '%s': %w", path, err)
	}

	return tex, nil
}

func DecodeImageBytes(b []byte) (RawTextureData, error) {

	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return RawTextureData{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 || bounds.Dx() > bmpMaxDimension || bounds.Dy() > bmpMaxDimension {
		return RawTextureData{}, fmt.Errorf("%w: invalid %s dimensions %dx%d", ErrDecode, format, bounds.Dx(), bounds.Dy())
	}

	return ImageToRawTexture(img), nil
}

// ImageToRawTexture converts any image into bottom-up BGR rows. Alpha is dropped.
func ImageToRawTexture(img image.Image) RawTextureData {

	nrgba := prism.ConvertImageToNRGBA(img, runtime.NumCPU())

	bounds := nrgba.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	tex := RawTextureData{
		Width:  uint32(w),
		Height: uint32(h),
		Data:   make([]byte, w*h*3),
	}

	for y := 0; y < h; y++ {

		srcRow := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		dstRow := tex.Data[(h-1-y)*w*3 : (h-y)*w*3]
		for x := 0; x < w; x++ {
			dstRow[x*3+0] = srcRow[x*4+2]
			dstRow[x*3+1] = srcRow[x*4+1]
			dstRow[x*3+2] = srcRow[x*4+0]
		}
	}

	return tex
}
