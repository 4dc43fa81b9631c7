package engine

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Screenshot saves the back buffer as a lossless webp file in dir and returns its path.
// Call it after rendering and before the buffers are swapped.
func (w *Window) Screenshot(dir string) (string, error) {

	width, height := w.SDLWin.GLGetDrawableSize()
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("can't take a screenshot of a %dx%d window", width, height)
	}

	pix := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, "nchess_"+time.Now().Format("20060102_150405.000")+".webp")
	if err := writeFramebufferFile(path, pix, int(width), int(height)); err != nil {
		return "", err
	}

	return path, nil
}

// writeFramebufferFile encodes into path. Nothing is left on disk if encoding or flushing fails.
func writeFramebufferFile(path string, pix []byte, width, height int) error {

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = EncodeFramebuffer(f, pix, width, height)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		os.Remove(path)
		return err
	}

	return nil
}

// EncodeFramebuffer writes bottom-up RGBA rows as read from OpenGL into a webp image.
// Alpha is forced to opaque.
func EncodeFramebuffer(out io.Writer, pix []byte, width, height int) error {

	img, err := FramebufferToImage(pix, width, height)
	if err != nil {
		return err
	}

	return nativewebp.Encode(out, img, nil)
}

// FramebufferToImage flips bottom-up RGBA rows into a top-down image
func FramebufferToImage(pix []byte, width, height int) (*image.NRGBA, error) {

	if width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return nil, fmt.Errorf("framebuffer of %d bytes does not match %dx%d RGBA", len(pix), width, height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	rowBytes := width * 4
	for y := 0; y < height; y++ {

		src := pix[(height-1-y)*rowBytes : (height-y)*rowBytes]
		dst := img.Pix[y*img.Stride : y*img.Stride+rowBytes]
		copy(dst, src)

		for x := 3; x < rowBytes; x += 4 {
			dst[x] = 255
		}
	}

	return img, nil
}
