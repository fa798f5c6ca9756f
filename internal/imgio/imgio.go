// Package imgio loads and saves the grayscale images the command-line tools
// operate on. Decoding understands png, jpeg, gif, bmp, tiff, webp and tga;
// encoding picks the format from the output file extension.
package imgio

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	_ "github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Channel selects the color plane extracted from a decoded image.
type Channel string

const (
	Gray  Channel = "gray"
	Red   Channel = "red"
	Green Channel = "green"
	Blue  Channel = "blue"
)

// ParseChannel validates a channel name from the command line.
func ParseChannel(name string) (Channel, error) {
	switch c := Channel(name); c {
	case Gray, Red, Green, Blue:
		return c, nil
	}
	return "", fmt.Errorf("imgio: unknown color channel %q", name)
}

// LoadGray decodes the image at path and extracts the requested channel as
// an 8-bit grayscale image.
func LoadGray(path string, ch Channel) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imgio: decoding %s: %w", path, err)
	}
	return ExtractChannel(src, ch)
}

// ExtractChannel converts src to grayscale. Gray uses the standard luminance
// conversion; the color channels copy the respective plane verbatim.
func ExtractChannel(src image.Image, ch Channel) (*image.Gray, error) {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	if ch == Gray {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst, nil
	}

	if ch != Red && ch != Green && ch != Blue {
		return nil, fmt.Errorf("imgio: unknown color channel %q", ch)
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			var v uint32
			switch ch {
			case Red:
				v = r
			case Green:
				v = g
			case Blue:
				v = bl
			}
			dst.Pix[y*dst.Stride+x] = uint8(v >> 8)
		}
	}
	return dst, nil
}

// Save encodes img to path, choosing the format from the file extension.
func Save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, nil)
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, nil)
	case ".webp":
		err = nativewebp.Encode(f, img, nil)
	default:
		err = fmt.Errorf("imgio: unsupported output format %q", ext)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("imgio: encoding %s: %w", path, err)
	}
	return f.Close()
}
