package morphology

import (
	"image"
	"math"
)

// Negative inverts dst in place: every sample becomes 255 - sample.
func Negative(dst *image.Gray) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := dst.PixOffset(b.Min.X, y)
		row := dst.Pix[off : off+b.Dx()]
		for i, p := range row {
			row[i] = 255 - p
		}
	}
}

// NegativeCopy returns the negative of src, leaving src intact.
func NegativeCopy(src *image.Gray) *image.Gray {
	dst := cloneGray(src)
	Negative(dst)
	return dst
}

// ToRadius converts an area to the radius of the disc with that area,
// rounded to the nearest integer.
func ToRadius(area int) int {
	return int(math.Sqrt(float64(area)/math.Pi) + 0.5)
}

// ToArea converts a radius to the area of the disc with that radius,
// rounded to the nearest integer.
func ToArea(radius int) int {
	return int(math.Pi*float64(radius)*float64(radius) + 0.5)
}

// hasZeroNeighbor reports whether the pixel at offset p has a zero among its
// eight neighbors. p must not lie on the image border.
func hasZeroNeighbor(pix []uint8, p, stride int) bool {
	return pix[p-stride-1] == 0 || pix[p-stride] == 0 || pix[p-stride+1] == 0 ||
		pix[p-1] == 0 || pix[p+1] == 0 ||
		pix[p+stride-1] == 0 || pix[p+stride] == 0 || pix[p+stride+1] == 0
}
