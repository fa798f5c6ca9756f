package morphology

import "image"

// cloneGray copies src into a fresh zero-origin image with a compact stride.
// Sub-images with stride > width flatten to row-major in the copy.
func cloneGray(src *image.Gray) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		so := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w], src.Pix[so:so+w])
	}
	return dst
}

// subGray returns the saturating pointwise difference a - b. The images must
// have equal dimensions; callers validate.
func subGray(a, b *image.Gray) *image.Gray {
	ab, bb := a.Bounds(), b.Bounds()
	w, h := ab.Dx(), ab.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		ao := a.PixOffset(ab.Min.X, ab.Min.Y+y)
		bo := b.PixOffset(bb.Min.X, bb.Min.Y+y)
		do := y * dst.Stride
		for x := 0; x < w; x++ {
			if d := int(a.Pix[ao+x]) - int(b.Pix[bo+x]); d > 0 {
				dst.Pix[do+x] = uint8(d)
			}
		}
	}
	return dst
}

// subScalar returns the saturating pointwise difference src - h.
func subScalar(src *image.Gray, h uint8) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		so := src.PixOffset(b.Min.X, b.Min.Y+y)
		do := y * dst.Stride
		for x := 0; x < b.Dx(); x++ {
			if p := src.Pix[so+x]; p > h {
				dst.Pix[do+x] = p - h
			}
		}
	}
	return dst
}

// sumPix is the reconstruction stability measure: the sum over the whole
// buffer. Stride padding of flattened clones is zero and does not disturb it.
func sumPix(pix []uint8) uint64 {
	var s uint64
	for _, p := range pix {
		s += uint64(p)
	}
	return s
}
