package morphology

import (
	"errors"
	"fmt"
	"image"
)

// Precondition errors. All are detected eagerly at call entry; no function
// partially mutates its output after returning one of these.
var (
	// ErrInvalidImageDepth reports an image that is not a usable 8-bit
	// single-channel image (nil or empty).
	ErrInvalidImageDepth = errors.New("image is not 8-bit single-channel")

	// ErrShapeMismatch reports reconstruction inputs of different dimensions.
	ErrShapeMismatch = errors.New("images have different dimensions")

	// ErrMarkerExceedsMask reports a reconstruction marker that is not
	// pointwise below its mask.
	ErrMarkerExceedsMask = errors.New("marker exceeds mask")

	// ErrInvalidParameter reports an out-of-range parameter, such as a
	// negative lambda or an unknown attribute kind.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// checkImage validates that img is a non-empty 8-bit grayscale image.
func checkImage(img *image.Gray) error {
	if img == nil || img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0 {
		return fmt.Errorf("morphology: %w", ErrInvalidImageDepth)
	}
	return nil
}

// checkLambda validates a filter threshold. Lambda zero is legal and makes
// the filter a no-op; only negative values are rejected.
func checkLambda(lambda int) error {
	if lambda < 0 {
		return fmt.Errorf("morphology: lambda must be >= 0, got %d: %w", lambda, ErrInvalidParameter)
	}
	return nil
}

// checkKind validates an attribute kind.
func checkKind(kind AttributeKind) error {
	switch kind {
	case Area, EqualSides, FillRatio:
		return nil
	}
	return fmt.Errorf("morphology: unknown attribute kind %q: %w", kind, ErrInvalidParameter)
}

// checkReconstructPair validates a (marker, mask) pair: both usable images,
// equal dimensions, and marker pointwise <= mask.
func checkReconstructPair(marker, mask *image.Gray) error {
	if err := checkImage(marker); err != nil {
		return err
	}
	if err := checkImage(mask); err != nil {
		return err
	}
	mb, kb := marker.Bounds(), mask.Bounds()
	if mb.Dx() != kb.Dx() || mb.Dy() != kb.Dy() {
		return fmt.Errorf("morphology: marker is %dx%d, mask is %dx%d: %w",
			mb.Dx(), mb.Dy(), kb.Dx(), kb.Dy(), ErrShapeMismatch)
	}
	for y := 0; y < mb.Dy(); y++ {
		mo := marker.PixOffset(mb.Min.X, mb.Min.Y+y)
		ko := mask.PixOffset(kb.Min.X, kb.Min.Y+y)
		for x := 0; x < mb.Dx(); x++ {
			if marker.Pix[mo+x] > mask.Pix[ko+x] {
				return fmt.Errorf("morphology: marker(%d,%d)=%d > mask=%d: %w",
					x, y, marker.Pix[mo+x], mask.Pix[ko+x], ErrMarkerExceedsMask)
			}
		}
	}
	return nil
}
