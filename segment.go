package morphology

import (
	"image"

	"gonum.org/v1/gonum/floats"
)

// ultimateLambda bounds the granulometry used to estimate the dominant
// attribute of an image.
const ultimateLambda = 5000

// Granulometry computes the attribute granulometry of src via closing, up to
// lambda, with the default size cutoff.
func Granulometry(src *image.Gray, lambda int, kind AttributeKind) ([]int, error) {
	ps := PatternSpectrum{Kind: kind}
	return ps.Close(src, lambda)
}

// UltimateAttribute estimates the dominant structure size of src: the peak
// of its area granulometry.
func UltimateAttribute(src *image.Gray) (int, error) {
	spectrum, err := Granulometry(src, ultimateLambda, Area)
	if err != nil {
		return 0, err
	}
	deflection := make([]float64, len(spectrum))
	for i, v := range spectrum {
		deflection[i] = float64(v)
	}
	return floats.MaxIdx(deflection), nil
}

// UltimateAttributeClosing separates foreground structures from the
// background of src. The image is closed at the estimated ultimate
// attribute, scaled by alpha and shifted by epsilon, to remove grain and
// split touching structures; a second closing far above any plausible
// structure size yields the background model; the result is their
// difference. Apart from alpha and epsilon this operator is parameter-free.
func UltimateAttributeClosing(src *image.Gray, kind AttributeKind, alpha, epsilon float64) (*image.Gray, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if err := checkImage(src); err != nil {
		return nil, err
	}

	ultimate, err := UltimateAttribute(src)
	if err != nil {
		return nil, err
	}
	lambda := int(float64(ultimate)*alpha - epsilon)
	if lambda < 0 {
		lambda = 0
	}

	closing, err := Close(src, lambda, kind)
	if err != nil {
		return nil, err
	}

	// Closing the entire image gives the background model. Structures are
	// darker than background, so they remain in the difference.
	background, err := Close(src, 2*ultimateLambda, kind)
	if err != nil {
		return nil, err
	}
	return subGray(background, closing), nil
}

// NaiveSegment computes a simple foreground model of src: the area closing
// at the ultimate attribute minus the image itself.
func NaiveSegment(src *image.Gray) (*image.Gray, error) {
	if err := checkImage(src); err != nil {
		return nil, err
	}
	lambda, err := UltimateAttribute(src)
	if err != nil {
		return nil, err
	}
	closing, err := Close(src, lambda, Area)
	if err != nil {
		return nil, err
	}
	return subGray(closing, src), nil
}

// RadiusSpectrum folds an area pattern spectrum into radius bins: bin r
// collects every area bin whose equivalent disc radius rounds to r. The
// total volume of the spectrum is conserved.
func RadiusSpectrum(spectrum []int) []int {
	var folded []int
	last := -1
	for i, v := range spectrum {
		if r := ToRadius(i); r != last {
			last = r
			folded = append(folded, 0)
		}
		folded[len(folded)-1] += v
	}
	return folded
}
