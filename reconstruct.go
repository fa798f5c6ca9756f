package morphology

import (
	"fmt"
	"image"
)

// ReconstructMethod selects the grayscale reconstruction strategy.
type ReconstructMethod string

const (
	// MethodSequential scans back and forth over the image until stable.
	MethodSequential ReconstructMethod = "sequential"
	// MethodQueue propagates from the marker boundaries through a FIFO.
	MethodQueue ReconstructMethod = "queue"
	// MethodHybrid runs one scan pair and cleans up through the FIFO.
	// The recommended default.
	MethodHybrid ReconstructMethod = "hybrid"
	// MethodParallel iterates row-parallel dilation and pointwise-minimum
	// steps until stable.
	MethodParallel ReconstructMethod = "parallel"
)

// Reconstruct grows marker under the pointwise upper bound of mask until the
// fixed point is reached. marker and mask must have equal dimensions with
// marker pointwise <= mask. The one-pixel margin of the result is only
// reached by FIFO propagation; callers pad if edge pixels matter.
func Reconstruct(marker, mask *image.Gray, method ReconstructMethod) (*image.Gray, error) {
	switch method {
	case MethodSequential:
		return SequentialReconstruct(marker, mask)
	case MethodQueue:
		return QueueReconstruct(marker, mask)
	case MethodHybrid, "":
		return HybridReconstruct(marker, mask)
	case MethodParallel:
		return ParallelReconstruct(marker, mask, 0)
	}
	return nil, fmt.Errorf("morphology: unknown reconstruction method %q: %w", method, ErrInvalidParameter)
}

// rasterPass performs one reconstruction scan over the interior of j in the
// given direction (+1 raster, -1 anti-raster). Each pixel is raised to the
// maximum of itself and its four causal neighbors, clipped by the mask. The
// one-pixel margin is left untouched.
func rasterPass(j, mask []uint8, w, h, dir int) {
	if w < 3 || h < 3 {
		return
	}
	yStart, yEnd := 1, h-1
	xStart, xEnd := 1, w-1
	if dir < 0 {
		yStart, yEnd = h-2, 0
		xStart, xEnd = w-2, 0
	}
	for y := yStart; y != yEnd; y += dir {
		for x := xStart; x != xEnd; x += dir {
			p := y*w + x
			row := p - dir*w
			m := j[p-dir]
			if v := j[row-1]; v > m {
				m = v
			}
			if v := j[row]; v > m {
				m = v
			}
			if v := j[row+1]; v > m {
				m = v
			}
			if m > j[p] {
				j[p] = min(m, mask[p])
			}
		}
	}
}

// queuePass propagates marker values through a FIFO seeded with the interior
// boundary pixels of j: pixels above zero with a zero 8-neighbor. Unlike the
// raster passes, propagation may reach the margin.
func queuePass(j, mask []uint8, w, h int) {
	type point struct{ x, y int32 }
	var fifo []point
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			p := y*w + x
			if j[p] > 0 && hasZeroNeighbor(j, p, w) {
				fifo = append(fifo, point{int32(x), int32(y)})
			}
		}
	}

	for head := 0; head < len(fifo); head++ {
		t := fifo[head]
		p := int(t.y)*w + int(t.x)
		xLower := max(int(t.x)-1, 0)
		xUpper := min(int(t.x)+1, w-1)
		yLower := max(int(t.y)-1, 0)
		yUpper := min(int(t.y)+1, h-1)
		for y := yLower; y <= yUpper; y++ {
			for x := xLower; x <= xUpper; x++ {
				q := y*w + x
				if q == p {
					continue
				}
				if j[q] < j[p] && j[q] != mask[q] {
					j[q] = min(j[p], mask[q])
					fifo = append(fifo, point{int32(x), int32(y)})
				}
			}
		}
	}
}

// SequentialReconstruct reconstructs marker under mask by scanning in and
// against raster direction until the image sum is stable.
func SequentialReconstruct(marker, mask *image.Gray) (*image.Gray, error) {
	if err := checkReconstructPair(marker, mask); err != nil {
		return nil, err
	}
	j := cloneGray(marker)
	k := cloneGray(mask)
	w, h := j.Bounds().Dx(), j.Bounds().Dy()

	var stability uint64
	for sum := sumPix(j.Pix); sum != stability; sum = sumPix(j.Pix) {
		stability = sum
		rasterPass(j.Pix, k.Pix, w, h, 1)
		rasterPass(j.Pix, k.Pix, w, h, -1)
	}
	return j, nil
}

// QueueReconstruct reconstructs marker under mask by managing pixels through
// a FIFO instead of scanning the entire image.
func QueueReconstruct(marker, mask *image.Gray) (*image.Gray, error) {
	if err := checkReconstructPair(marker, mask); err != nil {
		return nil, err
	}
	j := cloneGray(marker)
	k := cloneGray(mask)
	w, h := j.Bounds().Dx(), j.Bounds().Dy()
	queuePass(j.Pix, k.Pix, w, h)
	return j, nil
}

// HybridReconstruct reconstructs marker under mask with one raster and one
// anti-raster scan followed by FIFO cleanup. This combination is the fastest
// of the variants on typical inputs.
func HybridReconstruct(marker, mask *image.Gray) (*image.Gray, error) {
	if err := checkReconstructPair(marker, mask); err != nil {
		return nil, err
	}
	j := cloneGray(marker)
	k := cloneGray(mask)
	w, h := j.Bounds().Dx(), j.Bounds().Dy()
	rasterPass(j.Pix, k.Pix, w, h, 1)
	rasterPass(j.Pix, k.Pix, w, h, -1)
	queuePass(j.Pix, k.Pix, w, h)
	return j, nil
}

// HDomes extracts the h-domes of src: the regional maxima rising at least h
// above their surroundings, each dome carrying the height by which it
// exceeds the reconstruction of src - h under src.
func HDomes(src *image.Gray, h uint8) (*image.Gray, error) {
	if err := checkImage(src); err != nil {
		return nil, err
	}
	flat := cloneGray(src)
	rec, err := HybridReconstruct(subScalar(flat, h), flat)
	if err != nil {
		return nil, err
	}
	return subGray(flat, rec), nil
}

// HBasins extracts the h-basins of src: the dual of HDomes on the negative
// image, marking regional minima deeper than h.
func HBasins(src *image.Gray, h uint8) (*image.Gray, error) {
	if err := checkImage(src); err != nil {
		return nil, err
	}
	return HDomes(NegativeCopy(src), h)
}
