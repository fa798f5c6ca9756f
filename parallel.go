package morphology

import (
	"image"
	"runtime"
	"sync"
)

// ParallelReconstruct reconstructs marker under mask by iterating a full
// dilation step and a pointwise-minimum step until the image sum is stable.
// Both sub-steps are embarrassingly parallel over rows and are split across
// workers goroutines; the fixed-point loop itself stays serial and observes
// both sub-steps completed before testing stability. workers <= 0 means
// runtime.NumCPU().
func ParallelReconstruct(marker, mask *image.Gray, workers int) (*image.Gray, error) {
	if err := checkReconstructPair(marker, mask); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	j := cloneGray(marker)
	m := cloneGray(mask)
	w, h := j.Bounds().Dx(), j.Bounds().Dy()
	// Work buffer for the dilation step.
	k := make([]uint8, len(j.Pix))

	var stability uint64
	for sum := sumPix(j.Pix); sum != stability; sum = sumPix(j.Pix) {
		stability = sum

		// Dilation step: k becomes the 3x3 maximum of j over the interior.
		forEachRowChunk(1, h-1, workers, func(yStart, yEnd int) {
			for y := yStart; y < yEnd; y++ {
				for x := 1; x < w-1; x++ {
					p := y*w + x
					k[p] = max3x3(j.Pix, p, w)
				}
			}
		})

		// Pointwise minimum against the mask.
		forEachRowChunk(1, h-1, workers, func(yStart, yEnd int) {
			for y := yStart; y < yEnd; y++ {
				for x := 1; x < w-1; x++ {
					p := y*w + x
					j.Pix[p] = min(m.Pix[p], k[p])
				}
			}
		})
	}
	return j, nil
}

// max3x3 returns the maximum over the pixel at offset p and its eight
// neighbors. p must not lie on the image border.
func max3x3(pix []uint8, p, stride int) uint8 {
	m := pix[p]
	for _, q := range [8]int{
		p - stride - 1, p - stride, p - stride + 1,
		p - 1, p + 1,
		p + stride - 1, p + stride, p + stride + 1,
	} {
		if pix[q] > m {
			m = pix[q]
		}
	}
	return m
}

// forEachRowChunk splits the row range [start, end) into contiguous chunks,
// one per worker, and runs fn on each chunk concurrently. Chunks do not
// overlap, so fn needs no synchronization for row-local writes.
func forEachRowChunk(start, end, workers int, fn func(yStart, yEnd int)) {
	rows := end - start
	if rows <= 0 {
		return
	}
	if workers <= 1 || rows == 1 {
		fn(start, end)
		return
	}

	rowsPerWorker := (rows + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		yStart := start + w*rowsPerWorker
		yEnd := min(yStart+rowsPerWorker, end)
		if yStart >= end {
			break
		}
		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			fn(yStart, yEnd)
		}(yStart, yEnd)
	}
	wg.Wait()
}
