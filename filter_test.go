package morphology

import (
	"errors"
	"image"
	"math/rand"
	"testing"
)

// mkGray builds a grayscale image from row literals.
func mkGray(rows [][]uint8) *image.Gray {
	h, w := len(rows), len(rows[0])
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y, row := range rows {
		copy(img.Pix[y*img.Stride:y*img.Stride+w], row)
	}
	return img
}

// checkPix compares img against row literals, reporting up to five
// mismatching pixels.
func checkPix(t *testing.T, img *image.Gray, want [][]uint8) {
	t.Helper()
	b := img.Bounds()
	if b.Dy() != len(want) || b.Dx() != len(want[0]) {
		t.Fatalf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), len(want[0]), len(want))
	}
	mismatches := 0
	for y := range want {
		for x := range want[y] {
			if got := img.GrayAt(b.Min.X+x, b.Min.Y+y).Y; got != want[y][x] {
				mismatches++
				if mismatches <= 5 {
					t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got, want[y][x])
				}
			}
		}
	}
	if mismatches > 5 {
		t.Errorf("... and %d more pixel mismatches", mismatches-5)
	}
}

// checkLE asserts a <= b pointwise.
func checkLE(t *testing.T, name string, a, b *image.Gray) {
	t.Helper()
	ab, bb := a.Bounds(), b.Bounds()
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			pa := a.GrayAt(ab.Min.X+x, ab.Min.Y+y).Y
			pb := b.GrayAt(bb.Min.X+x, bb.Min.Y+y).Y
			if pa > pb {
				t.Fatalf("%s violated at (%d,%d): %d > %d", name, x, y, pa, pb)
			}
		}
	}
}

func grayEqual(a, b *image.Gray) bool {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return false
	}
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			if a.GrayAt(ab.Min.X+x, ab.Min.Y+y).Y != b.GrayAt(bb.Min.X+x, bb.Min.Y+y).Y {
				return false
			}
		}
	}
	return true
}

// testImage generates a deterministic plateau-rich image.
func testImage(w, h int) *image.Gray {
	rng := rand.New(rand.NewSource(42))
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(5) * 60)
	}
	return img
}

func TestOpenRemovesIsolatedPeak(t *testing.T) {
	img := mkGray([][]uint8{
		{0, 0, 0},
		{0, 255, 0},
		{0, 0, 0},
	})

	opened, err := Open(img, 2, Area)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	// The singleton peak has area 1 < 2 and drops to its surround.
	checkPix(t, opened, [][]uint8{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	})
	// The source is left intact.
	if img.GrayAt(1, 1).Y != 255 {
		t.Error("Open mutated its source")
	}
}

func TestOpenPreservesLargePeak(t *testing.T) {
	img := mkGray([][]uint8{
		{0, 0, 0, 0, 0},
		{0, 255, 255, 255, 0},
		{0, 255, 255, 255, 0},
		{0, 255, 255, 255, 0},
		{0, 0, 0, 0, 0},
	})

	opened, err := Open(img, 5, Area)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	// Peak area 9 >= 5: unchanged.
	if !grayEqual(opened, img) {
		t.Error("opening removed a peak of sufficient area")
	}
}

func TestCloseFillsHole(t *testing.T) {
	peak := mkGray([][]uint8{
		{0, 0, 0},
		{0, 255, 0},
		{0, 0, 0},
	})
	closed, err := Close(peak, 2, Area)
	if err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	// Nothing dark to fill: the bright peak survives a closing.
	if !grayEqual(closed, peak) {
		t.Error("closing altered an image with no dark components")
	}

	hole := mkGray([][]uint8{
		{255, 255, 255},
		{255, 0, 255},
		{255, 255, 255},
	})
	closed, err = Close(hole, 2, Area)
	if err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	checkPix(t, closed, [][]uint8{
		{255, 255, 255},
		{255, 255, 255},
		{255, 255, 255},
	})
}

func TestCloseDuality(t *testing.T) {
	img := testImage(16, 16)
	for _, lambda := range []int{1, 3, 10, 40} {
		closed, err := Close(img, lambda, Area)
		if err != nil {
			t.Fatalf("Close() error: %v", err)
		}

		neg := NegativeCopy(img)
		opened, err := Open(neg, lambda, Area)
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		Negative(opened)

		if !grayEqual(closed, opened) {
			t.Errorf("lambda %d: close(I) != negate(open(negate(I)))", lambda)
		}
	}
}

func TestFilterIdempotence(t *testing.T) {
	img := testImage(16, 16)
	for _, kind := range []AttributeKind{Area, EqualSides, FillRatio} {
		t.Run(string(kind), func(t *testing.T) {
			once, err := Open(img, 8, kind)
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			twice, err := Open(once, 8, kind)
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			if !grayEqual(once, twice) {
				t.Error("opening is not idempotent")
			}

			once, err = Close(img, 8, kind)
			if err != nil {
				t.Fatalf("Close() error: %v", err)
			}
			twice, err = Close(once, 8, kind)
			if err != nil {
				t.Fatalf("Close() error: %v", err)
			}
			if !grayEqual(once, twice) {
				t.Error("closing is not idempotent")
			}
		})
	}
}

func TestOpenAntiExtensiveCloseExtensive(t *testing.T) {
	img := testImage(16, 16)
	for _, lambda := range []int{1, 5, 20} {
		opened, err := Open(img, lambda, Area)
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		closed, err := Close(img, lambda, Area)
		if err != nil {
			t.Fatalf("Close() error: %v", err)
		}
		checkLE(t, "open(I) <= I", opened, img)
		checkLE(t, "I <= close(I)", img, closed)
	}
}

func TestMonotoneLambda(t *testing.T) {
	img := testImage(16, 16)
	lambdas := []int{1, 2, 5, 10, 30, 80}
	for i := 0; i < len(lambdas)-1; i++ {
		lo, hi := lambdas[i], lambdas[i+1]

		openLo, err := Open(img, lo, Area)
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		openHi, err := Open(img, hi, Area)
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		checkLE(t, "open monotone in lambda", openHi, openLo)

		closeLo, err := Close(img, lo, Area)
		if err != nil {
			t.Fatalf("Close() error: %v", err)
		}
		closeHi, err := Close(img, hi, Area)
		if err != nil {
			t.Fatalf("Close() error: %v", err)
		}
		checkLE(t, "close monotone in lambda", closeLo, closeHi)
	}
}

func TestLambdaZeroNoOp(t *testing.T) {
	img := testImage(8, 8)

	opened, err := Open(img, 0, Area)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if !grayEqual(opened, img) {
		t.Error("Open with lambda 0 is not a no-op")
	}

	closed, err := Close(img, 0, Area)
	if err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if !grayEqual(closed, img) {
		t.Error("Close with lambda 0 is not a no-op")
	}
}

func TestFilterErrors(t *testing.T) {
	img := mkGray([][]uint8{{1, 2}})

	if _, err := Open(img, -1, Area); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative lambda: err = %v, want ErrInvalidParameter", err)
	}
	if _, err := Open(img, 1, AttributeKind("perimeter")); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("unknown kind: err = %v, want ErrInvalidParameter", err)
	}
	if _, err := Open(nil, 1, Area); !errors.Is(err, ErrInvalidImageDepth) {
		t.Errorf("nil image: err = %v, want ErrInvalidImageDepth", err)
	}
	if err := CloseInPlace(nil, 1, Area); !errors.Is(err, ErrInvalidImageDepth) {
		t.Errorf("nil image close: err = %v, want ErrInvalidImageDepth", err)
	}

	// An in-place call that fails validation must not have written anything.
	bad := mkGray([][]uint8{{7, 9}})
	if err := OpenInPlace(bad, -3, Area); err == nil {
		t.Fatal("expected error for negative lambda")
	}
	checkPix(t, bad, [][]uint8{{7, 9}})
}

func TestOpenCollector(t *testing.T) {
	img := mkGray([][]uint8{
		{0, 0, 0, 0, 0},
		{0, 255, 255, 255, 0},
		{0, 255, 255, 255, 0},
		{0, 255, 255, 255, 0},
		{0, 0, 0, 0, 0},
	})

	var areas []int
	f := Filter{Kind: Area, Collect: func(a Attribute) { areas = append(areas, a.Value()) }}
	if _, err := f.OpenCopy(img, 5); err != nil {
		t.Fatalf("OpenCopy() error: %v", err)
	}

	// Two roots survive: the preserved peak and the background.
	if len(areas) != 2 {
		t.Fatalf("collected %d roots, want 2", len(areas))
	}
	total := areas[0] + areas[1]
	if total != 25 {
		t.Errorf("collected areas sum to %d, want 25", total)
	}
	if areas[0] != 16 && areas[0] != 9 {
		t.Errorf("collected areas = %v, want {9, 16}", areas)
	}
}

func TestOpenEqualSides(t *testing.T) {
	// A 1x3 bright line has equal-sides value 33.
	img := mkGray([][]uint8{
		{0, 0, 0, 0, 0},
		{0, 200, 200, 200, 0},
		{0, 0, 0, 0, 0},
	})

	// 33 < 50: the elongated line is removed.
	opened, err := Open(img, 50, EqualSides)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	checkPix(t, opened, [][]uint8{
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	})

	// 33 >= 20: preserved.
	opened, err = Open(img, 20, EqualSides)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if !grayEqual(opened, img) {
		t.Error("opening removed a line above the squareness threshold")
	}
}

func TestOpenUnitesIntoEnclosingLevel(t *testing.T) {
	// A two-level peak: the 255 tip (area 1) falls to the 128 plateau, the
	// combined plateau (area 3) falls to the background.
	img := mkGray([][]uint8{
		{0, 0, 0, 0},
		{0, 128, 255, 0},
		{0, 128, 0, 0},
		{0, 0, 0, 0},
	})

	opened, err := Open(img, 2, Area)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	checkPix(t, opened, [][]uint8{
		{0, 0, 0, 0},
		{0, 128, 128, 0},
		{0, 128, 0, 0},
		{0, 0, 0, 0},
	})

	opened, err = Open(img, 4, Area)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	checkPix(t, opened, [][]uint8{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
}

func TestOpenSubImage(t *testing.T) {
	base := mkGray([][]uint8{
		{9, 9, 9, 9, 9},
		{9, 0, 0, 0, 9},
		{9, 0, 255, 0, 9},
		{9, 0, 0, 0, 9},
		{9, 9, 9, 9, 9},
	})
	sub := base.SubImage(image.Rect(1, 1, 4, 4)).(*image.Gray)

	if err := OpenInPlace(sub, 2, Area); err != nil {
		t.Fatalf("OpenInPlace() error: %v", err)
	}

	// The peak inside the window is removed; the frame is untouched.
	checkPix(t, base, [][]uint8{
		{9, 9, 9, 9, 9},
		{9, 0, 0, 0, 9},
		{9, 0, 0, 0, 9},
		{9, 0, 0, 0, 9},
		{9, 9, 9, 9, 9},
	})
}

func TestOpenSinglePixelImage(t *testing.T) {
	img := mkGray([][]uint8{{77}})
	opened, err := Open(img, 5, Area)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	// A single pixel is the root of the only component and keeps its value.
	checkPix(t, opened, [][]uint8{{77}})
}
