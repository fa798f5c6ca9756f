package morphology

import "testing"

func TestAreaMerge(t *testing.T) {
	a := newAttribute(Area, 1, 1)
	b := newAttribute(Area, 1, 1)

	if a.Value() != 1 || b.Value() != 1 {
		t.Fatalf("seeded areas = %d, %d, want 1, 1", a.Value(), b.Value())
	}

	a.merge(b)

	// Merge mutates the left operand only.
	if a.Value() != 2 {
		t.Errorf("after merge, a.Value() = %d, want 2", a.Value())
	}
	if b.Value() != 1 {
		t.Errorf("after merge, b.Value() = %d, want 1", b.Value())
	}
}

func TestEqualSideLengthMerge(t *testing.T) {
	a := newAttribute(EqualSides, 2, 1)
	b := newAttribute(EqualSides, 1, 1)
	c := newAttribute(EqualSides, 1, 2)

	// Singletons have equal sides.
	for i, attr := range []Attribute{a, b, c} {
		if attr.Value() != 100 {
			t.Errorf("singleton %d: Value() = %d, want 100", i, attr.Value())
		}
	}

	// (2,1) + (1,1): bounding box 2x1.
	b.merge(a)
	if b.Value() != 50 {
		t.Errorf("after first merge, Value() = %d, want 50", b.Value())
	}

	// + (1,2): bounding box 2x2.
	b.merge(c)
	if b.Value() != 100 {
		t.Errorf("after second merge, Value() = %d, want 100", b.Value())
	}
}

func TestEqualSideLengthRoundsDown(t *testing.T) {
	// A 1x3 box: floor(100/3) = 33, never rounded up.
	a := newAttribute(EqualSides, 0, 0)
	a.merge(newAttribute(EqualSides, 2, 0))
	if a.Value() != 33 {
		t.Errorf("1x3 box: Value() = %d, want 33", a.Value())
	}
}

func TestFillRatioMerge(t *testing.T) {
	a := newAttribute(FillRatio, 0, 0)
	if a.Value() != 100 {
		t.Errorf("singleton fill ratio = %d, want 100", a.Value())
	}

	// An L of three pixels in a 2x2 box fills 3/4.
	a.merge(newAttribute(FillRatio, 1, 0))
	a.merge(newAttribute(FillRatio, 0, 1))
	if a.Value() != 75 {
		t.Errorf("L-shape fill ratio = %d, want 75", a.Value())
	}
}

func TestMergeOrderIndependence(t *testing.T) {
	// The final root value depends only on the pixel set, not on merge order.
	pixels := [][2]int{{0, 0}, {3, 0}, {1, 2}, {3, 3}}

	for _, kind := range []AttributeKind{Area, EqualSides, FillRatio} {
		forward := newAttribute(kind, pixels[0][0], pixels[0][1])
		for _, p := range pixels[1:] {
			forward.merge(newAttribute(kind, p[0], p[1]))
		}

		backward := newAttribute(kind, pixels[len(pixels)-1][0], pixels[len(pixels)-1][1])
		for i := len(pixels) - 2; i >= 0; i-- {
			backward.merge(newAttribute(kind, pixels[i][0], pixels[i][1]))
		}

		if forward.Value() != backward.Value() {
			t.Errorf("%s: forward merge = %d, backward merge = %d",
				kind, forward.Value(), backward.Value())
		}
	}
}

func TestKindBins(t *testing.T) {
	tests := []struct {
		kind   AttributeKind
		lambda int
		want   int
	}{
		{Area, 5, 5},
		{Area, 5000, 5000},
		{EqualSides, 5, 101},
		{EqualSides, 200, 200},
		{FillRatio, 100, 101},
		{FillRatio, 101, 101},
	}
	for _, tt := range tests {
		if got := tt.kind.bins(tt.lambda); got != tt.want {
			t.Errorf("%s.bins(%d) = %d, want %d", tt.kind, tt.lambda, got, tt.want)
		}
	}
}
