package morphology

import (
	"fmt"
	"image"
)

// PatternSpectrum computes differential pattern spectra (granulometries) by
// instrumenting the max-tree build instead of resolving it. The zero value
// measures area with the default size cutoff.
type PatternSpectrum struct {
	// Kind selects the component attribute. Empty means Area.
	Kind AttributeKind

	// MaxSize bounds the component size still credited to the spectrum.
	// Components are not united past this size, which disqualifies their
	// subtree from future credits. Zero means one fifth of the image area.
	MaxSize int
}

// Open computes the pattern spectrum of src via opening. The result has
// lambda bins for the area attribute and max(lambda, 101) bins for the
// bounded-range attributes, whose values index in [0, 100] regardless of
// lambda; bin[v] accumulates the gray drop times component size of every
// in-scope merge whose root carries attribute value v. Lambda zero yields an
// empty spectrum.
func (ps *PatternSpectrum) Open(src *image.Gray, lambda int) ([]int, error) {
	kind := ps.Kind
	if kind == "" {
		kind = Area
	}
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if err := checkImage(src); err != nil {
		return nil, err
	}
	if err := checkLambda(lambda); err != nil {
		return nil, err
	}
	if ps.MaxSize < 0 {
		return nil, fmt.Errorf("morphology: max size must be >= 0, got %d: %w", ps.MaxSize, ErrInvalidParameter)
	}
	if lambda == 0 {
		return []int{}, nil
	}

	b := src.Bounds()
	maxSize := int32(ps.MaxSize)
	if maxSize == 0 {
		maxSize = int32(b.Dx() * b.Dy() / 5)
	}

	spectrum := make([]int, kind.bins(lambda))

	// The build never resolves, so no pixel is ever written; the arena can
	// read src directly.
	arena := newComponentArena(src, kind)
	order := arena.sorted()

	arena.build(order, func(neighbor, current int32) {
		root := arena.findRoot(neighbor)
		if root == current || arena.nodes[root].size > maxSize {
			return
		}
		// Credit the gray drop weighted by the component size to the bin of
		// the root's attribute value, taken before the merge. Level merges
		// drop zero gray and credit nothing.
		delta := int(arena.gray(root)) - int(arena.gray(current))
		if delta > 0 && arena.isActive(root, lambda) {
			spectrum[arena.nodes[root].attr.Value()] += delta * int(arena.nodes[root].size)
		}
		arena.setParent(root, current)
	})

	return spectrum, nil
}

// Close computes the pattern spectrum of src via closing, the dual of Open
// on the negated image.
func (ps *PatternSpectrum) Close(src *image.Gray, lambda int) ([]int, error) {
	if err := checkImage(src); err != nil {
		return nil, err
	}
	return ps.Open(NegativeCopy(src), lambda)
}

// PatternSpectrumOpen computes an opening pattern spectrum of src for the
// given kind. maxSize zero selects the default cutoff of a fifth of the
// image area.
func PatternSpectrumOpen(src *image.Gray, lambda int, kind AttributeKind, maxSize int) ([]int, error) {
	ps := PatternSpectrum{Kind: kind, MaxSize: maxSize}
	return ps.Open(src, lambda)
}

// PatternSpectrumClose computes a closing pattern spectrum of src for the
// given kind.
func PatternSpectrumClose(src *image.Gray, lambda int, kind AttributeKind, maxSize int) ([]int, error) {
	ps := PatternSpectrum{Kind: kind, MaxSize: maxSize}
	return ps.Close(src, lambda)
}
