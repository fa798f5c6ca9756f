package morphology

// AttributeKind selects the shape attribute a filter measures on each
// connected component.
type AttributeKind string

const (
	// Area counts the pixels of a component. Unbounded.
	Area AttributeKind = "area"
	// EqualSides measures how square the bounding box of a component is,
	// as floor(100*min(w,h)/max(w,h)). Range [0, 100].
	EqualSides AttributeKind = "equal-sides"
	// FillRatio measures how much of its bounding box a component fills,
	// as floor(100*area/(w*h)). Range [0, 100].
	FillRatio AttributeKind = "fill-ratio"
)

// bounded reports whether the attribute's value range is [0, 100]
// independently of lambda.
func (k AttributeKind) bounded() bool {
	return k == EqualSides || k == FillRatio
}

// bins is the pattern-spectrum length for this kind at the given lambda.
// Bounded attributes index by a value in [0, 100] regardless of lambda, so
// their spectrum is never shorter than 101 bins.
func (k AttributeKind) bins(lambda int) int {
	if k.bounded() && lambda < 101 {
		return 101
	}
	return lambda
}

// Attribute is a scalar aggregate over a connected component. An attribute
// is seeded per pixel and merged exactly once per union; only the value on a
// component's root is meaningful. Implementations live in this package.
type Attribute interface {
	// Value projects the aggregate to a discrete scalar. It is pure: merging
	// is the only mutator.
	Value() int

	// merge folds other into the receiver. Associative, and commutative in
	// the sense that the final root value depends only on the pixel set.
	merge(other Attribute)
}

// newAttribute seeds an attribute of the given kind for a singleton
// component at (x, y). The kind must have been validated.
func newAttribute(kind AttributeKind, x, y int) Attribute {
	switch kind {
	case EqualSides:
		return &equalSideLength{boundingBox: seedBox(x, y)}
	case FillRatio:
		return &fillRatio{boundingBox: seedBox(x, y), area: 1}
	default:
		return &areaAttribute{area: 1}
	}
}

type areaAttribute struct {
	area int
}

func (a *areaAttribute) Value() int { return a.area }

func (a *areaAttribute) merge(other Attribute) {
	a.area += other.(*areaAttribute).area
}

// boundingBox is the shared base of the bounding-box attributes. Merging is
// componentwise min/max.
type boundingBox struct {
	xMin, xMax int
	yMin, yMax int
}

func seedBox(x, y int) boundingBox {
	return boundingBox{xMin: x, xMax: x, yMin: y, yMax: y}
}

func (b *boundingBox) mergeBox(o *boundingBox) {
	b.xMin = min(b.xMin, o.xMin)
	b.xMax = max(b.xMax, o.xMax)
	b.yMin = min(b.yMin, o.yMin)
	b.yMax = max(b.yMax, o.yMax)
}

func (b *boundingBox) width() int  { return b.xMax - b.xMin + 1 }
func (b *boundingBox) height() int { return b.yMax - b.yMin + 1 }

type equalSideLength struct {
	boundingBox
}

// Value measures the equality of the bounding-box sides in [0, 100].
// Integer division rounds down deliberately: the result doubles as a
// spectrum index, so equal sides must map to exactly 100.
func (e *equalSideLength) Value() int {
	w, h := e.width(), e.height()
	if w > h {
		return h * 100 / w
	}
	return w * 100 / h
}

func (e *equalSideLength) merge(other Attribute) {
	e.mergeBox(&other.(*equalSideLength).boundingBox)
}

type fillRatio struct {
	boundingBox
	area int
}

// Value is the ratio of the component's area to its bounding box in [0, 100].
func (f *fillRatio) Value() int {
	return f.area * 100 / (f.width() * f.height())
}

func (f *fillRatio) merge(other Attribute) {
	o := other.(*fillRatio)
	f.mergeBox(&o.boundingBox)
	f.area += o.area
}
