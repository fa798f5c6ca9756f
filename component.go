package morphology

import (
	"image"
	"sort"
)

// component is one pixel of the max-tree under construction. Components form
// a disjoint-set forest: parent is an index into the arena, and a component
// whose parent is its own index is a root. Size and attribute are meaningful
// on roots only.
type component struct {
	// off is the pixel's offset into the image buffer. Writes through off
	// are the only way a filter mutates the image.
	off int32

	x, y int32
	// idx is the scan-line index y*w + x, the tiebreak key within a gray
	// level. It equals the component's arena index.
	idx int32

	parent int32
	size   int32

	// active latches: it transitions true -> false at most once, when the
	// root's attribute first reaches lambda, when the component turns
	// passive next to a sealed brighter root, or when it absorbs an inactive
	// root of its own gray level.
	active bool

	attr Attribute
}

// componentArena holds one component per pixel plus the pixel buffer they
// index into. It lives for a single filter invocation.
type componentArena struct {
	nodes []component
	pix   []uint8
	w, h  int
}

// newComponentArena seeds one singleton component per pixel of img, each
// parenting itself with a fresh attribute of the given kind.
func newComponentArena(img *image.Gray, kind AttributeKind) *componentArena {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	a := &componentArena{
		nodes: make([]component, w*h),
		pix:   img.Pix,
		w:     w,
		h:     h,
	}
	i := int32(0)
	for y := 0; y < h; y++ {
		off := int32(img.PixOffset(b.Min.X, b.Min.Y+y))
		for x := 0; x < w; x++ {
			a.nodes[i] = component{
				off:    off + int32(x),
				x:      int32(x),
				y:      int32(y),
				idx:    i,
				parent: i,
				size:   1,
				active: true,
				attr:   newAttribute(kind, x, y),
			}
			i++
		}
	}
	return a
}

// gray reads the current pixel value of component i.
func (a *componentArena) gray(i int32) uint8 {
	return a.pix[a.nodes[i].off]
}

// less orders components brightest first, breaking gray ties by scan-line
// index. Sorting by less processes bright peaks before the darker pixels
// they will be united into.
func (a *componentArena) less(i, j int32) bool {
	gi, gj := a.gray(i), a.gray(j)
	return gi > gj || (gi == gj && a.nodes[i].idx < a.nodes[j].idx)
}

// sorted returns a permutation of the arena indices in less order.
func (a *componentArena) sorted() []int32 {
	order := make([]int32, len(a.nodes))
	for i := range order {
		order[i] = int32(i)
	}
	sort.Slice(order, func(i, j int) bool {
		return a.less(order[i], order[j])
	})
	return order
}

// findRoot returns the root of the set containing i, with full path
// compression. Compressed nodes also adopt the root's attribute handle so
// that intermediate attributes become collectable; the aliasing is safe
// because only root attributes are ever read.
func (a *componentArena) findRoot(i int32) int32 {
	root := i
	for a.nodes[root].parent != root {
		root = a.nodes[root].parent
	}
	for i != root {
		next := a.nodes[i].parent
		a.nodes[i].parent = root
		a.nodes[i].attr = a.nodes[root].attr
		i = next
	}
	return root
}

// setParent attaches the set rooted at child under parent, merging the
// child's attribute and size into the parent. child must be a root.
func (a *componentArena) setParent(child, parent int32) {
	a.nodes[parent].attr.merge(a.nodes[child].attr)
	// Size is accounted on roots only; it feeds the granulometry credits.
	a.nodes[parent].size += a.nodes[child].size
	a.nodes[child].parent = parent
}

// isActive reports whether the component's attribute is still below lambda.
// The flag latches: once a subtree has sealed, later growth of its siblings
// must not reactivate it.
func (a *componentArena) isActive(i int32, lambda int) bool {
	n := &a.nodes[i]
	if n.active {
		n.active = n.attr.Value() < lambda
	}
	return n.active
}

// build runs the max-tree construction pass: every component, visited in
// sorted order, is united with each of its 8-grid neighbors that was
// processed earlier (brighter, or level and earlier in scan order). The
// unite step is supplied by the caller; the filter and the pattern spectrum
// differ only there.
func (a *componentArena) build(order []int32, unite func(neighbor, current int32)) {
	w, h := int32(a.w), int32(a.h)
	for _, c := range order {
		cur := &a.nodes[c]
		xLower := max(cur.x-1, 0)
		xUpper := min(cur.x+1, w-1)
		yLower := max(cur.y-1, 0)
		yUpper := min(cur.y+1, h-1)

		for y := yLower; y <= yUpper; y++ {
			for x := xLower; x <= xUpper; x++ {
				n := y*w + x
				if n == c {
					continue
				}
				if a.less(n, c) {
					unite(n, c)
				}
			}
		}
	}
}
