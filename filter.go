package morphology

import "image"

// Filter performs attribute openings and closings. The zero value filters by
// area; set Kind to choose another attribute and Collect to observe the
// attribute of every root in the final component tree.
type Filter struct {
	// Kind selects the component attribute. Empty means Area.
	Kind AttributeKind

	// Collect, if non-nil, receives the attribute instance of every root
	// left in the tree after filtering. It is called during the resolve
	// pass, darkest roots first.
	Collect func(Attribute)
}

// Open performs an attribute opening on dst in place. Every bright component
// whose attribute is below lambda is lowered to the gray value of the
// enclosing component at which the attribute first reaches lambda. Lambda
// zero is a no-op.
func (f *Filter) Open(dst *image.Gray, lambda int) error {
	kind := f.Kind
	if kind == "" {
		kind = Area
	}
	if err := checkKind(kind); err != nil {
		return err
	}
	if err := checkImage(dst); err != nil {
		return err
	}
	if err := checkLambda(lambda); err != nil {
		return err
	}
	if lambda == 0 {
		return nil
	}

	arena := newComponentArena(dst, kind)
	order := arena.sorted()

	arena.build(order, func(neighbor, current int32) {
		root := arena.findRoot(neighbor)
		if root == current {
			return
		}
		// Unite if root and current are level, or if root's attribute is
		// still below lambda. Otherwise root has sealed at a brighter level:
		// current turns passive and will adopt its parent's gray value.
		if arena.gray(root) == arena.gray(current) {
			// A level root that has sealed or turned passive carries that
			// state over to current.
			if !arena.nodes[root].active {
				arena.nodes[current].active = false
			}
			arena.setParent(root, current)
		} else if arena.isActive(root, lambda) {
			arena.setParent(root, current)
		} else {
			arena.nodes[current].active = false
		}
	})

	// Resolve the sets darkest first, so that demotions cascade from each
	// root down through its descendants.
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if p := arena.nodes[n].parent; p != n {
			arena.pix[arena.nodes[n].off] = arena.pix[arena.nodes[p].off]
		} else if f.Collect != nil {
			f.Collect(arena.nodes[n].attr)
		}
	}
	return nil
}

// OpenCopy returns an attribute opening of src, leaving src intact.
func (f *Filter) OpenCopy(src *image.Gray, lambda int) (*image.Gray, error) {
	if err := checkImage(src); err != nil {
		return nil, err
	}
	dst := cloneGray(src)
	if err := f.Open(dst, lambda); err != nil {
		return nil, err
	}
	return dst, nil
}

// Close performs an attribute closing on dst in place: the dual of Open via
// negation, filling dark components whose attribute is below lambda.
func (f *Filter) Close(dst *image.Gray, lambda int) error {
	kind := f.Kind
	if kind == "" {
		kind = Area
	}
	if err := checkKind(kind); err != nil {
		return err
	}
	if err := checkImage(dst); err != nil {
		return err
	}
	if err := checkLambda(lambda); err != nil {
		return err
	}
	Negative(dst)
	if err := f.Open(dst, lambda); err != nil {
		return err
	}
	Negative(dst)
	return nil
}

// CloseCopy returns an attribute closing of src, leaving src intact.
func (f *Filter) CloseCopy(src *image.Gray, lambda int) (*image.Gray, error) {
	if err := checkImage(src); err != nil {
		return nil, err
	}
	dst := cloneGray(src)
	if err := f.Close(dst, lambda); err != nil {
		return nil, err
	}
	return dst, nil
}

// Open returns an attribute opening of src for the given kind.
func Open(src *image.Gray, lambda int, kind AttributeKind) (*image.Gray, error) {
	f := Filter{Kind: kind}
	return f.OpenCopy(src, lambda)
}

// OpenInPlace performs an attribute opening on dst for the given kind.
func OpenInPlace(dst *image.Gray, lambda int, kind AttributeKind) error {
	f := Filter{Kind: kind}
	return f.Open(dst, lambda)
}

// Close returns an attribute closing of src for the given kind.
func Close(src *image.Gray, lambda int, kind AttributeKind) (*image.Gray, error) {
	f := Filter{Kind: kind}
	return f.CloseCopy(src, lambda)
}

// CloseInPlace performs an attribute closing on dst for the given kind.
func CloseInPlace(dst *image.Gray, lambda int, kind AttributeKind) error {
	f := Filter{Kind: kind}
	return f.Close(dst, lambda)
}
