package willowxr

// ExcludeSet holds composite nodes whose direct leaf children are never
// reported as hits. It keeps an implement's own geometry out of its queries.
// A nil ExcludeSet excludes nothing.
type ExcludeSet map[*Node]struct{}

// NewExcludeSet returns a set containing the given nodes.
func NewExcludeSet(nodes ...*Node) ExcludeSet {
	s := make(ExcludeSet, len(nodes))
	for _, n := range nodes {
		s.Add(n)
	}
	return s
}

// Add inserts n. Nil nodes are ignored.
func (s ExcludeSet) Add(n *Node) {
	if n != nil {
		s[n] = struct{}{}
	}
}

// AddSubtree inserts n and every composite node beneath it, so that every
// leaf under n is excluded however deep it sits.
func (s ExcludeSet) AddSubtree(n *Node) {
	if n == nil {
		return
	}
	s[n] = struct{}{}
	for _, c := range n.children {
		if !c.IsLeaf() {
			s.AddSubtree(c)
		}
	}
}

// Contains reports whether n is in the set.
func (s ExcludeSet) Contains(n *Node) bool {
	_, ok := s[n]
	return ok
}

// Excludes reports whether a hit on leaf must be ignored: its parent is in
// the set.
func (s ExcludeSet) Excludes(leaf *Node) bool {
	if len(s) == 0 || leaf.parent == nil {
		return false
	}
	return s.Contains(leaf.parent)
}

// FindHit runs a pre-order depth-first search under root and returns the
// first leaf, in child insertion order, whose scaled unit box contains the
// origin of query. The accumulated transform starts at the identity and
// includes root's own local transform. Leaves excluded by exclude are
// skipped. Returns nil when nothing matches.
func FindHit(root *Node, query Mat4, exclude ExcludeSet) *Node {
	if root == nil {
		return nil
	}
	return findHit(root, Identity, query, exclude)
}

func findHit(n *Node, parentWorld, query Mat4, exclude ExcludeSet) *Node {
	world := Compose(parentWorld, n.local)
	if n.IsLeaf() {
		if HitBox(query, world) && !exclude.Excludes(n) {
			return n
		}
		return nil
	}
	for _, child := range n.children {
		if hit := findHit(child, world, query, exclude); hit != nil {
			return hit
		}
	}
	return nil
}

// FindAllHits appends every leaf under root that contains the origin of
// query to buf, in the same order FindHit visits them, and returns the
// extended slice. Pass buf[:0] to reuse a buffer between frames.
func FindAllHits(root *Node, query Mat4, exclude ExcludeSet, buf []*Node) []*Node {
	if root == nil {
		return buf
	}
	return collectHits(root, Identity, query, exclude, buf)
}

func collectHits(n *Node, parentWorld, query Mat4, exclude ExcludeSet, buf []*Node) []*Node {
	world := Compose(parentWorld, n.local)
	if n.IsLeaf() {
		if HitBox(query, world) && !exclude.Excludes(n) {
			buf = append(buf, n)
		}
		return buf
	}
	for _, child := range n.children {
		buf = collectHits(child, world, query, exclude, buf)
	}
	return buf
}
