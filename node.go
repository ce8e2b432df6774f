package willowxr

// nodeIDCounter is a plain counter (not atomic; willowxr is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a rigid-body transform in the scene tree. A node owns its children
// exclusively; the parent link is a non-owning back-reference. Nodes without
// children are leaves and are the only nodes hit-tested.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	parent   *Node
	children []*Node

	// Transform (local, relative to parent)
	local Mat4

	// Attached sound, triggered when an implement strikes this leaf.
	audio AudioSink

	// Metadata
	UserData any
	EntityID uint32

	// Per-node callbacks (nil by default; zero cost when unused)
	OnStrike func(StrikeContext)
	OnGrab   func(GrabContext)

	disposed bool
}

// NewNode creates a detached node with an identity local transform.
func NewNode(name string) *Node {
	return &Node{
		ID:    nextNodeID(),
		Name:  name,
		local: Identity,
	}
}

// --- Tree manipulation ---

// Add creates a new child with an identity transform, appends it to the end
// of this node's children and returns it.
func (n *Node) Add(name string) *Node {
	child := NewNode(name)
	n.AddChild(child)
	return child
}

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("willowxr: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("willowxr: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node and disposes its whole subtree.
// Panics if child's parent is not n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child == nil || child.parent != n {
		panic("willowxr: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.parent = nil
	child.dispose()
}

// Parent returns the node that owns n, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("willowxr: child index out of range")
	}
	return n.children[index]
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// TopAncestor returns the ancestor of n (possibly n itself) whose parent is
// the tree root. It is the unit moved as one prop when any leaf below it is
// grabbed. Returns nil for a root or a detached node.
func (n *Node) TopAncestor() *Node {
	if n == nil || n.parent == nil {
		return nil
	}
	p := n
	for p.parent.parent != nil {
		p = p.parent
	}
	return p
}

// TopAncestorUnder returns the ancestor of n (possibly n itself) whose parent
// is root. Returns nil when n is root or not below it.
func (n *Node) TopAncestorUnder(root *Node) *Node {
	for p := n; p != nil; p = p.parent {
		if p.parent == root && root != nil {
			return p
		}
	}
	return nil
}

// --- Audio ---

// AttachAudio attaches a sound sink to n. The node does not own the sink.
// Passing nil detaches any current sink.
func (n *Node) AttachAudio(sink AudioSink) {
	n.audio = sink
}

// Audio returns the attached sink, or nil.
func (n *Node) Audio() AudioSink {
	return n.audio
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	if n.parent != nil {
		n.parent.removeChildByPtr(n)
		n.parent = nil
	}
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.parent = nil
		child.dispose()
	}
	n.children = nil
	n.parent = nil
	n.audio = nil
	n.UserData = nil
	n.OnStrike = nil
	n.OnGrab = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
