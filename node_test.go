package willowxr

import "testing"

// --- Constructor defaults ---

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("test")
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != "test" {
		t.Errorf("Name = %q, want %q", n.Name, "test")
	}
	if n.Parent() != nil {
		t.Error("Parent should be nil")
	}
	if !n.IsLeaf() {
		t.Error("new node should be a leaf")
	}
	if n.LocalTransform() != Identity {
		t.Errorf("local = %v, want identity", n.LocalTransform())
	}
	if n.Audio() != nil {
		t.Error("Audio should be nil")
	}
}

func TestUniqueIDs(t *testing.T) {
	seen := make(map[uint32]bool)
	for i := 0; i < 100; i++ {
		n := NewNode("n")
		if seen[n.ID] {
			t.Fatalf("duplicate ID %d", n.ID)
		}
		seen[n.ID] = true
	}
}

// --- Tree manipulation ---

func TestAddAppendsInOrder(t *testing.T) {
	parent := NewNode("parent")
	a := parent.Add("a")
	b := parent.Add("b")
	c := parent.Add("c")

	if parent.NumChildren() != 3 {
		t.Fatalf("NumChildren = %d, want 3", parent.NumChildren())
	}
	for i, want := range []*Node{a, b, c} {
		if parent.ChildAt(i) != want {
			t.Errorf("ChildAt(%d) = %q, want %q", i, parent.ChildAt(i).Name, want.Name)
		}
		if want.Parent() != parent {
			t.Errorf("%s.Parent() should be parent", want.Name)
		}
	}
	if parent.IsLeaf() {
		t.Error("parent with children should not be a leaf")
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewNode("p1")
	p2 := NewNode("p2")
	child := NewNode("child")
	p1.AddChild(child)
	p2.AddChild(child)

	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if p2.NumChildren() != 1 || child.Parent() != p2 {
		t.Error("child should belong to p2")
	}
}

func TestAddChildCyclePanic(t *testing.T) {
	a := NewNode("a")
	b := a.Add("b")
	c := b.Add("c")

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for cycle, got none")
		}
	}()
	c.AddChild(a)
}

func TestAddChildSelfPanic(t *testing.T) {
	a := NewNode("a")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for self-add, got none")
		}
	}()
	a.AddChild(a)
}

func TestAddChildNilPanic(t *testing.T) {
	a := NewNode("a")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil child, got none")
		}
	}()
	a.AddChild(nil)
}

func TestRemoveChildDisposesSubtree(t *testing.T) {
	parent := NewNode("parent")
	child := parent.Add("child")
	grandchild := child.Add("grandchild")
	parent.RemoveChild(child)

	if parent.NumChildren() != 0 {
		t.Error("parent should have 0 children")
	}
	if child.Parent() != nil {
		t.Error("child.Parent should be nil")
	}
	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("removed subtree should be disposed")
	}
}

func TestRemoveChildWrongParentPanic(t *testing.T) {
	p1 := NewNode("p1")
	p2 := NewNode("p2")
	child := p1.Add("child")

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for wrong parent, got none")
		}
	}()
	p2.RemoveChild(child)
}

func TestChildAtOutOfBoundsPanic(t *testing.T) {
	parent := NewNode("parent")
	parent.Add("a")

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for out of bounds, got none")
		}
	}()
	parent.ChildAt(5)
}

func TestTopAncestor(t *testing.T) {
	root := NewNode("root")
	prop := root.Add("prop")
	mid := prop.Add("mid")
	leaf := mid.Add("leaf")

	tests := []struct {
		name string
		node *Node
		want *Node
	}{
		{"leaf", leaf, prop},
		{"mid", mid, prop},
		{"prop itself", prop, prop},
		{"root", root, nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.TopAncestor(); got != tt.want {
				t.Errorf("TopAncestor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopAncestorUnder(t *testing.T) {
	world := NewNode("world")
	scene := world.Add("scene")
	prop := scene.Add("prop")
	leaf := prop.Add("mid").Add("leaf")
	other := world.Add("other").Add("box")

	tests := []struct {
		name string
		node *Node
		root *Node
		want *Node
	}{
		{"leaf under scene", leaf, scene, prop},
		{"prop itself", prop, scene, prop},
		{"leaf under world", leaf, world, scene},
		{"scene root itself", scene, scene, nil},
		{"outside root", other, scene, nil},
		{"nil node", nil, scene, nil},
		{"nil root", leaf, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.TopAncestorUnder(tt.root); got != tt.want {
				t.Errorf("TopAncestorUnder = %v, want %v", got, tt.want)
			}
		})
	}
}

// --- Audio ---

func TestAttachAudio(t *testing.T) {
	n := NewNode("drum")
	played := 0
	n.AttachAudio(SinkFunc(func() { played++ }))
	n.Audio().Play()
	if played != 1 {
		t.Errorf("played = %d, want 1", played)
	}
	n.AttachAudio(nil)
	if n.Audio() != nil {
		t.Error("AttachAudio(nil) should detach")
	}
}

// --- Disposal ---

func TestDispose(t *testing.T) {
	parent := NewNode("parent")
	child := parent.Add("child")
	grandchild := child.Add("grandchild")
	child.AttachAudio(SinkFunc(func() {}))
	child.UserData = "data"

	child.Dispose()

	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("child and grandchild should be disposed")
	}
	if parent.NumChildren() != 0 {
		t.Error("parent should have 0 children after child dispose")
	}
	if child.ID != 0 {
		t.Errorf("disposed ID = %d, want 0", child.ID)
	}
	if child.Audio() != nil || child.UserData != nil {
		t.Error("dispose should clear audio and user data")
	}
}

func TestDisposeIdempotent(t *testing.T) {
	n := NewNode("n")
	n.Dispose()
	n.Dispose() // must not panic
	if !n.IsDisposed() {
		t.Error("should be disposed")
	}
}
