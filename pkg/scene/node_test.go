package scene

import (
	"testing"

	"github.com/canopy-ui/canopy/pkg/hosttest"
)

func newTestTree(t *testing.T) (*hosttest.Fake, *Session, *Node) {
	t.Helper()
	h := hosttest.New()
	s := NewSession(h)
	root, err := s.Root()
	if err != nil {
		t.Fatal(err)
	}
	return h, s, root
}

func TestAppendChild(t *testing.T) {
	h, s, root := newTestTree(t)
	child, err := s.CreateContainer("box", nil)
	if err != nil {
		t.Fatal(err)
	}
	h.Reset()

	if err := root.AppendChild(child); err != nil {
		t.Fatal(err)
	}

	if child.Parent() != root {
		t.Error("parent back-reference not set")
	}
	if root.ChildIndex(child) != 0 {
		t.Errorf("ChildIndex = %d, want 0", root.ChildIndex(child))
	}
	h.ExpectCalls(t, "InsertChild(root, n1, -1)")
}

func TestInsertChildSplices(t *testing.T) {
	h, s, root := newTestTree(t)
	a, _ := s.CreateContainer("box", nil)
	b, _ := s.CreateContainer("box", nil)
	c, _ := s.CreateContainer("box", nil)
	if err := root.AppendChild(a); err != nil {
		t.Fatal(err)
	}
	if err := root.AppendChild(b); err != nil {
		t.Fatal(err)
	}
	h.Reset()

	if err := root.InsertChild(c, 1); err != nil {
		t.Fatal(err)
	}

	want := []*Node{a, c, b}
	got := root.Children()
	if len(got) != len(want) {
		t.Fatalf("got %d children, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("children[%d] = %s, want %s", i, got[i].ID(), want[i].ID())
		}
	}
	h.ExpectCalls(t, "InsertChild(root, n3, 1)")
}

func TestInsertChildAtHeadAndTail(t *testing.T) {
	_, s, root := newTestTree(t)
	a, _ := s.CreateContainer("box", nil)
	b, _ := s.CreateContainer("box", nil)

	if err := root.InsertChild(a, 0); err != nil {
		t.Fatal(err)
	}
	if err := root.InsertChild(b, 1); err != nil {
		t.Fatal(err)
	}
	if root.ChildIndex(a) != 0 || root.ChildIndex(b) != 1 {
		t.Errorf("unexpected order: a=%d b=%d", root.ChildIndex(a), root.ChildIndex(b))
	}
}

func TestRemoveChildLifecycle(t *testing.T) {
	h, s, root := newTestTree(t)
	child, _ := s.CreateContainer("box", nil)
	if err := root.AppendChild(child); err != nil {
		t.Fatal(err)
	}

	if _, ok := s.Lookup(child.ID()); !ok {
		t.Fatal("registry entry missing after append")
	}

	h.Reset()
	if err := root.RemoveChild(child); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Lookup(child.ID()); ok {
		t.Error("registry entry still present after remove")
	}
	if root.ChildIndex(child) != -1 {
		t.Error("child still in sequence after remove")
	}
	h.ExpectCalls(t, "RemoveChild(root, n1)")

	// Removing again is a silent no-op: no error, no host command.
	h.Reset()
	if err := root.RemoveChild(child); err != nil {
		t.Fatal(err)
	}
	h.ExpectCalls(t)
}

func TestRemoveChildByIdentityNotValue(t *testing.T) {
	h, s, root := newTestTree(t)
	attached, _ := s.CreateContainer("box", nil)
	stranger, _ := s.CreateContainer("box", nil)
	if err := root.AppendChild(attached); err != nil {
		t.Fatal(err)
	}

	h.Reset()
	if err := root.RemoveChild(stranger); err != nil {
		t.Fatal(err)
	}
	if root.ChildIndex(attached) != 0 {
		t.Error("attached child was disturbed")
	}
	if _, ok := s.Lookup(stranger.ID()); !ok {
		t.Error("non-child lost its registry entry")
	}
	h.ExpectCalls(t)
}

func TestContains(t *testing.T) {
	_, s, root := newTestTree(t)
	inner, _ := s.CreateContainer("box", nil)
	leaf, _ := s.CreateText("hi")
	detached, _ := s.CreateContainer("box", nil)

	if err := root.AppendChild(inner); err != nil {
		t.Fatal(err)
	}
	if err := inner.AppendChild(leaf); err != nil {
		t.Fatal(err)
	}

	if !root.Contains(root) {
		t.Error("a node must contain itself")
	}
	if !root.Contains(leaf) {
		t.Error("root must contain a nested text leaf")
	}
	if !inner.Contains(leaf) {
		t.Error("inner must contain its text child")
	}
	if root.Contains(detached) {
		t.Error("root must not contain an unattached node")
	}
	if !leaf.Contains(leaf) {
		t.Error("a text node contains itself")
	}
	if leaf.Contains(inner) {
		t.Error("a text node is terminal")
	}

	if err := root.RemoveChild(inner); err != nil {
		t.Fatal(err)
	}
	if root.Contains(inner) {
		t.Error("root still contains a removed child")
	}
}

func TestSetText(t *testing.T) {
	h, s, _ := newTestTree(t)
	leaf, _ := s.CreateText("before")
	h.Reset()

	if err := leaf.SetText("after"); err != nil {
		t.Fatal(err)
	}
	if leaf.Text() != "after" {
		t.Errorf("Text = %q, want %q", leaf.Text(), "after")
	}
	h.ExpectCalls(t, "SetTextValue(n1, after)")

	// Text updates never touch the registry.
	if _, ok := s.Lookup(leaf.ID()); !ok {
		t.Error("registry entry lost on text update")
	}
}

func TestKindContractViolations(t *testing.T) {
	_, s, root := newTestTree(t)
	leaf, _ := s.CreateText("hi")
	box, _ := s.CreateContainer("box", nil)

	if err := leaf.AppendChild(box); err != ErrNotContainer {
		t.Errorf("AppendChild on text = %v, want ErrNotContainer", err)
	}
	if err := leaf.InsertChild(box, 0); err != ErrNotContainer {
		t.Errorf("InsertChild on text = %v, want ErrNotContainer", err)
	}
	if err := leaf.RemoveChild(box); err != ErrNotContainer {
		t.Errorf("RemoveChild on text = %v, want ErrNotContainer", err)
	}
	if err := leaf.SetProperty("color", "red"); err != ErrNotContainer {
		t.Errorf("SetProperty on text = %v, want ErrNotContainer", err)
	}
	if err := root.SetText("nope"); err != ErrNotText {
		t.Errorf("SetText on container = %v, want ErrNotText", err)
	}
	_ = s
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindContainer, "Container"},
		{KindText, "Text"},
		{Kind(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
